package reconcile

import (
	"fmt"
	"strings"
)

// Fixed output contract shared between the prompt, the sanitizer and the
// normalizer. The oracle must echo HeaderLine verbatim as the first table
// line; everything downstream keys off these literals.
const (
	HeaderLine = "Data;Valor;Descrição Doc1;Descrição Doc2;Documento de Origem"

	OriginStatement = "DOC1"  // only in the bank statement
	OriginLedger    = "DOC2"  // only in the internal ledger
	OriginBoth      = "AMBOS" // in both, with a value difference

	AbsentFromStatement = "Não consta no extrato bancário (DOC1)"
	AbsentFromLedger    = "Não consta no controle interno (DOC2)"
	PlaceholderDash     = "—"
)

// FieldCount is the mandatory column count of every table row.
const FieldCount = 5

func headerFields() []string {
	return strings.Split(HeaderLine, ";")
}

const systemPrompt = `Você é um especialista em conciliação bancária extremamente rigoroso.

Sua tarefa:
- Comparar o EXTRATO BANCÁRIO (DOC1) com o CONTROLE INTERNO / RAZÃO (DOC2).
- Opcionalmente usar o arquivo de DUPLICATAS (DOC3) apenas para enriquecer descrições.

REGRAS DE CONCILIAÇÃO (SEJA MUITO RÍGIDO):
- Considere como "mesmo lançamento" somente quando DATA (dd/mm/aaaa) e VALOR são exatamente iguais.
- Se a data e o valor forem iguais em DOC1 e DOC2, considere o lançamento conciliado (NÃO é divergência), mesmo que o texto da descrição seja um pouco diferente.
- Só gere divergência se:
  * existir em DOC1 e não existir nenhuma linha correspondente em DOC2 com a mesma DATA e VALOR; ou
  * existir em DOC2 e não existir nenhuma linha correspondente em DOC1 com a mesma DATA e VALOR; ou
  * existir em ambos, mas com mesma DATA e descrições semelhantes, porém VALORES diferentes.
- NÃO invente divergências. Se estiver em dúvida se é ou não divergência, considere como conciliado e NÃO inclua no CSV.

PREENCHIMENTO INTELIGENTE DAS DESCRIÇÕES:
- Descrição Doc1:
    - Se o lançamento existir em DOC1, use a melhor descrição possível a partir de DOC1.
    - Se o lançamento não existir em DOC1 (só existe em DOC2), preencha com: "` + AbsentFromStatement + `".
- Descrição Doc2:
    - Se o lançamento existir em DOC2, use a melhor descrição possível a partir de DOC2.
    - Se o lançamento não existir em DOC2 (só existe em DOC1), preencha com: "` + AbsentFromLedger + `".

Documento de Origem:
- "` + OriginStatement + `" se só existe no extrato.
- "` + OriginLedger + `" se só existe no controle interno.
- "` + OriginBoth + `" se existe nos dois, mas há diferença de valor ou de tipo.

Formato de saída OBRIGATÓRIO (CSV, separado por ponto e vírgula):
A PRIMEIRA LINHA deve ser exatamente:
` + HeaderLine + `

Cada linha seguinte representa UMA divergência:
- Data: data do lançamento divergente (dd/mm/aaaa).
- Valor: valor do lançamento divergente com vírgula como separador decimal (ex: 1.234,56), sem "D" ou "C".
- Descrição Doc1: conforme regra acima.
- Descrição Doc2: conforme regra acima.
- Documento de Origem: "` + OriginStatement + `", "` + OriginLedger + `" ou "` + OriginBoth + `".

As linhas devem vir ordenadas por data crescente e, dentro da mesma data, por valor crescente.
NÃO inclua comentários, cabeçalhos extras ou texto fora do CSV.
Se não houver divergências, retorne apenas a linha de cabeçalho.`

// BuildUserPrompt assembles the labeled text streams into the user message.
// The duplicates block is omitted entirely when that role has no content.
func BuildUserPrompt(statementText, ledgerText, duplicatesText string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[DOC1 - EXTRATO BANCÁRIO]\n%s\n\n", statementText)
	fmt.Fprintf(&b, "[DOC2 - CONTROLE INTERNO / RAZÃO]\n%s\n\n", ledgerText)
	if strings.TrimSpace(duplicatesText) != "" {
		fmt.Fprintf(&b, "[DOC3 - RELATÓRIO DE DUPLICATAS]\n%s\n\n", duplicatesText)
	}
	b.WriteString("Siga rigorosamente as regras e gere o CSV de divergências no formato especificado.")
	return b.String()
}

package reconcile

import (
	"strings"
	"testing"
)

func TestSanitizeExtractsFencedBlock(t *testing.T) {
	raw := "Claro! Aqui está a tabela de divergências:\n\n```csv\n" +
		HeaderLine + "\n02/11/2025;-250,00;PAGAMENTO;PAGAMENTO;AMBOS\n```\n\nQualquer dúvida, me avise."

	got := SanitizeOracleOutput(raw)

	if !strings.HasPrefix(got, HeaderLine) {
		t.Fatalf("sanitized output does not start at header:\n%s", got)
	}
	if strings.Contains(got, "Claro!") || strings.Contains(got, "me avise") {
		t.Fatalf("commentary leaked into sanitized output:\n%s", got)
	}
	if !strings.Contains(got, "02/11/2025") {
		t.Fatalf("table row lost during sanitation:\n%s", got)
	}
}

func TestSanitizeCutsLeadingProseWithoutFence(t *testing.T) {
	raw := "Segue o resultado da análise.\n" + HeaderLine + "\n03/11/2025;100,00;PIX;—;DOC1"
	got := SanitizeOracleOutput(raw)
	if !strings.HasPrefix(got, HeaderLine) {
		t.Fatalf("leading prose not removed:\n%s", got)
	}
}

func TestSanitizePassthroughWithoutHeader(t *testing.T) {
	raw := "nada parecido com a tabela esperada"
	if got := SanitizeOracleOutput(raw); got != raw {
		t.Fatalf("headerless text should pass through, got %q", got)
	}
}

func TestSanitizeEmpty(t *testing.T) {
	if got := SanitizeOracleOutput(""); got != "" {
		t.Fatalf("empty input should stay empty, got %q", got)
	}
}

package reconcile

import (
	"regexp"
	"strings"
)

var (
	fencedBlockRe = regexp.MustCompile("(?is)```(?:csv)?(.*?)```")
	headerLineRe  = regexp.MustCompile(`(?m)^Data;Valor;Descrição Doc1;Descrição Doc2;Documento de Origem.*$`)
)

// SanitizeOracleOutput cuts the delimited table out of the oracle's free-form
// reply. Models wrap the table in commentary or a fenced block often enough
// that this runs on every response. When no header line can be located the
// text passes through unchanged; the normalizer copes with the rest.
func SanitizeOracleOutput(raw string) string {
	if raw == "" {
		return ""
	}

	text := raw
	if m := fencedBlockRe.FindStringSubmatch(text); m != nil {
		text = m[1]
	}

	if loc := headerLineRe.FindStringIndex(text); loc != nil {
		text = text[loc[0]:]
	}

	return strings.TrimSpace(text)
}

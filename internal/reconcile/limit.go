package reconcile

import "strings"

// TruncationNotice is appended whenever a document stream is cut down to the
// oracle's input budget, so the prompt itself records that the stream is
// incomplete.
const TruncationNotice = "\n\n[AVISO: Conteúdo truncado automaticamente para caber no limite da IA.]"

// Limit truncates text to maxChars runes and appends the truncation notice.
// Lines beyond the cutoff are dropped. Idempotent: already-limited text
// passes through untouched. The bool reports whether this call cut anything.
func Limit(text string, maxChars int) (string, bool) {
	if text == "" || maxChars <= 0 {
		return text, false
	}
	if strings.HasSuffix(text, TruncationNotice) {
		return text, false
	}
	runes := []rune(text)
	if len(runes) <= maxChars {
		return text, false
	}
	return string(runes[:maxChars]) + TruncationNotice, true
}

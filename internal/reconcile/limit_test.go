package reconcile

import (
	"strings"
	"testing"
)

func TestLimitNoOpUnderBudget(t *testing.T) {
	text := "01/11/2025;DEPOSITO;1000.00"
	got, cut := Limit(text, 1000)
	if got != text || cut {
		t.Fatalf("Limit changed text under budget: %q cut=%v", got, cut)
	}
}

func TestLimitTruncatesAndMarks(t *testing.T) {
	text := strings.Repeat("x", 500)
	got, cut := Limit(text, 100)

	if !cut {
		t.Fatal("truncation not reported")
	}
	if !strings.HasSuffix(got, TruncationNotice) {
		t.Fatalf("truncated text missing notice: %q", got)
	}
	if len([]rune(got)) > 100+len([]rune(TruncationNotice)) {
		t.Fatalf("truncated length %d exceeds budget+notice", len([]rune(got)))
	}
	if !strings.HasPrefix(got, strings.Repeat("x", 100)) {
		t.Fatalf("truncation did not keep the leading content")
	}
}

// The cut must be reported even when the output happens to be exactly as
// long as the input, which a length comparison cannot distinguish.
func TestLimitReportsCutOfNoticeSizedTail(t *testing.T) {
	max := 10
	text := strings.Repeat("a", max) + strings.Repeat("b", len(TruncationNotice))
	got, cut := Limit(text, max)

	if !cut {
		t.Fatal("truncation not reported for notice-sized tail")
	}
	if len(got) != len(text) {
		t.Fatalf("expected equal lengths, got %d vs %d", len(got), len(text))
	}
	if !strings.HasSuffix(got, TruncationNotice) {
		t.Fatalf("notice missing: %q", got)
	}
}

func TestLimitIdempotent(t *testing.T) {
	text := strings.Repeat("lançamento bancário; ", 100)
	once, cut := Limit(text, 50)
	if !cut {
		t.Fatal("first pass should cut")
	}
	twice, cutAgain := Limit(once, 50)
	if once != twice {
		t.Fatalf("Limit not idempotent:\nonce:  %q\ntwice: %q", once, twice)
	}
	if cutAgain {
		t.Fatal("second pass reported a cut on already-limited text")
	}
}

func TestLimitMultibyteSafe(t *testing.T) {
	text := strings.Repeat("ç", 200)
	got, cut := Limit(text, 50)
	if !cut {
		t.Fatal("truncation not reported")
	}
	prefix := strings.TrimSuffix(got, TruncationNotice)
	if len([]rune(prefix)) != 50 {
		t.Fatalf("want 50 runes kept, got %d", len([]rune(prefix)))
	}
	for _, r := range prefix {
		if r != 'ç' {
			t.Fatalf("rune corrupted by truncation: %q", r)
		}
	}
}

func TestLimitEmpty(t *testing.T) {
	got, cut := Limit("", 100)
	if got != "" || cut {
		t.Fatalf("Limit on empty text: %q cut=%v", got, cut)
	}
}

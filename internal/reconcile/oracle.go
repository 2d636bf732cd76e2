package reconcile

import (
	"context"
	"fmt"
	"strings"

	"github.com/vmduarte/conciliador-backend/internal/pkg/logger"
	"github.com/vmduarte/conciliador-backend/internal/platform/openai"
)

// Comparator is the external reasoning service that decides what diverges.
// The pipeline feeds it the labeled text streams and consumes its raw text
// reply; the comparison policy itself lives in the prompt, not in Go code.
// Injecting the interface keeps every deterministic stage testable with a
// stub that returns fixed strings.
type Comparator interface {
	Compare(ctx context.Context, statementText, ledgerText, duplicatesText string) (string, error)
}

type oracleComparator struct {
	log    *logger.Logger
	client openai.Client
}

func NewOracleComparator(log *logger.Logger, client openai.Client) Comparator {
	return &oracleComparator{log: log.With("service", "OracleComparator"), client: client}
}

func (o *oracleComparator) Compare(ctx context.Context, statementText, ledgerText, duplicatesText string) (string, error) {
	o.log.Info("Calling oracle for divergence table",
		"statement_len", len(statementText),
		"ledger_len", len(ledgerText),
		"duplicates_len", len(duplicatesText),
	)

	user := BuildUserPrompt(statementText, ledgerText, duplicatesText)
	raw, err := o.client.GenerateText(ctx, systemPrompt, user)
	if err != nil {
		return "", fmt.Errorf("oracle call: %w", err)
	}

	preview := raw
	if len(preview) > 400 {
		preview = preview[:400]
	}
	o.log.Debug("Oracle reply preview", "preview", strings.TrimSpace(preview))
	return raw, nil
}

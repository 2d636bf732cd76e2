package reconcile

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/vmduarte/conciliador-backend/internal/extract"
	pkgerrors "github.com/vmduarte/conciliador-backend/internal/pkg/errors"
	"github.com/vmduarte/conciliador-backend/internal/pkg/logger"
)

// Role label bases, carried into each sub-file's block marker.
const (
	labelStatement  = "DOC1_EXTRATO"
	labelLedger     = "DOC2_CONTROLE"
	labelDuplicates = "DOC3_DUPLICATAS"
)

const artifactSuffix = "conciliacao_divergencias.xlsx"

// Result is what one pipeline run hands back to the caller.
type Result struct {
	RunID           uuid.UUID
	ArtifactPath    string
	RowCount        int
	HasDivergences  bool
	TruncatedInputs bool
}

// Service runs the document-to-divergence pipeline: extract and aggregate
// the role streams, cap their size, hand them to the comparator, then
// sanitize, normalize and emit the returned table. One linear pass per run;
// the comparator call is the single blocking external dependency.
type Service struct {
	log        *logger.Logger
	extractor  *extract.Extractor
	comparator Comparator
	emitter    *Emitter

	maxCharsPerDoc int
	artifactDir    string
}

func NewService(
	log *logger.Logger,
	extractor *extract.Extractor,
	comparator Comparator,
	emitter *Emitter,
	maxCharsPerDoc int,
	artifactDir string,
) *Service {
	return &Service{
		log:            log.With("service", "ReconcileService"),
		extractor:      extractor,
		comparator:     comparator,
		emitter:        emitter,
		maxCharsPerDoc: maxCharsPerDoc,
		artifactDir:    artifactDir,
	}
}

// Run executes one reconciliation. Statement and ledger paths are required
// by the caller's contract; duplicates are optional and may be nil.
// Failures before emission abort with no artifact; once a table exists,
// even a malformed one, an artifact is produced.
func (s *Service) Run(ctx context.Context, statementPaths, ledgerPaths, duplicatePaths []string) (Result, error) {
	runID := uuid.New()
	log := s.log.With("run_id", runID.String())

	ctx, span := otel.Tracer("reconcile").Start(ctx, "reconcile.run")
	span.SetAttributes(attribute.String("run.id", runID.String()))
	defer span.End()

	log.Info("Starting reconciliation",
		"statement_files", len(statementPaths),
		"ledger_files", len(ledgerPaths),
		"duplicate_files", len(duplicatePaths),
	)

	statementText, err := s.extractor.Role(ctx, statementPaths, labelStatement)
	if err != nil {
		return Result{}, fmt.Errorf("extract statement: %w", err)
	}
	ledgerText, err := s.extractor.Role(ctx, ledgerPaths, labelLedger)
	if err != nil {
		return Result{}, fmt.Errorf("extract ledger: %w", err)
	}
	duplicatesText, err := s.extractor.Role(ctx, duplicatePaths, labelDuplicates)
	if err != nil {
		return Result{}, fmt.Errorf("extract duplicates: %w", err)
	}
	if duplicatesText == "" {
		log.Info("No duplicates register provided (optional role)")
	}

	truncated := false
	statementText, truncated = s.govern(statementText, labelStatement, truncated, log)
	ledgerText, truncated = s.govern(ledgerText, labelLedger, truncated, log)
	duplicatesText, truncated = s.govern(duplicatesText, labelDuplicates, truncated, log)

	statementText = collapseWhitespace(statementText)
	ledgerText = collapseWhitespace(ledgerText)
	duplicatesText = collapseWhitespace(duplicatesText)

	raw, err := s.comparator.Compare(ctx, statementText, ledgerText, duplicatesText)
	if err != nil {
		return Result{}, err
	}
	if strings.TrimSpace(raw) == "" {
		return Result{}, pkgerrors.ErrEmptyOracleOutput
	}

	table := ParseTable(SanitizeOracleOutput(raw))

	// Artifact keyed by run id: concurrent runs each get their own slot
	// instead of racing on one shared path.
	artifactPath := filepath.Join(s.artifactDir, fmt.Sprintf("%s_%s", runID, artifactSuffix))
	if err := s.emitter.WriteWorkbook(table, artifactPath); err != nil {
		return Result{}, fmt.Errorf("emit workbook: %w", err)
	}

	result := Result{
		RunID:           runID,
		ArtifactPath:    artifactPath,
		RowCount:        table.RowCount(),
		HasDivergences:  table.HasDivergences(),
		TruncatedInputs: truncated,
	}
	log.Info("Reconciliation finished",
		"divergences", result.RowCount,
		"artifact", result.ArtifactPath,
		"truncated_inputs", result.TruncatedInputs,
	)
	return result, nil
}

func (s *Service) govern(text, label string, alreadyTruncated bool, log *logger.Logger) (string, bool) {
	limited, cut := Limit(text, s.maxCharsPerDoc)
	if !cut {
		return limited, alreadyTruncated
	}
	log.Warn("Document stream truncated for oracle input budget",
		"label", label, "original_len", len(text), "max_chars", s.maxCharsPerDoc)
	return limited, true
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// collapseWhitespace flattens runs of whitespace to single spaces so layout
// noise from PDFs and spreadsheets doesn't eat oracle input budget.
func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// ReconciliationRun is the persisted record of one pipeline invocation.
// The xlsx artifact on disk is the durable output; this row is what lets the
// API serve it again and list past runs.
type ReconciliationRun struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Status       string `gorm:"index" json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`

	// InputFiles holds the original upload names per role, e.g.
	// {"extrato": [...], "controle": [...], "duplicatas": [...]}.
	InputFiles datatypes.JSON `json:"input_files"`

	ArtifactPath    string `json:"-"`
	RowCount        int    `json:"divergence_count"`
	HasDivergences  bool   `json:"has_divergences"`
	DurationMillis  int64  `json:"duration_ms"`
	TruncatedInputs bool   `json:"truncated_inputs"`
}

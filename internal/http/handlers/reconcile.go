package handlers

import (
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/vmduarte/conciliador-backend/internal/http/response"
	"github.com/vmduarte/conciliador-backend/internal/pkg/logger"
	"github.com/vmduarte/conciliador-backend/internal/reconcile"
	"github.com/vmduarte/conciliador-backend/internal/repos"
	"github.com/vmduarte/conciliador-backend/internal/types"
)

const (
	maxUploadBytes  = 32 << 20
	maxFilesPerRole = 10
	fieldStatement  = "extrato"
	fieldLedger     = "controle"
	fieldDuplicates = "duplicatas"
)

type ReconcileHandler struct {
	log       *logger.Logger
	service   *reconcile.Service
	runs      repos.RunRepo
	uploadDir string
}

func NewReconcileHandler(log *logger.Logger, service *reconcile.Service, runs repos.RunRepo, uploadDir string) *ReconcileHandler {
	return &ReconcileHandler{
		log:       log.With("handler", "ReconcileHandler"),
		service:   service,
		runs:      runs,
		uploadDir: uploadDir,
	}
}

type reconcileResponse struct {
	RunID           string `json:"run_id"`
	ArtifactURL     string `json:"artifact_url"`
	HasDivergences  bool   `json:"has_divergences"`
	DivergenceCount int    `json:"divergence_count"`
	TruncatedInputs bool   `json:"truncated_inputs"`
}

// Reconcile handles the multipart upload: extrato and controle are required
// roles, duplicatas is optional. Role validation happens here, before any
// oracle spend; the pipeline itself assumes the caller already checked.
func (h *ReconcileHandler) Reconcile(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(maxUploadBytes); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_multipart_form", err)
		return
	}
	form := c.Request.MultipartForm

	statementFiles := roleFiles(form, fieldStatement)
	ledgerFiles := roleFiles(form, fieldLedger)
	duplicateFiles := roleFiles(form, fieldDuplicates)

	if len(statementFiles) == 0 || len(ledgerFiles) == 0 {
		response.RespondError(c, http.StatusBadRequest, "missing_required_documents",
			fmt.Errorf("os documentos %q (DOC1) e %q (DOC2) são obrigatórios; %q (DOC3) é opcional",
				fieldStatement, fieldLedger, fieldDuplicates))
		return
	}

	statementPaths, err := h.saveUploads(c, statementFiles)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "upload_save_failed", err)
		return
	}
	ledgerPaths, err := h.saveUploads(c, ledgerFiles)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "upload_save_failed", err)
		return
	}
	duplicatePaths, err := h.saveUploads(c, duplicateFiles)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "upload_save_failed", err)
		return
	}

	inputFiles, _ := json.Marshal(map[string][]string{
		fieldStatement:  fileNames(statementFiles),
		fieldLedger:     fileNames(ledgerFiles),
		fieldDuplicates: fileNames(duplicateFiles),
	})

	start := time.Now()
	result, runErr := h.service.Run(c.Request.Context(), statementPaths, ledgerPaths, duplicatePaths)
	elapsed := time.Since(start)

	if runErr != nil {
		h.log.Error("Reconciliation run failed", "error", runErr)
		failed := &types.ReconciliationRun{
			Status:         types.RunStatusFailed,
			ErrorMessage:   runErr.Error(),
			InputFiles:     datatypes.JSON(inputFiles),
			DurationMillis: elapsed.Milliseconds(),
		}
		if err := h.runs.Create(c.Request.Context(), failed); err != nil {
			h.log.Error("Could not persist failed run", "error", err)
		}
		response.RespondError(c, http.StatusBadGateway, "reconciliation_failed", runErr)
		return
	}

	run := &types.ReconciliationRun{
		ID:              result.RunID,
		Status:          types.RunStatusCompleted,
		InputFiles:      datatypes.JSON(inputFiles),
		ArtifactPath:    result.ArtifactPath,
		RowCount:        result.RowCount,
		HasDivergences:  result.HasDivergences,
		DurationMillis:  elapsed.Milliseconds(),
		TruncatedInputs: result.TruncatedInputs,
	}
	if err := h.runs.Create(c.Request.Context(), run); err != nil {
		h.log.Error("Could not persist run record", "error", err)
	}

	response.RespondOK(c, reconcileResponse{
		RunID:           result.RunID.String(),
		ArtifactURL:     fmt.Sprintf("/api/runs/%s/artifact", result.RunID),
		HasDivergences:  result.HasDivergences,
		DivergenceCount: result.RowCount,
		TruncatedInputs: result.TruncatedInputs,
	})
}

func roleFiles(form *multipart.Form, field string) []*multipart.FileHeader {
	if form == nil {
		return nil
	}
	files := form.File[field]
	if len(files) > maxFilesPerRole {
		files = files[:maxFilesPerRole]
	}
	return files
}

func fileNames(files []*multipart.FileHeader) []string {
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.Filename)
	}
	return names
}

// saveUploads stores each upload under a uuid-prefixed name so concurrent
// requests never clobber each other's temp inputs.
func (h *ReconcileHandler) saveUploads(c *gin.Context, files []*multipart.FileHeader) ([]string, error) {
	paths := make([]string, 0, len(files))
	for _, f := range files {
		dst := filepath.Join(h.uploadDir, fmt.Sprintf("%s_%s", uuid.New(), filepath.Base(f.Filename)))
		if err := c.SaveUploadedFile(f, dst); err != nil {
			return nil, fmt.Errorf("save upload %s: %w", f.Filename, err)
		}
		paths = append(paths, dst)
	}
	return paths, nil
}

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vmduarte/conciliador-backend/internal/http/response"
	pkgerrors "github.com/vmduarte/conciliador-backend/internal/pkg/errors"
	"github.com/vmduarte/conciliador-backend/internal/pkg/logger"
	"github.com/vmduarte/conciliador-backend/internal/repos"
	"github.com/vmduarte/conciliador-backend/internal/types"
)

const artifactDownloadName = "conciliacao_divergencias.xlsx"

type RunHandler struct {
	log  *logger.Logger
	runs repos.RunRepo
}

func NewRunHandler(log *logger.Logger, runs repos.RunRepo) *RunHandler {
	return &RunHandler{log: log.With("handler", "RunHandler"), runs: runs}
}

func (h *RunHandler) ListRuns(c *gin.Context) {
	runs, err := h.runs.ListRecent(c.Request.Context(), 50)
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "list_runs_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"runs": runs})
}

func (h *RunHandler) GetRun(c *gin.Context) {
	run, ok := h.lookupRun(c)
	if !ok {
		return
	}
	response.RespondOK(c, run)
}

// DownloadArtifact serves the xlsx workbook of a completed run.
func (h *RunHandler) DownloadArtifact(c *gin.Context) {
	run, ok := h.lookupRun(c)
	if !ok {
		return
	}
	if run.ArtifactPath == "" {
		response.RespondError(c, http.StatusNotFound, "artifact_not_available",
			fmt.Errorf("run %s has no artifact (status=%s)", run.ID, run.Status))
		return
	}
	if _, err := os.Stat(run.ArtifactPath); err != nil {
		response.RespondError(c, http.StatusNotFound, "artifact_missing",
			fmt.Errorf("artifact for run %s is no longer on disk", run.ID))
		return
	}
	c.FileAttachment(run.ArtifactPath, artifactDownloadName)
}

func (h *RunHandler) lookupRun(c *gin.Context) (*types.ReconciliationRun, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_run_id", err)
		return nil, false
	}
	run, err := h.runs.GetByID(c.Request.Context(), id)
	if errors.Is(err, pkgerrors.ErrNotFound) {
		response.RespondError(c, http.StatusNotFound, "run_not_found", err)
		return nil, false
	}
	if err != nil {
		response.RespondError(c, http.StatusInternalServerError, "get_run_failed", err)
		return nil, false
	}
	return run, true
}

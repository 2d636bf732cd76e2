package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vmduarte/conciliador-backend/internal/types"
)

func newRunRouter(t *testing.T, repo *stubRunRepo) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := NewRunHandler(newTestLogger(t), repo)
	r := gin.New()
	r.GET("/api/runs/:id", h.GetRun)
	r.GET("/api/runs/:id/artifact", h.DownloadArtifact)
	return r
}

func getPath(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestArtifactUnknownRunIs404(t *testing.T) {
	r := newRunRouter(t, &stubRunRepo{})

	w := getPath(t, r, "/api/runs/"+uuid.NewString()+"/artifact")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404; body: %s", w.Code, w.Body.String())
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("run_not_found")) {
		t.Fatalf("unexpected error body: %s", w.Body.String())
	}
}

func TestArtifactInvalidRunIDIs400(t *testing.T) {
	r := newRunRouter(t, &stubRunRepo{})

	w := getPath(t, r, "/api/runs/not-a-uuid/artifact")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestArtifactFailedRunIs404(t *testing.T) {
	id := uuid.New()
	repo := &stubRunRepo{runs: map[uuid.UUID]*types.ReconciliationRun{
		id: {ID: id, Status: types.RunStatusFailed},
	}}
	r := newRunRouter(t, repo)

	w := getPath(t, r, "/api/runs/"+id.String()+"/artifact")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("artifact_not_available")) {
		t.Fatalf("unexpected error body: %s", w.Body.String())
	}
}

func TestArtifactDownloadServesWorkbook(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conciliacao.xlsx")
	if err := os.WriteFile(path, []byte("conteudo"), 0o644); err != nil {
		t.Fatalf("write artifact: %v", err)
	}

	id := uuid.New()
	repo := &stubRunRepo{runs: map[uuid.UUID]*types.ReconciliationRun{
		id: {ID: id, Status: types.RunStatusCompleted, ArtifactPath: path},
	}}
	r := newRunRouter(t, repo)

	w := getPath(t, r, "/api/runs/"+id.String()+"/artifact")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", w.Code, w.Body.String())
	}
	if w.Body.String() != "conteudo" {
		t.Fatalf("artifact body = %q", w.Body.String())
	}
	if cd := w.Header().Get("Content-Disposition"); !bytes.Contains([]byte(cd), []byte(artifactDownloadName)) {
		t.Fatalf("Content-Disposition = %q", cd)
	}
}

func TestGetRunUnknownIs404(t *testing.T) {
	r := newRunRouter(t, &stubRunRepo{})

	w := getPath(t, r, "/api/runs/"+uuid.NewString())
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/goprovision/internal/adapter/http/dto"
	redisrepo "github.com/iho/goprovision/internal/adapter/repository/redis"
	"github.com/iho/goprovision/internal/domain"
)

// RunService defines the behavior needed by RunHandler.
type RunService interface {
	GetRun(ctx context.Context, id string) (*domain.CalculationRun, error)
}

// ProgressStore defines read access to run progress.
type ProgressStore interface {
	Get(ctx context.Context, runID string) (*redisrepo.Progress, error)
}

// RunHandler serves calculation run metadata and live progress.
type RunHandler struct {
	runUC    RunService
	progress ProgressStore
}

// NewRunHandler creates a new RunHandler.
func NewRunHandler(runUC RunService, progress ProgressStore) *RunHandler {
	return &RunHandler{runUC: runUC, progress: progress}
}

// Get retrieves a calculation run by ID.
func (h *RunHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing run ID", "")
		return
	}

	run, err := h.runUC.GetRun(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get run", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.RunFromDomain(run))
}

// Progress retrieves the last reported progress of a run.
func (h *RunHandler) Progress(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing run ID", "")
		return
	}

	progress, err := h.progress.Get(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get progress", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ProgressResponse{
		RunID:      progress.RunID,
		Processed:  progress.Processed,
		Total:      progress.Total,
		Message:    progress.Message,
		ReportedAt: progress.ReportedAt,
	})
}

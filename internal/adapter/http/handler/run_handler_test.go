package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/goprovision/internal/adapter/http/dto"
	redisrepo "github.com/iho/goprovision/internal/adapter/repository/redis"
	"github.com/iho/goprovision/internal/domain"
)

type stubRunService struct {
	run *domain.CalculationRun
	err error
}

func (s *stubRunService) GetRun(ctx context.Context, id string) (*domain.CalculationRun, error) {
	return s.run, s.err
}

type stubProgressStore struct {
	progress *redisrepo.Progress
	err      error
}

func (s *stubProgressStore) Get(ctx context.Context, runID string) (*redisrepo.Progress, error) {
	return s.progress, s.err
}

func newRunRouter(h *RunHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/runs/{id}", h.Get)
	r.Get("/runs/{id}/progress", h.Progress)
	return r
}

func TestRunHandler_Get(t *testing.T) {
	started := time.Date(2026, time.August, 31, 10, 0, 0, 0, time.UTC)
	completed := started.Add(2 * time.Minute)

	runSvc := &stubRunService{
		run: &domain.CalculationRun{
			ID:             "run-1",
			PortfolioID:    "pf-1",
			Type:           domain.RunTypeECL,
			Status:         domain.RunStatusCompleted,
			ReportingDate:  time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC),
			TotalLoans:     10,
			ProcessedLoans: 10,
			StartedAt:      started,
			CompletedAt:    &completed,
		},
	}
	router := newRunRouter(NewRunHandler(runSvc, &stubProgressStore{}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/runs/run-1", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.RunResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "run-1" || resp.Status != "completed" || resp.Type != "ecl" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.ReportingDate != "2026-08-31" {
		t.Fatalf("unexpected reporting date: %s", resp.ReportingDate)
	}
}

func TestRunHandler_Get_NotFound(t *testing.T) {
	runSvc := &stubRunService{err: domain.ErrRunNotFound}
	router := newRunRouter(NewRunHandler(runSvc, &stubProgressStore{}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/runs/missing", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestRunHandler_Progress(t *testing.T) {
	store := &stubProgressStore{
		progress: &redisrepo.Progress{
			RunID:      "run-1",
			Processed:  500,
			Total:      1200,
			ReportedAt: time.Date(2026, time.August, 31, 10, 1, 0, 0, time.UTC),
		},
	}
	router := newRunRouter(NewRunHandler(&stubRunService{}, store))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/runs/run-1/progress", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.ProgressResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Processed != 500 || resp.Total != 1200 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestRunHandler_Progress_NotFound(t *testing.T) {
	store := &stubProgressStore{err: domain.ErrRunNotFound}
	router := newRunRouter(NewRunHandler(&stubRunService{}, store))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/runs/run-1/progress", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/iho/goprovision/internal/adapter/http/dto"
	"github.com/iho/goprovision/internal/usecase"
)

// StagingService defines the behavior needed for staging runs.
type StagingService interface {
	StageLoans(ctx context.Context, input usecase.StageLoansInput) (*usecase.StagingSummary, error)
}

// ECLService defines the behavior needed for ECL runs.
type ECLService interface {
	CalculateECL(ctx context.Context, input usecase.CalculateECLInput) (*usecase.ECLSummary, error)
}

// ImpairmentService defines the behavior needed for provisioning runs.
type ImpairmentService interface {
	CalculateImpairment(ctx context.Context, input usecase.CalculateImpairmentInput) (*usecase.ImpairmentSummary, error)
}

// CalculationHandler triggers calculation runs. Runs execute synchronously
// on the request; closing the connection cancels the run at the next chunk
// boundary and already persisted chunks stay.
type CalculationHandler struct {
	stagingUC    StagingService
	eclUC        ECLService
	impairmentUC ImpairmentService
}

// NewCalculationHandler creates a new CalculationHandler.
func NewCalculationHandler(stagingUC StagingService, eclUC ECLService, impairmentUC ImpairmentService) *CalculationHandler {
	return &CalculationHandler{
		stagingUC:    stagingUC,
		eclUC:        eclUC,
		impairmentUC: impairmentUC,
	}
}

// Stage runs loan staging for a portfolio.
func (h *CalculationHandler) Stage(w http.ResponseWriter, r *http.Request) {
	var req dto.StageLoansRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if req.PortfolioID == "" {
		writeError(w, http.StatusBadRequest, "missing portfolio_id", "")
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	summary, err := h.stagingUC.StageLoans(r.Context(), input)
	if err != nil {
		writeError(w, mapDomainError(err), "staging run failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.StagingSummaryFromUseCase(summary))
}

// CalculateECL runs the expected-credit-loss calculation for a portfolio.
func (h *CalculationHandler) CalculateECL(w http.ResponseWriter, r *http.Request) {
	var req dto.CalculateECLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if req.PortfolioID == "" {
		writeError(w, http.StatusBadRequest, "missing portfolio_id", "")
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	summary, err := h.eclUC.CalculateECL(r.Context(), input)
	if err != nil {
		writeError(w, mapDomainError(err), "ecl calculation failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ECLSummaryFromUseCase(summary))
}

// CalculateImpairment runs the regulatory provisioning calculation.
func (h *CalculationHandler) CalculateImpairment(w http.ResponseWriter, r *http.Request) {
	var req dto.CalculateImpairmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if req.PortfolioID == "" {
		writeError(w, http.StatusBadRequest, "missing portfolio_id", "")
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	summary, err := h.impairmentUC.CalculateImpairment(r.Context(), input)
	if err != nil {
		writeError(w, mapDomainError(err), "impairment calculation failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ImpairmentSummaryFromUseCase(summary))
}

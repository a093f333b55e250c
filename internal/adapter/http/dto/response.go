package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/goprovision/internal/domain"
	"github.com/iho/goprovision/internal/usecase"
)

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// LoanErrorResponse is one per-loan failure of a partially successful run.
type LoanErrorResponse struct {
	LoanID string `json:"loan_id"`
	Error  string `json:"error"`
}

func loanErrorsFromDomain(errs []domain.LoanError) []LoanErrorResponse {
	if len(errs) == 0 {
		return nil
	}

	result := make([]LoanErrorResponse, len(errs))
	for i, e := range errs {
		result[i] = LoanErrorResponse{LoanID: e.LoanID, Error: e.Err.Error()}
	}
	return result
}

// StagingSummaryResponse represents a staging run outcome.
type StagingSummaryResponse struct {
	RunID          string         `json:"run_id"`
	TotalLoans     int            `json:"total_loans"`
	ProcessedLoans int            `json:"processed_loans"`
	StageCounts    map[string]int `json:"stage_counts"`
	CategoryCounts map[string]int `json:"category_counts"`
	Unclassified   int            `json:"unclassified"`
	Cancelled      bool           `json:"cancelled"`
}

// StagingSummaryFromUseCase converts a staging summary to a response.
func StagingSummaryFromUseCase(s *usecase.StagingSummary) *StagingSummaryResponse {
	stageCounts := make(map[string]int, len(s.StageCounts))
	for stage, n := range s.StageCounts {
		stageCounts[stage.String()] = n
	}

	categoryCounts := make(map[string]int, len(s.CategoryCounts))
	for cat, n := range s.CategoryCounts {
		categoryCounts[string(cat)] = n
	}

	return &StagingSummaryResponse{
		RunID:          s.RunID,
		TotalLoans:     s.TotalLoans,
		ProcessedLoans: s.ProcessedLoans,
		StageCounts:    stageCounts,
		CategoryCounts: categoryCounts,
		Unclassified:   s.Unclassified,
		Cancelled:      s.Cancelled,
	}
}

// StageStatResponse aggregates one IFRS-9 stage.
type StageStatResponse struct {
	LoanCount     int             `json:"loan_count"`
	TotalSelected decimal.Decimal `json:"total_selected"`
}

// ECLSummaryResponse represents an ECL run outcome.
type ECLSummaryResponse struct {
	RunID            string                       `json:"run_id"`
	TotalLoans       int                          `json:"total_loans"`
	ProcessedLoans   int                          `json:"processed_loans"`
	StageStats       map[string]StageStatResponse `json:"stage_stats"`
	TwelveMonthTotal decimal.Decimal              `json:"twelve_month_total"`
	LifetimeTotal    decimal.Decimal              `json:"lifetime_total"`
	SelectedTotal    decimal.Decimal              `json:"selected_total"`
	PDFallbacks      int                          `json:"pd_fallbacks"`
	Unclassified     int                          `json:"unclassified"`
	Errors           []LoanErrorResponse          `json:"errors,omitempty"`
	Cancelled        bool                         `json:"cancelled"`
}

// ECLSummaryFromUseCase converts an ECL summary to a response.
func ECLSummaryFromUseCase(s *usecase.ECLSummary) *ECLSummaryResponse {
	stats := make(map[string]StageStatResponse, len(s.StageStats))
	for stage, stat := range s.StageStats {
		stats[stage.String()] = StageStatResponse{
			LoanCount:     stat.LoanCount,
			TotalSelected: stat.TotalSelected,
		}
	}

	return &ECLSummaryResponse{
		RunID:            s.RunID,
		TotalLoans:       s.TotalLoans,
		ProcessedLoans:   s.ProcessedLoans,
		StageStats:       stats,
		TwelveMonthTotal: s.TwelveMonthTotal,
		LifetimeTotal:    s.LifetimeTotal,
		SelectedTotal:    s.SelectedTotal,
		PDFallbacks:      s.PDFallbacks,
		Unclassified:     s.Unclassified,
		Errors:           loanErrorsFromDomain(s.Errors),
		Cancelled:        s.Cancelled,
	}
}

// CategoryTotalResponse aggregates one regulatory bucket.
type CategoryTotalResponse struct {
	Category       string          `json:"category"`
	LoanCount      int             `json:"loan_count"`
	TotalBalance   decimal.Decimal `json:"total_balance"`
	TotalProvision decimal.Decimal `json:"total_provision"`
}

// ImpairmentSummaryResponse represents a local impairment run outcome.
type ImpairmentSummaryResponse struct {
	RunID               string                  `json:"run_id"`
	TotalLoans          int                     `json:"total_loans"`
	ProcessedLoans      int                     `json:"processed_loans"`
	Categories          []CategoryTotalResponse `json:"categories"`
	GrandTotalBalance   decimal.Decimal         `json:"grand_total_balance"`
	GrandTotalProvision decimal.Decimal         `json:"grand_total_provision"`
	Unclassified        int                     `json:"unclassified"`
	Errors              []LoanErrorResponse     `json:"errors,omitempty"`
	Cancelled           bool                    `json:"cancelled"`
}

// ImpairmentSummaryFromUseCase converts an impairment summary to a response.
func ImpairmentSummaryFromUseCase(s *usecase.ImpairmentSummary) *ImpairmentSummaryResponse {
	categories := make([]CategoryTotalResponse, len(s.Categories))
	for i, total := range s.Categories {
		categories[i] = CategoryTotalResponse{
			Category:       string(total.Category),
			LoanCount:      total.LoanCount,
			TotalBalance:   total.TotalBalance,
			TotalProvision: total.TotalProvision,
		}
	}

	return &ImpairmentSummaryResponse{
		RunID:               s.RunID,
		TotalLoans:          s.TotalLoans,
		ProcessedLoans:      s.ProcessedLoans,
		Categories:          categories,
		GrandTotalBalance:   s.GrandTotalBalance,
		GrandTotalProvision: s.GrandTotalProvision,
		Unclassified:        s.Unclassified,
		Errors:              loanErrorsFromDomain(s.Errors),
		Cancelled:           s.Cancelled,
	}
}

// RunResponse represents a calculation run in API responses.
type RunResponse struct {
	ID             string     `json:"id"`
	PortfolioID    string     `json:"portfolio_id"`
	Type           string     `json:"type"`
	Status         string     `json:"status"`
	ReportingDate  string     `json:"reporting_date"`
	TotalLoans     int        `json:"total_loans"`
	ProcessedLoans int        `json:"processed_loans"`
	FailedLoans    int        `json:"failed_loans"`
	StartedAt      time.Time  `json:"started_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
}

// RunFromDomain converts a calculation run to a response.
func RunFromDomain(run *domain.CalculationRun) *RunResponse {
	return &RunResponse{
		ID:             run.ID,
		PortfolioID:    run.PortfolioID,
		Type:           string(run.Type),
		Status:         string(run.Status),
		ReportingDate:  run.ReportingDate.Format(dateLayout),
		TotalLoans:     run.TotalLoans,
		ProcessedLoans: run.ProcessedLoans,
		FailedLoans:    run.FailedLoans,
		StartedAt:      run.StartedAt,
		CompletedAt:    run.CompletedAt,
	}
}

// ProgressResponse represents the last reported progress of a run.
type ProgressResponse struct {
	RunID      string    `json:"run_id"`
	Processed  int       `json:"processed"`
	Total      int       `json:"total"`
	Message    string    `json:"message"`
	ReportedAt time.Time `json:"reported_at"`
}

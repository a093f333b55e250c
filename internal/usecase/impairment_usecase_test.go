package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/goprovision/internal/domain"
	"github.com/iho/goprovision/internal/usecase"
	"github.com/iho/goprovision/internal/usecase/mocks"
)

func newImpairmentUseCase(
	loanRepo *mocks.MockLoanRepository,
	impairmentRepo *mocks.MockImpairmentResultRepository,
	runRepo *mocks.MockRunRepository,
	chunkSize int,
) *usecase.ImpairmentUseCase {
	return usecase.NewImpairmentUseCase(
		loanRepo, impairmentRepo, runRepo,
		mocks.NewMockProgressReporter(), mocks.NewMockIDGenerator(),
		zerolog.Nop(), nil, chunkSize,
	)
}

func TestCalculateImpairment(t *testing.T) {
	// Installment 100: arrears map to NDIA 0 (current, 1%), 120
	// (substandard, 25%) and 1200 (loss, 100%). Balance is 8000 per loan.
	loans := []*domain.Loan{
		newTestLoan("loan-0001", "pf-imp", 0),
		newTestLoan("loan-0002", "pf-imp", 400),
		newTestLoan("loan-0003", "pf-imp", 1200),
	}

	impairmentRepo := mocks.NewMockImpairmentResultRepository()
	runRepo := mocks.NewMockRunRepository()
	uc := newImpairmentUseCase(mocks.NewMockLoanRepository(loans...), impairmentRepo, runRepo, 100)

	summary, err := uc.CalculateImpairment(context.Background(), usecase.CalculateImpairmentInput{
		PortfolioID:   "pf-imp",
		ReportingDate: time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC),
		Config:        domain.DefaultLocalImpairmentConfig(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.ProcessedLoans != 3 {
		t.Fatalf("expected 3 loans processed, got %d", summary.ProcessedLoans)
	}
	if len(summary.Categories) != 5 {
		t.Fatalf("summary must carry all 5 categories, got %d", len(summary.Categories))
	}

	// 8000*0.01 + 8000*0.25 + 8000*1 = 10080.
	wantProvision := decimal.NewFromInt(10080)
	if !summary.GrandTotalProvision.Equal(wantProvision) {
		t.Fatalf("grand total provision = %s, want %s", summary.GrandTotalProvision, wantProvision)
	}
	if !summary.GrandTotalBalance.Equal(decimal.NewFromInt(24000)) {
		t.Fatalf("grand total balance = %s, want 24000", summary.GrandTotalBalance)
	}

	sumProvision := decimal.Zero
	for _, cat := range summary.Categories {
		sumProvision = sumProvision.Add(cat.TotalProvision)
	}
	if !summary.GrandTotalProvision.Equal(sumProvision) {
		t.Fatalf("grand total %s != category sum %s", summary.GrandTotalProvision, sumProvision)
	}

	// Per-loan provisions sum to the grand total as well.
	perLoan := decimal.Zero
	for _, result := range impairmentRepo.Results {
		if !result.Provision.Equal(result.OutstandingBalance.Mul(result.Rate)) {
			t.Fatalf("loan %s provision %s != balance %s x rate %s",
				result.LoanID, result.Provision, result.OutstandingBalance, result.Rate)
		}
		perLoan = perLoan.Add(result.Provision)
	}
	if !summary.GrandTotalProvision.Equal(perLoan) {
		t.Fatalf("grand total %s != per-loan sum %s", summary.GrandTotalProvision, perLoan)
	}

	totals, ok := impairmentRepo.Totals[summary.RunID]
	if !ok {
		t.Fatalf("totals not persisted for run %s", summary.RunID)
	}
	if len(totals) != 5 {
		t.Fatalf("expected totals for all 5 categories, got %d", len(totals))
	}

	run, err := runRepo.GetByID(context.Background(), summary.RunID)
	if err != nil {
		t.Fatalf("run not persisted: %v", err)
	}
	if run.Status != domain.RunStatusCompleted {
		t.Fatalf("expected completed run, got %s", run.Status)
	}
}

func TestCalculateImpairment_InvalidConfigRejected(t *testing.T) {
	uc := newImpairmentUseCase(
		mocks.NewMockLoanRepository(), mocks.NewMockImpairmentResultRepository(),
		mocks.NewMockRunRepository(), 100,
	)

	bad := domain.DefaultLocalImpairmentConfig()
	bad.Doubtful.Rate = decimal.NewFromFloat(1.2)

	_, err := uc.CalculateImpairment(context.Background(), usecase.CalculateImpairmentInput{
		PortfolioID:   "pf-1",
		ReportingDate: time.Now().UTC(),
		Config:        bad,
	})
	if !errors.Is(err, domain.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestCalculateImpairment_MalformedLoanExcludedFromTotals(t *testing.T) {
	good := newTestLoan("loan-0001", "pf-bad", 0)
	bad := newTestLoan("loan-0002", "pf-bad", 0)
	bad.MonthlyInstallment = decimal.NewFromInt(-5)

	impairmentRepo := mocks.NewMockImpairmentResultRepository()
	uc := newImpairmentUseCase(
		mocks.NewMockLoanRepository(good, bad), impairmentRepo,
		mocks.NewMockRunRepository(), 100,
	)

	summary, err := uc.CalculateImpairment(context.Background(), usecase.CalculateImpairmentInput{
		PortfolioID:   "pf-bad",
		ReportingDate: time.Now().UTC(),
		Config:        domain.DefaultLocalImpairmentConfig(),
	})
	if err != nil {
		t.Fatalf("a malformed loan must not abort the batch: %v", err)
	}

	if len(summary.Errors) != 1 {
		t.Fatalf("expected 1 loan error, got %d", len(summary.Errors))
	}
	if !errors.Is(summary.Errors[0].Err, domain.ErrNegativeInstallment) {
		t.Fatalf("expected ErrNegativeInstallment, got %v", summary.Errors[0].Err)
	}
	if len(impairmentRepo.Results) != 1 {
		t.Fatalf("only the valid loan should be persisted, got %d", len(impairmentRepo.Results))
	}
	// The failing loan contributes nothing to the totals.
	if !summary.GrandTotalProvision.Equal(decimal.NewFromInt(80)) {
		t.Fatalf("grand total provision = %s, want 80", summary.GrandTotalProvision)
	}
}

func TestCalculateImpairment_CancelledRunSkipsTotals(t *testing.T) {
	loans := syntheticPortfolio("pf-halt", 100)

	ctx, cancel := context.WithCancel(context.Background())

	progress := mocks.NewMockProgressReporter()
	progress.ReportFunc = func(ctx context.Context, runID string, processed, total int, message string) {
		if processed >= 20 {
			cancel()
		}
	}

	impairmentRepo := mocks.NewMockImpairmentResultRepository()
	runRepo := mocks.NewMockRunRepository()
	uc := usecase.NewImpairmentUseCase(
		mocks.NewMockLoanRepository(loans...), impairmentRepo, runRepo,
		progress, mocks.NewMockIDGenerator(), zerolog.Nop(), nil, 20,
	)

	summary, err := uc.CalculateImpairment(ctx, usecase.CalculateImpairmentInput{
		PortfolioID:   "pf-halt",
		ReportingDate: time.Now().UTC(),
		Config:        domain.DefaultLocalImpairmentConfig(),
	})
	if err != nil {
		t.Fatalf("cancellation must not surface as an error: %v", err)
	}

	if !summary.Cancelled {
		t.Fatalf("summary must report cancellation")
	}
	if len(impairmentRepo.Results) != summary.ProcessedLoans {
		t.Fatalf("persisted results (%d) must match processed loans (%d)",
			len(impairmentRepo.Results), summary.ProcessedLoans)
	}
	// Totals of an interrupted run are not written.
	if _, ok := impairmentRepo.Totals[summary.RunID]; ok {
		t.Fatalf("cancelled run must not persist totals")
	}

	run, err := runRepo.GetByID(context.Background(), summary.RunID)
	if err != nil {
		t.Fatalf("run not persisted: %v", err)
	}
	if run.Status != domain.RunStatusCancelled {
		t.Fatalf("expected cancelled run status, got %s", run.Status)
	}
}

package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/goprovision/internal/domain"
	"github.com/iho/goprovision/internal/infrastructure/metrics"
)

// ImpairmentUseCase computes local regulatory provisions for a portfolio:
// per-loan provision = outstanding balance x category rate, summed into
// per-category totals and a grand total. Loans whose NDIA falls outside
// every configured range are excluded from the totals and reported as a
// data-quality count, never silently dropped.
type ImpairmentUseCase struct {
	loanRepo       LoanRepository
	impairmentRepo ImpairmentResultRepository
	runRepo        RunRepository
	idGen          IDGenerator
	logger         zerolog.Logger
	metrics        *metrics.Metrics
	runner         chunkRunner
}

// NewImpairmentUseCase creates a new ImpairmentUseCase.
func NewImpairmentUseCase(
	loanRepo LoanRepository,
	impairmentRepo ImpairmentResultRepository,
	runRepo RunRepository,
	progress ProgressReporter,
	idGen IDGenerator,
	logger zerolog.Logger,
	m *metrics.Metrics,
	chunkSize int,
) *ImpairmentUseCase {
	return &ImpairmentUseCase{
		loanRepo:       loanRepo,
		impairmentRepo: impairmentRepo,
		runRepo:        runRepo,
		idGen:          idGen,
		logger:         logger,
		metrics:        m,
		runner: chunkRunner{
			loans:     loanRepo,
			progress:  progress,
			chunkSize: normalizeChunkSize(chunkSize),
			runType:   domain.RunTypeImpairment,
			metrics:   m,
		},
	}
}

// CalculateImpairmentInput represents input for a local impairment run.
type CalculateImpairmentInput struct {
	PortfolioID   string
	ReportingDate time.Time
	Config        domain.LocalImpairmentConfig
}

// ImpairmentSummary is the outcome of a local impairment run.
type ImpairmentSummary struct {
	RunID               string
	TotalLoans          int
	ProcessedLoans      int
	Categories          []domain.CategoryTotal
	GrandTotalBalance   decimal.Decimal
	GrandTotalProvision decimal.Decimal
	Unclassified        int
	Errors              []domain.LoanError
	Cancelled           bool
}

// CalculateImpairment runs the regulatory provisioning calculation.
func (uc *ImpairmentUseCase) CalculateImpairment(ctx context.Context, input CalculateImpairmentInput) (*ImpairmentSummary, error) {
	if err := input.Config.Validate(); err != nil {
		return nil, err
	}

	total, err := uc.loanRepo.CountByPortfolio(ctx, input.PortfolioID)
	if err != nil {
		return nil, err
	}

	run := &domain.CalculationRun{
		ID:            uc.idGen.Generate(),
		PortfolioID:   input.PortfolioID,
		Type:          domain.RunTypeImpairment,
		Status:        domain.RunStatusRunning,
		ReportingDate: input.ReportingDate,
		TotalLoans:    total,
		StartedAt:     time.Now().UTC(),
	}
	if err := uc.runRepo.Create(ctx, run); err != nil {
		return nil, err
	}
	if uc.metrics != nil {
		uc.metrics.RunsStarted.WithLabelValues(string(run.Type)).Inc()
	}

	totals := make(map[domain.Category]*domain.CategoryTotal, 5)
	for _, cat := range domain.Categories() {
		totals[cat] = &domain.CategoryTotal{
			Category:       cat,
			TotalBalance:   decimal.Zero,
			TotalProvision: decimal.Zero,
		}
	}

	summary := &ImpairmentSummary{
		RunID:               run.ID,
		TotalLoans:          total,
		GrandTotalBalance:   decimal.Zero,
		GrandTotalProvision: decimal.Zero,
	}

	uc.logger.Info().
		Str("run_id", run.ID).
		Str("portfolio_id", input.PortfolioID).
		Int("total_loans", total).
		Msg("starting local impairment run")

	processed, cancelled, err := uc.runner.run(ctx, run.ID, input.PortfolioID, total,
		func(ctx context.Context, loans []*domain.Loan) error {
			return uc.provisionChunk(ctx, run.ID, input, loans, summary, totals)
		})

	summary.ProcessedLoans = processed
	summary.Cancelled = cancelled

	for _, cat := range domain.Categories() {
		summary.Categories = append(summary.Categories, *totals[cat])
		summary.GrandTotalBalance = summary.GrandTotalBalance.Add(totals[cat].TotalBalance)
		summary.GrandTotalProvision = summary.GrandTotalProvision.Add(totals[cat].TotalProvision)
	}

	if uc.metrics != nil {
		runType := string(run.Type)
		uc.metrics.LoanErrors.WithLabelValues(runType).Add(float64(len(summary.Errors)))
		uc.metrics.UnclassifiedLoans.WithLabelValues(runType).Add(float64(summary.Unclassified))
	}

	run.ProcessedLoans = processed
	run.FailedLoans = len(summary.Errors)
	if err != nil {
		uc.finishRun(run, domain.RunStatusFailed)
		return nil, err
	}

	status := domain.RunStatusCompleted
	if cancelled {
		status = domain.RunStatusCancelled
	}
	uc.finishRun(run, status)

	if !cancelled {
		if err := uc.impairmentRepo.SaveTotals(ctx, run.ID, summary.Categories); err != nil {
			return nil, err
		}
	}

	uc.logger.Info().
		Str("run_id", run.ID).
		Int("processed", processed).
		Int("unclassified", summary.Unclassified).
		Str("grand_total_provision", summary.GrandTotalProvision.String()).
		Bool("cancelled", cancelled).
		Msg("local impairment run finished")

	return summary, nil
}

func (uc *ImpairmentUseCase) provisionChunk(
	ctx context.Context,
	runID string,
	input CalculateImpairmentInput,
	loans []*domain.Loan,
	summary *ImpairmentSummary,
	totals map[domain.Category]*domain.CategoryTotal,
) error {
	now := time.Now().UTC()

	results := make([]*domain.ImpairmentResult, 0, len(loans))
	for _, loan := range loans {
		if err := loan.Validate(); err != nil {
			summary.Errors = append(summary.Errors, domain.LoanError{LoanID: loan.ID, Err: err})
			continue
		}

		category := input.Config.Classify(loan.DaysInArrears())
		if category == domain.CategoryUnclassified {
			summary.Unclassified++
			continue
		}

		rate := input.Config.Rate(category)
		provision := loan.OutstandingBalance.Mul(rate)

		results = append(results, &domain.ImpairmentResult{
			RunID:              runID,
			LoanID:             loan.ID,
			Category:           category,
			OutstandingBalance: loan.OutstandingBalance,
			Rate:               rate,
			Provision:          provision,
			CalculatedAt:       now,
		})

		total := totals[category]
		total.LoanCount++
		total.TotalBalance = total.TotalBalance.Add(loan.OutstandingBalance)
		total.TotalProvision = total.TotalProvision.Add(provision)
	}

	return uc.impairmentRepo.SaveBatch(ctx, results)
}

func (uc *ImpairmentUseCase) finishRun(run *domain.CalculationRun, status domain.RunStatus) {
	now := time.Now().UTC()
	run.Status = status
	run.CompletedAt = &now

	if uc.metrics != nil {
		uc.metrics.RunsFinished.WithLabelValues(string(run.Type), string(status)).Inc()
		uc.metrics.RunDuration.WithLabelValues(string(run.Type)).Observe(now.Sub(run.StartedAt).Seconds())
	}

	if err := uc.runRepo.Finish(context.Background(), run); err != nil {
		uc.logger.Error().Err(err).Str("run_id", run.ID).Msg("failed to finish run")
	}
}

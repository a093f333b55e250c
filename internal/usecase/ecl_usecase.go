package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/iho/goprovision/internal/domain"
	"github.com/iho/goprovision/internal/infrastructure/metrics"
	"github.com/iho/goprovision/internal/risk"
)

// ECLUseCase computes expected credit loss for a portfolio. Loans are
// consumed in bounded chunks; within a chunk, loans are independent and
// calculated by a bounded worker group. Staging for a loan always completes
// before its calculation: the stage is derived from the validated config
// right before the figures are computed.
type ECLUseCase struct {
	loanRepo   LoanRepository
	clientRepo ClientRepository
	eclRepo    ECLResultRepository
	runRepo    RunRepository
	estimator  PDEstimator
	idGen      IDGenerator
	logger     zerolog.Logger
	metrics    *metrics.Metrics
	runner     chunkRunner
	workers    int
}

// NewECLUseCase creates a new ECLUseCase.
func NewECLUseCase(
	loanRepo LoanRepository,
	clientRepo ClientRepository,
	eclRepo ECLResultRepository,
	runRepo RunRepository,
	estimator PDEstimator,
	progress ProgressReporter,
	idGen IDGenerator,
	logger zerolog.Logger,
	m *metrics.Metrics,
	chunkSize, workers int,
) *ECLUseCase {
	return &ECLUseCase{
		loanRepo:   loanRepo,
		clientRepo: clientRepo,
		eclRepo:    eclRepo,
		runRepo:    runRepo,
		estimator:  estimator,
		idGen:      idGen,
		logger:     logger,
		metrics:    m,
		runner: chunkRunner{
			loans:     loanRepo,
			progress:  progress,
			chunkSize: normalizeChunkSize(chunkSize),
			runType:   domain.RunTypeECL,
			metrics:   m,
		},
		workers: normalizeWorkers(workers),
	}
}

// CalculateECLInput represents input for an ECL calculation run.
type CalculateECLInput struct {
	PortfolioID   string
	ReportingDate time.Time
	StagingConfig domain.ECLStagingConfig
}

// StageStat aggregates one IFRS-9 stage across a run.
type StageStat struct {
	LoanCount     int
	TotalSelected decimal.Decimal
}

// ECLSummary is the outcome of an ECL run. Per-loan failures are returned
// alongside the aggregate figures; only config errors and repository
// failures abort the batch.
type ECLSummary struct {
	RunID            string
	TotalLoans       int
	ProcessedLoans   int
	StageStats       map[domain.Stage]StageStat
	TwelveMonthTotal decimal.Decimal
	LifetimeTotal    decimal.Decimal
	SelectedTotal    decimal.Decimal
	PDFallbacks      int
	Unclassified     int
	Errors           []domain.LoanError
	Cancelled        bool
}

// eclAccumulator guards the running totals shared by chunk workers.
type eclAccumulator struct {
	mu      sync.Mutex
	summary *ECLSummary
	results []*domain.ECLResult
}

func (a *eclAccumulator) addResult(result *domain.ECLResult, twelve, lifetime decimal.Decimal) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.results = append(a.results, result)

	stat := a.summary.StageStats[result.Stage]
	stat.LoanCount++
	stat.TotalSelected = stat.TotalSelected.Add(result.SelectedECL)
	a.summary.StageStats[result.Stage] = stat

	a.summary.TwelveMonthTotal = a.summary.TwelveMonthTotal.Add(twelve)
	a.summary.LifetimeTotal = a.summary.LifetimeTotal.Add(lifetime)
	a.summary.SelectedTotal = a.summary.SelectedTotal.Add(result.SelectedECL)
	if result.PDFallback {
		a.summary.PDFallbacks++
	}
}

func (a *eclAccumulator) addError(loanID string, err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.summary.Errors = append(a.summary.Errors, domain.LoanError{LoanID: loanID, Err: err})
}

func (a *eclAccumulator) addUnclassified() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.summary.Unclassified++
}

// CalculateECL runs the ECL calculation for a portfolio.
func (uc *ECLUseCase) CalculateECL(ctx context.Context, input CalculateECLInput) (*ECLSummary, error) {
	if err := input.StagingConfig.Validate(); err != nil {
		return nil, err
	}

	total, err := uc.loanRepo.CountByPortfolio(ctx, input.PortfolioID)
	if err != nil {
		return nil, err
	}

	run := &domain.CalculationRun{
		ID:            uc.idGen.Generate(),
		PortfolioID:   input.PortfolioID,
		Type:          domain.RunTypeECL,
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

	summary := &ECLSummary{
		RunID:            run.ID,
		TotalLoans:       total,
		StageStats:       make(map[domain.Stage]StageStat),
		TwelveMonthTotal: decimal.Zero,
		LifetimeTotal:    decimal.Zero,
		SelectedTotal:    decimal.Zero,
	}

	uc.logger.Info().
		Str("run_id", run.ID).
		Str("portfolio_id", input.PortfolioID).
		Int("total_loans", total).
		Int("workers", uc.workers).
		Msg("starting ecl calculation run")

	processed, cancelled, err := uc.runner.run(ctx, run.ID, input.PortfolioID, total,
		func(ctx context.Context, loans []*domain.Loan) error {
			return uc.calculateChunk(ctx, run.ID, input, loans, summary)
		})

	summary.ProcessedLoans = processed
	summary.Cancelled = cancelled

	if uc.metrics != nil {
		runType := string(run.Type)
		uc.metrics.LoanErrors.WithLabelValues(runType).Add(float64(len(summary.Errors)))
		uc.metrics.UnclassifiedLoans.WithLabelValues(runType).Add(float64(summary.Unclassified))
		uc.metrics.PDFallbacks.Add(float64(summary.PDFallbacks))
	}

	run.ProcessedLoans = processed
	run.FailedLoans = len(summary.Errors)
	if err != nil {
		uc.finishRun(run, domain.RunStatusFailed)
		return nil, err
	}
	if cancelled {
		uc.finishRun(run, domain.RunStatusCancelled)
	} else {
		uc.finishRun(run, domain.RunStatusCompleted)
	}

	uc.logger.Info().
		Str("run_id", run.ID).
		Int("processed", processed).
		Int("failed", len(summary.Errors)).
		Int("pd_fallbacks", summary.PDFallbacks).
		Str("selected_total", summary.SelectedTotal.String()).
		Bool("cancelled", cancelled).
		Msg("ecl calculation run finished")

	return summary, nil
}

func (uc *ECLUseCase) calculateChunk(
	ctx context.Context,
	runID string,
	input CalculateECLInput,
	loans []*domain.Loan,
	summary *ECLSummary,
) error {
	clients, err := uc.clientRepo.GetByBorrowerRefs(ctx, borrowerRefs(loans))
	if err != nil {
		return err
	}

	acc := &eclAccumulator{
		summary: summary,
		results: make([]*domain.ECLResult, 0, len(loans)),
	}
	now := time.Now().UTC()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.workers)

	for _, loan := range loans {
		g.Go(func() error {
			uc.calculateLoan(runID, input, loan, clients[loan.BorrowerRef], now, acc)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	return uc.eclRepo.SaveBatch(ctx, acc.results)
}

// calculateLoan computes one loan. Input invariant violations fail only
// this loan and are collected; nothing here aborts the batch.
func (uc *ECLUseCase) calculateLoan(
	runID string,
	input CalculateECLInput,
	loan *domain.Loan,
	client *domain.Client,
	now time.Time,
	acc *eclAccumulator,
) {
	if err := loan.Validate(); err != nil {
		acc.addError(loan.ID, err)
		return
	}

	// Staging strictly precedes calculation for this loan.
	stage := input.StagingConfig.Classify(loan.DaysInArrears())
	if stage == domain.StageUnclassified {
		acc.addUnclassified()
		return
	}

	var dateOfBirth *time.Time
	if client != nil {
		dateOfBirth = client.DateOfBirth
	}
	pd, fellBack := uc.estimator.ProbabilityOfDefault(dateOfBirth, input.ReportingDate)
	lgd := risk.LossGivenDefault(loan.Principal, loan.OutstandingBalance, decimal.Zero)

	figures, err := risk.ExpectedCreditLoss(risk.ECLInput{
		Principal:     loan.Principal,
		MonthlyRate:   loan.MonthlyRate,
		Arrears:       loan.AccumulatedArrears,
		TermMonths:    loan.TermMonths,
		ElapsedMonths: loan.ElapsedMonths(input.ReportingDate),
		PD:            pd,
		LGD:           lgd,
	})
	if err != nil {
		acc.addError(loan.ID, err)
		return
	}

	selected, err := risk.SelectECL(figures, stage)
	if err != nil {
		acc.addError(loan.ID, err)
		return
	}

	acc.addResult(&domain.ECLResult{
		RunID:          runID,
		LoanID:         loan.ID,
		Stage:          stage,
		PD:             decimal.NewFromFloat(pd),
		LGD:            lgd,
		TwelveMonthECL: figures.TwelveMonth,
		LifetimeECL:    figures.Lifetime,
		SelectedECL:    selected,
		ScheduleMonths: figures.ScheduleMonths,
		PDFallback:     fellBack,
		CalculatedAt:   now,
	}, figures.TwelveMonth, figures.Lifetime)
}

func (uc *ECLUseCase) finishRun(run *domain.CalculationRun, status domain.RunStatus) {
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

func borrowerRefs(loans []*domain.Loan) []string {
	seen := make(map[string]bool, len(loans))

	var refs []string
	for _, loan := range loans {
		if loan.BorrowerRef == "" || seen[loan.BorrowerRef] {
			continue
		}
		seen[loan.BorrowerRef] = true
		refs = append(refs, loan.BorrowerRef)
	}

	return refs
}

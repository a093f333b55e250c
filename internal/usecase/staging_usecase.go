package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/goprovision/internal/domain"
	"github.com/iho/goprovision/internal/infrastructure/metrics"
)

// StagingUseCase classifies every loan of a portfolio under both the
// IFRS-9 staging config and the regulatory impairment config. Each run is a
// full recomputation; prior stage results are superseded, never merged.
type StagingUseCase struct {
	loanRepo  LoanRepository
	stageRepo StageResultRepository
	runRepo   RunRepository
	idGen     IDGenerator
	logger    zerolog.Logger
	metrics   *metrics.Metrics
	runner    chunkRunner
}

// NewStagingUseCase creates a new StagingUseCase.
func NewStagingUseCase(
	loanRepo LoanRepository,
	stageRepo StageResultRepository,
	runRepo RunRepository,
	progress ProgressReporter,
	idGen IDGenerator,
	logger zerolog.Logger,
	m *metrics.Metrics,
	chunkSize int,
) *StagingUseCase {
	return &StagingUseCase{
		loanRepo:  loanRepo,
		stageRepo: stageRepo,
		runRepo:   runRepo,
		idGen:     idGen,
		logger:    logger,
		metrics:   m,
		runner: chunkRunner{
			loans:     loanRepo,
			progress:  progress,
			chunkSize: normalizeChunkSize(chunkSize),
			runType:   domain.RunTypeStaging,
			metrics:   m,
		},
	}
}

// StageLoansInput represents input for a staging run.
type StageLoansInput struct {
	PortfolioID      string
	ReportingDate    time.Time
	ECLConfig        domain.ECLStagingConfig
	ImpairmentConfig domain.LocalImpairmentConfig
}

// StagingSummary is the outcome of a staging run.
type StagingSummary struct {
	RunID          string
	TotalLoans     int
	ProcessedLoans int
	StageCounts    map[domain.Stage]int
	CategoryCounts map[domain.Category]int
	Unclassified   int
	Cancelled      bool
}

// StageLoans stages a portfolio. Malformed configs are rejected before any
// loan is touched; cancellation between chunks returns the partial summary.
func (uc *StagingUseCase) StageLoans(ctx context.Context, input StageLoansInput) (*StagingSummary, error) {
	if err := input.ECLConfig.Validate(); err != nil {
		return nil, err
	}
	if err := input.ImpairmentConfig.Validate(); err != nil {
		return nil, err
	}

	total, err := uc.loanRepo.CountByPortfolio(ctx, input.PortfolioID)
	if err != nil {
		return nil, err
	}

	run := &domain.CalculationRun{
		ID:            uc.idGen.Generate(),
		PortfolioID:   input.PortfolioID,
		Type:          domain.RunTypeStaging,
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

	summary := &StagingSummary{
		RunID:          run.ID,
		TotalLoans:     total,
		StageCounts:    make(map[domain.Stage]int),
		CategoryCounts: make(map[domain.Category]int),
	}

	uc.logger.Info().
		Str("run_id", run.ID).
		Str("portfolio_id", input.PortfolioID).
		Int("total_loans", total).
		Msg("starting staging run")

	processed, cancelled, err := uc.runner.run(ctx, run.ID, input.PortfolioID, total,
		func(ctx context.Context, loans []*domain.Loan) error {
			return uc.stageChunk(ctx, run.ID, input, loans, summary)
		})

	summary.ProcessedLoans = processed
	summary.Cancelled = cancelled

	run.ProcessedLoans = processed
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
		Int("unclassified", summary.Unclassified).
		Bool("cancelled", cancelled).
		Msg("staging run finished")

	return summary, nil
}

func (uc *StagingUseCase) stageChunk(
	ctx context.Context,
	runID string,
	input StageLoansInput,
	loans []*domain.Loan,
	summary *StagingSummary,
) error {
	now := time.Now().UTC()

	results := make([]*domain.StageResult, 0, len(loans))
	for _, loan := range loans {
		days := loan.DaysInArrears()
		stage := input.ECLConfig.Classify(days)
		category := input.ImpairmentConfig.Classify(days)

		if stage == domain.StageUnclassified || category == domain.CategoryUnclassified {
			summary.Unclassified++
		}
		summary.StageCounts[stage]++
		summary.CategoryCounts[category]++

		results = append(results, &domain.StageResult{
			RunID:         runID,
			LoanID:        loan.ID,
			DaysInArrears: days,
			Stage:         stage,
			Category:      category,
			StagedAt:      now,
		})
	}

	return uc.stageRepo.SaveBatch(ctx, results)
}

func (uc *StagingUseCase) finishRun(run *domain.CalculationRun, status domain.RunStatus) {
	now := time.Now().UTC()
	run.Status = status
	run.CompletedAt = &now

	if uc.metrics != nil {
		uc.metrics.RunsFinished.WithLabelValues(string(run.Type), string(status)).Inc()
		uc.metrics.RunDuration.WithLabelValues(string(run.Type)).Observe(now.Sub(run.StartedAt).Seconds())
	}

	// Run bookkeeping must survive the caller's cancellation.
	if err := uc.runRepo.Finish(context.Background(), run); err != nil {
		uc.logger.Error().Err(err).Str("run_id", run.ID).Msg("failed to finish run")
	}
}

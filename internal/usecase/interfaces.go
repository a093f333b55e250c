package usecase

import (
	"context"
	"time"

	"github.com/iho/goprovision/internal/domain"
)

// LoanRepository defines chunked read access to portfolio loans. ListPage
// uses keyset pagination so the engine never holds a full portfolio
// resident at once.
type LoanRepository interface {
	CountByPortfolio(ctx context.Context, portfolioID string) (int, error)
	// ListPage returns up to limit loans of the portfolio with ID greater
	// than afterID, ordered by ID. An empty afterID starts from the top.
	ListPage(ctx context.Context, portfolioID, afterID string, limit int) ([]*domain.Loan, error)
}

// ClientRepository defines batch read access to borrower records.
type ClientRepository interface {
	GetByBorrowerRefs(ctx context.Context, refs []string) (map[string]*domain.Client, error)
}

// RunRepository persists calculation run metadata.
type RunRepository interface {
	Create(ctx context.Context, run *domain.CalculationRun) error
	Finish(ctx context.Context, run *domain.CalculationRun) error
	GetByID(ctx context.Context, id string) (*domain.CalculationRun, error)
}

// StageResultRepository persists staging outcomes. SaveBatch writes a full
// chunk atomically; a chunk is never left half-applied.
type StageResultRepository interface {
	SaveBatch(ctx context.Context, results []*domain.StageResult) error
}

// ECLResultRepository persists expected-credit-loss outcomes per chunk.
type ECLResultRepository interface {
	SaveBatch(ctx context.Context, results []*domain.ECLResult) error
}

// ImpairmentResultRepository persists regulatory provisions per chunk and
// the per-category totals of a run.
type ImpairmentResultRepository interface {
	SaveBatch(ctx context.Context, results []*domain.ImpairmentResult) error
	SaveTotals(ctx context.Context, runID string, totals []domain.CategoryTotal) error
}

// PDEstimator predicts a default probability in [0, 1] for a borrower at
// the reporting date. Implementations never fail; the boolean reports that
// the fixed fallback was used. Implementations must be safe for concurrent
// use by all workers.
type PDEstimator interface {
	ProbabilityOfDefault(dateOfBirth *time.Time, asOf time.Time) (float64, bool)
}

// ProgressReporter receives progress between chunks. Reporting is best
// effort; a failed report never fails the run.
type ProgressReporter interface {
	Report(ctx context.Context, runID string, processed, total int, message string)
}

// IDGenerator generates unique IDs for runs and result rows.
type IDGenerator interface {
	Generate() string
}

package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/goprovision/internal/domain"
)

// RunRepository implements usecase.RunRepository.
type RunRepository struct {
	pool *pgxpool.Pool
}

// NewRunRepository creates a new RunRepository.
func NewRunRepository(pool *pgxpool.Pool) *RunRepository {
	return &RunRepository{pool: pool}
}

// Create inserts a new calculation run in the running state.
func (r *RunRepository) Create(ctx context.Context, run *domain.CalculationRun) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO calculation_runs (
			id, portfolio_id, run_type, status, reporting_date,
			total_loans, processed_loans, failed_loans, started_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		run.ID, run.PortfolioID, string(run.Type), string(run.Status),
		timeToPgDate(run.ReportingDate),
		run.TotalLoans, run.ProcessedLoans, run.FailedLoans,
		timeToPgTimestamptz(run.StartedAt),
	)

	return err
}

// Finish records the terminal state and counters of a run.
func (r *RunRepository) Finish(ctx context.Context, run *domain.CalculationRun) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE calculation_runs
		    SET status = $2, processed_loans = $3, failed_loans = $4, completed_at = $5
		  WHERE id = $1`,
		run.ID, string(run.Status), run.ProcessedLoans, run.FailedLoans,
		timePtrToPgTimestamptz(run.CompletedAt),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrRunNotFound
	}

	return nil
}

// GetByID returns a run by ID, or domain.ErrRunNotFound.
func (r *RunRepository) GetByID(ctx context.Context, id string) (*domain.CalculationRun, error) {
	var (
		run           domain.CalculationRun
		runType       string
		status        string
		reportingDate pgtype.Date
		startedAt     pgtype.Timestamptz
		completedAt   pgtype.Timestamptz
	)

	err := r.pool.QueryRow(ctx,
		`SELECT id, portfolio_id, run_type, status, reporting_date,
		        total_loans, processed_loans, failed_loans, started_at, completed_at
		   FROM calculation_runs
		  WHERE id = $1`,
		id,
	).Scan(
		&run.ID, &run.PortfolioID, &runType, &status, &reportingDate,
		&run.TotalLoans, &run.ProcessedLoans, &run.FailedLoans,
		&startedAt, &completedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRunNotFound
		}

		return nil, err
	}

	run.Type = domain.RunType(runType)
	run.Status = domain.RunStatus(status)
	run.ReportingDate = reportingDate.Time
	run.StartedAt = startedAt.Time
	run.CompletedAt = pgTimestamptzToTimePtr(completedAt)

	return &run, nil
}

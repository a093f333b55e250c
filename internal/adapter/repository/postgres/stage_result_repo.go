package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/goprovision/internal/domain"
)

// StageResultRepository implements usecase.StageResultRepository with
// COPY-based bulk inserts. A chunk is written in one COPY, so a failed
// write leaves no partial chunk behind.
type StageResultRepository struct {
	pool    *pgxpool.Pool
	retrier *Retrier
}

// NewStageResultRepository creates a new StageResultRepository.
func NewStageResultRepository(pool *pgxpool.Pool, retrier *Retrier) *StageResultRepository {
	return &StageResultRepository{pool: pool, retrier: retrier}
}

// SaveBatch bulk-inserts one chunk of staging results.
func (r *StageResultRepository) SaveBatch(ctx context.Context, results []*domain.StageResult) error {
	if len(results) == 0 {
		return nil
	}

	return r.retrier.Retry(ctx, func() error {
		_, err := r.pool.CopyFrom(ctx,
			pgx.Identifier{"stage_results"},
			[]string{"run_id", "loan_id", "days_in_arrears", "stage", "category", "staged_at"},
			pgx.CopyFromSlice(len(results), func(i int) ([]any, error) {
				res := results[i]
				return []any{
					res.RunID, res.LoanID, res.DaysInArrears,
					int(res.Stage), string(res.Category),
					timeToPgTimestamptz(res.StagedAt),
				}, nil
			}),
		)

		return err
	})
}

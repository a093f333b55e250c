package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/goprovision/internal/domain"
)

// ImpairmentResultRepository implements usecase.ImpairmentResultRepository
// with COPY-based bulk inserts for per-loan rows and a plain insert per
// category for run totals.
type ImpairmentResultRepository struct {
	pool    *pgxpool.Pool
	retrier *Retrier
}

// NewImpairmentResultRepository creates a new ImpairmentResultRepository.
func NewImpairmentResultRepository(pool *pgxpool.Pool, retrier *Retrier) *ImpairmentResultRepository {
	return &ImpairmentResultRepository{pool: pool, retrier: retrier}
}

// SaveBatch bulk-inserts one chunk of provision results.
func (r *ImpairmentResultRepository) SaveBatch(ctx context.Context, results []*domain.ImpairmentResult) error {
	if len(results) == 0 {
		return nil
	}

	return r.retrier.Retry(ctx, func() error {
		_, err := r.pool.CopyFrom(ctx,
			pgx.Identifier{"impairment_results"},
			[]string{
				"run_id", "loan_id", "category", "outstanding_balance",
				"rate", "provision", "calculated_at",
			},
			pgx.CopyFromSlice(len(results), func(i int) ([]any, error) {
				res := results[i]
				return []any{
					res.RunID, res.LoanID, string(res.Category),
					decimalToNumeric(res.OutstandingBalance),
					decimalToNumeric(res.Rate),
					decimalToNumeric(res.Provision),
					timeToPgTimestamptz(res.CalculatedAt),
				}, nil
			}),
		)

		return err
	})
}

// SaveTotals writes the per-category aggregates of a completed run. Totals
// for all categories are written in one transaction.
func (r *ImpairmentResultRepository) SaveTotals(ctx context.Context, runID string, totals []domain.CategoryTotal) error {
	return r.retrier.Retry(ctx, func() error {
		tx, err := r.pool.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		for _, total := range totals {
			_, err := tx.Exec(ctx,
				`INSERT INTO impairment_totals (
					run_id, category, loan_count, total_balance, total_provision
				) VALUES ($1, $2, $3, $4, $5)`,
				runID, string(total.Category), total.LoanCount,
				decimalToNumeric(total.TotalBalance),
				decimalToNumeric(total.TotalProvision),
			)
			if err != nil {
				return err
			}
		}

		return tx.Commit(ctx)
	})
}

package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/goprovision/internal/domain"
)

// ECLResultRepository implements usecase.ECLResultRepository with
// COPY-based bulk inserts.
type ECLResultRepository struct {
	pool    *pgxpool.Pool
	retrier *Retrier
}

// NewECLResultRepository creates a new ECLResultRepository.
func NewECLResultRepository(pool *pgxpool.Pool, retrier *Retrier) *ECLResultRepository {
	return &ECLResultRepository{pool: pool, retrier: retrier}
}

// SaveBatch bulk-inserts one chunk of expected-credit-loss results.
func (r *ECLResultRepository) SaveBatch(ctx context.Context, results []*domain.ECLResult) error {
	if len(results) == 0 {
		return nil
	}

	return r.retrier.Retry(ctx, func() error {
		_, err := r.pool.CopyFrom(ctx,
			pgx.Identifier{"ecl_results"},
			[]string{
				"run_id", "loan_id", "stage", "pd", "lgd",
				"twelve_month_ecl", "lifetime_ecl", "selected_ecl",
				"schedule_months", "pd_fallback", "calculated_at",
			},
			pgx.CopyFromSlice(len(results), func(i int) ([]any, error) {
				res := results[i]
				return []any{
					res.RunID, res.LoanID, int(res.Stage),
					decimalToNumeric(res.PD), decimalToNumeric(res.LGD),
					decimalToNumeric(res.TwelveMonthECL),
					decimalToNumeric(res.LifetimeECL),
					decimalToNumeric(res.SelectedECL),
					res.ScheduleMonths, res.PDFallback,
					timeToPgTimestamptz(res.CalculatedAt),
				}, nil
			}),
		)

		return err
	})
}

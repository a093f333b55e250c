package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/goprovision/internal/domain"
)

// LoanRepository implements usecase.LoanRepository. Pages are read with
// keyset pagination so a calculation run never materializes a whole
// portfolio.
type LoanRepository struct {
	pool *pgxpool.Pool
}

// NewLoanRepository creates a new LoanRepository.
func NewLoanRepository(pool *pgxpool.Pool) *LoanRepository {
	return &LoanRepository{pool: pool}
}

// CountByPortfolio returns the number of loans in a portfolio.
func (r *LoanRepository) CountByPortfolio(ctx context.Context, portfolioID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM loans WHERE portfolio_id = $1`,
		portfolioID,
	).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}

// ListPage returns up to limit loans with ID greater than afterID, ordered
// by ID.
func (r *LoanRepository) ListPage(ctx context.Context, portfolioID, afterID string, limit int) ([]*domain.Loan, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, portfolio_id, borrower_ref, principal, term_months,
		        monthly_rate, monthly_installment, accumulated_arrears,
		        outstanding_balance, issue_date, maturity_date
		   FROM loans
		  WHERE portfolio_id = $1 AND id > $2
		  ORDER BY id
		  LIMIT $3`,
		portfolioID, afterID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var loans []*domain.Loan
	for rows.Next() {
		var (
			loan        domain.Loan
			principal   pgtype.Numeric
			rate        pgtype.Numeric
			installment pgtype.Numeric
			arrears     pgtype.Numeric
			balance     pgtype.Numeric
			issueDate   pgtype.Date
			maturity    pgtype.Date
		)

		err := rows.Scan(
			&loan.ID, &loan.PortfolioID, &loan.BorrowerRef,
			&principal, &loan.TermMonths, &rate, &installment,
			&arrears, &balance, &issueDate, &maturity,
		)
		if err != nil {
			return nil, err
		}

		loan.Principal = numericToDecimal(principal)
		loan.MonthlyRate = numericToDecimal(rate)
		loan.MonthlyInstallment = numericToDecimal(installment)
		loan.AccumulatedArrears = numericToDecimal(arrears)
		loan.OutstandingBalance = numericToDecimal(balance)
		loan.IssueDate = issueDate.Time
		loan.MaturityDate = maturity.Time

		loans = append(loans, &loan)
	}

	return loans, rows.Err()
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Loan is an immutable input record for a calculation run. Monetary fields
// use decimal arithmetic; rates are fractions (0.02 means 2% per month).
type Loan struct {
	ID                 string
	PortfolioID        string
	BorrowerRef        string
	Principal          decimal.Decimal
	TermMonths         int
	MonthlyRate        decimal.Decimal
	MonthlyInstallment decimal.Decimal
	AccumulatedArrears decimal.Decimal
	OutstandingBalance decimal.Decimal
	IssueDate          time.Time
	MaturityDate       time.Time
}

// Validate checks the input invariants a loan must satisfy before any
// calculation. A violation fails only this loan, never the batch.
func (l *Loan) Validate() error {
	if l.TermMonths <= 0 {
		return ErrInvalidTerm
	}
	if l.MonthlyInstallment.IsNegative() {
		return ErrNegativeInstallment
	}
	if l.Principal.IsNegative() {
		return ErrNegativePrincipal
	}
	return nil
}

// DaysInArrears computes NDIA from accumulated arrears and the monthly
// installment: arrears/installment months past due, at 30 days per month.
// Zero installment means NDIA 0, never a division by zero.
//
// This is recomputed wherever it is needed; a value captured at ingestion
// time is never trusted across pipeline stages.
func (l *Loan) DaysInArrears() int {
	if !l.MonthlyInstallment.IsPositive() {
		return 0
	}

	days := l.AccumulatedArrears.
		Div(l.MonthlyInstallment).
		Mul(decimal.NewFromInt(30))

	return int(days.IntPart())
}

// ElapsedMonths returns the number of whole calendar months from the loan
// issue date to the reporting date, clamped to [0, TermMonths].
func (l *Loan) ElapsedMonths(reportingDate time.Time) int {
	months := (reportingDate.Year()-l.IssueDate.Year())*12 +
		int(reportingDate.Month()) - int(l.IssueDate.Month())

	if months < 0 {
		months = 0
	}
	if months > l.TermMonths {
		months = l.TermMonths
	}

	return months
}

// RemainingMonths returns the months left on the loan term at the reporting
// date. Zero for loans at or past maturity.
func (l *Loan) RemainingMonths(reportingDate time.Time) int {
	return l.TermMonths - l.ElapsedMonths(reportingDate)
}

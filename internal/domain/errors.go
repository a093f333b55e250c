package domain

import "errors"

var (
	// Loan input invariant violations; fail a single loan, never the batch.
	ErrInvalidTerm         = errors.New("loan term must be positive")
	ErrNegativeInstallment = errors.New("monthly installment must not be negative")
	ErrNegativePrincipal   = errors.New("principal must not be negative")
	ErrNegativeElapsed     = errors.New("elapsed periods must not be negative")

	// Staging errors
	ErrMissingStage = errors.New("loan has no assigned stage")
	ErrUnclassified = errors.New("days in arrears outside all configured ranges")

	// Configuration errors; batch-fatal, rejected before any loan is touched.
	ErrInvalidConfig = errors.New("invalid staging configuration")

	// Lookup errors
	ErrLoanNotFound      = errors.New("loan not found")
	ErrPortfolioNotFound = errors.New("portfolio not found")
	ErrRunNotFound       = errors.New("calculation run not found")
)

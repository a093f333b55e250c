package risk

import (
	"github.com/shopspring/decimal"

	"github.com/iho/goprovision/internal/domain"
)

var one = decimal.NewFromInt(1)

// BalanceAt returns the theoretical outstanding balance of an annuity loan
// after elapsed months of its term:
//
//	B_t = P * ((1+r)^n - (1+r)^t) / ((1+r)^n - 1)
//
// With a zero rate the balance declines linearly, P * (1 - t/n). For
// elapsed >= termMonths the loan is fully amortized and the balance is
// zero. Negative elapsed is a caller error.
func BalanceAt(principal, monthlyRate decimal.Decimal, termMonths, elapsed int) (decimal.Decimal, error) {
	if termMonths <= 0 {
		return decimal.Zero, domain.ErrInvalidTerm
	}
	if elapsed < 0 {
		return decimal.Zero, domain.ErrNegativeElapsed
	}
	if elapsed >= termMonths {
		return decimal.Zero, nil
	}

	if monthlyRate.IsZero() {
		remaining := decimal.NewFromInt(int64(termMonths - elapsed)).
			Div(decimal.NewFromInt(int64(termMonths)))
		return principal.Mul(remaining), nil
	}

	onePlusR := one.Add(monthlyRate)
	atTerm := onePlusR.Pow(decimal.NewFromInt(int64(termMonths)))
	atElapsed := onePlusR.Pow(decimal.NewFromInt(int64(elapsed)))

	return principal.Mul(atTerm.Sub(atElapsed)).Div(atTerm.Sub(one)), nil
}

// ExposureSchedule returns the exposure at default for each future month
// m = 1..(termMonths-elapsed): the theoretical balance at that month plus
// the accumulated arrears carried by the loan.
//
// Loans at or past maturity produce an empty schedule. Residual arrears on
// matured loans are deliberately not treated as exposure here; they are
// provisioned by the regulatory impairment calculation instead.
func ExposureSchedule(principal, monthlyRate, arrears decimal.Decimal, termMonths, elapsed int) ([]decimal.Decimal, error) {
	if termMonths <= 0 {
		return nil, domain.ErrInvalidTerm
	}
	if elapsed < 0 {
		return nil, domain.ErrNegativeElapsed
	}

	remaining := termMonths - elapsed
	if remaining <= 0 {
		return nil, nil
	}

	schedule := make([]decimal.Decimal, 0, remaining)
	for m := 1; m <= remaining; m++ {
		balance, err := BalanceAt(principal, monthlyRate, termMonths, elapsed+m)
		if err != nil {
			return nil, err
		}
		schedule = append(schedule, balance.Add(arrears))
	}

	return schedule, nil
}

package risk

import "github.com/shopspring/decimal"

// PresentValue discounts an amount back by the given number of months at
// the loan's effective monthly rate: amount / (1+r)^m.
func PresentValue(amount, monthlyRate decimal.Decimal, months int) decimal.Decimal {
	if months <= 0 || monthlyRate.IsZero() {
		return amount
	}

	factor := one.Add(monthlyRate).Pow(decimal.NewFromInt(int64(months)))

	return amount.Div(factor)
}

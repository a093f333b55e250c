package risk

import "github.com/shopspring/decimal"

// LossGivenDefault returns the loss-given-default fraction for a loan.
//
// Current policy treats every loan as fully unsecured in this calculation
// context: the result is a constant 1.0 regardless of collateral. The loan
// amount, outstanding balance and collateral value are part of the contract
// so a collateral-sensitive policy can replace this one without changing
// call sites, but they are not load-bearing today. Do not add collateral
// sensitivity here without revisiting the ECL figures that depend on it.
func LossGivenDefault(loanAmount, outstandingBalance, collateralValue decimal.Decimal) decimal.Decimal {
	_ = loanAmount
	_ = outstandingBalance
	_ = collateralValue

	return decimal.NewFromInt(1)
}

package risk

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/goprovision/internal/domain"
)

func TestBalanceAt_Boundaries(t *testing.T) {
	principal := decimal.NewFromInt(10000)
	rate := decimal.NewFromFloat(0.02)

	// At origination the full principal is outstanding.
	balance, err := BalanceAt(principal, rate, 12, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := balance.Sub(principal).Abs(); diff.GreaterThan(decimal.NewFromFloat(0.0001)) {
		t.Fatalf("BalanceAt(t=0) = %s, want %s", balance, principal)
	}

	// At maturity nothing is outstanding.
	balance, err = BalanceAt(principal, rate, 12, 12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !balance.IsZero() {
		t.Fatalf("BalanceAt(t=n) = %s, want 0", balance)
	}

	// Past maturity stays zero.
	balance, err = BalanceAt(principal, rate, 12, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !balance.IsZero() {
		t.Fatalf("BalanceAt(t>n) = %s, want 0", balance)
	}
}

func TestBalanceAt_DeclinesMonotonically(t *testing.T) {
	principal := decimal.NewFromInt(50000)
	rate := decimal.NewFromFloat(0.015)

	prev := principal.Add(one)
	for elapsed := 0; elapsed <= 24; elapsed++ {
		balance, err := BalanceAt(principal, rate, 24, elapsed)
		if err != nil {
			t.Fatalf("unexpected error at month %d: %v", elapsed, err)
		}
		if balance.GreaterThanOrEqual(prev) {
			t.Fatalf("balance at month %d (%s) did not decline from %s", elapsed, balance, prev)
		}
		if balance.IsNegative() {
			t.Fatalf("balance at month %d is negative: %s", elapsed, balance)
		}
		prev = balance
	}
}

func TestBalanceAt_ZeroRateIsLinear(t *testing.T) {
	principal := decimal.NewFromInt(12000)

	balance, err := BalanceAt(principal, decimal.Zero, 12, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !balance.Equal(decimal.NewFromInt(9000)) {
		t.Fatalf("zero-rate balance after 3 of 12 months = %s, want 9000", balance)
	}
}

func TestBalanceAt_InputErrors(t *testing.T) {
	principal := decimal.NewFromInt(10000)

	if _, err := BalanceAt(principal, decimal.Zero, 0, 0); !errors.Is(err, domain.ErrInvalidTerm) {
		t.Fatalf("zero term should return ErrInvalidTerm, got %v", err)
	}
	if _, err := BalanceAt(principal, decimal.Zero, 12, -1); !errors.Is(err, domain.ErrNegativeElapsed) {
		t.Fatalf("negative elapsed should return ErrNegativeElapsed, got %v", err)
	}
}

func TestExposureSchedule(t *testing.T) {
	principal := decimal.NewFromInt(10000)
	rate := decimal.NewFromFloat(0.02)
	arrears := decimal.NewFromInt(500)

	schedule, err := ExposureSchedule(principal, rate, arrears, 12, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(schedule) != 8 {
		t.Fatalf("expected 8 remaining months, got %d", len(schedule))
	}

	// Every exposure carries the arrears on top of the declining balance,
	// so the terminal entry is exactly the arrears.
	last := schedule[len(schedule)-1]
	if !last.Equal(arrears) {
		t.Fatalf("terminal exposure = %s, want arrears %s", last, arrears)
	}

	for i := 1; i < len(schedule); i++ {
		if schedule[i].GreaterThan(schedule[i-1]) {
			t.Fatalf("exposure increased from month %d to %d", i, i+1)
		}
	}
}

func TestExposureSchedule_MaturedLoan(t *testing.T) {
	schedule, err := ExposureSchedule(
		decimal.NewFromInt(10000), decimal.NewFromFloat(0.02),
		decimal.NewFromInt(900), 12, 12,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(schedule) != 0 {
		t.Fatalf("matured loan should have an empty schedule, got %d entries", len(schedule))
	}
}

func TestPresentValue(t *testing.T) {
	amount := decimal.NewFromInt(1000)
	rate := decimal.NewFromFloat(0.1)

	pv := PresentValue(amount, rate, 1)
	want := decimal.NewFromFloat(909.0909)
	if pv.Sub(want).Abs().GreaterThan(decimal.NewFromFloat(0.001)) {
		t.Fatalf("PresentValue(1000, 0.1, 1) = %s, want ~%s", pv, want)
	}

	if got := PresentValue(amount, rate, 0); !got.Equal(amount) {
		t.Fatalf("zero months should not discount, got %s", got)
	}
	if got := PresentValue(amount, decimal.Zero, 12); !got.Equal(amount) {
		t.Fatalf("zero rate should not discount, got %s", got)
	}
}

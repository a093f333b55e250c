package risk

import (
	"github.com/shopspring/decimal"

	"github.com/iho/goprovision/internal/domain"
)

// ECLInput carries everything needed to compute expected credit loss for a
// single loan. PD is a probability in [0, 1]; LGD is a fraction in [0, 1].
type ECLInput struct {
	Principal     decimal.Decimal
	MonthlyRate   decimal.Decimal
	Arrears       decimal.Decimal
	TermMonths    int
	ElapsedMonths int
	PD            float64
	LGD           decimal.Decimal
}

// ECLFigures holds the discounted loss figures for one loan.
type ECLFigures struct {
	TwelveMonth    decimal.Decimal
	Lifetime       decimal.Decimal
	ScheduleMonths int
}

// ExpectedCreditLoss computes the 12-month and lifetime expected credit
// loss for a loan. For each future month m the marginal loss is
// exposure(m) x PD x LGD, discounted to present value at the loan's
// monthly rate. The same scalar PD applies across all future months; there
// is no PD term structure in this version.
//
// A matured loan (no remaining months) has an empty schedule and zero
// figures.
func ExpectedCreditLoss(in ECLInput) (ECLFigures, error) {
	schedule, err := ExposureSchedule(in.Principal, in.MonthlyRate, in.Arrears, in.TermMonths, in.ElapsedMonths)
	if err != nil {
		return ECLFigures{}, err
	}

	figures := ECLFigures{
		TwelveMonth:    decimal.Zero,
		Lifetime:       decimal.Zero,
		ScheduleMonths: len(schedule),
	}

	pd := decimal.NewFromFloat(in.PD)
	for i, exposure := range schedule {
		month := i + 1
		marginal := exposure.Mul(pd).Mul(in.LGD)
		pv := PresentValue(marginal, in.MonthlyRate, month)

		figures.Lifetime = figures.Lifetime.Add(pv)
		if month <= 12 {
			figures.TwelveMonth = figures.TwelveMonth.Add(pv)
		}
	}

	return figures, nil
}

// SelectECL returns the stage-applicable figure: 12-month ECL for Stage 1,
// lifetime ECL for Stages 2 and 3. An unclassified stage is a precondition
// violation; staging always completes before ECL for the same loan.
func SelectECL(figures ECLFigures, stage domain.Stage) (decimal.Decimal, error) {
	switch stage {
	case domain.Stage1:
		return figures.TwelveMonth, nil
	case domain.Stage2, domain.Stage3:
		return figures.Lifetime, nil
	default:
		return decimal.Zero, domain.ErrMissingStage
	}
}

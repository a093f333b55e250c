package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StageResult is the staging outcome for one loan in one run. Results are
// created fresh on every run and superseded, never merged or mutated.
type StageResult struct {
	RunID         string
	LoanID        string
	DaysInArrears int
	Stage         Stage
	Category      Category
	StagedAt      time.Time
}

// ECLResult is the expected-credit-loss outcome for one loan in one run.
type ECLResult struct {
	RunID          string
	LoanID         string
	Stage          Stage
	PD             decimal.Decimal
	LGD            decimal.Decimal
	TwelveMonthECL decimal.Decimal
	LifetimeECL    decimal.Decimal
	SelectedECL    decimal.Decimal
	ScheduleMonths int
	PDFallback     bool
	CalculatedAt   time.Time
}

// ImpairmentResult is the regulatory provision for one loan in one run.
type ImpairmentResult struct {
	RunID              string
	LoanID             string
	Category           Category
	OutstandingBalance decimal.Decimal
	Rate               decimal.Decimal
	Provision          decimal.Decimal
	CalculatedAt       time.Time
}

// CategoryTotal aggregates one regulatory bucket across a run.
type CategoryTotal struct {
	Category       Category
	LoanCount      int
	TotalBalance   decimal.Decimal
	TotalProvision decimal.Decimal
}

// LoanError records a per-loan failure. The batch continues; failures are
// returned alongside successful results.
type LoanError struct {
	LoanID string
	Err    error
}

// RunType names the kind of calculation a run performs.
type RunType string

const (
	RunTypeStaging    RunType = "staging"
	RunTypeECL        RunType = "ecl"
	RunTypeImpairment RunType = "local_impairment"
)

// RunStatus is the lifecycle state of a calculation run.
type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusCancelled RunStatus = "cancelled"
	RunStatusFailed    RunStatus = "failed"
)

// CalculationRun is the metadata of one engine invocation. Result rows are
// owned by the run that produced them.
type CalculationRun struct {
	ID             string
	PortfolioID    string
	Type           RunType
	Status         RunStatus
	ReportingDate  time.Time
	TotalLoans     int
	ProcessedLoans int
	FailedLoans    int
	StartedAt      time.Time
	CompletedAt    *time.Time
}

package risk

import (
	"math"
	"time"
)

// FallbackPD is the fixed default probability returned whenever the model
// cannot be evaluated. It is the circuit breaker for the ECL pipeline: the
// estimator never fails, it falls back.
const FallbackPD = 0.05

// LogisticModel is a pretrained single-feature logistic regression scoring
// default probability from borrower age. The artifact is loaded once per
// process, held read-only for the process lifetime and never reloaded
// mid-batch, so it may be shared by all workers without locking.
type LogisticModel struct {
	Intercept      float64 `json:"intercept"`
	AgeCoefficient float64 `json:"age_coefficient"`
}

// Probability scores a borrower age through the model.
func (m *LogisticModel) Probability(age int) (float64, error) {
	return scoreProbability(
		[]float64{m.Intercept, m.AgeCoefficient},
		[]float64{1.0, float64(age)},
	)
}

// PDEstimator wraps the pretrained model with the fallback policy.
type PDEstimator struct {
	model    *LogisticModel
	fallback float64
}

// NewPDEstimator creates an estimator around an injected model artifact.
// A nil model is allowed; every prediction then uses the fallback.
func NewPDEstimator(model *LogisticModel) *PDEstimator {
	return &PDEstimator{
		model:    model,
		fallback: FallbackPD,
	}
}

// ProbabilityOfDefault predicts the default probability for a borrower at
// the reporting date. The second return value reports whether the fallback
// was used: missing date of birth, missing model artifact, or a score that
// is not a finite probability all resolve to the fallback, silently.
func (e *PDEstimator) ProbabilityOfDefault(dateOfBirth *time.Time, asOf time.Time) (float64, bool) {
	if e.model == nil || dateOfBirth == nil {
		return e.fallback, true
	}

	age := ageAt(*dateOfBirth, asOf)
	if age < 0 {
		return e.fallback, true
	}

	pd, err := e.model.Probability(age)
	if err != nil || math.IsNaN(pd) || math.IsInf(pd, 0) {
		return e.fallback, true
	}

	if pd < 0 {
		pd = 0
	}
	if pd > 1 {
		pd = 1
	}

	return pd, false
}

func ageAt(dateOfBirth, asOf time.Time) int {
	age := asOf.Year() - dateOfBirth.Year()
	if asOf.Month() < dateOfBirth.Month() ||
		(asOf.Month() == dateOfBirth.Month() && asOf.Day() < dateOfBirth.Day()) {
		age--
	}
	return age
}

package risk

import (
	"math"
	"testing"
	"time"
)

func TestLogistic(t *testing.T) {
	if got := logistic(0); math.Abs(got-0.5) > 1e-12 {
		t.Fatalf("logistic(0) = %f, want 0.5", got)
	}
	if got := logistic(100); got < 0.999 {
		t.Fatalf("logistic(100) = %f, want ~1", got)
	}
	if got := logistic(-100); got > 0.001 {
		t.Fatalf("logistic(-100) = %f, want ~0", got)
	}
}

func TestDotProduct(t *testing.T) {
	got, err := dotProduct([]float64{1, 2, 3}, []float64{4, 5, 6})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 32 {
		t.Fatalf("dotProduct = %f, want 32", got)
	}

	if _, err := dotProduct([]float64{1, 2}, []float64{1}); err == nil {
		t.Fatalf("expected error for mismatched vector sizes")
	}
}

func TestLogisticModel_Probability(t *testing.T) {
	model := &LogisticModel{Intercept: -2.0, AgeCoefficient: 0.05}

	pd, err := model.Probability(40)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// -2.0 + 0.05*40 = 0, so the link returns exactly 0.5.
	if math.Abs(pd-0.5) > 1e-12 {
		t.Fatalf("Probability(40) = %f, want 0.5", pd)
	}
}

func TestPDEstimator_Fallbacks(t *testing.T) {
	asOf := time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)
	dob := time.Date(1985, time.April, 2, 0, 0, 0, 0, time.UTC)
	futureDOB := time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		model        *LogisticModel
		dateOfBirth  *time.Time
		wantFallback bool
	}{
		{
			name:         "no model artifact",
			model:        nil,
			dateOfBirth:  &dob,
			wantFallback: true,
		},
		{
			name:         "no date of birth",
			model:        &LogisticModel{Intercept: -2, AgeCoefficient: 0.05},
			dateOfBirth:  nil,
			wantFallback: true,
		},
		{
			name:         "date of birth in the future",
			model:        &LogisticModel{Intercept: -2, AgeCoefficient: 0.05},
			dateOfBirth:  &futureDOB,
			wantFallback: true,
		},
		{
			name:         "model scores normally",
			model:        &LogisticModel{Intercept: -2, AgeCoefficient: 0.05},
			dateOfBirth:  &dob,
			wantFallback: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			estimator := NewPDEstimator(tt.model)

			pd, fellBack := estimator.ProbabilityOfDefault(tt.dateOfBirth, asOf)
			if fellBack != tt.wantFallback {
				t.Fatalf("fallback = %v, want %v", fellBack, tt.wantFallback)
			}
			if tt.wantFallback && pd != FallbackPD {
				t.Fatalf("fallback pd = %f, want %f", pd, FallbackPD)
			}
			if pd < 0 || pd > 1 {
				t.Fatalf("pd %f outside [0, 1]", pd)
			}
		})
	}
}

func TestPDEstimator_NeverFails(t *testing.T) {
	// A pathological artifact must still resolve to the fallback, silently.
	estimator := NewPDEstimator(&LogisticModel{
		Intercept:      math.Inf(1),
		AgeCoefficient: math.NaN(),
	})

	dob := time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC)
	asOf := time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)

	pd, fellBack := estimator.ProbabilityOfDefault(&dob, asOf)
	if !fellBack || pd != FallbackPD {
		t.Fatalf("expected fallback for pathological model, got pd=%f fallback=%v", pd, fellBack)
	}
}

package risk

import (
	"errors"
	"math"
)

var errFeatureMismatch = errors.New("coefficients and features are of varying size")

// dotProduct computes the dot product of coefficient and feature vectors.
func dotProduct(coefficients, features []float64) (float64, error) {
	if len(coefficients) != len(features) {
		return 0, errFeatureMismatch
	}

	var prod float64
	for i := range coefficients {
		prod += coefficients[i] * features[i]
	}

	return prod, nil
}

// logistic is the canonical logistic link function.
func logistic(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// scoreProbability maps features through a trained logistic regression to a
// probability in [0, 1].
func scoreProbability(coefficients, features []float64) (float64, error) {
	dot, err := dotProduct(coefficients, features)
	if err != nil {
		return 0, err
	}

	return logistic(dot), nil
}

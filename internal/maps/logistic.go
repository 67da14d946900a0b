package maps

import (
	"math"

	"github.com/san-kum/chaosmap/internal/dynamo"
)

// Logistic returns r * x * (1 - x). Non-finite inputs propagate as-is.
func Logistic(x, r float64) float64 {
	return r * x * (1 - x)
}

// Evaluate is the scalar evaluator of the default map.
func Evaluate(x, r float64) float64 {
	return Logistic(x, r)
}

// EvaluateBatch evaluates the logistic map element-wise with broadcasting.
func EvaluateBatch(x, r dynamo.State) (dynamo.State, error) {
	return dynamo.Recurrence(Logistic).Apply(nil, x, r)
}

// Tent is the tent map scaled so r in [0, 4] spans the same range as the
// logistic map: x < 0.5 -> r*x/2, else r*(1-x)/2.
func Tent(x, r float64) float64 {
	if x < 0.5 {
		return r * x / 2
	}
	return r * (1 - x) / 2
}

// Sine is the sine map r/4 * sin(pi * x).
func Sine(x, r float64) float64 {
	return r / 4 * math.Sin(math.Pi*x)
}

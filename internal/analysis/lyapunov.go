package analysis

import (
	"math"

	"github.com/san-kum/chaosmap/internal/dynamo"
)

// LyapunovExponent estimates the largest Lyapunov exponent of f at parameter
// r using the orbit separation method. A positive value indicates chaos.
//
// Algorithm:
// 1. Discard the transient, then run two orbits perturbation apart
// 2. Measure their separation after every step
// 3. Renormalize the separation back to perturbation
// 4. λ ≈ mean of ln(δ_n / δ_0)
//
// Returns NaN when the orbit leaves the finite reals.
func LyapunovExponent(f dynamo.Recurrence, x0, r float64, discard, n int, perturbation float64) float64 {
	if n <= 0 || perturbation <= 0 {
		return 0
	}

	x := x0
	for i := 0; i < discard; i++ {
		x = f(x, r)
	}
	xp := x + perturbation

	sumLog := 0.0
	count := 0

	for i := 0; i < n; i++ {
		x = f(x, r)
		xp = f(xp, r)

		sep := math.Abs(xp - x)
		if math.IsNaN(sep) || math.IsInf(sep, 0) {
			return math.NaN()
		}
		if sep == 0 {
			// Orbits merged; restart the perturbation.
			xp = x + perturbation
			continue
		}

		sumLog += math.Log(sep / perturbation)
		count++

		xp = x + (xp-x)*perturbation/sep
	}

	if count == 0 {
		return math.Inf(-1)
	}
	return sumLog / float64(count)
}

// LyapunovSpectrum computes the exponent for every parameter value. Values
// are independent and computed across workers goroutines.
func LyapunovSpectrum(f dynamo.Recurrence, x0 float64, rs dynamo.State, discard, n int, perturbation float64, workers int) []float64 {
	spectrum := make([]float64, len(rs))
	dynamo.ParallelFor(len(rs), workers, 16, func(start, end int) {
		for i := start; i < end; i++ {
			spectrum[i] = LyapunovExponent(f, x0, rs[i], discard, n, perturbation)
		}
	})
	return spectrum
}

// LogisticLyapunov computes the exponent of the logistic map from its
// derivative r(1 - 2x), averaged along the orbit.
func LogisticLyapunov(x0, r float64, discard, n int) float64 {
	x := x0
	for i := 0; i < discard; i++ {
		x = r * x * (1 - x)
	}

	sum := 0.0
	for i := 0; i < n; i++ {
		sum += math.Log(math.Abs(r * (1 - 2*x)))
		x = r * x * (1 - x)
	}
	return sum / float64(n)
}

package analysis

import (
	"fmt"
	"math"
)

// Chaotic is returned by DetectPeriod when no period up to the limit fits.
const Chaotic = -1

// DetectPeriod finds the smallest period of a recorded attractor. It tests
// every period from 1 up to maxPeriod and needs at least 2*maxPeriod values;
// shorter input returns Chaotic.
func DetectPeriod(values []float64, tol float64, maxPeriod int) int {
	if maxPeriod < 1 || len(values) < 2*maxPeriod {
		return Chaotic
	}

	for period := 1; period <= maxPeriod; period++ {
		periodic := true
		for i := 0; i+period < len(values); i++ {
			d := math.Abs(values[i] - values[i+period])
			if !(d <= tol) {
				periodic = false
				break
			}
		}
		if periodic {
			return period
		}
	}
	return Chaotic
}

// DescribePeriod gives a short label for a detected period.
func DescribePeriod(period int) string {
	switch {
	case period == Chaotic:
		return "chaotic"
	case period == 1:
		return "fixed point"
	default:
		return fmt.Sprintf("period-%d", period)
	}
}

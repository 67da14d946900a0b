package analysis

import (
	"math"
	"strings"

	"github.com/san-kum/chaosmap/internal/dynamo"
	"github.com/san-kum/chaosmap/internal/iterate"
)

// DefaultResolution quantizes attractor values to 1e-3 when collapsing
// repeated visits.
const DefaultResolution = 1000.0

// BifurcationPoint represents the attractor observed for one parameter value.
type BifurcationPoint struct {
	Param  float64
	Values []float64 // Distinct values, in order of first visit
}

// BifurcationPoints reduces every column of a sweep table to its distinct
// finite values. Values closer than 1/resolution collapse into one.
func BifurcationPoints(table *iterate.Table, resolution float64) []BifurcationPoint {
	if resolution <= 0 {
		resolution = DefaultResolution
	}

	results := make([]BifurcationPoint, 0, table.NumCols())
	for k, param := range table.Params {
		seen := make(map[int64]bool)
		values := make([]float64, 0, 8)

		for i := 0; i < table.NumRows(); i++ {
			val := table.At(i, k)
			if math.IsNaN(val) || math.IsInf(val, 0) {
				continue
			}
			scaled := math.Round(val * resolution)
			if math.Abs(scaled) >= 1<<62 {
				continue
			}
			key := int64(scaled)
			if !seen[key] {
				seen[key] = true
				values = append(values, val)
			}
		}

		results = append(results, BifurcationPoint{Param: param, Values: values})
	}
	return results
}

// BifurcationDiagram sweeps f over steps parameter values in [paramMin,
// paramMax] and records the distinct attractor values of each.
func BifurcationDiagram(
	f dynamo.Recurrence,
	x0 float64,
	paramMin, paramMax float64,
	paramSteps int,
	discard, retain int,
	opts ...iterate.Option,
) ([]BifurcationPoint, error) {
	rs, err := iterate.LinearRange(paramMin, paramMax, paramSteps)
	if err != nil {
		return nil, err
	}
	table, err := iterate.Sweep(f, x0, discard, retain, rs, opts...)
	if err != nil {
		return nil, err
	}
	return BifurcationPoints(table, DefaultResolution), nil
}

// BifurcationToASCII converts bifurcation data to ASCII art
func BifurcationToASCII(data []BifurcationPoint, width, height int) string {
	if len(data) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	var minVal, maxVal float64
	foundFirst := false
	for _, p := range data {
		for _, v := range p.Values {
			if !foundFirst {
				minVal, maxVal = v, v
				foundFirst = true
				continue
			}
			minVal = math.Min(minVal, v)
			maxVal = math.Max(maxVal, v)
		}
	}
	if !foundFirst {
		return ""
	}

	if maxVal == minVal {
		maxVal = minVal + 1
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	for i, p := range data {
		col := i * width / len(data)
		if col >= width {
			col = width - 1
		}

		for _, v := range p.Values {
			row := height - 1 - int((v-minVal)/(maxVal-minVal)*float64(height-1))
			if row >= 0 && row < height {
				canvas[row][col] = '•'
			}
		}
	}

	var b strings.Builder
	for _, row := range canvas {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

package viz

import (
	"math"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/chaosmap/internal/iterate"
)

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func finiteBounds(values []float64) (lo, hi float64, ok bool) {
	for _, v := range values {
		if !isFinite(v) {
			continue
		}
		if !ok {
			lo, hi, ok = v, v, true
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi, ok
}

// PlotTrajectory draws an orbit as an asciigraph line plot. The y axis
// always includes [0, 1]; diverged values are left as gaps.
func PlotTrajectory(values []float64, caption string, width, height int) string {
	data := make([]float64, len(values))
	for i, v := range values {
		if isFinite(v) {
			data[i] = v
		} else {
			data[i] = math.NaN()
		}
	}
	if _, _, ok := finiteBounds(data); !ok {
		return caption + ": no finite values\n"
	}

	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(1),
		asciigraph.Precision(3),
		asciigraph.Caption(caption),
	)
}

// DiagramBraille draws every point of a sweep table on a braille canvas of
// cols x rows characters. x is the parameter, y the recorded state.
func DiagramBraille(table *iterate.Table, cols, rows int) *Canvas {
	canvas := NewCanvas(cols, rows)
	if table == nil || table.NumCols() == 0 {
		return canvas
	}

	xMin, xMax := table.Params[0], table.Params[len(table.Params)-1]
	if xMin > xMax {
		xMin, xMax = xMax, xMin
	}

	all := make([]float64, 0, table.NumRows()*table.NumCols())
	for i := 0; i < table.NumRows(); i++ {
		all = append(all, table.Row(i)...)
	}
	yMin, yMax, ok := finiteBounds(all)
	if !ok {
		return canvas
	}

	for _, p := range table.Points() {
		canvas.Plot(p.R, p.X, xMin, xMax, yMin, yMax)
	}
	return canvas
}

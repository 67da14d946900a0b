package render

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/san-kum/chaosmap/internal/iterate"
)

// Figure holds the layout shared by every frame of an animation.
type Figure struct {
	Title  string
	Width  int
	Height int
	// YMin and YMax fix the state axis. Both zero means [0, 1].
	YMin, YMax float64
}

func (f Figure) yRange() (float64, float64) {
	if f.YMin == 0 && f.YMax == 0 {
		return 0, 1
	}
	return f.YMin, f.YMax
}

func (f Figure) size() (int, int) {
	w, h := f.Width, f.Height
	if w <= 0 {
		w = 800
	}
	if h <= 0 {
		h = 600
	}
	return w, h
}

// TrajectoryFrame draws one orbit as a line plot of x_n against n. Values
// beyond the y window are pinned just outside it.
func TrajectoryFrame(fig Figure, values []float64, label string) (image.Image, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("render: empty trajectory")
	}
	yMin, yMax := fig.yRange()
	pad := (yMax - yMin) * 0.05

	xs := make([]float64, len(values))
	ys := make([]float64, len(values))
	for i, v := range values {
		xs[i] = float64(i)
		switch {
		case math.IsNaN(v):
			ys[i] = yMin - pad
		default:
			ys[i] = math.Min(math.Max(v, yMin-pad), yMax+pad)
		}
	}

	w, h := fig.size()
	graph := chart.Chart{
		Title:  fig.Title,
		Width:  w,
		Height: h,
		XAxis: chart.XAxis{
			Name:  "n",
			Range: &chart.ContinuousRange{Min: 0, Max: math.Max(float64(len(values)-1), 1)},
		},
		YAxis: chart.YAxis{
			Name:  "x_n",
			Range: &chart.ContinuousRange{Min: yMin, Max: yMax},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    label,
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: chart.ColorBlue,
					StrokeWidth: 1.5,
					DotColor:    chart.ColorBlue,
					DotWidth:    2,
				},
			},
		},
	}
	if label != "" {
		graph.Elements = []chart.Renderable{chart.LegendThin(&graph)}
	}
	return renderPNG(graph)
}

// BifurcationFrame draws every cell of a sweep table as a small dot at
// (param, state). The x axis spans [xMin, xMax]; points outside the window
// or non-finite are dropped.
func BifurcationFrame(fig Figure, table *iterate.Table, xMin, xMax float64) (image.Image, error) {
	if table == nil || table.NumCols() == 0 {
		return nil, fmt.Errorf("render: empty sweep table")
	}
	yMin, yMax := fig.yRange()

	pts := table.Points()
	xs := make([]float64, 0, len(pts))
	ys := make([]float64, 0, len(pts))
	for _, p := range pts {
		if math.IsNaN(p.X) || p.X < yMin || p.X > yMax {
			continue
		}
		xs = append(xs, p.R)
		ys = append(ys, p.X)
	}
	// go-chart rejects a series with no values; park one dot off-window.
	if len(xs) == 0 {
		xs, ys = []float64{xMin}, []float64{yMin}
	}
	if xMax <= xMin {
		xMax = xMin + 1
	}

	w, h := fig.size()
	graph := chart.Chart{
		Title:  fig.Title,
		Width:  w,
		Height: h,
		XAxis: chart.XAxis{
			Name:  "r",
			Range: &chart.ContinuousRange{Min: xMin, Max: xMax},
		},
		YAxis: chart.YAxis{
			Name:  "x",
			Range: &chart.ContinuousRange{Min: yMin, Max: yMax},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotColor:    drawing.ColorBlack,
					DotWidth:    0.5,
				},
			},
		},
	}
	return renderPNG(graph)
}

func renderPNG(graph chart.Chart) (image.Image, error) {
	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decode chart: %w", err)
	}
	return img, nil
}

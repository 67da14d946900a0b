package viz

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/chaosmap/internal/analysis"
	"github.com/san-kum/chaosmap/internal/dynamo"
	"github.com/san-kum/chaosmap/internal/iterate"
)

// ExplorerConfig describes the parameter window the explorer scrubs over.
type ExplorerConfig struct {
	Name        string
	Map         dynamo.Recurrence
	X0          float64
	Start, Stop float64
	Values      int
	Discard     int
	Retain      int
	Samples     int
}

// Explorer is a Bubble Tea model: a live trajectory for the current r, the
// bifurcation diagram of the whole window and a regime readout.
type Explorer struct {
	cfg     ExplorerConfig
	r, step float64
	values  int

	diagram *iterate.Table
	orbit   []float64
	period  int
	lambda  float64
	err     error

	width, height int
}

func NewExplorer(cfg ExplorerConfig) (*Explorer, error) {
	rs, err := iterate.LinearRange(cfg.Start, cfg.Stop, cfg.Samples)
	if err != nil {
		return nil, err
	}
	diagram, err := iterate.Sweep(cfg.Map, cfg.X0, cfg.Discard, cfg.Retain, rs)
	if err != nil {
		return nil, err
	}

	e := &Explorer{
		cfg:     cfg,
		r:       cfg.Start,
		step:    (cfg.Stop - cfg.Start) / 100,
		values:  cfg.Values,
		diagram: diagram,
		width:   80,
		height:  24,
	}
	e.recompute()
	return e, nil
}

func (e *Explorer) recompute() {
	e.orbit, e.err = iterate.Trajectory(e.cfg.Map, e.cfg.X0, e.values, e.r)
	if e.err != nil {
		return
	}
	tail, err := iterate.Sweep(e.cfg.Map, e.cfg.X0, e.cfg.Discard, 128, dynamo.State{e.r})
	if err != nil {
		e.err = err
		return
	}
	e.period = analysis.DetectPeriod(tail.Column(0), 1e-6, 32)
	e.lambda = analysis.LyapunovExponent(e.cfg.Map, e.cfg.X0, e.r, e.cfg.Discard, 2000, 1e-9)
}

// R returns the parameter currently shown.
func (e *Explorer) R() float64 { return e.r }

func (e *Explorer) Init() tea.Cmd { return nil }

func (e *Explorer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		e.width, e.height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return e, tea.Quit
		case "right", "l":
			e.r = math.Min(e.r+e.step, e.cfg.Stop)
		case "left", "h":
			e.r = math.Max(e.r-e.step, e.cfg.Start)
		case "up", "k":
			e.step *= 2
		case "down", "j":
			e.step /= 2
		case "+", "=":
			e.values *= 2
		case "-", "_":
			if e.values > 2 {
				e.values /= 2
			}
		default:
			return e, nil
		}
		e.recompute()
	}
	return e, nil
}

func (e *Explorer) View() string {
	var b strings.Builder

	b.WriteString(HeaderStyle.Render(fmt.Sprintf("%s map explorer", e.cfg.Name)))
	b.WriteString("\n")

	if e.err != nil {
		b.WriteString(Chaotic.Render(e.err.Error()))
		b.WriteString("\n")
		return b.String()
	}

	regime := Periodic.Render(analysis.DescribePeriod(e.period))
	if e.period == analysis.Chaotic {
		regime = Chaotic.Render(analysis.DescribePeriod(e.period))
	}
	b.WriteString(strings.Join([]string{
		Metric("r", fmt.Sprintf("%.5f", e.r)),
		Metric("step", fmt.Sprintf("%.2g", e.step)),
		Metric("n", fmt.Sprintf("%d", e.values)),
		Metric("λ", fmt.Sprintf("%+.4f", e.lambda)),
		regime,
	}, "  "))
	b.WriteString("\n\n")

	plotWidth := max(e.width-12, 20)
	b.WriteString(PlotTrajectory(e.orbit, fmt.Sprintf("x_n for r=%.4f", e.r), plotWidth, 10))
	b.WriteString("\n\n")

	cols := max(e.width-4, 20)
	rows := max(e.height-22, 6)
	canvas := DiagramBraille(e.diagram, cols, rows)
	e.markParameter(canvas)
	b.WriteString(Panel.Render(strings.TrimSuffix(canvas.String(), "\n")))
	b.WriteString("\n")
	b.WriteString(KeyHint.Render("←/→ move r  ↑/↓ step  +/- length  q quit"))
	b.WriteString("\n")

	return b.String()
}

func (e *Explorer) markParameter(c *Canvas) {
	lo, hi := e.cfg.Start, e.cfg.Stop
	if hi <= lo {
		return
	}
	x := int(math.Round((e.r - lo) / (hi - lo) * float64(c.Width*2-1)))
	c.DrawLine(x, 0, x, c.Height*4-1)
}

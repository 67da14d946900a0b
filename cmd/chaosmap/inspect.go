package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/san-kum/chaosmap/internal/analysis"
	"github.com/san-kum/chaosmap/internal/automation"
	"github.com/san-kum/chaosmap/internal/config"
	"github.com/san-kum/chaosmap/internal/iterate"
	"github.com/san-kum/chaosmap/internal/maps"
	"github.com/san-kum/chaosmap/internal/storage"
	"github.com/san-kum/chaosmap/internal/trace"
	"github.com/san-kum/chaosmap/internal/viz"
)

func runTrajectory(cmd *cobra.Command, args []string) (err error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	e, err := setup()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := e.close(); err == nil {
			err = cerr
		}
	}()

	f, err := e.maps.Get(cfg.Map)
	if err != nil {
		return err
	}
	f = trace.Wrap(f, e.tracer, cfg.Map)

	done := e.tracer.Call("trajectory",
		trace.Float64("x0", cfg.X0), trace.Int("n", cfg.Trajectory.Values), trace.Float64("r", rParam))
	orbit, err := iterate.Trajectory(f, cfg.X0, cfg.Trajectory.Values, rParam)
	done(err)
	if err != nil {
		return err
	}
	e.metrics.AddEvaluations(cfg.Map, cfg.Trajectory.Values-1)

	fmt.Println(viz.PlotTrajectory(orbit, fmt.Sprintf("%s map, r=%.4f, x0=%.4f", cfg.Map, rParam, cfg.X0), 80, 15))
	fmt.Println()
	fmt.Println(viz.SparklineChart(orbit, 80))
	return nil
}

func runDiagram(cmd *cobra.Command, args []string) (err error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	e, err := setup()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := e.close(); err == nil {
			err = cerr
		}
	}()

	f, err := e.maps.Get(cfg.Map)
	if err != nil {
		return err
	}
	f = trace.Wrap(f, e.tracer, cfg.Map)
	title := viz.Title.Render(fmt.Sprintf("bifurcation diagram: %s, r in [%g, %g]", cfg.Map, cfg.Start, cfg.Stop))

	if asciiMode {
		done := e.tracer.Call("bifurcation_diagram",
			trace.Float64("x0", cfg.X0), trace.Int("discard", cfg.Sweep.Discard),
			trace.Int("retain", cfg.Sweep.Retain), trace.Int("lanes", cfg.Sweep.Samples))
		points, err := analysis.BifurcationDiagram(f, cfg.X0, cfg.Start, cfg.Stop, cfg.Sweep.Samples,
			cfg.Sweep.Discard, cfg.Sweep.Retain, iterate.WithWorkers(cfg.Workers))
		done(err)
		if err != nil {
			return err
		}
		e.metrics.AddEvaluations(cfg.Map, (cfg.Sweep.Discard+cfg.Sweep.Retain)*cfg.Sweep.Samples)

		fmt.Println(title)
		fmt.Print(analysis.BifurcationToASCII(points, cols, rows))
		return nil
	}

	rs, err := iterate.LinearRange(cfg.Start, cfg.Stop, cfg.Sweep.Samples)
	if err != nil {
		return err
	}
	done := e.tracer.Call("sweep",
		trace.Float64("x0", cfg.X0), trace.Int("discard", cfg.Sweep.Discard),
		trace.Int("retain", cfg.Sweep.Retain), trace.Int("lanes", len(rs)))
	tbl, err := iterate.Sweep(f, cfg.X0, cfg.Sweep.Discard, cfg.Sweep.Retain, rs, iterate.WithWorkers(cfg.Workers))
	done(err)
	if err != nil {
		return err
	}
	e.metrics.AddEvaluations(cfg.Map, (cfg.Sweep.Discard+cfg.Sweep.Retain)*len(rs))

	fmt.Println(title)
	canvas := viz.DiagramBraille(tbl, cols, rows)
	fmt.Print(canvas.String())

	if svgPath == "" {
		return nil
	}
	out, err := os.Create(svgPath)
	if err != nil {
		return err
	}
	if err := canvas.WriteSVG(out, 4); err != nil {
		out.Close()
		return err
	}
	e.logger.Info("diagram svg written", "path", svgPath)
	return out.Close()
}

func runAnalyze(cmd *cobra.Command, args []string) (err error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	e, err := setup()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := e.close(); err == nil {
			err = cerr
		}
	}()

	f, err := e.maps.Get(cfg.Map)
	if err != nil {
		return err
	}

	rs, err := iterate.LinearRange(cfg.Start, cfg.Stop, points)
	if err != nil {
		return err
	}
	tbl, err := iterate.Sweep(f, cfg.X0, cfg.Sweep.Discard, cfg.Sweep.Retain, rs, iterate.WithWorkers(cfg.Workers))
	if err != nil {
		return err
	}
	lyap := analysis.LyapunovSpectrum(f, cfg.X0, rs, cfg.Sweep.Discard, 2000, 1e-9, cfg.Workers)
	e.metrics.AddEvaluations(cfg.Map, (cfg.Sweep.Discard+cfg.Sweep.Retain)*len(rs))

	maxPeriod := min(32, cfg.Sweep.Retain/2)

	// The logistic map also gets the exponent from its derivative r(1-2x).
	exact := cfg.Map == maps.Default
	headers := []string{"r", "period", "lyapunov"}
	if exact {
		headers = append(headers, "derivative")
	}
	headers = append(headers, "attractor")
	if trials > 0 {
		headers = append(headers, "stable")
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(viz.Subtle).
		Headers(headers...)

	for k, r := range rs {
		period := analysis.DetectPeriod(tbl.Column(k), 1e-6, maxPeriod)
		row := []string{
			fmt.Sprintf("%.4f", r),
			analysis.DescribePeriod(period),
			formatExponent(lyap[k]),
		}
		if exact {
			row = append(row, formatExponent(analysis.LogisticLyapunov(cfg.X0, r, cfg.Sweep.Discard, 2000)))
		}
		row = append(row, viz.SparklineChart(tbl.Column(k), 24))
		if trials > 0 {
			stable, err := stableFraction(cmd.Context(), e, cfg, r)
			if err != nil {
				return err
			}
			row = append(row, fmt.Sprintf("%.0f%%", stable*100))
		}
		t.Row(row...)
	}

	fmt.Println(viz.Title.Render(fmt.Sprintf("%s map, x0=%.4f, discard=%d, retain=%d", cfg.Map, cfg.X0, cfg.Sweep.Discard, cfg.Sweep.Retain)))
	fmt.Println(t.Render())
	return nil
}

func formatExponent(v float64) string {
	switch {
	case math.IsNaN(v):
		return viz.Chaotic.Render("diverged")
	case v > 0:
		return viz.Chaotic.Render(fmt.Sprintf("%+.4f", v))
	default:
		return viz.Periodic.Render(fmt.Sprintf("%+.4f", v))
	}
}

func stableFraction(ctx context.Context, e *env, cfg *config.Config, r float64) (float64, error) {
	results, err := automation.RunMonteCarlo(ctx, &automation.MonteCarloConfig{
		Map:          cfg.Map,
		R:            r,
		BaseX0:       cfg.X0,
		Perturbation: 0.1,
		NumTrials:    trials,
		Values:       cfg.Trajectory.Values,
		Seed:         1,
	}, e.maps)
	if err != nil {
		return 0, err
	}
	stable, _ := automation.MonteCarloStats(results)
	return float64(stable) / float64(len(results)), nil
}

func runExplore(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	return withEnv(func(e *env) error {
		return explore(e, cfg)
	})
}

func explore(e *env, cfg *config.Config) error {
	f, err := e.maps.Get(cfg.Map)
	if err != nil {
		return err
	}

	samples := min(cfg.Sweep.Samples, 400)
	explorer, err := viz.NewExplorer(viz.ExplorerConfig{
		Name:    cfg.Map,
		Map:     f,
		X0:      cfg.X0,
		Start:   cfg.Start,
		Stop:    cfg.Stop,
		Values:  cfg.Trajectory.Values,
		Discard: cfg.Sweep.Discard,
		Retain:  cfg.Sweep.Retain,
		Samples: samples,
	})
	if err != nil {
		return err
	}

	_, err = tea.NewProgram(explorer, tea.WithAltScreen()).Run()
	return err
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKIND\tMAP\tTIME\tR RANGE\tX0\tOUTPUT")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t[%g, %g]\t%g\t%s\n",
			run.ID,
			run.Kind,
			run.Map,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Start,
			run.Stop,
			run.X0,
			run.Output,
		)
	}

	return w.Flush()
}

func exportWriter() (io.Writer, func() error, error) {
	if outPath == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(outPath)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	tbl, err := st.LoadTable(args[0])
	if err != nil {
		return err
	}

	w, closeFn, err := exportWriter()
	if err != nil {
		return err
	}
	if err := storage.ExportCSV(w, tbl); err != nil {
		closeFn()
		return err
	}
	if err := closeFn(); err != nil {
		return err
	}
	if outPath != "" {
		fmt.Printf("exported to %s\n", outPath)
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	tbl, err := st.LoadTable(args[0])
	if err != nil && !errors.Is(err, storage.ErrNoTable) {
		return err
	}

	w, closeFn, err := exportWriter()
	if err != nil {
		return err
	}
	if err := storage.ExportJSON(w, *meta, tbl); err != nil {
		closeFn()
		return err
	}
	return closeFn()
}

// saveConfig writes the preset, config file and flags merged into one file
// that --config can load back.
func saveConfig(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Save(args[0], cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	fmt.Printf("config written to %s\n", args[0])
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	fmt.Println("presets:")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Printf("  %-11s r in [%g, %g], %d samples, %d frames\n",
			name, p.Start, p.Stop, p.Sweep.Samples, p.Output.Frames)
	}
	return nil
}

package main

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/chaosmap/internal/animate"
	"github.com/san-kum/chaosmap/internal/automation"
	"github.com/san-kum/chaosmap/internal/config"
	"github.com/san-kum/chaosmap/internal/dynamo"
	"github.com/san-kum/chaosmap/internal/iterate"
	"github.com/san-kum/chaosmap/internal/metrics"
	"github.com/san-kum/chaosmap/internal/storage"
)

func runGIF(cmd *cobra.Command, args []string) error {
	return runArtifact(cmd, animate.KindGIF)
}

func runBifurcation(cmd *cobra.Command, args []string) error {
	kind := animate.KindBifurcation
	if on, _ := cmd.Flags().GetBool("animate"); on {
		kind = animate.KindBifurcationGIF
	}
	return runArtifact(cmd, kind)
}

func runArtifact(cmd *cobra.Command, kind string) (err error) {
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

	a := animate.New(e.logger, e.tracer, e.metrics, e.maps)
	a.Progress = os.Stderr

	result, err := a.Run(cmd.Context(), kind, cfg)
	if err != nil {
		return err
	}
	return record(e, cfg, result)
}

// record stores the run next to a summary of the recorded states.
func record(e *env, cfg *config.Config, result *animate.Result) error {
	if err := e.store.Init(); err != nil {
		return err
	}

	summary := summarize(result.Table)
	summary["elapsed_seconds"] = result.Elapsed.Seconds()

	runID, err := e.store.Save(storage.RunMetadata{
		Kind:    result.Kind,
		Map:     cfg.Map,
		X0:      cfg.X0,
		Start:   cfg.Start,
		Stop:    cfg.Stop,
		Output:  result.Output,
		Metrics: summary,
	}, result.Table)
	if err != nil {
		return err
	}

	fmt.Printf("wrote %s (%d frames) in %v\n", result.Output, result.Frames, result.Elapsed.Round(time.Millisecond))
	fmt.Printf("run id: %s\n", runID)
	return nil
}

func runBatch(cmd *cobra.Command, args []string) (err error) {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	base, err := resolveConfig(cmd)
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

	a := animate.New(e.logger, e.tracer, e.metrics, e.maps)
	a.Progress = os.Stderr

	e.logger.Info("running scenario", "name", scenario.Name, "steps", len(scenario.Steps))
	results, runErr := automation.RunScenario(cmd.Context(), scenario, base, a, e.logger)

	for i, result := range results {
		cfg, err := scenario.StepConfig(base, i)
		if err != nil {
			return err
		}
		if err := record(e, cfg, result); err != nil {
			return err
		}
	}
	return runErr
}

// summarize reduces a recorded table to the metrics stored with a run.
// Rows holding a NaN or infinity are counted as diverged.
func summarize(table *iterate.Table) map[string]float64 {
	summary := map[string]float64{}
	if table == nil {
		return summary
	}

	bounded := metrics.NewBounded(0, 1)
	mean := metrics.NewMean()
	diverged := 0
	for i := 0; i < table.NumRows(); i++ {
		row := table.Row(i)
		if !dynamo.State(row).IsValid() {
			diverged++
		}
		bounded.Observe(row)
		mean.Observe(row)
	}
	summary[bounded.Name()] = bounded.Value()
	if m := mean.Value(); !math.IsNaN(m) {
		summary[mean.Name()] = m
	}
	summary["diverged_rows"] = float64(diverged)
	return summary
}

package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var (
	dataDir     string
	configFile  string
	preset      string
	traceCalls  bool
	logFile     string
	verbose     bool
	metricsFile string

	start       float64
	stop        float64
	x0          float64
	frames      int
	gifDuration float64
	gifUnit     string
	values      int
	discard     int
	retain      int
	samples     int
	mapName     string
	workers     int
	outPath     string

	// trajectory / explore
	rParam float64
	// diagram
	cols, rows int
	asciiMode  bool
	svgPath    string
	// analyze
	points int
	trials int
)

// main registers the chaosmap commands. With no subcommand it renders the
// sequential trajectory GIF. It exits with status 1 when a command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:           "chaosmap",
		Short:         "logistic map trajectories and bifurcation diagrams",
		RunE:          runGIF,
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".chaosmap", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.BoolVar(&traceCalls, "log", false, "trace generator calls to the log file")
	pf.StringVar(&logFile, "log-file", "logfile.log", "call trace file")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	pf.StringVar(&metricsFile, "metrics-file", "", "write prometheus metrics to this file on exit")

	addArtifactFlags(rootCmd)

	gifCmd := &cobra.Command{
		Use:   "gif",
		Short: "render the sequential trajectory gif",
		Args:  cobra.NoArgs,
		RunE:  runGIF,
	}
	addArtifactFlags(gifCmd)

	bifurcationCmd := &cobra.Command{
		Use:   "bifurcation",
		Short: "render the bifurcation diagram",
		Args:  cobra.NoArgs,
		RunE:  runBifurcation,
	}
	addArtifactFlags(bifurcationCmd)
	bifurcationCmd.Flags().Bool("animate", false, "render a gif that widens the parameter window frame by frame")

	trajectoryCmd := &cobra.Command{
		Use:   "trajectory",
		Short: "plot one trajectory in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runTrajectory,
	}
	addComputeFlags(trajectoryCmd)
	trajectoryCmd.Flags().Float64Var(&rParam, "r", 3.7, "map parameter")

	diagramCmd := &cobra.Command{
		Use:   "diagram",
		Short: "draw the bifurcation diagram in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runDiagram,
	}
	addComputeFlags(diagramCmd)
	diagramCmd.Flags().IntVar(&cols, "width", 100, "diagram width in characters")
	diagramCmd.Flags().IntVar(&rows, "height", 30, "diagram height in characters")
	diagramCmd.Flags().BoolVar(&asciiMode, "ascii", false, "plain ascii instead of braille")
	diagramCmd.Flags().StringVar(&svgPath, "svg", "", "also write the braille diagram as svg")

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "period and lyapunov exponent across the parameter window",
		Args:  cobra.NoArgs,
		RunE:  runAnalyze,
	}
	addComputeFlags(analyzeCmd)
	analyzeCmd.Flags().IntVar(&points, "points", 9, "parameter values to tabulate")
	analyzeCmd.Flags().IntVar(&trials, "trials", 0, "monte carlo trials of perturbed x0 per parameter")

	exploreCmd := &cobra.Command{
		Use:   "explore",
		Short: "scrub the parameter interactively",
		Args:  cobra.NoArgs,
		RunE:  runExplore,
	}
	addComputeFlags(exploreCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run table to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config [path]",
		Short: "write the resolved configuration as yaml",
		Args:  cobra.ExactArgs(1),
		RunE:  saveConfig,
	}
	addArtifactFlags(configCmd)

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "render every artifact listed in a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}
	batchCmd.Flags().IntVar(&workers, "workers", 1, "goroutines for sweeps and frame rendering")

	rootCmd.AddCommand(gifCmd, bifurcationCmd, trajectoryCmd, diagramCmd, analyzeCmd,
		exploreCmd, listCmd, exportCSVCmd, exportJSONCmd, presetsCmd, configCmd, batchCmd)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		cancel()
		os.Exit(1)
	}
}

// addComputeFlags registers the flags every generator command shares.
// Defaults mirror config.DefaultConfig; a flag only overrides the config
// when set explicitly.
func addComputeFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64Var(&start, "start", 0, "first parameter value")
	f.Float64Var(&stop, "stop", 4, "last parameter value")
	f.Float64Var(&x0, "x0", 0.5, "initial state")
	f.IntVar(&values, "values", 100, "states per trajectory")
	f.IntVar(&discard, "discard", 500, "sweep iterations discarded before recording")
	f.IntVar(&retain, "retain", 100, "sweep iterations recorded per parameter")
	f.IntVar(&samples, "samples", 1000, "parameter values per sweep")
	f.StringVar(&mapName, "map", "logistic", "recurrence (logistic, sine, tent)")
	f.IntVar(&workers, "workers", 1, "goroutines for sweeps and frame rendering")
}

func addArtifactFlags(cmd *cobra.Command) {
	addComputeFlags(cmd)
	f := cmd.Flags()
	f.IntVar(&frames, "frames", 100, "frames in the gif")
	f.Float64Var(&gifDuration, "duration", 10, "total gif playback time")
	f.StringVar(&gifUnit, "unit", "s", "unit of --duration (s, ms)")
	f.StringVarP(&outPath, "out", "o", "", "output file")
}

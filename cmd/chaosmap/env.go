package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/chaosmap/internal/config"
	"github.com/san-kum/chaosmap/internal/logging"
	"github.com/san-kum/chaosmap/internal/maps"
	"github.com/san-kum/chaosmap/internal/metrics"
	"github.com/san-kum/chaosmap/internal/storage"
	"github.com/san-kum/chaosmap/internal/trace"
)

// env bundles the per-invocation services.
type env struct {
	logger  *slog.Logger
	tracer  *trace.Tracer
	metrics *metrics.Recorder
	store   *storage.Store
	maps    *maps.Registry

	traceFile io.Closer
}

func setup() (*env, error) {
	e := &env{
		logger:  logging.New(os.Stderr, verbose),
		tracer:  trace.Nop(),
		metrics: metrics.NewRecorder(),
		store:   storage.New(dataDir),
		maps:    maps.NewRegistry(),
	}

	if traceCalls {
		t, closer, err := trace.Open(logFile)
		if err != nil {
			return nil, fmt.Errorf("open call trace: %w", err)
		}
		e.tracer, e.traceFile = t, closer
		e.logger.Debug("tracing generator calls", "file", logFile)
	}
	return e, nil
}

// close flushes the metrics textfile and the call trace.
func (e *env) close() error {
	var errs []error
	if metricsFile != "" {
		if err := e.metrics.WriteTextfile(metricsFile); err != nil {
			errs = append(errs, fmt.Errorf("write metrics: %w", err))
		}
	}
	if e.traceFile != nil {
		errs = append(errs, e.traceFile.Close())
	}
	return errors.Join(errs...)
}

// withEnv runs fn with a fresh env. A failure to close the env is returned
// when fn itself succeeded.
func withEnv(fn func(e *env) error) (err error) {
	e, err := setup()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := e.close(); err == nil {
			err = cerr
		}
	}()
	return fn(e)
}

// resolveConfig layers defaults, --preset, --config and explicitly set
// flags, in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		if !config.ApplyPreset(cfg, preset) {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		if err := config.LoadInto(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("start") {
		cfg.Start = start
	}
	if flags.Changed("stop") {
		cfg.Stop = stop
	}
	if flags.Changed("x0") {
		cfg.X0 = x0
	}
	if flags.Changed("values") {
		cfg.Trajectory.Values = values
	}
	if flags.Changed("discard") {
		cfg.Sweep.Discard = discard
	}
	if flags.Changed("retain") {
		cfg.Sweep.Retain = retain
	}
	if flags.Changed("samples") {
		cfg.Sweep.Samples = samples
	}
	if flags.Changed("map") {
		cfg.Map = mapName
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Lookup("frames") != nil {
		if flags.Changed("frames") {
			cfg.Output.Frames = frames
		}
		if flags.Changed("duration") {
			cfg.Output.GIFDuration = gifDuration
		}
		if flags.Changed("unit") {
			cfg.Output.GIFUnit = gifUnit
		}
		if flags.Changed("out") {
			cfg.Output.Path = outPath
		}
	}

	return cfg, cfg.Validate()
}

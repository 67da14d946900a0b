package main

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/san-kum/chaosmap/internal/config"
	"github.com/san-kum/chaosmap/internal/dynamo"
	"github.com/san-kum/chaosmap/internal/iterate"
)

func newTestCommand() *cobra.Command {
	preset, configFile = "", ""
	cmd := &cobra.Command{Use: "test"}
	addArtifactFlags(cmd)
	return cmd
}

func TestResolveConfigDefaults(t *testing.T) {
	cmd := newTestCommand()
	cfg, err := resolveConfig(cmd)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if cfg.Stop != 4 || cfg.Output.Frames != 100 || cfg.Map != "logistic" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestResolveConfigLayering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(path, []byte("x0: 0.25\nstart: 1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cmd := newTestCommand()
	preset, configFile = "classic", path
	if err := cmd.Flags().Set("start", "2.5"); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Flags().Set("unit", "ms"); err != nil {
		t.Fatal(err)
	}

	cfg, err := resolveConfig(cmd)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if cfg.Stop != 4.5 {
		t.Errorf("preset stop should apply, got %f", cfg.Stop)
	}
	if cfg.X0 != 0.25 {
		t.Errorf("config file x0 should apply, got %f", cfg.X0)
	}
	if cfg.Start != 2.5 {
		t.Errorf("explicit flag should win, got %f", cfg.Start)
	}
	if cfg.Output.GIFUnit != "ms" {
		t.Errorf("expected unit ms, got %s", cfg.Output.GIFUnit)
	}
}

func TestResolveConfigErrors(t *testing.T) {
	cmd := newTestCommand()
	preset = "nope"
	if _, err := resolveConfig(cmd); err == nil {
		t.Error("expected error for unknown preset")
	}

	cmd = newTestCommand()
	if err := cmd.Flags().Set("frames", "0"); err != nil {
		t.Fatal(err)
	}
	if _, err := resolveConfig(cmd); err == nil {
		t.Error("expected validation error for zero frames")
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.yaml")
	cmd := newTestCommand()
	preset = "classic"
	defer func() { preset = "" }()
	if err := cmd.Flags().Set("x0", "0.3"); err != nil {
		t.Fatal(err)
	}

	if err := saveConfig(cmd, []string{path}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	want, err := resolveConfig(cmd)
	if err != nil {
		t.Fatal(err)
	}
	if *cfg != *want {
		t.Errorf("reloaded config differs:\n got %+v\nwant %+v", cfg, want)
	}
	if cfg.X0 != 0.3 || cfg.Stop != 4.5 {
		t.Errorf("flag and preset should both persist, got x0=%f stop=%f", cfg.X0, cfg.Stop)
	}
}

func TestSummarizeCountsDivergedRows(t *testing.T) {
	table, err := iterate.NewTable(dynamo.State{3.2, 5}, 1, [][]float64{
		{0.5, 0.25},
		{0.8, math.Inf(-1)},
		{0.5, math.NaN()},
	})
	if err != nil {
		t.Fatal(err)
	}

	summary := summarize(table)
	if summary["diverged_rows"] != 2 {
		t.Errorf("expected 2 diverged rows, got %v", summary["diverged_rows"])
	}
	if _, ok := summary["mean"]; !ok {
		t.Error("finite values should still produce a mean")
	}
	if len(summarize(nil)) != 0 {
		t.Error("nil table should summarize to nothing")
	}
}

func TestWithEnvReportsCloseFailure(t *testing.T) {
	dataDir, traceCalls = t.TempDir(), false
	metricsFile = filepath.Join(t.TempDir(), "missing", "metrics.prom")
	defer func() { metricsFile, dataDir = "", ".chaosmap" }()

	if err := withEnv(func(*env) error { return nil }); err == nil {
		t.Error("unwritable metrics file should fail the command")
	}

	boom := errors.New("boom")
	if err := withEnv(func(*env) error { return boom }); !errors.Is(err, boom) {
		t.Errorf("command error should win over close error, got %v", err)
	}
}

package automation

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/chaosmap/internal/animate"
	"github.com/san-kum/chaosmap/internal/config"
	"github.com/san-kum/chaosmap/internal/iterate"
	"github.com/san-kum/chaosmap/internal/maps"
	"github.com/san-kum/chaosmap/internal/metrics"
)

// Scenario defines a scripted sequence of artifacts.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Preset      string         `yaml:"preset"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single artifact. Config holds overrides in the same
// shape as the config file; fields it leaves out keep the base value.
type ScenarioStep struct {
	Kind   string    `yaml:"kind"`
	Preset string    `yaml:"preset"`
	Config yaml.Node `yaml:"config"`
}

// Runner produces one artifact. *animate.Animator satisfies it.
type Runner interface {
	Run(ctx context.Context, kind string, cfg *config.Config) (*animate.Result, error)
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}
	return &scenario, nil
}

// StepConfig resolves the configuration of step i: base, then the scenario
// preset, then the step preset, then the step overrides.
func (s *Scenario) StepConfig(base *config.Config, i int) (*config.Config, error) {
	step := s.Steps[i]
	cfg := base.Clone()

	for _, name := range []string{s.Preset, step.Preset} {
		if name == "" {
			continue
		}
		if !config.ApplyPreset(cfg, name) {
			return nil, fmt.Errorf("unknown preset %q", name)
		}
	}

	if !step.Config.IsZero() {
		if err := step.Config.Decode(cfg); err != nil {
			return nil, fmt.Errorf("config overrides: %w", err)
		}
	}
	return cfg, cfg.Validate()
}

// RunScenario executes all steps in order and stops at the first failure.
// Results of the steps that completed are returned alongside the error.
func RunScenario(ctx context.Context, scenario *Scenario, base *config.Config, runner Runner, logger *slog.Logger) ([]*animate.Result, error) {
	results := make([]*animate.Result, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		cfg, err := scenario.StepConfig(base, i)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		logger.Info("running step", "step", i+1, "of", len(scenario.Steps), "kind", step.Kind, "map", cfg.Map)

		result, err := runner.Run(ctx, step.Kind, cfg)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		results = append(results, result)
	}

	return results, nil
}

// MonteCarloConfig perturbs the initial state around BaseX0 at a fixed
// parameter and checks whether each orbit stays inside the unit interval.
type MonteCarloConfig struct {
	Map          string
	R            float64
	BaseX0       float64
	Perturbation float64
	NumTrials    int
	Values       int
	Seed         int64
}

// MonteCarloResult holds one trial.
type MonteCarloResult struct {
	TrialID int
	X0      float64
	Final   float64
	Bounded float64
	Stable  bool
}

// RunMonteCarlo executes cfg.NumTrials trajectories with random
// perturbations of the initial state.
func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig, registry *maps.Registry) ([]MonteCarloResult, error) {
	if cfg.NumTrials <= 0 {
		return nil, fmt.Errorf("trials must be positive, got %d", cfg.NumTrials)
	}
	f, err := registry.Get(cfg.Map)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	results := make([]MonteCarloResult, 0, cfg.NumTrials)
	bounded := metrics.NewBounded(0, 1)
	for trial := 0; trial < cfg.NumTrials; trial++ {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		x0 := cfg.BaseX0 + (rng.Float64()-0.5)*2*cfg.Perturbation
		orbit, err := iterate.Trajectory(f, x0, cfg.Values, cfg.R)
		if err != nil {
			return results, err
		}

		bounded.Reset()
		bounded.Observe(orbit)
		results = append(results, MonteCarloResult{
			TrialID: trial,
			X0:      x0,
			Final:   orbit[len(orbit)-1],
			Bounded: bounded.Value(),
			Stable:  bounded.Value() == 1,
		})
	}

	return results, nil
}

// MonteCarloStats computes summary statistics from Monte Carlo results
func MonteCarloStats(results []MonteCarloResult) (stableCount int, unstableCount int) {
	for _, r := range results {
		if r.Stable {
			stableCount++
		} else {
			unstableCount++
		}
	}
	return
}

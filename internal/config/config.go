package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultMap         = "logistic"
	DefaultX0          = 0.5
	DefaultValues      = 100
	DefaultStart       = 0.0
	DefaultStop        = 4.0
	DefaultFrames      = 100
	DefaultGIFDuration = 10.0
	DefaultGIFUnit     = "s"
	DefaultDiscard     = 500
	DefaultRetain      = 100
	DefaultSamples     = 1000
	DefaultWidth       = 800
	DefaultHeight      = 600
)

type Config struct {
	Map     string  `yaml:"map"`
	X0      float64 `yaml:"x0"`
	Start   float64 `yaml:"start"`
	Stop    float64 `yaml:"stop"`
	Workers int     `yaml:"workers"`

	Trajectory TrajectoryConfig `yaml:"trajectory"`
	Sweep      SweepConfig      `yaml:"sweep"`
	Output     OutputConfig     `yaml:"output"`
}

type TrajectoryConfig struct {
	Values int `yaml:"values"`
}

type SweepConfig struct {
	Discard int `yaml:"discard"`
	Retain  int `yaml:"retain"`
	Samples int `yaml:"samples"`
}

type OutputConfig struct {
	Path        string  `yaml:"path"`
	Frames      int     `yaml:"frames"`
	GIFDuration float64 `yaml:"gif_duration"`
	GIFUnit     string  `yaml:"gif_unit"`
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
}

func DefaultConfig() *Config {
	return &Config{
		Map:   DefaultMap,
		X0:    DefaultX0,
		Start: DefaultStart,
		Stop:  DefaultStop,
		Trajectory: TrajectoryConfig{
			Values: DefaultValues,
		},
		Sweep: SweepConfig{
			Discard: DefaultDiscard,
			Retain:  DefaultRetain,
			Samples: DefaultSamples,
		},
		Output: OutputConfig{
			Frames:      DefaultFrames,
			GIFDuration: DefaultGIFDuration,
			GIFUnit:     DefaultGIFUnit,
			Width:       DefaultWidth,
			Height:      DefaultHeight,
		},
	}
}

func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := LoadInto(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadInto overlays the file at path onto cfg. Keys missing from the file
// keep their current values.
func LoadInto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a deep copy; every field is a value.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// Validate checks the counts the generators would otherwise reject, so
// errors surface before any work starts.
func (c *Config) Validate() error {
	switch {
	case c.Trajectory.Values <= 0:
		return fmt.Errorf("trajectory.values must be positive, got %d", c.Trajectory.Values)
	case c.Sweep.Retain <= 0:
		return fmt.Errorf("sweep.retain must be positive, got %d", c.Sweep.Retain)
	case c.Sweep.Discard < 0:
		return fmt.Errorf("sweep.discard must not be negative, got %d", c.Sweep.Discard)
	case c.Sweep.Samples <= 0:
		return fmt.Errorf("sweep.samples must be positive, got %d", c.Sweep.Samples)
	case c.Output.Frames <= 0:
		return fmt.Errorf("output.frames must be positive, got %d", c.Output.Frames)
	case c.Output.GIFDuration <= 0:
		return fmt.Errorf("output.gif_duration must be positive, got %g", c.Output.GIFDuration)
	case c.Output.Width <= 0 || c.Output.Height <= 0:
		return fmt.Errorf("output size must be positive, got %dx%d", c.Output.Width, c.Output.Height)
	}
	if _, err := c.PlaybackDuration(); err != nil {
		return err
	}
	return nil
}

// PlaybackDuration converts gif_duration and gif_unit to a time.Duration.
func (c *Config) PlaybackDuration() (time.Duration, error) {
	unit, err := ParseUnit(c.Output.GIFUnit)
	if err != nil {
		return 0, err
	}
	return time.Duration(c.Output.GIFDuration * float64(unit)), nil
}

// ParseUnit maps a duration unit name to its time.Duration.
func ParseUnit(unit string) (time.Duration, error) {
	switch unit {
	case "s", "":
		return time.Second, nil
	case "ms":
		return time.Millisecond, nil
	}
	return 0, fmt.Errorf("unknown gif unit %q (want s or ms)", unit)
}

package config

import "sort"

// Presets are named starting points. "classic" reproduces the original
// animation range that ran r up to 4.5.
var Presets = map[string]func(*Config){
	"classic": func(c *Config) {
		c.Start, c.Stop = 0, 4.5
	},
	"cascade": func(c *Config) {
		c.Start, c.Stop = 2.8, 4.0
		c.Sweep.Samples = 2000
	},
	"feigenbaum": func(c *Config) {
		c.Start, c.Stop = 3.54, 3.58
		c.Sweep.Discard = 2000
		c.Sweep.Retain = 200
	},
	"window": func(c *Config) {
		c.Start, c.Stop = 3.82, 3.86
		c.Sweep.Discard = 1000
		c.Sweep.Retain = 150
	},
	"quick": func(c *Config) {
		c.Output.Frames = 20
		c.Sweep.Samples = 300
		c.Output.Width, c.Output.Height = 400, 300
	},
}

// GetPreset returns the default config with the named preset applied, or nil.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

// ApplyPreset applies the named preset on top of cfg.
func ApplyPreset(cfg *Config, name string) bool {
	apply, ok := Presets[name]
	if ok {
		apply(cfg)
	}
	return ok
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

package config

import "time"

// Output formats of the coverage command.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Default configuration values.
const (
	DefaultThreshold = 80.0
	DefaultCutoff    = 50.0
	DefaultOutput    = OutputText
	DefaultOutputDir = "test_suites"
	DefaultTimeout   = 120 * time.Second
)

// applyDefaults fills in default values for unset configuration fields.
func applyDefaults(cfg *Config) {
	if cfg.Godot.Timeout == 0 {
		cfg.Godot.Timeout = DefaultTimeout
	}
	// A threshold of 0 is indistinguishable from unset in YAML; treat it as unset.
	if cfg.Coverage.Threshold == 0 {
		cfg.Coverage.Threshold = DefaultThreshold
	}
	if cfg.Coverage.Cutoff == 0 {
		cfg.Coverage.Cutoff = DefaultCutoff
	}
	if cfg.Coverage.Output == "" {
		cfg.Coverage.Output = DefaultOutput
	}
	if cfg.Stub.OutputDir == "" {
		cfg.Stub.OutputDir = DefaultOutputDir
	}
}

// Package config loads the optional .gdtdd.yaml file at the project root.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up at the project root.
const FileName = ".gdtdd.yaml"

// Config is the gdtdd configuration.
type Config struct {
	Godot    GodotConfig    `yaml:"godot"`
	Coverage CoverageConfig `yaml:"coverage"`
	Stub     StubConfig     `yaml:"stub"`
}

// GodotConfig controls how the Godot executable is found and run.
type GodotConfig struct {
	// Executable, when set, is used without searching
	Executable string `yaml:"executable"`
	// Candidates are checked in order before PATH
	Candidates []string      `yaml:"candidates"`
	Timeout    time.Duration `yaml:"timeout"`
}

// CoverageConfig controls the coverage check.
type CoverageConfig struct {
	Threshold float64 `yaml:"threshold"`
	Cutoff    float64 `yaml:"cutoff"`
	Output    string  `yaml:"output"`
}

// StubConfig controls stub generation.
type StubConfig struct {
	OutputDir string `yaml:"output_dir"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads and parses a configuration file and applies defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	applyDefaults(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadFromRoot loads root/.gdtdd.yaml, or the defaults when the file does not exist.
func LoadFromRoot(root string) (*Config, error) {
	path := filepath.Join(root, FileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks values that defaults cannot repair.
func Validate(cfg *Config) error {
	switch cfg.Coverage.Output {
	case OutputText, OutputJSON:
	default:
		return fmt.Errorf("coverage.output must be %q or %q, got %q", OutputText, OutputJSON, cfg.Coverage.Output)
	}
	if cfg.Coverage.Threshold < 0 || cfg.Coverage.Threshold > 100 {
		return fmt.Errorf("coverage.threshold must be between 0 and 100, got %v", cfg.Coverage.Threshold)
	}
	if cfg.Godot.Timeout < 0 {
		return fmt.Errorf("godot.timeout must not be negative, got %s", cfg.Godot.Timeout)
	}
	return nil
}

// Package config loads optional YAML settings for the CLI. Flags override
// anything set here.
package config

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config is the top-level parsudoku.yml configuration.
type Config struct {
	Workers int    `yaml:"workers,omitempty"`  // maximum concurrent solver workers
	Solver  string `yaml:"solver,omitempty"`   // parallel or dlx
	NoColor bool   `yaml:"no_color,omitempty"` // disable colored output
}

// Default returns the configuration used when no file is given: one worker
// per CPU, the parallel solver.
func Default() *Config {
	return &Config{Workers: runtime.NumCPU(), Solver: "parallel"}
}

// Load reads and validates a YAML config file, with defaults for omitted
// fields.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects non-positive worker counts and unknown solver names.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	switch c.Solver {
	case "parallel", "dlx":
	default:
		return fmt.Errorf("unknown solver %q (want parallel or dlx)", c.Solver)
	}
	return nil
}

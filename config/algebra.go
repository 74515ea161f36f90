// Package config provides configuration loading for the axiom
// verification core.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the complete verifier configuration.
type Config struct {
	Solver SolverConfig `yaml:"solver"`
}

// SolverConfig selects and tunes the solver backend.
type SolverConfig struct {
	// Backend names a registered backend ("z3", "gini").
	Backend string `yaml:"backend"`
	// Binary is the path to an external solver binary, for backends
	// that run one (empty = look it up on PATH).
	Binary string `yaml:"binary"`
	// Timeout is the per-query solver timeout.
	Timeout time.Duration `yaml:"timeout"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Solver: SolverConfig{
			Backend: "z3",
			Binary:  "",
			Timeout: 10 * time.Second,
		},
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Solver.Backend == "" {
		return fmt.Errorf("solver.backend is required")
	}
	if c.Solver.Timeout < 0 {
		return fmt.Errorf("solver.timeout must not be negative")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file, layered over the
// defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

package config

import "fmt"

// Sampling strategies selectable from the CLI.
const (
	StrategyUniform = "uniform"
	StrategyFlat    = "flat"
	StrategyTree    = "tree"
)

// Config holds all benchmark configuration
type Config struct {
	// Buffer settings
	Capacity  int    `mapstructure:"capacity"`
	StateSize int    `mapstructure:"state_size"`
	Strategy  string `mapstructure:"strategy"`

	// Prioritization settings
	Alpha float64 `mapstructure:"alpha"`
	Beta  float64 `mapstructure:"beta"`

	// Workload settings
	BatchSize int   `mapstructure:"batch_size"`
	Steps     int   `mapstructure:"steps"`
	Seed      int64 `mapstructure:"seed"`

	// Logging
	LogLevel string `mapstructure:"log_level"`
}

// Default returns a config with sensible defaults
func Default() *Config {
	return &Config{
		Capacity:  100000,
		StateSize: 4 * 84 * 84, // four stacked 84x84 frames
		Strategy:  StrategyTree,
		Alpha:     0.6,
		Beta:      0.4,
		BatchSize: 32,
		Steps:     10000,
		Seed:      0, // 0 seeds from the clock
		LogLevel:  "info",
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Capacity <= 0 {
		return fmt.Errorf("capacity must be positive")
	}
	if c.StateSize <= 0 {
		return fmt.Errorf("state_size must be positive")
	}
	switch c.Strategy {
	case StrategyUniform, StrategyFlat, StrategyTree:
	default:
		return fmt.Errorf("unknown strategy %q", c.Strategy)
	}
	if c.Alpha < 0 {
		return fmt.Errorf("alpha must be non-negative")
	}
	if c.Beta < 0 {
		return fmt.Errorf("beta must be non-negative")
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be positive")
	}
	if c.BatchSize > c.Capacity {
		return fmt.Errorf("batch_size %d exceeds capacity %d", c.BatchSize, c.Capacity)
	}
	if c.Steps <= 0 {
		return fmt.Errorf("steps must be positive")
	}
	return nil
}

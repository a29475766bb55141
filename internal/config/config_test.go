package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestValidate_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero capacity", func(c *Config) { c.Capacity = 0 }},
		{"zero state size", func(c *Config) { c.StateSize = 0 }},
		{"unknown strategy", func(c *Config) { c.Strategy = "segment" }},
		{"negative alpha", func(c *Config) { c.Alpha = -0.1 }},
		{"negative beta", func(c *Config) { c.Beta = -1 }},
		{"zero batch", func(c *Config) { c.BatchSize = 0 }},
		{"batch beyond capacity", func(c *Config) { c.Capacity = 8; c.BatchSize = 9 }},
		{"zero steps", func(c *Config) { c.Steps = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

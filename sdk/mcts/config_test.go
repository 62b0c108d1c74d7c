package mcts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero simulations", func(c *Config) { c.Simulations = 0 }},
		{"negative exploration", func(c *Config) { c.Exploration = -0.1 }},
		{"zero trees", func(c *Config) { c.Trees = 0 }},
		{"negative budget", func(c *Config) { c.TimeBudget = -time.Second }},
		{"zero rollout depth", func(c *Config) { c.MaxRolloutDepth = 0 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}

	cfg := DefaultConfig()
	cfg.Exploration = 0
	assert.NoError(t, cfg.Validate(), "pure exploitation is allowed")
}

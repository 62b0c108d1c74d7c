// Package config layers search settings from the environment over a base
// configuration. Variables use the POKERMCTS_ prefix, e.g.
// POKERMCTS_SIMULATIONS=5000 or POKERMCTS_TIME_BUDGET=2s.
package config

import (
	"fmt"
	"io"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/lox/pokermcts/sdk/mcts"
)

// EnvPrefix is prepended to every variable name.
const EnvPrefix = "POKERMCTS"

// search mirrors mcts.Config with environment tags. Unset variables leave
// the corresponding field untouched.
type search struct {
	Simulations     int           `envconfig:"simulations" desc:"simulations per tree"`
	Exploration     float64       `envconfig:"exploration" desc:"UCB1 exploration weight"`
	Seed            int64         `envconfig:"seed" desc:"random seed, 0 seeds from the clock"`
	Trees           int           `envconfig:"trees" desc:"independent trees searched in parallel"`
	TimeBudget      time.Duration `envconfig:"time_budget" desc:"stop each tree after this long, 0 disables"`
	MaxRolloutDepth int           `envconfig:"max_rollout_depth" desc:"longest allowed random playout"`
}

func fromMCTS(c mcts.Config) search {
	return search{
		Simulations:     c.Simulations,
		Exploration:     c.Exploration,
		Seed:            c.Seed,
		Trees:           c.Trees,
		TimeBudget:      c.TimeBudget,
		MaxRolloutDepth: c.MaxRolloutDepth,
	}
}

func (s search) mcts() mcts.Config {
	return mcts.Config{
		Simulations:     s.Simulations,
		Exploration:     s.Exploration,
		Seed:            s.Seed,
		Trees:           s.Trees,
		TimeBudget:      s.TimeBudget,
		MaxRolloutDepth: s.MaxRolloutDepth,
	}
}

// SearchFromEnv returns base with any POKERMCTS_* overrides applied. The
// result is validated.
func SearchFromEnv(base mcts.Config) (mcts.Config, error) {
	s := fromMCTS(base)
	if err := envconfig.Process(EnvPrefix, &s); err != nil {
		return mcts.Config{}, fmt.Errorf("parse %s environment: %w", EnvPrefix, err)
	}
	cfg := s.mcts()
	if err := cfg.Validate(); err != nil {
		return mcts.Config{}, err
	}
	return cfg, nil
}

// Usage writes a table of the recognised variables and their values in
// base to w.
func Usage(w io.Writer, base mcts.Config) error {
	s := fromMCTS(base)
	return envconfig.Usagef(EnvPrefix, &s, w, envconfig.DefaultTableFormat)
}

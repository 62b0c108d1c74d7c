package mcts

import (
	"errors"
	"fmt"
	"time"
)

// DefaultExploration is the UCB1 exploration weight used while searching.
const DefaultExploration = 1.41

var ErrInvalidConfig = errors.New("invalid search config")

// Config controls a search run.
type Config struct {
	// Simulations is the number of select/expand/rollout/backpropagate
	// passes per tree.
	Simulations int

	// Exploration weights the UCB1 exploration term during selection. The
	// final recommendation always uses zero.
	Exploration float64

	// Seed makes runs reproducible. Zero seeds from the clock.
	Seed int64

	// Trees runs independent trees in parallel and merges their root
	// statistics. One tree keeps the search single threaded.
	Trees int

	// TimeBudget stops a tree early once this much clock time has passed.
	// Zero disables the budget.
	TimeBudget time.Duration

	// MaxRolloutDepth bounds a single random playout.
	MaxRolloutDepth int
}

// Validate ensures the config is safe to search with.
func (c Config) Validate() error {
	if c.Simulations <= 0 {
		return fmt.Errorf("%w: simulations must be > 0", ErrInvalidConfig)
	}
	if c.Exploration < 0 {
		return fmt.Errorf("%w: exploration cannot be negative", ErrInvalidConfig)
	}
	if c.Trees <= 0 {
		return fmt.Errorf("%w: trees must be > 0", ErrInvalidConfig)
	}
	if c.TimeBudget < 0 {
		return fmt.Errorf("%w: time budget cannot be negative", ErrInvalidConfig)
	}
	if c.MaxRolloutDepth <= 0 {
		return fmt.Errorf("%w: max rollout depth must be > 0", ErrInvalidConfig)
	}
	return nil
}

// DefaultConfig returns the settings the search runs with unless told otherwise.
func DefaultConfig() Config {
	return Config{
		Simulations:     1000,
		Exploration:     DefaultExploration,
		Seed:            0,
		Trees:           1,
		TimeBudget:      0,
		MaxRolloutDepth: 10000,
	}
}

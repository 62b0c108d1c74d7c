// Package mcts implements Monte Carlo Tree Search with UCB1 selection,
// uniform random expansion and rollouts, and a final pure-exploitation
// pick among the root's children.
//
// The engine is generic over any immutable state that can list its legal
// actions, apply one, detect the end of the game and score it.
package mcts

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/pokermcts/internal/randutil"
)

// State is the contract the search needs from a game. Apply must return a
// new value and leave the receiver unchanged.
type State[S any, A comparable] interface {
	LegalActions() []A
	Apply(A) (S, error)
	IsTerminal() bool
	// Result is the reward of a terminal state. Higher rewards are preferred.
	Result() (float64, error)
}

// ChildStats summarises one root child after a search.
type ChildStats[A comparable] struct {
	Action A       `json:"action"`
	Visits int     `json:"visits"`
	Wins   float64 `json:"wins"`
	Mean   float64 `json:"mean"`
}

func newChildStats[A comparable](action A, visits int, wins float64) ChildStats[A] {
	cs := ChildStats[A]{Action: action, Visits: visits, Wins: wins}
	if visits > 0 {
		cs.Mean = wins / float64(visits)
	}
	return cs
}

// Stats captures instrumentation for a whole search, summed over trees.
type Stats struct {
	Iterations   int           `json:"iterations"`
	Nodes        int           `json:"nodes"`
	MaxDepth     int           `json:"max_depth"`
	RolloutSteps int64         `json:"rollout_steps"`
	Elapsed      time.Duration `json:"elapsed"`
}

// Result is the outcome of a search.
type Result[A comparable] struct {
	Action   A               `json:"action"`
	Children []ChildStats[A] `json:"children"`
	Trees    int             `json:"trees"`
	Seed     int64           `json:"seed"`
	Stats    Stats           `json:"stats"`
}

type options struct {
	logger *log.Logger
	clock  quartz.Clock
}

// Option customises a Searcher.
type Option func(*options)

// WithLogger routes search progress to logger. Searches are silent by default.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithClock replaces the clock used for seeding and time budgets.
func WithClock(clock quartz.Clock) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// Searcher runs searches with a fixed configuration. A Searcher holds no
// per-search state, so one value can serve many calls; every call builds
// and discards its own trees.
type Searcher[S State[S, A], A comparable] struct {
	cfg    Config
	logger *log.Logger
	clock  quartz.Clock
}

// New validates cfg and returns a Searcher.
func New[S State[S, A], A comparable](cfg Config, opts ...Option) (*Searcher[S, A], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := options{
		logger: log.NewWithOptions(io.Discard, log.Options{}),
		clock:  quartz.NewReal(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Searcher[S, A]{cfg: cfg, logger: o.logger, clock: o.clock}, nil
}

// Config returns the searcher's configuration.
func (s *Searcher[S, A]) Config() Config {
	return s.cfg
}

// BestAction searches from root for the given number of simulations and
// returns the recommended action.
func (s *Searcher[S, A]) BestAction(ctx context.Context, root S, simulations int) (A, error) {
	cfg := s.cfg
	cfg.Simulations = simulations
	res, err := s.search(ctx, root, cfg)
	if err != nil {
		var zero A
		return zero, err
	}
	return res.Action, nil
}

// Search runs the configured search from root.
func (s *Searcher[S, A]) Search(ctx context.Context, root S) (Result[A], error) {
	return s.search(ctx, root, s.cfg)
}

func (s *Searcher[S, A]) search(ctx context.Context, root S, cfg Config) (Result[A], error) {
	if err := cfg.Validate(); err != nil {
		return Result[A]{}, err
	}
	if root.IsTerminal() {
		return Result[A]{}, fmt.Errorf("%w: root state is terminal", ErrNoActionAvailable)
	}

	start := s.clock.Now()
	seed := cfg.Seed
	if seed == 0 {
		seed = start.UnixNano()
	}
	s.logger.Debug("search started", "simulations", cfg.Simulations, "trees", cfg.Trees, "exploration", cfg.Exploration, "seed", seed)

	var (
		res Result[A]
		err error
	)
	if cfg.Trees == 1 {
		res, err = s.single(ctx, root, cfg, seed, start)
	} else {
		res, err = s.ensemble(ctx, root, cfg, seed, start)
	}
	if err != nil {
		return Result[A]{}, err
	}

	res.Seed = seed
	res.Trees = cfg.Trees
	res.Stats.Elapsed = s.clock.Since(start)
	s.logger.Debug("search completed",
		"action", res.Action,
		"iterations", res.Stats.Iterations,
		"nodes", res.Stats.Nodes,
		"max_depth", res.Stats.MaxDepth,
		"elapsed", res.Stats.Elapsed,
	)
	return res, nil
}

func (s *Searcher[S, A]) single(ctx context.Context, root S, cfg Config, seed int64, start time.Time) (Result[A], error) {
	t, err := s.grow(ctx, root, cfg, seed, 0, start)
	if err != nil {
		return Result[A]{}, err
	}
	best, err := t.bestChild(0, 0)
	if err != nil {
		return Result[A]{}, err
	}
	return Result[A]{
		Action:   t.nodes[best].action,
		Children: t.rootChildren(),
		Stats:    t.stats(),
	}, nil
}

// grow builds one tree, stopping after cfg.Simulations iterations or when
// the time budget runs out, whichever comes first.
func (s *Searcher[S, A]) grow(ctx context.Context, root S, cfg Config, seed int64, stream int, start time.Time) (*tree[S, A], error) {
	t := newTree[S, A](root, randutil.Derive(seed, stream))
	for i := range cfg.Simulations {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if cfg.TimeBudget > 0 && s.clock.Since(start) >= cfg.TimeBudget {
			s.logger.Debug("time budget exhausted", "tree", stream, "iterations", i, "budget", cfg.TimeBudget)
			break
		}
		if err := t.iterate(cfg.Exploration, cfg.MaxRolloutDepth); err != nil {
			return nil, fmt.Errorf("tree %d simulation %d: %w", stream, i, err)
		}
	}
	return t, nil
}

func (t *tree[S, A]) stats() Stats {
	return Stats{
		Iterations:   t.iterations,
		Nodes:        len(t.nodes),
		MaxDepth:     t.maxDepth,
		RolloutSteps: t.rolloutSteps,
	}
}

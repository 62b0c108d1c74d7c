package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/lox/pokermcts/sdk/config"
	"github.com/lox/pokermcts/sdk/mcts"
)

var cli struct {
	Debug bool `help:"enable debug logging"`

	Recommend RecommendCmd `cmd:"" help:"recommend an action for a scenario file"`
	Deal      DealCmd      `cmd:"" help:"deal a random decision point and recommend an action"`
	Env       EnvCmd       `cmd:"" help:"list the environment variables that override search defaults"`
}

// SearchFlags are shared by every command that runs a search. Defaults come
// from the environment, so flags win over POKERMCTS_* variables.
type SearchFlags struct {
	Simulations     int           `short:"n" help:"simulations per tree" default:"${simulations}"`
	Exploration     float64       `help:"UCB1 exploration weight" default:"${exploration}"`
	Seed            int64         `help:"random seed; 0 uses time seed" default:"${seed}"`
	Trees           int           `help:"independent trees searched in parallel" default:"${trees}"`
	Budget          time.Duration `help:"stop each tree after this long (0 disables)" default:"${budget}"`
	MaxRolloutDepth int           `help:"longest random playout before giving up" default:"${max_rollout_depth}"`
	Out             string        `help:"write the search report as JSON to this path" type:"path"`
}

func (f SearchFlags) config() mcts.Config {
	return mcts.Config{
		Simulations:     f.Simulations,
		Exploration:     f.Exploration,
		Seed:            f.Seed,
		Trees:           f.Trees,
		TimeBudget:      f.Budget,
		MaxRolloutDepth: f.MaxRolloutDepth,
	}
}

func searchVars(cfg mcts.Config) kong.Vars {
	return kong.Vars{
		"simulations":       strconv.Itoa(cfg.Simulations),
		"exploration":       strconv.FormatFloat(cfg.Exploration, 'g', -1, 64),
		"seed":              strconv.FormatInt(cfg.Seed, 10),
		"trees":             strconv.Itoa(cfg.Trees),
		"budget":            cfg.TimeBudget.String(),
		"max_rollout_depth": strconv.Itoa(cfg.MaxRolloutDepth),
	}
}

func main() {
	base, err := config.SearchFromEnv(mcts.DefaultConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	kctx := kong.Parse(&cli,
		kong.Name("pokermcts"),
		kong.Description("Monte Carlo Tree Search action recommendations for a single betting round"),
		kong.UsageOnError(),
		searchVars(base),
	)

	level := log.InfoLevel
	if cli.Debug {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	kctx.BindTo(ctx, (*context.Context)(nil))
	kctx.Bind(base)
	if err := kctx.Run(logger); err != nil {
		stop()
		logger.Fatal("command failed", "command", kctx.Command(), "err", err)
	}
}

// EnvCmd prints the recognised environment variables.
type EnvCmd struct{}

func (cmd *EnvCmd) Run(base mcts.Config) error {
	return config.Usage(os.Stdout, base)
}

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/lox/pokermcts/internal/fileutil"
	"github.com/lox/pokermcts/internal/scenario"
	"github.com/lox/pokermcts/sdk/betting"
	"github.com/lox/pokermcts/sdk/mcts"
)

type RecommendCmd struct {
	Scenario string      `arg:"" help:"scenario file (.hcl, .yaml or .yml)" type:"existingfile"`
	Search   SearchFlags `embed:""`
}

func (cmd *RecommendCmd) Run(ctx context.Context, logger *log.Logger) error {
	sc, err := scenario.Load(cmd.Scenario)
	if err != nil {
		return err
	}
	logger.Debug("scenario loaded", "path", cmd.Scenario, "name", sc.Name, "players", len(sc.Players))
	return recommend(ctx, os.Stdout, logger, sc, cmd.Search)
}

// Report is the JSON document written by --out.
type Report struct {
	Scenario string                      `json:"scenario,omitempty"`
	State    string                      `json:"state"`
	Hero     betting.PlayerID            `json:"hero"`
	Hand     string                      `json:"hand,omitempty"`
	Result   mcts.Result[betting.Action] `json:"result"`
}

func recommend(ctx context.Context, w io.Writer, logger *log.Logger, sc scenario.Scenario, flags SearchFlags) error {
	state, err := sc.State()
	if err != nil {
		return err
	}
	searcher, err := mcts.New[betting.State, betting.Action](flags.config(), mcts.WithLogger(logger))
	if err != nil {
		return err
	}

	logger.Info("searching", "state", state, "simulations", flags.Simulations, "trees", flags.Trees)
	res, err := searcher.Search(ctx, state)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}
	logger.Info("search finished", "action", res.Action, "iterations", res.Stats.Iterations, "elapsed", res.Stats.Elapsed)

	if err := render(w, sc, state, res); err != nil {
		return err
	}

	if flags.Out == "" {
		return nil
	}
	report := Report{Scenario: sc.Name, State: state.String(), Hero: state.Turn(), Result: res}
	if hero, ok := sc.Hero(); ok {
		report.Hand = formatHand(hero.Hand)
	}
	if err := fileutil.WriteJSON(flags.Out, report); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	logger.Info("report written", "path", flags.Out)
	return nil
}

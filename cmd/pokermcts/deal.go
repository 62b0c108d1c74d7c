package main

import (
	"context"
	"fmt"
	rand "math/rand/v2"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/pokermcts/internal/fileutil"
	"github.com/lox/pokermcts/internal/randutil"
	"github.com/lox/pokermcts/internal/scenario"
	"github.com/lox/pokermcts/poker"
	"github.com/lox/pokermcts/sdk/betting"
)

// dealStream keeps the dealing sequence apart from the search trees, which
// use streams 0 through trees-1 of the same seed.
const dealStream = 1 << 20

type DealCmd struct {
	Players int         `help:"players at the table" default:"3"`
	Stack   int         `help:"starting stack for every player" default:"1000"`
	Pot     int         `help:"chips already in the pot" default:"100"`
	Bet     int         `help:"current bet to call" default:"50"`
	Street  string      `help:"street to deal to" enum:"flop,turn" default:"flop"`
	Save    string      `help:"write the dealt scenario to this .hcl or .yaml file" type:"path"`
	Search  SearchFlags `embed:""`
}

func (cmd *DealCmd) Run(ctx context.Context, logger *log.Logger) error {
	seed := cmd.Search.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	sc, err := cmd.deal(randutil.Derive(seed, dealStream))
	if err != nil {
		return err
	}
	logger.Debug("dealt scenario", "seed", seed, "board", formatHand(sc.Board), "players", len(sc.Players))

	if cmd.Save != "" {
		data, err := scenario.Encode(cmd.Save, sc)
		if err != nil {
			return err
		}
		if err := fileutil.WriteFileAtomic(cmd.Save, data, 0o644); err != nil {
			return fmt.Errorf("save scenario: %w", err)
		}
		logger.Info("scenario saved", "path", cmd.Save)
	}

	flags := cmd.Search
	flags.Seed = seed
	return recommend(ctx, os.Stdout, logger, sc, flags)
}

// deal builds a random decision point with player 1 to act. Players are
// numbered from 1 and all start with the same stack.
func (cmd *DealCmd) deal(rng *rand.Rand) (scenario.Scenario, error) {
	if cmd.Players < 2 || cmd.Players > 10 {
		return scenario.Scenario{}, fmt.Errorf("players must be between 2 and 10, got %d", cmd.Players)
	}
	if cmd.Stack <= 0 {
		return scenario.Scenario{}, fmt.Errorf("stack must be positive, got %d", cmd.Stack)
	}
	if cmd.Pot < 0 || cmd.Bet < 0 {
		return scenario.Scenario{}, fmt.Errorf("pot and bet cannot be negative")
	}
	boardSize := 3
	if cmd.Street == "turn" {
		boardSize = 4
	}

	deck := poker.NewDeck(rng)
	sc := scenario.Scenario{
		Name:       fmt.Sprintf("%d-way %s", cmd.Players, cmd.Street),
		Pot:        cmd.Pot,
		CurrentBet: cmd.Bet,
		Turn:       1,
	}
	for i := 1; i <= cmd.Players; i++ {
		sc.Players = append(sc.Players, scenario.Player{
			ID:    betting.PlayerID(i),
			Hand:  deck.Deal(2),
			Stack: cmd.Stack,
		})
	}
	sc.Board = deck.Deal(boardSize)
	return sc, nil
}

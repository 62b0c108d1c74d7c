package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokermcts/internal/randutil"
	"github.com/lox/pokermcts/internal/scenario"
	"github.com/lox/pokermcts/poker"
	"github.com/lox/pokermcts/sdk/betting"
	"github.com/lox/pokermcts/sdk/mcts"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func testFlags(t *testing.T) SearchFlags {
	t.Helper()
	cfg := mcts.DefaultConfig()
	cfg.Simulations = 200
	cfg.Seed = 31
	return SearchFlags{
		Simulations:     cfg.Simulations,
		Exploration:     cfg.Exploration,
		Seed:            cfg.Seed,
		Trees:           cfg.Trees,
		Budget:          cfg.TimeBudget,
		MaxRolloutDepth: cfg.MaxRolloutDepth,
	}
}

func TestSearchFlagDefaultsFollowConfig(t *testing.T) {
	base := mcts.DefaultConfig()
	base.Simulations = 750
	base.Exploration = 0.5
	base.TimeBudget = 2 * time.Second

	var cmd struct {
		Search SearchFlags `embed:""`
	}
	parser, err := kong.New(&cmd, searchVars(base))
	require.NoError(t, err)

	_, err = parser.Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, base, cmd.Search.config())

	_, err = parser.Parse([]string{"--simulations=10", "--trees=2"})
	require.NoError(t, err)
	assert.Equal(t, 10, cmd.Search.Simulations)
	assert.Equal(t, 2, cmd.Search.Trees)
	assert.Equal(t, 0.5, cmd.Search.Exploration)
}

func TestDealIsReproducible(t *testing.T) {
	cmd := &DealCmd{Players: 4, Stack: 500, Pot: 60, Bet: 20, Street: "turn"}

	first, err := cmd.deal(randutil.Derive(9, dealStream))
	require.NoError(t, err)
	second, err := cmd.deal(randutil.Derive(9, dealStream))
	require.NoError(t, err)
	assert.Equal(t, first, second)

	assert.Len(t, first.Board, 4)
	require.Len(t, first.Players, 4)
	var seen poker.Hand
	for _, c := range first.Board {
		seen.AddCard(c)
	}
	for _, p := range first.Players {
		require.Len(t, p.Hand, 2)
		assert.Equal(t, 500, p.Stack)
		for _, c := range p.Hand {
			assert.False(t, seen.HasCard(c), "card %s dealt twice", c)
			seen.AddCard(c)
		}
	}

	state, err := first.State()
	require.NoError(t, err)
	assert.Equal(t, betting.PlayerID(1), state.Turn())
	assert.Equal(t, 60+4*500, state.TotalChips())
}

func TestDealValidation(t *testing.T) {
	rng := randutil.New(1)
	for _, cmd := range []*DealCmd{
		{Players: 1, Stack: 100, Street: "flop"},
		{Players: 11, Stack: 100, Street: "flop"},
		{Players: 3, Stack: 0, Street: "flop"},
		{Players: 3, Stack: 100, Pot: -1, Street: "flop"},
	} {
		_, err := cmd.deal(rng)
		assert.Error(t, err, "%+v", cmd)
	}
}

func TestRecommendWritesReport(t *testing.T) {
	sc, err := scenario.Load(filepath.Join("..", "..", "examples", "scenarios", "three_way_flop.hcl"))
	require.NoError(t, err)

	flags := testFlags(t)
	flags.Out = filepath.Join(t.TempDir(), "report.json")

	var out bytes.Buffer
	require.NoError(t, recommend(context.Background(), &out, quietLogger(), sc, flags))

	text := out.String()
	assert.Contains(t, text, "three way flop")
	assert.Contains(t, text, "Board:   AsKdQc")
	assert.Contains(t, text, "Player 1: JhTh")
	assert.Contains(t, text, "Recommended:")
	for _, a := range []string{"fold", "call", "raise", "bet"} {
		assert.Contains(t, text, a)
	}

	data, err := os.ReadFile(flags.Out)
	require.NoError(t, err)
	var report Report
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, "three way flop", report.Scenario)
	assert.Equal(t, betting.PlayerID(1), report.Hero)
	assert.Equal(t, "JhTh", report.Hand)
	assert.Equal(t, int64(31), report.Result.Seed)
	assert.Equal(t, 200, report.Result.Stats.Iterations)
	assert.Len(t, report.Result.Children, 4)
}

func TestRecommendTerminalScenario(t *testing.T) {
	sc := scenario.Scenario{
		Pot:   100,
		Turn:  1,
		Board: poker.MustParseCards("AsKdQc2h3h"),
		Players: []scenario.Player{
			{ID: 1, Hand: poker.MustParseCards("JhTh"), Stack: 100},
			{ID: 2, Hand: poker.MustParseCards("9c9d"), Stack: 100},
		},
	}
	err := recommend(context.Background(), io.Discard, quietLogger(), sc, testFlags(t))
	assert.ErrorIs(t, err, mcts.ErrNoActionAvailable)
}

func TestRenderWithoutName(t *testing.T) {
	sc := scenario.Scenario{
		Pot:        10,
		CurrentBet: 5,
		Turn:       2,
		Board:      poker.MustParseCards("2c7d9h"),
		Players: []scenario.Player{
			{ID: 2, Hand: poker.MustParseCards("AhAd"), Stack: 50},
			{ID: 4, Hand: poker.MustParseCards("KsQs"), Stack: 50},
		},
	}
	state, err := sc.State()
	require.NoError(t, err)

	res := mcts.Result[betting.Action]{
		Action: betting.Call,
		Children: []mcts.ChildStats[betting.Action]{
			{Action: betting.Fold, Visits: 1, Wins: 1, Mean: 1},
			{Action: betting.Call, Visits: 3, Wins: 9, Mean: 3},
		},
		Trees: 1,
	}

	var out bytes.Buffer
	require.NoError(t, render(&out, sc, state, res))
	assert.Contains(t, out.String(), "decision point")
	assert.Contains(t, out.String(), "call*")
	assert.Contains(t, out.String(), "75.0%")
	assert.Contains(t, out.String(), "CALL")
}

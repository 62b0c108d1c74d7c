package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/pokermcts/internal/scenario"
	"github.com/lox/pokermcts/poker"
	"github.com/lox/pokermcts/sdk/betting"
	"github.com/lox/pokermcts/sdk/mcts"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	handStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	bestStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))
)

func formatHand(cards []poker.Card) string {
	return poker.FormatCards(cards)
}

func render(w io.Writer, sc scenario.Scenario, state betting.State, res mcts.Result[betting.Action]) error {
	title := sc.Name
	if title == "" {
		title = "decision point"
	}
	board := state.Board()

	var b strings.Builder
	fmt.Fprintln(&b, headerStyle.Render(title))
	fmt.Fprintf(&b, "Board:   %s\n", formatHand(board))
	fmt.Fprintf(&b, "Pot:     %d, %d to call\n", state.Pot(), state.CurrentBet())
	if hole, ok := state.Hand(state.Turn()); ok {
		line := fmt.Sprintf("Player %d: %s stack %d", state.Turn(), handStyle.Render(formatHand(hole[:])), state.Stack(state.Turn()))
		if desc, err := poker.Describe(board, hole[:]); err == nil {
			line += " (" + desc + ")"
		}
		fmt.Fprintln(&b, line)
	}
	fmt.Fprintln(&b)

	total := 0
	for _, c := range res.Children {
		total += c.Visits
	}
	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ACTION\tVISITS\tSHARE\tMEAN RESULT\t")
	for _, c := range res.Children {
		mark := ""
		if c.Action == res.Action {
			mark = "*"
		}
		share := 0.0
		if total > 0 {
			share = 100 * float64(c.Visits) / float64(total)
		}
		fmt.Fprintf(tw, "%s%s\t%d\t%.1f%%\t%.1f\t\n", c.Action, mark, c.Visits, share, c.Mean)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(&b, "\n%s %s\n", headerStyle.Render("Recommended:"), bestStyle.Render(strings.ToUpper(res.Action.String())))
	fmt.Fprintln(&b, dimStyle.Render(fmt.Sprintf("%d iterations over %d tree(s), %d nodes, max depth %d, seed %d, %s",
		res.Stats.Iterations, res.Trees, res.Stats.Nodes, res.Stats.MaxDepth, res.Seed, res.Stats.Elapsed)))

	_, err := io.WriteString(w, b.String())
	return err
}

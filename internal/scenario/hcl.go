package scenario

import (
	"fmt"
	"strconv"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"

	"github.com/lox/pokermcts/poker"
	"github.com/lox/pokermcts/sdk/betting"
)

type hclScenario struct {
	Name       string      `hcl:"name,optional"`
	Pot        int         `hcl:"pot"`
	CurrentBet int         `hcl:"current_bet,optional"`
	Turn       int         `hcl:"turn"`
	Board      string      `hcl:"board,optional"`
	Players    []hclPlayer `hcl:"player,block"`
}

type hclPlayer struct {
	Seat   string `hcl:"seat,label"`
	Hand   string `hcl:"hand,optional"`
	Stack  int    `hcl:"stack"`
	Folded bool   `hcl:"folded,optional"`
}

// ParseHCL decodes an HCL scenario. filename is only used in diagnostics.
func ParseHCL(src []byte, filename string) (Scenario, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return Scenario{}, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw hclScenario
	diags = gohcl.DecodeBody(file.Body, nil, &raw)
	if diags.HasErrors() {
		return Scenario{}, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	board, err := parseBoard(raw.Board)
	if err != nil {
		return Scenario{}, err
	}
	s := Scenario{
		Name:       raw.Name,
		Pot:        raw.Pot,
		CurrentBet: raw.CurrentBet,
		Turn:       betting.PlayerID(raw.Turn),
		Board:      board,
	}
	for _, p := range raw.Players {
		id, err := strconv.Atoi(p.Seat)
		if err != nil {
			return Scenario{}, fmt.Errorf("%w: player label %q is not a seat number", ErrInvalidScenario, p.Seat)
		}
		hand, err := parseHand(betting.PlayerID(id), p.Hand)
		if err != nil {
			return Scenario{}, err
		}
		s.Players = append(s.Players, Player{
			ID:     betting.PlayerID(id),
			Hand:   hand,
			Stack:  p.Stack,
			Folded: p.Folded,
		})
	}
	return s, nil
}

// EncodeHCL renders s in the form ParseHCL reads.
func EncodeHCL(s Scenario) []byte {
	raw := hclScenario{
		Name:       s.Name,
		Pot:        s.Pot,
		CurrentBet: s.CurrentBet,
		Turn:       int(s.Turn),
		Board:      poker.FormatCards(s.Board),
	}
	for _, p := range s.Players {
		raw.Players = append(raw.Players, hclPlayer{
			Seat:   strconv.Itoa(int(p.ID)),
			Hand:   poker.FormatCards(p.Hand),
			Stack:  p.Stack,
			Folded: p.Folded,
		})
	}

	f := hclwrite.NewEmptyFile()
	gohcl.EncodeIntoBody(&raw, f.Body())
	return hclwrite.Format(f.Bytes())
}

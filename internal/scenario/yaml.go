package scenario

import (
	"fmt"

	"gopkg.in/yaml.v2"

	"github.com/lox/pokermcts/poker"
	"github.com/lox/pokermcts/sdk/betting"
)

type yamlScenario struct {
	Name       string       `yaml:"name,omitempty"`
	Pot        int          `yaml:"pot"`
	CurrentBet int          `yaml:"current_bet"`
	Turn       int          `yaml:"turn"`
	Board      string       `yaml:"board"`
	Players    []yamlPlayer `yaml:"players"`
}

type yamlPlayer struct {
	ID     int    `yaml:"id"`
	Hand   string `yaml:"hand,omitempty"`
	Stack  int    `yaml:"stack"`
	Folded bool   `yaml:"folded,omitempty"`
}

// ParseYAML decodes a YAML scenario. Unknown keys are rejected.
func ParseYAML(src []byte) (Scenario, error) {
	var raw yamlScenario
	if err := yaml.UnmarshalStrict(src, &raw); err != nil {
		return Scenario{}, fmt.Errorf("failed to decode YAML: %w", err)
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
		hand, err := parseHand(betting.PlayerID(p.ID), p.Hand)
		if err != nil {
			return Scenario{}, err
		}
		s.Players = append(s.Players, Player{
			ID:     betting.PlayerID(p.ID),
			Hand:   hand,
			Stack:  p.Stack,
			Folded: p.Folded,
		})
	}
	return s, nil
}

// EncodeYAML renders s in the form ParseYAML reads.
func EncodeYAML(s Scenario) ([]byte, error) {
	raw := yamlScenario{
		Name:       s.Name,
		Pot:        s.Pot,
		CurrentBet: s.CurrentBet,
		Turn:       int(s.Turn),
		Board:      poker.FormatCards(s.Board),
	}
	for _, p := range s.Players {
		raw.Players = append(raw.Players, yamlPlayer{
			ID:     int(p.ID),
			Hand:   poker.FormatCards(p.Hand),
			Stack:  p.Stack,
			Folded: p.Folded,
		})
	}
	return yaml.Marshal(&raw)
}

// Package scenario reads and writes decision points as HCL or YAML files.
//
// An HCL scenario looks like:
//
//	name        = "three way flop"
//	pot         = 100
//	current_bet = 50
//	turn        = 1
//	board       = "AsKdQc"
//
//	player "1" {
//	  hand  = "JhTh"
//	  stack = 1000
//	}
//
// The YAML form carries the same fields with players as a list.
package scenario

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/lox/pokermcts/poker"
	"github.com/lox/pokermcts/sdk/betting"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported scenario format")
	ErrInvalidScenario   = errors.New("invalid scenario")
)

// Scenario is a decision point as read from disk.
type Scenario struct {
	Name       string
	Pot        int
	CurrentBet int
	Turn       betting.PlayerID
	Board      []poker.Card
	Players    []Player
}

// Player is one seat. Folded players keep their stack and, if known, their
// cards, which are then unavailable to everyone else.
type Player struct {
	ID     betting.PlayerID
	Hand   []poker.Card
	Stack  int
	Folded bool
}

// Setup converts the scenario into a betting setup. Active players are the
// unfolded ones in ascending seat order.
func (s Scenario) Setup() (betting.Setup, error) {
	setup := betting.Setup{
		Hands:      make(map[betting.PlayerID][2]poker.Card, len(s.Players)),
		Board:      slices.Clone(s.Board),
		Pot:        s.Pot,
		CurrentBet: s.CurrentBet,
		Turn:       s.Turn,
		Stacks:     make(map[betting.PlayerID]int, len(s.Players)),
		Active:     []betting.PlayerID{},
	}
	for _, p := range s.Players {
		if _, dup := setup.Stacks[p.ID]; dup {
			return betting.Setup{}, fmt.Errorf("%w: player %d defined twice", ErrInvalidScenario, p.ID)
		}
		setup.Stacks[p.ID] = p.Stack
		switch len(p.Hand) {
		case 2:
			setup.Hands[p.ID] = [2]poker.Card{p.Hand[0], p.Hand[1]}
		case 0:
			if !p.Folded {
				return betting.Setup{}, fmt.Errorf("%w: player %d has no hand", ErrInvalidScenario, p.ID)
			}
		default:
			return betting.Setup{}, fmt.Errorf("%w: player %d hand has %d cards", ErrInvalidScenario, p.ID, len(p.Hand))
		}
		if !p.Folded {
			setup.Active = append(setup.Active, p.ID)
		}
	}
	slices.Sort(setup.Active)
	return setup, nil
}

// State builds the initial betting state for the scenario.
func (s Scenario) State(opts ...betting.Option) (betting.State, error) {
	setup, err := s.Setup()
	if err != nil {
		return betting.State{}, err
	}
	return betting.NewState(setup, opts...)
}

// Hero is the player to act.
func (s Scenario) Hero() (Player, bool) {
	i := slices.IndexFunc(s.Players, func(p Player) bool { return p.ID == s.Turn })
	if i < 0 {
		return Player{}, false
	}
	return s.Players[i], true
}

// FromSetup is the inverse of Setup. Players with a stack but no place in
// Active are written as folded.
func FromSetup(name string, setup betting.Setup) Scenario {
	s := Scenario{
		Name:       name,
		Pot:        setup.Pot,
		CurrentBet: setup.CurrentBet,
		Turn:       setup.Turn,
		Board:      slices.Clone(setup.Board),
	}
	for id, stack := range setup.Stacks {
		p := Player{ID: id, Stack: stack}
		if h, ok := setup.Hands[id]; ok {
			p.Hand = h[:]
		}
		if setup.Active != nil {
			p.Folded = !slices.Contains(setup.Active, id)
		}
		s.Players = append(s.Players, p)
	}
	slices.SortFunc(s.Players, func(a, b Player) int { return cmp.Compare(a.ID, b.ID) })
	return s
}

type format int

const (
	formatHCL format = iota
	formatYAML
)

func formatOf(path string) (format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		return formatHCL, nil
	case ".yaml", ".yml":
		return formatYAML, nil
	default:
		return 0, fmt.Errorf("%w: %q (want .hcl, .yaml or .yml)", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Load reads a scenario file. The format follows the file extension.
func Load(path string) (Scenario, error) {
	f, err := formatOf(path)
	if err != nil {
		return Scenario{}, err
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("read scenario: %w", err)
	}
	if f == formatHCL {
		return ParseHCL(src, path)
	}
	return ParseYAML(src)
}

// Encode renders a scenario in the format implied by path's extension.
func Encode(path string, s Scenario) ([]byte, error) {
	f, err := formatOf(path)
	if err != nil {
		return nil, err
	}
	if f == formatHCL {
		return EncodeHCL(s), nil
	}
	return EncodeYAML(s)
}

func parseHand(id betting.PlayerID, hand string) ([]poker.Card, error) {
	if strings.TrimSpace(hand) == "" {
		return nil, nil
	}
	cards, err := poker.ParseCards(hand)
	if err != nil {
		return nil, fmt.Errorf("%w: player %d hand: %w", ErrInvalidScenario, id, err)
	}
	return cards, nil
}

func parseBoard(board string) ([]poker.Card, error) {
	cards, err := poker.ParseCards(board)
	if err != nil {
		return nil, fmt.Errorf("%w: board: %w", ErrInvalidScenario, err)
	}
	return cards, nil
}

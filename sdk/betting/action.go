package betting

import (
	"errors"
	"fmt"
	"strings"
)

// Action is a betting decision available to the player to act.
type Action uint8

const (
	Fold Action = iota
	Call
	Bet
	Raise
	AllIn
)

// Actions lists every action in declaration order.
var Actions = []Action{Fold, Call, Bet, Raise, AllIn}

var ErrUnknownAction = errors.New("unknown action")

func (a Action) String() string {
	switch a {
	case Fold:
		return "fold"
	case Call:
		return "call"
	case Bet:
		return "bet"
	case Raise:
		return "raise"
	case AllIn:
		return "allin"
	default:
		return fmt.Sprintf("action(%d)", uint8(a))
	}
}

// ParseAction accepts the names produced by String, case-insensitively.
// "all-in" and "all_in" are accepted for allin.
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fold":
		return Fold, nil
	case "call":
		return Call, nil
	case "bet":
		return Bet, nil
	case "raise":
		return Raise, nil
	case "allin", "all-in", "all_in":
		return AllIn, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownAction, s)
	}
}

func (a Action) MarshalText() ([]byte, error) {
	if a > AllIn {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAction, uint8(a))
	}
	return []byte(a.String()), nil
}

func (a *Action) UnmarshalText(text []byte) error {
	parsed, err := ParseAction(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

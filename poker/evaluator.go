package poker

import (
	"errors"
	"fmt"
	"math"

	ph "github.com/paulhankin/poker"
)

// HandRank is the strength of a best five-card hand. Lower values are
// stronger and every valid rank is positive.
type HandRank int

// ErrIncompleteHand is returned when board plus hole cards do not make
// between five and seven cards.
var ErrIncompleteHand = errors.New("hand needs five to seven cards")

// Evaluator scores a two-card holding against a board.
type Evaluator interface {
	Evaluate(board, hole []Card) (HandRank, error)
}

// EvaluatorFunc adapts a plain function to Evaluator.
type EvaluatorFunc func(board, hole []Card) (HandRank, error)

func (f EvaluatorFunc) Evaluate(board, hole []Card) (HandRank, error) {
	return f(board, hole)
}

// DefaultEvaluator is backed by github.com/paulhankin/poker.
var DefaultEvaluator Evaluator = LibraryEvaluator{}

// LibraryEvaluator ranks hands with the paulhankin lookup tables.
type LibraryEvaluator struct{}

func (LibraryEvaluator) Evaluate(board, hole []Card) (HandRank, error) {
	cards, err := convertCards(board, hole)
	if err != nil {
		return 0, err
	}

	var score int16
	switch len(cards) {
	case 7:
		var c7 [7]ph.Card
		copy(c7[:], cards)
		score = ph.Eval7(&c7)
	case 6:
		score = bestOfSix(cards)
	case 5:
		var c5 [5]ph.Card
		copy(c5[:], cards)
		score = ph.Eval5(&c5)
	default:
		return 0, fmt.Errorf("%w: got %d", ErrIncompleteHand, len(cards))
	}
	// The library scores higher-is-better; flip it onto 1..65536.
	return HandRank(math.MaxInt16 + 1 - int(score)), nil
}

// Describe names the best hand made from board and hole, e.g. "pair of kings".
func Describe(board, hole []Card) (string, error) {
	cards, err := convertCards(board, hole)
	if err != nil {
		return "", err
	}
	if len(cards) < 5 || len(cards) > 7 {
		return "", fmt.Errorf("%w: got %d", ErrIncompleteHand, len(cards))
	}
	return ph.Describe(cards)
}

// bestOfSix drops each card in turn and keeps the strongest five.
func bestOfSix(cards []ph.Card) int16 {
	best := int16(math.MinInt16)
	var five [5]ph.Card
	for skip := range 6 {
		n := 0
		for i, c := range cards {
			if i == skip {
				continue
			}
			five[n] = c
			n++
		}
		if s := ph.Eval5(&five); s > best {
			best = s
		}
	}
	return best
}

func convertCards(board, hole []Card) ([]ph.Card, error) {
	out := make([]ph.Card, 0, len(board)+len(hole))
	for _, set := range [][]Card{board, hole} {
		for _, c := range set {
			pc, err := toLibraryCard(c)
			if err != nil {
				return nil, err
			}
			out = append(out, pc)
		}
	}
	return out, nil
}

var librarySuits = [4]ph.Suit{ph.Club, ph.Diamond, ph.Heart, ph.Spade}

func toLibraryCard(c Card) (ph.Card, error) {
	if !c.Valid() {
		return 0, fmt.Errorf("%w: %#x", ErrInvalidCard, uint64(c))
	}
	// The library counts ace as 1 and king as 13.
	rank := ph.Rank(c.Rank() + 2)
	if c.Rank() == Ace {
		rank = 1
	}
	pc, err := ph.MakeCard(librarySuits[c.Suit()], rank)
	if err != nil {
		return 0, fmt.Errorf("convert %s: %w", c, err)
	}
	return pc, nil
}

// Package betting models a single betting round as an immutable state
// machine: who is to act, who is still in, stacks, pot and the bet to call.
//
// Only one round is modelled. The board is fixed when the state is built,
// there are no blinds or side pots, and the terminal reward is the hand
// strength of whoever holds the turn when the round ends.
package betting

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/lox/pokermcts/poker"
)

// PlayerID identifies a seat. Ids are small non-negative integers.
type PlayerID int

var (
	ErrInvalidSetup  = errors.New("invalid setup")
	ErrInvalidAction = errors.New("invalid action")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrTerminalState = errors.New("state is terminal")
	ErrNotTerminal   = errors.New("state is not terminal")
)

// Setup describes the decision point a State is built from.
type Setup struct {
	Hands      map[PlayerID][2]poker.Card
	Board      []poker.Card
	Pot        int
	CurrentBet int
	Turn       PlayerID
	Stacks     map[PlayerID]int
	// Active lists the players still contesting the pot, in seat order of
	// the caller's choosing. Nil means every player with a hand, ascending.
	Active []PlayerID
}

// State is one point in a betting round. The zero value is not usable;
// build states with NewState and derive new ones with Apply.
//
// States never mutate after construction. Hands and board are shared
// between a state and its successors; stacks and active players are
// copied on every transition.
type State struct {
	hands      map[PlayerID][2]poker.Card
	board      []poker.Card
	pot        int
	currentBet int
	turn       PlayerID
	stacks     map[PlayerID]int
	active     []PlayerID
	evaluator  poker.Evaluator
}

// Option customises a State at construction.
type Option func(*State)

// WithEvaluator replaces the hand evaluator used by Result.
func WithEvaluator(e poker.Evaluator) Option {
	return func(s *State) {
		s.evaluator = e
	}
}

// NewState validates setup and returns the initial state. The setup is
// copied; later changes to it do not affect the state.
func NewState(setup Setup, opts ...Option) (State, error) {
	s := State{
		hands:      maps.Clone(setup.Hands),
		board:      slices.Clone(setup.Board),
		pot:        setup.Pot,
		currentBet: setup.CurrentBet,
		turn:       setup.Turn,
		stacks:     maps.Clone(setup.Stacks),
		active:     slices.Clone(setup.Active),
		evaluator:  poker.DefaultEvaluator,
	}
	if s.active == nil {
		s.active = slices.Sorted(maps.Keys(s.hands))
	}
	for _, opt := range opts {
		opt(&s)
	}
	if err := s.validate(); err != nil {
		return State{}, fmt.Errorf("%w: %w", ErrInvalidSetup, err)
	}
	return s, nil
}

func (s *State) validate() error {
	if s.evaluator == nil {
		return errors.New("evaluator is nil")
	}
	if len(s.active) == 0 {
		return errors.New("no active players")
	}
	if s.pot < 0 {
		return fmt.Errorf("pot %d is negative", s.pot)
	}
	if s.currentBet < 0 {
		return fmt.Errorf("current bet %d is negative", s.currentBet)
	}
	if len(s.board) > 5 {
		return fmt.Errorf("board has %d cards, at most 5 allowed", len(s.board))
	}

	seen := make(map[PlayerID]bool, len(s.active))
	for _, id := range s.active {
		if id < 0 {
			return fmt.Errorf("player %d: id is negative", id)
		}
		if seen[id] {
			return fmt.Errorf("player %d is listed twice", id)
		}
		seen[id] = true
		if _, ok := s.hands[id]; !ok {
			return fmt.Errorf("player %d has no hand", id)
		}
		if _, ok := s.stacks[id]; !ok {
			return fmt.Errorf("player %d has no stack", id)
		}
	}
	if !seen[s.turn] {
		return fmt.Errorf("player %d to act is not active", s.turn)
	}
	for id, stack := range s.stacks {
		if stack < 0 {
			return fmt.Errorf("player %d stack %d is negative", id, stack)
		}
	}

	var used poker.Hand
	claim := func(c poker.Card, where string) error {
		if !c.Valid() {
			return fmt.Errorf("%s: %w", where, poker.ErrInvalidCard)
		}
		if used.HasCard(c) {
			return fmt.Errorf("%s: card %s dealt twice", where, c)
		}
		used.AddCard(c)
		return nil
	}
	for i, c := range s.board {
		if err := claim(c, fmt.Sprintf("board[%d]", i)); err != nil {
			return err
		}
	}
	for _, id := range slices.Sorted(maps.Keys(s.hands)) {
		for i, c := range s.hands[id] {
			if err := claim(c, fmt.Sprintf("player %d card %d", id, i)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s State) Turn() PlayerID { return s.turn }

func (s State) Pot() int { return s.pot }

func (s State) CurrentBet() int { return s.currentBet }

func (s State) Stack(id PlayerID) int { return s.stacks[id] }

// Stacks returns a copy of every player's remaining chips.
func (s State) Stacks() map[PlayerID]int { return maps.Clone(s.stacks) }

// ActivePlayers returns a copy of the players still in the hand.
func (s State) ActivePlayers() []PlayerID { return slices.Clone(s.active) }

// Board returns a copy of the community cards.
func (s State) Board() []poker.Card { return slices.Clone(s.board) }

func (s State) Hand(id PlayerID) ([2]poker.Card, bool) {
	h, ok := s.hands[id]
	return h, ok
}

// TotalChips is the pot plus every stack. Transitions preserve it.
func (s State) TotalChips() int {
	total := s.pot
	for _, stack := range s.stacks {
		total += stack
	}
	return total
}

// IsTerminal reports whether the round is decided: a single player is
// left, or all five community cards are out.
func (s State) IsTerminal() bool {
	return len(s.active) == 1 || len(s.board) == 5
}

// LegalActions lists the actions open to the player to act. Fold is always
// open. A player who can cover more than the current bet may call, raise
// or bet; one who cannot has allin as the only way to put chips in, and
// call is not offered. Terminal states have no actions.
func (s State) LegalActions() []Action {
	if s.IsTerminal() {
		return nil
	}
	if s.stacks[s.turn] > s.currentBet {
		return []Action{Fold, Call, Raise, Bet}
	}
	return []Action{Fold, AllIn}
}

// Apply returns the state after the player to act takes a. Bet keeps the
// current bet and raise doubles it.
func (s State) Apply(a Action) (State, error) {
	return s.apply(a, 0, false)
}

// ApplyAmount is Apply with an explicit bet or raise size.
func (s State) ApplyAmount(a Action, amount int) (State, error) {
	if a != Bet && a != Raise {
		return State{}, fmt.Errorf("%w: %s does not take an amount", ErrInvalidAmount, a)
	}
	if amount <= 0 {
		return State{}, fmt.Errorf("%w: %d", ErrInvalidAmount, amount)
	}
	return s.apply(a, amount, true)
}

func (s State) apply(a Action, amount int, sized bool) (State, error) {
	if s.IsTerminal() {
		return State{}, fmt.Errorf("%w: cannot %s", ErrTerminalState, a)
	}
	if !slices.Contains(s.LegalActions(), a) {
		return State{}, fmt.Errorf("%w: %s with stack %d facing %d", ErrInvalidAction, a, s.stacks[s.turn], s.currentBet)
	}

	next := s.clone()
	switch a {
	case Fold:
		next.active = slices.DeleteFunc(next.active, func(id PlayerID) bool { return id == next.turn })
	case Call:
		next.commit(next.currentBet)
	case Bet:
		if !sized {
			amount = next.currentBet
		}
		next.currentBet = next.commit(amount)
	case Raise:
		if !sized {
			amount = 2 * next.currentBet
		}
		next.currentBet = next.commit(amount)
	case AllIn:
		next.currentBet = max(next.currentBet, next.commit(next.stacks[next.turn]))
	}
	next.advanceTurn()
	return next, nil
}

func (s State) clone() State {
	next := s
	next.stacks = maps.Clone(s.stacks)
	next.active = slices.Clone(s.active)
	return next
}

// commit moves up to want chips from the acting stack into the pot and
// returns how many moved.
func (s *State) commit(want int) int {
	moved := min(want, s.stacks[s.turn])
	s.stacks[s.turn] -= moved
	s.pot += moved
	return moved
}

// advanceTurn scans seat ids upward, wrapping past the highest active id,
// until it finds an active player.
func (s *State) advanceTurn() {
	if len(s.active) == 0 {
		return
	}
	seats := slices.Max(s.active) + 1
	for id := (s.turn + 1) % seats; ; id = (id + 1) % seats {
		if slices.Contains(s.active, id) {
			s.turn = id
			return
		}
	}
}

// Result scores a terminal state: the hand of the player holding the turn
// evaluated against the board. Lower is stronger.
func (s State) Result() (float64, error) {
	if !s.IsTerminal() {
		return 0, ErrNotTerminal
	}
	hole := s.hands[s.turn]
	rank, err := s.evaluator.Evaluate(s.board, hole[:])
	if err != nil {
		return 0, fmt.Errorf("evaluate player %d: %w", s.turn, err)
	}
	return float64(rank), nil
}

func (s State) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "turn=%d pot=%d bet=%d board=%s active=%v stacks=[", s.turn, s.pot, s.currentBet, poker.FormatCards(s.board), s.active)
	for i, id := range slices.Sorted(maps.Keys(s.stacks)) {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%d:%d", id, s.stacks[id])
	}
	b.WriteByte(']')
	return b.String()
}

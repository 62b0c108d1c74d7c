package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evaluate(t *testing.T, board, hole string) HandRank {
	t.Helper()
	rank, err := DefaultEvaluator.Evaluate(MustParseCards(board), MustParseCards(hole))
	require.NoError(t, err)
	require.Positive(t, int(rank))
	return rank
}

func TestEvaluatorLowerIsStronger(t *testing.T) {
	t.Parallel()
	board := "AsKsQs2d7c"
	royal := evaluate(t, board, "JsTs")
	trips := evaluate(t, board, "AdAc")
	pair := evaluate(t, board, "Ah3c")
	high := evaluate(t, board, "9h8h")

	assert.Less(t, royal, trips)
	assert.Less(t, trips, pair)
	assert.Less(t, pair, high)
}

func TestEvaluatorCardCounts(t *testing.T) {
	t.Parallel()
	// Flop: the made hand is a pair of nines either way.
	flop := evaluate(t, "AsKdQc", "9c9d")
	assert.Equal(t, evaluate(t, "AsKdQc", "9d9c"), flop)

	// A blank turn card can only keep or improve the best five.
	turn := evaluate(t, "AsKdQc2h", "9c9d")
	assert.LessOrEqual(t, turn, flop)

	river := evaluate(t, "AsKdQc2h9s", "9c9d")
	assert.Less(t, river, turn)
}

func TestEvaluatorRejectsShortHands(t *testing.T) {
	t.Parallel()
	_, err := DefaultEvaluator.Evaluate(MustParseCards("AsKd"), MustParseCards("9c9d"))
	assert.ErrorIs(t, err, ErrIncompleteHand)

	_, err = DefaultEvaluator.Evaluate(nil, MustParseCards("9c9d"))
	assert.ErrorIs(t, err, ErrIncompleteHand)

	_, err = DefaultEvaluator.Evaluate(MustParseCards("AsKdQc"), []Card{0, NewCard(Two, Clubs)})
	assert.ErrorIs(t, err, ErrInvalidCard)
}

func TestEvaluatorFunc(t *testing.T) {
	t.Parallel()
	var calls int
	eval := EvaluatorFunc(func(board, hole []Card) (HandRank, error) {
		calls++
		return HandRank(len(board) + len(hole)), nil
	})
	rank, err := eval.Evaluate(MustParseCards("AsKdQc"), MustParseCards("2c3c"))
	require.NoError(t, err)
	assert.Equal(t, HandRank(5), rank)
	assert.Equal(t, 1, calls)
}

func TestDescribe(t *testing.T) {
	t.Parallel()
	desc, err := Describe(MustParseCards("AsKdQc"), MustParseCards("9c9d"))
	require.NoError(t, err)
	assert.NotEmpty(t, desc)

	_, err = Describe(nil, MustParseCards("9c9d"))
	assert.ErrorIs(t, err, ErrIncompleteHand)
}

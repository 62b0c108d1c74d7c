package poker

import (
	rand "math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCard(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input   string
		want    Card
		wantErr bool
	}{
		{input: "As", want: NewCard(Ace, Spades)},
		{input: "2h", want: NewCard(Two, Hearts)},
		{input: "kd", want: NewCard(King, Diamonds)},
		{input: "TC", want: NewCard(Ten, Clubs)},
		{input: "9s", want: NewCard(Nine, Spades)},
		{input: "Xs", wantErr: true},
		{input: "Ax", wantErr: true},
		{input: "", wantErr: true},
		{input: "A", wantErr: true},
		{input: "Asd", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()
			card, err := ParseCard(tc.input)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrInvalidCard)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, card)
		})
	}
}

func TestAll52CardsRoundTrip(t *testing.T) {
	t.Parallel()
	seen := make(map[string]bool)
	for suit := Clubs; suit <= Spades; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			card := NewCard(rank, suit)
			require.True(t, card.Valid())
			assert.Equal(t, rank, card.Rank())
			assert.Equal(t, suit, card.Suit())

			str := card.String()
			assert.False(t, seen[str], "duplicate card %s", str)
			seen[str] = true

			parsed, err := ParseCard(str)
			require.NoError(t, err)
			assert.Equal(t, card, parsed)
		}
	}
	assert.Len(t, seen, 52)
}

func TestInvalidCard(t *testing.T) {
	t.Parallel()
	var zero Card
	assert.False(t, zero.Valid())
	assert.Equal(t, "??", zero.String())
	assert.Equal(t, uint8(255), zero.Rank())

	_, err := zero.MarshalText()
	assert.ErrorIs(t, err, ErrInvalidCard)
}

func TestParseCards(t *testing.T) {
	t.Parallel()
	cards, err := ParseCards("As Kd\tQc")
	require.NoError(t, err)
	assert.Equal(t, "AsKdQc", FormatCards(cards))

	_, err = ParseCards("AsK")
	assert.ErrorIs(t, err, ErrInvalidCard)

	assert.Panics(t, func() { MustParseCards("Zz") })
}

func TestCardTextMarshalling(t *testing.T) {
	t.Parallel()
	var c Card
	require.NoError(t, c.UnmarshalText([]byte("Jh")))
	text, err := c.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "Jh", string(text))
}

func TestHandSet(t *testing.T) {
	t.Parallel()
	cards := MustParseCards("AsKhQd")
	hand := NewHand(cards[0], cards[1])

	assert.True(t, hand.HasCard(cards[0]))
	assert.True(t, hand.HasCard(cards[1]))
	assert.False(t, hand.HasCard(cards[2]))
	assert.Equal(t, 2, hand.CountCards())

	hand.AddCard(cards[2])
	hand.AddCard(cards[2])
	assert.Equal(t, 3, hand.CountCards())
	assert.ElementsMatch(t, cards, hand.Cards())
}

func TestDeckDealsEveryCardOnce(t *testing.T) {
	t.Parallel()
	deck := NewDeck(rand.New(rand.NewPCG(1, 2)))
	require.Equal(t, 52, deck.CardsRemaining())

	var dealt Hand
	for deck.CardsRemaining() > 0 {
		c := deck.Deal(1)
		require.Len(t, c, 1)
		require.False(t, dealt.HasCard(c[0]), "dealt %s twice", c[0])
		dealt.AddCard(c[0])
	}
	assert.Equal(t, 52, dealt.CountCards())
	assert.Nil(t, deck.Deal(1))
}

func TestDeckSkipsKnownCards(t *testing.T) {
	t.Parallel()
	known := MustParseCards("AsKdQc")
	deck := NewDeck(rand.New(rand.NewPCG(7, 7)), known...)
	require.Equal(t, 49, deck.CardsRemaining())

	rest := NewHand(deck.Deal(49)...)
	assert.Equal(t, 49, rest.CountCards())
	for _, c := range known {
		assert.False(t, rest.HasCard(c))
	}
}

func TestDeckSeedIsReproducible(t *testing.T) {
	t.Parallel()
	a := NewDeck(rand.New(rand.NewPCG(42, 0))).Deal(9)
	b := NewDeck(rand.New(rand.NewPCG(42, 0))).Deal(9)
	assert.Equal(t, a, b)
}

func BenchmarkParseCards(b *testing.B) {
	for b.Loop() {
		_, _ = ParseCards("AsKdQcJhTh")
	}
}

package poker

import (
	rand "math/rand/v2"
)

// Deck is a 52-card deck shuffled from an explicit random source so that
// dealt scenarios can be replayed from a seed.
type Deck struct {
	cards [52]Card
	next  int
	rng   *rand.Rand
}

// NewDeck returns a shuffled deck. Known cards are left out of the deal.
func NewDeck(rng *rand.Rand, known ...Card) *Deck {
	d := &Deck{rng: rng}
	exclude := NewHand(known...)
	n := 0
	for i := range 52 {
		c := Card(1) << i
		if exclude.HasCard(c) {
			continue
		}
		d.cards[n] = c
		n++
	}
	// Excluded slots sit past the end and are never dealt.
	d.next = 52 - n
	copy(d.cards[d.next:], d.cards[:n])
	d.Shuffle()
	return d
}

// Shuffle reshuffles the undealt part of the deck in place.
func (d *Deck) Shuffle() {
	rest := d.cards[d.next:]
	d.rng.Shuffle(len(rest), func(i, j int) {
		rest[i], rest[j] = rest[j], rest[i]
	})
}

// Deal returns the next n cards, or nil when fewer than n remain.
func (d *Deck) Deal(n int) []Card {
	if n < 0 || d.next+n > len(d.cards) {
		return nil
	}
	out := make([]Card, n)
	copy(out, d.cards[d.next:d.next+n])
	d.next += n
	return out
}

func (d *Deck) CardsRemaining() int {
	return len(d.cards) - d.next
}

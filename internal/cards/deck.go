// Package cards defines the chance and community chest piles.
//
// The exact calculator only needs how many cards of each effect a pile holds;
// the simulator additionally draws from a physical pile, either cycling it
// (draw from the top, return to the bottom) or picking a card at random.
package cards

import (
	rand "math/rand/v2"

	"github.com/lox/monopoly-markov/internal/board"
)

// DeckSize is the number of cards in each pile.
const DeckSize = 16

// Count is the number of cards in a pile that carry the same effect.
type Count[C Card] struct {
	Card C
	N    int
}

// Deck is an ordered pile of cards.
type Deck[C Card] struct {
	cards []C
}

func build[C Card](special []C, filler C) *Deck[C] {
	d := &Deck[C]{cards: make([]C, 0, DeckSize)}
	d.cards = append(d.cards, special...)
	for len(d.cards) < DeckSize {
		d.cards = append(d.cards, filler)
	}
	return d
}

// NewChanceDeck returns the chance pile in its unshuffled order: ten
// movement cards followed by no-op cards.
func NewChanceDeck() *Deck[ChanceCard] {
	return build([]ChanceCard{
		{Kind: ChanceGoGo},
		{Kind: ChanceGoJail},
		{Kind: ChanceGoProperty, Target: board.Property(2, 0)},
		{Kind: ChanceGoProperty, Target: board.Property(4, 2)},
		{Kind: ChanceGoProperty, Target: board.Property(7, 1)},
		{Kind: ChanceGoRail, Target: board.Rail(0)},
		{Kind: ChanceNextRail},
		{Kind: ChanceNextRail},
		{Kind: ChanceNextUtility},
		{Kind: ChanceBack3},
	}, ChanceCard{Kind: ChanceNoop})
}

// NewCommunityChestDeck returns the community chest pile in its unshuffled
// order.
func NewCommunityChestDeck() *Deck[CommunityChestCard] {
	return build([]CommunityChestCard{
		CommunityChestGoJail,
		CommunityChestGoGo,
	}, CommunityChestNoop)
}

// Len returns the number of cards in the pile.
func (d *Deck[C]) Len() int { return len(d.cards) }

// Cards returns a copy of the pile in its current order.
func (d *Deck[C]) Cards() []C {
	out := make([]C, len(d.cards))
	copy(out, d.cards)
	return out
}

// Counts returns how many cards share each effect, in order of first
// appearance in the pile.
func (d *Deck[C]) Counts() []Count[C] {
	var out []Count[C]
	index := make(map[C]int)
	for _, c := range d.cards {
		if i, ok := index[c]; ok {
			out[i].N++
			continue
		}
		index[c] = len(out)
		out = append(out, Count[C]{Card: c, N: 1})
	}
	return out
}

// Shuffle randomizes the order of cards in the pile.
func (d *Deck[C]) Shuffle(rng *rand.Rand) {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw takes the top card and returns it to the bottom of the pile.
func (d *Deck[C]) Draw() C {
	card := d.cards[0]
	copy(d.cards, d.cards[1:])
	d.cards[len(d.cards)-1] = card
	return card
}

// DrawRandom returns a uniformly chosen card without changing the pile.
func (d *Deck[C]) DrawRandom(rng *rand.Rand) C {
	return d.cards[rng.IntN(len(d.cards))]
}

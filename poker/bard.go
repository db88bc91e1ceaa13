package poker

import (
	"math/bits"
	"strings"
)

// Bard is an order independent set of cards, one bit per card at
// Card.Index. Two collections holding the same cards always produce the
// same Bard regardless of order or grouping.
type Bard uint64

// FullBard holds all 52 cards.
const FullBard Bard = 1<<52 - 1

// BardOf returns the set of the given cards. Blank cards are ignored.
func BardOf(cards ...Card) Bard {
	var b Bard
	for _, c := range cards {
		b = b.Add(c)
	}
	return b
}

// Add returns b with c included.
func (b Bard) Add(c Card) Bard {
	if c == Blank {
		return b
	}
	return b | 1<<c.Index()
}

// Has reports whether c is in the set.
func (b Bard) Has(c Card) bool {
	return c != Blank && b&(1<<c.Index()) != 0
}

// Count returns the number of cards in the set.
func (b Bard) Count() int {
	return bits.OnesCount64(uint64(b))
}

// Valid reports whether the set only uses the 52 card positions.
func (b Bard) Valid() bool {
	return b&^FullBard == 0
}

// Cards returns the cards of the set in ascending index order.
func (b Bard) Cards() []Card {
	cards := make([]Card, 0, b.Count())
	for rest := uint64(b & FullBard); rest != 0; rest &= rest - 1 {
		cards = append(cards, CardFromIndex(bits.TrailingZeros64(rest)))
	}
	return cards
}

// String lists the cards of the set.
func (b Bard) String() string {
	cards := b.Cards()
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return "{" + strings.Join(parts, " ") + "}"
}

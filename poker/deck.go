package poker

import (
	"math/rand/v2"
	"slices"

	"github.com/lox/pokerequity/internal/randutil"
)

// Deck deals cards in random order. Every deal draws uniformly from the
// cards not yet dealt, so a deck is reused after Reset without a full
// reshuffle.
type Deck struct {
	cards []Card
	next  int
	rng   *rand.Rand // Random source for deterministic dealing
}

// NewDeck creates a standard 52-card deck with explicit RNG
func NewDeck(rng *rand.Rand) *Deck {
	return NewDeckOf(rng, FullDeck())
}

// NewDeckOf creates a deck holding a copy of cards, such as the stub left
// once the known cards are removed. A nil rng gets a randomly seeded one.
func NewDeckOf(rng *rand.Rand, cards []Card) *Deck {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Deck{cards: slices.Clone(cards), rng: rng}
}

// FullDeck returns all 52 cards in index order.
func FullDeck() []Card {
	cards := make([]Card, 52)
	for i := range cards {
		cards[i] = CardFromIndex(i)
	}
	return cards
}

// Remaining returns every card not in used, in index order.
func Remaining(used Bard) []Card {
	cards := make([]Card, 0, 52-used.Count())
	for i := range 52 {
		if used&(1<<i) == 0 {
			cards = append(cards, CardFromIndex(i))
		}
	}
	return cards
}

// Reset returns every dealt card to the deck.
func (d *Deck) Reset() {
	d.next = 0
}

// DealInto fills dst from the undealt cards. It reports false, dealing
// nothing, when fewer than len(dst) remain.
func (d *Deck) DealInto(dst []Card) bool {
	n := len(dst)
	if d.next+n > len(d.cards) {
		return false
	}
	copy(dst, randutil.PartialShuffle(d.rng, d.cards[d.next:], n))
	d.next += n
	return true
}

// Deal deals n cards from the deck, or nil when not enough remain.
func (d *Deck) Deal(n int) []Card {
	cards := make([]Card, n)
	if !d.DealInto(cards) {
		return nil
	}
	return cards
}

// DealOne deals a single card from the deck
func (d *Deck) DealOne() Card {
	var c [1]Card
	if !d.DealInto(c[:]) {
		return Blank
	}
	return c[0]
}

// CardsRemaining returns the number of cards left in the deck
func (d *Deck) CardsRemaining() int {
	return len(d.cards) - d.next
}

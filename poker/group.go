package poker

import (
	"fmt"
	"strings"
)

// Array is the set of backing arrays a Group can be built on.
type Array interface {
	[2]Card | [3]Card | [4]Card | [5]Card | [6]Card | [7]Card
}

// Group is an immutable, fixed-size collection of distinct cards. The
// length is carried by the backing array type so a Five can never hold
// six cards.
type Group[A Array] struct {
	cards A
}

type (
	Two   = Group[[2]Card]
	Three = Group[[3]Card]
	Four  = Group[[4]Card]
	Five  = Group[[5]Card]
	Six   = Group[[6]Card]
	Seven = Group[[7]Card]
)

// BlankTwo is the undealt two card hand.
var BlankTwo Two

// NewGroup validates cards and builds a group. The number of cards must
// match the group size and every card must be dealt and distinct. Two
// card groups are normalised so the higher card comes first.
func NewGroup[A Array](cards ...Card) (Group[A], error) {
	var g Group[A]
	if len(cards) != len(g.cards) {
		return Group[A]{}, fmt.Errorf("%w: want %d, got %d", ErrCardCount, len(g.cards), len(cards))
	}

	var seen Bard
	for i, c := range cards {
		if !c.Valid() {
			return Group[A]{}, fmt.Errorf("%w at position %d", ErrBlankCard, i+1)
		}
		if seen.Has(c) {
			return Group[A]{}, fmt.Errorf("%w: %s", ErrDuplicateCard, c)
		}
		seen = seen.Add(c)
		g.cards[i] = c
	}

	if len(g.cards) == 2 && g.cards[0].Compare(g.cards[1]) < 0 {
		g.cards[0], g.cards[1] = g.cards[1], g.cards[0]
	}
	return g, nil
}

// ParseGroup parses card notation into a group of the requested size.
func ParseGroup[A Array](s string) (Group[A], error) {
	cards, err := ParseCards(s)
	if err != nil {
		return Group[A]{}, err
	}
	return NewGroup[A](cards...)
}

// MustParseGroup parses a group and panics on error (for tests)
func MustParseGroup[A Array](s string) Group[A] {
	g, err := ParseGroup[A](s)
	if err != nil {
		panic(fmt.Sprintf("failed to parse group '%s': %v", s, err))
	}
	return g
}

// NewTwo builds a two card hand with the higher card first.
func NewTwo(a, b Card) (Two, error) {
	return NewGroup[[2]Card](a, b)
}

// ParseTwo parses a two card hand such as "6♠ 6♥".
func ParseTwo(s string) (Two, error) {
	return ParseGroup[[2]Card](s)
}

// MustParseTwo parses a hand and panics on error (for tests)
func MustParseTwo(s string) Two {
	return MustParseGroup[[2]Card](s)
}

// Len returns the number of cards in the group.
func (g Group[A]) Len() int {
	return len(g.cards)
}

// At returns the i-th card.
func (g Group[A]) At(i int) Card {
	return g.cards[i]
}

// Array returns a copy of the backing array.
func (g Group[A]) Array() A {
	return g.cards
}

// Cards returns the cards as a new slice.
func (g Group[A]) Cards() []Card {
	out := make([]Card, len(g.cards))
	for i := 0; i < len(g.cards); i++ {
		out[i] = g.cards[i]
	}
	return out
}

// IsBlank reports whether the group has not been dealt.
func (g Group[A]) IsBlank() bool {
	for i := 0; i < len(g.cards); i++ {
		if g.cards[i] != Blank {
			return false
		}
	}
	return true
}

// Bard returns the group's card set.
func (g Group[A]) Bard() Bard {
	var b Bard
	for i := 0; i < len(g.cards); i++ {
		b = b.Add(g.cards[i])
	}
	return b
}

// Compare totally orders groups of the same size: ranks position by
// position first, then suits.
func (g Group[A]) Compare(o Group[A]) int {
	for i := 0; i < len(g.cards); i++ {
		if d := int(g.cards[i].Rank()) - int(o.cards[i].Rank()); d != 0 {
			return d
		}
	}
	for i := 0; i < len(g.cards); i++ {
		if d := int(g.cards[i].Suit()) - int(o.cards[i].Suit()); d != 0 {
			return d
		}
	}
	return 0
}

// Suited reports whether every card shares one suit.
func (g Group[A]) Suited() bool {
	and := uint8(0xF)
	for i := 0; i < len(g.cards); i++ {
		and &= g.cards[i].SuitBit()
	}
	return and != 0
}

// String returns the ASCII notation without separators ("AsKd").
func (g Group[A]) String() string {
	var sb strings.Builder
	for i := 0; i < len(g.cards); i++ {
		sb.WriteString(g.cards[i].String())
	}
	return sb.String()
}

// Pretty returns the cards with suit symbols separated by spaces.
func (g Group[A]) Pretty() string {
	return FormatCards(g.Cards())
}

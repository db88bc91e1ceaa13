// Package matchup classifies head-to-head preflop matchups by suit
// isomorphism. Relabelling the four suits never changes who wins, so every
// matchup belongs to an orbit of strategically identical matchups that
// only needs to be enumerated once.
package matchup

import (
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/lox/pokerequity/poker"
)

var (
	// ErrOverlap is returned when the two hands share a card.
	ErrOverlap = errors.New("hands share a card")
	// ErrBlankHand is returned when either hand has not been dealt.
	ErrBlankHand = errors.New("blank hand")
)

// SortedHeadsUp is an unordered pair of disjoint two card hands stored in a
// fixed order: Higher compares greater than Lower.
type SortedHeadsUp struct {
	Higher poker.Two
	Lower  poker.Two
}

// NewSortedHeadsUp orders a and b. Argument order never affects the result.
func NewSortedHeadsUp(a, b poker.Two) (SortedHeadsUp, error) {
	if a.IsBlank() || b.IsBlank() {
		return SortedHeadsUp{}, ErrBlankHand
	}
	if a.Bard()&b.Bard() != 0 {
		return SortedHeadsUp{}, fmt.Errorf("%w: %s and %s", ErrOverlap, a, b)
	}
	if a.Compare(b) < 0 {
		a, b = b, a
	}
	return SortedHeadsUp{Higher: a, Lower: b}, nil
}

// Parse reads four cards, the first two forming one hand and the last two
// the other: "6♠ 6♥ 5♦ 5♣". The identifier form "6s6h|5d5c" is accepted too.
func Parse(s string) (SortedHeadsUp, error) {
	cards, err := poker.ParseCards(strings.ReplaceAll(s, "|", " "))
	if err != nil {
		return SortedHeadsUp{}, err
	}
	if len(cards) != 4 {
		return SortedHeadsUp{}, fmt.Errorf("%w: a matchup needs 4, got %d", poker.ErrCardCount, len(cards))
	}
	a, err := poker.NewTwo(cards[0], cards[1])
	if err != nil {
		return SortedHeadsUp{}, fmt.Errorf("first hand: %w", err)
	}
	b, err := poker.NewTwo(cards[2], cards[3])
	if err != nil {
		return SortedHeadsUp{}, fmt.Errorf("second hand: %w", err)
	}
	return NewSortedHeadsUp(a, b)
}

// MustParse parses a matchup and panics on error (for tests)
func MustParse(s string) SortedHeadsUp {
	m, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("failed to parse matchup '%s': %v", s, err))
	}
	return m
}

// ID is the stable textual identifier used as a storage key ("AsKs|QhQd").
func (m SortedHeadsUp) ID() string {
	return m.Higher.String() + "|" + m.Lower.String()
}

func (m SortedHeadsUp) String() string {
	return m.Higher.Pretty() + " vs " + m.Lower.Pretty()
}

// Bard returns the set of all four cards.
func (m SortedHeadsUp) Bard() poker.Bard {
	return m.Higher.Bard() | m.Lower.Bard()
}

// Hands returns the two hands, higher first.
func (m SortedHeadsUp) Hands() []poker.Two {
	return []poker.Two{m.Higher, m.Lower}
}

// Code packs the four card indices into 24 bits, unique per matchup.
func (m SortedHeadsUp) Code() uint32 {
	return uint32(m.Higher.At(0).Index())<<18 |
		uint32(m.Higher.At(1).Index())<<12 |
		uint32(m.Lower.At(0).Index())<<6 |
		uint32(m.Lower.At(1).Index())
}

// Compare orders matchups by the higher hand, then the lower.
func (m SortedHeadsUp) Compare(o SortedHeadsUp) int {
	if c := m.Higher.Compare(o.Higher); c != 0 {
		return c
	}
	return m.Lower.Compare(o.Lower)
}

// Relabel applies a suit permutation to both hands: every card of suit s
// becomes suit perm[s].
func (m SortedHeadsUp) Relabel(perm [4]poker.Suit) SortedHeadsUp {
	relabel := func(h poker.Two) poker.Two {
		a, b := h.At(0), h.At(1)
		two, _ := poker.NewTwo(
			poker.NewCard(a.Rank(), perm[a.Suit()]),
			poker.NewCard(b.Rank(), perm[b.Suit()]),
		)
		return two
	}
	// A permutation keeps the hands disjoint, so this cannot fail.
	out, _ := NewSortedHeadsUp(relabel(m.Higher), relabel(m.Lower))
	return out
}

// Universe yields every unordered pair of disjoint two card hands, 812,175
// matchups in total.
func Universe() iter.Seq[SortedHeadsUp] {
	return func(yield func(SortedHeadsUp) bool) {
		hands := allTwos()
		for i := range hands {
			for j := i + 1; j < len(hands); j++ {
				if hands[i].Bard()&hands[j].Bard() != 0 {
					continue
				}
				m, _ := NewSortedHeadsUp(hands[i], hands[j])
				if !yield(m) {
					return
				}
			}
		}
	}
}

// UniverseSize is the number of matchups Universe yields.
const UniverseSize = 812175

func allTwos() []poker.Two {
	deck := poker.FullDeck()
	hands := make([]poker.Two, 0, 1326)
	for i := range deck {
		for j := i + 1; j < len(deck); j++ {
			h, _ := poker.NewTwo(deck[i], deck[j])
			hands = append(hands, h)
		}
	}
	return hands
}

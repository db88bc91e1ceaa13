// Package equity enumerates every board completion of a hand and tallies
// which players win each one.
package equity

import (
	"errors"
	"fmt"

	"github.com/lox/pokerequity/poker"
)

// ErrInvalidRequest is returned for requests that cannot be enumerated.
var ErrInvalidRequest = errors.New("invalid equity request")

// MaxPlayers is bounded by the Win bitmask width and by the deck: every
// player takes two cards and five must remain for the board.
const MaxPlayers = 23

// Request is the input of an enumeration: two or more dealt hands and zero
// to five board cards.
type Request struct {
	Hands []poker.Two
	Board []poker.Card
}

// ParseRequest builds a request from hand notations and a board notation.
func ParseRequest(hands []string, board string) (Request, error) {
	var req Request
	for i, h := range hands {
		two, err := poker.ParseTwo(h)
		if err != nil {
			return Request{}, fmt.Errorf("%w: hand %d: %w", ErrInvalidRequest, i+1, err)
		}
		req.Hands = append(req.Hands, two)
	}
	cards, err := poker.ParseCards(board)
	if err != nil {
		return Request{}, fmt.Errorf("%w: board: %w", ErrInvalidRequest, err)
	}
	req.Board = cards
	return req, req.Validate()
}

// Validate checks player count, board size and that no card is blank or
// used twice.
func (r Request) Validate() error {
	if len(r.Hands) < 2 {
		return fmt.Errorf("%w: need at least 2 hands, got %d", ErrInvalidRequest, len(r.Hands))
	}
	if len(r.Hands) > MaxPlayers {
		return fmt.Errorf("%w: at most %d hands, got %d", ErrInvalidRequest, MaxPlayers, len(r.Hands))
	}
	if len(r.Board) > 5 {
		return fmt.Errorf("%w: board has %d cards, max 5", ErrInvalidRequest, len(r.Board))
	}

	var used poker.Bard
	for i, h := range r.Hands {
		if h.IsBlank() {
			return fmt.Errorf("%w: hand %d: %w", ErrInvalidRequest, i+1, poker.ErrBlankCard)
		}
		if used&h.Bard() != 0 {
			return fmt.Errorf("%w: hand %d (%s): %w", ErrInvalidRequest, i+1, h, poker.ErrDuplicateCard)
		}
		used |= h.Bard()
	}
	for i, c := range r.Board {
		if !c.Valid() {
			return fmt.Errorf("%w: board card %d: %w", ErrInvalidRequest, i+1, poker.ErrBlankCard)
		}
		if used.Has(c) {
			return fmt.Errorf("%w: board card %s: %w", ErrInvalidRequest, c, poker.ErrDuplicateCard)
		}
		used = used.Add(c)
	}
	return nil
}

// Dead returns every card already dealt.
func (r Request) Dead() poker.Bard {
	used := poker.BardOf(r.Board...)
	for _, h := range r.Hands {
		used |= h.Bard()
	}
	return used
}

// Missing returns the number of board cards still to come.
func (r Request) Missing() int {
	return 5 - len(r.Board)
}

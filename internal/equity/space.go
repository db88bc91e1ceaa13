package equity

import (
	"context"
	"fmt"

	"github.com/lox/pokerequity/internal/combin"
	"github.com/lox/pokerequity/poker"
)

// space is the set of board completions of a request. Index n is the
// n-th colex combination of the undealt cards.
type space struct {
	hands   []poker.Two
	board   [5]poker.Card
	known   int
	missing int
	deck    []poker.Card
	total   uint64
}

func newSpace(req Request) *space {
	s := &space{
		hands:   req.Hands,
		known:   len(req.Board),
		missing: req.Missing(),
		deck:    poker.Remaining(req.Dead()),
	}
	copy(s.board[:], req.Board)
	s.total = combin.Count(len(s.deck), s.missing)
	return s
}

// clone gives a walker its own board buffer.
func (s *space) clone() *space {
	c := *s
	return &c
}

func (s *space) boardTail() []poker.Card {
	return s.board[s.known:]
}

// walk tallies every completion with index in r.
func (s *space) walk(ctx context.Context, ranker Ranker, r combin.Range, wins Wins) error {
	w := s.clone()
	idx := make([]int, w.missing)
	if err := combin.Unrank(r.Start, len(w.deck), idx); err != nil {
		return err
	}
	tail := w.boardTail()
	for n := r.Start; n < r.End; n++ {
		if (n-r.Start)&0x3FFF == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		for i, j := range idx {
			tail[i] = w.deck[j]
		}
		win, err := w.showdown(ranker)
		if err != nil {
			return fmt.Errorf("board %s: %w", poker.FormatCards(w.board[:]), err)
		}
		wins[win]++
		combin.Next(idx, len(w.deck))
	}
	return nil
}

// showdown ranks every hand on the current board and returns the players
// holding the lowest value.
func (s *space) showdown(ranker Ranker) (Win, error) {
	var (
		cards [7]poker.Card
		best  = poker.HandRankValue(poker.MaxHighCard + 1)
		win   Win
	)
	copy(cards[2:], s.board[:])
	for i, h := range s.hands {
		cards[0], cards[1] = h.At(0), h.At(1)
		v, err := ranker.Rank7(cards)
		if err != nil {
			return 0, err
		}
		switch {
		case v < best:
			best, win = v, 1<<i
		case v == best:
			win |= 1 << i
		}
	}
	return win, nil
}

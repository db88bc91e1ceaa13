package poker

import (
	"fmt"
	"slices"
	"sync"
)

// Evaluator ranks five, six and seven card hands with the perfect hash
// tables. It holds no mutable state and is safe for concurrent use.
type Evaluator struct {
	t *Tables
}

var (
	defaultTablesOnce sync.Once
	defaultTables     *Tables
)

// NewEvaluator returns an evaluator over the shared, lazily generated tables.
func NewEvaluator() *Evaluator {
	defaultTablesOnce.Do(func() {
		defaultTables = NewTables()
	})
	return &Evaluator{t: defaultTables}
}

// NewEvaluatorWithTables returns an evaluator over the given tables.
func NewEvaluatorWithTables(t *Tables) *Evaluator {
	return &Evaluator{t: t}
}

// comb7 lists the 21 ways to choose five of seven positions.
var comb7 = func() [21][5]int {
	var out [21][5]int
	n := 0
	for a := 0; a < 7; a++ {
		for b := a + 1; b < 7; b++ {
			// The two skipped positions are a and b.
			k := 0
			for i := 0; i < 7; i++ {
				if i != a && i != b {
					out[n][k] = i
					k++
				}
			}
			n++
		}
	}
	return out
}()

// Rank5 returns the value of five distinct valid cards. Lower is
// stronger. It panics with ErrCorruptTable if the tables are damaged.
func (e *Evaluator) Rank5(a, b, c, d, f Card) HandRankValue {
	or := uint16((a | b | c | d | f) >> rankBitShift)
	if a&b&c&d&f&suitBitsMask != 0 {
		return HandRankValue(e.t.flush[or])
	}
	if v := e.t.unique5[or]; v != 0 {
		return HandRankValue(v)
	}
	product := a.Prime() * b.Prime() * c.Prime() * d.Prime() * f.Prime()
	v, ok := e.t.lookupProduct(product)
	if !ok {
		panic(fmt.Errorf("%w: no entry for prime product %d", ErrCorruptTable, product))
	}
	return HandRankValue(v)
}

// Evaluate5 ranks a five card group.
func (e *Evaluator) Evaluate5(h Five) HandRank {
	c := h.Array()
	return NewHandRank(e.Rank5(c[0], c[1], c[2], c[3], c[4]))
}

// Evaluate7 returns the best value among the 21 five card subsets. The
// cards must be seven distinct valid cards.
func (e *Evaluator) Evaluate7(c [7]Card) HandRankValue {
	best := HandRankValue(MaxHighCard + 1)
	for _, idx := range comb7 {
		v := e.Rank5(c[idx[0]], c[idx[1]], c[idx[2]], c[idx[3]], c[idx[4]])
		if v < best {
			best = v
		}
	}
	return best
}

// Best7 ranks a seven card group and returns the winning five cards in
// display order.
func (e *Evaluator) Best7(h Seven) (HandRank, Five) {
	c := h.Array()
	best := HandRankValue(MaxHighCard + 1)
	var pick [5]int
	for _, idx := range comb7 {
		v := e.Rank5(c[idx[0]], c[idx[1]], c[idx[2]], c[idx[3]], c[idx[4]])
		if v < best {
			best, pick = v, idx
		}
	}
	var five [5]Card
	for i, p := range pick {
		five[i] = c[p]
	}
	return NewHandRank(best), Five{cards: displayOrder(five)}
}

// Best ranks five, six or seven distinct cards.
func (e *Evaluator) Best(cards []Card) (HandRank, error) {
	if len(cards) < 5 || len(cards) > 7 {
		return InvalidHandRank, fmt.Errorf("%w: need 5 to 7 cards, got %d", ErrCardCount, len(cards))
	}
	var seen Bard
	for i, c := range cards {
		if !c.Valid() {
			return InvalidHandRank, fmt.Errorf("%w at position %d", ErrBlankCard, i+1)
		}
		if seen.Has(c) {
			return InvalidHandRank, fmt.Errorf("%w: %s", ErrDuplicateCard, c)
		}
		seen = seen.Add(c)
	}

	best := HandRankValue(MaxHighCard + 1)
	forSubsets5(len(cards), func(i [5]int) {
		v := e.Rank5(cards[i[0]], cards[i[1]], cards[i[2]], cards[i[3]], cards[i[4]])
		if v < best {
			best = v
		}
	})
	return NewHandRank(best), nil
}

func forSubsets5(n int, fn func([5]int)) {
	var idx [5]int
	var walk func(depth, from int)
	walk = func(depth, from int) {
		if depth == 5 {
			fn(idx)
			return
		}
		for i := from; i <= n-(5-depth); i++ {
			idx[depth] = i
			walk(depth+1, i+1)
		}
	}
	walk(0, 0)
}

// displayOrder sorts a made hand the way players read it: larger rank
// groups first, then higher ranks, with the wheel's ace played low.
func displayOrder(cards [5]Card) [5]Card {
	var counts [13]int
	for _, c := range cards {
		counts[c.Rank()]++
	}
	wheel := counts[RankAce] == 1 && counts[RankTwo] == 1 && counts[RankThree] == 1 &&
		counts[RankFour] == 1 && counts[RankFive] == 1

	rankKey := func(c Card) int {
		if wheel && c.Rank() == RankAce {
			return -1
		}
		return int(c.Rank())
	}
	out := cards
	slices.SortFunc(out[:], func(a, b Card) int {
		if d := counts[b.Rank()] - counts[a.Rank()]; d != 0 {
			return d
		}
		if d := rankKey(b) - rankKey(a); d != 0 {
			return d
		}
		return int(b.Suit()) - int(a.Suit())
	})
	return out
}

package equity

import (
	"math/bits"
	"slices"
	"strconv"
	"strings"
)

// Win is the set of players holding the best hand on one board: bit i is
// player i. More than one bit means a tie.
type Win uint32

// Players returns the number of winners.
func (w Win) Players() int {
	return bits.OnesCount32(uint32(w))
}

// Has reports whether player i is among the winners.
func (w Win) Has(i int) bool {
	return w&(1<<i) != 0
}

// Tie reports whether the board was split.
func (w Win) Tie() bool {
	return w.Players() > 1
}

func (w Win) String() string {
	var parts []string
	for rest := uint32(w); rest != 0; rest &= rest - 1 {
		parts = append(parts, strconv.Itoa(bits.TrailingZeros32(rest)))
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// Wins counts boards per outcome.
type Wins map[Win]uint64

// Add merges o into w.
func (w Wins) Add(o Wins) {
	for k, v := range o {
		w[k] += v
	}
}

// Total returns the number of boards counted.
func (w Wins) Total() uint64 {
	var n uint64
	for _, v := range w {
		n += v
	}
	return n
}

// Outcomes returns the recorded outcomes in ascending order.
func (w Wins) Outcomes() []Win {
	out := make([]Win, 0, len(w))
	for k := range w {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

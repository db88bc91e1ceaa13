package poker

import (
	"cmp"
	"errors"
	"math/bits"
	"slices"
)

// ErrCorruptTable signals that the perfect hash tables are missing an
// entry. It indicates broken precomputed data, never bad caller input.
var ErrCorruptTable = errors.New("corrupt lookup table")

const (
	rankPatterns    = 1 << 13
	productCount    = 4888
	nonStraightFive = 1277
)

// Tables are the perfect hash lookup tables for five card hands. The
// flush and unique tables are indexed by the 13-bit rank pattern; the
// product table holds the sorted prime products of every hand with a
// repeated rank, with values at the same position.
type Tables struct {
	flush    [rankPatterns]uint16
	unique5  [rankPatterns]uint16
	products [productCount]uint32
	values   [productCount]uint16
}

// straightMasks lists the ten straights from AKQJT down to the wheel.
var straightMasks = func() [10]uint16 {
	var masks [10]uint16
	for i := range 9 {
		masks[i] = 0x1F00 >> i
	}
	masks[9] = 0x100F
	return masks
}()

// NewTables generates the lookup tables. Values are assigned by walking
// every hand class from strongest to weakest.
func NewTables() *Tables {
	t := &Tables{}

	for i, mask := range straightMasks {
		t.flush[mask] = uint16(MaxStraightFlush - 9 + i)
		t.unique5[mask] = uint16(MaxFlush + 1 + i)
	}

	for i, mask := range nonStraightPatterns() {
		t.flush[mask] = uint16(MaxFullHouse + 1 + i)
		t.unique5[mask] = uint16(MaxPair + 1 + i)
	}

	type row struct {
		product uint32
		value   uint16
	}
	rows := make([]row, 0, productCount)
	value := uint16(MaxStraightFlush + 1)
	add := func(ranks ...int) {
		p := uint32(1)
		for _, r := range ranks {
			p *= primes[r]
		}
		rows = append(rows, row{product: p, value: value})
		value++
	}

	for q := 12; q >= 0; q-- {
		for k := 12; k >= 0; k-- {
			if k != q {
				add(q, q, q, q, k)
			}
		}
	}
	for tr := 12; tr >= 0; tr-- {
		for p := 12; p >= 0; p-- {
			if p != tr {
				add(tr, tr, tr, p, p)
			}
		}
	}

	value = MaxStraight + 1
	for tr := 12; tr >= 0; tr-- {
		forKickers(2, 1<<tr, func(k []int) { add(tr, tr, tr, k[0], k[1]) })
	}
	for hi := 12; hi >= 0; hi-- {
		for lo := hi - 1; lo >= 0; lo-- {
			forKickers(1, 1<<hi|1<<lo, func(k []int) { add(hi, hi, lo, lo, k[0]) })
		}
	}
	for pr := 12; pr >= 0; pr-- {
		forKickers(3, 1<<pr, func(k []int) { add(pr, pr, k[0], k[1], k[2]) })
	}

	slices.SortFunc(rows, func(a, b row) int { return cmp.Compare(a.product, b.product) })
	for i, r := range rows {
		t.products[i] = r.product
		t.values[i] = r.value
	}
	return t
}

// nonStraightPatterns returns every five-rank pattern that is not a
// straight, strongest first. For distinct ranks the numeric order of the
// bit pattern matches the kicker-by-kicker comparison.
func nonStraightPatterns() []uint16 {
	patterns := make([]uint16, 0, nonStraightFive)
	for mask := rankPatterns - 1; mask >= 0; mask-- {
		if bits.OnesCount16(uint16(mask)) != 5 || isStraightMask(uint16(mask)) {
			continue
		}
		patterns = append(patterns, uint16(mask))
	}
	return patterns
}

func isStraightMask(mask uint16) bool {
	return slices.Contains(straightMasks[:], mask)
}

// forKickers calls fn with every descending combination of n ranks that
// avoids the excluded rank bits, best kickers first.
func forKickers(n int, exclude uint16, fn func([]int)) {
	kickers := make([]int, n)
	var walk func(depth, below int)
	walk = func(depth, below int) {
		if depth == n {
			fn(kickers)
			return
		}
		for r := below - 1; r >= 0; r-- {
			if exclude&(1<<r) != 0 {
				continue
			}
			kickers[depth] = r
			walk(depth+1, r)
		}
	}
	walk(0, 13)
}

// lookupProduct finds the value for a repeated-rank prime product.
func (t *Tables) lookupProduct(product uint32) (uint16, bool) {
	i, found := slices.BinarySearch(t.products[:], product)
	if !found {
		return 0, false
	}
	return t.values[i], true
}

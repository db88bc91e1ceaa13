// Package combin walks k-combinations in chunks. Counting and unranking
// come from gonum, so any index range can be walked independently of
// every other range, in the same lexicographic order gonum's
// Combinations uses.
package combin

import (
	"fmt"

	"gonum.org/v1/gonum/stat/combin"
)

// Count returns C(n, k), or 0 when k is out of range.
func Count(n, k int) uint64 {
	if n < 0 || k < 0 || k > n {
		return 0
	}
	return uint64(combin.Binomial(n, k))
}

// Unrank writes the idx-th k-combination of {0..n-1} into c, where
// k = len(c). Elements come out ascending.
func Unrank(idx uint64, n int, c []int) error {
	k := len(c)
	if total := Count(n, k); idx >= total {
		return fmt.Errorf("combination index %d out of range for C(%d,%d)", idx, n, k)
	}
	if k == 0 {
		return nil
	}
	combin.IndexToCombination(c, int(idx), n, k)
	return nil
}

// Next advances c to the following combination of {0..n-1}. It returns
// false once c was the last combination.
//
// gonum's CombinationGenerator always starts at index zero, so a range
// that begins mid-sequence steps with this instead.
func Next(c []int, n int) bool {
	k := len(c)
	for j := k - 1; j >= 0; j-- {
		if c[j] == n-k+j {
			continue
		}
		c[j]++
		for l := j + 1; l < k; l++ {
			c[l] = c[j] + l - j
		}
		return true
	}
	return false
}

// All returns every k-combination of {0..n-1} in order. It is meant for
// small tables such as the 21 five card subsets of seven cards.
func All(n, k int) [][]int {
	return combin.Combinations(n, k)
}

// Range is a half-open span [Start, End) of combination indices.
type Range struct {
	Start, End uint64
}

// Len returns the number of indices in r.
func (r Range) Len() uint64 {
	return r.End - r.Start
}

// Split partitions [0, total) into at most chunks contiguous ranges whose
// sizes differ by at most one. Empty ranges are never returned.
func Split(total uint64, chunks int) []Range {
	if chunks < 1 {
		chunks = 1
	}
	if uint64(chunks) > total {
		chunks = int(total)
	}
	out := make([]Range, 0, chunks)
	if total == 0 {
		return out
	}
	size, extra := total/uint64(chunks), total%uint64(chunks)
	var start uint64
	for i := 0; i < chunks; i++ {
		n := size
		if uint64(i) < extra {
			n++
		}
		out = append(out, Range{Start: start, End: start + n})
		start += n
	}
	return out
}

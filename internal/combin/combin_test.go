package combin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCount(t *testing.T) {
	t.Parallel()
	tests := []struct {
		n, k int
		want uint64
	}{
		{52, 5, 2598960},
		{52, 7, 133784560},
		{48, 5, 1712304},
		{45, 2, 990},
		{5, 0, 1},
		{5, 5, 1},
		{5, 6, 0},
		{-1, 0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Count(tt.n, tt.k), "C(%d,%d)", tt.n, tt.k)
	}
}

func TestUnrankMatchesNext(t *testing.T) {
	t.Parallel()
	const n, k = 10, 4

	c := []int{0, 1, 2, 3}
	u := make([]int, k)
	seen := make(map[[k]int]bool)
	for idx := uint64(0); ; idx++ {
		require.NoError(t, Unrank(idx, n, u))
		require.Equal(t, c, u, "index %d", idx)

		key := [k]int(c)
		require.False(t, seen[key])
		seen[key] = true
		for i := 1; i < k; i++ {
			require.Less(t, c[i-1], c[i])
		}
		if !Next(c, n) {
			break
		}
	}
	assert.Len(t, seen, int(Count(n, k)))
}

func TestUnrankFollowsAll(t *testing.T) {
	t.Parallel()
	all := All(9, 5)
	require.Len(t, all, int(Count(9, 5)))

	c := make([]int, 5)
	for idx, want := range all {
		require.NoError(t, Unrank(uint64(idx), 9, c))
		require.Equal(t, want, c, "index %d", idx)
	}
	assert.False(t, Next(c, 9), "the last combination has no successor")
	assert.Len(t, All(7, 5), 21)
}

func TestUnrankErrors(t *testing.T) {
	t.Parallel()
	c := make([]int, 2)
	assert.Error(t, Unrank(Count(5, 2), 5, c))
	assert.NoError(t, Unrank(0, 5, nil))
}

func TestNextEmpty(t *testing.T) {
	t.Parallel()
	assert.False(t, Next(nil, 5))
}

func TestSplit(t *testing.T) {
	t.Parallel()
	ranges := Split(10, 3)
	assert.Equal(t, []Range{{0, 4}, {4, 7}, {7, 10}}, ranges)

	var total uint64
	for _, r := range Split(1712304, 64) {
		total += r.Len()
	}
	assert.Equal(t, uint64(1712304), total)

	assert.Len(t, Split(2, 8), 2)
	assert.Empty(t, Split(0, 4))
	assert.Len(t, Split(5, 0), 1)
}

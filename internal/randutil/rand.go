// Package randutil derives reproducible random streams for sampling.
package randutil

import rand "math/rand/v2"

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from seed. Both PCG
// words are derived from it so nearby seeds give unrelated streams.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// PartialShuffle moves k uniformly chosen elements of s into s[:k] and
// returns that prefix. The rest of s is left in an unspecified order.
func PartialShuffle[T any](r *rand.Rand, s []T, k int) []T {
	k = min(k, len(s))
	for i := 0; i < k; i++ {
		j := i + r.IntN(len(s)-i)
		s[i], s[j] = s[j], s[i]
	}
	return s[:k]
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

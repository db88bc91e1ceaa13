package matchup

import (
	"iter"

	"github.com/lox/pokerequity/poker"
)

// Masked is a classified matchup. Texture, SuitMask and RankMask describe
// the pattern of the matchup itself; Key identifies its orbit.
//
// Two members of one orbit classify to different Masked values, since
// Matchup and SuitMask follow the actual suits. Compare Key or Canonical
// when deduplicating, never whole Masked values.
type Masked struct {
	Matchup SortedHeadsUp
	Texture SuitTexture
	// SuitMask holds the higher hand's suits in the high nibble and the
	// lower hand's in the low nibble.
	SuitMask uint8
	// RankMask holds the higher hand's rank bits in bits 13..25 and the
	// lower hand's in bits 0..12.
	RankMask uint32

	canon SortedHeadsUp
}

// Key identifies the orbit: every relabelling of a matchup has the same key.
func (m Masked) Key() uint32 {
	return m.canon.Code()
}

// Canonical returns the orbit representative with the smallest ordering.
func (m Masked) Canonical() SortedHeadsUp {
	return m.canon
}

// Classifier holds the 24 suit permutations. It is immutable after
// construction and safe to share.
type Classifier struct {
	perms [][4]poker.Suit
}

// NewClassifier precomputes the suit permutations.
func NewClassifier() *Classifier {
	c := &Classifier{perms: make([][4]poker.Suit, 0, 24)}
	var walk func(p [4]poker.Suit, used uint8, depth int)
	walk = func(p [4]poker.Suit, used uint8, depth int) {
		if depth == 4 {
			c.perms = append(c.perms, p)
			return
		}
		for s := poker.Clubs; s <= poker.Spades; s++ {
			if used&(1<<s) != 0 {
				continue
			}
			p[depth] = s
			walk(p, used|1<<s, depth+1)
		}
	}
	walk([4]poker.Suit{}, 0, 0)
	return c
}

// Permutations returns the suit permutations, identity first.
func (c *Classifier) Permutations() [][4]poker.Suit {
	out := make([][4]poker.Suit, len(c.perms))
	copy(out, c.perms)
	return out
}

// Classify derives the texture, masks and orbit key of m.
func (c *Classifier) Classify(m SortedHeadsUp) Masked {
	canon := m
	for _, p := range c.perms[1:] {
		if r := m.Relabel(p); r.Compare(canon) < 0 {
			canon = r
		}
	}
	return masked(m, canon)
}

func masked(m, canon SortedHeadsUp) Masked {
	hi, lo := suitSets(m)
	rankBits := func(h poker.Two) uint32 {
		return uint32(h.At(0).RankBit() | h.At(1).RankBit())
	}
	return Masked{
		Matchup:  m,
		Texture:  textureOf(m),
		SuitMask: hi<<4 | lo,
		RankMask: rankBits(m.Higher)<<13 | rankBits(m.Lower),
		canon:    canon,
	}
}

// Shifts returns the whole orbit of m, including m itself, without
// duplicates. Each member shares the texture and key of m.
func (c *Classifier) Shifts(m Masked) []Masked {
	out := make([]Masked, 0, len(c.perms))
	seen := make(map[uint32]struct{}, len(c.perms))
	for _, p := range c.perms {
		r := m.Matchup.Relabel(p)
		if _, ok := seen[r.Code()]; ok {
			continue
		}
		seen[r.Code()] = struct{}{}
		out = append(out, masked(r, m.canon))
	}
	return out
}

// OtherShifts is Shifts without m itself.
func (c *Classifier) OtherShifts(m Masked) []Masked {
	all := c.Shifts(m)
	out := all[:0]
	for _, s := range all {
		if s.Matchup != m.Matchup {
			out = append(out, s)
		}
	}
	return out
}

// OrbitSize returns the number of distinct matchups in the orbit of m.
func (c *Classifier) OrbitSize(m Masked) int {
	return len(c.Shifts(m))
}

// Distinct returns one representative per orbit. It walks the input in
// order, keeps the first unprocessed matchup it meets and removes every
// member of that matchup's orbit from the pool.
func (c *Classifier) Distinct(matchups iter.Seq[SortedHeadsUp]) []Masked {
	// One bit per 24-bit matchup code.
	removed := make([]uint64, 1<<24/64)
	isRemoved := func(code uint32) bool { return removed[code/64]&(1<<(code%64)) != 0 }

	var out []Masked
	for m := range matchups {
		if isRemoved(m.Code()) {
			continue
		}
		rep := c.Classify(m)
		out = append(out, rep)
		for _, s := range c.Shifts(rep) {
			code := s.Matchup.Code()
			removed[code/64] |= 1 << (code % 64)
		}
	}
	return out
}

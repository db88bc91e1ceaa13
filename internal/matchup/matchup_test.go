package matchup

import (
	"testing"

	"github.com/lox/pokerequity/poker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()
	m, err := Parse("Qh Qd As Ks")
	require.NoError(t, err)
	assert.Equal(t, "AsKs|QhQd", m.ID())
	assert.Equal(t, "A♠ K♠ vs Q♥ Q♦", m.String())
	assert.Equal(t, 4, m.Bard().Count())

	fromID, err := Parse(m.ID())
	require.NoError(t, err)
	assert.Equal(t, m, fromID)
}

func TestParseErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
		err   error
	}{
		{"same hand twice", "A♠ A♥ A♠ A♥", ErrOverlap},
		{"shared card", "As Kd As Qc", ErrOverlap},
		{"duplicate within a hand", "As As Kd Kh", poker.ErrDuplicateCard},
		{"three cards", "As Ah Ad", poker.ErrCardCount},
		{"five cards", "As Ah Ad Ac Ks", poker.ErrCardCount},
		{"bad token", "As Ah Ad Zz", poker.ErrMalformedCard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse(tt.input)
			assert.ErrorIs(t, err, tt.err)
		})
	}

	_, err := NewSortedHeadsUp(poker.BlankTwo, poker.MustParseTwo("As Ks"))
	assert.ErrorIs(t, err, ErrBlankHand)

	assert.Panics(t, func() { MustParse("As") })
}

func TestFourAcesAsOneHand(t *testing.T) {
	t.Parallel()
	_, err := poker.ParseTwo("A♠ A♥ A♦ A♣")
	assert.ErrorIs(t, err, poker.ErrCardCount)
}

func TestSwapInvariant(t *testing.T) {
	t.Parallel()
	a := poker.MustParseTwo("6♠ 6♥")
	b := poker.MustParseTwo("5♦ 5♣")
	ab, err := NewSortedHeadsUp(a, b)
	require.NoError(t, err)
	ba, err := NewSortedHeadsUp(b, a)
	require.NoError(t, err)
	assert.Equal(t, ab, ba)
	assert.Equal(t, a, ab.Higher)

	c := NewClassifier()
	assert.Equal(t, c.Classify(ab), c.Classify(ba))
}

func TestTextures(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input   string
		texture SuitTexture
	}{
		{"As Ks Qs Js", MonoSame},
		{"As Ks Qs Jh", MonoOffShared},
		{"Qs Jh As Ks", MonoOffShared},
		{"As Ks Qh Jh", MonoDiff},
		{"As Ks Qh Jd", MonoOffDisjoint},
		{"As Kh Qs Jd", OffShareOne},
		{"As Kh Qs Jh", OffSameSuits},
		{"As Kh Qd Jc", Rainbow},
		{"6♠ 6♥ 5♦ 5♣", Rainbow},
	}
	c := NewClassifier()
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.texture, c.Classify(MustParse(tt.input)).Texture)
		})
	}
	assert.Equal(t, "rainbow", Rainbow.String())
	assert.Equal(t, "unknown", SuitTexture(99).String())
}

func TestMasks(t *testing.T) {
	t.Parallel()
	c := NewClassifier()
	m := c.Classify(MustParse("As Kh Qd Jc"))
	// Higher hand spades and hearts, lower diamonds and clubs.
	assert.Equal(t, uint8(0b1100_0011), m.SuitMask)
	hiRanks := uint32(1<<poker.RankAce | 1<<poker.RankKing)
	loRanks := uint32(1<<poker.RankQueen | 1<<poker.RankJack)
	assert.Equal(t, hiRanks<<13|loRanks, m.RankMask)
}

func TestRelabelInvariance(t *testing.T) {
	t.Parallel()
	c := NewClassifier()
	perms := c.Permutations()
	require.Len(t, perms, 24)
	assert.Equal(t, [4]poker.Suit{poker.Clubs, poker.Diamonds, poker.Hearts, poker.Spades}, perms[0])

	for _, input := range []string{"As Kh Qd Jc", "6♠ 6♥ 5♦ 5♣", "As Ks Qs Js", "Ah Kd Ac Kc"} {
		base := c.Classify(MustParse(input))
		for _, p := range perms {
			r := c.Classify(base.Matchup.Relabel(p))
			assert.Equal(t, base.Key(), r.Key(), "%s under %v", input, p)
			assert.Equal(t, base.Texture, r.Texture)
			assert.Equal(t, base.RankMask, r.RankMask)
			assert.Equal(t, base.Canonical(), r.Canonical())
		}
	}
}

func TestShifts(t *testing.T) {
	t.Parallel()
	c := NewClassifier()
	tests := []struct {
		input string
		size  int
	}{
		{"As Ks Qs Js", 4},
		{"As Ks Qh Jh", 12},
		{"As Ks Qh Qd", 12},
		{"As Kh Qd Jc", 24},
		{"A♠ A♥ A♦ A♣", 3},
		{"6♠ 6♥ 5♦ 5♣", 6 * 1 * 1},
	}
	for _, tt := range tests {
		m := c.Classify(MustParse(tt.input))
		shifts := c.Shifts(m)
		assert.Len(t, shifts, tt.size, tt.input)
		assert.Equal(t, tt.size, c.OrbitSize(m))
		assert.Len(t, c.OtherShifts(m), tt.size-1)
		for _, s := range shifts {
			assert.Equal(t, m.Key(), s.Key())
			assert.Equal(t, m.Texture, s.Texture)
		}
		assert.NotContains(t, c.OtherShifts(m), m)
	}
}

func TestOrbitMembersShareKeyNotValue(t *testing.T) {
	t.Parallel()
	c := NewClassifier()
	a := c.Classify(MustParse("As Ks Qh Qd"))
	b := c.Classify(MustParse("Ah Kh Qs Qc"))

	assert.Equal(t, a.Key(), b.Key())
	assert.Equal(t, a.Canonical(), b.Canonical())
	assert.Equal(t, a.RankMask, b.RankMask)
	assert.NotEqual(t, a.SuitMask, b.SuitMask)
	assert.NotEqual(t, a, b)
}

func TestUniverseTextureSplit(t *testing.T) {
	t.Parallel()
	counts := make(map[SuitTexture]int)
	total := 0
	for m := range Universe() {
		counts[textureOf(m)]++
		total++
	}
	assert.Equal(t, UniverseSize, total)
	assert.Equal(t, TextureCounts, counts)
}

func TestDistinctCoversUniverse(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping full universe classification in short mode")
	}
	t.Parallel()
	c := NewClassifier()
	reps := c.Distinct(Universe())

	covered := make(map[SuitTexture]int)
	keys := make(map[uint32]struct{}, len(reps))
	for _, r := range reps {
		_, dup := keys[r.Key()]
		require.False(t, dup, "two representatives for orbit of %s", r.Matchup)
		keys[r.Key()] = struct{}{}
		covered[r.Texture] += c.OrbitSize(r)
	}
	assert.Equal(t, TextureCounts, covered)
}

func TestDistinctKeepsFirstSeen(t *testing.T) {
	t.Parallel()
	c := NewClassifier()
	input := []SortedHeadsUp{
		MustParse("Ah Kh Qd Jd"),
		MustParse("As Ks Qc Jc"),
		MustParse("As Kh Qd Jc"),
		MustParse("Ac Ks Qh Jd"),
	}
	reps := c.Distinct(func(yield func(SortedHeadsUp) bool) {
		for _, m := range input {
			if !yield(m) {
				return
			}
		}
	})
	require.Len(t, reps, 2)
	assert.Equal(t, input[0], reps[0].Matchup)
	assert.Equal(t, input[2], reps[1].Matchup)
}

package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTwoNormalises(t *testing.T) {
	t.Parallel()
	a, err := ParseTwo("6♥ 6♠")
	require.NoError(t, err)
	b, err := ParseTwo("6♠ 6♥")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, MustParseCard("6s"), a.At(0), "higher suit comes first on a pair")
	assert.Equal(t, "6s6h", a.String())

	c := MustParseTwo("5d Ac")
	assert.Equal(t, "Ac5d", c.String())
	assert.Equal(t, "A♣ 5♦", c.Pretty())
}

func TestNewGroupErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
		err   error
	}{
		{"four aces as two", "A♠ A♥ A♦ A♣", ErrCardCount},
		{"one card", "As", ErrCardCount},
		{"duplicate", "As As", ErrDuplicateCard},
		{"malformed", "As Xx", ErrMalformedCard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseTwo(tt.input)
			assert.ErrorIs(t, err, tt.err)
		})
	}

	_, err := NewTwo(MustParseCard("As"), Blank)
	assert.ErrorIs(t, err, ErrBlankCard)

	assert.Panics(t, func() { MustParseTwo("As") })
}

func TestGroupSizes(t *testing.T) {
	t.Parallel()
	five := MustParseGroup[[5]Card]("As Ks Qs Js Ts")
	assert.Equal(t, 5, five.Len())
	assert.True(t, five.Suited())
	assert.Equal(t, 5, five.Bard().Count())
	assert.Len(t, five.Cards(), 5)

	// Only two card groups are reordered.
	three := MustParseGroup[[3]Card]("2c Ah 9d")
	assert.Equal(t, MustParseCard("2c"), three.At(0))

	_, err := ParseGroup[[7]Card]("As Ks Qs Js Ts 9s")
	assert.ErrorIs(t, err, ErrCardCount)
}

func TestGroupBlank(t *testing.T) {
	t.Parallel()
	assert.True(t, BlankTwo.IsBlank())
	assert.False(t, MustParseTwo("As Kd").IsBlank())
	assert.Equal(t, Bard(0), BlankTwo.Bard())
}

func TestGroupCompare(t *testing.T) {
	t.Parallel()
	aa := MustParseTwo("As Ah")
	ak := MustParseTwo("As Kh")
	akSuited := MustParseTwo("Ah Kh")

	assert.Positive(t, aa.Compare(ak), "ranks decide first")
	assert.Positive(t, ak.Compare(akSuited), "then suits")
	assert.Negative(t, akSuited.Compare(aa))
	assert.Zero(t, ak.Compare(MustParseTwo("Kh As")))
}

func TestGroupBardMatchesCards(t *testing.T) {
	t.Parallel()
	two := MustParseTwo("Td 9d")
	board := MustParseGroup[[5]Card]("2c 3c 4c 5c 6c")
	combined := two.Bard() | board.Bard()
	assert.Equal(t, BardOf(append(two.Cards(), board.Cards()...)...), combined)
	assert.Zero(t, two.Bard()&board.Bard())
}

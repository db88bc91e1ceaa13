package matchup

import "math/bits"

// SuitTexture is the suit pattern of a matchup, ignoring which suits are
// involved.
type SuitTexture uint8

const (
	// MonoSame: both hands suited in the same suit.
	MonoSame SuitTexture = iota
	// MonoOffShared: one suited hand, the other offsuit with a card in that suit.
	MonoOffShared
	// MonoDiff: both hands suited in different suits.
	MonoDiff
	// MonoOffDisjoint: one suited hand, the other avoids that suit.
	MonoOffDisjoint
	// OffShareOne: both offsuit, sharing exactly one suit.
	OffShareOne
	// OffSameSuits: both offsuit over the same two suits.
	OffSameSuits
	// Rainbow: both offsuit, all four suits present.
	Rainbow
)

// Textures lists every texture in declaration order.
var Textures = []SuitTexture{
	MonoSame, MonoOffShared, MonoDiff, MonoOffDisjoint, OffShareOne, OffSameSuits, Rainbow,
}

// TextureCounts is how the universe of matchups splits across textures.
var TextureCounts = map[SuitTexture]int{
	MonoSame:        8580,
	MonoOffShared:   133848,
	MonoDiff:        36504,
	MonoOffDisjoint: 158184,
	OffShareOne:     316368,
	OffSameSuits:    73008,
	Rainbow:         85683,
}

var textureNames = [...]string{
	MonoSame:        "mono-same",
	MonoOffShared:   "mono-off-shared",
	MonoDiff:        "mono-diff",
	MonoOffDisjoint: "mono-off-disjoint",
	OffShareOne:     "off-share-one",
	OffSameSuits:    "off-same-suits",
	Rainbow:         "rainbow",
}

func (t SuitTexture) String() string {
	if int(t) >= len(textureNames) {
		return "unknown"
	}
	return textureNames[t]
}

// suitSets returns the 4-bit suit presence of each hand.
func suitSets(m SortedHeadsUp) (hi, lo uint8) {
	return m.Higher.At(0).SuitBit() | m.Higher.At(1).SuitBit(),
		m.Lower.At(0).SuitBit() | m.Lower.At(1).SuitBit()
}

// textureOf derives the texture from the suit pattern alone.
func textureOf(m SortedHeadsUp) SuitTexture {
	hi, lo := suitSets(m)
	hiSuited := bits.OnesCount8(hi) == 1
	loSuited := bits.OnesCount8(lo) == 1

	switch {
	case hiSuited && loSuited:
		if hi == lo {
			return MonoSame
		}
		return MonoDiff
	case hiSuited || loSuited:
		if hi&lo != 0 {
			return MonoOffShared
		}
		return MonoOffDisjoint
	}

	switch bits.OnesCount8(hi & lo) {
	case 2:
		return OffSameSuits
	case 1:
		return OffShareOne
	default:
		return Rainbow
	}
}

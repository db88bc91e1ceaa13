package poker

// HoleCategory is a coarse preflop strength bucket for a two card hand.
type HoleCategory string

const (
	CategoryPremium HoleCategory = "Premium"
	CategoryStrong  HoleCategory = "Strong"
	CategoryMedium  HoleCategory = "Medium"
	CategoryWeak    HoleCategory = "Weak"
	CategoryTrash   HoleCategory = "Trash"
	CategoryUnknown HoleCategory = "Unknown"
)

// Category buckets a hand: Premium (JJ+, AK), Strong (TT, AQ, AJ),
// Medium (77-99, suited broadway), Weak (22-66, suited connectors and
// one-gappers), Trash otherwise.
func Category(h Two) HoleCategory {
	if h.IsBlank() {
		return CategoryUnknown
	}
	// Two is normalised with the higher card first.
	hi, lo := h.At(0).Rank(), h.At(1).Rank()
	pair := hi == lo
	suited := h.Suited()

	switch {
	case pair && hi >= RankJack, hi == RankAce && lo == RankKing:
		return CategoryPremium
	case pair && hi == RankTen, hi == RankAce && (lo == RankQueen || lo == RankJack):
		return CategoryStrong
	case pair && hi >= RankSeven, suited && lo >= RankTen:
		return CategoryMedium
	case pair, suited && hi-lo <= 2:
		return CategoryWeak
	default:
		return CategoryTrash
	}
}

// Shorthand returns the rank-only notation of a hand: "QQ", "AKs", "T9o".
func Shorthand(h Two) string {
	if h.IsBlank() {
		return "--"
	}
	hi, lo := h.At(0).Rank(), h.At(1).Rank()
	switch {
	case hi == lo:
		return hi.String() + lo.String()
	case h.Suited():
		return hi.String() + lo.String() + "s"
	default:
		return hi.String() + lo.String() + "o"
	}
}

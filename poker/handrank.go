package poker

import "fmt"

// HandRankValue is the strength of a five card hand: 1 is a royal flush,
// 7462 the worst high card. Zero means invalid or unset.
type HandRankValue uint16

// Upper bounds (inclusive) of each hand name's value range.
const (
	MaxStraightFlush = 10
	MaxFourOfAKind   = 166
	MaxFullHouse     = 322
	MaxFlush         = 1599
	MaxStraight      = 1609
	MaxThreeOfAKind  = 2467
	MaxTwoPair       = 3325
	MaxPair          = 6185
	MaxHighCard      = 7462
)

// HandName is the coarse category of a hand.
type HandName uint8

const (
	InvalidHand HandName = iota
	StraightFlush
	FourOfAKind
	FullHouse
	Flush
	Straight
	ThreeOfAKind
	TwoPair
	Pair
	HighCard
)

var handNames = [...]string{
	InvalidHand:   "Invalid",
	StraightFlush: "Straight Flush",
	FourOfAKind:   "Four of a Kind",
	FullHouse:     "Full House",
	Flush:         "Flush",
	Straight:      "Straight",
	ThreeOfAKind:  "Three of a Kind",
	TwoPair:       "Two Pair",
	Pair:          "Pair",
	HighCard:      "High Card",
}

func (n HandName) String() string {
	if int(n) >= len(handNames) {
		return handNames[InvalidHand]
	}
	return handNames[n]
}

// Valid reports whether v is inside [1, 7462].
func (v HandRankValue) Valid() bool {
	return v >= 1 && v <= MaxHighCard
}

// Name derives the hand category from the value's range.
func (v HandRankValue) Name() HandName {
	switch {
	case !v.Valid():
		return InvalidHand
	case v <= MaxStraightFlush:
		return StraightFlush
	case v <= MaxFourOfAKind:
		return FourOfAKind
	case v <= MaxFullHouse:
		return FullHouse
	case v <= MaxFlush:
		return Flush
	case v <= MaxStraight:
		return Straight
	case v <= MaxThreeOfAKind:
		return ThreeOfAKind
	case v <= MaxTwoPair:
		return TwoPair
	case v <= MaxPair:
		return Pair
	default:
		return HighCard
	}
}

// Class derives a finer description, e.g. "Three of a Kind, Nines".
func (v HandRankValue) Class() string {
	switch v.Name() {
	case StraightFlush:
		if v == 1 {
			return "Royal Flush"
		}
		return fmt.Sprintf("Straight Flush, %s High", straightHigh(int(v-1)).Name())
	case FourOfAKind:
		return fmt.Sprintf("Four of a Kind, %s", (RankAce - Rank((v-MaxStraightFlush-1)/12)).Plural())
	case FullHouse:
		idx := int(v - MaxFourOfAKind - 1)
		trips := RankAce - Rank(idx/12)
		pair := nthRankExcluding(idx%12, 1<<trips)
		return fmt.Sprintf("Full House, %s over %s", trips.Plural(), pair.Plural())
	case Flush:
		return fmt.Sprintf("Flush, %s High", topRankOfNonStraight(int(v-MaxFullHouse-1)).Name())
	case Straight:
		return fmt.Sprintf("Straight, %s High", straightHigh(int(v-MaxFlush-1)).Name())
	case ThreeOfAKind:
		return fmt.Sprintf("Three of a Kind, %s", (RankAce - Rank((v-MaxStraight-1)/66)).Plural())
	case TwoPair:
		hi, lo := twoPairRanks(int(v-MaxThreeOfAKind-1) / 11)
		return fmt.Sprintf("Two Pair, %s and %s", hi.Plural(), lo.Plural())
	case Pair:
		return fmt.Sprintf("Pair of %s", (RankAce - Rank((v-MaxTwoPair-1)/220)).Plural())
	case HighCard:
		return fmt.Sprintf("High Card, %s", topRankOfNonStraight(int(v-MaxPair-1)).Name())
	default:
		return "Invalid"
	}
}

// HandRank is a value together with the descriptions derived from it.
// The zero HandRank is the invalid sentinel.
type HandRank struct {
	Value HandRankValue
	Name  HandName
	Class string
}

// InvalidHandRank is returned for values outside [1, 7462].
var InvalidHandRank = HandRank{Name: InvalidHand}

// NewHandRank derives Name and Class from v.
func NewHandRank(v HandRankValue) HandRank {
	if !v.Valid() {
		return InvalidHandRank
	}
	return HandRank{Value: v, Name: v.Name(), Class: v.Class()}
}

// Valid reports whether the rank is consistent with its value.
func (h HandRank) Valid() bool {
	return h.Value.Valid() && h.Name == h.Value.Name() && h.Class == h.Value.Class()
}

// Compare returns 1 if h is stronger, -1 if weaker, 0 if equal.
func (h HandRank) Compare(o HandRank) int {
	switch {
	case h.Value < o.Value:
		return 1
	case h.Value > o.Value:
		return -1
	default:
		return 0
	}
}

func (h HandRank) String() string {
	return h.Class
}

// straightHigh maps a 0-based straight index (0 = ace high) to its top card.
func straightHigh(idx int) Rank {
	return RankAce - Rank(idx)
}

// nthRankExcluding returns the n-th highest rank not in exclude.
func nthRankExcluding(n int, exclude uint16) Rank {
	for r := RankAce; ; r-- {
		if exclude&(1<<r) != 0 {
			continue
		}
		if n == 0 {
			return r
		}
		n--
	}
}

// twoPairRanks decodes the pair index of a two pair value.
func twoPairRanks(idx int) (Rank, Rank) {
	for hi := RankAce; hi > RankTwo; hi-- {
		if idx < int(hi) {
			return hi, hi - 1 - Rank(idx)
		}
		idx -= int(hi)
	}
	return RankThree, RankTwo
}

// topRankOfNonStraight returns the high card of the idx-th strongest
// non-straight five-rank pattern.
func topRankOfNonStraight(idx int) Rank {
	for top := RankAce; top >= RankSeven; top-- {
		n := binomial(int(top), 4) - 1
		if top == RankAce {
			n--
		}
		if idx < n {
			return top
		}
		idx -= n
	}
	return RankSeven
}

func binomial(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	r := 1
	for i := 1; i <= k; i++ {
		r = r * (n - k + i) / i
	}
	return r
}

package poker

import (
	"errors"
	"math/rand/v2"
	"testing"

	oracle "github.com/paulhankin/poker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rank5(t *testing.T, ev *Evaluator, s string) HandRankValue {
	t.Helper()
	h, err := ParseGroup[[5]Card](s)
	require.NoError(t, err)
	return ev.Evaluate5(h).Value
}

func TestRank5Boundaries(t *testing.T) {
	t.Parallel()
	ev := NewEvaluator()

	tests := []struct {
		name  string
		hand  string
		value HandRankValue
		class string
	}{
		{"royal flush", "As Ks Qs Js Ts", 1, "Royal Flush"},
		{"steel wheel", "5d 4d 3d 2d Ad", 10, "Straight Flush, Five High"},
		{"best quads", "Ac Ad Ah As Kc", 11, "Four of a Kind, Aces"},
		{"worst quads", "2c 2d 2h 2s 3c", 166, "Four of a Kind, Twos"},
		{"best full house", "Ac Ad Ah Kc Kd", 167, "Full House, Aces over Kings"},
		{"worst full house", "2c 2d 2h 3c 3d", 322, "Full House, Twos over Threes"},
		{"best flush", "Ah Kh Qh Jh 9h", 323, "Flush, Ace High"},
		{"worst flush", "7c 5c 4c 3c 2c", 1599, "Flush, Seven High"},
		{"broadway", "Ac Kd Qh Js Tc", 1600, "Straight, Ace High"},
		{"wheel", "5c 4d 3h 2s Ac", 1609, "Straight, Five High"},
		{"best trips", "Ac Ad Ah Kc Qd", 1610, "Three of a Kind, Aces"},
		{"worst trips", "2c 2d 2h 4c 3d", 2467, "Three of a Kind, Twos"},
		{"best two pair", "Ac Ad Kc Kd Qh", 2468, "Two Pair, Aces and Kings"},
		{"worst two pair", "3c 3d 2c 2d 4h", 3325, "Two Pair, Threes and Twos"},
		{"best pair", "Ac Ad Kc Qd Jh", 3326, "Pair of Aces"},
		{"worst pair", "2c 2d 5c 4d 3h", 6185, "Pair of Twos"},
		{"best high card", "Ac Kd Qh Js 9c", 6186, "High Card, Ace"},
		{"worst high card", "7c 5d 4h 3s 2c", 7462, "High Card, Seven"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := MustParseGroup[[5]Card](tt.hand)
			rank := ev.Evaluate5(h)
			assert.Equal(t, tt.value, rank.Value)
			assert.Equal(t, tt.class, rank.Class)
			assert.True(t, rank.Valid())
		})
	}
}

func TestRank5OrderIndependent(t *testing.T) {
	t.Parallel()
	ev := NewEvaluator()
	assert.Equal(t, rank5(t, ev, "Kh Kd 9c 9s 2d"), rank5(t, ev, "2d 9s Kd 9c Kh"))
}

func TestRank5Ordering(t *testing.T) {
	t.Parallel()
	ev := NewEvaluator()
	// Each hand beats the next.
	hands := []string{
		"Ts 9s 8s 7s 6s",
		"9c 9d 9h 9s Ad",
		"Tc Td Th 2c 2d",
		"Kd Jd 8d 5d 3d",
		"9c 8d 7h 6s 5c",
		"Qc Qd Qh Ac 2d",
		"Jc Jd 4c 4d Ah",
		"Jc Jd 3c 3d Ah",
		"8c 8d Ac Kd 2h",
		"8c 8d Ac Qd Jh",
		"Ac Qd 9h 5s 3c",
		"Ac Qd 9h 5s 2c",
	}
	for i := 1; i < len(hands); i++ {
		assert.Less(t, rank5(t, ev, hands[i-1]), rank5(t, ev, hands[i]), "%s should beat %s", hands[i-1], hands[i])
	}
}

func TestEvaluate5Exhaustive(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping exhaustive five card enumeration in short mode")
	}
	t.Parallel()
	ev := NewEvaluator()
	deck := FullDeck()

	counts := make(map[HandName]int)
	var seen [MaxHighCard + 1]bool
	for a := 0; a < 52; a++ {
		for b := a + 1; b < 52; b++ {
			for c := b + 1; c < 52; c++ {
				for d := c + 1; d < 52; d++ {
					for e := d + 1; e < 52; e++ {
						v := ev.Rank5(deck[a], deck[b], deck[c], deck[d], deck[e])
						require.True(t, v.Valid())
						counts[v.Name()]++
						seen[v] = true
					}
				}
			}
		}
	}

	assert.Equal(t, map[HandName]int{
		StraightFlush: 40,
		FourOfAKind:   624,
		FullHouse:     3744,
		Flush:         5108,
		Straight:      10200,
		ThreeOfAKind:  54912,
		TwoPair:       123552,
		Pair:          1098240,
		HighCard:      1302540,
	}, counts)

	for v := 1; v <= MaxHighCard; v++ {
		assert.True(t, seen[v], "value %d never produced", v)
	}
}

func TestEvaluate7(t *testing.T) {
	t.Parallel()
	ev := NewEvaluator()
	tests := []struct {
		name  string
		cards string
		value HandRankValue
		best  string
	}{
		{"royal on board", "As Ks Qs Js Ts 2c 3d", 1, "AsKsQsJsTs"},
		{"wheel beats kings", "Ah 2c 3d 4s 5h Kc Kd", 1609, "5h4s3d2cAh"},
		{"full house from two trips", "Kc Kd 3s 3h 3c Kh 9s", 189, "KhKdKc3h3c"},
		{"full house display", "Kc Kd 3s 3h 3c 2d 9s", 0, "3s3h3cKdKc"},
		{"flush over straight", "9h 8h 7h 6c 5h 2h Ts", 0, "9h8h7h5h2h"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			seven := MustParseGroup[[7]Card](tt.cards)
			rank, five := ev.Best7(seven)
			if tt.value != 0 {
				assert.Equal(t, tt.value, rank.Value)
			}
			assert.Equal(t, tt.best, five.String())
			assert.Equal(t, rank.Value, ev.Evaluate7(seven.Array()))
			assert.Equal(t, rank.Value, ev.Evaluate5(five).Value)

			viaBest, err := ev.Best(seven.Cards())
			require.NoError(t, err)
			assert.Equal(t, rank, viaBest)
		})
	}
}

func TestEvaluate7IsMinOfSubsets(t *testing.T) {
	t.Parallel()
	ev := NewEvaluator()
	rng := rand.New(rand.NewPCG(7, 7))

	for range 2000 {
		d := NewDeck(rng)
		var seven [7]Card
		copy(seven[:], d.Deal(7))

		want := HandRankValue(MaxHighCard + 1)
		for skip := range 7 {
			six := make([]Card, 0, 6)
			for i, c := range seven {
				if i != skip {
					six = append(six, c)
				}
			}
			r, err := ev.Best(six)
			require.NoError(t, err)
			want = min(want, r.Value)
		}
		require.Equal(t, want, ev.Evaluate7(seven), "%v", seven)
	}
}

func toOracle(t *testing.T, cards [7]Card) [7]oracle.Card {
	t.Helper()
	suits := [4]oracle.Suit{oracle.Club, oracle.Diamond, oracle.Heart, oracle.Spade}
	var out [7]oracle.Card
	for i, c := range cards {
		// The oracle numbers ranks Ace=1 through King=13.
		r := oracle.Rank(c.Rank() + 2)
		if c.Rank() == RankAce {
			r = 1
		}
		oc, err := oracle.MakeCard(suits[c.Suit()], r)
		require.NoError(t, err)
		out[i] = oc
	}
	return out
}

func TestEvaluate7AgainstOracle(t *testing.T) {
	t.Parallel()
	ev := NewEvaluator()
	rng := rand.New(rand.NewPCG(2024, 11))

	deal := func() [7]Card {
		var seven [7]Card
		copy(seven[:], NewDeck(rng).Deal(7))
		return seven
	}

	for range 5000 {
		a, b := deal(), deal()
		ours := ev.Evaluate7(a) < ev.Evaluate7(b)
		oa, ob := toOracle(t, a), toOracle(t, b)
		theirs := oracle.Eval7(&oa) > oracle.Eval7(&ob)
		require.Equal(t, theirs, ours, "%v vs %v", a, b)

		oursTie := ev.Evaluate7(a) == ev.Evaluate7(b)
		theirsTie := oracle.Eval7(&oa) == oracle.Eval7(&ob)
		require.Equal(t, theirsTie, oursTie, "%v vs %v", a, b)
	}
}

func TestBestErrors(t *testing.T) {
	t.Parallel()
	ev := NewEvaluator()

	_, err := ev.Best(MustParseCards("As Ks Qs Js"))
	assert.ErrorIs(t, err, ErrCardCount)

	_, err = ev.Best(MustParseCards("As Ks Qs Js Ts 9s 8s 7s"))
	assert.ErrorIs(t, err, ErrCardCount)

	_, err = ev.Best(MustParseCards("As Ks Qs Js As"))
	assert.ErrorIs(t, err, ErrDuplicateCard)

	_, err = ev.Best(append(MustParseCards("As Ks Qs Js"), Blank))
	assert.ErrorIs(t, err, ErrBlankCard)

	six, err := ev.Best(MustParseCards("As Ks Qs Js 9s Ts"))
	require.NoError(t, err)
	assert.Equal(t, HandRankValue(1), six.Value)
}

func TestCorruptTablesPanic(t *testing.T) {
	t.Parallel()
	ev := NewEvaluatorWithTables(&Tables{})

	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.True(t, errors.Is(err, ErrCorruptTable))
	}()
	ev.Rank5(MustParseCard("As"), MustParseCard("Ad"), MustParseCard("Kc"), MustParseCard("Qc"), MustParseCard("2h"))
}

func TestTablesShape(t *testing.T) {
	t.Parallel()
	tables := NewTables()
	assert.Len(t, nonStraightPatterns(), nonStraightFive)
	for i := 1; i < productCount; i++ {
		require.Less(t, tables.products[i-1], tables.products[i], "products must be strictly sorted")
	}
	_, ok := tables.lookupProduct(2 * 3 * 5 * 7 * 11)
	assert.False(t, ok, "distinct ranks are never in the product table")
}

func BenchmarkEvaluate7(b *testing.B) {
	ev := NewEvaluator()
	seven := MustParseGroup[[7]Card]("As Kd 9c 6h 5s 2d Tc").Array()
	b.ResetTimer()
	for b.Loop() {
		ev.Evaluate7(seven)
	}
}

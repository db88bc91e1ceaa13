package poker

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// ErrMalformedCard is returned when a card token cannot be parsed.
	ErrMalformedCard = errors.New("malformed card")
	// ErrDuplicateCard is returned when the same card appears twice in a group.
	ErrDuplicateCard = errors.New("duplicate card")
	// ErrCardCount is returned when a group has the wrong number of cards.
	ErrCardCount = errors.New("wrong number of cards")
	// ErrBlankCard is returned when a blank card appears where a dealt card is required.
	ErrBlankCard = errors.New("blank card")
)

// Rank is a card rank, Two (0) through Ace (12).
type Rank uint8

const (
	RankTwo Rank = iota
	RankThree
	RankFour
	RankFive
	RankSix
	RankSeven
	RankEight
	RankNine
	RankTen
	RankJack
	RankQueen
	RankKing
	RankAce
)

// Suit is a card suit.
type Suit uint8

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

const (
	rankChars = "23456789TJQKA"
	suitChars = "cdhs"
)

var primes = [13]uint32{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41}

var rankNames = [13]string{
	"Two", "Three", "Four", "Five", "Six", "Seven", "Eight",
	"Nine", "Ten", "Jack", "Queen", "King", "Ace",
}

// String returns the single character used for the rank ("A", "T", "2").
func (r Rank) String() string {
	if r > RankAce {
		return "?"
	}
	return rankChars[r : r+1]
}

// Name returns the full English name of the rank.
func (r Rank) Name() string {
	if r > RankAce {
		return "Unknown"
	}
	return rankNames[r]
}

// Plural returns the plural name of the rank ("Sixes", "Aces").
func (r Rank) Plural() string {
	if r == RankSix {
		return "Sixes"
	}
	return r.Name() + "s"
}

func (s Suit) String() string {
	if s > Spades {
		return "?"
	}
	return suitChars[s : s+1]
}

// Symbol returns the unicode suit symbol.
func (s Suit) Symbol() string {
	if s > Spades {
		return "?"
	}
	return []string{"♣", "♦", "♥", "♠"}[s]
}

// Card is a bit-packed playing card:
//
//	xxxbbbbb bbbbbbbb cdhsrrrr xxpppppp
//
// b is a one-hot rank bit, cdhs a one-hot suit bit, r the rank index and
// p the rank prime. The zero value is Blank.
type Card uint32

// Blank is the sentinel for a card that has not been dealt.
const Blank Card = 0

const (
	suitBitsMask = 0xF000
	rankBitShift = 16
)

// NewCard creates a card from rank (0-12) and suit (0-3).
func NewCard(rank Rank, suit Suit) Card {
	return Card(1<<(rankBitShift+uint32(rank)) | 1<<(12+uint32(suit)) | uint32(rank)<<8 | primes[rank])
}

// CardFromIndex is the inverse of Card.Index.
func CardFromIndex(i int) Card {
	return NewCard(Rank(i%13), Suit(i/13))
}

// Rank returns the rank index (0-12).
func (c Card) Rank() Rank {
	return Rank((c >> 8) & 0xF)
}

// Suit returns the suit index (0-3).
func (c Card) Suit() Suit {
	switch (c & suitBitsMask) >> 12 {
	case 1:
		return Clubs
	case 2:
		return Diamonds
	case 4:
		return Hearts
	default:
		return Spades
	}
}

// Prime returns the prime number associated with the card's rank.
func (c Card) Prime() uint32 {
	return uint32(c) & 0x3F
}

// RankBit returns the one-hot 13-bit rank field.
func (c Card) RankBit() uint16 {
	return uint16(c >> rankBitShift)
}

// SuitBit returns the one-hot 4-bit suit field.
func (c Card) SuitBit() uint8 {
	return uint8((c & suitBitsMask) >> 12)
}

// Index returns the card's position in a 52 card deck (suit*13 + rank).
func (c Card) Index() int {
	return int(c.Suit())*13 + int(c.Rank())
}

// IsBlank reports whether c is the undealt sentinel.
func (c Card) IsBlank() bool {
	return c == Blank
}

// Valid reports whether c is a well-formed, dealt card.
func (c Card) Valid() bool {
	if c == Blank {
		return false
	}
	r := c.Rank()
	if r > RankAce {
		return false
	}
	return c == NewCard(r, c.Suit())
}

// Compare orders cards by rank, then by suit.
func (c Card) Compare(o Card) int {
	switch {
	case c.Rank() != o.Rank():
		return int(c.Rank()) - int(o.Rank())
	default:
		return int(c.Suit()) - int(o.Suit())
	}
}

// String returns the ASCII notation ("As", "Td").
func (c Card) String() string {
	if c == Blank {
		return "--"
	}
	return c.Rank().String() + c.Suit().String()
}

// Pretty returns the notation with a suit symbol ("A♠").
func (c Card) Pretty() string {
	if c == Blank {
		return "--"
	}
	return c.Rank().String() + c.Suit().Symbol()
}

// ParseCard parses a single card such as "As", "td", "10h" or "6♠".
func ParseCard(s string) (Card, error) {
	card, n, err := parseOne(s)
	if err != nil {
		return Blank, err
	}
	if n != len(s) {
		return Blank, fmt.Errorf("%w: trailing input in %q", ErrMalformedCard, s)
	}
	return card, nil
}

// MustParseCard parses a card and panics on error (for tests and constants)
func MustParseCard(s string) Card {
	c, err := ParseCard(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseCards parses whitespace separated cards. Tokens may also hold
// several packed cards ("AsKd").
func ParseCards(s string) ([]Card, error) {
	var cards []Card
	for i, field := range strings.Fields(s) {
		for rest := field; rest != ""; {
			card, n, err := parseOne(rest)
			if err != nil {
				return nil, fmt.Errorf("token %d (%q): %w", i+1, field, err)
			}
			cards = append(cards, card)
			rest = rest[n:]
		}
	}
	return cards, nil
}

// MustParseCards parses cards and panics on error (for tests)
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(fmt.Sprintf("failed to parse cards '%s': %v", s, err))
	}
	return cards
}

// FormatCards joins cards with spaces using their pretty notation.
func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.Pretty()
	}
	return strings.Join(parts, " ")
}

// parseOne parses the leading card of s and returns the bytes consumed.
func parseOne(s string) (Card, int, error) {
	if s == "" {
		return Blank, 0, fmt.Errorf("%w: empty token", ErrMalformedCard)
	}

	var (
		rank Rank
		n    int
	)
	if strings.HasPrefix(s, "10") {
		rank, n = RankTen, 2
	} else {
		idx := strings.IndexByte(rankChars, byte(unicode.ToUpper(rune(s[0]))))
		if idx < 0 {
			return Blank, 0, fmt.Errorf("%w: unknown rank '%c'", ErrMalformedCard, s[0])
		}
		rank, n = Rank(idx), 1
	}

	r, size := utf8.DecodeRuneInString(s[n:])
	if size == 0 {
		return Blank, 0, fmt.Errorf("%w: missing suit after %q", ErrMalformedCard, s[:n])
	}
	suit, ok := parseSuit(r)
	if !ok {
		return Blank, 0, fmt.Errorf("%w: unknown suit %q", ErrMalformedCard, r)
	}
	return NewCard(rank, suit), n + size, nil
}

func parseSuit(r rune) (Suit, bool) {
	switch r {
	case 'c', 'C', '♣', '♧':
		return Clubs, true
	case 'd', 'D', '♦', '♢':
		return Diamonds, true
	case 'h', 'H', '♥', '♡':
		return Hearts, true
	case 's', 'S', '♠', '♤':
		return Spades, true
	default:
		return 0, false
	}
}

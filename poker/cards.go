package poker

import (
	"fmt"
	"math/bits"
	"strings"
)

// Card is a single playing card stored as one bit of a uint64.
// Layout: [13 clubs][13 diamonds][13 hearts][13 spades], deuce first.
type Card uint64

// Hand is a set of cards; multiple bits may be set.
type Hand uint64

// Suits
const (
	Clubs    uint8 = 0
	Diamonds uint8 = 1
	Hearts   uint8 = 2
	Spades   uint8 = 3
)

// Ranks (0-12 for 2-A)
const (
	Two   uint8 = 0
	Three uint8 = 1
	Four  uint8 = 2
	Five  uint8 = 3
	Six   uint8 = 4
	Seven uint8 = 5
	Eight uint8 = 6
	Nine  uint8 = 7
	Ten   uint8 = 8
	Jack  uint8 = 9
	Queen uint8 = 10
	King  uint8 = 11
	Ace   uint8 = 12
)

const (
	rankChars = "23456789TJQKA"
	suitChars = "cdhs"
)

// NewCard creates a card from rank (0-12) and suit (0-3).
func NewCard(rank, suit uint8) Card {
	return Card(1) << (suit*13 + rank)
}

func (c Card) index() uint8 {
	if c == 0 || c&(c-1) != 0 {
		return 255
	}
	return uint8(bits.TrailingZeros64(uint64(c)))
}

// Valid reports whether c identifies exactly one of the 52 cards.
func (c Card) Valid() bool {
	return c.index() < 52
}

// Rank returns the rank of the card (0-12), or 255 for an invalid card.
func (c Card) Rank() uint8 {
	pos := c.index()
	if pos >= 52 {
		return 255
	}
	return pos % 13
}

// Suit returns the suit of the card (0-3), or 255 for an invalid card.
func (c Card) Suit() uint8 {
	pos := c.index()
	if pos >= 52 {
		return 255
	}
	return pos / 13
}

// String returns the two character form, e.g. "As", "Td".
func (c Card) String() string {
	if !c.Valid() {
		return "??"
	}
	return string(rankChars[c.Rank()]) + string(suitChars[c.Suit()])
}

// MarshalText encodes the card as its two character form.
func (c Card) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid card: %#x", uint64(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText decodes a two character card.
func (c *Card) UnmarshalText(text []byte) error {
	parsed, err := ParseCard(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCard parses a string like "As" or "td" into a Card.
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return 0, fmt.Errorf("invalid card string: %q", s)
	}
	rank := strings.IndexByte(rankChars, upper(s[0]))
	if rank < 0 {
		return 0, fmt.Errorf("invalid rank: %c", s[0])
	}
	suit := strings.IndexByte(suitChars, lower(s[1]))
	if suit < 0 {
		return 0, fmt.Errorf("invalid suit: %c", s[1])
	}
	return NewCard(uint8(rank), uint8(suit)), nil
}

// ParseCards parses a list of cards separated by spaces or commas, or
// packed together ("AsKs" and "As Ks" are both accepted).
func ParseCards(s string) ([]Card, error) {
	s = strings.NewReplacer(",", "", " ", "", "\t", "").Replace(s)
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("invalid card list: %q", s)
	}
	cards := make([]Card, 0, len(s)/2)
	var seen Hand
	for i := 0; i < len(s); i += 2 {
		c, err := ParseCard(s[i : i+2])
		if err != nil {
			return nil, err
		}
		if seen.Has(c) {
			return nil, fmt.Errorf("duplicate card: %s", c)
		}
		seen.Add(c)
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards is ParseCards for fixtures; it panics on error.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b - 'A' + 'a'
	}
	return b
}

// NewHand creates a hand from multiple cards.
func NewHand(cards ...Card) Hand {
	var h Hand
	for _, c := range cards {
		h |= Hand(c)
	}
	return h
}

// Add adds a card to the hand.
func (h *Hand) Add(c Card) {
	*h |= Hand(c)
}

// Has checks if the hand contains a specific card.
func (h Hand) Has(c Card) bool {
	return h&Hand(c) != 0
}

// Count returns the number of cards in the hand.
func (h Hand) Count() int {
	return bits.OnesCount64(uint64(h))
}

// Cards returns the cards of the hand in bit order.
func (h Hand) Cards() []Card {
	out := make([]Card, 0, h.Count())
	for rest := uint64(h); rest != 0; rest &= rest - 1 {
		out = append(out, Card(rest&-rest))
	}
	return out
}

// SuitMask returns the ranks held in one suit as a 13 bit mask.
func (h Hand) SuitMask(suit uint8) uint16 {
	return uint16((h >> (suit * 13)) & 0x1FFF)
}

// FormatCards joins cards with spaces.
func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

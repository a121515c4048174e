package poker

import (
	"errors"
	"fmt"
	"slices"

	"github.com/lox/sixmax/internal/randutil"
)

// DeckSize is the number of cards in a standard deck.
const DeckSize = 52

// ErrDeckExhausted is returned when more cards are requested than remain.
var ErrDeckExhausted = errors.New("deck exhausted")

// Source supplies the 32-bit values that drive a shuffle.
// *randutil.Mulberry32 and *rand.Rand from math/rand/v2 both satisfy it.
type Source interface {
	Uint32() uint32
}

// Deck is an ordered sequence of undealt cards, consumed from the front.
type Deck []Card

// BuildDeck returns the 52 cards in canonical order: rank-major, suit-minor
// (2c 2d 2h 2s 3c ... As).
func BuildDeck() Deck {
	d := make(Deck, 0, DeckSize)
	for rank := Two; rank <= Ace; rank++ {
		for suit := Clubs; suit <= Spades; suit++ {
			d = append(d, NewCard(rank, suit))
		}
	}
	return d
}

// Shuffle returns a new ordering of cards using a Durstenfeld walk. Each swap
// index is floor(u * (i+1) / 2^32) for the next u from src, so a given
// source sequence always yields the same order. The input is not modified.
func Shuffle(cards []Card, src Source) Deck {
	out := slices.Clone(cards)
	for i := len(out) - 1; i > 0; i-- {
		j := int((uint64(src.Uint32()) * uint64(i+1)) >> 32)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// ShuffleSeeded shuffles with Mulberry32 seeded from the low 32 bits of seed.
func ShuffleSeeded(cards []Card, seed int64) Deck {
	return Shuffle(cards, randutil.NewMulberry32(uint32(seed)))
}

// NewShuffledDeck builds and shuffles a deck. A nil seed shuffles from OS
// entropy.
func NewShuffledDeck(seed *int64) Deck {
	if seed != nil {
		return ShuffleSeeded(BuildDeck(), *seed)
	}
	return Shuffle(BuildDeck(), randutil.Entropy())
}

// Draw removes n cards from the front of the deck.
func (d *Deck) Draw(n int) ([]Card, error) {
	if n < 0 || n > len(*d) {
		return nil, fmt.Errorf("draw %d of %d: %w", n, len(*d), ErrDeckExhausted)
	}
	cards := slices.Clone((*d)[:n])
	*d = (*d)[n:]
	return cards, nil
}

// Remaining returns the number of undealt cards.
func (d Deck) Remaining() int {
	return len(d)
}

// Hand returns the undealt cards as a set.
func (d Deck) Hand() Hand {
	return NewHand(d...)
}

package game

import (
	"fmt"

	"github.com/lox/sixmax/poker"
)

// minDeal is what one hand can consume: two hole cards per seat plus the
// board.
const minDeal = NumSeats*2 + 5

// HandOption adjusts how InitHand builds a hand.
type HandOption func(*handSetup)

type handSetup struct {
	deck   poker.Deck
	stacks []int
	names  []string
}

// WithDeck deals from a pre-ordered deck instead of shuffling. The deck is
// copied; it must hold at least 17 distinct cards.
func WithDeck(deck poker.Deck) HandOption {
	return func(s *handSetup) {
		s.deck = append(poker.Deck(nil), deck...)
	}
}

// WithStacks sets individual starting stacks, one per seat.
func WithStacks(stacks []int) HandOption {
	return func(s *handSetup) {
		s.stacks = append([]int(nil), stacks...)
	}
}

// WithNames sets the display name of every seat.
func WithNames(names []string) HandOption {
	return func(s *handSetup) {
		s.names = append([]string(nil), names...)
	}
}

func (s *handSetup) validate() error {
	if s.deck != nil {
		if len(s.deck) < minDeal {
			return &ConfigError{Field: "deck", Reason: fmt.Sprintf("need at least %d cards, got %d", minDeal, len(s.deck))}
		}
		var seen poker.Hand
		for _, c := range s.deck {
			if !c.Valid() || seen.Has(c) {
				return &ConfigError{Field: "deck", Reason: fmt.Sprintf("invalid or duplicate card %s", c)}
			}
			seen.Add(c)
		}
	}
	if s.stacks != nil {
		if len(s.stacks) != NumSeats {
			return &ConfigError{Field: "stacks", Reason: "need one stack per seat"}
		}
		for i, st := range s.stacks {
			if st <= 0 {
				return &ConfigError{Field: "stacks", Reason: fmt.Sprintf("seat %d stack must be positive", i)}
			}
		}
	}
	if s.names != nil && len(s.names) != NumSeats {
		return &ConfigError{Field: "names", Reason: "need one name per seat"}
	}
	return nil
}

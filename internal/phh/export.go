package phh

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lox/sixmax/internal/game"
)

var (
	// ErrHandInProgress is returned when exporting a hand before showdown.
	ErrHandInProgress = errors.New("phh: hand is not complete")

	// ErrIncompleteHistory is returned when the hand log was capped and no
	// longer starts at the deal.
	ErrIncompleteHistory = errors.New("phh: hand history was truncated")
)

// Option adjusts an export.
type Option func(*HandHistory)

// WithTable sets the table name.
func WithTable(name string) Option {
	return func(h *HandHistory) { h.Table = name }
}

// WithTime stamps the hand with t instead of the current time.
func WithTime(t time.Time) Option {
	return func(h *HandHistory) { h.SetTime(t) }
}

// WithHandID sets the hand identifier instead of a generated UUIDv7.
func WithHandID(id string) Option {
	return func(h *HandHistory) { h.HandID = id }
}

// FromHand converts a finished hand to PHH. Hole cards of every seat are
// included.
func FromHand(g *game.GameState, opts ...Option) (*HandHistory, error) {
	if !g.IsComplete() {
		return nil, ErrHandInProgress
	}
	if len(g.History) == 0 || g.History[0].Kind != game.EventButton {
		return nil, ErrIncompleteHistory
	}

	n := len(g.Players)
	// PHH numbers players from the small blind with the button last.
	order := make([]int, n)
	index := make(map[int]int, n)
	for i := range order {
		seat := (g.DealerIndex + 1 + i) % n
		order[i] = seat
		index[seat] = i
	}

	h := &HandHistory{
		Variant:           "NT",
		SeatCount:         n,
		Seats:             make([]int, n),
		Antes:             make([]int, n),
		BlindsOrStraddles: make([]int, n),
		MinBet:            g.Config.BigBlind,
		StartingStacks:    make([]int, n),
		FinishingStacks:   make([]int, n),
		Winnings:          make([]int, n),
		Players:           make([]string, n),
		Metadata: map[string]any{
			"hand_number": g.HandID,
			"dealer_seat": g.DealerIndex + 1,
		},
	}
	for i, seat := range order {
		p := g.Players[seat]
		h.Seats[i] = seat + 1
		h.StartingStacks[i] = p.StartingStack
		h.FinishingStacks[i] = p.Stack
		h.Winnings[i] = p.Won
		h.Players[i] = p.Name
	}

	for i, seat := range order {
		if hole := g.Players[seat].Hole; len(hole) > 0 {
			h.Actions = append(h.Actions, fmt.Sprintf("d dh p%d %s", i+1, formatCards(hole)))
		}
	}
	for _, ev := range g.History {
		switch ev.Kind {
		case game.EventBlind:
			h.BlindsOrStraddles[index[ev.Seat]] = ev.Amount
		case game.EventAction:
			if a, ok := FormatAction(index[ev.Seat], ev.Action, ev.Amount); ok {
				h.Actions = append(h.Actions, a)
			}
		case game.EventBoard:
			h.Actions = append(h.Actions, "d db "+formatCards(ev.Cards))
		case game.EventShow:
			h.Actions = append(h.Actions, fmt.Sprintf("p%d sm %s", index[ev.Seat]+1, formatCards(ev.Cards)))
		}
	}

	for _, opt := range opts {
		opt(h)
	}
	if h.HandID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("phh: hand id: %w", err)
		}
		h.HandID = id.String()
	}
	if h.Timestamp.IsZero() {
		h.SetTime(time.Now().UTC())
	}
	return h, nil
}

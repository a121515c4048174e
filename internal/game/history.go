package game

import (
	"fmt"

	"github.com/lox/sixmax/poker"
)

// LastAction describes the most recent applied action, for highlighting.
type LastAction struct {
	Seat int        `json:"seat"`
	Type ActionType `json:"type"`

	// Paid is the number of chips the action moved into the pot.
	Paid int `json:"paid"`

	// RaiseTo is the seat's street total after a raise.
	RaiseTo int `json:"raiseTo,omitempty"`
}

// EventKind classifies a HistoryEvent.
type EventKind string

const (
	EventButton EventKind = "button"
	EventBlind  EventKind = "blind"
	EventAction EventKind = "action"
	EventBoard  EventKind = "board"
	EventShow   EventKind = "show"
	EventWin    EventKind = "win"
)

// HistoryEvent is one entry of the hand log. Text is the human readable
// line; the other fields carry the same information for replay and export.
type HistoryEvent struct {
	Street Street    `json:"street"`
	Kind   EventKind `json:"kind"`

	// Seat is -1 for board cards.
	Seat int `json:"seat"`

	Action ActionType `json:"action,omitempty"`

	// Amount is the blind posted, the chips called, the street total raised
	// to, or the chips won.
	Amount int `json:"amount,omitempty"`

	// Cards are the new board cards, the hole cards shown or the winning
	// five.
	Cards []poker.Card `json:"cards,omitempty"`

	Text string `json:"text"`
}

func (g *GameState) note(ev HistoryEvent, format string, args ...any) {
	ev.Street = g.Street
	ev.Text = fmt.Sprintf(format, args...)
	g.History = append(g.History, ev)
	if limit := g.Config.HistoryLimit; limit > 0 && len(g.History) > limit {
		g.History = append([]HistoryEvent(nil), g.History[len(g.History)-limit:]...)
	}
}

func (g *GameState) logAction(p *Player, la LastAction) {
	ev := HistoryEvent{Kind: EventAction, Seat: p.Seat, Action: la.Type}
	switch la.Type {
	case Fold:
		g.note(ev, "%s: folds", p.Name)
	case Check:
		g.note(ev, "%s: checks", p.Name)
	case Call:
		ev.Amount = la.Paid
		g.note(ev, "%s: calls $%d (pot now: $%d)%s", p.Name, la.Paid, g.Pot, allInSuffix(p))
	case Raise:
		ev.Amount = la.RaiseTo
		g.note(ev, "%s: raises to $%d (pot now: $%d)%s", p.Name, la.RaiseTo, g.Pot, allInSuffix(p))
	}
}

func allInSuffix(p *Player) string {
	if p.AllIn {
		return " and is all-in"
	}
	return ""
}

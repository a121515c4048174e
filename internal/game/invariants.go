package game

import (
	"fmt"

	"github.com/lox/sixmax/poker"
)

// CheckInvariants verifies chip accounting and card uniqueness. Use it on
// states that came from outside the engine, such as decoded JSON; the
// engine checks its own transitions and panics on failure.
func (g *GameState) CheckInvariants() error {
	fail := func(format string, args ...any) error {
		return &InvariantError{HandID: g.HandID, Detail: fmt.Sprintf(format, args...)}
	}

	if len(g.Players) != NumSeats {
		return fail("%d players at the table", len(g.Players))
	}
	contributed, won := 0, 0
	for _, p := range g.Players {
		if p.Stack < 0 {
			return fail("seat %d has negative stack %d", p.Seat, p.Stack)
		}
		if p.Stack+p.ContributedTotal-p.Won != p.StartingStack {
			return fail("seat %d: stack %d + contributed %d - won %d != starting stack %d",
				p.Seat, p.Stack, p.ContributedTotal, p.Won, p.StartingStack)
		}
		if p.ContributedThisStreet > p.ContributedTotal {
			return fail("seat %d street contribution exceeds hand total", p.Seat)
		}
		contributed += p.ContributedTotal
		won += p.Won
	}
	if contributed != g.Pot {
		return fail("pot %d != contributions %d", g.Pot, contributed)
	}
	if g.IsComplete() && won != g.Pot {
		return fail("paid out %d of a %d pot", won, g.Pot)
	}
	if !g.IsComplete() && won != 0 {
		return fail("paid out %d before showdown", won)
	}
	if len(g.Board) > 5 {
		return fail("board has %d cards", len(g.Board))
	}
	if !g.IsComplete() {
		p := g.ToAct()
		if p == nil || !p.CanAct() {
			return fail("seat %d to act cannot act", g.ToActIndex)
		}
	}

	var seen poker.Hand
	dealt := [][]poker.Card{g.Board, g.Deck}
	for _, p := range g.Players {
		dealt = append(dealt, p.Hole)
	}
	for _, cards := range dealt {
		for _, c := range cards {
			if !c.Valid() || seen.Has(c) {
				return fail("card %s is invalid or dealt twice", c)
			}
			seen.Add(c)
		}
	}
	return nil
}

func (g *GameState) checkInvariants() {
	if err := g.CheckInvariants(); err != nil {
		panic(err)
	}
}

package game

import (
	"slices"
)

// LegalActions returns the decisions open to the seat to act. It is empty
// once the hand is complete.
func (g *GameState) LegalActions() []ActionType {
	p := g.ToAct()
	if g.IsComplete() || p == nil || !p.CanAct() {
		return nil
	}
	toCall := g.ToCall(p.Seat)
	if toCall <= 0 {
		if p.Stack > 0 {
			return []ActionType{Check, Raise}
		}
		return []ActionType{Check}
	}
	actions := []ActionType{Fold, Call}
	// A stack that only covers the call cannot raise.
	if p.Stack > toCall {
		actions = append(actions, Raise)
	}
	return actions
}

// minRaiseTarget is the smallest street total a raise is lifted to. After
// the flop MinRaiseTo is zero until someone bets, so a bet is at least one
// big blind.
func (g *GameState) minRaiseTarget() int {
	return max(g.MinRaiseTo, g.CurrentBet+g.Config.BigBlind)
}

// RaiseRange returns the smallest and largest street totals seat can raise
// to. A stack short of the minimum can still raise all-in, so lo may exceed
// hi.
func (g *GameState) RaiseRange(seat int) (lo, hi int) {
	if seat < 0 || seat >= len(g.Players) {
		return 0, 0
	}
	p := g.Players[seat]
	return g.minRaiseTarget(), p.ContributedThisStreet + p.Stack
}

// ApplyAction applies a decision for the seat to act.
//
// Actions for folded or all-in seats are ignored. Acting out of turn or
// choosing an action missing from LegalActions returns an
// *IllegalActionError and leaves g untouched. When the action closes the
// betting round the hand moves on to the next street, possibly all the way
// to showdown.
func (g *GameState) ApplyAction(a Action) error {
	if g.IsComplete() {
		return ErrHandComplete
	}
	if a.Seat < 0 || a.Seat >= len(g.Players) {
		return illegal(a, "no such seat")
	}
	p := g.Players[a.Seat]
	if !p.CanAct() {
		return nil
	}
	if a.Seat != g.ToActIndex {
		return illegal(a, "seat %d is to act", g.ToActIndex)
	}
	toCall := g.ToCall(a.Seat)
	if !slices.Contains(g.LegalActions(), a.Type) {
		return illegal(a, "facing $%d to call with $%d behind", toCall, p.Stack)
	}

	la := LastAction{Seat: a.Seat, Type: a.Type}
	switch a.Type {
	case Fold:
		p.InHand = false
		g.RemainingToAct--
	case Check:
		g.RemainingToAct--
	case Call:
		la.Paid = g.contribute(p, toCall)
		g.RemainingToAct--
	case Raise:
		oldBet := g.CurrentBet
		// Requests beyond the stack are an all-in; the minimum then applies.
		requested := min(a.Amount, p.ContributedThisStreet+p.Stack)
		raiseTo := max(requested, g.minRaiseTarget())
		la.Paid = g.contribute(p, raiseTo-p.ContributedThisStreet)
		la.RaiseTo = p.ContributedThisStreet
		g.CurrentBet = max(g.CurrentBet, p.ContributedThisStreet)
		g.MinRaiseTo = raiseTo + (raiseTo - oldBet)
		g.RemainingToAct = g.countCanAct(p.Seat)
	}
	g.LastAction = &la
	g.logAction(p, la)

	if g.roundClosed() {
		g.advance()
	} else if next := g.nextCanAct(a.Seat + 1); next >= 0 {
		g.ToActIndex = next
	} else {
		g.advance()
	}
	g.checkInvariants()
	return nil
}

// roundClosed reports whether the current betting round is over: at most
// one seat is left in the hand, or every seat that can still bet has
// matched the current bet and nobody is owed an action.
func (g *GameState) roundClosed() bool {
	if len(g.Contenders()) <= 1 {
		return true
	}
	if g.RemainingToAct > 0 {
		return false
	}
	for _, p := range g.Players {
		if p.CanAct() && p.ContributedThisStreet != g.CurrentBet {
			return false
		}
	}
	return true
}

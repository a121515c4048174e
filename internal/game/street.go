package game

import (
	"fmt"
	"slices"
	"strings"

	"github.com/lox/sixmax/poker"
)

// boardCards is how many community cards each street deals.
var boardCards = map[Street]int{Flop: 3, Turn: 1, River: 1}

// AdvanceStreet ends the current betting round and deals the next street.
// From the river it goes to showdown and pays the pot. The betting round
// closes by itself through ApplyAction; calling this directly forces it.
func (g *GameState) AdvanceStreet() error {
	if g.IsComplete() {
		return ErrHandComplete
	}
	g.advance()
	g.checkInvariants()
	return nil
}

// advance deals the next street and keeps going while fewer than two seats
// can still bet, since nobody is left to bet against.
func (g *GameState) advance() {
	g.nextStreet()
	for !g.IsComplete() && g.countCanAct(-1) < 2 {
		g.nextStreet()
	}
}

func (g *GameState) nextStreet() {
	for _, p := range g.Players {
		p.ContributedThisStreet = 0
	}
	g.CurrentBet = 0
	g.MinRaiseTo = 0

	if len(g.Contenders()) <= 1 || g.Street >= River {
		g.showdown()
		return
	}

	g.Street++
	dealt := g.draw(boardCards[g.Street])
	g.Board = append(g.Board, dealt...)
	g.note(HistoryEvent{Kind: EventBoard, Seat: -1, Cards: dealt},
		"*** %s *** [%s]", strings.ToUpper(g.Street.String()), poker.FormatCards(g.Board))

	g.ToActIndex = g.nextCanAct(g.DealerIndex + 1)
	g.RemainingToAct = g.countCanAct(-1)
}

// showdown pays the pot. A sole contender takes it without showing; otherwise
// every contender's best five of seven is compared and the best split it.
func (g *GameState) showdown() {
	g.Street = Showdown
	g.ToActIndex = -1
	g.RemainingToAct = 0

	contenders := g.Contenders()
	switch len(contenders) {
	case 0:
		panic(&InvariantError{HandID: g.HandID, Detail: "showdown with no contenders"})
	case 1:
		p := g.Players[contenders[0]]
		g.pay(p, g.Pot)
		g.Winners = []Winner{{Seat: p.Seat, Amount: g.Pot, Description: "Uncontested"}}
		g.note(HistoryEvent{Kind: EventWin, Seat: p.Seat, Amount: g.Pot}, "%s collected $%d from pot", p.Name, g.Pot)
		return
	}

	results := make(map[int]poker.Result, len(contenders))
	var best poker.Score
	for _, seat := range contenders {
		p := g.Players[seat]
		cards := append(append(make([]poker.Card, 0, 7), p.Hole...), g.Board...)
		if len(cards) != 7 {
			panic(&InvariantError{HandID: g.HandID, Detail: fmt.Sprintf("seat %d has %d cards at showdown", seat, len(cards))})
		}
		res := poker.BestOfSeven([7]poker.Card(cards))
		results[seat] = res
		best = max(best, res.Score)
		g.note(HistoryEvent{Kind: EventShow, Seat: seat, Cards: slices.Clone(p.Hole)},
			"%s: shows [%s] (%s)", p.Name, poker.FormatCards(p.Hole), res.Label())
	}

	var tied []int
	for _, seat := range contenders {
		if results[seat].Score == best {
			tied = append(tied, seat)
		}
	}
	shares := splitPot(g.Pot, tied, g.DealerIndex)
	for _, share := range shares {
		p := g.Players[share.Seat]
		res := results[share.Seat]
		g.pay(p, share.Amount)
		g.Winners = append(g.Winners, Winner{
			Seat:        share.Seat,
			Amount:      share.Amount,
			Hand:        res.Five[:],
			Description: res.Label(),
		})
		g.note(HistoryEvent{Kind: EventWin, Seat: share.Seat, Amount: share.Amount, Cards: res.Five[:]},
			"%s collected $%d from pot with %s", p.Name, share.Amount, res.Label())
	}
}

func (g *GameState) pay(p *Player, amount int) {
	p.Stack += amount
	p.Won += amount
}

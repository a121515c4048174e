// Package analysis computes the numbers shown next to a hand while it is
// played: how many opponent holdings beat the current hand, the chance the
// next card improves it, pot odds and a Monte Carlo equity estimate.
package analysis

import (
	"errors"
	"fmt"

	"github.com/lox/sixmax/internal/game"
	"github.com/lox/sixmax/poker"
)

// ErrNoHoleCards is returned when the analysed seat has not been dealt in.
var ErrNoHoleCards = errors.New("seat has no hole cards")

// Count is a tally of opponent holdings.
type Count struct {
	Better int `json:"better"`
	Total  int `json:"total"`
}

// Fraction is Better/Total, or 0 when nothing was counted.
func (c Count) Fraction() float64 {
	if c.Total == 0 {
		return 0
	}
	return float64(c.Better) / float64(c.Total)
}

// Draw is the chance the next card improves the hand.
type Draw struct {
	Street game.Street `json:"street"`
	Outs   int         `json:"outs"`
	Unseen int         `json:"unseen"`
}

// Chance is Outs/Unseen.
func (d Draw) Chance() float64 {
	if d.Unseen == 0 {
		return 0
	}
	return float64(d.Outs) / float64(d.Unseen)
}

// PotOdds describes the price of a call.
type PotOdds struct {
	// Ratio is pot:call, so 3 means 3:1.
	Ratio float64 `json:"ratio"`

	// RequiredEquity is the share of the final pot the call pays for.
	RequiredEquity float64 `json:"requiredEquity"`
}

func (p PotOdds) String() string {
	if p.Ratio == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.2f:1", p.Ratio)
}

// Report is the analysis of one seat's hand.
type Report struct {
	Seat        int             `json:"seat"`
	Description string          `json:"description"`
	Class       poker.HoleClass `json:"class"`

	// BetterHands is only counted from the flop on, when an opponent's
	// two cards plus the board make a five card hand.
	BetterHands Count `json:"betterHands"`
	Draw        *Draw `json:"draw,omitempty"`

	ToCall  int     `json:"toCall"`
	PotOdds PotOdds `json:"potOdds"`

	// SPR is the effective stack over the pot.
	SPR float64 `json:"spr"`

	// ImpliedMaxRatio is the best case payoff ratio if the effective stack
	// goes in after calling.
	ImpliedMaxRatio float64 `json:"impliedMaxRatio"`
}

// Percentile is the share of random opponent holdings the hand beats or
// ties. ok is false before the flop.
func (r Report) Percentile() (float64, bool) {
	if r.BetterHands.Total == 0 {
		return 0, false
	}
	return 1 - r.BetterHands.Fraction(), true
}

// Analyze reports on seat's hand in g.
func Analyze(g *game.GameState, seat int) (Report, error) {
	if seat < 0 || seat >= len(g.Players) {
		return Report{}, fmt.Errorf("analyze seat %d: no such seat", seat)
	}
	p := g.Players[seat]
	if len(p.Hole) != 2 {
		return Report{}, fmt.Errorf("analyze seat %d: %w", seat, ErrNoHoleCards)
	}

	r := Report{
		Seat:   seat,
		Class:  poker.ClassifyHole(p.Hole[0], p.Hole[1]),
		ToCall: g.ToCall(seat),
	}
	r.Description = Describe(p.Hole, g.Board)
	r.BetterHands = BetterHands(p.Hole, g.Board)
	if d, ok := NextCard(p.Hole, g.Board); ok {
		d.Street = g.Street + 1
		r.Draw = &d
	}
	r.PotOdds = ComputePotOdds(r.ToCall, g.Pot)

	effective := p.Stack
	for _, o := range g.Players {
		if o.Seat != seat && o.InHand {
			effective = min(effective, o.Stack)
		}
	}
	if g.Pot > 0 {
		r.SPR = float64(effective) / float64(g.Pot)
	}
	if r.ToCall > 0 {
		r.ImpliedMaxRatio = float64(g.Pot+r.ToCall+max(0, effective-r.ToCall))/float64(r.ToCall) - 1
	}
	return r, nil
}

// Describe names the best hand in hole plus board, or the street when there
// are fewer than five cards.
func Describe(hole, board []poker.Card) string {
	if res, ok := poker.BestOf(append(append([]poker.Card(nil), hole...), board...)); ok {
		return res.Label()
	}
	if len(board) == 0 {
		return "Preflop"
	}
	return "In progress"
}

// ComputePotOdds prices a call of toCall into pot. Nothing to call has no
// odds.
func ComputePotOdds(toCall, pot int) PotOdds {
	if toCall <= 0 {
		return PotOdds{}
	}
	return PotOdds{
		Ratio:          float64(pot) / float64(toCall),
		RequiredEquity: float64(toCall) / float64(pot+toCall),
	}
}

// unseen returns every card not in any of the given sets, in deck order.
func unseen(known ...[]poker.Card) []poker.Card {
	var used poker.Hand
	for _, cards := range known {
		for _, c := range cards {
			used.Add(c)
		}
	}
	out := make([]poker.Card, 0, poker.DeckSize)
	for _, c := range poker.BuildDeck() {
		if !used.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// BetterHands enumerates every two card holding left in the deck and counts
// those that make a stronger hand with board than hole does. It needs at
// least three board cards.
func BetterHands(hole, board []poker.Card) Count {
	if len(board) < 3 || len(board) > 5 {
		return Count{}
	}
	hero, ok := poker.BestOf(concat(hole, board))
	if !ok {
		return Count{}
	}

	rest := unseen(hole, board)
	cards := concat(board, []poker.Card{0, 0})
	n := len(board)
	var c Count
	for i := range rest {
		for j := i + 1; j < len(rest); j++ {
			cards[n], cards[n+1] = rest[i], rest[j]
			opp, _ := poker.BestOf(cards)
			c.Total++
			if opp.Score > hero.Score {
				c.Better++
			}
		}
	}
	return c
}

// NextCard counts the unseen cards that would improve the hand on the next
// street. Only the flop and turn have a next card.
func NextCard(hole, board []poker.Card) (Draw, bool) {
	if len(board) != 3 && len(board) != 4 {
		return Draw{}, false
	}
	base, ok := poker.BestOf(concat(hole, board))
	if !ok {
		return Draw{}, false
	}

	rest := unseen(hole, board)
	cards := concat(hole, board, []poker.Card{0})
	d := Draw{Unseen: len(rest)}
	for _, c := range rest {
		cards[len(cards)-1] = c
		if res, _ := poker.BestOf(cards); res.Score > base.Score {
			d.Outs++
		}
	}
	return d, true
}

func concat(sets ...[]poker.Card) []poker.Card {
	n := 0
	for _, s := range sets {
		n += len(s)
	}
	out := make([]poker.Card, 0, n)
	for _, s := range sets {
		out = append(out, s...)
	}
	return out
}

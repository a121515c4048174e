package game

import (
	"slices"

	"github.com/lox/sixmax/poker"
)

// Player is one seat at the table for the current hand.
type Player struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Seat     int      `json:"seat"`
	Position Position `json:"position"`
	Stack    int      `json:"stack"`

	// StartingStack is the stack before blinds were posted this hand.
	StartingStack int `json:"startingStack"`

	Hole   []poker.Card `json:"hole,omitempty"`
	InHand bool         `json:"inHand"`
	AllIn  bool         `json:"allIn"`
	IsHero bool         `json:"isHero"`

	ContributedThisStreet int `json:"contributedThisStreet"`
	ContributedTotal      int `json:"contributedTotal"`

	// Won is what the seat collected at the end of the hand.
	Won int `json:"won,omitempty"`
}

// CanAct reports whether the seat may still make betting decisions.
func (p *Player) CanAct() bool {
	return p.InHand && !p.AllIn
}

func (p *Player) clone() *Player {
	cp := *p
	cp.Hole = slices.Clone(p.Hole)
	return &cp
}

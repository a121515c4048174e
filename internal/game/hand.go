package game

import (
	"fmt"
	"slices"

	"github.com/lox/sixmax/poker"
)

// Winner is a seat paid at the end of the hand.
type Winner struct {
	Seat        int          `json:"seat"`
	Amount      int          `json:"amount"`
	Hand        []poker.Card `json:"hand,omitempty"`
	Description string       `json:"description"`
}

// GameState is the complete state of one hand.
type GameState struct {
	HandID      int          `json:"handId"`
	DealerIndex int          `json:"dealerIndex"`
	Street      Street       `json:"street"`
	Deck        poker.Deck   `json:"deck"`
	Board       []poker.Card `json:"board"`
	Players     []*Player    `json:"players"`

	// ToActIndex is the seat whose decision is awaited, or -1 when no seat
	// can act (showdown).
	ToActIndex int `json:"toActIndex"`

	CurrentBet     int `json:"currentBet"`
	MinRaiseTo     int `json:"minRaiseTo"`
	Pot            int `json:"pot"`
	RemainingToAct int `json:"remainingToAct"`

	Winners    []Winner       `json:"winners,omitempty"`
	LastAction *LastAction    `json:"lastAction,omitempty"`
	History    []HistoryEvent `json:"history,omitempty"`
	Config     Config         `json:"config"`
}

// InitHand starts the hand after prev, or the first hand of a session when
// prev is nil. The button moves one seat clockwise from prev.
func InitHand(prev *GameState, cfg Config, opts ...HandOption) (*GameState, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	setup := &handSetup{}
	for _, opt := range opts {
		opt(setup)
	}
	if err := setup.validate(); err != nil {
		return nil, err
	}

	g := &GameState{
		HandID:      1,
		DealerIndex: 0,
		Street:      Preflop,
		Board:       make([]poker.Card, 0, 5),
		Config:      cfg,
	}
	if prev != nil {
		g.HandID = prev.HandID + 1
		g.DealerIndex = (prev.DealerIndex + 1) % NumSeats
	}

	g.Deck = setup.deck
	if g.Deck == nil {
		g.Deck = poker.NewShuffledDeck(cfg.Seed)
	}

	g.Players = make([]*Player, NumSeats)
	for seat := range NumSeats {
		p := &Player{
			ID:       fmt.Sprintf("P%d", seat+1),
			Name:     defaultName(seat),
			Seat:     seat,
			Position: positionFor(seat, g.DealerIndex),
			Stack:    cfg.StartingStack,
			InHand:   true,
			IsHero:   seat == 0,
		}
		if prev != nil && seat < len(prev.Players) && prev.Players[seat] != nil {
			p.ID, p.Name = prev.Players[seat].ID, prev.Players[seat].Name
			if cfg.CarryStacks && prev.Players[seat].Stack > 0 {
				p.Stack = prev.Players[seat].Stack
			}
		}
		if setup.names != nil {
			p.Name = setup.names[seat]
		}
		if setup.stacks != nil {
			p.Stack = setup.stacks[seat]
		}
		p.StartingStack = p.Stack
		g.Players[seat] = p
	}

	g.note(HistoryEvent{Kind: EventButton, Seat: g.DealerIndex}, "Hand #%d: %s has the button", g.HandID, g.Players[g.DealerIndex].Name)
	g.dealHoleCards()
	g.postBlinds()

	g.CurrentBet = cfg.BigBlind
	g.MinRaiseTo = 2 * cfg.BigBlind
	g.RemainingToAct = g.countCanAct(-1)
	g.ToActIndex = g.nextCanAct(g.DealerIndex + 3)

	g.checkInvariants()
	return g, nil
}

func defaultName(seat int) string {
	if seat == 0 {
		return "Hero"
	}
	return fmt.Sprintf("Villain %d", seat)
}

// dealHoleCards deals one card per seat per pass, two passes, starting with
// the small blind.
func (g *GameState) dealHoleCards() {
	start := g.DealerIndex + 1
	for range 2 {
		for i := range NumSeats {
			p := g.Players[(start+i)%NumSeats]
			p.Hole = append(p.Hole, g.draw(1)...)
		}
	}
}

func (g *GameState) postBlinds() {
	sb := g.Players[(g.DealerIndex+1)%NumSeats]
	bb := g.Players[(g.DealerIndex+2)%NumSeats]

	paid := g.contribute(sb, g.Config.SmallBlind)
	g.note(HistoryEvent{Kind: EventBlind, Seat: sb.Seat, Amount: paid}, "%s: posts small blind $%d%s", sb.Name, paid, allInSuffix(sb))
	paid = g.contribute(bb, g.Config.BigBlind)
	g.note(HistoryEvent{Kind: EventBlind, Seat: bb.Seat, Amount: paid}, "%s: posts big blind $%d%s", bb.Name, paid, allInSuffix(bb))
}

// contribute moves up to amount chips from p into the pot and returns what
// was actually paid.
func (g *GameState) contribute(p *Player, amount int) int {
	amount = min(amount, p.Stack)
	if amount <= 0 {
		return 0
	}
	p.Stack -= amount
	p.ContributedThisStreet += amount
	p.ContributedTotal += amount
	g.Pot += amount
	if p.Stack == 0 {
		p.AllIn = true
	}
	return amount
}

func (g *GameState) draw(n int) []poker.Card {
	cards, err := g.Deck.Draw(n)
	if err != nil {
		panic(&InvariantError{HandID: g.HandID, Detail: fmt.Sprintf("dealing on the %s", g.Street), Err: err})
	}
	return cards
}

// nextCanAct returns the first seat at or clockwise after from that can
// still act, or -1.
func (g *GameState) nextCanAct(from int) int {
	for i := range NumSeats {
		seat := (from + i) % NumSeats
		if g.Players[seat].CanAct() {
			return seat
		}
	}
	return -1
}

// countCanAct counts seats that can act, ignoring except.
func (g *GameState) countCanAct(except int) int {
	n := 0
	for _, p := range g.Players {
		if p.Seat != except && p.CanAct() {
			n++
		}
	}
	return n
}

// Contenders returns the seats that have not folded.
func (g *GameState) Contenders() []int {
	var seats []int
	for _, p := range g.Players {
		if p.InHand {
			seats = append(seats, p.Seat)
		}
	}
	return seats
}

// ToAct returns the player whose decision is awaited, or nil.
func (g *GameState) ToAct() *Player {
	if g.ToActIndex < 0 || g.ToActIndex >= len(g.Players) {
		return nil
	}
	return g.Players[g.ToActIndex]
}

// ToCall returns what seat must add to match the current bet.
func (g *GameState) ToCall(seat int) int {
	if seat < 0 || seat >= len(g.Players) {
		return 0
	}
	return max(0, g.CurrentBet-g.Players[seat].ContributedThisStreet)
}

// IsComplete reports whether the hand has been paid out.
func (g *GameState) IsComplete() bool {
	return g.Street == Showdown
}

// Hero returns the human-controlled seat.
func (g *GameState) Hero() *Player {
	for _, p := range g.Players {
		if p.IsHero {
			return p
		}
	}
	return nil
}

// Clone returns a deep copy that shares nothing with g.
func (g *GameState) Clone() *GameState {
	cp := *g
	cp.Deck = slices.Clone(g.Deck)
	cp.Board = slices.Clone(g.Board)
	cp.Players = make([]*Player, len(g.Players))
	for i, p := range g.Players {
		cp.Players[i] = p.clone()
	}
	cp.Winners = make([]Winner, len(g.Winners))
	for i, w := range g.Winners {
		w.Hand = slices.Clone(w.Hand)
		cp.Winners[i] = w
	}
	if g.Winners == nil {
		cp.Winners = nil
	}
	if g.LastAction != nil {
		la := *g.LastAction
		cp.LastAction = &la
	}
	cp.History = slices.Clone(g.History)
	if g.Config.Seed != nil {
		seed := *g.Config.Seed
		cp.Config.Seed = &seed
	}
	return &cp
}

// Package bot holds the computer opponents. Bots only read the public state
// of a hand: the seat to act, its legal actions and the chip counts.
package bot

import (
	"fmt"
	"slices"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/lox/sixmax/internal/game"
	"github.com/lox/sixmax/internal/randutil"
)

// Decision is an action together with a short explanation for logs.
type Decision struct {
	Action    game.Action
	Reasoning string
}

// Bot chooses an action for the seat to act. ok is false when that seat has
// nothing to decide.
type Bot interface {
	Decide(g *game.GameState) (d Decision, ok bool)
}

type factory func(seed int64, logger *log.Logger) Bot

var registry = map[string]factory{
	"simple": func(_ int64, l *log.Logger) Bot { return NewSimple(l) },
	"call":   func(_ int64, l *log.Logger) Bot { return NewCallBot(l) },
	"fold":   func(_ int64, l *log.Logger) Bot { return NewFoldBot(l) },
	"chart":  func(_ int64, l *log.Logger) Bot { return NewChartBot(l) },
	"random": func(seed int64, l *log.Logger) Bot { return NewRandBot(randutil.New(seed), l) },
}

// Names lists the registered bot names.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New returns the bot registered under name. seed only affects the random
// bot.
func New(name string, seed int64, logger *log.Logger) (Bot, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown bot %q (want one of %v)", name, Names())
	}
	return f(seed, logger.WithPrefix("bot")), nil
}

// turn gathers what every bot looks at before deciding.
type turn struct {
	seat   int
	legal  []game.ActionType
	toCall int
	player *game.Player
}

func currentTurn(g *game.GameState) (turn, bool) {
	legal := g.LegalActions()
	if len(legal) == 0 {
		return turn{}, false
	}
	return turn{
		seat:   g.ToActIndex,
		legal:  legal,
		toCall: g.ToCall(g.ToActIndex),
		player: g.Players[g.ToActIndex],
	}, true
}

func (t turn) can(a game.ActionType) bool {
	return slices.Contains(t.legal, a)
}

func (t turn) decide(a game.ActionType, reasoning string) Decision {
	return Decision{Action: game.Action{Seat: t.seat, Type: a}, Reasoning: reasoning}
}

// checkOrFold is the fallback every bot shares.
func (t turn) checkOrFold(name string) Decision {
	if t.can(game.Check) {
		return t.decide(game.Check, name+" checking")
	}
	return t.decide(game.Fold, name+" folding")
}

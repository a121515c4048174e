package bot

import (
	"github.com/charmbracelet/log"

	"github.com/lox/sixmax/internal/game"
)

// smallBet is the largest amount Simple will call.
const smallBet = 2

// Simple checks whenever it can, calls bets of up to two chips and folds to
// anything larger.
type Simple struct {
	logger *log.Logger
}

// NewSimple creates a Simple bot.
func NewSimple(logger *log.Logger) *Simple {
	return &Simple{logger: logger}
}

func (s *Simple) Decide(g *game.GameState) (Decision, bool) {
	t, ok := currentTurn(g)
	if !ok {
		return Decision{}, false
	}

	var d Decision
	switch {
	case t.can(game.Check):
		d = t.decide(game.Check, "simple checking")
	case t.can(game.Call) && t.toCall <= min(smallBet, t.player.Stack):
		d = t.decide(game.Call, "simple calling a small bet")
	default:
		d = t.decide(game.Fold, "simple folding")
	}
	s.logger.Debug("decision", "seat", t.seat, "action", d.Action.Type, "toCall", t.toCall, "reasoning", d.Reasoning)
	return d, true
}

package bot

import (
	"github.com/charmbracelet/log"

	"github.com/lox/sixmax/internal/game"
)

// CallBot checks or calls every street and never folds to a bet it can
// call.
type CallBot struct {
	logger *log.Logger
}

// NewCallBot creates a new CallBot instance
func NewCallBot(logger *log.Logger) *CallBot {
	return &CallBot{logger: logger}
}

func (c *CallBot) Decide(g *game.GameState) (Decision, bool) {
	t, ok := currentTurn(g)
	if !ok {
		return Decision{}, false
	}

	d := t.checkOrFold("call-bot")
	if t.can(game.Call) {
		d = t.decide(game.Call, "call-bot calling")
	}
	c.logger.Debug("decision", "seat", t.seat, "action", d.Action.Type, "reasoning", d.Reasoning)
	return d, true
}

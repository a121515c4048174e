package bot

import (
	"github.com/charmbracelet/log"

	"github.com/lox/sixmax/internal/game"
)

// FoldBot is a simple bot that always folds (or checks when possible)
type FoldBot struct {
	logger *log.Logger
}

// NewFoldBot creates a new FoldBot instance
func NewFoldBot(logger *log.Logger) *FoldBot {
	return &FoldBot{logger: logger}
}

func (f *FoldBot) Decide(g *game.GameState) (Decision, bool) {
	t, ok := currentTurn(g)
	if !ok {
		return Decision{}, false
	}
	d := t.checkOrFold("fold-bot")
	f.logger.Debug("decision", "seat", t.seat, "action", d.Action.Type)
	return d, true
}

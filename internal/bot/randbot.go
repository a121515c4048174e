package bot

import (
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/sixmax/internal/game"
)

// RandBot is a simple bot that makes uniform random legal actions
type RandBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewRandBot creates a new RandBot instance
func NewRandBot(rng *rand.Rand, logger *log.Logger) *RandBot {
	return &RandBot{rng: rng, logger: logger}
}

func (r *RandBot) Decide(g *game.GameState) (Decision, bool) {
	t, ok := currentTurn(g)
	if !ok {
		return Decision{}, false
	}

	d := t.decide(t.legal[r.rng.IntN(len(t.legal))], "rand-bot random action")
	// For raises, pick random amount between min and max
	if d.Action.Type == game.Raise {
		lo, hi := g.RaiseRange(t.seat)
		d.Action.Amount = lo
		if hi > lo {
			d.Action.Amount += r.rng.IntN(hi - lo + 1)
		}
	}
	r.logger.Debug("decision", "seat", t.seat, "action", d.Action)
	return d, true
}

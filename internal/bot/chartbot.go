package bot

import (
	"github.com/charmbracelet/log"

	"github.com/lox/sixmax/internal/game"
	"github.com/lox/sixmax/poker"
)

// ChartBot plays a preflop chart and check/calls after the flop.
//
// Premium hands raise to three times the current bet, strong and medium
// hands call, everything else checks or folds.
type ChartBot struct {
	logger *log.Logger
}

// NewChartBot creates a new ChartBot instance
func NewChartBot(logger *log.Logger) *ChartBot {
	return &ChartBot{logger: logger}
}

func (c *ChartBot) Decide(g *game.GameState) (Decision, bool) {
	t, ok := currentTurn(g)
	if !ok {
		return Decision{}, false
	}

	class := poker.ClassUnknown
	if len(t.player.Hole) == 2 {
		class = poker.ClassifyHole(t.player.Hole[0], t.player.Hole[1])
	}

	d := t.checkOrFold("chart-bot")
	switch {
	case g.Street != game.Preflop:
		if t.can(game.Call) {
			d = t.decide(game.Call, "chart-bot calling")
		}
	case class == poker.ClassPremium && t.can(game.Raise):
		d = t.decide(game.Raise, "chart-bot raising premium")
		d.Action.Amount = 3 * g.CurrentBet
	case (class == poker.ClassPremium || class == poker.ClassStrong || class == poker.ClassMedium) && t.can(game.Call):
		d = t.decide(game.Call, "chart-bot calling "+string(class))
	}
	c.logger.Debug("decision", "seat", t.seat, "class", class, "action", d.Action)
	return d, true
}

// Package display renders hands for the terminal with lipgloss.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/sixmax/internal/analysis"
	"github.com/lox/sixmax/internal/game"
	"github.com/lox/sixmax/poker"
)

// Renderer draws game state. Its color profile is detected from the writer
// passed to New, so output to a pipe or buffer is plain text.
type Renderer struct {
	styles Styles
}

// New returns a renderer for output written to w.
func New(w io.Writer) *Renderer {
	return &Renderer{styles: newStyles(lipgloss.NewRenderer(w))}
}

// Styles exposes the renderer's styles for callers printing their own lines.
func (r *Renderer) Styles() Styles {
	return r.styles
}

// Cards formats cards with colors, e.g. "[As Kd]".
func (r *Renderer) Cards(cards []poker.Card) string {
	if len(cards) == 0 {
		return "[]"
	}
	formatted := make([]string, 0, len(cards))
	for _, c := range cards {
		if s := c.Suit(); s == poker.Hearts || s == poker.Diamonds {
			formatted = append(formatted, r.styles.RedCard.Render(c.String()))
		} else {
			formatted = append(formatted, r.styles.BlackCard.Render(c.String()))
		}
	}
	return "[" + strings.Join(formatted, " ") + "]"
}

// Table renders the board, pot and every seat as viewer sees them. Hole
// cards of other seats stay hidden until showdown.
func (r *Renderer) Table(g *game.GameState, viewer int) string {
	var b strings.Builder

	b.WriteString(r.styles.Header.Render(fmt.Sprintf(" Hand #%d  %s ", g.HandID, strings.ToUpper(g.Street.String()))))
	b.WriteString("\n\n")
	b.WriteString(r.styles.HandInfo.Render("Board: "))
	b.WriteString(r.Cards(g.Board))
	b.WriteString("  ")
	b.WriteString(r.styles.Warning.Render(fmt.Sprintf("Pot: $%d", g.Pot)))
	if g.CurrentBet > 0 {
		b.WriteString(" | ")
		b.WriteString(r.styles.Warning.Render(fmt.Sprintf("Bet: $%d", g.CurrentBet)))
	}
	b.WriteString("\n\n")

	for _, p := range g.Players {
		b.WriteString(r.seat(g, p, viewer))
		b.WriteString("\n")
	}
	return r.styles.Pane.Render(strings.TrimRight(b.String(), "\n"))
}

func (r *Renderer) seat(g *game.GameState, p *game.Player, viewer int) string {
	marker := "  "
	if p.Seat == g.ToActIndex {
		marker = "> "
	}

	var status string
	switch {
	case !p.InHand:
		status = "folded"
	case p.AllIn:
		status = "all-in"
	case p.ContributedThisStreet > 0:
		status = fmt.Sprintf("in $%d", p.ContributedThisStreet)
	}

	var hole string
	switch {
	case !p.InHand || len(p.Hole) == 0:
	case p.Seat == viewer || g.IsComplete():
		hole = r.Cards(p.Hole)
	default:
		hole = "[?? ??]"
	}

	line := fmt.Sprintf("%s%-10s %-3s $%-5d %-8s %s", marker, p.Name, p.Position, p.Stack, status, hole)
	line = strings.TrimRight(line, " ")
	switch {
	case p.Seat == g.ToActIndex:
		return r.styles.ToAct.Render(line)
	case !p.InHand:
		return r.styles.Folded.Render(line)
	default:
		return r.styles.Player.Render(line)
	}
}

// Actions lists what the seat to act may do, with amounts.
func (r *Renderer) Actions(g *game.GameState) string {
	var actions []string
	seat := g.ToActIndex
	for _, a := range g.LegalActions() {
		switch a {
		case game.Fold:
			actions = append(actions, r.styles.Error.Render("[fold]"))
		case game.Check:
			actions = append(actions, r.styles.Success.Render("[check]"))
		case game.Call:
			actions = append(actions, r.styles.Success.Render(fmt.Sprintf("[call $%d]", g.ToCall(seat))))
		case game.Raise:
			lo, hi := g.RaiseRange(seat)
			if lo >= hi {
				actions = append(actions, r.styles.Warning.Render(fmt.Sprintf("[raise all-in $%d]", hi)))
			} else {
				actions = append(actions, r.styles.Warning.Render(fmt.Sprintf("[raise $%d-$%d]", lo, hi)))
			}
		}
	}
	if len(actions) == 0 {
		return r.styles.Info.Render("No actions available")
	}
	return r.styles.Actions.Render("Actions: ") + strings.Join(actions, " ")
}

// Log returns the last n history lines, or all of them when n <= 0.
func (r *Renderer) Log(g *game.GameState, n int) string {
	events := g.History
	if n > 0 && len(events) > n {
		events = events[len(events)-n:]
	}
	lines := make([]string, 0, len(events))
	for _, ev := range events {
		switch ev.Kind {
		case game.EventBoard:
			lines = append(lines, r.styles.HandInfo.Render(ev.Text))
		case game.EventWin:
			lines = append(lines, r.styles.Success.Render(ev.Text))
		default:
			lines = append(lines, ev.Text)
		}
	}
	return strings.Join(lines, "\n")
}

// Results summarises who won a finished hand.
func (r *Renderer) Results(g *game.GameState) string {
	if !g.IsComplete() {
		return r.styles.Info.Render("Hand in progress")
	}
	lines := make([]string, 0, len(g.Winners))
	for _, w := range g.Winners {
		name := g.Players[w.Seat].Name
		line := fmt.Sprintf("%s wins $%d (%s)", name, w.Amount, w.Description)
		if len(w.Hand) > 0 {
			line += " " + r.Cards(w.Hand)
		}
		lines = append(lines, r.styles.Success.Render(line))
	}
	return strings.Join(lines, "\n")
}

// Report renders a hand analysis.
func (r *Renderer) Report(rep analysis.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hand:      %s (%s)\n", rep.Description, rep.Class)
	if pct, ok := rep.Percentile(); ok {
		fmt.Fprintf(&b, "Strength:  beats %.1f%% of holdings (%d of %d better)\n",
			pct*100, rep.BetterHands.Better, rep.BetterHands.Total)
	}
	if rep.Draw != nil {
		fmt.Fprintf(&b, "Improve:   %d/%d outs on the %s (%.1f%%)\n",
			rep.Draw.Outs, rep.Draw.Unseen, rep.Draw.Street, rep.Draw.Chance()*100)
	}
	fmt.Fprintf(&b, "To call:   $%d  pot odds %s", rep.ToCall, rep.PotOdds)
	if rep.ToCall > 0 {
		fmt.Fprintf(&b, " (need %.1f%%)", rep.PotOdds.RequiredEquity*100)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "SPR:       %.2f", rep.SPR)
	if rep.ImpliedMaxRatio > 0 {
		fmt.Fprintf(&b, "  implied up to %.1f:1", rep.ImpliedMaxRatio)
	}
	return r.styles.Pane.Render(b.String())
}

// Equity renders a Monte Carlo estimate.
func (r *Renderer) Equity(e analysis.Equity) string {
	return r.styles.HandInfo.Render(fmt.Sprintf("Equity: %.1f%% over %d samples (%d wins, %d ties)",
		e.Share*100, e.Samples, e.Wins, e.Ties))
}

// Package simulator plays bot-only hands and measures one seat's results.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/sixmax/internal/bot"
	"github.com/lox/sixmax/internal/game"
	"github.com/lox/sixmax/internal/statistics"
)

// TrackedSeat is the seat whose results are measured.
const TrackedSeat = 0

// Config holds configuration for running simulations.
type Config struct {
	Hands int
	Game  game.Config

	// Strategies is indexed by seat, including the tracked seat.
	Strategies []string

	Seed    int64
	Timeout time.Duration
	Logger  *log.Logger
}

// Simulator runs hand simulations.
type Simulator struct {
	config Config
	bots   [game.NumSeats]bot.Bot
}

// New seats the configured bots.
func New(config Config) (*Simulator, error) {
	if config.Hands <= 0 {
		return nil, fmt.Errorf("hands must be positive, got %d", config.Hands)
	}
	if len(config.Strategies) != game.NumSeats {
		return nil, fmt.Errorf("need %d strategies, got %d", game.NumSeats, len(config.Strategies))
	}
	if err := config.Game.Validate(); err != nil {
		return nil, err
	}
	if config.Timeout <= 0 {
		config.Timeout = 5 * time.Second
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}

	s := &Simulator{config: config}
	for seat, name := range config.Strategies {
		b, err := bot.New(name, config.Seed+int64(seat), config.Logger)
		if err != nil {
			return nil, fmt.Errorf("seat %d: %w", seat, err)
		}
		s.bots[seat] = b
	}
	return s, nil
}

// Label names the line-up, e.g. "simple vs call,call,fold,fold,random".
func (s *Simulator) Label() string {
	return fmt.Sprintf("%s vs %s", s.config.Strategies[TrackedSeat], strings.Join(s.config.Strategies[TrackedSeat+1:], ","))
}

// Run plays the configured number of hands. Hand i is dealt from seed+i and
// the button moves every hand, so the tracked seat visits every position.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	stats := &statistics.Statistics{}
	var prev *game.GameState
	for i := range s.config.Hands {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		seed := s.config.Seed + int64(i)
		g, err := s.playHandWithTimeout(ctx, prev, seed)
		if err != nil {
			return nil, fmt.Errorf("hand %d (seed %d): %w", i+1, seed, err)
		}
		stats.Add(result(g, seed))
		prev = g
	}
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	return stats, nil
}

// playHandWithTimeout runs a single hand with hang protection.
func (s *Simulator) playHandWithTimeout(ctx context.Context, prev *game.GameState, seed int64) (*game.GameState, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	type outcome struct {
		g   *game.GameState
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		g, err := s.playHand(prev, seed)
		done <- outcome{g, err}
	}()

	select {
	case o := <-done:
		return o.g, o.err
	case <-ctx.Done():
		return nil, fmt.Errorf("hand timed out after %v: %w", s.config.Timeout, ctx.Err())
	}
}

// playHand deals from seed and lets the bots play it out.
func (s *Simulator) playHand(prev *game.GameState, seed int64) (g *game.GameState, err error) {
	defer func() {
		if r := recover(); r != nil {
			var inv *game.InvariantError
			if e, ok := r.(error); ok && errors.As(e, &inv) {
				err = inv
				return
			}
			panic(r)
		}
	}()

	g, err = game.InitHand(prev, s.config.Game.WithSeed(seed))
	if err != nil {
		return nil, err
	}
	for !g.IsComplete() {
		seat := g.ToActIndex
		d, ok := s.bots[seat].Decide(g)
		if !ok {
			return nil, fmt.Errorf("seat %d has no decision", seat)
		}
		if err := g.ApplyAction(d.Action); err != nil {
			return nil, fmt.Errorf("seat %d (%s): %w", seat, s.config.Strategies[seat], err)
		}
		s.config.Logger.Debug("Bot acted", "hand", g.HandID, "seat", seat, "action", d.Action, "reason", d.Reasoning)
	}
	if err := g.CheckInvariants(); err != nil {
		return nil, err
	}
	return g, nil
}

func result(g *game.GameState, seed int64) statistics.HandResult {
	p := g.Players[TrackedSeat]
	bb := float64(g.Config.BigBlind)
	street := game.Preflop
	switch len(g.Board) {
	case 3:
		street = game.Flop
	case 4:
		street = game.Turn
	case 5:
		street = game.River
	}
	return statistics.HandResult{
		NetBB:          float64(p.Stack-p.StartingStack) / bb,
		Seed:           seed,
		Position:       p.Position,
		WentToShowdown: len(g.Contenders()) > 1,
		PotChips:       g.Pot,
		PotBB:          float64(g.Pot) / bb,
		Street:         street,
	}
}

var positionOrder = []game.Position{game.Button, game.SmallBlind, game.BigBlind, game.UnderGun, game.Hijack, game.Cutoff}

// PrintSummary writes a report of the results to w.
func PrintSummary(w io.Writer, stats *statistics.Statistics, label string) {
	low, high := stats.ConfidenceInterval95()

	fmt.Fprintf(w, "\n=== RESULTS: %s ===\n", label)
	fmt.Fprintf(w, "Hands played: %d\n", stats.Hands)
	fmt.Fprintf(w, "Win rate: %.2f bb/100\n", stats.BBPer100())
	fmt.Fprintf(w, "Mean: %.4f bb/hand  Median: %.4f  Std Dev: %.4f  Std Error: %.4f\n",
		stats.Mean(), stats.Median(), stats.StdDev(), stats.StdError())
	fmt.Fprintf(w, "95%% CI: [%.4f, %.4f] bb/hand\n", low, high)
	fmt.Fprintf(w, "Percentiles: P5=%.3f, P25=%.3f, P75=%.3f, P95=%.3f\n",
		stats.Percentile(0.05), stats.Percentile(0.25), stats.Percentile(0.75), stats.Percentile(0.95))

	fmt.Fprintf(w, "\n=== PROFIT SOURCE ===\n")
	fmt.Fprintf(w, "Winning hands: %d showdown, %d without showdown\n", stats.ShowdownWins, stats.NonShowdownWins)
	fmt.Fprintf(w, "Showdown: %.2f bb  Non-showdown: %.2f bb\n", stats.ShowdownBB, stats.NonShowdownBB)

	fmt.Fprintf(w, "\n=== POTS ===\n")
	fmt.Fprintf(w, "Max pot: %d chips (%.1f bb)\n", stats.MaxPotChips, stats.MaxPotBB)
	fmt.Fprintf(w, "Big pots (>=%dbb): %d hands, %.2f bb\n", statistics.BigPotBB, stats.BigPots, stats.BigPotsBB)
	fmt.Fprintf(w, "Board reached: preflop %d, flop %d, turn %d, river %d\n",
		stats.Streets[game.Preflop], stats.Streets[game.Flop], stats.Streets[game.Turn], stats.Streets[game.River])

	fmt.Fprintf(w, "\n=== POSITIONS ===\n")
	for _, pos := range positionOrder {
		if ps := stats.Position(pos); ps.Hands > 0 {
			fmt.Fprintf(w, "%-3s %d hands, %.3f bb/hand\n", pos, ps.Hands, ps.Mean())
		}
	}
}

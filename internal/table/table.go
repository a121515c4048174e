// Package table runs a sequence of hands between the hero and five bots.
// A Table is not safe for concurrent use; the server serialises access.
package table

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/sixmax/internal/bot"
	"github.com/lox/sixmax/internal/game"
	"github.com/lox/sixmax/internal/phh"
	"github.com/lox/sixmax/internal/randutil"
)

// HeroSeat is the seat the human plays.
const HeroSeat = 0

var (
	// ErrNoHand is returned for actions before the first hand is dealt.
	ErrNoHand = errors.New("no hand in progress")

	// ErrHandInProgress is returned when starting a hand before the current
	// one is finished.
	ErrHandInProgress = errors.New("hand in progress")

	// ErrNotHeroTurn is returned when the hero acts while a bot is to act.
	ErrNotHeroTurn = errors.New("not your turn")
)

// Option configures a Table.
type Option func(*Table)

// WithHistoryDir writes a PHH file for every finished hand into dir.
func WithHistoryDir(dir string) Option {
	return func(t *Table) { t.historyDir = dir }
}

// WithClock sets the clock used to stamp hand histories.
func WithClock(clock quartz.Clock) Option {
	return func(t *Table) { t.clock = clock }
}

// Table deals hands and plays the bot seats.
type Table struct {
	name       string
	cfg        game.Config
	bots       [game.NumSeats]bot.Bot
	hand       *game.GameState
	historyDir string
	clock      quartz.Clock
	logger     *log.Logger

	// LastHistoryFile is the PHH file of the last finished hand, if written.
	LastHistoryFile string
}

// New seats a bot with the given strategy at every opponent seat.
// strategies is indexed by seat; the hero's entry is ignored.
func New(name string, cfg game.Config, strategies []string, logger *log.Logger, opts ...Option) (*Table, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(strategies) != game.NumSeats {
		return nil, fmt.Errorf("need %d strategies, got %d", game.NumSeats, len(strategies))
	}

	t := &Table{
		name:   name,
		cfg:    cfg,
		clock:  quartz.NewReal(),
		logger: logger.WithPrefix("table").With("table", name),
	}
	for _, opt := range opts {
		opt(t)
	}

	seedBase := randutil.Entropy().Int64()
	if cfg.Seed != nil {
		seedBase = *cfg.Seed
	}
	for seat := range game.NumSeats {
		if seat == HeroSeat {
			continue
		}
		b, err := bot.New(strategies[seat], seedBase+int64(seat), t.logger)
		if err != nil {
			return nil, fmt.Errorf("seat %d: %w", seat, err)
		}
		t.bots[seat] = b
	}
	return t, nil
}

// Name returns the table name.
func (t *Table) Name() string { return t.name }

// Hand returns the current hand, or nil before the first deal.
func (t *Table) Hand() *game.GameState { return t.hand }

// NewHand deals the next hand with the button moved one seat.
func (t *Table) NewHand() (*game.GameState, error) {
	if t.hand != nil && !t.hand.IsComplete() {
		return nil, ErrHandInProgress
	}
	cfg := t.cfg
	if cfg.Seed != nil && t.hand != nil {
		// Each hand of a seeded session gets its own deterministic deck.
		cfg = cfg.WithSeed(*cfg.Seed + int64(t.hand.HandID))
	}
	g, err := game.InitHand(t.hand, cfg)
	if err != nil {
		return nil, err
	}
	t.hand = g
	t.LastHistoryFile = ""
	t.logger.Info("Hand started", "hand", g.HandID, "dealer", g.DealerIndex)
	return g, nil
}

// HeroToAct reports whether the hand is waiting on the hero.
func (t *Table) HeroToAct() bool {
	return t.hand != nil && !t.hand.IsComplete() && t.hand.ToActIndex == HeroSeat
}

// BotToAct reports whether the hand is waiting on a bot.
func (t *Table) BotToAct() bool {
	return t.hand != nil && !t.hand.IsComplete() && t.hand.ToActIndex != HeroSeat
}

// Act applies the hero's decision. The seat in a is ignored.
func (t *Table) Act(a game.Action) error {
	if t.hand == nil {
		return ErrNoHand
	}
	if t.hand.IsComplete() {
		return game.ErrHandComplete
	}
	if !t.HeroToAct() {
		return ErrNotHeroTurn
	}
	a.Seat = HeroSeat
	if err := t.hand.ApplyAction(a); err != nil {
		return err
	}
	t.logger.Debug("Hero acted", "action", a)
	t.finish()
	return nil
}

// StepBot plays one bot decision. ok is false when no bot is to act.
func (t *Table) StepBot() (bot.Decision, bool) {
	if !t.BotToAct() {
		return bot.Decision{}, false
	}
	seat := t.hand.ToActIndex
	d, ok := t.bots[seat].Decide(t.hand)
	if !ok {
		return bot.Decision{}, false
	}
	if err := t.hand.ApplyAction(d.Action); err != nil {
		t.logger.Warn("Bot chose an illegal action", "seat", seat, "action", d.Action, "error", err)
		d = bot.Decision{Action: fallback(t.hand, seat), Reasoning: "fallback after illegal action"}
		if err := t.hand.ApplyAction(d.Action); err != nil {
			// Check or fold is always legal for the seat to act.
			panic(&game.InvariantError{HandID: t.hand.HandID, Detail: "fallback action rejected", Err: err})
		}
	}
	t.finish()
	return d, true
}

// RunBots plays bot decisions until the hero is to act or the hand ends.
func (t *Table) RunBots() []bot.Decision {
	var played []bot.Decision
	for {
		d, ok := t.StepBot()
		if !ok {
			return played
		}
		played = append(played, d)
	}
}

func fallback(g *game.GameState, seat int) game.Action {
	for _, a := range g.LegalActions() {
		if a == game.Check {
			return game.Action{Seat: seat, Type: game.Check}
		}
	}
	return game.Action{Seat: seat, Type: game.Fold}
}

// finish writes the hand history once the hand is over.
func (t *Table) finish() {
	if !t.hand.IsComplete() {
		return
	}
	t.logger.Info("Hand complete", "hand", t.hand.HandID, "winners", len(t.hand.Winners), "pot", t.hand.Pot)
	if t.historyDir == "" {
		return
	}
	h, err := phh.FromHand(t.hand, phh.WithTable(t.name), phh.WithTime(t.clock.Now().UTC()))
	if err != nil {
		t.logger.Error("Failed to export hand history", "hand", t.hand.HandID, "error", err)
		return
	}
	start := t.clock.Now()
	path, err := phh.WriteFile(t.historyDir, h)
	if err != nil {
		t.logger.Error("Failed to write hand history", "hand", t.hand.HandID, "error", err)
		return
	}
	t.LastHistoryFile = path
	t.logger.Debug("Hand history written", "path", path, "took", t.clock.Since(start).Round(time.Microsecond))
}

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/lox/sixmax/internal/simulator"
)

// SimulateCmd plays bot-only hands and reports the hero seat's results.
type SimulateCmd struct {
	Table   string        `short:"t" help:"Table from the config file (default: first)"`
	Hero    string        `default:"simple" help:"Strategy played in the hero seat"`
	Hands   int           `short:"n" default:"1000" help:"Number of hands to simulate"`
	Seed    int64         `default:"1" help:"Seed for the first hand; hand i uses seed+i"`
	Timeout time.Duration `default:"5s" help:"Give up on a hand that runs longer than this"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	tc, ok := cfg.Table(c.Table)
	if !ok {
		return fmt.Errorf("no table named %q", c.Table)
	}
	strategies := cfg.Strategies()
	strategies[simulator.TrackedSeat] = c.Hero

	return c.run(context.Background(), os.Stdout, simulator.Config{
		Hands:      c.Hands,
		Game:       tc.Game(),
		Strategies: strategies,
		Seed:       c.Seed,
		Timeout:    c.Timeout,
		Logger:     stderrLogger(cfg.Level()),
	})
}

func (c *SimulateCmd) run(ctx context.Context, out io.Writer, sc simulator.Config) error {
	sim, err := simulator.New(sc)
	if err != nil {
		return err
	}
	start := time.Now()
	stats, err := sim.Run(ctx)
	if err != nil {
		return err
	}
	if sc.Logger != nil {
		sc.Logger.Info("Simulation complete", "hands", stats.Hands, "took", time.Since(start).Round(time.Millisecond))
	}
	simulator.PrintSummary(out, stats, sim.Label())
	return nil
}

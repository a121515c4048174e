package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lox/sixmax/internal/analysis"
	"github.com/lox/sixmax/internal/display"
	"github.com/lox/sixmax/internal/game"
	"github.com/lox/sixmax/internal/phh"
	"github.com/lox/sixmax/poker"
)

// EvalCmd names the best hand in five to seven cards.
type EvalCmd struct {
	Cards []string `arg:"" help:"Cards, e.g. 'As Ks Qs Js Ts 2c 3d'"`
}

func (c *EvalCmd) Run() error {
	return runEval(os.Stdout, strings.Join(c.Cards, " "))
}

func runEval(out io.Writer, input string) error {
	cards, err := poker.ParseCards(input)
	if err != nil {
		return err
	}
	res, ok := poker.BestOf(cards)
	if !ok {
		return fmt.Errorf("need five to seven distinct cards, got %d", len(cards))
	}
	r := display.New(out)
	fmt.Fprintf(out, "%s %s\n", r.Styles().HandInfo.Render(res.Label()), r.Cards(res.Five[:]))
	return nil
}

// AnalyzeCmd reports on hole cards without a running hand.
type AnalyzeCmd struct {
	Hole      string `arg:"" help:"Two hole cards, e.g. 'AsKd'"`
	Board     string `short:"b" help:"Community cards, e.g. 'Td7s8h'"`
	Opponents int    `short:"o" default:"1" help:"Number of opponents for the equity estimate"`
	Samples   int    `short:"s" default:"20000" help:"Monte Carlo samples"`
	Seed      int64  `default:"1" help:"Seed for the equity estimate"`
}

func (c *AnalyzeCmd) Run() error {
	return c.run(context.Background(), os.Stdout)
}

func (c *AnalyzeCmd) run(ctx context.Context, out io.Writer) error {
	hole, err := poker.ParseCards(c.Hole)
	if err != nil {
		return fmt.Errorf("hole: %w", err)
	}
	if len(hole) != 2 {
		return fmt.Errorf("hole: need two cards, got %d", len(hole))
	}
	var board []poker.Card
	if c.Board != "" {
		if board, err = poker.ParseCards(c.Board); err != nil {
			return fmt.Errorf("board: %w", err)
		}
	}
	if n := len(board); n != 0 && (n < 3 || n > 5) {
		return fmt.Errorf("board: need three to five cards, got %d", n)
	}

	eq, err := analysis.EstimateEquity(ctx, analysis.EquityRequest{
		Hole:      hole,
		Board:     board,
		Opponents: c.Opponents,
		Samples:   c.Samples,
		Seed:      c.Seed,
	})
	if err != nil {
		return err
	}

	rep := analysis.Report{
		Seat:        -1,
		Description: analysis.Describe(hole, board),
		Class:       poker.ClassifyHole(hole[0], hole[1]),
		BetterHands: analysis.BetterHands(hole, board),
	}
	if d, ok := analysis.NextCard(hole, board); ok {
		rep.Draw = &d
		rep.Draw.Street = game.Turn
		if len(board) == 4 {
			rep.Draw.Street = game.River
		}
	}

	r := display.New(out)
	fmt.Fprintln(out, r.Cards(hole), r.Cards(board))
	fmt.Fprintln(out, r.Report(rep))
	fmt.Fprintln(out, r.Equity(eq))
	return nil
}

// ReplayCmd prints a hand history written by play or serve.
type ReplayCmd struct {
	File string `arg:"" help:"Path to a .phh file" type:"existingfile"`
}

func (c *ReplayCmd) Run() error {
	return runReplay(os.Stdout, c.File)
}

func runReplay(out io.Writer, path string) error {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return err
	}
	defer f.Close()

	h, err := phh.Decode(f)
	if err != nil {
		return err
	}
	r := display.New(out)
	fmt.Fprintln(out, r.Styles().Header.Render(fmt.Sprintf(" %s  %s %s ", h.Table, h.HandID, h.Time)))
	for i, name := range h.Players {
		fmt.Fprintf(out, "p%d %-10s seat %d  $%d -> $%d\n", i+1, name, h.Seats[i], h.StartingStacks[i], h.FinishingStacks[i])
	}
	for _, a := range h.Actions {
		fmt.Fprintln(out, "  "+a)
	}
	for i, won := range h.Winnings {
		if won > 0 {
			fmt.Fprintln(out, r.Styles().Success.Render(fmt.Sprintf("%s won $%d", h.Players[i], won)))
		}
	}
	return nil
}

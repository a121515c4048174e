package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lox/sixmax/internal/analysis"
	"github.com/lox/sixmax/internal/display"
	"github.com/lox/sixmax/internal/table"
)

// PlayCmd plays hands in the terminal.
type PlayCmd struct {
	Table      string `short:"t" help:"Table from the config file (default: first)"`
	Hands      int    `short:"n" help:"Stop after this many hands (0 = until quit)"`
	Seed       *int64 `help:"Deterministic shuffle seed (overrides config)"`
	HistoryDir string `help:"Write a PHH file per hand into this directory (overrides config)"`
	Debug      bool   `help:"Log bot reasoning to stderr"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	tc, ok := cfg.Table(c.Table)
	if !ok {
		return fmt.Errorf("no table named %q", c.Table)
	}
	if c.Seed != nil {
		tc.Seed = c.Seed
	}
	if c.HistoryDir != "" {
		cfg.Server.HandHistoryDir = c.HistoryDir
	}

	level := log.WarnLevel
	if c.Debug {
		level = log.DebugLevel
	}
	var opts []table.Option
	if cfg.Server.HandHistoryDir != "" {
		opts = append(opts, table.WithHistoryDir(cfg.Server.HandHistoryDir))
	}
	tbl, err := table.New(tc.Name, tc.Game(), cfg.Strategies(), stderrLogger(level), opts...)
	if err != nil {
		return err
	}
	return runPlay(os.Stdin, os.Stdout, tbl, c.Hands)
}

// runPlay drives hands from typed commands until input ends, the hero
// quits, or hands have been played.
func runPlay(in io.Reader, out io.Writer, tbl *table.Table, hands int) error {
	r := display.New(out)
	scanner := bufio.NewScanner(in)
	prompt := func(text string) (string, bool) {
		fmt.Fprint(out, r.Styles().Actions.Render(text))
		if !scanner.Scan() {
			return "", false
		}
		return strings.TrimSpace(scanner.Text()), true
	}

	fmt.Fprintln(out, r.Styles().Header.Render(" ♠ ♥ Six-max Hold'em ♦ ♣ "))
	for played := 0; hands <= 0 || played < hands; played++ {
		if played > 0 {
			line, ok := prompt("Enter for the next hand, q to quit: ")
			if !ok || line == "q" || line == "quit" {
				return scanner.Err()
			}
		}

		g, err := tbl.NewHand()
		if err != nil {
			return err
		}
		seen := 0
		flush := func() {
			for _, ev := range g.History[min(seen, len(g.History)):] {
				fmt.Fprintln(out, "  "+ev.Text)
			}
			seen = len(g.History)
		}

		for !g.IsComplete() {
			tbl.RunBots()
			flush()
			if !tbl.HeroToAct() {
				continue
			}

			fmt.Fprintln(out, r.Table(g, table.HeroSeat))
			fmt.Fprintln(out, r.Actions(g))
			line, ok := prompt("> ")
			if !ok {
				return scanner.Err()
			}
			switch line {
			case "help", "?":
				fmt.Fprintln(out, display.Help)
				continue
			case "analyze", "an":
				rep, err := analysis.Analyze(g, table.HeroSeat)
				if err != nil {
					fmt.Fprintln(out, r.Styles().Error.Render(err.Error()))
					continue
				}
				fmt.Fprintln(out, r.Report(rep))
				continue
			}

			a, err := display.ParseCommand(line, g, table.HeroSeat)
			if errors.Is(err, display.ErrQuit) {
				return nil
			}
			if err == nil {
				err = tbl.Act(a)
			}
			if err != nil {
				fmt.Fprintln(out, r.Styles().Error.Render("Error: "+err.Error()))
			}
		}
		flush()

		fmt.Fprintln(out, r.Table(g, table.HeroSeat))
		fmt.Fprintln(out, r.Results(g))
		if tbl.LastHistoryFile != "" {
			fmt.Fprintln(out, r.Styles().Info.Render("Saved "+tbl.LastHistoryFile))
		}
	}
	return nil
}

package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/sixmax/internal/game"
	"github.com/lox/sixmax/internal/simulator"
	"github.com/lox/sixmax/internal/table"
)

func foldTable(t *testing.T, opts ...table.Option) *table.Table {
	t.Helper()
	strategies := []string{"", "fold", "fold", "fold", "fold", "fold"}
	tbl, err := table.New("home", game.DefaultConfig().WithSeed(42), strategies,
		log.NewWithOptions(io.Discard, log.Options{}), opts...)
	require.NoError(t, err)
	return tbl
}

func TestRunPlay(t *testing.T) {
	dir := t.TempDir()
	tbl := foldTable(t, table.WithHistoryDir(dir))

	var out bytes.Buffer
	in := strings.NewReader("help\nanalyze\ncheck\nraise 6\n")
	require.NoError(t, runPlay(in, &out, tbl, 1))

	text := out.String()
	assert.Contains(t, text, "Villain 3: folds")
	assert.Contains(t, text, "Commands:")
	assert.Contains(t, text, "Hand:      Preflop (Trash)")
	assert.Contains(t, text, "Error: seat 0 cannot check")
	assert.Contains(t, text, "Hero: raises to $6")
	assert.Contains(t, text, "Hero wins $9 (Uncontested)")
	assert.Contains(t, text, "Saved "+dir)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRunPlayQuit(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runPlay(strings.NewReader("dance\nq\n"), &out, foldTable(t), 0))
	assert.Contains(t, out.String(), "unknown command: dance")

	out.Reset()
	require.NoError(t, runPlay(strings.NewReader(""), &out, foldTable(t), 0), "end of input stops play")
}

func TestRunPlayNextHand(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("fold\n\nfold\n")
	require.NoError(t, runPlay(in, &out, foldTable(t), 2))
	assert.Contains(t, out.String(), "Hand #2")
}

func TestRunEval(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runEval(&out, "As Ks Qs Js Ts 2c 3d"))
	assert.Equal(t, "Straight Flush [As Ks Qs Js Ts]\n", out.String())

	assert.Error(t, runEval(&out, "As Ks"))
	assert.Error(t, runEval(&out, "As As Qs Js Ts"))
}

func TestAnalyzeCmd(t *testing.T) {
	var out bytes.Buffer
	cmd := AnalyzeCmd{Hole: "AsAd", Board: "Ah7c2d", Opponents: 1, Samples: 2000, Seed: 1}
	require.NoError(t, cmd.run(context.Background(), &out))
	text := out.String()
	assert.Contains(t, text, "Three of a Kind")
	assert.Contains(t, text, "outs on the turn")
	assert.Contains(t, text, "Equity: ")
	assert.Contains(t, text, "over 2000 samples")

	bad := []AnalyzeCmd{
		{Hole: "As", Opponents: 1, Samples: 10},
		{Hole: "AsKd", Board: "2c3c", Opponents: 1, Samples: 10},
		{Hole: "AsKd", Board: "As2c3c", Opponents: 1, Samples: 10},
		{Hole: "AsKd", Opponents: 9, Samples: 10},
	}
	for _, c := range bad {
		assert.Error(t, c.run(context.Background(), &out), "%+v", c)
	}
}

func TestRunReplay(t *testing.T) {
	dir := t.TempDir()
	tbl := foldTable(t, table.WithHistoryDir(dir))
	require.NoError(t, runPlay(strings.NewReader("raise 6\n"), io.Discard, tbl, 1))

	var out bytes.Buffer
	require.NoError(t, runReplay(&out, tbl.LastHistoryFile))
	text := out.String()
	assert.Contains(t, text, "home")
	assert.Contains(t, text, "p6 Hero")
	assert.Contains(t, text, "  p6 cbr 6")
	assert.Contains(t, text, "Hero won $9")

	assert.Error(t, runReplay(&out, filepath.Join(dir, "missing.phh")))
}

func TestLoadConfigOverrides(t *testing.T) {
	g := &Globals{Config: filepath.Join(t.TempDir(), "none.hcl"), LogLevel: "debug"}
	cfg, err := g.loadConfig()
	require.NoError(t, err)
	assert.Equal(t, log.DebugLevel, cfg.Level())

	g.LogLevel = "shouty"
	_, err = g.loadConfig()
	assert.ErrorContains(t, err, "invalid log level")
}

func TestSimulateCmd(t *testing.T) {
	var out bytes.Buffer
	cmd := SimulateCmd{}
	err := cmd.run(context.Background(), &out, simulator.Config{
		Hands:      12,
		Game:       game.DefaultConfig(),
		Strategies: []string{"simple", "fold", "fold", "call", "call", "random"},
		Seed:       3,
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "RESULTS: simple vs fold,fold,call,call,random")
	assert.Contains(t, out.String(), "Hands played: 12")

	err = cmd.run(context.Background(), &out, simulator.Config{Hands: 1, Game: game.DefaultConfig(), Strategies: []string{"simple"}})
	assert.ErrorContains(t, err, "need 6 strategies")
}

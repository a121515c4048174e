package display

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/sixmax/internal/analysis"
	"github.com/lox/sixmax/internal/game"
	"github.com/lox/sixmax/poker"
)

// Seed 42 deals the hero (seat 0, button) Th 2h and seat 1 Qd 3h; seat 3
// is first to act.
func seeded(t *testing.T) *game.GameState {
	t.Helper()
	g, err := game.InitHand(nil, game.DefaultConfig().WithSeed(42))
	require.NoError(t, err)
	return g
}

func plain() *Renderer {
	return New(&bytes.Buffer{})
}

func TestCards(t *testing.T) {
	r := plain()
	assert.Equal(t, "[As Kd]", r.Cards(poker.MustParseCards("As Kd")))
	assert.Equal(t, "[]", r.Cards(nil))
}

func TestTableHidesOpponentCards(t *testing.T) {
	g := seeded(t)
	out := plain().Table(g, 0)

	assert.Contains(t, out, "Hand #1  PREFLOP")
	assert.Contains(t, out, "Pot: $3 | Bet: $2")
	assert.Contains(t, out, "[Th 2h]")
	assert.NotContains(t, out, "[Qd 3h]")
	assert.Contains(t, out, "[?? ??]")
	assert.Contains(t, out, "> Villain 3")
	assert.Contains(t, out, "in $2")
}

func TestTableRevealsAtShowdown(t *testing.T) {
	g := seeded(t)
	for !g.IsComplete() {
		require.NoError(t, g.AdvanceStreet())
	}
	out := plain().Table(g, 0)
	assert.Contains(t, out, "SHOWDOWN")
	assert.Contains(t, out, "[Qd 3h]")
	assert.NotContains(t, out, "[?? ??]")
}

func TestTableFolded(t *testing.T) {
	g := seeded(t)
	require.NoError(t, g.ApplyAction(game.Action{Seat: 3, Type: game.Fold}))
	out := plain().Table(g, 0)
	assert.Contains(t, out, "folded")
	assert.Contains(t, out, "> Villain 4")
}

func TestActions(t *testing.T) {
	g := seeded(t)
	assert.Equal(t, "Actions: [fold] [call $2] [raise $4-$200]", plain().Actions(g))

	require.NoError(t, g.ApplyAction(game.Action{Seat: 3, Type: game.Fold}))
	require.NoError(t, g.ApplyAction(game.Action{Seat: 4, Type: game.Fold}))
	require.NoError(t, g.ApplyAction(game.Action{Seat: 5, Type: game.Fold}))
	require.NoError(t, g.ApplyAction(game.Action{Seat: 0, Type: game.Fold}))
	require.NoError(t, g.ApplyAction(game.Action{Seat: 1, Type: game.Call}))
	assert.Equal(t, "Actions: [check] [raise $4-$200]", plain().Actions(g))

	require.NoError(t, g.ApplyAction(game.Action{Seat: 2, Type: game.Check}))
	for !g.IsComplete() {
		require.NoError(t, g.AdvanceStreet())
	}
	assert.Equal(t, "No actions available", plain().Actions(g))
}

func TestLogAndResults(t *testing.T) {
	g := seeded(t)
	r := plain()
	assert.Equal(t, "Hand in progress", r.Results(g))

	for _, seat := range []int{3, 4, 5, 0, 1} {
		require.NoError(t, g.ApplyAction(game.Action{Seat: seat, Type: game.Fold}))
	}
	require.True(t, g.IsComplete())

	assert.Equal(t, "Villain 2 wins $3 (Uncontested)", r.Results(g))
	assert.Equal(t, "Villain 2 collected $3 from pot", r.Log(g, 1))
	assert.Contains(t, r.Log(g, 0), "Villain 3: folds")
}

func TestReport(t *testing.T) {
	rep := analysis.Report{
		Description: "Pair of Aces",
		Class:       poker.ClassPremium,
		BetterHands: analysis.Count{Better: 10, Total: 100},
		Draw:        &analysis.Draw{Street: game.Turn, Outs: 5, Unseen: 47},
		ToCall:      10,
		PotOdds:     analysis.ComputePotOdds(10, 30),
		SPR:         4,
	}
	out := plain().Report(rep)
	assert.Contains(t, out, "Pair of Aces (Premium)")
	assert.Contains(t, out, "beats 90.0% of holdings")
	assert.Contains(t, out, "5/47 outs on the turn")
	assert.Contains(t, out, "pot odds 3.00:1")
	assert.Contains(t, out, "SPR:       4.00")
}

func TestParseCommand(t *testing.T) {
	g := seeded(t)
	tests := []struct {
		input string
		want  game.Action
	}{
		{"f", game.Action{Seat: 3, Type: game.Fold}},
		{"check", game.Action{Seat: 3, Type: game.Check}},
		{"Call", game.Action{Seat: 3, Type: game.Call}},
		{"raise 12", game.Action{Seat: 3, Type: game.Raise, Amount: 12}},
		{"r to $20", game.Action{Seat: 3, Type: game.Raise, Amount: 20}},
		{"allin", game.Action{Seat: 3, Type: game.Raise, Amount: 200}},
	}
	for _, tt := range tests {
		got, err := ParseCommand(tt.input, g, 3)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}

	_, err := ParseCommand("q", g, 3)
	assert.ErrorIs(t, err, ErrQuit)
	for _, bad := range []string{"", "raise", "raise lots", "dance"} {
		_, err := ParseCommand(bad, g, 3)
		assert.Error(t, err, bad)
	}
}

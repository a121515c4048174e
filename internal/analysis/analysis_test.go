package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/sixmax/internal/game"
	"github.com/lox/sixmax/poker"
)

func cards(s string) []poker.Card {
	return poker.MustParseCards(s)
}

func TestComputePotOdds(t *testing.T) {
	t.Parallel()
	odds := ComputePotOdds(10, 30)
	assert.InDelta(t, 3.0, odds.Ratio, 1e-9)
	assert.InDelta(t, 0.25, odds.RequiredEquity, 1e-9)
	assert.Equal(t, "3.00:1", odds.String())

	assert.Equal(t, PotOdds{}, ComputePotOdds(0, 30))
	assert.Equal(t, "N/A", ComputePotOdds(0, 30).String())
}

func TestBetterHands(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		hole       string
		board      string
		wantBetter int
		wantTotal  int
	}{
		{"royal flush is never beaten", "As Ks", "Qs Js Ts", 0, 1081},
		{"preflop is not counted", "As Ks", "", 0, 0},
		{"river enumerates 45 unseen cards", "As Ks", "Qs Js Ts 2c 3d", 0, 990},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := BetterHands(cards(tt.hole), cards(tt.board))
			assert.Equal(t, Count{Better: tt.wantBetter, Total: tt.wantTotal}, got)
		})
	}

	weak := BetterHands(cards("2c 3d"), cards("Ah Kh Qh"))
	assert.Equal(t, 1081, weak.Total)
	assert.Greater(t, weak.Better, 500)
	assert.Greater(t, weak.Fraction(), 0.5)
}

func TestNextCard(t *testing.T) {
	t.Parallel()

	// Trip deuces improve with any 7 or 9 (full house), the last deuce, or a
	// kicker above the seven.
	d, ok := NextCard(cards("2c 2d"), cards("2h 7s 9c"))
	require.True(t, ok)
	assert.Equal(t, 47, d.Unseen)
	assert.Equal(t, 31, d.Outs)
	assert.InDelta(t, 31.0/47.0, d.Chance(), 1e-9)

	d, ok = NextCard(cards("As Ad"), cards("Ac Ah Ks"))
	require.True(t, ok)
	assert.Zero(t, d.Outs)

	d, ok = NextCard(cards("As Ad"), cards("Ac Ah Ks 2d"))
	require.True(t, ok)
	assert.Equal(t, 46, d.Unseen)

	_, ok = NextCard(cards("As Ad"), nil)
	assert.False(t, ok)
	_, ok = NextCard(cards("As Ad"), cards("Ac Ah Ks 2d 3d"))
	assert.False(t, ok)
}

func TestDescribe(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Preflop", Describe(cards("As Ad"), nil))
	assert.Equal(t, "Three of a Kind", Describe(cards("As Ad"), cards("Ac 7h 2d")))
	assert.Equal(t, "Straight", Describe(cards("As 2d"), cards("3c 4h 5d Kc")))
}

func seededHand(t *testing.T) *game.GameState {
	t.Helper()
	g, err := game.InitHand(nil, game.DefaultConfig().WithSeed(42))
	require.NoError(t, err)
	return g
}

func TestAnalyzePreflop(t *testing.T) {
	t.Parallel()
	g := seededHand(t)

	r, err := Analyze(g, 3)
	require.NoError(t, err)
	assert.Equal(t, "Preflop", r.Description)
	assert.Equal(t, poker.ClassTrash, r.Class)
	assert.Equal(t, 2, r.ToCall)
	assert.InDelta(t, 1.5, r.PotOdds.Ratio, 1e-9)
	assert.InDelta(t, 0.4, r.PotOdds.RequiredEquity, 1e-9)
	assert.InDelta(t, 66.0, r.SPR, 1e-9)
	assert.InDelta(t, 99.5, r.ImpliedMaxRatio, 1e-9)
	assert.Nil(t, r.Draw)
	_, ok := r.Percentile()
	assert.False(t, ok)
}

func TestAnalyzeFlop(t *testing.T) {
	t.Parallel()
	g := seededHand(t)
	require.NoError(t, g.AdvanceStreet())

	// Seat 4 holds 8d Qs on 5d 6c Qc.
	r, err := Analyze(g, 4)
	require.NoError(t, err)
	assert.Equal(t, "One Pair", r.Description)
	assert.Equal(t, 1081, r.BetterHands.Total)
	require.NotNil(t, r.Draw)
	assert.Equal(t, game.Turn, r.Draw.Street)
	assert.Equal(t, 47, r.Draw.Unseen)
	assert.Zero(t, r.ToCall)
	pct, ok := r.Percentile()
	assert.True(t, ok)
	assert.Greater(t, pct, 0.5)
}

func TestAnalyzeErrors(t *testing.T) {
	t.Parallel()
	g := seededHand(t)
	_, err := Analyze(g, 6)
	assert.Error(t, err)

	g.Players[1].Hole = nil
	_, err = Analyze(g, 1)
	assert.ErrorIs(t, err, ErrNoHoleCards)
}

func TestEstimateEquity(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	aces := EquityRequest{Hole: cards("As Ah"), Opponents: 1, Samples: 20000, Seed: 1}
	eq, err := EstimateEquity(ctx, aces)
	require.NoError(t, err)
	assert.Equal(t, 20000, eq.Samples)
	assert.InDelta(t, 0.85, eq.Share, 0.02)

	again, err := EstimateEquity(ctx, aces)
	require.NoError(t, err)
	assert.Equal(t, eq, again, "same seed gives the same estimate")

	chop, err := EstimateEquity(ctx, EquityRequest{
		Hole: cards("2c 3d"), Board: cards("As Ks Qs Js Ts"), Opponents: 1, Samples: 1000,
	})
	require.NoError(t, err)
	assert.Equal(t, 1000, chop.Ties)
	assert.InDelta(t, 0.5, chop.Share, 1e-9)

	nuts, err := EstimateEquity(ctx, EquityRequest{
		Hole: cards("As Ks"), Board: cards("Qs Js Ts 2c 3d"), Opponents: 5, Samples: 500,
	})
	require.NoError(t, err)
	assert.Equal(t, 500, nuts.Wins)
	assert.InDelta(t, 1.0, nuts.Share, 1e-9)

	threeWay, err := EstimateEquity(ctx, EquityRequest{Hole: cards("As Ah"), Opponents: 2, Samples: 5000, Seed: 3})
	require.NoError(t, err)
	assert.Less(t, threeWay.Share, eq.Share)
}

func TestEstimateEquityErrors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	tests := []struct {
		name string
		req  EquityRequest
	}{
		{"one hole card", EquityRequest{Hole: cards("As"), Opponents: 1, Samples: 10}},
		{"no opponents", EquityRequest{Hole: cards("As Ah"), Samples: 10}},
		{"too many opponents", EquityRequest{Hole: cards("As Ah"), Opponents: 6, Samples: 10}},
		{"no samples", EquityRequest{Hole: cards("As Ah"), Opponents: 1}},
		{"duplicate", EquityRequest{Hole: cards("As Ah"), Board: []poker.Card{cards("As")[0]}, Opponents: 1, Samples: 10}},
	}
	for _, tt := range tests {
		_, err := EstimateEquity(ctx, tt.req)
		assert.Error(t, err, tt.name)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err := EstimateEquity(cancelled, EquityRequest{Hole: cards("As Ah"), Opponents: 1, Samples: 1000})
	assert.ErrorIs(t, err, context.Canceled)
}

package statistics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/sixmax/internal/game"
)

func TestEmpty(t *testing.T) {
	s := &Statistics{}
	assert.Zero(t, s.Mean())
	assert.Zero(t, s.Variance())
	assert.Zero(t, s.StdError())
	assert.Zero(t, s.Median())
	assert.Zero(t, s.Percentile(0.9))
	assert.Equal(t, PositionStats{}, s.Position(game.Button))
	assert.ErrorContains(t, s.Validate(), "invalid hands count")
}

func TestSingleValue(t *testing.T) {
	s := &Statistics{}
	s.Add(HandResult{NetBB: 2.5, Position: game.Cutoff, WentToShowdown: true, PotChips: 20, PotBB: 10, Street: game.River})

	assert.Equal(t, 1, s.Hands)
	assert.Equal(t, 2.5, s.Mean())
	assert.Zero(t, s.Variance())
	assert.Equal(t, 2.5, s.Median())
	assert.Equal(t, 1, s.ShowdownWins)
	assert.Zero(t, s.NonShowdownWins)
	assert.Equal(t, 1, s.Streets[game.River])
	assert.True(t, s.IsLedgerBalanced())
	require.NoError(t, s.Validate())
}

func TestMultipleValues(t *testing.T) {
	s := &Statistics{}
	for _, r := range []HandResult{
		{NetBB: 1, Position: game.Button, PotChips: 4, PotBB: 2},
		{NetBB: -2, Position: game.SmallBlind, WentToShowdown: true, PotChips: 8, PotBB: 4},
		{NetBB: 3, Position: game.BigBlind, WentToShowdown: true, PotChips: 12, PotBB: 6},
		{NetBB: 0, Position: game.Button, PotChips: 2, PotBB: 1},
		{NetBB: -1, Position: game.SmallBlind, PotChips: 6, PotBB: 3},
	} {
		s.Add(r)
	}

	assert.Equal(t, 5, s.Hands)
	assert.InDelta(t, 0.2, s.Mean(), 1e-9)
	assert.InDelta(t, 20.0, s.BBPer100(), 1e-9)
	assert.InDelta(t, 3.7, s.Variance(), 1e-9)
	assert.Equal(t, 0.0, s.Median())
	assert.Equal(t, 1, s.ShowdownWins)
	assert.Equal(t, 1, s.NonShowdownWins)
	assert.InDelta(t, 1.0, s.ShowdownBB, 1e-9)
	assert.InDelta(t, 0.0, s.NonShowdownBB, 1e-9)
	assert.Equal(t, 12, s.MaxPotChips)

	assert.Equal(t, 2, s.Position(game.Button).Hands)
	assert.InDelta(t, 0.5, s.Position(game.Button).Mean(), 1e-9)
	assert.InDelta(t, -1.5, s.Position(game.SmallBlind).Mean(), 1e-9)
	require.NoError(t, s.Validate())
}

func TestPercentiles(t *testing.T) {
	s := &Statistics{}
	for i := 1; i <= 5; i++ {
		s.Add(HandResult{NetBB: float64(i), Position: game.Hijack})
	}
	assert.Equal(t, 1.0, s.Percentile(0))
	assert.Equal(t, 3.0, s.Percentile(0.5))
	assert.Equal(t, 5.0, s.Percentile(1))
	assert.InDelta(t, 2.0, s.Percentile(0.25), 1e-9)
	assert.InDelta(t, 4.6, s.Percentile(0.9), 1e-9)
}

func TestConfidenceInterval(t *testing.T) {
	s := &Statistics{}
	for _, v := range []float64{1, -1, 1, -1} {
		s.Add(HandResult{NetBB: v, Position: game.UnderGun})
	}
	lo, hi := s.ConfidenceInterval95()
	assert.Less(t, lo, 0.0)
	assert.Greater(t, hi, 0.0)
	assert.InDelta(t, hi, -lo, 1e-9)
}

func TestBigPots(t *testing.T) {
	s := &Statistics{}
	s.Add(HandResult{NetBB: 100, Position: game.BigBlind, WentToShowdown: true, PotChips: 400, PotBB: 200})
	s.Add(HandResult{NetBB: -1, Position: game.BigBlind, PotChips: 3, PotBB: 1.5})
	assert.Equal(t, 1, s.BigPots)
	assert.Equal(t, 100.0, s.BigPotsBB)
	assert.Equal(t, 400, s.MaxPotChips)
	assert.Equal(t, 200.0, s.MaxPotBB)
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *Statistics)
		want   string
	}{
		{"ledger", func(s *Statistics) { s.ShowdownBB += 10 }, "ledger mismatch"},
		{"values", func(s *Statistics) { s.Values = s.Values[:1] }, "values array length"},
		{"wins", func(s *Statistics) { s.ShowdownWins = 10 }, "exceeds total hands"},
		{"positions", func(s *Statistics) { s.Positions[game.Button].Hands = 0 }, "position hands total"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Statistics{}
			s.Add(HandResult{NetBB: 1, Position: game.Button})
			s.Add(HandResult{NetBB: -1, Position: game.Cutoff, WentToShowdown: true})
			require.NoError(t, s.Validate())
			tt.mutate(s)
			assert.ErrorContains(t, s.Validate(), tt.want)
		})
	}
}

// Package statistics accumulates the hero seat's results over many hands.
package statistics

import (
	"fmt"
	"math"
	"slices"

	"github.com/lox/sixmax/internal/game"
)

// BigPotBB is the pot size, in big blinds, counted as a big pot.
const BigPotBB = 50

// HandResult is the outcome of one hand for the tracked seat.
type HandResult struct {
	NetBB          float64       // Net big blinds won or lost
	Seed           int64         // Deck seed, for replay
	Position       game.Position // Position held this hand
	WentToShowdown bool          // More than one contender at the end
	PotChips       int           // Final pot in chips
	PotBB          float64       // Final pot in big blinds
	Street         game.Street   // Furthest street dealt
}

// PositionStats tracks results from one position.
type PositionStats struct {
	Hands int
	SumBB float64
}

// Mean returns the average result from the position.
func (p PositionStats) Mean() float64 {
	if p.Hands == 0 {
		return 0
	}
	return p.SumBB / float64(p.Hands)
}

// Statistics tracks per-hand results in big blinds.
type Statistics struct {
	Hands  int
	SumBB  float64
	SumBB2 float64   // for the variance
	Values []float64 // every result, for medians and percentiles

	ShowdownWins    int
	NonShowdownWins int
	ShowdownBB      float64 // wins and losses that reached showdown
	NonShowdownBB   float64
	AllBB           float64

	Positions map[game.Position]*PositionStats
	Streets   [game.Showdown + 1]int

	MaxPotChips int
	MaxPotBB    float64
	BigPots     int
	BigPotsBB   float64
}

// Mean returns the average result in big blinds per hand.
func (s *Statistics) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.SumBB / float64(s.Hands)
}

// Variance returns the sample variance.
func (s *Statistics) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumBB2 - float64(s.Hands)*mean*mean) / float64(s.Hands-1)
}

func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean.
func (s *Statistics) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean.
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean, margin := s.Mean(), 1.96*s.StdError()
	return mean - margin, mean + margin
}

// BBPer100 returns the win rate in big blinds per hundred hands.
func (s *Statistics) BBPer100() float64 {
	return s.Mean() * 100
}

// Add records one hand.
func (s *Statistics) Add(r HandResult) {
	s.Hands++
	s.SumBB += r.NetBB
	s.SumBB2 += r.NetBB * r.NetBB
	s.Values = append(s.Values, r.NetBB)
	s.AllBB += r.NetBB

	if r.WentToShowdown {
		s.ShowdownBB += r.NetBB
		if r.NetBB > 0 {
			s.ShowdownWins++
		}
	} else {
		s.NonShowdownBB += r.NetBB
		if r.NetBB > 0 {
			s.NonShowdownWins++
		}
	}

	if s.Positions == nil {
		s.Positions = make(map[game.Position]*PositionStats)
	}
	ps := s.Positions[r.Position]
	if ps == nil {
		ps = &PositionStats{}
		s.Positions[r.Position] = ps
	}
	ps.Hands++
	ps.SumBB += r.NetBB

	if r.Street >= game.Preflop && r.Street <= game.Showdown {
		s.Streets[r.Street]++
	}

	if r.PotChips > s.MaxPotChips {
		s.MaxPotChips = r.PotChips
		s.MaxPotBB = r.PotBB
	}
	if r.PotBB >= BigPotBB {
		s.BigPots++
		s.BigPotsBB += r.NetBB
	}
}

// Median returns the median result.
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the interpolated result at p, from 0 to 1.
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := slices.Clone(s.Values)
	slices.Sort(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Position returns the results from pos.
func (s *Statistics) Position(pos game.Position) PositionStats {
	if ps := s.Positions[pos]; ps != nil {
		return *ps
	}
	return PositionStats{}
}

// IsLedgerBalanced reports whether showdown and non-showdown results add
// up to the total.
func (s *Statistics) IsLedgerBalanced() bool {
	return math.Abs(s.AllBB-s.ShowdownBB-s.NonShowdownBB) <= 1e-6
}

// Validate checks that the tallies agree with each other.
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: AllBB=%.6f, ShowdownBB=%.6f, NonShowdownBB=%.6f",
			s.AllBB, s.ShowdownBB, s.NonShowdownBB)
	}
	if s.Hands <= 0 {
		return fmt.Errorf("invalid hands count: %d", s.Hands)
	}
	if len(s.Values) != s.Hands {
		return fmt.Errorf("values array length (%d) does not match hands count (%d)", len(s.Values), s.Hands)
	}
	if wins := s.ShowdownWins + s.NonShowdownWins; wins > s.Hands {
		return fmt.Errorf("total wins (%d) exceeds total hands (%d)", wins, s.Hands)
	}
	total := 0
	for _, ps := range s.Positions {
		total += ps.Hands
	}
	if total != s.Hands {
		return fmt.Errorf("position hands total (%d) does not match total hands (%d)", total, s.Hands)
	}
	return nil
}

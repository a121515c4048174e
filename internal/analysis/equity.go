package analysis

import (
	"context"
	"errors"
	rand "math/rand/v2"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/lox/sixmax/internal/randutil"
	"github.com/lox/sixmax/poker"
)

// equityChunks is how many independent sample streams a run is split into.
// It is fixed so a seed gives the same estimate on any machine.
const equityChunks = 8

// Equity is a Monte Carlo estimate of a hand's share of the pot.
type Equity struct {
	Samples int `json:"samples"`
	Wins    int `json:"wins"`
	Ties    int `json:"ties"`

	// Share is the average fraction of the pot won, with ties split.
	Share float64 `json:"share"`
}

// EquityRequest describes one estimate.
type EquityRequest struct {
	Hole      []poker.Card
	Board     []poker.Card
	Opponents int
	Samples   int
	Seed      int64
}

// workerResult holds the results from a Monte Carlo worker
type workerResult struct {
	wins, ties, samples int
	share               float64
}

// EstimateEquity deals random opponent holdings and board runouts and
// scores hero against them. Work is spread over an errgroup; the first
// worker error or ctx cancellation stops the run.
func EstimateEquity(ctx context.Context, req EquityRequest) (Equity, error) {
	if len(req.Hole) != 2 {
		return Equity{}, ErrNoHoleCards
	}
	if len(req.Board) > 5 {
		return Equity{}, errors.New("board has more than five cards")
	}
	if req.Opponents < 1 || req.Opponents > 5 {
		return Equity{}, errors.New("opponents must be between 1 and 5")
	}
	if req.Samples <= 0 {
		return Equity{}, errors.New("samples must be positive")
	}
	known := concat(req.Hole, req.Board)
	for _, c := range known {
		if !c.Valid() {
			return Equity{}, errors.New("invalid card")
		}
	}
	if poker.NewHand(known...).Count() != len(known) {
		return Equity{}, errors.New("duplicate cards")
	}

	available := unseen(req.Hole, req.Board)
	results := make([]workerResult, equityChunks)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for w := range equityChunks {
		n := req.Samples / equityChunks
		if w < req.Samples%equityChunks {
			n++
		}
		rng := randutil.New(req.Seed + int64(w))
		g.Go(func() error {
			res, err := runEquityWorker(ctx, req, available, n, rng)
			results[w] = res
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return Equity{}, err
	}

	var eq Equity
	var share float64
	for _, r := range results {
		eq.Samples += r.samples
		eq.Wins += r.wins
		eq.Ties += r.ties
		share += r.share
	}
	if eq.Samples > 0 {
		eq.Share = share / float64(eq.Samples)
	}
	return eq, nil
}

func runEquityWorker(ctx context.Context, req EquityRequest, available []poker.Card, samples int, rng *rand.Rand) (workerResult, error) {
	var res workerResult
	deck := make([]poker.Card, len(available))
	need := 2*req.Opponents + 5 - len(req.Board)

	hero := make([]poker.Card, 0, 7)
	opp := make([]poker.Card, 0, 7)
	board := make([]poker.Card, 5)
	copy(board, req.Board)

	for i := range samples {
		if i%256 == 0 {
			if err := ctx.Err(); err != nil {
				return res, err
			}
		}
		// Partial Fisher-Yates: only the cards this sample needs.
		copy(deck, available)
		for k := range need {
			j := k + rng.IntN(len(deck)-k)
			deck[k], deck[j] = deck[j], deck[k]
		}
		copy(board[len(req.Board):], deck[2*req.Opponents:need])

		hero = append(append(hero[:0], req.Hole...), board...)
		heroScore := poker.BestOfSeven([7]poker.Card(hero)).Score

		best, tied := poker.Score(0), 0
		for o := range req.Opponents {
			opp = append(append(opp[:0], deck[2*o:2*o+2]...), board...)
			s := poker.BestOfSeven([7]poker.Card(opp)).Score
			switch {
			case s > best:
				best, tied = s, 1
			case s == best:
				tied++
			}
		}

		res.samples++
		switch {
		case heroScore > best:
			res.wins++
			res.share++
		case heroScore == best:
			res.ties++
			res.share += 1 / float64(tied+1)
		}
	}
	return res, nil
}

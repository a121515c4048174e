// Package game implements the rules of a single 6-max no-limit hold'em hand.
//
// The main type is GameState, which owns one hand from the blinds to the
// payout: seat positions, dealing, action legality, street transitions and
// the showdown.
//
// # Basic Usage
//
//	g, err := game.InitHand(nil, game.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	for !g.IsComplete() {
//	    legal := g.LegalActions()
//	    if err := g.ApplyAction(game.Action{Seat: g.ToActIndex, Type: legal[len(legal)-1]}); err != nil {
//	        return err
//	    }
//	}
//	next, err := game.InitHand(g, cfg) // dealer button moves one seat
//
// # Deterministic Testing
//
// Set Config.Seed to shuffle with the reproducible Mulberry32 generator, or
// pass WithDeck to stack the deck outright:
//
//	seed := int64(42)
//	cfg := game.DefaultConfig()
//	cfg.Seed = &seed
//	g, _ := game.InitHand(nil, cfg)
//
// # Concurrency
//
// A GameState has a single writer. ApplyAction and AdvanceStreet mutate the
// receiver in place; callers that need an independent snapshot take one with
// Clone. The evaluator in package poker is pure and may be shared freely.
//
// # Pot Accounting
//
// The pot is a single undivided pot. Uneven all-ins are not split into side
// pots; every contender still in the hand at showdown competes for the
// whole pot.
package game

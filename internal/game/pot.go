package game

import "slices"

// Share is one seat's part of a split pot.
type Share struct {
	Seat   int
	Amount int
}

// splitPot divides amount equally among seats. Chips that do not divide
// evenly go one at a time to the seats closest clockwise from the left of
// the dealer, so the shares always sum to amount.
func splitPot(amount int, seats []int, dealer int) []Share {
	if len(seats) == 0 {
		return nil
	}
	ordered := slices.Clone(seats)
	slices.SortFunc(ordered, func(a, b int) int {
		return distanceFromButton(a, dealer) - distanceFromButton(b, dealer)
	})

	each, odd := amount/len(ordered), amount%len(ordered)
	shares := make([]Share, len(ordered))
	for i, seat := range ordered {
		shares[i] = Share{Seat: seat, Amount: each}
		if i < odd {
			shares[i].Amount++
		}
	}
	return shares
}

// distanceFromButton is 1 for the small blind and NumSeats for the button.
func distanceFromButton(seat, dealer int) int {
	d := (seat - dealer + NumSeats) % NumSeats
	if d == 0 {
		return NumSeats
	}
	return d
}

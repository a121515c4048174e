package poker

import (
	"math/bits"
	"slices"
)

// Category enumerates the poker hand classes from weakest to strongest.
type Category uint8

const (
	HighCard Category = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// String returns a human-readable hand description.
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case OnePair:
		return "One Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// Score orders five card hands. Higher is stronger.
//
// Bits 20-23 hold the category and bits 0-19 up to five ranks (4 bits each)
// in descending significance, so plain integer comparison ranks hands and
// equal hands compare equal.
type Score uint32

const categoryShift = 20

// Category returns the class encoded in the score.
func (s Score) Category() Category {
	return Category(s >> categoryShift)
}

// String returns the category description.
func (s Score) String() string {
	return s.Category().String()
}

func encode(cat Category, ranks ...uint8) Score {
	score := Score(cat) << categoryShift
	shift := 16
	for _, r := range ranks {
		score |= Score(r&0xF) << shift
		shift -= 4
	}
	return score
}

// RankFive scores exactly five cards.
func RankFive(cards [5]Card) Score {
	var counts [13]uint8
	var rankMask uint16
	flush := true
	suit := cards[0].Suit()
	for _, c := range cards {
		r := c.Rank()
		counts[r]++
		rankMask |= 1 << r
		if c.Suit() != suit {
			flush = false
		}
	}

	if top, ok := straightTop(rankMask); ok {
		if flush {
			return encode(StraightFlush, top)
		}
		return encode(Straight, top)
	}

	// Group ranks by multiplicity, highest multiplicity then highest rank first.
	var quads, trips, pairs, singles []uint8
	for r := int(Ace); r >= 0; r-- {
		switch counts[r] {
		case 4:
			quads = append(quads, uint8(r))
		case 3:
			trips = append(trips, uint8(r))
		case 2:
			pairs = append(pairs, uint8(r))
		case 1:
			singles = append(singles, uint8(r))
		}
	}

	switch {
	case len(quads) == 1:
		return encode(FourOfAKind, quads[0], singles[0])
	case len(trips) == 1 && len(pairs) == 1:
		return encode(FullHouse, trips[0], pairs[0])
	case flush:
		return encode(Flush, singles...)
	case len(trips) == 1:
		return encode(ThreeOfAKind, trips[0], singles[0], singles[1])
	case len(pairs) == 2:
		return encode(TwoPair, pairs[0], pairs[1], singles[0])
	case len(pairs) == 1:
		return encode(OnePair, pairs[0], singles[0], singles[1], singles[2])
	default:
		return encode(HighCard, singles...)
	}
}

// straightTop reports the top rank of a five distinct rank run. The wheel
// A-2-3-4-5 tops at the five.
func straightTop(mask uint16) (uint8, bool) {
	const wheel = 1<<Ace | 1<<Two | 1<<Three | 1<<Four | 1<<Five
	if mask == wheel {
		return Five, true
	}
	if bits.OnesCount16(mask) != 5 {
		return 0, false
	}
	low := bits.TrailingZeros16(mask)
	if mask>>low == 0x1F {
		return uint8(low + 4), true
	}
	return 0, false
}

// Result is the best five card hand found among seven cards.
type Result struct {
	Score    Score    `json:"score"`
	Five     [5]Card  `json:"five"`
	Category Category `json:"category"`
}

// Label returns the category description of the result.
func (r Result) Label() string {
	return r.Category.String()
}

// fiveOfSeven lists the index sets of all C(7,5) = 21 subsets.
var fiveOfSeven = func() [21][5]int {
	var out [21][5]int
	n := 0
	// Choosing five is leaving out two.
	for skipA := 0; skipA < 7; skipA++ {
		for skipB := skipA + 1; skipB < 7; skipB++ {
			k := 0
			for i := 0; i < 7; i++ {
				if i != skipA && i != skipB {
					out[n][k] = i
					k++
				}
			}
			n++
		}
	}
	return out
}()

// BestOfSeven returns the strongest five card subset of seven cards. On equal
// scores the first subset found is kept; the score alone decides showdowns.
func BestOfSeven(cards [7]Card) Result {
	var best Result
	first := true
	for _, idx := range fiveOfSeven {
		var five [5]Card
		for k, i := range idx {
			five[k] = cards[i]
		}
		score := RankFive(five)
		if first || score > best.Score {
			best = Result{Score: score, Five: five, Category: score.Category()}
			first = false
		}
	}
	return best
}

// BestOf evaluates five to seven cards, returning false for other counts.
func BestOf(cards []Card) (Result, bool) {
	switch len(cards) {
	case 5:
		five := [5]Card(cards)
		score := RankFive(five)
		return Result{Score: score, Five: five, Category: score.Category()}, true
	case 6:
		var best Result
		for skip := range cards {
			rest := slices.Delete(slices.Clone(cards), skip, skip+1)
			r, _ := BestOf(rest)
			if skip == 0 || r.Score > best.Score {
				best = r
			}
		}
		return best, true
	case 7:
		return BestOfSeven([7]Card(cards)), true
	default:
		return Result{}, false
	}
}

// Compare returns 1 if a beats b, -1 if b beats a and 0 for a chop.
func Compare(a, b Score) int {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	}
	return 0
}

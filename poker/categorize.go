package poker

// HoleClass is a coarse preflop strength bucket for two hole cards.
type HoleClass string

const (
	ClassPremium HoleClass = "Premium"
	ClassStrong  HoleClass = "Strong"
	ClassMedium  HoleClass = "Medium"
	ClassWeak    HoleClass = "Weak"
	ClassTrash   HoleClass = "Trash"
	ClassUnknown HoleClass = "Unknown"
)

// ClassifyHole buckets hole cards: Premium (JJ+, AK), Strong (TT, AQ, AJ),
// Medium (77-99, suited broadway), Weak (22-66, suited connectors and
// one-gappers), Trash otherwise.
func ClassifyHole(a, b Card) HoleClass {
	if !a.Valid() || !b.Valid() || a == b {
		return ClassUnknown
	}
	lo, hi := a.Rank(), b.Rank()
	if lo > hi {
		lo, hi = hi, lo
	}
	suited := a.Suit() == b.Suit()
	pair := lo == hi

	switch {
	case pair && lo >= Jack, lo == King && hi == Ace:
		return ClassPremium
	case pair && lo == Ten, hi == Ace && (lo == Queen || lo == Jack):
		return ClassStrong
	case pair && lo >= Seven, suited && lo >= Ten:
		return ClassMedium
	case pair, suited && hi-lo <= 2:
		return ClassWeak
	default:
		return ClassTrash
	}
}

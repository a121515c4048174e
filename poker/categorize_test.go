package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyHole(t *testing.T) {
	t.Parallel()
	tests := []struct {
		hole string
		want HoleClass
	}{
		{"As Ad", ClassPremium},
		{"Jc Jd", ClassPremium},
		{"Ah Kc", ClassPremium},
		{"Tc Td", ClassStrong},
		{"Qd Ah", ClassStrong},
		{"9s 9h", ClassMedium},
		{"Ks Qs", ClassMedium},
		{"2c 2d", ClassWeak},
		{"8h 6h", ClassWeak},
		{"7c 2d", ClassTrash},
		{"Ah 2h", ClassTrash},
	}
	for _, tt := range tests {
		cards := MustParseCards(tt.hole)
		assert.Equal(t, tt.want, ClassifyHole(cards[0], cards[1]), tt.hole)
	}

	c := NewCard(Ace, Spades)
	assert.Equal(t, ClassUnknown, ClassifyHole(c, c))
}

package game

import (
	"fmt"
	"slices"
)

// NumSeats is the only supported table size.
const NumSeats = 6

// Street represents the betting round
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
	Showdown
)

var streetNames = [...]string{"preflop", "flop", "turn", "river", "showdown"}

func (s Street) String() string {
	if s < Preflop || s > Showdown {
		return fmt.Sprintf("street(%d)", int(s))
	}
	return streetNames[s]
}

// MarshalText encodes the street by name.
func (s Street) MarshalText() ([]byte, error) {
	if s < Preflop || s > Showdown {
		return nil, fmt.Errorf("invalid street %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText decodes a street name.
func (s *Street) UnmarshalText(text []byte) error {
	i := slices.Index(streetNames[:], string(text))
	if i < 0 {
		return fmt.Errorf("invalid street %q", text)
	}
	*s = Street(i)
	return nil
}

// ActionType is one of the four betting decisions.
type ActionType int

const (
	Fold ActionType = iota
	Check
	Call
	Raise
)

var actionNames = [...]string{"fold", "check", "call", "raise"}

func (a ActionType) String() string {
	if a < Fold || a > Raise {
		return fmt.Sprintf("action(%d)", int(a))
	}
	return actionNames[a]
}

// MarshalText encodes the action by name.
func (a ActionType) MarshalText() ([]byte, error) {
	if a < Fold || a > Raise {
		return nil, fmt.Errorf("invalid action %d", int(a))
	}
	return []byte(a.String()), nil
}

// UnmarshalText decodes an action name.
func (a *ActionType) UnmarshalText(text []byte) error {
	t, err := ParseActionType(string(text))
	if err != nil {
		return err
	}
	*a = t
	return nil
}

// ParseActionType parses "fold", "check", "call" or "raise".
func ParseActionType(s string) (ActionType, error) {
	i := slices.Index(actionNames[:], s)
	if i < 0 {
		return 0, fmt.Errorf("unknown action %q", s)
	}
	return ActionType(i), nil
}

// Action is a decision submitted for a seat. Amount is the raise-to total
// for the street and is ignored for other types.
type Action struct {
	Seat   int        `json:"seat"`
	Type   ActionType `json:"type"`
	Amount int        `json:"amount,omitempty"`
}

func (a Action) String() string {
	if a.Type == Raise {
		return fmt.Sprintf("seat %d raise to %d", a.Seat, a.Amount)
	}
	return fmt.Sprintf("seat %d %s", a.Seat, a.Type)
}

// Position labels a seat relative to the dealer button.
type Position string

const (
	Button     Position = "BTN"
	SmallBlind Position = "SB"
	BigBlind   Position = "BB"
	UnderGun   Position = "UTG"
	Hijack     Position = "HJ"
	Cutoff     Position = "CO"
)

// positionRing is walked clockwise starting at the dealer.
var positionRing = [NumSeats]Position{Button, SmallBlind, BigBlind, UnderGun, Hijack, Cutoff}

// positionFor returns the label of seat when dealer holds the button.
func positionFor(seat, dealer int) Position {
	return positionRing[(seat-dealer+NumSeats)%NumSeats]
}

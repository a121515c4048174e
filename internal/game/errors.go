package game

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig marks an invalid table configuration.
	ErrConfig = errors.New("invalid table configuration")

	// ErrIllegalAction marks an action the current state does not allow.
	ErrIllegalAction = errors.New("illegal action")

	// ErrHandComplete is returned for actions after the showdown.
	ErrHandComplete = errors.New("hand is complete")
)

// ConfigError describes why InitHand rejected a configuration.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrConfig }

// IllegalActionError describes a rejected action. The state is unchanged
// when ApplyAction returns one.
type IllegalActionError struct {
	Seat   int
	Action ActionType
	Reason string
}

func (e *IllegalActionError) Error() string {
	return fmt.Sprintf("seat %d cannot %s: %s", e.Seat, e.Action, e.Reason)
}

func (e *IllegalActionError) Unwrap() error { return ErrIllegalAction }

// InvariantError reports broken chip accounting or dealing. The engine
// panics with it: the hand cannot continue and the cause is a bug.
type InvariantError struct {
	HandID int
	Detail string
	Err    error
}

func (e *InvariantError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("hand %d invariant violated: %s: %v", e.HandID, e.Detail, e.Err)
	}
	return fmt.Sprintf("hand %d invariant violated: %s", e.HandID, e.Detail)
}

func (e *InvariantError) Unwrap() error { return e.Err }

func illegal(a Action, format string, args ...any) error {
	return &IllegalActionError{Seat: a.Seat, Action: a.Type, Reason: fmt.Sprintf(format, args...)}
}

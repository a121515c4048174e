package display

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/lox/sixmax/internal/game"
)

// ErrQuit is returned by ParseCommand for quit commands.
var ErrQuit = errors.New("quit")

// Help lists the commands ParseCommand accepts.
const Help = `Commands:
  fold (f)          fold your hand
  check (k)         check when nothing is owed
  call (c)          call the current bet
  raise (r) <amt>   raise to a street total
  allin (a)         put your whole stack in
  quit (q)          leave the table`

// ParseCommand turns a typed command into an action for seat. It does not
// check legality beyond what is needed to pick amounts; ApplyAction has the
// final word.
func ParseCommand(input string, g *game.GameState, seat int) (game.Action, error) {
	fields := strings.Fields(strings.ToLower(input))
	if len(fields) == 0 {
		return game.Action{}, fmt.Errorf("empty command")
	}
	action, args := fields[0], fields[1:]

	switch action {
	case "quit", "q", "exit":
		return game.Action{}, ErrQuit
	case "fold", "f":
		return game.Action{Seat: seat, Type: game.Fold}, nil
	case "check", "k", "ch":
		return game.Action{Seat: seat, Type: game.Check}, nil
	case "call", "c":
		return game.Action{Seat: seat, Type: game.Call}, nil
	case "raise", "r", "bet", "b":
		if len(args) == 0 {
			return game.Action{}, fmt.Errorf("specify raise amount: 'raise <amount>'")
		}
		amount, err := strconv.Atoi(strings.TrimPrefix(args[len(args)-1], "$"))
		if err != nil || amount <= 0 {
			return game.Action{}, fmt.Errorf("invalid amount: %s", args[len(args)-1])
		}
		return game.Action{Seat: seat, Type: game.Raise, Amount: amount}, nil
	case "allin", "all", "a":
		if slices.Contains(g.LegalActions(), game.Raise) {
			_, hi := g.RaiseRange(seat)
			return game.Action{Seat: seat, Type: game.Raise, Amount: hi}, nil
		}
		return game.Action{Seat: seat, Type: game.Call}, nil
	default:
		return game.Action{}, fmt.Errorf("unknown command: %s. Type 'help' for available commands", action)
	}
}

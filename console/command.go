package console

import (
	"fmt"
	"strconv"
	"strings"

	"set-game-server/gameerrors"
)

// CommandKind is what a line of input asks for.
type CommandKind int

const (
	CmdShow CommandKind = iota
	CmdSelect
	CmdDraw
	CmdCheat
	CmdNew
	CmdAuto
	CmdHelp
	CmdQuit
)

// String returns the log name of a CommandKind.
func (k CommandKind) String() string {
	switch k {
	case CmdShow:
		return "show"
	case CmdSelect:
		return "select"
	case CmdDraw:
		return "draw"
	case CmdCheat:
		return "cheat"
	case CmdNew:
		return "new"
	case CmdAuto:
		return "auto"
	case CmdHelp:
		return "help"
	case CmdQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Command is a parsed line of input. Labels are the 1-based board
// positions to tap, in order, for CmdSelect.
type Command struct {
	Kind   CommandKind
	Labels []int
}

var keywords = map[string]CommandKind{
	"d": CmdDraw, "draw": CmdDraw,
	"c": CmdCheat, "cheat": CmdCheat,
	"n": CmdNew, "new": CmdNew,
	"a": CmdAuto, "auto": CmdAuto,
	"h": CmdHelp, "help": CmdHelp, "?": CmdHelp,
	"q": CmdQuit, "quit": CmdQuit, "exit": CmdQuit,
}

const helpText = `commands:
  1 5 9    tap the cards at those positions
  d, draw  deal three more cards
  c, cheat find a set
  n, new   start a new game
  a, auto  let the computer finish the game
  q, quit  leave
`

// ParseCommand parses one line of input. An empty line re-displays the board.
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return Command{Kind: CmdShow}, nil
	}
	if kind, ok := keywords[fields[0]]; ok {
		if len(fields) > 1 {
			return Command{}, fmt.Errorf("%q takes no arguments: %w", fields[0], gameerrors.ErrUnknownCommand)
		}
		return Command{Kind: kind}, nil
	}

	labels := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return Command{}, fmt.Errorf("%q: %w", f, gameerrors.ErrUnknownCommand)
		}
		if n < 1 {
			return Command{}, fmt.Errorf("position %d: %w", n, gameerrors.ErrUnknownLabel)
		}
		labels = append(labels, n)
	}
	return Command{Kind: CmdSelect, Labels: labels}, nil
}

package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"set-game-server/ai"
	"set-game-server/config"
	"set-game-server/game"
	"set-game-server/gameerrors"
)

// Session is what the console needs from a game session.
type Session interface {
	Select(ctx context.Context, cardID int) (game.GameStateMsg, error)
	DrawMoreCards(ctx context.Context) (game.GameStateMsg, error)
	Cheat(ctx context.Context) (bool, game.GameStateMsg, error)
	NewGame(ctx context.Context) (game.GameStateMsg, error)
	Snapshot(ctx context.Context) (game.GameStateMsg, error)
}

// Console plays a session from line-oriented input.
type Console struct {
	// AI configures the auto command; nil disables it.
	AI *config.AIParams

	sess     Session
	in       *bufio.Scanner
	out      io.Writer
	useColor bool
	state    game.GameStateMsg
}

// New creates a Console reading commands from in and writing the board to out.
func New(sess Session, in io.Reader, out io.Writer, useColor bool) *Console {
	return &Console{
		sess:     sess,
		in:       bufio.NewScanner(in),
		out:      out,
		useColor: useColor,
	}
}

// Run shows the board and processes commands until quit, end of input, or
// ctx is cancelled. Invalid input is reported and does not stop the loop.
// Cancellation is noticed while waiting for input.
func (c *Console) Run(ctx context.Context) error {
	state, err := c.sess.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	c.state = state
	Render(c.out, c.state, c.useColor)

	done := make(chan struct{})
	defer close(done)
	lines, scanErr := c.readLines(done)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(c.out, "> ")

		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(c.out)
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				fmt.Fprintln(c.out)
				return *scanErr
			}
			line = l
		}

		cmd, err := ParseCommand(line)
		if err != nil {
			fmt.Fprintf(c.out, "error: %v (h for help)\n", err)
			continue
		}
		if cmd.Kind == CmdQuit {
			return nil
		}
		if err := c.execute(ctx, cmd); err != nil {
			if errors.Is(err, gameerrors.ErrSessionClosed) || errors.Is(err, context.Canceled) {
				return err
			}
			fmt.Fprintf(c.out, "error: %v\n", err)
			continue
		}
	}
}

// readLines scans input on its own goroutine. The channel is closed at end of
// input, after the scan error has been stored. A read already blocked when
// done closes is abandoned.
func (c *Console) readLines(done <-chan struct{}) (<-chan string, *error) {
	lines := make(chan string)
	scanErr := new(error)
	go func() {
		defer close(lines)
		for c.in.Scan() {
			select {
			case lines <- c.in.Text():
			case <-done:
				return
			}
		}
		*scanErr = c.in.Err()
	}()
	return lines, scanErr
}

func (c *Console) execute(ctx context.Context, cmd Command) error {
	slog.Debug("command", "tag", "console", "cmd", cmd.Kind.String(), "labels", cmd.Labels)

	var (
		state game.GameStateMsg
		err   error
	)
	switch cmd.Kind {
	case CmdHelp:
		fmt.Fprint(c.out, helpText)
		return nil
	case CmdShow:
		state, err = c.sess.Snapshot(ctx)
	case CmdDraw:
		if !c.state.CanDraw {
			fmt.Fprintln(c.out, "The deck is empty.")
		}
		state, err = c.sess.DrawMoreCards(ctx)
	case CmdCheat:
		state, err = c.cheat(ctx)
	case CmdNew:
		state, err = c.sess.NewGame(ctx)
	case CmdAuto:
		state, err = c.auto(ctx)
	case CmdSelect:
		state, err = c.selectLabels(ctx, cmd.Labels)
	default:
		return fmt.Errorf("%v: %w", cmd.Kind, gameerrors.ErrUnknownCommand)
	}
	if err != nil {
		return err
	}
	c.state = state
	Render(c.out, c.state, c.useColor)
	return nil
}

func (c *Console) cheat(ctx context.Context) (game.GameStateMsg, error) {
	if !c.state.CanCheat {
		fmt.Fprintln(c.out, "Cheat is disabled: no sets remain.")
		return c.state, nil
	}
	_, state, err := c.sess.Cheat(ctx)
	return state, err
}

func (c *Console) auto(ctx context.Context) (game.GameStateMsg, error) {
	if c.AI == nil {
		fmt.Fprintln(c.out, "Autoplay is not configured.")
		return c.state, nil
	}
	res, err := ai.Run(ctx, c.sess, c.AI, func(state game.GameStateMsg) {
		Render(c.out, state, c.useColor)
	})
	if err != nil {
		return game.GameStateMsg{}, err
	}
	fmt.Fprintf(c.out, "%s found %d sets and drew %d times.\n", c.AI.Name, res.Sets, res.Draws)
	return c.sess.Snapshot(ctx)
}

// selectLabels resolves every label against the board as displayed, then
// taps the cards in order.
func (c *Console) selectLabels(ctx context.Context, labels []int) (game.GameStateMsg, error) {
	ids := make([]int, 0, len(labels))
	for _, l := range labels {
		if l < 1 || l > len(c.state.Cards) {
			return game.GameStateMsg{}, fmt.Errorf("position %d: %w", l, gameerrors.ErrUnknownLabel)
		}
		ids = append(ids, c.state.Cards[l-1].ID)
	}

	state := c.state
	for _, id := range ids {
		var err error
		state, err = c.sess.Select(ctx, id)
		if err != nil {
			return game.GameStateMsg{}, err
		}
	}
	return state, nil
}

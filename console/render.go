package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/wsxiaoys/terminal/color"
	"set-game-server/game"
)

const columns = 3

var colorCodes = map[string]string{
	"red":    "@r",
	"green":  "@g",
	"purple": "@m",
}

// symbols[shape][shading]
var symbols = map[string]map[string]string{
	"squiggle": {"open": "□", "striped": "▣", "solid": "■"},
	"oval":     {"open": "○", "striped": "◉", "solid": "●"},
	"diamond":  {"open": "◇", "striped": "◈", "solid": "◆"},
}

func symbolsFor(c game.CardView) string {
	sym := symbols[c.Shape][c.Shading]
	if sym == "" {
		sym = "?"
	}
	if c.Number >= 1 && c.Number <= 3 {
		return strings.Repeat(sym, c.Number) + strings.Repeat(" ", 3-c.Number)
	}
	return fmt.Sprintf("%d%s", c.Number, sym)
}

func cardLabel(pos int, c game.CardView, selected bool, useColor bool) string {
	mark := " "
	switch {
	case c.Matched:
		mark = "!"
	case selected:
		mark = "*"
	}
	body := symbolsFor(c)
	if code, ok := colorCodes[c.Color]; ok && useColor {
		body = color.Sprint(code + body + "@|")
	}
	return fmt.Sprintf("%2d.%s[%s]", pos, mark, body)
}

// Render writes the board, status line and selection outcome for state.
func Render(w io.Writer, state game.GameStateMsg, useColor bool) {
	selected := make(map[int]bool, len(state.SelectedIDs))
	for _, id := range state.SelectedIDs {
		selected[id] = true
	}

	fmt.Fprintf(w, "dealt %d/%d  sets in play %d  discarded %d\n",
		state.CardsDealt, state.DeckSize, state.MatchesInPlay, len(state.Discarded))
	for i, c := range state.Cards {
		fmt.Fprint(w, cardLabel(i+1, c, selected[c.ID], useColor))
		if (i+1)%columns == 0 || i == len(state.Cards)-1 {
			fmt.Fprintln(w)
		} else {
			fmt.Fprint(w, "  ")
		}
	}

	switch state.Phase {
	case "match":
		fmt.Fprintln(w, "Set!")
	case "mismatch":
		fmt.Fprintln(w, "Not a set.")
	}
	if !state.CanCheat {
		fmt.Fprintln(w, "No sets left.")
	}
	if state.Over {
		fmt.Fprintf(w, "Game over: %d found, %d revealed.\n", state.Stats.Matches, state.Stats.Cheats)
	}
}

package game

// CardView is the client-facing representation of a card.
type CardView struct {
	ID      int    `json:"id"`
	Shape   string `json:"shape"`
	Color   string `json:"color"`
	Number  int    `json:"number"`
	Shading string `json:"shading"`
	Matched bool   `json:"matched"`
	Hidden  bool   `json:"hidden,omitempty"`
}

// StatsView is the client-facing match counters.
type StatsView struct {
	Matches int `json:"matches"`
	Cheats  int `json:"cheats"`
}

// GameStateMsg is the full game state handed to a presentation layer.
// Cards holds only cards in play; SelectedIDs refers to card IDs.
type GameStateMsg struct {
	Type          string     `json:"type"`
	SessionID     string     `json:"sessionId,omitempty"`
	Cards         []CardView `json:"cards"`
	SelectedIDs   []int      `json:"selectedIds"`
	Discarded     []CardView `json:"discarded"`
	Phase         string     `json:"phase"`
	CardsDealt    int        `json:"cardsDealt"`
	DeckSize      int        `json:"deckSize"`
	CanDraw       bool       `json:"canDraw"`
	CanCheat      bool       `json:"canCheat"`
	MatchesInPlay int        `json:"matchesInPlay"`
	Over          bool       `json:"over"`
	Stats         StatsView  `json:"stats"`
}

// BuildCardView converts a Card to its client view.
func BuildCardView(c Card) CardView {
	return CardView{
		ID:      c.ID,
		Shape:   c.Shape.String(),
		Color:   c.Color.String(),
		Number:  c.Number,
		Shading: c.Shading.String(),
		Matched: c.IsMatched,
		Hidden:  c.IsHidden,
	}
}

// BuildCardViews converts a card list to client views, preserving order.
func BuildCardViews(cards []Card) []CardView {
	views := make([]CardView, len(cards))
	for i, c := range cards {
		views[i] = BuildCardView(c)
	}
	return views
}

// BuildStateMsg returns a consistent snapshot of g for a presentation layer.
func BuildStateMsg(g *Game) GameStateMsg {
	selected := g.SelectedCards()
	ids := make([]int, len(selected))
	for i, c := range selected {
		ids[i] = c.ID
	}
	stats := g.Stats()
	return GameStateMsg{
		Type:          "game_state",
		Cards:         BuildCardViews(g.CardsInPlay()),
		SelectedIDs:   ids,
		Discarded:     BuildCardViews(g.Discarded()),
		Phase:         g.Phase().String(),
		CardsDealt:    g.CardsDealt(),
		DeckSize:      g.DeckSize(),
		CanDraw:       g.CanDraw(),
		CanCheat:      g.CanCheat(),
		MatchesInPlay: g.MatchesInPlay(),
		Over:          g.IsOver(),
		Stats:         StatsView{Matches: stats.Matches, Cheats: stats.Cheats},
	}
}

package game

import (
	"math/rand"
	"time"
)

const (
	// InitialDeal is the number of cards in play when a game starts.
	InitialDeal = 12
	// DealBatch is how many cards DrawMoreCards adds.
	DealBatch = 3
	// SelectionSize is the number of cards that make up a candidate set.
	SelectionSize = 3
)

// SelectionPhase describes where the current selection stands.
// It is derived from the selection on demand, never stored.
type SelectionPhase int

const (
	PhaseEmpty SelectionPhase = iota
	PhasePicking
	PhaseMatch
	PhaseMismatch
)

// String returns the protocol string for a SelectionPhase.
func (p SelectionPhase) String() string {
	switch p {
	case PhaseEmpty:
		return "empty"
	case PhasePicking:
		return "picking"
	case PhaseMatch:
		return "match"
	case PhaseMismatch:
		return "mismatch"
	default:
		return "unknown"
	}
}

// Stats counts how matches were found during a game.
type Stats struct {
	Matches int // made by the player through Select
	Cheats  int // revealed by Cheat
}

// Option configures a Game at construction.
type Option func(*Game)

// WithRand makes NewGame shuffle with rng instead of a time-seeded source.
func WithRand(rng *rand.Rand) Option {
	return func(g *Game) { g.rng = rng }
}

// Game is the state of one Set game. It is not safe for concurrent use;
// hosts that share a Game across goroutines go through session.Session.
type Game struct {
	cards      []Card
	byID       map[int]int // card ID -> index in cards
	cardsDealt int
	selected   []int // indices into cards, in selection order
	discarded  []int // indices into cards, in discard order
	canCheat   bool
	stats      Stats
	rng        *rand.Rand
}

// NewGame builds and shuffles a deck from spec and deals the opening cards.
// An empty characteristic set yields a valid game with no cards.
func NewGame(spec DeckSpec, opts ...Option) *Game {
	g := &Game{canCheat: true}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	cards := NewDeck(spec)
	ShuffleDeck(cards, g.rng)
	g.reset(cards)
	return g
}

// newGameFromCards builds a game over cards in the given order, unshuffled.
func newGameFromCards(cards []Card) *Game {
	g := &Game{canCheat: true}
	g.reset(cards)
	return g
}

func (g *Game) reset(cards []Card) {
	g.cards = cards
	g.byID = make(map[int]int, len(cards))
	for i, c := range cards {
		g.byID[c.ID] = i
	}
	g.cardsDealt = min(InitialDeal, len(cards))
	g.selected = make([]int, 0, SelectionSize)
	g.discarded = nil
}

// Select applies a player's tap on the card with the given ID.
//
// With three cards already selected the tap first resolves that triple: a
// match is discarded, the selection is cleared, and the tapped card starts a
// new selection unless it was part of the match. Otherwise the tap toggles
// the card in or out of the selection, and completing a matching triple marks
// its cards matched. Availability is not rechecked when adding; callers are
// expected to only offer cards in play. A set only counts towards
// Stats.Matches when at least one of its cards was still available. Unknown
// IDs are ignored.
func (g *Game) Select(id int) {
	idx, ok := g.byID[id]
	if !ok {
		return
	}

	if len(g.selected) >= SelectionSize {
		if g.selectionIsMatch() {
			g.discardSelected()
		}
		g.selected = g.selected[:0]
		if !g.cards[idx].IsMatched {
			g.selected = append(g.selected, idx)
		}
		return
	}

	if pos := g.selectedPos(idx); pos >= 0 {
		g.selected = append(g.selected[:pos], g.selected[pos+1:]...)
		return
	}

	g.selected = append(g.selected, idx)
	if g.selectionIsMatch() {
		if g.selectionHasAvailable() {
			g.stats.Matches++
		}
		g.markSelectedMatched()
	}
}

// DrawMoreCards discards a completed match, if any, then deals up to
// DealBatch more cards. cardsDealt never exceeds the deck size.
func (g *Game) DrawMoreCards() {
	g.discardMatchedSelection()
	if g.cardsDealt < len(g.cards) {
		g.cardsDealt = min(g.cardsDealt+DealBatch, len(g.cards))
	}
}

func (g *Game) discardMatchedSelection() {
	if g.selectionIsMatch() {
		g.discardSelected()
		g.selected = g.selected[:0]
	}
}

// selectionIsMatch reports whether exactly three cards are selected and they
// form a set.
func (g *Game) selectionIsMatch() bool {
	if len(g.selected) != SelectionSize {
		return false
	}
	return IsMatch(g.cards[g.selected[0]], g.cards[g.selected[1]], g.cards[g.selected[2]])
}

func (g *Game) selectionHasAvailable() bool {
	for _, idx := range g.selected {
		if g.cards[idx].IsAvailable() {
			return true
		}
	}
	return false
}

// selectionAllDiscarded reports whether every selected card has already left
// the board.
func (g *Game) selectionAllDiscarded() bool {
	for _, idx := range g.selected {
		if !g.cards[idx].IsHidden {
			return false
		}
	}
	return len(g.selected) > 0
}

func (g *Game) markSelectedMatched() {
	for _, idx := range g.selected {
		g.cards[idx].IsMatched = true
	}
}

// discardSelected hides the selected cards and appends them to the discard
// pile. A card already hidden is not appended twice.
func (g *Game) discardSelected() {
	for _, idx := range g.selected {
		if g.cards[idx].IsHidden {
			continue
		}
		g.cards[idx].IsHidden = true
		g.discarded = append(g.discarded, idx)
	}
}

func (g *Game) selectedPos(idx int) int {
	for pos, s := range g.selected {
		if s == idx {
			return pos
		}
	}
	return -1
}

// Phase returns the state of the current selection. A set made only of
// discarded cards is reported as a mismatch.
func (g *Game) Phase() SelectionPhase {
	switch {
	case len(g.selected) == 0:
		return PhaseEmpty
	case len(g.selected) < SelectionSize:
		return PhasePicking
	case g.selectionIsMatch() && !g.selectionAllDiscarded():
		return PhaseMatch
	default:
		return PhaseMismatch
	}
}

// AllCards returns a copy of the whole deck in dealing order.
func (g *Game) AllCards() []Card {
	out := make([]Card, len(g.cards))
	copy(out, g.cards)
	return out
}

// CardsInPlay returns the dealt cards that have not been discarded.
func (g *Game) CardsInPlay() []Card {
	out := make([]Card, 0, g.cardsDealt)
	for _, c := range g.cards[:g.cardsDealt] {
		if !c.IsHidden {
			out = append(out, c)
		}
	}
	return out
}

// SelectedCards returns the selected cards in selection order.
func (g *Game) SelectedCards() []Card {
	out := make([]Card, len(g.selected))
	for i, idx := range g.selected {
		out[i] = g.cards[idx]
	}
	return out
}

// Discarded returns discarded cards in the order they were discarded.
func (g *Game) Discarded() []Card {
	out := make([]Card, len(g.discarded))
	for i, idx := range g.discarded {
		out[i] = g.cards[idx]
	}
	return out
}

// Card returns the card with the given ID.
func (g *Game) Card(id int) (Card, bool) {
	idx, ok := g.byID[id]
	if !ok {
		return Card{}, false
	}
	return g.cards[idx], true
}

// CardsDealt returns how many cards from the front of the deck have been dealt.
func (g *Game) CardsDealt() int { return g.cardsDealt }

// DeckSize returns the total number of cards in the game.
func (g *Game) DeckSize() int { return len(g.cards) }

// CanDraw reports whether undealt cards remain.
func (g *Game) CanDraw() bool { return g.cardsDealt < len(g.cards) }

// CanCheat reports the outcome of the last Cheat; true before the first one.
func (g *Game) CanCheat() bool { return g.canCheat }

// Stats returns match counters for this game.
func (g *Game) Stats() Stats { return g.stats }

// MatchesInPlay counts the sets available among the dealt cards.
func (g *Game) MatchesInPlay() int {
	return CountMatches(g.cards[:g.cardsDealt])
}

// IsOver reports whether no set can be made any more: every card is dealt
// and no available triple in play matches.
func (g *Game) IsOver() bool {
	return !g.CanDraw() && g.MatchesInPlay() == 0
}

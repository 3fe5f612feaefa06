package game

// findMatch returns the first matching triple of available dealt cards, in
// index order (lowest i, then j, then k).
func (g *Game) findMatch() ([SelectionSize]int, bool) {
	var found [SelectionSize]int
	ok := false
	eachTriple(g.cardsDealt, func(i, j, k int) bool {
		a, b, c := g.cards[i], g.cards[j], g.cards[k]
		if !a.IsAvailable() || !b.IsAvailable() || !c.IsAvailable() {
			return true
		}
		if IsMatch(a, b, c) {
			found = [SelectionSize]int{i, j, k}
			ok = true
			return false
		}
		return true
	})
	return found, ok
}

// Cheat looks for a set among the cards in play, dealing more cards while
// none is found and the deck is not exhausted. A found set replaces the
// current selection and is marked matched. Cheat returns false when no set
// exists anywhere in the remaining deck; CanCheat reflects the result.
//
// The scan is O(n^3) in the number of dealt cards, which is fine for decks
// of a few dozen cards.
func (g *Game) Cheat() bool {
	g.discardMatchedSelection()
	for {
		if triple, ok := g.findMatch(); ok {
			g.selected = append(g.selected[:0], triple[:]...)
			g.markSelectedMatched()
			g.stats.Cheats++
			g.canCheat = true
			return true
		}
		if !g.CanDraw() {
			g.canCheat = false
			return false
		}
		g.DrawMoreCards()
	}
}

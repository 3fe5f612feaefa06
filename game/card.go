package game

import (
	"fmt"
	"math/rand"
	"strings"

	"set-game-server/gameerrors"
)

// Shape is the symbol drawn on a card.
type Shape uint8

const (
	Diamond Shape = iota
	Squiggle
	Oval
)

// String returns the lowercase name of a Shape.
func (s Shape) String() string {
	switch s {
	case Diamond:
		return "diamond"
	case Squiggle:
		return "squiggle"
	case Oval:
		return "oval"
	default:
		return "unknown"
	}
}

// Color is the ink colour of a card's symbols.
type Color uint8

const (
	Red Color = iota
	Green
	Purple
)

// String returns the lowercase name of a Color.
func (c Color) String() string {
	switch c {
	case Red:
		return "red"
	case Green:
		return "green"
	case Purple:
		return "purple"
	default:
		return "unknown"
	}
}

// Shading is the fill of a card's symbols.
type Shading uint8

const (
	Solid Shading = iota
	Striped
	Open
)

// String returns the lowercase name of a Shading.
func (s Shading) String() string {
	switch s {
	case Solid:
		return "solid"
	case Striped:
		return "striped"
	case Open:
		return "open"
	default:
		return "unknown"
	}
}

// ParseShape returns the Shape named by s (case-insensitive).
func ParseShape(s string) (Shape, error) {
	for _, v := range []Shape{Diamond, Squiggle, Oval} {
		if strings.EqualFold(strings.TrimSpace(s), v.String()) {
			return v, nil
		}
	}
	return 0, fmt.Errorf("shape %q: %w", s, gameerrors.ErrUnknownCharacteristic)
}

// ParseColor returns the Color named by s (case-insensitive).
func ParseColor(s string) (Color, error) {
	for _, v := range []Color{Red, Green, Purple} {
		if strings.EqualFold(strings.TrimSpace(s), v.String()) {
			return v, nil
		}
	}
	return 0, fmt.Errorf("color %q: %w", s, gameerrors.ErrUnknownCharacteristic)
}

// ParseShading returns the Shading named by s (case-insensitive).
func ParseShading(s string) (Shading, error) {
	for _, v := range []Shading{Solid, Striped, Open} {
		if strings.EqualFold(strings.TrimSpace(s), v.String()) {
			return v, nil
		}
	}
	return 0, fmt.Errorf("shading %q: %w", s, gameerrors.ErrUnknownCharacteristic)
}

// Card is a single card of the deck. ID is its identity; the four
// characteristics never change once the deck is built.
type Card struct {
	ID        int
	Shape     Shape
	Color     Color
	Number    int
	Shading   Shading
	IsMatched bool
	IsHidden  bool
}

// IsAvailable reports whether the card can still take part in a match.
func (c Card) IsAvailable() bool {
	return !c.IsMatched && !c.IsHidden
}

// SameAs reports whether c and other carry the same four characteristics.
// Identity (ID) and the matched/hidden flags are ignored.
func (c Card) SameAs(other Card) bool {
	return c.Shape == other.Shape &&
		c.Color == other.Color &&
		c.Number == other.Number &&
		c.Shading == other.Shading
}

// String returns a short human description, e.g. "2 red striped diamond".
func (c Card) String() string {
	return fmt.Sprintf("%d %s %s %s", c.Number, c.Color, c.Shading, c.Shape)
}

// DeckSpec holds the four characteristic sets a deck is generated from.
type DeckSpec struct {
	Shapes   []Shape
	Colors   []Color
	Numbers  []int
	Shadings []Shading
}

// StandardDeckSpec returns the classic 3x3x3x3 spec (81 cards).
func StandardDeckSpec() DeckSpec {
	return DeckSpec{
		Shapes:   []Shape{Diamond, Squiggle, Oval},
		Colors:   []Color{Red, Green, Purple},
		Numbers:  []int{1, 2, 3},
		Shadings: []Shading{Solid, Striped, Open},
	}
}

// ParseDeckSpec builds a DeckSpec from characteristic names, as found in config.
func ParseDeckSpec(shapes, colors []string, numbers []int, shadings []string) (DeckSpec, error) {
	var spec DeckSpec
	for _, s := range shapes {
		v, err := ParseShape(s)
		if err != nil {
			return DeckSpec{}, err
		}
		spec.Shapes = append(spec.Shapes, v)
	}
	for _, s := range colors {
		v, err := ParseColor(s)
		if err != nil {
			return DeckSpec{}, err
		}
		spec.Colors = append(spec.Colors, v)
	}
	spec.Numbers = append(spec.Numbers, numbers...)
	for _, s := range shadings {
		v, err := ParseShading(s)
		if err != nil {
			return DeckSpec{}, err
		}
		spec.Shadings = append(spec.Shadings, v)
	}
	return spec, nil
}

// Size returns the number of cards NewDeck will produce for this spec.
func (s DeckSpec) Size() int {
	return len(unique(s.Shapes)) * len(unique(s.Colors)) * len(unique(s.Numbers)) * len(unique(s.Shadings))
}

// NewDeck returns one card per combination of the spec's characteristics,
// in generation order. Duplicate values in a set are ignored. IDs are
// 0..n-1 in generation order.
func NewDeck(spec DeckSpec) []Card {
	shapes := unique(spec.Shapes)
	colors := unique(spec.Colors)
	numbers := unique(spec.Numbers)
	shadings := unique(spec.Shadings)

	cards := make([]Card, 0, len(shapes)*len(colors)*len(numbers)*len(shadings))
	for _, shape := range shapes {
		for _, color := range colors {
			for _, number := range numbers {
				for _, shading := range shadings {
					cards = append(cards, Card{
						ID:      len(cards),
						Shape:   shape,
						Color:   color,
						Number:  number,
						Shading: shading,
					})
				}
			}
		}
	}
	return cards
}

// ShuffleDeck randomizes the order of cards in place.
func ShuffleDeck(cards []Card, rng *rand.Rand) {
	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}

func unique[T comparable](values []T) []T {
	seen := make(map[T]struct{}, len(values))
	out := make([]T, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

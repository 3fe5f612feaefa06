package game

import (
	"errors"
	"math/rand"
	"testing"

	"set-game-server/gameerrors"
)

type traits struct {
	shape   Shape
	color   Color
	number  int
	shading Shading
}

func traitsOf(c Card) traits {
	return traits{c.Shape, c.Color, c.Number, c.Shading}
}

func TestNewDeckStandard(t *testing.T) {
	cards := NewDeck(StandardDeckSpec())

	if len(cards) != 81 {
		t.Fatalf("expected 81 cards, got %d", len(cards))
	}

	seenIDs := make(map[int]bool)
	seenTraits := make(map[traits]bool)
	for i, c := range cards {
		if c.ID != i {
			t.Errorf("expected card[%d].ID=%d, got %d", i, i, c.ID)
		}
		if seenIDs[c.ID] {
			t.Errorf("duplicate ID %d", c.ID)
		}
		seenIDs[c.ID] = true
		if seenTraits[traitsOf(c)] {
			t.Errorf("duplicate characteristics %v", c)
		}
		seenTraits[traitsOf(c)] = true
		if !c.IsAvailable() {
			t.Errorf("card %d should start available", c.ID)
		}
	}
}

func TestNewDeckSizes(t *testing.T) {
	tests := []struct {
		name string
		spec DeckSpec
		want int
	}{
		{"standard", StandardDeckSpec(), 81},
		{"one value each", DeckSpec{[]Shape{Oval}, []Color{Red}, []int{1}, []Shading{Open}}, 1},
		{"two by three", DeckSpec{[]Shape{Oval, Diamond}, []Color{Red, Green, Purple}, []int{1}, []Shading{Open}}, 6},
		{"wide numbers", DeckSpec{[]Shape{Oval}, []Color{Red}, []int{1, 2, 3, 4, 5}, []Shading{Open, Solid}}, 10},
		{"empty shapes", DeckSpec{nil, []Color{Red}, []int{1}, []Shading{Open}}, 0},
		{"empty spec", DeckSpec{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cards := NewDeck(tt.spec)
			if len(cards) != tt.want {
				t.Errorf("expected %d cards, got %d", tt.want, len(cards))
			}
			if tt.spec.Size() != tt.want {
				t.Errorf("expected Size()=%d, got %d", tt.want, tt.spec.Size())
			}
			seen := make(map[traits]bool)
			for _, c := range cards {
				if seen[traitsOf(c)] {
					t.Errorf("duplicate characteristics %v", c)
				}
				seen[traitsOf(c)] = true
			}
		})
	}
}

func TestNewDeckIgnoresDuplicateValues(t *testing.T) {
	spec := DeckSpec{
		Shapes:   []Shape{Oval, Oval, Diamond},
		Colors:   []Color{Red, Red},
		Numbers:  []int{1, 1, 1},
		Shadings: []Shading{Open},
	}
	if got := len(NewDeck(spec)); got != 2 {
		t.Errorf("expected 2 cards, got %d", got)
	}
}

func TestShuffleDeckKeepsCards(t *testing.T) {
	cards := NewDeck(StandardDeckSpec())
	ShuffleDeck(cards, rand.New(rand.NewSource(42)))

	if len(cards) != 81 {
		t.Fatalf("expected 81 cards after shuffle, got %d", len(cards))
	}
	ids := make(map[int]bool)
	for _, c := range cards {
		ids[c.ID] = true
	}
	if len(ids) != 81 {
		t.Errorf("expected 81 distinct IDs after shuffle, got %d", len(ids))
	}

	moved := false
	for i, c := range cards {
		if c.ID != i {
			moved = true
			break
		}
	}
	if !moved {
		t.Error("shuffle left the deck in generation order")
	}
}

func TestSameAsIgnoresIdentityAndFlags(t *testing.T) {
	a := Card{ID: 1, Shape: Oval, Color: Green, Number: 2, Shading: Striped}
	b := Card{ID: 9, Shape: Oval, Color: Green, Number: 2, Shading: Striped, IsMatched: true, IsHidden: true}
	if !a.SameAs(b) {
		t.Error("cards with equal characteristics should be SameAs")
	}
	b.Number = 3
	if a.SameAs(b) {
		t.Error("cards with different numbers should not be SameAs")
	}
}

func TestIsAvailable(t *testing.T) {
	tests := []struct {
		matched, hidden, want bool
	}{
		{false, false, true},
		{true, false, false},
		{false, true, false},
		{true, true, false},
	}
	for _, tt := range tests {
		c := Card{IsMatched: tt.matched, IsHidden: tt.hidden}
		if got := c.IsAvailable(); got != tt.want {
			t.Errorf("IsAvailable(matched=%v, hidden=%v) = %v, want %v", tt.matched, tt.hidden, got, tt.want)
		}
	}
}

func TestCharacteristicStrings(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{Diamond.String(), "diamond"},
		{Squiggle.String(), "squiggle"},
		{Oval.String(), "oval"},
		{Shape(9).String(), "unknown"},
		{Red.String(), "red"},
		{Green.String(), "green"},
		{Purple.String(), "purple"},
		{Solid.String(), "solid"},
		{Striped.String(), "striped"},
		{Open.String(), "open"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}

	c := Card{Shape: Squiggle, Color: Purple, Number: 2, Shading: Open}
	if got := c.String(); got != "2 purple open squiggle" {
		t.Errorf("Card.String() = %q", got)
	}
}

func TestParseDeckSpec(t *testing.T) {
	spec, err := ParseDeckSpec([]string{"Diamond", " oval "}, []string{"RED"}, []int{1, 2}, []string{"striped"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(spec.Shapes) != 2 || spec.Shapes[0] != Diamond || spec.Shapes[1] != Oval {
		t.Errorf("unexpected shapes %v", spec.Shapes)
	}
	if len(spec.Colors) != 1 || spec.Colors[0] != Red {
		t.Errorf("unexpected colors %v", spec.Colors)
	}
	if spec.Size() != 4 {
		t.Errorf("expected Size()=4, got %d", spec.Size())
	}

	for _, bad := range [][]string{{"circle"}, {""}} {
		_, err := ParseDeckSpec(bad, nil, nil, nil)
		if !errors.Is(err, gameerrors.ErrUnknownCharacteristic) {
			t.Errorf("ParseDeckSpec(%q): expected ErrUnknownCharacteristic, got %v", bad, err)
		}
	}
	if _, err := ParseDeckSpec(nil, []string{"blue"}, nil, nil); !errors.Is(err, gameerrors.ErrUnknownCharacteristic) {
		t.Errorf("expected ErrUnknownCharacteristic for color, got %v", err)
	}
	if _, err := ParseDeckSpec(nil, nil, nil, []string{"dotted"}); !errors.Is(err, gameerrors.ErrUnknownCharacteristic) {
		t.Errorf("expected ErrUnknownCharacteristic for shading, got %v", err)
	}
}

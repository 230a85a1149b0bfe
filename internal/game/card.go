package game

import (
	"errors"
	"math/rand"

	"github.com/google/uuid"
)

// Color is the display bucket a card value falls into.
type Color string

const (
	ColorIndigo Color = "indigo"
	ColorBlue   Color = "blue"
	ColorCyan   Color = "cyan"
	ColorGreen  Color = "green"
	ColorYellow Color = "yellow"
	ColorOrange Color = "orange"
	ColorRed    Color = "red"
)

// ColorFor maps a card value to its color bucket. Values outside [-2,12]
// never occur in a well-formed deck.
func ColorFor(value int) Color {
	switch {
	case value == -2:
		return ColorIndigo
	case value == -1:
		return ColorBlue
	case value == 0:
		return ColorCyan
	case value <= 4:
		return ColorGreen
	case value <= 8:
		return ColorYellow
	case value <= 11:
		return ColorOrange
	default:
		return ColorRed
	}
}

// Card is a single Skyjo card. Value and Color are fixed at creation;
// only Revealed changes over a card's lifetime.
type Card struct {
	ID       string `json:"id"`
	Value    int    `json:"value"`
	Color    Color  `json:"color"`
	Revealed bool   `json:"isRevealed"`
}

// DeckSize is the number of cards in a full Skyjo deck.
const DeckSize = 150

// deckCounts is the fixed per-value distribution of the 150-card deck.
var deckCounts = map[int]int{-2: 5, -1: 10, 0: 15}

func init() {
	for v := 1; v <= 12; v++ {
		deckCounts[v] = 10
	}
}

// NewDeck returns the full 150-card deck in value order, unshuffled.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for v := -2; v <= 12; v++ {
		for i := 0; i < deckCounts[v]; i++ {
			deck = append(deck, Card{
				ID:    uuid.NewString(),
				Value: v,
				Color: ColorFor(v),
			})
		}
	}
	return deck
}

// Shuffle returns a uniformly shuffled copy of the given deck. The input
// is never mutated. A nil rng falls back to a time-seeded source.
func Shuffle(deck []Card, rng *rand.Rand) []Card {
	if rng == nil {
		rng = newRng()
	}
	out := make([]Card, len(deck))
	copy(out, deck)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// Deal shuffles the deck and slices one 12-card hand per player in
// dealing order; the remainder becomes the draw pile. The player count
// must leave at least one card for the discard pile.
func Deal(deck []Card, playerCount int, rng *rand.Rand) (hands [][]Card, drawPile []Card, err error) {
	if playerCount*HandSize+1 > len(deck) {
		return nil, nil, errors.New("not enough cards for that many players")
	}
	shuffled := Shuffle(deck, rng)
	hands = make([][]Card, playerCount)
	for i := 0; i < playerCount; i++ {
		hand := make([]Card, HandSize)
		copy(hand, shuffled[i*HandSize:(i+1)*HandSize])
		hands[i] = hand
	}
	drawPile = append([]Card(nil), shuffled[playerCount*HandSize:]...)
	return hands, drawPile, nil
}

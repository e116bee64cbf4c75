package game

import (
	"fmt"

	"github.com/pyramid-live/pyramid/internal/models"
)

// PyramidSize is the number of cards in the pyramid spread.
const PyramidSize = 15

// PyramidSlot is one position in the 15-card spread. Shown flips false->true
// exactly once, when the host reveals the card.
type PyramidSlot struct {
	Card  models.Card `json:"card"`
	Shown bool        `json:"shown"`
}

// RowOf maps a flat pyramid index to its row. Rows 1-5 hold 5, 4, 3, 2 and 1
// cards (indexes 0-4, 5-8, 9-11, 12-13, 14); the row doubles as the drink
// multiplier for the round. Out-of-range indexes are a programming error.
func RowOf(index int) int {
	switch {
	case index >= 0 && index <= 4:
		return 1
	case index <= 8:
		return 2
	case index <= 11:
		return 3
	case index <= 13:
		return 4
	case index == 14:
		return 5
	default:
		panic(fmt.Sprintf("game: pyramid index %d out of range", index))
	}
}

// positions holds fixed display coordinates for each pyramid slot, centered
// per row on a 110x130 card grid.
var positions = [PyramidSize][2]int{
	{0, 0}, {110, 0}, {220, 0}, {330, 0}, {440, 0},
	{55, 130}, {165, 130}, {275, 130}, {385, 130},
	{110, 260}, {220, 260}, {330, 260},
	{165, 390}, {275, 390},
	{220, 520},
}

// PositionOf returns the (x, y) display coordinate for a pyramid index.
func PositionOf(index int) (int, int) {
	if index < 0 || index >= PyramidSize {
		panic(fmt.Sprintf("game: pyramid index %d out of range", index))
	}
	return positions[index][0], positions[index][1]
}

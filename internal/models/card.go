package models

import "fmt"

// Suit is one of the four french suits.
type Suit string

const (
	SuitHearts   Suit = "hearts"
	SuitDiamonds Suit = "diamonds"
	SuitClubs    Suit = "clubs"
	SuitSpades   Suit = "spades"
)

var suits = [4]Suit{SuitHearts, SuitDiamonds, SuitClubs, SuitSpades}

// Card is a single card from the 52-card deck. Index (0-51) is its identity;
// Rank (1-13, ace low) and Suit are derived from it and never change.
type Card struct {
	Index int  `json:"i"`
	Rank  int  `json:"rank"`
	Suit  Suit `json:"suit"`
}

// NewCard derives a Card from its deck index. Panics on an out-of-range
// index; callers only ever produce indexes from the fixed 0-51 range.
func NewCard(index int) Card {
	if index < 0 || index > 51 {
		panic(fmt.Sprintf("models: card index %d out of range", index))
	}
	return Card{
		Index: index,
		Rank:  index%13 + 1,
		Suit:  suits[index/13],
	}
}

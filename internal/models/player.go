package models

import (
	"github.com/coder/websocket"
	"github.com/google/uuid"
)

// HandSize is the number of cards dealt to each player at game start.
const HandSize = 4

// Player is one participant in a room. Hand and Seen are parallel: Seen[i]
// records whether the player has peeked at Hand[i] (or had it revealed by a
// challenge). Drinks is the cumulative total and never decreases during a game.
type Player struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Hand      []Card    `json:"hand"`
	Seen      []bool    `json:"seen"`
	Drinks    int       `json:"drinks"`
	IsHost    bool      `json:"isHost"`
	Connected bool      `json:"connected"`

	Conn *websocket.Conn `json:"-"`
}

// HasRank reports whether any card in the player's hand matches rank.
func (p *Player) HasRank(rank int) bool {
	for _, c := range p.Hand {
		if c.Rank == rank {
			return true
		}
	}
	return false
}

// HandIndexOf returns the hand slot holding the card with the given deck
// index, or -1 if the player does not hold it.
func (p *Player) HandIndexOf(cardIndex int) int {
	for i, c := range p.Hand {
		if c.Index == cardIndex {
			return i
		}
	}
	return -1
}

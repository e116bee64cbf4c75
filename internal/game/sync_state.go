// internal/game/sync_state.go
package game

import (
	"time"

	"github.com/google/uuid"
	"github.com/pyramid-live/pyramid/internal/models"
)

// ObfPyramidSlot is a pyramid position as sent to clients: the card itself is
// included only once the slot has been shown.
type ObfPyramidSlot struct {
	Shown bool         `json:"shown"`
	Card  *models.Card `json:"card,omitempty"`
}

// ObfHandSlot is one hand position as seen by a particular viewer. Card is
// present only for slots the viewer owns and has already seen.
type ObfHandSlot struct {
	Seen bool         `json:"seen"`
	Card *models.Card `json:"card,omitempty"`
}

// ObfPlayer is a participant as seen by a particular viewer.
type ObfPlayer struct {
	ID        uuid.UUID     `json:"id"`
	Name      string        `json:"name"`
	Drinks    int           `json:"drinks"`
	IsHost    bool          `json:"isHost"`
	Connected bool          `json:"connected"`
	Hand      []ObfHandSlot `json:"hand"`
}

// ObfRoomState is the full room snapshot sent on connect and reconnect.
// Each field merge on the client is idempotent, so at-least-once delivery of
// snapshots and deltas cannot corrupt the view.
type ObfRoomState struct {
	RoomCode      string                 `json:"room_code"`
	Started       bool                   `json:"started"`
	GameOver      bool                   `json:"game_over"`
	DeckRemaining int                    `json:"deck_remaining"`
	Pyramid       []ObfPyramidSlot       `json:"pyramid"`
	Players       []ObfPlayer            `json:"players"`
	CurrentRound  *Round                 `json:"currentRound"`
	Rounds        map[int][]*Transaction `json:"rounds"`
	Ledger        map[string]int         `json:"ledger"`
	Summary       map[string]int         `json:"summary,omitempty"`

	// ViewRemainingMS is the card-view countdown left for the current round,
	// recomputed from the reveal timestamp so reconnecting clients stay in
	// sync. Zero once elapsed or when no round is open.
	ViewRemainingMS int64 `json:"view_remaining_ms"`
}

// GetObfuscatedRoomState builds the snapshot for one viewer.
// Assumes lock is held.
func (g *PyramidGame) GetObfuscatedRoomState(viewerID uuid.UUID) ObfRoomState {
	state := ObfRoomState{
		RoomCode:      g.Code,
		Started:       g.Started,
		GameOver:      g.GameOver,
		DeckRemaining: len(g.Deck),
		Pyramid:       make([]ObfPyramidSlot, len(g.Pyramid)),
		CurrentRound:  g.CurrentRound,
		Rounds:        make(map[int][]*Transaction, len(g.Rounds)),
		Ledger:        make(map[string]int),
	}

	for i, slot := range g.Pyramid {
		state.Pyramid[i] = ObfPyramidSlot{Shown: slot.Shown}
		if slot.Shown {
			c := slot.Card
			state.Pyramid[i].Card = &c
		}
	}

	for _, p := range g.Players {
		op := ObfPlayer{
			ID:        p.ID,
			Name:      p.Name,
			Drinks:    p.Drinks,
			IsHost:    p.IsHost,
			Connected: p.Connected,
			Hand:      make([]ObfHandSlot, len(p.Hand)),
		}
		for i := range p.Hand {
			op.Hand[i] = ObfHandSlot{Seen: p.Seen[i]}
			if p.ID == viewerID && p.Seen[i] {
				c := p.Hand[i]
				op.Hand[i].Card = &c
			}
		}
		state.Players = append(state.Players, op)
	}

	for n, r := range g.Rounds {
		state.Rounds[n] = r.Transactions
	}
	for id, n := range g.Ledger.Summary() {
		state.Ledger[g.nameOf(id)] = n
	}
	if g.GameOver && g.Summary != nil {
		state.Summary = make(map[string]int, len(g.Summary))
		for id, n := range g.Summary {
			state.Summary[g.nameOf(id)] = n
		}
	}

	if g.CurrentRound != nil {
		state.ViewRemainingMS = g.viewRemaining(time.Now()).Milliseconds()
	}
	return state
}

// nameOf resolves a player ID to its display name for keyed payloads.
// Assumes lock is held.
func (g *PyramidGame) nameOf(id uuid.UUID) string {
	for _, p := range g.Players {
		if p.ID == id {
			return p.Name
		}
	}
	return id.String()
}

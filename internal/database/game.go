package database

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
)

// UpsertInitialRoomState stores the dealt deck, hands and pyramid for a room
// so a finished game can be reconstructed. Called fire-and-forget from the
// engine; failures are logged, never surfaced to players.
func UpsertInitialRoomState(roomID uuid.UUID, roomCode string, state interface{}) {
	if DB == nil {
		return
	}
	data, err := json.Marshal(state)
	if err != nil {
		log.Printf("failed to marshal initial state for room %s: %v", roomCode, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err = DB.Exec(ctx, `
		INSERT INTO rooms (id, code, initial_state, created_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (id) DO UPDATE SET initial_state = EXCLUDED.initial_state
	`, roomID, roomCode, data)
	if err != nil {
		log.Printf("failed to upsert initial state for room %s: %v", roomCode, err)
	}
}

// InsertGameSummary stores the end-of-game drink totals keyed by player name.
func InsertGameSummary(roomID uuid.UUID, roomCode string, summary map[string]int) {
	if DB == nil {
		return
	}
	data, err := json.Marshal(summary)
	if err != nil {
		log.Printf("failed to marshal summary for room %s: %v", roomCode, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err = DB.Exec(ctx, `
		INSERT INTO game_summaries (room_id, room_code, summary, ended_at)
		VALUES ($1, $2, $3, now())
	`, roomID, roomCode, data)
	if err != nil {
		log.Printf("failed to insert summary for room %s: %v", roomCode, err)
	}
}

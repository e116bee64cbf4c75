package handlers

import (
	"github.com/pyramid-live/pyramid/internal/game"
)

// GameServer bundles the room registry for the HTTP and WS handlers.
type GameServer struct {
	Rooms *game.RoomStore
}

// NewGameServer instantiates a GameServer with an empty room store.
func NewGameServer() *GameServer {
	return &GameServer{
		Rooms: game.NewRoomStore(),
	}
}

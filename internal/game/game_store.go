package game

import (
	"errors"
	"math/rand"
	"strings"
	"sync"
)

// ErrTooManyRooms indicates the code space could not yield a free room code.
var ErrTooManyRooms = errors.New("could not allocate a free room code")

// roomCodeLetters is the alphabet for room codes: four lowercase letters.
const roomCodeLetters = "abcdefghijklmnopqrstuvwxyz"

// RoomStore is the in-memory registry of active rooms, keyed by room code.
type RoomStore struct {
	mu    sync.Mutex
	rooms map[string]*PyramidGame
}

func NewRoomStore() *RoomStore {
	return &RoomStore{
		rooms: make(map[string]*PyramidGame),
	}
}

// newRoomCodeUnsafe generates an unused 4-letter lowercase code,
// collision-checked against active rooms. Assumes s.mu is held.
func (s *RoomStore) newRoomCodeUnsafe() (string, error) {
	for attempt := 0; attempt < 1000; attempt++ {
		var b strings.Builder
		for i := 0; i < 4; i++ {
			b.WriteByte(roomCodeLetters[rand.Intn(len(roomCodeLetters))])
		}
		code := b.String()
		if _, taken := s.rooms[code]; !taken {
			return code, nil
		}
	}
	return "", ErrTooManyRooms
}

// CreateRoom allocates a code, builds the room and registers it.
func (s *RoomStore) CreateRoom(build func(code string) *PyramidGame) (*PyramidGame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	code, err := s.newRoomCodeUnsafe()
	if err != nil {
		return nil, err
	}
	g := build(code)
	s.rooms[code] = g
	return g, nil
}

// GetRoom looks a room up by its code.
func (s *RoomStore) GetRoom(code string) (*PyramidGame, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, exists := s.rooms[strings.ToLower(code)]
	return g, exists
}

// DeleteRoom removes a room from the registry.
func (s *RoomStore) DeleteRoom(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, code)
}

// Count returns the number of active rooms.
func (s *RoomStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rooms)
}

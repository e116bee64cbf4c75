package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/pyramid-live/pyramid/internal/game"
	"github.com/pyramid-live/pyramid/internal/models"
	"github.com/sirupsen/logrus"
)

// joinRoomRequest is the body of POST /room/join.
type joinRoomRequest struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// CreateRoomHandler creates a room with a fresh 4-letter code. The caller
// becomes the room's host; their identity cookie is minted on the way in.
func CreateRoomHandler(logger *logrus.Logger, s *GameServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		hostID, err := EnsureEphemeralUser(w, r)
		if err != nil {
			http.Error(w, "Failed to establish identity", http.StatusInternalServerError)
			return
		}

		var req struct {
			Name string `json:"name"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		hostName := strings.ToLower(strings.TrimSpace(req.Name))
		if hostName == "" {
			hostName = "host"
		}

		g, err := s.Rooms.CreateRoom(func(code string) *game.PyramidGame {
			return game.NewPyramidGame(code, hostID)
		})
		if err != nil {
			logger.Errorf("failed to create room: %v", err)
			http.Error(w, "Failed to create room", http.StatusInternalServerError)
			return
		}
		g.OnGameEnd = func(code string, _ map[uuid.UUID]int) {
			s.Rooms.DeleteRoom(code)
		}

		// The host sits on the roster too, so broadcasts and the log view
		// reach them. They are never dealt a hand.
		if err := g.AddPlayer(&models.Player{ID: hostID, Name: hostName}); err != nil {
			logger.Warnf("failed to seat host in room %s: %v", g.Code, err)
		}

		logger.Infof("Room %s created by host %s", g.Code, hostID)
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"room_code": g.Code,
			"host_id":   hostID.String(),
		})
	}
}

// JoinRoomHandler validates a join request against an active room and adds
// the caller to its roster. Rejections mirror the host's join screen:
// "missing details" and "unknown game code".
func JoinRoomHandler(logger *logrus.Logger, s *GameServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req joinRoomRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing details"})
			return
		}
		name := strings.ToLower(strings.TrimSpace(req.Name))
		code := strings.ToLower(strings.TrimSpace(req.Code))
		if name == "" || code == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing details"})
			return
		}

		g, ok := s.Rooms.GetRoom(code)
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown game code"})
			return
		}

		playerID, err := EnsureEphemeralUser(w, r)
		if err != nil {
			http.Error(w, "Failed to establish identity", http.StatusInternalServerError)
			return
		}

		player := &models.Player{
			ID:        playerID,
			Name:      name,
			Connected: false, // connected once the WS attaches
		}
		if err := g.AddPlayer(player); err != nil {
			writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
			return
		}

		logger.Infof("Player %s (%s) joined room %s", name, playerID, code)
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"ok":        true,
			"room_code": code,
			"player_id": playerID.String(),
		})
	}
}

// internal/handlers/game_ws.go
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/pyramid-live/pyramid/internal/game"
	"github.com/pyramid-live/pyramid/internal/models"
	"github.com/sirupsen/logrus"
)

// RoomMessage is the envelope for incoming WebSocket messages in a room.
type RoomMessage struct {
	Type    string                 `json:"type"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// RoomWSHandler upgrades the HTTP connection to WebSocket for a room.
// It authenticates the participant, verifies membership, registers the
// connection, and runs the read loop routing commands into the engine.
func RoomWSHandler(logger *logrus.Logger, s *GameServer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Extract room code from URL path: /room/ws/{code}
		pathParts := strings.Split(strings.TrimPrefix(r.URL.Path, "/room/ws/"), "/")
		if len(pathParts) < 1 || pathParts[0] == "" {
			http.Error(w, "Missing room code in path (/room/ws/{code})", http.StatusBadRequest)
			return
		}
		code := strings.ToLower(pathParts[0])

		g, ok := s.Rooms.GetRoom(code)
		if !ok {
			http.Error(w, "unknown game code", http.StatusNotFound)
			return
		}

		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			Subprotocols:   []string{"pyramid"},
			OriginPatterns: []string{"*"}, // Adjust for production security.
		})
		if err != nil {
			logger.Warnf("WebSocket accept error for room %s: %v", code, err)
			return
		}
		defer c.Close(websocket.StatusInternalError, "Internal server error during handler exit.")

		if c.Subprotocol() != "pyramid" {
			c.Close(websocket.StatusPolicyViolation, "Client must use the 'pyramid' subprotocol.")
			return
		}

		playerID, err := EnsureEphemeralUser(w, r)
		if err != nil {
			logger.Warnf("Identity resolution failed for room %s: %v", code, err)
			c.Close(websocket.StatusPolicyViolation, "Authentication failed.")
			return
		}

		// Verify the participant belongs to this room before attaching.
		g.Mu.Lock()
		isMember := playerID == g.HostID
		for _, p := range g.Players {
			if p.ID == playerID {
				isMember = true
				break
			}
		}
		if g.BroadcastFn == nil {
			g.BroadcastFn = createBroadcastFunc(g, logger)
		}
		if g.BroadcastToPlayerFn == nil {
			g.BroadcastToPlayerFn = createBroadcastToPlayerFunc(g, logger)
		}
		g.Mu.Unlock()

		if !isMember {
			logger.Warnf("User %s is not a participant of room %s. Closing connection.", playerID, code)
			c.Close(websocket.StatusPolicyViolation, "Join the room before connecting.")
			return
		}
		logger.Infof("Participant %s connected to room %s from %s", playerID, code, r.RemoteAddr)

		// Attach the connection and push the full state snapshot.
		g.HandleReconnect(playerID, c)

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		readRoomMessages(ctx, c, g, playerID, logger)

		logger.Infof("Participant %s read loop exited for room %s.", playerID, code)
		g.HandleDisconnect(playerID)
	}
}

// createBroadcastFunc returns a function suitable for PyramidGame.BroadcastFn.
// It marshals the event and sends it asynchronously to all connected players.
func createBroadcastFunc(g *game.PyramidGame, logger *logrus.Logger) func(ev game.GameEvent) {
	return func(ev game.GameEvent) {
		// Called while the game lock is held: collect targets quickly and
		// write outside the lock so slow sockets never block game logic.
		conns := []*websocket.Conn{}
		for _, p := range g.Players {
			if p.Connected && p.Conn != nil {
				conns = append(conns, p.Conn)
			}
		}

		msgBytes, err := json.Marshal(ev)
		if err != nil {
			logger.Errorf("Failed to marshal broadcast event (%s) for room %s: %v", ev.Type, g.Code, err)
			return
		}

		go func(conns []*websocket.Conn, data []byte, code string) {
			for _, conn := range conns {
				ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
				err := conn.Write(ctx, websocket.MessageText, data)
				cancel()
				if err != nil {
					logger.Warnf("Failed to write broadcast message in room %s: %v", code, err)
				}
			}
		}(conns, msgBytes, g.Code)
	}
}

// createBroadcastToPlayerFunc returns a function suitable for
// PyramidGame.BroadcastToPlayerFn.
func createBroadcastToPlayerFunc(g *game.PyramidGame, logger *logrus.Logger) func(playerID uuid.UUID, ev game.GameEvent) {
	return func(playerID uuid.UUID, ev game.GameEvent) {
		// Also called while the game lock is held.
		var target *websocket.Conn
		for _, p := range g.Players {
			if p.ID == playerID {
				if p.Connected && p.Conn != nil {
					target = p.Conn
				}
				break
			}
		}
		if target == nil {
			return
		}

		msgBytes, err := json.Marshal(ev)
		if err != nil {
			logger.Errorf("Failed to marshal private event (%s) for player %s in room %s: %v", ev.Type, playerID, g.Code, err)
			return
		}
		go func(conn *websocket.Conn, data []byte) {
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			if err := conn.Write(ctx, websocket.MessageText, data); err != nil {
				logger.Warnf("Failed to write private message to player %s in room %s: %v", playerID, g.Code, err)
			}
		}(target, msgBytes)
	}
}

// readRoomMessages continuously reads client messages, unmarshals them and
// routes them into the engine under the room lock. Exits on error or
// context cancellation.
func readRoomMessages(ctx context.Context, c *websocket.Conn, g *game.PyramidGame, playerID uuid.UUID, logger *logrus.Logger) {
	for {
		msgType, data, err := c.Read(ctx)
		if err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
				logger.Infof("WebSocket closed normally for participant %s in room %s.", playerID, g.Code)
			} else if strings.Contains(err.Error(), "context canceled") {
				logger.Infof("WebSocket context canceled for participant %s in room %s.", playerID, g.Code)
			} else {
				logger.Warnf("Error reading from WebSocket for participant %s in room %s: %v", playerID, g.Code, err)
			}
			return
		}

		if msgType != websocket.MessageText {
			logger.Warnf("Received non-text message type %d from participant %s in room %s. Ignoring.", msgType, playerID, g.Code)
			continue
		}

		var msg RoomMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			logger.Warnf("Invalid JSON from participant %s in room %s: %v", playerID, g.Code, err)
			sendWsError(ctx, c, "Invalid JSON format.")
			continue
		}

		switch msg.Type {
		case "ping":
			sendWsMessage(ctx, c, map[string]string{"type": "pong"})

		case "action_start_game", "action_reveal_pyramid", "action_close_round",
			"action_end_game", "action_view_card", "action_call",
			"action_decision", "action_challenge_reveal":
			action := models.RoomAction{
				ActionType: msg.Type,
				Payload:    msg.Payload,
			}
			if action.Payload == nil {
				action.Payload = make(map[string]interface{})
			}
			g.Mu.Lock()
			g.HandleAction(playerID, action)
			g.Mu.Unlock()

		default:
			logger.Warnf("Unknown message type '%s' from participant %s in room %s.", msg.Type, playerID, g.Code)
			sendWsError(ctx, c, fmt.Sprintf("Unknown action type: %s", msg.Type))
		}

		select {
		case <-ctx.Done():
			return
		default:
		}
	}
}

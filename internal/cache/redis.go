// internal/cache/redis.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Rdb is the global Redis client. Connect it once at application startup.
// Publishing is skipped while it is nil, so the server runs without Redis.
var Rdb *redis.Client

// DefaultActionQueueName is the Redis list for room action logs.
var DefaultActionQueueName = "pyramid_actions"

// DefaultDrinkQueueName is the Redis list for resolved drink charges,
// consumed by the out-of-process tally/history service.
var DefaultDrinkQueueName = "pyramid_drinks"

// RoomActionRecord holds the minimal info needed to replay a room's history.
type RoomActionRecord struct {
	RoomID      uuid.UUID              `json:"room_id"`
	RoomCode    string                 `json:"room_code"`
	ActionIndex int                    `json:"action_index"`
	ActorID     uuid.UUID              `json:"actor_id"`
	ActionType  string                 `json:"action_type"`
	Payload     map[string]interface{} `json:"payload"`
	Timestamp   int64                  `json:"timestamp"`
}

// DrinkRecord is one terminal transaction's drink charge.
type DrinkRecord struct {
	RoomCode    string    `json:"room_code"`
	RoundNumber int       `json:"round_number"`
	TransNum    int       `json:"trans_num"`
	FromPlayer  uuid.UUID `json:"from_player"`
	ToPlayer    uuid.UUID `json:"to_player"`
	Result      string    `json:"result"`
	Drinks      int       `json:"drinks"`
	ChargedTo   uuid.UUID `json:"charged_to"`
	Timestamp   int64     `json:"timestamp"`
}

// ConnectRedis initializes the global Redis client with environment variables:
//   - REDIS_ADDR (default "localhost:6379")
//   - REDIS_DB (optional, default 0)
func ConnectRedis() error {
	addr := getEnv("REDIS_ADDR", "localhost:6379")
	dbIdx := getEnvInt("REDIS_DB", 0)

	Rdb = redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   dbIdx,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := Rdb.Ping(ctx).Err(); err != nil {
		Rdb = nil
		return fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	return nil
}

// PublishRoomAction serializes the record and pushes it to the action queue.
func PublishRoomAction(ctx context.Context, record RoomActionRecord) error {
	if Rdb == nil {
		return nil
	}
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal RoomActionRecord: %w", err)
	}
	queueName := getEnv("ACTION_QUEUE_NAME", DefaultActionQueueName)
	if err := Rdb.RPush(ctx, queueName, data).Err(); err != nil {
		return fmt.Errorf("failed to RPush to Redis list '%s': %w", queueName, err)
	}
	return nil
}

// PublishDrinkRecord serializes the record and pushes it to the drink queue.
func PublishDrinkRecord(ctx context.Context, record DrinkRecord) error {
	if Rdb == nil {
		return nil
	}
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal DrinkRecord: %w", err)
	}
	queueName := getEnv("DRINK_QUEUE_NAME", DefaultDrinkQueueName)
	if err := Rdb.RPush(ctx, queueName, data).Err(); err != nil {
		return fmt.Errorf("failed to RPush to Redis list '%s': %w", queueName, err)
	}
	return nil
}

// getEnv is a helper to read an environment variable or return a default value.
func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// getEnvInt is a helper to parse an environment variable as integer, else a default value.
func getEnvInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

package models

// RoomAction captures a participant's in-room command
type RoomAction struct {
	ActionType string                 `json:"action_type"`
	Payload    map[string]interface{} `json:"payload"`
}

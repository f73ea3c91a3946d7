package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/svoikit-backend/internal/entity"
)

const (
	ActionRoomUpdate = "room:update"
	ActionRoomClosed = "room:closed"
	ActionMove       = "room:move"
	ActionLeave      = "room:leave"
	ActionError      = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Payload struct {
	Room   *entity.Room `json:"room,omitempty"`
	RoomID string       `json:"room_id,omitempty"`
	Cell   *int         `json:"cell,omitempty"`
	Error  string       `json:"error,omitempty"`
}

func encode(action string, payload Payload) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	message, err := json.Marshal(Message{Action: action, Payload: body})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal message: %w", err)
	}

	return message, nil
}

package entity

import "time"

// MatchRecord is the archived outcome of a finished room.
type MatchRecord struct {
	RoomID     string            `json:"room_id"`
	RoomCode   string            `json:"room_code"`
	Players    []Player          `json:"players"`
	Winner     string            `json:"winner,omitempty"`
	Draw       bool              `json:"draw"`
	Stakes     map[string]string `json:"stakes"`
	StartedAt  time.Time         `json:"started_at"`
	FinishedAt time.Time         `json:"finished_at"`
}

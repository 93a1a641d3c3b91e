package models

import (
	"time"
)

// ActivePlayer is a player currently in a live game session. Sessions are
// ephemeral: they live in Redis with a TTL refreshed by heartbeats, so a
// client that stops reporting drops off the roster on its own.
type ActivePlayer struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	CurrentScore int       `json:"currentScore"`
	Mode         string    `json:"mode"` // "pass-through" or "walls"
	IsLive       bool      `json:"isLive"`
	StartedAt    time.Time `json:"startedAt"`
}

package ports

import "time"

// UpdateEvent is broadcast to connected WebSocket clients when deck state
// changes, so open browser tabs stay in sync.
type UpdateEvent struct {
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// UpdateEventType constants
const (
	EventTypeConnected   = "connected"
	EventTypeDeckChanged = "deck-changed"
	EventTypeSelection   = "selection-changed"
)

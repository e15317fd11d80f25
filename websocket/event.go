package websocket

import "github.com/google/uuid"

const (
	EventMessage          = "message"
	EventTyping           = "typing"
	EventSwapStatus       = "swap_status"
	EventSessionScheduled = "session_scheduled"
	EventSessionReminder  = "session_reminder"
	EventError            = "error"
)

// Event is the JSON envelope written to connected clients.
type Event struct {
	Type     string      `json:"type"`
	SwapID   uuid.UUID   `json:"swapId"`
	SenderID uuid.UUID   `json:"senderId"`
	Content  string      `json:"content,omitempty"`
	Data     interface{} `json:"data,omitempty"`
}

// envelope is what travels over the cross-instance bus.
type envelope struct {
	Recipients []uuid.UUID `json:"recipients"`
	Event      Event       `json:"event"`
}

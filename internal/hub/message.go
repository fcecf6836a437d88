package hub

import (
	"time"

	"github.com/soar/inputview/internal/gamepad"
)

// WSMessage represents a WebSocket message sent from server to client.
type WSMessage struct {
	Type      string                `json:"type"`              // "full", "delta", "profile_selected", "error"
	Seq       int64                 `json:"seq"`               // Sequence number for ordering
	Timestamp int64                 `json:"timestamp"`         // Unix timestamp in milliseconds
	Data      *gamepad.GamepadState `json:"data,omitempty"`    // Full gamepad state for type "full"
	Changes   *gamepad.DeltaChanges `json:"changes,omitempty"` // Delta changes for type "delta"
	Profile   string                `json:"profile,omitempty"` // Profile name for type "profile_selected"
	Error     string                `json:"error,omitempty"`
}

// NewFullMessage creates a "full" type message containing complete gamepad state.
func NewFullMessage(seq int64, state *gamepad.GamepadState) *WSMessage {
	return &WSMessage{
		Type:      "full",
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		Data:      state,
	}
}

// NewDeltaMessage creates a "delta" type message containing only changed fields.
func NewDeltaMessage(seq int64, changes *gamepad.DeltaChanges) *WSMessage {
	return &WSMessage{
		Type:      "delta",
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		Changes:   changes,
	}
}

// NewProfileSelectedMessage confirms a profile override; an empty profile
// means auto-detection.
func NewProfileSelectedMessage(profile string) *WSMessage {
	return &WSMessage{
		Type:      "profile_selected",
		Timestamp: time.Now().UnixMilli(),
		Profile:   profile,
	}
}

func NewErrorMessage(msg string) *WSMessage {
	return &WSMessage{
		Type:      "error",
		Timestamp: time.Now().UnixMilli(),
		Error:     msg,
	}
}

// ClientMessage represents a message sent from the client to the server.
type ClientMessage struct {
	Type    string `json:"type"`
	Profile string `json:"profile,omitempty"`
}

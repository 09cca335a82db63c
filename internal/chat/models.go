// Package chat provides per-device chat transcripts and the assistant
// conversation flow.
package chat

import "time"

// Message represents a single entry in a device's transcript. Two messages
// are recorded per chat turn: the user's question and the assistant's reply.
type Message struct {
	ID        int64
	DeviceID  int64
	IsUser    bool
	Message   string
	Timestamp time.Time
	ImageURL  *string
}

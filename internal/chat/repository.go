package chat

import "context"

// Repository defines the interface for transcript persistence.
//
// Create assigns the message ID: ids are monotonically increasing int64
// values and are never reused after deletion.
type Repository interface {
	// ListByDevice retrieves a device's transcript sorted by timestamp
	// ascending, with ID as the tiebreaker.
	ListByDevice(ctx context.Context, deviceID int64) ([]*Message, error)

	// Create persists a message, assigning its ID.
	Create(ctx context.Context, message *Message) error

	// DeleteByDevice removes a device's entire transcript.
	DeleteByDevice(ctx context.Context, deviceID int64) error
}

package chat

import (
	"context"
	"sort"
	"sync"
)

// InMemoryRepository is an in-memory implementation of Repository.
type InMemoryRepository struct {
	mu       sync.RWMutex
	messages map[int64][]*Message // keyed by device ID
	nextID   int64
}

// NewInMemoryRepository creates a new in-memory transcript repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		messages: make(map[int64][]*Message),
	}
}

// ListByDevice retrieves a device's transcript sorted by timestamp ascending.
func (r *InMemoryRepository) ListByDevice(_ context.Context, deviceID int64) ([]*Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.messages[deviceID]
	items := make([]*Message, 0, len(stored))
	for _, m := range stored {
		items = append(items, copyMessage(m))
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Timestamp.Equal(items[j].Timestamp) {
			return items[i].ID < items[j].ID
		}
		return items[i].Timestamp.Before(items[j].Timestamp)
	})
	return items, nil
}

// Create persists a message, assigning the next message ID.
func (r *InMemoryRepository) Create(_ context.Context, message *Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	message.ID = r.nextID
	r.messages[message.DeviceID] = append(r.messages[message.DeviceID], copyMessage(message))
	return nil
}

// DeleteByDevice removes a device's entire transcript.
func (r *InMemoryRepository) DeleteByDevice(_ context.Context, deviceID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.messages, deviceID)
	return nil
}

// copyMessage creates a deep copy of a message.
func copyMessage(m *Message) *Message {
	if m == nil {
		return nil
	}
	messageCopy := *m
	if m.ImageURL != nil {
		val := *m.ImageURL
		messageCopy.ImageURL = &val
	}
	return &messageCopy
}

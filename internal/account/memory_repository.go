package account

import (
	"context"
	"sync"
)

// InMemoryRepository is an in-memory implementation of Repository.
type InMemoryRepository struct {
	mu        sync.RWMutex
	users     map[int64]*User
	usernames map[string]int64
	nextID    int64
}

// NewInMemoryRepository creates a new in-memory account repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		users:     make(map[int64]*User),
		usernames: make(map[string]int64),
	}
}

// GetByID retrieves a user by ID.
func (r *InMemoryRepository) GetByID(_ context.Context, id int64) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return copyUser(user), nil
}

// GetByUsername retrieves a user by username.
func (r *InMemoryRepository) GetByUsername(_ context.Context, username string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.usernames[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	return copyUser(r.users[id]), nil
}

// Create persists a new user, assigning the next user ID.
func (r *InMemoryRepository) Create(_ context.Context, user *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.usernames[user.Username]; ok {
		return ErrUsernameTaken
	}

	r.nextID++
	user.ID = r.nextID
	r.users[user.ID] = copyUser(user)
	r.usernames[user.Username] = user.ID
	return nil
}

// copyUser creates a copy of a user.
func copyUser(u *User) *User {
	if u == nil {
		return nil
	}
	userCopy := *u
	return &userCopy
}

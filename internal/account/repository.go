package account

import "context"

// Repository defines the interface for account persistence.
//
// Create assigns the user ID: ids are monotonically increasing int64 values.
type Repository interface {
	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id int64) (*User, error)

	// GetByUsername retrieves a user by username.
	GetByUsername(ctx context.Context, username string) (*User, error)

	// Create persists a new user, assigning its ID.
	// Returns ErrUsernameTaken when the username already exists.
	Create(ctx context.Context, user *User) error
}

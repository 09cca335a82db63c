// Package account provides user accounts and session authentication.
package account

import (
	"errors"
	"time"
)

// Predefined account errors.
var (
	ErrUserNotFound = errors.New("user not found")

	ErrUsernameTaken = errors.New("username already taken")

	// ErrInvalidCredentials is the single failure returned by Login for both
	// an unknown username and a wrong password, so the API never leaks
	// whether an account exists.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// User represents a user account. PasswordHash is a bcrypt hash and is never
// serialized out of the service layer.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	DisplayName  string
	IsAdmin      bool
	CreatedAt    time.Time
}

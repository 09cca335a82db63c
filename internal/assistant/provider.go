// Package assistant integrates the external generative-language provider
// that answers device chat questions.
package assistant

import (
	"context"
	"errors"
)

// Predefined provider errors.
var (
	// ErrNotConfigured is returned when no provider credential is set.
	ErrNotConfigured = errors.New("assistant provider not configured")

	// ErrUnavailable is returned when the provider cannot be reached or
	// refuses the request.
	ErrUnavailable = errors.New("assistant provider unavailable")
)

// Provider answers an assembled prompt with free-form text.
type Provider interface {
	Reply(ctx context.Context, prompt string) (string, error)
}

// Disabled is a Provider used when no credential is configured. Every call
// fails with ErrNotConfigured, which the chat service converts to the fixed
// fallback reply.
type Disabled struct{}

// Reply implements Provider.
func (Disabled) Reply(context.Context, string) (string, error) {
	return "", ErrNotConfigured
}

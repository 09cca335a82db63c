package assistant

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker/v2"
)

// Breaker wraps a Provider with a circuit breaker so a failing upstream
// fails fast to the fallback path instead of stalling every chat turn.
// There is deliberately no retry around the provider call: one chat turn is
// one provider request.
type Breaker struct {
	inner Provider
	cb    *gobreaker.CircuitBreaker[string]
}

// NewBreaker creates a circuit-breaking Provider wrapper.
func NewBreaker(name string, inner Provider) *Breaker {
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	}

	return &Breaker{
		inner: inner,
		cb:    gobreaker.NewCircuitBreaker[string](settings),
	}
}

// Reply implements Provider.
func (b *Breaker) Reply(ctx context.Context, prompt string) (string, error) {
	reply, err := b.cb.Execute(func() (string, error) {
		return b.inner.Reply(ctx, prompt)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", ErrUnavailable
		}
		return "", err
	}
	return reply, nil
}

// State returns the current circuit breaker state.
func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}

package llm

import (
	"context"
	"log"
	"time"

	"github.com/sony/gobreaker/v2"
)

// BreakerClient wraps a Client with a circuit breaker so a misbehaving
// provider degrades to canned answers instead of stalling every question
// on a form.
type BreakerClient struct {
	inner   Client
	breaker *gobreaker.CircuitBreaker[string]
}

// NewBreakerClient wraps client with a failure-ratio circuit breaker.
func NewBreakerClient(client Client) *BreakerClient {
	settings := gobreaker.Settings{
		Name:        "llm",
		MaxRequests: 1,
		Interval:    2 * time.Minute,
		Timeout:     time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 3 {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("[llm] circuit breaker %s: %s -> %s", name, from, to)
		},
	}

	return &BreakerClient{
		inner:   client,
		breaker: gobreaker.NewCircuitBreaker[string](settings),
	}
}

// GenerateText runs the generation through the breaker. While the breaker
// is open the provider is not called at all and gobreaker.ErrOpenState
// comes back immediately.
func (c *BreakerClient) GenerateText(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return c.breaker.Execute(func() (string, error) {
		return c.inner.GenerateText(ctx, prompt, tier)
	})
}

// Model returns the model name for a tier
func (c *BreakerClient) Model(tier ModelTier) string {
	return c.inner.Model(tier)
}

// Close releases resources held by the underlying client
func (c *BreakerClient) Close() error {
	return c.inner.Close()
}

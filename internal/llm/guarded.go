package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
)

// Guarded retries a failing Model with exponential backoff. A circuit
// breaker shared by all calls opens after the retries of one call are used
// up, so later calls in the same process (batch runs) fail fast instead of
// hammering an unavailable API.
type Guarded struct {
	model      Model
	maxRetries int
	backoff    time.Duration
	breaker    *gobreaker.CircuitBreaker
	sleep      func(ctx context.Context, d time.Duration) error
}

// NewGuarded wraps model with up to maxRetries extra attempts per call.
func NewGuarded(model Model, maxRetries int, backoff time.Duration) *Guarded {
	if maxRetries < 0 {
		maxRetries = 0
	}
	trip := uint32(maxRetries + 1)

	return &Guarded{
		model:      model,
		maxRetries: maxRetries,
		backoff:    backoff,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    model.Name(),
			Timeout: time.Minute,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= trip
			},
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, context.Canceled)
			},
		}),
		sleep: sleepContext,
	}
}

// Prompt calls the wrapped model until it succeeds, the retries are used
// up, the breaker opens or ctx is done.
func (g *Guarded) Prompt(ctx context.Context, prompt string, fragments ...string) (string, error) {
	wait := g.backoff
	var lastErr error

	for attempt := 0; attempt <= g.maxRetries; attempt++ {
		if attempt > 0 {
			if err := g.sleep(ctx, wait); err != nil {
				return "", err
			}
			wait *= 2
		}

		reply, err := g.breaker.Execute(func() (interface{}, error) {
			return g.model.Prompt(ctx, prompt, fragments...)
		})
		if err == nil {
			return reply.(string), nil
		}
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			if lastErr == nil {
				lastErr = err
			}
			return "", fmt.Errorf("%s unavailable: %w", g.model.Name(), lastErr)
		}
		if ctx.Err() != nil {
			return "", fmt.Errorf("%w (last error: %v)", ctx.Err(), err)
		}
		lastErr = err
	}

	return "", fmt.Errorf("%s failed after %d attempts: %w", g.model.Name(), g.maxRetries+1, lastErr)
}

// Name returns the wrapped model name
func (g *Guarded) Name() string {
	return g.model.Name()
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

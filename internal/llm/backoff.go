package llm

import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

// Backoff - явная политика повторов для сетевых вызовов LLM.
// Задержка растет экспоненциально от BaseDelay, джиттер размывает пики.
type Backoff struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Jitter      time.Duration
}

func DefaultBackoff() Backoff {
	return Backoff{
		MaxAttempts: 3,
		BaseDelay:   2 * time.Second,
		Jitter:      500 * time.Millisecond,
	}
}

func (b Backoff) delay(attempt int) time.Duration {
	d := b.BaseDelay << uint(attempt)
	if b.Jitter > 0 {
		d += time.Duration(rand.Int63n(int64(b.Jitter)))
	}
	return d
}

// Retry выполняет fn до первого успеха, но не более MaxAttempts раз.
func (b Backoff) Retry(ctx context.Context, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt < b.MaxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(b.delay(attempt - 1)):
			}
		}

		if err := fn(); err != nil {
			lastErr = err
			continue
		}
		return nil
	}

	return fmt.Errorf("после %d попыток: %w", b.MaxAttempts, lastErr)
}

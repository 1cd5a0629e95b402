package llm

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// RateLimiter реализует token bucket для ограничения частоты запросов к API.
type RateLimiter struct {
	requestsPerMinute int

	tokens    int
	capacity  int
	mu        sync.Mutex
	lastCheck time.Time
}

func NewRateLimiter(requestsPerMinute int) *RateLimiter {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 15 // дефолт: бесплатный tier
	}

	return &RateLimiter{
		requestsPerMinute: requestsPerMinute,
		tokens:            requestsPerMinute,
		capacity:          requestsPerMinute,
		lastCheck:         time.Now(),
	}
}

func (rl *RateLimiter) refill() {
	now := time.Now()
	elapsed := now.Sub(rl.lastCheck)

	tokensToAdd := int(elapsed.Minutes() * float64(rl.requestsPerMinute))
	if tokensToAdd > 0 {
		rl.tokens += tokensToAdd
		if rl.tokens > rl.capacity {
			rl.tokens = rl.capacity
		}
		rl.lastCheck = now
	}
}

// AllowRequest проверяет, можно ли выполнить запрос прямо сейчас.
func (rl *RateLimiter) AllowRequest(ctx context.Context) error {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.refill()

	if rl.tokens <= 0 {
		waitTime := time.Minute / time.Duration(rl.requestsPerMinute)
		return fmt.Errorf("превышен лимит запросов (%d RPM), повторите через %v", rl.requestsPerMinute, waitTime)
	}

	rl.tokens--
	return nil
}

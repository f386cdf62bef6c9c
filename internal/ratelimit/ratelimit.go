package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Limiter enforces a minimum delay between consecutive requests to the same
// upstream provider. The enrichment workers share one instance so parallel
// LLM calls stay within provider limits.
type Limiter struct {
	mu       sync.Mutex
	lastCall map[string]time.Time // key: provider name
	minDelay time.Duration
}

// NewLimiter creates a limiter enforcing minDelay between consecutive
// requests to the same provider. A zero minDelay disables waiting.
func NewLimiter(minDelay time.Duration) *Limiter {
	return &Limiter{
		lastCall: make(map[string]time.Time),
		minDelay: minDelay,
	}
}

// Wait blocks until enough time has passed since the last request to the
// given provider. Returns an error if the context is cancelled while
// waiting.
func (l *Limiter) Wait(ctx context.Context, provider string) error {
	if l.minDelay <= 0 {
		return nil
	}

	l.mu.Lock()
	last, ok := l.lastCall[provider]
	now := time.Now()

	if !ok || now.Sub(last) >= l.minDelay {
		l.lastCall[provider] = now
		l.mu.Unlock()
		return nil
	}

	remaining := l.minDelay - now.Sub(last)
	// Reserve the slot before sleeping so concurrent waiters queue up
	// behind each other instead of all releasing at once.
	l.lastCall[provider] = now.Add(remaining)
	l.mu.Unlock()

	select {
	case <-ctx.Done():
		return fmt.Errorf("rate limiter wait for %s: %w", provider, ctx.Err())
	case <-time.After(remaining):
	}

	return nil
}

package worker

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter implements per-key rate limiting. Keys are provider or model
// names, so concurrent batch jobs share one budget per upstream API.
type Limiter struct {
	limiters     map[string]*rate.Limiter
	mu           sync.RWMutex
	defaultRate  rate.Limit
	defaultBurst int
}

// NewLimiter creates a limiter with the given default budget. A
// non-positive rate or burst falls back to a usable default instead of a
// budget that blocks forever once the burst is spent.
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 1
	}
	if burst <= 0 {
		burst = 5
	}

	return &Limiter{
		limiters:     make(map[string]*rate.Limiter),
		defaultRate:  rate.Limit(requestsPerSecond),
		defaultBurst: burst,
	}
}

// Wait blocks until the key's budget admits one request
func (l *Limiter) Wait(ctx context.Context, key string) error {
	return l.getLimiter(key).Wait(ctx)
}

// Allow reports whether a request is admissible without waiting
func (l *Limiter) Allow(key string) bool {
	return l.getLimiter(key).Allow()
}

func (l *Limiter) getLimiter(key string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.limiters[key]
	l.mu.RUnlock()

	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if limiter, exists := l.limiters[key]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(l.defaultRate, l.defaultBurst)
	l.limiters[key] = limiter

	return limiter
}

// SetKeyRate overrides the budget for one key
func (l *Limiter) SetKeyRate(key string, requestsPerSecond float64, burst int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if burst <= 0 {
		burst = l.defaultBurst
	}

	l.limiters[key] = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
}

// WaitWithDelay waits for the budget and then an additional fixed delay
func (l *Limiter) WaitWithDelay(ctx context.Context, key string, additionalDelay time.Duration) error {
	if err := l.Wait(ctx, key); err != nil {
		return err
	}

	if additionalDelay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(additionalDelay):
		}
	}

	return nil
}

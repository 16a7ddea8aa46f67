package client

import (
	"context"
	"time"
)

// RateLimiter paces outbound Custom Search calls. The free quota rejects
// bursts, so tokens refill at a fixed rate and accumulate up to burst while
// no caller is waiting.
type RateLimiter struct {
	ticker *time.Ticker
	tokens chan struct{}
}

// NewRateLimiter creates a limiter allowing requestsPerSecond sustained and
// at most burst back-to-back calls. The first call never waits.
func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 1
	}
	if burst < 1 {
		burst = 1
	}

	rl := &RateLimiter{
		ticker: time.NewTicker(time.Duration(float64(time.Second) / requestsPerSecond)),
		tokens: make(chan struct{}, burst),
	}
	rl.tokens <- struct{}{}

	go rl.refill()
	return rl
}

func (rl *RateLimiter) refill() {
	for range rl.ticker.C {
		select {
		case rl.tokens <- struct{}{}:
		default:
		}
	}
}

// Wait blocks until a token is available or the context is cancelled.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	select {
	case <-rl.tokens:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop halts token refill. Waiters may still drain buffered tokens.
func (rl *RateLimiter) Stop() {
	rl.ticker.Stop()
}

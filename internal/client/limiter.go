package client

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type RateLimiter struct {
	limiter *rate.Limiter
	mu      sync.Mutex
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Inf, 1),
	}
}

func (rl *RateLimiter) Wait(ctx context.Context) error {
	return rl.limiter.Wait(ctx)
}

// BlockFor - приостанавливает исходящие запросы на указанный срок
func (rl *RateLimiter) BlockFor(duration time.Duration) {
	rl.mu.Lock()
	rl.limiter.SetLimit(0)
	rl.mu.Unlock()

	time.AfterFunc(duration, func() {
		rl.mu.Lock()
		rl.limiter.SetLimit(rate.Inf)
		rl.mu.Unlock()
	})
}

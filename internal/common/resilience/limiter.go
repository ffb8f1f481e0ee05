package resilience

import (
	"context"
	"errors"
	"time"

	"golang.org/x/time/rate"
)

var ErrRateLimited = errors.New("rate limit exceeded")

// Limiter is a token bucket shared by every job of one worker.
type Limiter struct {
	limiter *rate.Limiter
	maxWait time.Duration
}

// NewLimiter allows perSecond events with the given burst. maxWait bounds how long
// Wait blocks before giving up; zero means never block.
func NewLimiter(perSecond float64, burst int, maxWait time.Duration) *Limiter {
	if burst < 1 {
		burst = 1
	}
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
		maxWait: maxWait,
	}
}

func (l *Limiter) Allow() bool {
	return l.limiter.Allow()
}

// Wait blocks for a token up to maxWait and returns ErrRateLimited when none arrives.
func (l *Limiter) Wait(ctx context.Context) error {
	if l.maxWait <= 0 {
		if l.limiter.Allow() {
			return nil
		}
		return ErrRateLimited
	}

	ctx, cancel := context.WithTimeout(ctx, l.maxWait)
	defer cancel()
	if err := l.limiter.Wait(ctx); err != nil {
		return ErrRateLimited
	}
	return nil
}

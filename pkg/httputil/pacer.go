package httputil

import (
	"context"
	"math/rand/v2"
	"time"

	"golang.org/x/time/rate"
)

// Pacer spaces out remote calls. It combines a hard rate ceiling with a
// randomized pause inside [minDelay, maxDelay], so the provider sees
// neither bursts nor a fixed request cadence.
type Pacer struct {
	limiter  *rate.Limiter
	minDelay time.Duration
	maxDelay time.Duration
}

// NewPacer creates a pacer with the given delay bounds. The bounds
// must satisfy 0 <= minDelay <= maxDelay; the rate ceiling is derived
// from minDelay so the cap survives even if jitter is tuned to zero.
func NewPacer(minDelay, maxDelay time.Duration) *Pacer {
	limit := rate.Inf
	if minDelay > 0 {
		limit = rate.Every(minDelay)
	}

	return &Pacer{
		limiter:  rate.NewLimiter(limit, 1),
		minDelay: minDelay,
		maxDelay: maxDelay,
	}
}

// Wait blocks for the rate limiter plus a random jitter, or until the
// context is cancelled.
func (p *Pacer) Wait(ctx context.Context) error {
	if err := p.limiter.Wait(ctx); err != nil {
		return err
	}

	d := p.jitter()
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// jitter picks a random pause within the configured bounds.
func (p *Pacer) jitter() time.Duration {
	if p.maxDelay <= p.minDelay {
		return p.minDelay
	}
	return p.minDelay + rand.N(p.maxDelay-p.minDelay)
}

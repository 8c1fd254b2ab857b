package util

import (
	"context"

	"golang.org/x/time/rate"
)

// RunLimiter caps how often watch mode re-resolves. A nil *RunLimiter
// never blocks.
type RunLimiter struct {
	inner *rate.Limiter
}

// NewRunLimiter allows perSecond runs with a burst of one. A non-positive
// rate disables limiting and returns nil.
func NewRunLimiter(perSecond float64) *RunLimiter {
	if perSecond <= 0 {
		return nil
	}
	return &RunLimiter{inner: rate.NewLimiter(rate.Limit(perSecond), 1)}
}

// TryRun reports whether a run may start now and consumes the slot if so.
func (l *RunLimiter) TryRun() bool {
	if l == nil {
		return true
	}
	return l.inner.Allow()
}

// Wait blocks until the next run may start or ctx is done.
func (l *RunLimiter) Wait(ctx context.Context) error {
	if l == nil {
		return ctx.Err()
	}
	return l.inner.Wait(ctx)
}

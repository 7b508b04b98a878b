package reconcile

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer enforces the mandatory delay between successive re-scan requests so
// the catalog service is not flooded. It is an interface so tests can swap in
// NopPacer and run without wall-clock waits.
type Pacer interface {
	// Pace blocks until the next re-scan request may be issued, or until the
	// context is canceled.
	Pace(ctx context.Context) error
}

type intervalPacer struct {
	limiter *rate.Limiter
}

// NewIntervalPacer returns a Pacer that spaces calls by the fixed interval.
// Intervals of zero or less disable pacing.
func NewIntervalPacer(interval time.Duration) Pacer {
	if interval <= 0 {
		return NopPacer()
	}
	limiter := rate.NewLimiter(rate.Every(interval), 1)
	// Drain the initial token so the very first Pace already waits a full
	// interval, matching a plain sleep-after-request gate.
	limiter.Allow()
	return &intervalPacer{limiter: limiter}
}

func (p *intervalPacer) Pace(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}

type nopPacer struct{}

// NopPacer returns a Pacer that never waits.
func NopPacer() Pacer {
	return nopPacer{}
}

func (nopPacer) Pace(context.Context) error {
	return nil
}

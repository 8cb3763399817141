// Package pacer enforces the upstream API's per-window request quota with a
// fixed-window scheme: a call counter bounded by the quota, and a blocking
// pause once the quota is used up. It guarantees no more than quota calls
// are issued between pauses; it does not space calls evenly within a window.
package pacer

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// SleepFunc blocks for the given duration or until the context is canceled.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Pacer tracks admitted calls against a fixed-window quota.
type Pacer struct {
	quota int
	pause time.Duration
	calls int
	sleep SleepFunc
	log   zerolog.Logger
}

// Option configures a Pacer.
type Option func(*Pacer)

// WithSleep overrides the blocking sleep. Used by tests to observe pauses
// without waiting them out.
func WithSleep(fn SleepFunc) Option {
	return func(p *Pacer) { p.sleep = fn }
}

// New creates a pacer admitting at most quota calls before blocking for pause.
func New(quota int, pause time.Duration, log zerolog.Logger, opts ...Option) *Pacer {
	p := &Pacer{
		quota: quota,
		pause: pause,
		sleep: sleepContext,
		log:   log.With().Str("component", "pacer").Logger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// RegisterCall admits one upstream request. When the window quota has been
// used up it blocks for the full pause first, then resets the counter. It
// must be called before every external request, not only at loop
// boundaries: a single symbol can need two or three calls.
func (p *Pacer) RegisterCall(ctx context.Context) error {
	if p.calls >= p.quota {
		p.log.Info().Dur("pause", p.pause).Msg("request quota reached, pausing")
		if err := p.sleep(ctx, p.pause); err != nil {
			return err
		}
		p.calls = 0
	}
	p.calls++
	return nil
}

// Calls reports how many requests have been admitted in the current window.
func (p *Pacer) Calls() int {
	return p.calls
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Package retry provides the pacing policy for the reconnect path of a
// player session: an attempt budget, exponential delays with optional
// jitter, and a marker for errors that retrying cannot fix.
package retry

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"
)

// ── Permanent errors ─────────────────────────────────────────────────

// PermanentError wraps an error to signal that retrying will not help
// (a rejected password stays rejected no matter how often we redial).
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return e.Err.Error() }
func (e *PermanentError) Unwrap() error { return e.Err }

// Permanent marks err as non-retryable.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &PermanentError{Err: err}
}

// IsPermanent reports whether err has been marked as permanent.
func IsPermanent(err error) bool {
	var pe *PermanentError
	return errors.As(err, &pe)
}

// ── Policy ───────────────────────────────────────────────────────────

// Policy computes how long to pause before each reconnect attempt. The
// attempt budget itself lives with the caller (it is a per-command
// parameter, not a policy constant), so Policy only answers "how long
// before attempt n".
type Policy struct {
	// InitialDelay is the pause before the first reconnect. Zero means
	// reconnect immediately, matching the reference behavior.
	InitialDelay time.Duration
	// MaxDelay caps the delay growth (default 10s when delays are on).
	MaxDelay time.Duration
	// Multiplier grows the delay each attempt (default 2.0).
	Multiplier float64
	// Jitter adds ±25% randomisation to each delay.
	Jitter bool
}

// DelayFor returns the pause before the given 0-based reconnect attempt.
func (p *Policy) DelayFor(attempt int) time.Duration {
	if p == nil || p.InitialDelay <= 0 {
		return 0
	}
	multiplier := p.Multiplier
	if multiplier <= 0 {
		multiplier = 2.0
	}
	maxDelay := p.MaxDelay
	if maxDelay <= 0 {
		maxDelay = 10 * time.Second
	}

	delay := float64(p.InitialDelay) * math.Pow(multiplier, float64(attempt))
	if delay > float64(maxDelay) {
		delay = float64(maxDelay)
	}
	if p.Jitter {
		delay = addJitter(delay)
	}
	return time.Duration(delay)
}

// Wait sleeps for the attempt's delay, returning early with the context
// error on cancellation.
func (p *Policy) Wait(ctx context.Context, attempt int) error {
	d := p.DelayFor(attempt)
	if d <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// addJitter applies ±25% randomisation.
func addJitter(d float64) float64 {
	quarter := d * 0.25
	delta := (rand.Float64() * 2 * quarter) - quarter
	return math.Max(d+delta, float64(time.Millisecond))
}

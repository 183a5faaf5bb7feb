package resources

import (
	"context"
	"math/rand/v2"
	"time"
)

const maxBackoff = 200 * time.Millisecond

// jitteredBackoff doubles base per attempt, caps it at maxBackoff and spreads
// the result over [d/2, 3d/2) so racing callers do not retry in lockstep.
func jitteredBackoff(base time.Duration, attempt int) time.Duration {
	d := base << min(attempt, 8)
	if d <= 0 || d > maxBackoff {
		d = maxBackoff
	}
	return d/2 + rand.N(d) //nolint:gosec // jitter, not a secret
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

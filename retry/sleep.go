package retry

import (
	"context"
	"time"
)

// Sleep waits for the duration or until ctx is closed, whichever comes first,
// and returns ctx.Err() in the latter case. Non-positive durations return at
// once.
func Sleep(ctx context.Context, duration time.Duration) error {
	if duration <= 0 {
		return nil
	}
	t := time.NewTimer(duration)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

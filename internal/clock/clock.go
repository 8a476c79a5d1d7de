// Package clock provides helpers for time-related operations.
package clock

import (
	"context"
	"time"
)

// SleepWithContext waits for the duration or returns early if the context is canceled.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// WaitForSignal waits until signal fires, the duration elapses or ctx is
// canceled. A nil signal channel never fires, so the call degrades to
// SleepWithContext. It reports whether the wake-up came from signal.
func WaitForSignal(ctx context.Context, d time.Duration, signal <-chan struct{}) (bool, error) {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case _, ok := <-signal:
		return ok, nil
	case <-timer.C:
		return false, nil
	}
}

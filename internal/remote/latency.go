// Package remote holds simulated implementations of the remote collaborators
// (Auth, Catalog, Booking). They answer from an in-memory sample dataset
// after a configurable delay, standing in for a backend that does not exist
// yet.
package remote

import (
	"context"
	"time"
)

// delay blocks for d or until ctx is done.
func delay(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

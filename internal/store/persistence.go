// Package store contains the client-side state containers for Chronotours.
// Each store holds in-memory state, mutates it through actions, exposes
// derived read queries, and persists to a local key-value store.
//
// Stores never reach past their collaborator interfaces: remote services and
// the key-value store are injected at construction.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pkordes/chronotours/internal/domain"
)

// Persistence is the durable key → JSON-string store the stores write to.
// Each entity persists under its own key; there are no multi-key transactions.
type Persistence interface {
	// Get returns the value stored under key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}

// Persisted key layout.
const (
	KeySession     = "auth"
	KeyDarkMode    = "isDarkMode"
	KeyTimePeriods = "timePeriods"
	KeyTours       = "tours"
)

// BookingsKey is the per-user cache key for a user's bookings, so switching
// accounts on one device does not leak data.
func BookingsKey(userID string) string {
	return "bookings_" + userID
}

// Clock returns the current time. Stores take one so tests can pin "now".
type Clock func() time.Time

func systemClock() time.Time { return time.Now().UTC() }

// saveJSON marshals v and writes it under key.
func saveJSON(ctx context.Context, kv Persistence, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", domain.ErrPersistence, key, err)
	}
	if err := kv.Set(ctx, key, string(b)); err != nil {
		return fmt.Errorf("%w: write %s: %w", domain.ErrPersistence, key, err)
	}
	return nil
}

// loadJSON reads key into out. It reports found=false when the key is absent.
// A value that fails to decode is returned as an error so hydration paths can
// log it and fall back to defaults.
func loadJSON(ctx context.Context, kv Persistence, key string, out any) (found bool, err error) {
	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("%w: read %s: %w", domain.ErrPersistence, key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false, fmt.Errorf("%w: decode %s: %w", domain.ErrPersistence, key, err)
	}
	return true, nil
}

// removeKey deletes key, wrapping failures as persistence errors.
func removeKey(ctx context.Context, kv Persistence, key string) error {
	if err := kv.Remove(ctx, key); err != nil {
		return fmt.Errorf("%w: remove %s: %w", domain.ErrPersistence, key, err)
	}
	return nil
}

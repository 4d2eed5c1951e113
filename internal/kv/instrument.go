package kv

import (
	"context"
	"time"

	"github.com/pkordes/chronotours/internal/metrics"
)

// Backend is the method set shared by every key-value backend.
type Backend interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

var (
	_ Backend = (*Memory)(nil)
	_ Backend = (*File)(nil)
	_ Backend = (*SQLite)(nil)
)

// Instrumented records latency and failures of every call to the wrapped
// backend, labelled by backend name.
type Instrumented struct {
	backend string
	next    Backend
}

// Instrument wraps next so its operations are reported to metrics.
func Instrument(backend string, next Backend) *Instrumented {
	return &Instrumented{backend: backend, next: next}
}

func (i *Instrumented) Get(ctx context.Context, key string) (string, bool, error) {
	start := time.Now()
	v, ok, err := i.next.Get(ctx, key)
	metrics.ObservePersistence(i.backend, "get", start, err)
	return v, ok, err
}

func (i *Instrumented) Set(ctx context.Context, key, value string) error {
	start := time.Now()
	err := i.next.Set(ctx, key, value)
	metrics.ObservePersistence(i.backend, "set", start, err)
	return err
}

func (i *Instrumented) Remove(ctx context.Context, key string) error {
	start := time.Now()
	err := i.next.Remove(ctx, key)
	metrics.ObservePersistence(i.backend, "remove", start, err)
	return err
}

// Package app wires the four client stores into one explicitly constructed
// graph shared by the HTTP bridge and the CLI.
package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkordes/chronotours/internal/remote"
	"github.com/pkordes/chronotours/internal/store"
)

// Remote bundles the collaborators the stores call out to.
type Remote struct {
	Auth     store.Authenticator
	Catalog  store.CatalogSource
	Bookings store.BookingBackend
}

// SimulatedRemote returns in-process collaborators that answer after latency.
func SimulatedRemote(latency time.Duration) Remote {
	return Remote{
		Auth:     remote.NewAuthService(latency),
		Catalog:  remote.NewCatalogService(latency),
		Bookings: remote.NewBookingService(latency),
	}
}

// App holds one instance of every store.
type App struct {
	Session     *store.SessionStore
	Catalog     *store.CatalogStore
	Bookings    *store.BookingStore
	Preferences *store.PreferenceStore

	log *slog.Logger
}

// New constructs the store graph over a single persistence backend.
// BookingStore reads the user id from SessionStore and tour limits from
// CatalogStore.
func New(r Remote, kv store.Persistence, log *slog.Logger) *App {
	sessions := store.NewSessionStore(r.Auth, kv, log.With("store", "session"))
	catalog := store.NewCatalogStore(r.Catalog, kv, log.With("store", "catalog"))
	return &App{
		Session:     sessions,
		Catalog:     catalog,
		Bookings:    store.NewBookingStore(sessions, catalog, r.Bookings, kv, log.With("store", "booking")),
		Preferences: store.NewPreferenceStore(kv, log.With("store", "preference")),
		log:         log,
	}
}

// Init hydrates every store. Bookings come last because they are keyed by the
// restored session's user.
func (a *App) Init(ctx context.Context) {
	start := time.Now()
	a.Preferences.InitTheme(ctx)
	a.Session.InitSession(ctx)
	a.Catalog.InitData(ctx)
	a.Bookings.InitBookings(ctx)
	a.log.InfoContext(ctx, "stores initialized",
		"authenticated", a.Session.IsAuthenticated(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
}

// Dispose drops in-memory state in reverse Init order. Persisted data is
// left untouched.
func (a *App) Dispose() {
	a.Bookings.Dispose()
	a.Catalog.Dispose()
	a.Session.Dispose()
	a.Preferences.Dispose()
}

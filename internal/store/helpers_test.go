package store_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/chronotours/internal/domain"
	"github.com/pkordes/chronotours/internal/store"
)

// mockKV is a hand-written test double for store.Persistence.
// Each method is a function field; set only the ones your test needs.
type mockKV struct {
	get    func(ctx context.Context, key string) (string, bool, error)
	set    func(ctx context.Context, key, value string) error
	remove func(ctx context.Context, key string) error
}

func (m *mockKV) Get(ctx context.Context, key string) (string, bool, error) {
	return m.get(ctx, key)
}
func (m *mockKV) Set(ctx context.Context, key, value string) error {
	return m.set(ctx, key, value)
}
func (m *mockKV) Remove(ctx context.Context, key string) error {
	return m.remove(ctx, key)
}

// mockAuth is a test double for store.Authenticator.
type mockAuth struct {
	authenticate  func(ctx context.Context, email, password string) (domain.Session, error)
	createAccount func(ctx context.Context, username, email, password string) (domain.Session, error)
}

func (m *mockAuth) Authenticate(ctx context.Context, email, password string) (domain.Session, error) {
	return m.authenticate(ctx, email, password)
}
func (m *mockAuth) CreateAccount(ctx context.Context, username, email, password string) (domain.Session, error) {
	return m.createAccount(ctx, username, email, password)
}

// mockCatalog is a test double for store.CatalogSource.
type mockCatalog struct {
	listTimePeriods func(ctx context.Context) ([]domain.TimePeriod, error)
	listTours       func(ctx context.Context, timePeriodID string) ([]domain.Tour, error)
}

func (m *mockCatalog) ListTimePeriods(ctx context.Context) ([]domain.TimePeriod, error) {
	return m.listTimePeriods(ctx)
}
func (m *mockCatalog) ListTours(ctx context.Context, timePeriodID string) ([]domain.Tour, error) {
	return m.listTours(ctx, timePeriodID)
}

// mockBackend is a test double for store.BookingBackend.
type mockBackend struct {
	listBookings        func(ctx context.Context, userID string) ([]domain.Booking, error)
	createBooking       func(ctx context.Context, b domain.Booking) (domain.Booking, error)
	updateBookingStatus func(ctx context.Context, id string, status domain.BookingStatus) (domain.Booking, error)
}

func (m *mockBackend) ListBookings(ctx context.Context, userID string) ([]domain.Booking, error) {
	return m.listBookings(ctx, userID)
}
func (m *mockBackend) CreateBooking(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	return m.createBooking(ctx, b)
}
func (m *mockBackend) UpdateBookingStatus(ctx context.Context, id string, status domain.BookingStatus) (domain.Booking, error) {
	return m.updateBookingStatus(ctx, id, status)
}

// fakeSession satisfies store.SessionAccessor with a switchable user id.
type fakeSession struct{ uid string }

func (f *fakeSession) UserID() (string, bool) { return f.uid, f.uid != "" }

// fakeTours satisfies store.TourLookup from a fixed list.
type fakeTours []domain.Tour

func (f fakeTours) GetTourByID(id string) (domain.Tour, bool) {
	for _, t := range f {
		if t.ID == id {
			return t, true
		}
	}
	return domain.Tour{}, false
}

// compile-time checks.
var (
	_ store.Persistence     = (*mockKV)(nil)
	_ store.Authenticator   = (*mockAuth)(nil)
	_ store.CatalogSource   = (*mockCatalog)(nil)
	_ store.BookingBackend  = (*mockBackend)(nil)
	_ store.SessionAccessor = (*fakeSession)(nil)
	_ store.SessionAccessor = (*store.SessionStore)(nil)
	_ store.TourLookup      = (*store.CatalogStore)(nil)
)

// ---- helpers ---------------------------------------------------------------

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// fixedClock returns a clock pinned at *now; tests advance it by assignment.
func fixedClock(now *time.Time) store.Clock {
	return func() time.Time { return *now }
}

// mustGet reads key from kv, failing the test if it is absent.
func mustGet(t *testing.T, kv store.Persistence, key string) string {
	t.Helper()
	v, ok, err := kv.Get(context.Background(), key)
	require.NoError(t, err)
	require.True(t, ok, "expected key %q to be persisted", key)
	return v
}

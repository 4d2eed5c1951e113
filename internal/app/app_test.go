package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/chronotours/internal/app"
	"github.com/pkordes/chronotours/internal/config"
	"github.com/pkordes/chronotours/internal/domain"
	"github.com/pkordes/chronotours/internal/kv"
	"github.com/pkordes/chronotours/internal/store"
	"github.com/pkordes/chronotours/testutil"
)

func newApp(p store.Persistence) *app.App {
	return app.New(app.SimulatedRemote(0), p, testutil.DiscardLogger())
}

func TestApp_Init_Fresh(t *testing.T) {
	a := newApp(kv.NewMemory())

	a.Init(context.Background())

	assert.False(t, a.Preferences.IsDarkMode())
	assert.False(t, a.Session.IsAuthenticated())
	assert.Len(t, a.Catalog.State().TimePeriods, 5)
	assert.Len(t, a.Catalog.State().Tours, 3)
	assert.Empty(t, a.Bookings.State().Bookings)
}

// TestApp_Init_RestoresPreviousRun verifies a cold start picks up the session
// and the bookings of that session's user.
func TestApp_Init_RestoresPreviousRun(t *testing.T) {
	mem := kv.NewMemory()
	ctx := context.Background()

	first := newApp(mem)
	first.Init(ctx)
	first.Preferences.SetTheme(ctx, true)
	_, err := first.Session.Login(ctx, "test@example.com", "password")
	require.NoError(t, err)
	booked, err := first.Bookings.CreateBooking(ctx, domain.BookingRequest{
		TourID:            "102",
		TourTitle:         "Leonardo's Workshop",
		TravelDate:        time.Now().UTC().AddDate(0, 2, 0),
		NumberOfTravelers: 1,
		TotalPrice:        12000,
	})
	require.NoError(t, err)

	second := newApp(mem)
	second.Init(ctx)

	assert.True(t, second.Preferences.IsDarkMode())
	assert.True(t, second.Session.IsAuthenticated())
	got, ok := second.Bookings.GetBookingByID(booked.ID)
	require.True(t, ok)
	assert.Equal(t, booked, got)
}

func TestApp_BookingsUseCatalogGroupSize(t *testing.T) {
	a := newApp(kv.NewMemory())
	ctx := context.Background()
	a.Init(ctx)
	_, err := a.Session.Login(ctx, "test@example.com", "password")
	require.NoError(t, err)

	_, err = a.Bookings.CreateBooking(ctx, domain.BookingRequest{
		TourID:            "101",
		TravelDate:        time.Now().UTC().AddDate(0, 1, 0),
		NumberOfTravelers: 9,
		TotalPrice:        1,
	})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestApp_Dispose(t *testing.T) {
	mem := kv.NewMemory()
	ctx := context.Background()
	a := newApp(mem)
	a.Init(ctx)
	_, err := a.Session.Login(ctx, "test@example.com", "password")
	require.NoError(t, err)

	a.Dispose()

	assert.False(t, a.Session.IsAuthenticated())
	assert.Empty(t, a.Catalog.State().TimePeriods)
	_, ok, err := mem.Get(ctx, store.KeySession)
	require.NoError(t, err)
	assert.True(t, ok, "persisted session survives Dispose")
}

// ---- OpenStorage -----------------------------------------------------------

func TestOpenStorage(t *testing.T) {
	for _, driver := range []string{config.DriverMemory, config.DriverFile, config.DriverSQLite} {
		t.Run(driver, func(t *testing.T) {
			ctx := context.Background()
			p, closeFn, err := app.OpenStorage(ctx, app.Storage{Driver: driver, DataDir: t.TempDir()}, testutil.DiscardLogger())
			require.NoError(t, err)
			t.Cleanup(closeFn)

			require.NoError(t, p.Set(ctx, "k", "v"))
			got, ok, err := p.Get(ctx, "k")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "v", got)
		})
	}
}

func TestOpenStorage_UnknownDriver(t *testing.T) {
	_, closeFn, err := app.OpenStorage(context.Background(), app.Storage{Driver: "redis"}, testutil.DiscardLogger())

	require.Error(t, err)
	assert.NotNil(t, closeFn)
}

func TestOpenStorage_Postgres(t *testing.T) {
	dsn := testutil.DSN(t)
	ctx := context.Background()

	p, closeFn, err := app.OpenStorage(ctx, app.Storage{Driver: config.DriverPostgres, DatabaseURL: dsn}, testutil.DiscardLogger())
	require.NoError(t, err)
	t.Cleanup(closeFn)

	const key = "app_test_roundtrip"
	t.Cleanup(func() { _ = p.Remove(ctx, key) })
	require.NoError(t, p.Set(ctx, key, "ok"))
	got, ok, err := p.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "ok", got)
}

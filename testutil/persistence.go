package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/chronotours/internal/store"
)

// PersistenceContract checks the behaviour every store.Persistence backend
// shares. p must start empty.
func PersistenceContract(t *testing.T, p store.Persistence) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := p.Get(ctx, store.KeySession)
	require.NoError(t, err)
	assert.False(t, ok, "missing key reports not found")

	require.NoError(t, p.Set(ctx, store.KeySession, `{"userId":"123"}`))
	v, ok, err := p.Get(ctx, store.KeySession)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"userId":"123"}`, v)

	require.NoError(t, p.Set(ctx, store.KeySession, `{"userId":"456"}`), "overwrite")
	v, _, err = p.Get(ctx, store.KeySession)
	require.NoError(t, err)
	assert.Equal(t, `{"userId":"456"}`, v)

	require.NoError(t, p.Set(ctx, store.BookingsKey("123"), `[]`))
	require.NoError(t, p.Remove(ctx, store.KeySession))
	_, ok, err = p.Get(ctx, store.KeySession)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = p.Get(ctx, store.BookingsKey("123"))
	require.NoError(t, err)
	assert.True(t, ok, "keys are independent")

	assert.NoError(t, p.Remove(ctx, "never-set"), "removing a missing key is a no-op")

	// A store writing through p is restored by a fresh store over p.
	prefs := store.NewPreferenceStore(p, DiscardLogger())
	prefs.SetTheme(ctx, true)
	restarted := store.NewPreferenceStore(p, DiscardLogger())
	restarted.InitTheme(ctx)
	assert.True(t, restarted.IsDarkMode(), "theme survives a restart")
}

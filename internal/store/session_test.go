package store_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/chronotours/internal/domain"
	"github.com/pkordes/chronotours/internal/kv"
	"github.com/pkordes/chronotours/internal/remote"
	"github.com/pkordes/chronotours/internal/store"
)

func newSessionStore(auth store.Authenticator, p store.Persistence) *store.SessionStore {
	return store.NewSessionStore(auth, p, discardLogger())
}

// ---- Login -----------------------------------------------------------------

func TestSessionStore_Login_DemoAccount(t *testing.T) {
	mem := kv.NewMemory()
	s := newSessionStore(remote.NewAuthService(0), mem)

	got, err := s.Login(context.Background(), "test@example.com", "password")

	require.NoError(t, err)
	assert.Equal(t, "TimeTraveler", got.Username)
	assert.False(t, got.CredentialToken.IsZero(), "a fresh token is issued")
	assert.True(t, s.IsAuthenticated())

	st := s.State()
	assert.False(t, st.IsLoading)
	assert.Empty(t, st.Error)

	var persisted domain.Session
	require.NoError(t, json.Unmarshal([]byte(mustGet(t, mem, store.KeySession)), &persisted))
	assert.Equal(t, got, persisted)
}

func TestSessionStore_Login_IssuesNewTokenEachTime(t *testing.T) {
	s := newSessionStore(remote.NewAuthService(0), kv.NewMemory())
	ctx := context.Background()

	first, err := s.Login(ctx, "test@example.com", "password")
	require.NoError(t, err)
	second, err := s.Login(ctx, "test@example.com", "password")
	require.NoError(t, err)

	assert.NotEqual(t, first.CredentialToken, second.CredentialToken)
}

func TestSessionStore_Login_BadCredentials(t *testing.T) {
	s := newSessionStore(remote.NewAuthService(0), kv.NewMemory())

	_, err := s.Login(context.Background(), "test@example.com", "wrong")

	assert.ErrorIs(t, err, domain.ErrAuthenticationFailed)
	assert.False(t, s.IsAuthenticated())
	st := s.State()
	assert.False(t, st.IsLoading, "loading is reset on failure")
	assert.Contains(t, st.Error, "invalid credentials")
}

func TestSessionStore_Login_PersistenceFailure(t *testing.T) {
	diskErr := errors.New("disk full")
	p := &mockKV{set: func(context.Context, string, string) error { return diskErr }}
	s := newSessionStore(remote.NewAuthService(0), p)

	_, err := s.Login(context.Background(), "test@example.com", "password")

	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.ErrorIs(t, err, diskErr)
	assert.False(t, s.IsAuthenticated(), "state is only published after the write")
}

// ---- Register --------------------------------------------------------------

func TestSessionStore_Register_SignsInWithZeroPoints(t *testing.T) {
	auth := &mockAuth{
		createAccount: func(_ context.Context, username, email, _ string) (domain.Session, error) {
			return domain.Session{UserID: "new-1", Username: username, Email: email, Points: 42}, nil
		},
	}
	mem := kv.NewMemory()
	s := newSessionStore(auth, mem)

	got, err := s.Register(context.Background(), "Chrono", "chrono@example.com", "pw")

	require.NoError(t, err)
	assert.Equal(t, 0, got.Points)
	assert.Equal(t, "Chrono", got.Username)
	assert.True(t, s.IsAuthenticated())
	assert.Contains(t, mustGet(t, mem, store.KeySession), `"userId":"new-1"`)
}

func TestSessionStore_Register_Rejected(t *testing.T) {
	s := newSessionStore(remote.NewAuthService(0), kv.NewMemory())

	_, err := s.Register(context.Background(), "Dup", "test@example.com", "pw")

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.False(t, s.IsAuthenticated())
	assert.NotEmpty(t, s.State().Error)
}

// ---- Logout ----------------------------------------------------------------

func TestSessionStore_Logout_ClearsMemoryAndStorage(t *testing.T) {
	mem := kv.NewMemory()
	s := newSessionStore(remote.NewAuthService(0), mem)
	ctx := context.Background()
	_, err := s.Login(ctx, "test@example.com", "password")
	require.NoError(t, err)

	require.NoError(t, s.Logout(ctx))

	assert.False(t, s.IsAuthenticated())
	_, ok, err := mem.Get(ctx, store.KeySession)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSessionStore_Logout_Idempotent(t *testing.T) {
	s := newSessionStore(remote.NewAuthService(0), kv.NewMemory())

	assert.NoError(t, s.Logout(context.Background()))
	assert.NoError(t, s.Logout(context.Background()))
}

func TestSessionStore_Logout_RemoveFailureStillSignsOut(t *testing.T) {
	p := &mockKV{
		set:    func(context.Context, string, string) error { return nil },
		remove: func(context.Context, string) error { return errors.New("locked") },
	}
	s := newSessionStore(remote.NewAuthService(0), p)
	_, err := s.Login(context.Background(), "test@example.com", "password")
	require.NoError(t, err)

	err = s.Logout(context.Background())

	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.False(t, s.IsAuthenticated())
}

// ---- InitSession -----------------------------------------------------------

func TestSessionStore_InitSession_RoundTrip(t *testing.T) {
	mem := kv.NewMemory()
	ctx := context.Background()
	first := newSessionStore(remote.NewAuthService(0), mem)
	want, err := first.Login(ctx, "test@example.com", "password")
	require.NoError(t, err)
	name := "Renamed"
	favs := []string{"1", "5"}
	want, err = first.UpdateProfile(ctx, domain.ProfileUpdate{Username: &name, FavoriteTimePeriods: &favs})
	require.NoError(t, err)

	// A second store over the same storage simulates a cold start.
	restarted := newSessionStore(remote.NewAuthService(0), mem)
	restarted.InitSession(ctx)

	got, ok := restarted.Session()
	require.True(t, ok)
	assert.Equal(t, want, got)
	assert.True(t, restarted.IsAuthenticated())
	assert.False(t, restarted.State().IsLoading)
}

func TestSessionStore_InitSession_Absent(t *testing.T) {
	s := newSessionStore(remote.NewAuthService(0), kv.NewMemory())

	s.InitSession(context.Background())

	assert.False(t, s.IsAuthenticated())
	_, ok := s.UserID()
	assert.False(t, ok)
}

func TestSessionStore_InitSession_CorruptRecord(t *testing.T) {
	mem := kv.NewMemory()
	require.NoError(t, mem.Set(context.Background(), store.KeySession, "{not json"))
	s := newSessionStore(remote.NewAuthService(0), mem)

	s.InitSession(context.Background())

	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, s.State().Error, "hydration failures are not surfaced")
}

func TestSessionStore_InitSession_ReadFailure(t *testing.T) {
	p := &mockKV{get: func(context.Context, string) (string, bool, error) {
		return "", false, errors.New("io error")
	}}
	s := newSessionStore(remote.NewAuthService(0), p)

	s.InitSession(context.Background())

	assert.False(t, s.IsAuthenticated())
}

func TestSessionStore_IsAuthenticated_RequiresToken(t *testing.T) {
	mem := kv.NewMemory()
	require.NoError(t, mem.Set(context.Background(), store.KeySession, `{"userId":"123","username":"TimeTraveler"}`))
	s := newSessionStore(remote.NewAuthService(0), mem)

	s.InitSession(context.Background())

	_, ok := s.Session()
	assert.True(t, ok, "the record is restored verbatim")
	assert.False(t, s.IsAuthenticated(), "but without a token it is not authenticated")
}

// ---- UpdateProfile ---------------------------------------------------------

func TestSessionStore_UpdateProfile_NotAuthenticated(t *testing.T) {
	s := newSessionStore(remote.NewAuthService(0), kv.NewMemory())
	pts := 5

	_, err := s.UpdateProfile(context.Background(), domain.ProfileUpdate{Points: &pts})

	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
	assert.False(t, s.State().IsLoading)
}

func TestSessionStore_UpdateProfile_MergesAndPersists(t *testing.T) {
	mem := kv.NewMemory()
	s := newSessionStore(remote.NewAuthService(0), mem)
	ctx := context.Background()
	before, err := s.Login(ctx, "test@example.com", "password")
	require.NoError(t, err)
	pic := "https://example.com/new.jpg"

	got, err := s.UpdateProfile(ctx, domain.ProfileUpdate{ProfilePicture: &pic})

	require.NoError(t, err)
	assert.Equal(t, pic, got.ProfilePicture)
	assert.Equal(t, before.Username, got.Username)
	assert.Equal(t, before.CredentialToken, got.CredentialToken)
	assert.Contains(t, mustGet(t, mem, store.KeySession), pic)
}

func TestSessionStore_Dispose(t *testing.T) {
	mem := kv.NewMemory()
	s := newSessionStore(remote.NewAuthService(0), mem)
	_, err := s.Login(context.Background(), "test@example.com", "password")
	require.NoError(t, err)

	s.Dispose()

	assert.False(t, s.IsAuthenticated())
	mustGet(t, mem, store.KeySession) // storage untouched
}

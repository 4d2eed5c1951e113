package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pkordes/chronotours/internal/domain"
)

// Authenticator is the remote Auth collaborator.
type Authenticator interface {
	// Authenticate checks a credential pair. Returns an error wrapping
	// domain.ErrAuthenticationFailed when the pair is rejected.
	Authenticate(ctx context.Context, email, password string) (domain.Session, error)

	// CreateAccount registers a new user. Returns an error wrapping
	// domain.ErrValidation when the payload is rejected (e.g. duplicate email).
	CreateAccount(ctx context.Context, username, email, password string) (domain.Session, error)
}

// SessionState is a snapshot of SessionStore state.
type SessionState struct {
	Session   *domain.Session `json:"session"`
	IsLoading bool            `json:"isLoading"`
	Error     string          `json:"error,omitempty"`
}

// SessionStore owns authentication and session identity.
type SessionStore struct {
	auth     Authenticator
	kv       Persistence
	log      *slog.Logger
	newToken func() (domain.Token, error)

	mu        sync.RWMutex
	session   *domain.Session
	isLoading bool
	err       string
}

// NewSessionStore constructs a SessionStore backed by the given collaborators.
func NewSessionStore(auth Authenticator, kv Persistence, log *slog.Logger) *SessionStore {
	return &SessionStore{auth: auth, kv: kv, log: log, newToken: domain.NewToken}
}

// State returns a copy of the current state.
func (s *SessionStore) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := SessionState{IsLoading: s.isLoading, Error: s.err}
	if s.session != nil {
		cp := *s.session
		st.Session = &cp
	}
	return st
}

// Session returns the active session, if any.
func (s *SessionStore) Session() (domain.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return domain.Session{}, false
	}
	return *s.session, true
}

// UserID returns the active user's id. It is the session capability handed
// to BookingStore.
func (s *SessionStore) UserID() (string, bool) {
	sess, ok := s.Session()
	if !ok || sess.UserID == "" {
		return "", false
	}
	return sess.UserID, true
}

// IsAuthenticated reports whether a session with a credential token exists.
func (s *SessionStore) IsAuthenticated() bool {
	sess, ok := s.Session()
	return ok && !sess.CredentialToken.IsZero()
}

// Login authenticates with the Auth collaborator, issues a fresh token, and
// persists the new session.
func (s *SessionStore) Login(ctx context.Context, email, password string) (domain.Session, error) {
	s.begin()
	sess, err := s.auth.Authenticate(ctx, email, password)
	if err != nil {
		return domain.Session{}, s.fail(fmt.Errorf("store.SessionStore.Login: %w", err))
	}
	return s.signIn(ctx, "store.SessionStore.Login", sess)
}

// Register creates an account with zeroed stats and signs the user in
// immediately. There is no separate confirmation step.
func (s *SessionStore) Register(ctx context.Context, username, email, password string) (domain.Session, error) {
	s.begin()
	sess, err := s.auth.CreateAccount(ctx, username, email, password)
	if err != nil {
		return domain.Session{}, s.fail(fmt.Errorf("store.SessionStore.Register: %w", err))
	}
	sess.Points = 0
	return s.signIn(ctx, "store.SessionStore.Register", sess)
}

// signIn attaches a fresh token to sess, persists it, then publishes it.
func (s *SessionStore) signIn(ctx context.Context, op string, sess domain.Session) (domain.Session, error) {
	tok, err := s.newToken()
	if err != nil {
		return domain.Session{}, s.fail(fmt.Errorf("%s: %w", op, err))
	}
	sess.CredentialToken = tok

	if err := saveJSON(ctx, s.kv, KeySession, sess); err != nil {
		return domain.Session{}, s.fail(fmt.Errorf("%s: %w", op, err))
	}

	s.mu.Lock()
	s.session = &sess
	s.isLoading = false
	s.mu.Unlock()

	s.log.InfoContext(ctx, "session started", "user_id", sess.UserID)
	return sess, nil
}

// Logout clears the in-memory session unconditionally and removes the
// persisted record. Calling it without a session is a no-op success.
// A failed remove is returned after the in-memory session is already gone.
func (s *SessionStore) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.session = nil
	s.err = ""
	s.mu.Unlock()

	if err := removeKey(ctx, s.kv, KeySession); err != nil {
		err = fmt.Errorf("store.SessionStore.Logout: %w", err)
		s.mu.Lock()
		s.err = err.Error()
		s.mu.Unlock()
		return err
	}
	return nil
}

// InitSession restores the persisted session verbatim. There is no freshness
// or expiry check. An absent or corrupt record leaves the store
// unauthenticated; failures are logged, never returned.
func (s *SessionStore) InitSession(ctx context.Context) {
	s.mu.Lock()
	s.isLoading = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.isLoading = false
		s.mu.Unlock()
	}()

	var sess domain.Session
	found, err := loadJSON(ctx, s.kv, KeySession, &sess)
	if err != nil {
		s.log.ErrorContext(ctx, "error loading session", "error", err)
		return
	}
	if !found {
		return
	}

	s.mu.Lock()
	s.session = &sess
	s.mu.Unlock()
}

// UpdateProfile merges u into the active session and re-persists it.
// Returns domain.ErrNotAuthenticated if no session exists.
func (s *SessionStore) UpdateProfile(ctx context.Context, u domain.ProfileUpdate) (domain.Session, error) {
	s.begin()
	current, ok := s.Session()
	if !ok {
		return domain.Session{}, s.fail(fmt.Errorf("store.SessionStore.UpdateProfile: %w", domain.ErrNotAuthenticated))
	}

	updated := u.Apply(current)
	if err := saveJSON(ctx, s.kv, KeySession, updated); err != nil {
		return domain.Session{}, s.fail(fmt.Errorf("store.SessionStore.UpdateProfile: %w", err))
	}

	s.mu.Lock()
	s.session = &updated
	s.isLoading = false
	s.mu.Unlock()
	return updated, nil
}

// Dispose drops in-memory state. Persisted data is left untouched.
func (s *SessionStore) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	s.isLoading = false
	s.err = ""
}

func (s *SessionStore) begin() {
	s.mu.Lock()
	s.isLoading = true
	s.err = ""
	s.mu.Unlock()
}

// fail records err on the store, clears the loading flag, and returns err.
func (s *SessionStore) fail(err error) error {
	s.mu.Lock()
	s.isLoading = false
	s.err = err.Error()
	s.mu.Unlock()
	return err
}

package store

import (
	"context"
	"log/slog"
	"sync"

	"github.com/pkordes/chronotours/internal/domain"
)

// PreferenceStore owns the dark/light mode preference.
type PreferenceStore struct {
	kv  Persistence
	log *slog.Logger

	mu   sync.RWMutex
	pref domain.Preference
}

// NewPreferenceStore constructs a PreferenceStore in light mode.
func NewPreferenceStore(kv Persistence, log *slog.Logger) *PreferenceStore {
	return &PreferenceStore{kv: kv, log: log}
}

// IsDarkMode reports the current theme.
func (s *PreferenceStore) IsDarkMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pref.IsDarkMode
}

// ToggleTheme flips the theme and returns the new value.
func (s *PreferenceStore) ToggleTheme(ctx context.Context) bool {
	s.mu.Lock()
	s.pref.IsDarkMode = !s.pref.IsDarkMode
	v := s.pref.IsDarkMode
	s.mu.Unlock()

	s.save(ctx, v)
	return v
}

// SetTheme sets the theme explicitly.
func (s *PreferenceStore) SetTheme(ctx context.Context, dark bool) {
	s.mu.Lock()
	s.pref.IsDarkMode = dark
	s.mu.Unlock()

	s.save(ctx, dark)
}

// save is a best-effort write: the in-memory value is already authoritative,
// so a failed write is logged and discarded rather than surfaced.
func (s *PreferenceStore) save(ctx context.Context, dark bool) {
	if err := saveJSON(ctx, s.kv, KeyDarkMode, dark); err != nil {
		s.log.WarnContext(ctx, "theme preference not saved", "error", err)
	}
}

// InitTheme hydrates the theme once at startup. An unset or corrupt value
// leaves the default (light mode).
func (s *PreferenceStore) InitTheme(ctx context.Context) {
	var dark bool
	found, err := loadJSON(ctx, s.kv, KeyDarkMode, &dark)
	if err != nil {
		s.log.ErrorContext(ctx, "error loading theme preference", "error", err)
		return
	}
	if !found {
		return
	}
	s.mu.Lock()
	s.pref.IsDarkMode = dark
	s.mu.Unlock()
}

// Dispose resets the in-memory preference to the default.
func (s *PreferenceStore) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pref = domain.Preference{}
}

package store

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/pkordes/chronotours/internal/domain"
)

// CatalogSource is the remote Catalog collaborator.
type CatalogSource interface {
	ListTimePeriods(ctx context.Context) ([]domain.TimePeriod, error)
	// ListTours returns tours, filtered server-side when timePeriodID is
	// non-empty.
	ListTours(ctx context.Context, timePeriodID string) ([]domain.Tour, error)
}

// CatalogState is a snapshot of CatalogStore state.
type CatalogState struct {
	TimePeriods       []domain.TimePeriod `json:"timePeriods"`
	Tours             []domain.Tour       `json:"tours"`
	CurrentTimePeriod *domain.TimePeriod  `json:"currentTimePeriod,omitempty"`
	CurrentTour       *domain.Tour        `json:"currentTour,omitempty"`
	IsLoading         bool                `json:"isLoading"`
	Error             string              `json:"error,omitempty"`
}

// CatalogStore owns the read-only tourism catalog.
type CatalogStore struct {
	source CatalogSource
	kv     Persistence
	log    *slog.Logger

	mu                sync.RWMutex
	timePeriods       []domain.TimePeriod
	tours             []domain.Tour
	allTours          []domain.Tour // last full set; backs by-id lookups
	currentTimePeriod *domain.TimePeriod
	currentTour       *domain.Tour
	isLoading         bool
	err               string
}

// NewCatalogStore constructs a CatalogStore backed by the given collaborators.
func NewCatalogStore(source CatalogSource, kv Persistence, log *slog.Logger) *CatalogStore {
	return &CatalogStore{source: source, kv: kv, log: log}
}

// State returns a copy of the current state.
func (s *CatalogStore) State() CatalogState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := CatalogState{
		TimePeriods: slices.Clone(s.timePeriods),
		Tours:       slices.Clone(s.tours),
		IsLoading:   s.isLoading,
		Error:       s.err,
	}
	if s.currentTimePeriod != nil {
		p := *s.currentTimePeriod
		st.CurrentTimePeriod = &p
	}
	if s.currentTour != nil {
		t := *s.currentTour
		st.CurrentTour = &t
	}
	return st
}

// FetchTimePeriods replaces the time periods with the collaborator's full
// list and persists a snapshot for offline reads. Concurrent calls are not
// coordinated: the last response to arrive wins.
func (s *CatalogStore) FetchTimePeriods(ctx context.Context) error {
	s.begin()
	periods, err := s.source.ListTimePeriods(ctx)
	if err != nil {
		return s.fail(fmt.Errorf("store.CatalogStore.FetchTimePeriods: %w", err))
	}
	for _, p := range periods {
		if err := p.Validate(); err != nil {
			return s.fail(fmt.Errorf("store.CatalogStore.FetchTimePeriods: %w", err))
		}
	}
	if err := saveJSON(ctx, s.kv, KeyTimePeriods, periods); err != nil {
		return s.fail(fmt.Errorf("store.CatalogStore.FetchTimePeriods: %w", err))
	}

	s.mu.Lock()
	s.timePeriods = periods
	s.isLoading = false
	s.mu.Unlock()
	return nil
}

// FetchTours loads tours, optionally filtered by time period.
//
// The persisted snapshot always holds the unfiltered full set, while state
// holds only the filtered subset. Callers needing the full catalog in state
// must refetch with an empty timePeriodID. GetTourByID keeps resolving any
// tour of the full set.
func (s *CatalogStore) FetchTours(ctx context.Context, timePeriodID string) error {
	s.begin()

	var all, filtered []domain.Tour
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		all, err = s.source.ListTours(gctx, "")
		return err
	})
	if timePeriodID != "" {
		g.Go(func() error {
			var err error
			filtered, err = s.source.ListTours(gctx, timePeriodID)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return s.fail(fmt.Errorf("store.CatalogStore.FetchTours: %w", err))
	}
	if timePeriodID == "" {
		filtered = all
	}

	for _, t := range all {
		if err := t.Validate(); err != nil {
			return s.fail(fmt.Errorf("store.CatalogStore.FetchTours: %w", err))
		}
	}
	if err := saveJSON(ctx, s.kv, KeyTours, all); err != nil {
		return s.fail(fmt.Errorf("store.CatalogStore.FetchTours: %w", err))
	}

	s.mu.Lock()
	s.tours = filtered
	s.allTours = all
	s.isLoading = false
	s.mu.Unlock()
	return nil
}

// GetTimePeriodByID looks up a time period in memory. Absence is not an error.
func (s *CatalogStore) GetTimePeriodByID(id string) (domain.TimePeriod, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.timePeriods {
		if p.ID == id {
			return p, true
		}
	}
	return domain.TimePeriod{}, false
}

// GetTourByID looks up a tour in the full catalog, regardless of any filter
// applied to State().Tours. Absence is not an error.
func (s *CatalogStore) GetTourByID(id string) (domain.Tour, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.allTours {
		if t.ID == id {
			return t, true
		}
	}
	return domain.Tour{}, false
}

// GetFeaturedTimePeriods returns featured periods in source order.
func (s *CatalogStore) GetFeaturedTimePeriods() []domain.TimePeriod {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.TimePeriod{}
	for _, p := range s.timePeriods {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out
}

// SearchTimePeriods matches query case-insensitively against name and
// description. A blank query returns every period.
func (s *CatalogStore) SearchTimePeriods(query string) []domain.TimePeriod {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q := strings.ToLower(strings.TrimSpace(query))
	out := []domain.TimePeriod{}
	for _, p := range s.timePeriods {
		if q == "" ||
			strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) {
			out = append(out, p)
		}
	}
	return out
}

// TimelineTimePeriods returns periods ordered by start year, oldest first.
// Periods sharing a start year keep source order.
func (s *CatalogStore) TimelineTimePeriods() []domain.TimePeriod {
	s.mu.RLock()
	out := slices.Clone(s.timePeriods)
	s.mu.RUnlock()
	if out == nil {
		out = []domain.TimePeriod{}
	}
	slices.SortStableFunc(out, func(a, b domain.TimePeriod) int {
		return cmp.Compare(a.StartYear, b.StartYear)
	})
	return out
}

// SetCurrentTimePeriod selects a period by id; an unknown id clears the
// selection.
func (s *CatalogStore) SetCurrentTimePeriod(id string) {
	p, ok := s.GetTimePeriodByID(id)
	s.mu.Lock()
	defer s.mu.Unlock()
	if !ok {
		s.currentTimePeriod = nil
		return
	}
	s.currentTimePeriod = &p
}

// SetCurrentTour selects a tour by id; an unknown id clears the selection.
func (s *CatalogStore) SetCurrentTour(id string) {
	t, ok := s.GetTourByID(id)
	s.mu.Lock()
	defer s.mu.Unlock()
	if !ok {
		s.currentTour = nil
		return
	}
	s.currentTour = &t
}

// InitData hydrates each entity kind from its snapshot, falling back to a
// fetch for any kind without one. Failures are logged, never returned.
func (s *CatalogStore) InitData(ctx context.Context) {
	s.mu.Lock()
	s.isLoading = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.isLoading = false
		s.mu.Unlock()
	}()

	var (
		periods     []domain.TimePeriod
		tours       []domain.Tour
		havePeriods bool
		haveTours   bool
	)
	// A snapshot that cannot be read is treated as absent so the kind is
	// refetched instead of leaving the catalog empty.
	var g errgroup.Group
	g.Go(func() error {
		var err error
		if havePeriods, err = loadJSON(ctx, s.kv, KeyTimePeriods, &periods); err != nil {
			s.log.ErrorContext(ctx, "error loading time periods snapshot", "error", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if haveTours, err = loadJSON(ctx, s.kv, KeyTours, &tours); err != nil {
			s.log.ErrorContext(ctx, "error loading tours snapshot", "error", err)
		}
		return nil
	})
	_ = g.Wait()

	if havePeriods {
		s.mu.Lock()
		s.timePeriods = periods
		s.mu.Unlock()
	} else if err := s.FetchTimePeriods(ctx); err != nil {
		s.log.ErrorContext(ctx, "error fetching time periods", "error", err)
	}

	if haveTours {
		s.mu.Lock()
		s.tours = tours
		s.allTours = tours
		s.mu.Unlock()
	} else if err := s.FetchTours(ctx, ""); err != nil {
		s.log.ErrorContext(ctx, "error fetching tours", "error", err)
	}
}

// Dispose drops in-memory state. Persisted snapshots are left untouched.
func (s *CatalogStore) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timePeriods = nil
	s.tours = nil
	s.allTours = nil
	s.currentTimePeriod = nil
	s.currentTour = nil
	s.isLoading = false
	s.err = ""
}

func (s *CatalogStore) begin() {
	s.mu.Lock()
	s.isLoading = true
	s.err = ""
	s.mu.Unlock()
}

func (s *CatalogStore) fail(err error) error {
	s.mu.Lock()
	s.isLoading = false
	s.err = err.Error()
	s.mu.Unlock()
	return err
}

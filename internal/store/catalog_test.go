package store_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/chronotours/internal/domain"
	"github.com/pkordes/chronotours/internal/kv"
	"github.com/pkordes/chronotours/internal/remote"
	"github.com/pkordes/chronotours/internal/store"
)

func newCatalogStore(src store.CatalogSource, p store.Persistence) *store.CatalogStore {
	return store.NewCatalogStore(src, p, discardLogger())
}

func periodIDs(ps []domain.TimePeriod) []string {
	ids := make([]string, len(ps))
	for i, p := range ps {
		ids[i] = p.ID
	}
	return ids
}

func tourIDs(ts []domain.Tour) []string {
	ids := make([]string, len(ts))
	for i, t := range ts {
		ids[i] = t.ID
	}
	return ids
}

// loadedCatalog returns a store with every sample period and tour in state.
func loadedCatalog(t *testing.T) *store.CatalogStore {
	t.Helper()
	s := newCatalogStore(remote.NewCatalogService(0), kv.NewMemory())
	require.NoError(t, s.FetchTimePeriods(context.Background()))
	require.NoError(t, s.FetchTours(context.Background(), ""))
	return s
}

// ---- FetchTimePeriods ------------------------------------------------------

func TestCatalogStore_FetchTimePeriods_ReplacesAndPersists(t *testing.T) {
	mem := kv.NewMemory()
	s := newCatalogStore(remote.NewCatalogService(0), mem)

	require.NoError(t, s.FetchTimePeriods(context.Background()))

	st := s.State()
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, periodIDs(st.TimePeriods))
	assert.False(t, st.IsLoading)

	var snapshot []domain.TimePeriod
	require.NoError(t, json.Unmarshal([]byte(mustGet(t, mem, store.KeyTimePeriods)), &snapshot))
	assert.Equal(t, st.TimePeriods, snapshot)
}

func TestCatalogStore_FetchTimePeriods_SourceError(t *testing.T) {
	src := &mockCatalog{listTimePeriods: func(context.Context) ([]domain.TimePeriod, error) {
		return nil, errors.New("network down")
	}}
	s := newCatalogStore(src, kv.NewMemory())

	err := s.FetchTimePeriods(context.Background())

	require.Error(t, err)
	st := s.State()
	assert.Contains(t, st.Error, "network down")
	assert.False(t, st.IsLoading)
	assert.Empty(t, st.TimePeriods)
}

func TestCatalogStore_FetchTimePeriods_RejectsInvertedRange(t *testing.T) {
	src := &mockCatalog{listTimePeriods: func(context.Context) ([]domain.TimePeriod, error) {
		return []domain.TimePeriod{{ID: "x", StartYear: 10, EndYear: 5}}, nil
	}}
	mem := kv.NewMemory()
	s := newCatalogStore(src, mem)

	err := s.FetchTimePeriods(context.Background())

	assert.ErrorIs(t, err, domain.ErrValidation)
	_, ok, _ := mem.Get(context.Background(), store.KeyTimePeriods)
	assert.False(t, ok, "nothing is persisted for a rejected response")
}

func TestCatalogStore_FetchTimePeriods_LastResponseWins(t *testing.T) {
	release := make(chan struct{})
	var calls atomic.Int32
	src := &mockCatalog{listTimePeriods: func(context.Context) ([]domain.TimePeriod, error) {
		if calls.Add(1) == 1 {
			<-release
			return []domain.TimePeriod{{ID: "slow"}}, nil
		}
		return []domain.TimePeriod{{ID: "fast"}}, nil
	}}
	s := newCatalogStore(src, kv.NewMemory())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, s.FetchTimePeriods(context.Background()))
	}()
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)

	require.NoError(t, s.FetchTimePeriods(context.Background()))
	close(release)
	wg.Wait()

	assert.Equal(t, []string{"slow"}, periodIDs(s.State().TimePeriods))
}

// ---- FetchTours ------------------------------------------------------------

func TestCatalogStore_FetchTours_FilteredStateFullSnapshot(t *testing.T) {
	mem := kv.NewMemory()
	s := newCatalogStore(remote.NewCatalogService(0), mem)

	require.NoError(t, s.FetchTours(context.Background(), "2"))

	st := s.State()
	require.Len(t, st.Tours, 1)
	assert.Equal(t, "2", st.Tours[0].TimePeriodID)

	var snapshot []domain.Tour
	require.NoError(t, json.Unmarshal([]byte(mustGet(t, mem, store.KeyTours)), &snapshot))
	assert.Equal(t, []string{"101", "102", "103"}, tourIDs(snapshot))
}

func TestCatalogStore_GetTourByID_IgnoresFilter(t *testing.T) {
	s := newCatalogStore(remote.NewCatalogService(0), kv.NewMemory())
	require.NoError(t, s.FetchTours(context.Background(), "2"))
	require.Equal(t, []string{"102"}, tourIDs(s.State().Tours))

	tour, ok := s.GetTourByID("101")
	require.True(t, ok, "tours outside the filter still resolve by id")
	assert.Equal(t, "1", tour.TimePeriodID)

	s.SetCurrentTour("103")
	require.NotNil(t, s.State().CurrentTour)
	assert.Equal(t, "103", s.State().CurrentTour.ID)
}

func TestCatalogStore_FetchTours_Unfiltered(t *testing.T) {
	s := newCatalogStore(remote.NewCatalogService(0), kv.NewMemory())

	require.NoError(t, s.FetchTours(context.Background(), ""))

	assert.Equal(t, []string{"101", "102", "103"}, tourIDs(s.State().Tours))
}

func TestCatalogStore_FetchTours_UnknownPeriodIsEmpty(t *testing.T) {
	s := newCatalogStore(remote.NewCatalogService(0), kv.NewMemory())

	require.NoError(t, s.FetchTours(context.Background(), "99"))

	assert.Empty(t, s.State().Tours)
}

func TestCatalogStore_FetchTours_SourceError(t *testing.T) {
	src := &mockCatalog{listTours: func(_ context.Context, id string) ([]domain.Tour, error) {
		if id != "" {
			return nil, errors.New("boom")
		}
		return remote.SampleTours(), nil
	}}
	mem := kv.NewMemory()
	s := newCatalogStore(src, mem)

	err := s.FetchTours(context.Background(), "1")

	require.Error(t, err)
	assert.NotEmpty(t, s.State().Error)
	_, ok, _ := mem.Get(context.Background(), store.KeyTours)
	assert.False(t, ok)
}

// ---- selectors -------------------------------------------------------------

func TestCatalogStore_GetByID(t *testing.T) {
	s := loadedCatalog(t)

	p, ok := s.GetTimePeriodByID("4")
	require.True(t, ok)
	assert.Equal(t, "Industrial Revolution", p.Name)

	_, ok = s.GetTimePeriodByID("nope")
	assert.False(t, ok)

	tour, ok := s.GetTourByID("103")
	require.True(t, ok)
	assert.Equal(t, "5", tour.TimePeriodID)

	_, ok = s.GetTourByID("nope")
	assert.False(t, ok)
}

func TestCatalogStore_GetFeaturedTimePeriods(t *testing.T) {
	s := loadedCatalog(t)

	assert.Equal(t, []string{"1", "2", "5"}, periodIDs(s.GetFeaturedTimePeriods()))
}

func TestCatalogStore_SearchTimePeriods(t *testing.T) {
	s := loadedCatalog(t)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"matches name case-insensitively", "RENAISSANCE", []string{"2"}},
		{"matches description", "pyramids", []string{"1"}},
		{"blank returns all", "  ", []string{"1", "2", "3", "4", "5"}},
		{"no match", "dinosaurs", []string{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, periodIDs(s.SearchTimePeriods(tc.query)))
		})
	}
}

func TestCatalogStore_TimelineTimePeriods(t *testing.T) {
	s := loadedCatalog(t)

	// 2 and 3 share a start year and keep source order.
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, periodIDs(s.TimelineTimePeriods()))
}

func TestCatalogStore_TimelineTimePeriods_Empty(t *testing.T) {
	s := newCatalogStore(remote.NewCatalogService(0), kv.NewMemory())

	assert.NotNil(t, s.TimelineTimePeriods())
	assert.Empty(t, s.TimelineTimePeriods())
}

func TestCatalogStore_SetCurrent(t *testing.T) {
	s := loadedCatalog(t)

	s.SetCurrentTimePeriod("5")
	s.SetCurrentTour("101")
	st := s.State()
	require.NotNil(t, st.CurrentTimePeriod)
	require.NotNil(t, st.CurrentTour)
	assert.Equal(t, "5", st.CurrentTimePeriod.ID)
	assert.Equal(t, "101", st.CurrentTour.ID)

	s.SetCurrentTimePeriod("missing")
	s.SetCurrentTour("missing")
	st = s.State()
	assert.Nil(t, st.CurrentTimePeriod)
	assert.Nil(t, st.CurrentTour)
}

// ---- InitData --------------------------------------------------------------

func TestCatalogStore_InitData_HydratesWithoutFetching(t *testing.T) {
	mem := kv.NewMemory()
	warm := newCatalogStore(remote.NewCatalogService(0), mem)
	require.NoError(t, warm.FetchTimePeriods(context.Background()))
	require.NoError(t, warm.FetchTours(context.Background(), ""))

	src := &mockCatalog{
		listTimePeriods: func(context.Context) ([]domain.TimePeriod, error) {
			t.Error("time periods should come from the snapshot")
			return nil, nil
		},
		listTours: func(context.Context, string) ([]domain.Tour, error) {
			t.Error("tours should come from the snapshot")
			return nil, nil
		},
	}
	s := newCatalogStore(src, mem)

	s.InitData(context.Background())

	st := s.State()
	assert.Equal(t, warm.State().TimePeriods, st.TimePeriods)
	assert.Equal(t, warm.State().Tours, st.Tours)
	assert.False(t, st.IsLoading)
}

func TestCatalogStore_InitData_FetchesWhenNoSnapshot(t *testing.T) {
	mem := kv.NewMemory()
	s := newCatalogStore(remote.NewCatalogService(0), mem)

	s.InitData(context.Background())

	assert.Len(t, s.State().TimePeriods, 5)
	assert.Len(t, s.State().Tours, 3)
	mustGet(t, mem, store.KeyTimePeriods)
	mustGet(t, mem, store.KeyTours)
}

func TestCatalogStore_InitData_CorruptSnapshotRefetchesThatKind(t *testing.T) {
	mem := kv.NewMemory()
	ctx := context.Background()
	require.NoError(t, mem.Set(ctx, store.KeyTimePeriods, "not json"))
	require.NoError(t, mem.Set(ctx, store.KeyTours, `[{"id":"cached","duration":1,"maxGroupSize":1}]`))
	var tourCalls atomic.Int32
	src := &mockCatalog{
		listTimePeriods: func(context.Context) ([]domain.TimePeriod, error) {
			return remote.SampleTimePeriods(), nil
		},
		listTours: func(context.Context, string) ([]domain.Tour, error) {
			tourCalls.Add(1)
			return nil, nil
		},
	}
	s := newCatalogStore(src, mem)

	s.InitData(ctx)

	assert.Len(t, s.State().TimePeriods, 5)
	assert.Equal(t, []string{"cached"}, tourIDs(s.State().Tours))
	assert.Zero(t, tourCalls.Load())
}

func TestCatalogStore_Dispose(t *testing.T) {
	mem := kv.NewMemory()
	s := newCatalogStore(remote.NewCatalogService(0), mem)
	require.NoError(t, s.FetchTimePeriods(context.Background()))

	s.Dispose()

	assert.Empty(t, s.State().TimePeriods)
	mustGet(t, mem, store.KeyTimePeriods)
}

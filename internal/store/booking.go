package store

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/pkordes/chronotours/internal/domain"
)

// SessionAccessor exposes the active user's id. SessionStore satisfies it.
type SessionAccessor interface {
	UserID() (string, bool)
}

// TourLookup resolves tours known to the client. CatalogStore satisfies it.
type TourLookup interface {
	GetTourByID(id string) (domain.Tour, bool)
}

// BookingBackend is the remote Booking collaborator.
type BookingBackend interface {
	ListBookings(ctx context.Context, userID string) ([]domain.Booking, error)
	// CreateBooking records a new booking and returns it as stored.
	CreateBooking(ctx context.Context, b domain.Booking) (domain.Booking, error)
	UpdateBookingStatus(ctx context.Context, id string, status domain.BookingStatus) (domain.Booking, error)
}

// BookingState is a snapshot of BookingStore state for the active user.
type BookingState struct {
	Bookings  []domain.Booking `json:"bookings"`
	Current   *domain.Booking  `json:"current,omitempty"`
	IsLoading bool             `json:"isLoading"`
	Error     string           `json:"error,omitempty"`
}

// BookingStore owns the authenticated user's bookings.
//
// The user id is read from the SessionAccessor at call time and never stored.
// Every selector and mutation only sees bookings owned by that user, so a
// list left in memory by a previous account cannot reach another user's
// cache key.
type BookingStore struct {
	sessions SessionAccessor
	tours    TourLookup
	backend  BookingBackend
	kv       Persistence
	log      *slog.Logger
	now      Clock

	mu        sync.RWMutex
	bookings  []domain.Booking
	loadedFor string // user whose cached list is in bookings
	current   *domain.Booking
	isLoading bool
	err       string
}

// NewBookingStore constructs a BookingStore. tours may be nil, in which case
// the group-size ceiling is left to the caller.
func NewBookingStore(sessions SessionAccessor, tours TourLookup, backend BookingBackend, kv Persistence, log *slog.Logger) *BookingStore {
	return &BookingStore{
		sessions: sessions,
		tours:    tours,
		backend:  backend,
		kv:       kv,
		log:      log,
		now:      systemClock,
	}
}

// WithClock replaces the store's clock and returns the store.
func (s *BookingStore) WithClock(now Clock) *BookingStore {
	s.now = now
	return s
}

// State returns a copy of the current state for the active user.
func (s *BookingStore) State() BookingState {
	uid, _ := s.sessions.UserID()
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := BookingState{
		Bookings:  ownedBy(s.bookings, uid),
		IsLoading: s.isLoading,
		Error:     s.err,
	}
	if s.current != nil && s.current.UserID == uid {
		c := *s.current
		st.Current = &c
	}
	return st
}

// FetchBookings replaces state with the active user's bookings from the
// backend and persists them under the per-user key.
func (s *BookingStore) FetchBookings(ctx context.Context) error {
	s.begin()
	uid, ok := s.sessions.UserID()
	if !ok {
		return s.fail(fmt.Errorf("store.BookingStore.FetchBookings: %w", domain.ErrNotAuthenticated))
	}

	list, err := s.backend.ListBookings(ctx, uid)
	if err != nil {
		return s.fail(fmt.Errorf("store.BookingStore.FetchBookings: %w", err))
	}
	list = ownedBy(list, uid)
	if err := saveJSON(ctx, s.kv, BookingsKey(uid), list); err != nil {
		return s.fail(fmt.Errorf("store.BookingStore.FetchBookings: %w", err))
	}

	s.mu.Lock()
	s.bookings = list
	s.loadedFor = uid
	s.isLoading = false
	s.mu.Unlock()
	return nil
}

// CreateBooking validates req, records a confirmed booking with a fresh id,
// appends it to the user's list, and persists the full list. The user's
// cached list is loaded first if it is not in memory yet, so earlier
// bookings are kept.
//
// Returns domain.ErrNotAuthenticated without a session and
// domain.ErrValidation for a malformed payload, including a traveler count
// above the tour's group size when the tour is known.
func (s *BookingStore) CreateBooking(ctx context.Context, req domain.BookingRequest) (domain.Booking, error) {
	s.begin()
	uid, ok := s.sessions.UserID()
	if !ok {
		return domain.Booking{}, s.fail(fmt.Errorf("store.BookingStore.CreateBooking: %w", domain.ErrNotAuthenticated))
	}

	now := s.now()
	if err := req.Validate(now); err != nil {
		return domain.Booking{}, s.fail(fmt.Errorf("store.BookingStore.CreateBooking: %w", err))
	}
	if s.tours != nil {
		if tour, found := s.tours.GetTourByID(req.TourID); found {
			if err := tour.CheckGroupSize(req.NumberOfTravelers); err != nil {
				return domain.Booking{}, s.fail(fmt.Errorf("store.BookingStore.CreateBooking: %w", err))
			}
		}
	}
	if err := s.hydrate(ctx, uid); err != nil {
		return domain.Booking{}, s.fail(fmt.Errorf("store.BookingStore.CreateBooking: %w", err))
	}

	code, err := domain.NewTicketCode()
	if err != nil {
		return domain.Booking{}, s.fail(fmt.Errorf("store.BookingStore.CreateBooking: %w", err))
	}
	draft := domain.Booking{
		ID:                uuid.NewString(),
		UserID:            uid,
		TourID:            req.TourID,
		TourTitle:         req.TourTitle,
		TravelDate:        req.TravelDate.UTC(),
		NumberOfTravelers: req.NumberOfTravelers,
		TotalPrice:        req.TotalPrice,
		PaymentID:         req.PaymentID,
		TicketCode:        code,
		Status:            domain.BookingConfirmed,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	created, err := s.backend.CreateBooking(ctx, draft)
	if err != nil {
		return domain.Booking{}, s.fail(fmt.Errorf("store.BookingStore.CreateBooking: %w", err))
	}

	s.mu.RLock()
	updated := append(ownedBy(s.bookings, uid), created)
	s.mu.RUnlock()

	if err := saveJSON(ctx, s.kv, BookingsKey(uid), updated); err != nil {
		return domain.Booking{}, s.fail(fmt.Errorf("store.BookingStore.CreateBooking: %w", err))
	}

	s.mu.Lock()
	s.bookings = updated
	s.current = &created
	s.isLoading = false
	s.mu.Unlock()

	s.log.InfoContext(ctx, "booking created", "booking_id", created.ID, "tour_id", created.TourID)
	return created, nil
}

// CancelBooking marks a booking canceled and bumps its UpdatedAt.
//
// Canceling an already-canceled booking succeeds and still bumps UpdatedAt.
// Returns domain.ErrNotFound if the active user has no booking with that id
// and domain.ErrValidation once the travel date has passed.
func (s *BookingStore) CancelBooking(ctx context.Context, id string) (domain.Booking, error) {
	s.begin()
	uid, ok := s.sessions.UserID()
	if !ok {
		return domain.Booking{}, s.fail(fmt.Errorf("store.BookingStore.CancelBooking: %w", domain.ErrNotAuthenticated))
	}
	if err := s.hydrate(ctx, uid); err != nil {
		return domain.Booking{}, s.fail(fmt.Errorf("store.BookingStore.CancelBooking: %w", err))
	}

	s.mu.RLock()
	list := ownedBy(s.bookings, uid)
	s.mu.RUnlock()

	idx := slices.IndexFunc(list, func(b domain.Booking) bool { return b.ID == id })
	if idx == -1 {
		return domain.Booking{}, s.fail(fmt.Errorf("store.BookingStore.CancelBooking: booking %s: %w", id, domain.ErrNotFound))
	}
	now := s.now()
	if !list[idx].CanCancel(now) {
		return domain.Booking{}, s.fail(fmt.Errorf("store.BookingStore.CancelBooking: %w: travel date has passed", domain.ErrValidation))
	}

	if _, err := s.backend.UpdateBookingStatus(ctx, id, domain.BookingCanceled); err != nil {
		return domain.Booking{}, s.fail(fmt.Errorf("store.BookingStore.CancelBooking: %w", err))
	}

	list[idx].Status = domain.BookingCanceled
	list[idx].UpdatedAt = now
	canceled := list[idx]

	if err := saveJSON(ctx, s.kv, BookingsKey(uid), list); err != nil {
		return domain.Booking{}, s.fail(fmt.Errorf("store.BookingStore.CancelBooking: %w", err))
	}

	s.mu.Lock()
	s.bookings = list
	if s.current != nil && s.current.ID == id {
		s.current = &canceled
	}
	s.isLoading = false
	s.mu.Unlock()

	s.log.InfoContext(ctx, "booking canceled", "booking_id", id)
	return canceled, nil
}

// GetBookingByID returns the active user's booking with the given id.
func (s *BookingStore) GetBookingByID(id string) (domain.Booking, bool) {
	for _, b := range s.owned() {
		if b.ID == id {
			return b, true
		}
	}
	return domain.Booking{}, false
}

// GetUpcomingBookings returns bookings that are not canceled and whose travel
// date is after now.
func (s *BookingStore) GetUpcomingBookings() []domain.Booking {
	now := s.now()
	out := []domain.Booking{}
	for _, b := range s.owned() {
		if b.IsUpcoming(now) {
			out = append(out, b)
		}
	}
	return out
}

// GetPastBookings returns bookings whose travel date is before now,
// canceled ones included.
func (s *BookingStore) GetPastBookings() []domain.Booking {
	now := s.now()
	out := []domain.Booking{}
	for _, b := range s.owned() {
		if b.IsPast(now) {
			out = append(out, b)
		}
	}
	return out
}

// SetCurrentBooking selects a booking by id; an unknown id clears the
// selection.
func (s *BookingStore) SetCurrentBooking(id string) {
	b, ok := s.GetBookingByID(id)
	s.mu.Lock()
	defer s.mu.Unlock()
	if !ok {
		s.current = nil
		return
	}
	s.current = &b
}

// InitBookings hydrates from the per-user cache, or fetches when there is no
// cache. Without a session it does nothing. Failures are logged, never
// returned.
func (s *BookingStore) InitBookings(ctx context.Context) {
	uid, ok := s.sessions.UserID()
	if !ok {
		return
	}

	s.mu.Lock()
	s.isLoading = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.isLoading = false
		s.mu.Unlock()
	}()

	var cached []domain.Booking
	found, err := loadJSON(ctx, s.kv, BookingsKey(uid), &cached)
	if err != nil {
		s.log.ErrorContext(ctx, "error loading booking data", "error", err)
		return
	}
	if found {
		s.mu.Lock()
		s.bookings = ownedBy(cached, uid)
		s.loadedFor = uid
		s.mu.Unlock()
		return
	}
	if err := s.FetchBookings(ctx); err != nil {
		s.log.ErrorContext(ctx, "error fetching bookings", "error", err)
	}
}

// Dispose drops in-memory state. Per-user caches are left untouched.
func (s *BookingStore) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings = nil
	s.loadedFor = ""
	s.current = nil
	s.isLoading = false
	s.err = ""
}

// hydrate loads uid's cached list into memory unless it is already there.
// A missing cache keeps whatever uid owns in memory.
func (s *BookingStore) hydrate(ctx context.Context, uid string) error {
	s.mu.RLock()
	loaded := s.loadedFor == uid
	s.mu.RUnlock()
	if loaded {
		return nil
	}

	var cached []domain.Booking
	found, err := loadJSON(ctx, s.kv, BookingsKey(uid), &cached)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadedFor == uid {
		return nil
	}
	if found {
		s.bookings = ownedBy(cached, uid)
	} else {
		s.bookings = ownedBy(s.bookings, uid)
	}
	s.loadedFor = uid
	return nil
}

// owned returns a copy of the active user's bookings.
func (s *BookingStore) owned() []domain.Booking {
	uid, ok := s.sessions.UserID()
	if !ok {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ownedBy(s.bookings, uid)
}

// ownedBy returns a fresh slice of the bookings belonging to uid.
func ownedBy(list []domain.Booking, uid string) []domain.Booking {
	out := make([]domain.Booking, 0, len(list))
	for _, b := range list {
		if b.UserID == uid {
			out = append(out, b)
		}
	}
	return out
}

func (s *BookingStore) begin() {
	s.mu.Lock()
	s.isLoading = true
	s.err = ""
	s.mu.Unlock()
}

func (s *BookingStore) fail(err error) error {
	s.mu.Lock()
	s.isLoading = false
	s.err = err.Error()
	s.mu.Unlock()
	return err
}

// Package handler implements the HTTP bridge for the Chronotours stores.
// Handlers are methods on Server and are split into domain-specific files
// (session.go, catalog.go, booking.go, preference.go); all share the same
// Server struct so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/chronotours/internal/domain"
	"github.com/pkordes/chronotours/internal/store"
	"github.com/pkordes/chronotours/spec"
)

// Sessions defines the SessionStore operations the handlers depend on.
// Defining the interfaces here (in the consumer package) lets handler tests
// inject mocks without wiring real stores.
type Sessions interface {
	State() store.SessionState
	Login(ctx context.Context, email, password string) (domain.Session, error)
	Register(ctx context.Context, username, email, password string) (domain.Session, error)
	Logout(ctx context.Context) error
	UpdateProfile(ctx context.Context, u domain.ProfileUpdate) (domain.Session, error)
}

// Catalog defines the CatalogStore operations the handlers depend on.
type Catalog interface {
	State() store.CatalogState
	FetchTimePeriods(ctx context.Context) error
	FetchTours(ctx context.Context, timePeriodID string) error
	GetTimePeriodByID(id string) (domain.TimePeriod, bool)
	GetTourByID(id string) (domain.Tour, bool)
	GetFeaturedTimePeriods() []domain.TimePeriod
	SearchTimePeriods(query string) []domain.TimePeriod
	TimelineTimePeriods() []domain.TimePeriod
}

// Bookings defines the BookingStore operations the handlers depend on.
type Bookings interface {
	State() store.BookingState
	FetchBookings(ctx context.Context) error
	CreateBooking(ctx context.Context, req domain.BookingRequest) (domain.Booking, error)
	CancelBooking(ctx context.Context, id string) (domain.Booking, error)
	GetBookingByID(id string) (domain.Booking, bool)
	GetUpcomingBookings() []domain.Booking
	GetPastBookings() []domain.Booking
	InitBookings(ctx context.Context)
}

// Preferences defines the PreferenceStore operations the handlers depend on.
type Preferences interface {
	IsDarkMode() bool
	SetTheme(ctx context.Context, dark bool)
	ToggleTheme(ctx context.Context) bool
}

// Server serves every API endpoint over one set of stores. The process holds
// a single device session, so every request acts as that device.
type Server struct {
	sessions Sessions
	catalog  Catalog
	bookings Bookings
	prefs    Preferences
	log      *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(sessions Sessions, catalog Catalog, bookings Bookings, prefs Preferences, log *slog.Logger) *Server {
	return &Server{sessions: sessions, catalog: catalog, bookings: bookings, prefs: prefs, log: log}
}

// Routes returns a chi router with every endpoint registered. Middleware is
// left to the caller.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.getHealth)
	r.Get("/openapi.yaml", s.getOpenAPI)

	r.Get("/session", s.getSession)
	r.Post("/session/login", s.login)
	r.Post("/session/register", s.register)
	r.Post("/session/logout", s.logout)
	r.Patch("/session/profile", s.updateProfile)

	r.Get("/time-periods", s.listTimePeriods)
	r.Post("/time-periods/refresh", s.refreshTimePeriods)
	r.Get("/time-periods/{id}", s.getTimePeriod)

	r.Get("/tours", s.listTours)
	r.Get("/tours/{id}", s.getTour)
	r.Get("/tours/{id}/quote", s.quoteTour)

	r.Get("/bookings", s.listBookings)
	r.Post("/bookings", s.createBooking)
	r.Post("/bookings/refresh", s.refreshBookings)
	r.Get("/bookings/{id}", s.getBooking)
	r.Post("/bookings/{id}/cancel", s.cancelBooking)

	r.Get("/preferences", s.getPreferences)
	r.Put("/preferences/theme", s.setTheme)
	r.Post("/preferences/theme/toggle", s.toggleTheme)

	return r
}

// getOpenAPI handles GET /openapi.yaml.
func (s *Server) getOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(spec.OpenAPI)
}

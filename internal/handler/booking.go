package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/chronotours/internal/domain"
)

type createBookingRequest struct {
	TourID            string             `json:"tourId"`
	TravelDate        openapi_types.Date `json:"travelDate"`
	NumberOfTravelers int                `json:"numberOfTravelers"`
	PaymentID         string             `json:"paymentId"`
	// TourTitle and TotalPrice are filled from the catalog when omitted.
	TourTitle  string   `json:"tourTitle"`
	TotalPrice *float64 `json:"totalPrice"`
}

// listBookings handles GET /bookings?filter=upcoming|past.
func (s *Server) listBookings(w http.ResponseWriter, r *http.Request) {
	var list []domain.Booking
	switch filter := r.URL.Query().Get("filter"); filter {
	case "":
		list = s.bookings.State().Bookings
	case "upcoming":
		list = s.bookings.GetUpcomingBookings()
	case "past":
		list = s.bookings.GetPastBookings()
	default:
		s.writeError(w, r, validationError("filter must be upcoming or past"))
		return
	}
	if list == nil {
		list = []domain.Booking{}
	}
	writeJSON(w, http.StatusOK, dataResponse[domain.Booking]{Data: list})
}

// createBooking handles POST /bookings.
func (s *Server) createBooking(w http.ResponseWriter, r *http.Request) {
	var body createBookingRequest
	if err := decodeJSON(r, &body); err != nil {
		s.writeError(w, r, err)
		return
	}
	req, err := s.requestToBooking(body)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	created, err := s.bookings.CreateBooking(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// refreshBookings handles POST /bookings/refresh.
func (s *Server) refreshBookings(w http.ResponseWriter, r *http.Request) {
	if err := s.bookings.FetchBookings(r.Context()); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dataResponse[domain.Booking]{Data: s.bookings.State().Bookings})
}

// getBooking handles GET /bookings/{id}.
func (s *Server) getBooking(w http.ResponseWriter, r *http.Request) {
	b, ok := s.bookings.GetBookingByID(chi.URLParam(r, "id"))
	if !ok {
		notFound(w, "booking not found")
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// cancelBooking handles POST /bookings/{id}/cancel.
func (s *Server) cancelBooking(w http.ResponseWriter, r *http.Request) {
	b, err := s.bookings.CancelBooking(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFound(w, "booking not found")
			return
		}
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// requestToBooking converts the request body into a domain.BookingRequest.
// The travel date is taken as midnight UTC of the given day. When the tour is
// in the catalog its title and quoted price fill any omitted fields.
func (s *Server) requestToBooking(body createBookingRequest) (domain.BookingRequest, error) {
	d := body.TravelDate.Time
	req := domain.BookingRequest{
		TourID:            body.TourID,
		TourTitle:         body.TourTitle,
		TravelDate:        time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC),
		NumberOfTravelers: body.NumberOfTravelers,
		PaymentID:         body.PaymentID,
	}

	tour, known := s.catalog.GetTourByID(body.TourID)
	if known && req.TourTitle == "" {
		req.TourTitle = tour.Title
	}
	switch {
	case body.TotalPrice != nil:
		req.TotalPrice = *body.TotalPrice
	case known:
		total, err := tour.Quote(body.NumberOfTravelers)
		if err != nil {
			return domain.BookingRequest{}, err
		}
		req.TotalPrice = total
	default:
		return domain.BookingRequest{}, validationError("totalPrice is required for tours outside the catalog")
	}
	return req, nil
}

package domain

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"
)

// BookingStatus is the lifecycle state of a booking.
// The only transition is confirmed → canceled.
type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingCanceled  BookingStatus = "canceled"
)

// Booking is a reservation of one tour by one user.
// Bookings are created only through BookingStore.CreateBooking.
type Booking struct {
	ID                string        `json:"id"`
	UserID            string        `json:"userId"`
	TourID            string        `json:"tourId"`
	TourTitle         string        `json:"tourTitle"`
	TravelDate        time.Time     `json:"travelDate"`
	NumberOfTravelers int           `json:"numberOfTravelers"`
	TotalPrice        float64       `json:"totalPrice"`
	PaymentID         string        `json:"paymentId"`
	TicketCode        string        `json:"ticketCode,omitempty"`
	Status            BookingStatus `json:"status"`
	CreatedAt         time.Time     `json:"createdAt"`
	UpdatedAt         time.Time     `json:"updatedAt"`
}

// IsUpcoming reports whether the booking is still active and in the future.
func (b Booking) IsUpcoming(now time.Time) bool {
	return b.Status != BookingCanceled && b.TravelDate.After(now)
}

// IsPast reports whether the travel date is behind now.
// Status is deliberately ignored: a canceled booking with a past travel date
// is still "past", while a canceled future booking is neither past nor
// upcoming.
func (b Booking) IsPast(now time.Time) bool {
	return b.TravelDate.Before(now)
}

// CanCancel reports whether the booking may still be canceled: its travel
// date must not have passed. Re-canceling a canceled booking is allowed.
func (b Booking) CanCancel(now time.Time) bool {
	return !b.IsPast(now)
}

// BookingRequest is the payload for creating a booking.
type BookingRequest struct {
	TourID            string    `json:"tourId"`
	TourTitle         string    `json:"tourTitle"`
	TravelDate        time.Time `json:"travelDate"`
	NumberOfTravelers int       `json:"numberOfTravelers"`
	TotalPrice        float64   `json:"totalPrice"`
	PaymentID         string    `json:"paymentId"`
}

// Validate checks the request shape against now. It does not know the tour,
// so the group-size ceiling is checked separately via Tour.CheckGroupSize.
func (r BookingRequest) Validate(now time.Time) error {
	switch {
	case strings.TrimSpace(r.TourID) == "":
		return fmt.Errorf("%w: tour id is required", ErrValidation)
	case r.NumberOfTravelers < 1:
		return fmt.Errorf("%w: at least one traveler is required", ErrValidation)
	case r.TotalPrice < 0:
		return fmt.Errorf("%w: total price must not be negative", ErrValidation)
	case !r.TravelDate.After(now):
		return fmt.Errorf("%w: travel date must be in the future", ErrValidation)
	}
	return nil
}

// ticketAlphabet excludes look-alike characters so codes can be read aloud.
const ticketAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// NewTicketCode returns a boarding code such as "TIME-7QK2M9XA", encoded in
// the QR shown at departure.
func NewTicketCode() (string, error) {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("domain.NewTicketCode: %w", err)
	}
	for i := range b {
		b[i] = ticketAlphabet[int(b[i])%len(ticketAlphabet)]
	}
	return "TIME-" + string(b), nil
}

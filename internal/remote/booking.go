package remote

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/pkordes/chronotours/internal/domain"
)

// BookingService simulates the Booking collaborator. It remembers bookings
// for the lifetime of the process only.
type BookingService struct {
	latency time.Duration

	mu       sync.Mutex
	bookings []domain.Booking
}

// NewBookingService returns a BookingService seeded with seed.
func NewBookingService(latency time.Duration, seed ...domain.Booking) *BookingService {
	return &BookingService{latency: latency, bookings: append([]domain.Booking(nil), seed...)}
}

// ListBookings returns the bookings owned by userID in creation order.
func (b *BookingService) ListBookings(ctx context.Context, userID string) ([]domain.Booking, error) {
	if err := delay(ctx, b.latency); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	out := []domain.Booking{}
	for _, bk := range b.bookings {
		if bk.UserID == userID {
			out = append(out, bk)
		}
	}
	return out, nil
}

// CreateBooking records bk as-is. The id must be unused.
func (b *BookingService) CreateBooking(ctx context.Context, bk domain.Booking) (domain.Booking, error) {
	if err := delay(ctx, b.latency); err != nil {
		return domain.Booking{}, err
	}
	if strings.TrimSpace(bk.ID) == "" || strings.TrimSpace(bk.UserID) == "" {
		return domain.Booking{}, fmt.Errorf("%w: booking id and user id are required", domain.ErrValidation)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, existing := range b.bookings {
		if existing.ID == bk.ID {
			return domain.Booking{}, fmt.Errorf("%w: booking %s already exists", domain.ErrValidation, bk.ID)
		}
	}
	b.bookings = append(b.bookings, bk)
	return bk, nil
}

// UpdateBookingStatus sets the status of booking id.
//
// Bookings created before this process started (hydrated from a device
// cache) are unknown here; their status change is accepted and echoed back
// because the simulated backend is not the system of record.
func (b *BookingService) UpdateBookingStatus(ctx context.Context, id string, status domain.BookingStatus) (domain.Booking, error) {
	if err := delay(ctx, b.latency); err != nil {
		return domain.Booking{}, err
	}
	if status != domain.BookingConfirmed && status != domain.BookingCanceled {
		return domain.Booking{}, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, status)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	now := time.Now().UTC()
	for i := range b.bookings {
		if b.bookings[i].ID == id {
			if b.bookings[i].Status == domain.BookingCanceled && status != domain.BookingCanceled {
				return domain.Booking{}, fmt.Errorf("%w: booking %s is already canceled", domain.ErrValidation, id)
			}
			b.bookings[i].Status = status
			b.bookings[i].UpdatedAt = now
			return b.bookings[i], nil
		}
	}
	return domain.Booking{ID: id, Status: status, UpdatedAt: now}, nil
}

package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// TimePeriod is a historical era that tours visit.
// Years are signed: negative values are BCE.
type TimePeriod struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	StartYear     int      `json:"startYear"`
	EndYear       int      `json:"endYear"`
	Description   string   `json:"description"`
	CoverImage    string   `json:"coverImage"`
	GalleryImages []string `json:"galleryImages"`
	Featured      bool     `json:"featured"`
}

// Validate rejects a period with no id or one that starts after it ends.
func (p TimePeriod) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("%w: time period id is required", ErrValidation)
	}
	if p.StartYear > p.EndYear {
		return fmt.Errorf("%w: time period %s starts after it ends", ErrValidation, p.ID)
	}
	return nil
}

// Tour is a bookable trip into a TimePeriod. Catalog items are read-only
// reference data once fetched.
type Tour struct {
	ID                  string   `json:"id"`
	Title               string   `json:"title"`
	TimePeriodID        string   `json:"timePeriodId"`
	Description         string   `json:"description"`
	Itinerary           []string `json:"itinerary"`
	Duration            int      `json:"duration"`
	Price               float64  `json:"price"`
	DiscountPercentage  float64  `json:"discountPercentage"`
	MaxGroupSize        int      `json:"maxGroupSize"`
	Highlights          []string `json:"highlights"`
	IncludesTimeMachine bool     `json:"includesTimeMachine"`
	Images              []string `json:"images"`
	Rating              float64  `json:"rating"`
	ReviewCount         int      `json:"reviewCount"`
}

// Validate enforces the numeric ranges of a tour.
func (t Tour) Validate() error {
	switch {
	case strings.TrimSpace(t.ID) == "":
		return fmt.Errorf("%w: tour id is required", ErrValidation)
	case t.Duration <= 0:
		return fmt.Errorf("%w: tour %s duration must be positive", ErrValidation, t.ID)
	case t.Price < 0:
		return fmt.Errorf("%w: tour %s price must not be negative", ErrValidation, t.ID)
	case t.DiscountPercentage < 0 || t.DiscountPercentage > 100:
		return fmt.Errorf("%w: tour %s discount must be within 0..100", ErrValidation, t.ID)
	case t.MaxGroupSize <= 0:
		return fmt.Errorf("%w: tour %s max group size must be positive", ErrValidation, t.ID)
	}
	return nil
}

// DiscountedPrice is the per-traveler price after the tour's discount.
func (t Tour) DiscountedPrice() float64 {
	if t.DiscountPercentage <= 0 {
		return t.Price
	}
	return t.Price * (1 - t.DiscountPercentage/100)
}

// Quote returns the total price for travelers people.
// Returns ErrValidation if travelers is outside [1, MaxGroupSize].
func (t Tour) Quote(travelers int) (float64, error) {
	if err := t.CheckGroupSize(travelers); err != nil {
		return 0, err
	}
	return t.DiscountedPrice() * float64(travelers), nil
}

// CheckGroupSize reports whether travelers fits in one group of this tour.
func (t Tour) CheckGroupSize(travelers int) error {
	if travelers < 1 || travelers > t.MaxGroupSize {
		return fmt.Errorf("%w: number of travelers must be between 1 and %d", ErrValidation, t.MaxGroupSize)
	}
	return nil
}

// FormatYear renders a signed year as "3100 BCE" or "1400 CE".
func FormatYear(year int) string {
	if year < 0 {
		return strconv.Itoa(-year) + " BCE"
	}
	return strconv.Itoa(year) + " CE"
}

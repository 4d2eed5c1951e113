package remote

import (
	"context"
	"slices"
	"time"

	"github.com/pkordes/chronotours/internal/domain"
)

// CatalogService simulates the Catalog collaborator over SampleTimePeriods
// and SampleTours.
type CatalogService struct {
	latency time.Duration
	periods []domain.TimePeriod
	tours   []domain.Tour
}

// NewCatalogService returns a CatalogService over the sample dataset.
func NewCatalogService(latency time.Duration) *CatalogService {
	return &CatalogService{latency: latency, periods: SampleTimePeriods(), tours: SampleTours()}
}

// ListTimePeriods returns every time period in source order.
func (c *CatalogService) ListTimePeriods(ctx context.Context) ([]domain.TimePeriod, error) {
	if err := delay(ctx, c.latency); err != nil {
		return nil, err
	}
	return slices.Clone(c.periods), nil
}

// ListTours returns every tour, or only those of timePeriodID when set.
func (c *CatalogService) ListTours(ctx context.Context, timePeriodID string) ([]domain.Tour, error) {
	if err := delay(ctx, c.latency); err != nil {
		return nil, err
	}
	if timePeriodID == "" {
		return slices.Clone(c.tours), nil
	}
	out := []domain.Tour{}
	for _, t := range c.tours {
		if t.TimePeriodID == timePeriodID {
			out = append(out, t)
		}
	}
	return out, nil
}

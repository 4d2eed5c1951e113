package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/chronotours/internal/domain"
)

type timePeriodResponse struct {
	domain.TimePeriod
	Era string `json:"era"`
}

type tourResponse struct {
	domain.Tour
	DiscountedPrice float64 `json:"discountedPrice"`
}

type quoteResponse struct {
	TourID           string  `json:"tourId"`
	Travelers        int     `json:"travelers"`
	PricePerTraveler float64 `json:"pricePerTraveler"`
	TotalPrice       float64 `json:"totalPrice"`
}

// listTimePeriods handles GET /time-periods.
// ?q= searches name and description, ?featured=true keeps featured periods,
// and ?order=timeline sorts by start year. Filters combine.
func (s *Server) listTimePeriods(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	featured := false
	if raw := q.Get("featured"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			s.writeError(w, r, validationError("featured must be true or false"))
			return
		}
		featured = v
	}
	order := q.Get("order")
	if order != "" && order != "timeline" {
		s.writeError(w, r, validationError("order must be timeline"))
		return
	}

	periods := s.catalog.SearchTimePeriods(q.Get("q"))
	if order == "timeline" {
		periods = keepIDs(s.catalog.TimelineTimePeriods(), periods)
	}
	if featured {
		periods = keepIDs(periods, s.catalog.GetFeaturedTimePeriods())
	}
	writeJSON(w, http.StatusOK, dataResponse[timePeriodResponse]{Data: periodsToResponse(periods)})
}

// refreshTimePeriods handles POST /time-periods/refresh.
func (s *Server) refreshTimePeriods(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.FetchTimePeriods(r.Context()); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dataResponse[timePeriodResponse]{Data: periodsToResponse(s.catalog.State().TimePeriods)})
}

// getTimePeriod handles GET /time-periods/{id}.
func (s *Server) getTimePeriod(w http.ResponseWriter, r *http.Request) {
	p, ok := s.catalog.GetTimePeriodByID(chi.URLParam(r, "id"))
	if !ok {
		notFound(w, "time period not found")
		return
	}
	writeJSON(w, http.StatusOK, periodToResponse(p))
}

// listTours handles GET /tours. It always refetches, filtered by
// ?timePeriodId= when present.
func (s *Server) listTours(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.FetchTours(r.Context(), r.URL.Query().Get("timePeriodId")); err != nil {
		s.writeError(w, r, err)
		return
	}
	tours := s.catalog.State().Tours
	data := make([]tourResponse, len(tours))
	for i, t := range tours {
		data[i] = tourToResponse(t)
	}
	writeJSON(w, http.StatusOK, dataResponse[tourResponse]{Data: data})
}

// getTour handles GET /tours/{id}.
func (s *Server) getTour(w http.ResponseWriter, r *http.Request) {
	t, ok := s.catalog.GetTourByID(chi.URLParam(r, "id"))
	if !ok {
		notFound(w, "tour not found")
		return
	}
	writeJSON(w, http.StatusOK, tourToResponse(t))
}

// quoteTour handles GET /tours/{id}/quote?travelers=N.
func (s *Server) quoteTour(w http.ResponseWriter, r *http.Request) {
	travelers, err := strconv.Atoi(r.URL.Query().Get("travelers"))
	if err != nil {
		s.writeError(w, r, validationError("travelers must be an integer"))
		return
	}
	t, ok := s.catalog.GetTourByID(chi.URLParam(r, "id"))
	if !ok {
		notFound(w, "tour not found")
		return
	}
	total, err := t.Quote(travelers)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, quoteResponse{
		TourID:           t.ID,
		Travelers:        travelers,
		PricePerTraveler: t.DiscountedPrice(),
		TotalPrice:       total,
	})
}

// --- mapping helpers --------------------------------------------------------

// keepIDs returns the elements of ordered whose id appears in allowed,
// preserving the order of ordered.
func keepIDs(ordered, allowed []domain.TimePeriod) []domain.TimePeriod {
	ids := make(map[string]struct{}, len(allowed))
	for _, p := range allowed {
		ids[p.ID] = struct{}{}
	}
	out := make([]domain.TimePeriod, 0, len(ordered))
	for _, p := range ordered {
		if _, ok := ids[p.ID]; ok {
			out = append(out, p)
		}
	}
	return out
}

func periodToResponse(p domain.TimePeriod) timePeriodResponse {
	return timePeriodResponse{
		TimePeriod: p,
		Era:        domain.FormatYear(p.StartYear) + " - " + domain.FormatYear(p.EndYear),
	}
}

func periodsToResponse(ps []domain.TimePeriod) []timePeriodResponse {
	out := make([]timePeriodResponse, len(ps))
	for i, p := range ps {
		out[i] = periodToResponse(p)
	}
	return out
}

func tourToResponse(t domain.Tour) tourResponse {
	return tourResponse{Tour: t, DiscountedPrice: t.DiscountedPrice()}
}

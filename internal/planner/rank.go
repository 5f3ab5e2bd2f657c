package planner

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/avelar-dev/itinero/pkg/config"
	"github.com/avelar-dev/itinero/pkg/domain"
)

// Composite score weights. The weather bonus component is 1 when the
// destination weather is Favorable, 0 otherwise.
const (
	weightPriceFit     = 0.5
	weightRating       = 0.3
	weightWeatherBonus = 0.2
)

// ranker orders filtered candidates by a deterministic composite score and
// promotes the top hotel and flight to the default selections.
type ranker struct {
	cfg    *config.Config
	logger *slog.Logger
}

// Apply sorts FilteredHotels and FilteredFlights in ranked order. Identical
// inputs always yield the identical order: ties break by lowest price, then
// by candidate ID, guaranteeing a total order.
func (r *ranker) Apply(st *domain.TripState) error {
	pricing := r.cfg.TierFor(st.EffectiveTier)
	favorable := st.WeatherStatus == domain.WeatherFavorable

	st.FilteredHotels = rankCandidates(st.FilteredHotels, pricing.Hotel, favorable)
	st.FilteredFlights = rankCandidates(st.FilteredFlights, pricing.Flight, favorable)

	st.SelectedHotel = nil
	st.SelectedFlight = nil
	if len(st.FilteredHotels) > 0 {
		top := st.FilteredHotels[0]
		st.SelectedHotel = &top
	}
	if len(st.FilteredFlights) > 0 {
		top := st.FilteredFlights[0]
		st.SelectedFlight = &top
	}
	st.TotalCost = estimateTotalCost(st)

	r.logger.Debug("candidates ranked",
		"hotels", len(st.FilteredHotels),
		"flights", len(st.FilteredFlights),
		"total_cost", st.TotalCost)
	return nil
}

// rankCandidates returns a new slice sorted by score descending.
func rankCandidates(candidates []domain.Candidate, bracket config.Range, favorable bool) []domain.Candidate {
	ranked := domain.CloneCandidates(candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		si := compositeScore(ranked[i], bracket, favorable)
		sj := compositeScore(ranked[j], bracket, favorable)
		if si != sj {
			return si > sj
		}
		if ranked[i].Price != ranked[j].Price {
			return ranked[i].Price < ranked[j].Price
		}
		return strings.Compare(ranked[i].ID, ranked[j].ID) < 0
	})
	return ranked
}

// compositeScore is a weighted sum of price fit (inverse distance from the
// tier midpoint), normalized rating, and a weather-fit bonus.
func compositeScore(c domain.Candidate, bracket config.Range, favorable bool) float64 {
	dist := float64(c.Price) - bracket.Midpoint()
	if dist < 0 {
		dist = -dist
	}
	priceFit := 1 - dist/bracket.HalfWidth()
	if priceFit < 0 {
		priceFit = 0
	}

	rating := c.Rating / 5
	if rating < 0 {
		rating = 0
	}
	if rating > 1 {
		rating = 1
	}

	bonus := 0.0
	if favorable {
		bonus = 1
	}

	return weightPriceFit*priceFit + weightRating*rating + weightWeatherBonus*bonus
}

// estimateTotalCost is hotel price per night times nights plus the flight
// round-trip total.
func estimateTotalCost(st *domain.TripState) int {
	total := 0
	if st.SelectedHotel != nil {
		total += st.SelectedHotel.Price * st.Dates.Days()
	}
	if st.SelectedFlight != nil {
		total += st.SelectedFlight.Price
	}
	return total
}

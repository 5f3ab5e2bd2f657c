package planner

import (
	"log/slog"

	"github.com/avelar-dev/itinero/pkg/config"
	"github.com/avelar-dev/itinero/pkg/domain"
)

// budgetFilter narrows candidates to the affordable set, escalating one tier
// at a time when a stream with raw candidates filters empty.
type budgetFilter struct {
	cfg    *config.Config
	logger *slog.Logger
}

// Apply filters both candidate sets against st.BudgetTier's price brackets.
// If a non-empty raw stream filters empty, the tier escalates
// (Backpacker→Budget→MidRange→Luxury) and filtering retries against the
// original unfiltered candidates. Every hop is recorded in history.
// EffectiveTier records the tier actually applied. A stream whose raw set is
// already empty (degraded search) never drives escalation.
//
// Returns domain.ErrNoMatches when Luxury still yields nothing; the error is
// terminal and user-actionable, never retried.
func (f *budgetFilter) Apply(st *domain.TripState, clock clockFunc) error {
	if len(st.HotelCandidates) == 0 && len(st.FlightCandidates) == 0 {
		return domain.ErrNoMatches
	}

	tier := st.BudgetTier
	for {
		pricing := f.cfg.TierFor(tier)
		hotels := filterByRange(st.HotelCandidates, pricing.Hotel)
		flights := filterByRange(st.FlightCandidates, pricing.Flight)

		hotelsOK := len(st.HotelCandidates) == 0 || len(hotels) > 0
		flightsOK := len(st.FlightCandidates) == 0 || len(flights) > 0
		if hotelsOK && flightsOK {
			st.FilteredHotels = hotels
			st.FilteredFlights = flights
			st.EffectiveTier = tier
			f.logger.Debug("budget filter applied",
				"tier", tier.String(),
				"hotels", len(hotels),
				"flights", len(flights))
			return nil
		}

		next, ok := tier.Escalate()
		if !ok {
			return domain.ErrNoMatches
		}
		f.logger.Info("budget tier escalated",
			"from", tier.String(), "to", next.String())
		st.AppendHistory(domain.HistoryEntry{
			Time:     clock(),
			Kind:     domain.HistoryTierEscalation,
			FromTier: tier,
			ToTier:   next,
		})
		tier = next
	}
}

func filterByRange(candidates []domain.Candidate, r config.Range) []domain.Candidate {
	var out []domain.Candidate
	for _, c := range candidates {
		if r.Contains(c.Price) {
			out = append(out, c)
		}
	}
	return out
}

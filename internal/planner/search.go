package planner

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/avelar-dev/itinero/pkg/config"
	"github.com/avelar-dev/itinero/pkg/domain"
	"github.com/avelar-dev/itinero/pkg/ports"
)

// searchAggregator retrieves hotel and flight candidates. The two lookups
// are independent and issued concurrently; the pipeline suspends until both
// resolve or individually time out.
type searchAggregator struct {
	cfg      *config.Config
	provider ports.SearchProvider
	logger   *slog.Logger
	hooks    domain.LifecycleHooks
}

type lookupResult struct {
	stream     string
	candidates []domain.Candidate
	err        error
}

// Aggregate runs both lookups and stores the candidate sets on st. A failure
// or timeout in one stream yields an empty set for that stream only, recorded
// in history; it never aborts the pipeline.
func (a *searchAggregator) Aggregate(ctx context.Context, st *domain.TripState, clock clockFunc) error {
	results := make(chan lookupResult, 2)
	var wg sync.WaitGroup
	wg.Add(2)

	timeout := a.cfg.Search.Timeout.Duration

	go func() {
		defer wg.Done()
		callCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		hotels, err := a.provider.SearchHotels(callCtx, st.Destination, st.Dates, st.Travelers)
		results <- lookupResult{stream: "hotels", candidates: hotels, err: err}
	}()
	go func() {
		defer wg.Done()
		callCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		flights, err := a.provider.SearchFlights(callCtx, st.DepartureCity, st.Destination, st.Dates, st.Travelers)
		results <- lookupResult{stream: "flights", candidates: flights, err: err}
	}()

	wg.Wait()
	close(results)

	if ctx.Err() != nil {
		return ctx.Err()
	}

	for res := range results {
		candidates := res.candidates
		if res.err != nil {
			a.logger.Warn("search stream degraded",
				"stream", res.stream, "destination", st.Destination, "error", res.err)
			if a.hooks.OnProviderError != nil {
				a.hooks.OnProviderError(ctx, &domain.ProviderEvent{
					Timestamp: clock(),
					SessionID: st.ID,
					Provider:  "search_" + res.stream,
					Recovered: true,
					Err:       res.err,
				})
			}
			st.AppendHistory(domain.HistoryEntry{
				Time:   clock(),
				Kind:   domain.HistorySearchDegraded,
				Detail: fmt.Sprintf("%s: %v", res.stream, res.err),
			})
			candidates = nil
		}
		switch res.stream {
		case "hotels":
			st.HotelCandidates = candidates
		case "flights":
			st.FlightCandidates = candidates
		}
	}

	// Downstream sets are stale once candidates change.
	st.FilteredHotels = nil
	st.FilteredFlights = nil
	st.SelectedHotel = nil
	st.SelectedFlight = nil
	st.TotalCost = 0

	a.logger.Debug("search aggregated",
		"hotels", len(st.HotelCandidates),
		"flights", len(st.FlightCandidates))
	return nil
}

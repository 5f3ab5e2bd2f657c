package planner

import (
	"testing"

	"github.com/avelar-dev/itinero/internal/logging"
	"github.com/avelar-dev/itinero/pkg/domain"
)

func newRanker() *ranker {
	return &ranker{cfg: testConfig(), logger: logging.NewNop()}
}

func rankedState(hotels, flights []domain.Candidate) *domain.TripState {
	st := newBudgetState("goa", 3)
	st.WeatherStatus = domain.WeatherFavorable
	st.FilteredHotels = hotels
	st.FilteredFlights = flights
	st.EffectiveTier = domain.TierBudget
	return st
}

func TestRankPrefersPriceFitOverRating(t *testing.T) {
	// Budget hotel bracket is [1500,4000], midpoint 2750. A mid-bracket
	// average hotel outranks a top-rated one sitting on the bracket edge.
	st := rankedState([]domain.Candidate{
		{ID: "h-edge", Name: "Edge Palace", Price: 4000, Rating: 5.0},
		{ID: "h-mid", Name: "Midtown Stay", Price: 2750, Rating: 3.0},
	}, nil)

	if err := newRanker().Apply(st); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if got := candidateIDs(st.FilteredHotels); got[0] != "h-mid" {
		t.Errorf("ranked order = %v, want h-mid first", got)
	}
	if st.SelectedHotel == nil || st.SelectedHotel.ID != "h-mid" {
		t.Errorf("selected = %+v, want h-mid", st.SelectedHotel)
	}
}

func TestRankBreaksTiesByPriceThenID(t *testing.T) {
	st := rankedState([]domain.Candidate{
		{ID: "h-z", Name: "Zenith", Price: 2750, Rating: 4.0},
		{ID: "h-a", Name: "Aurora", Price: 2750, Rating: 4.0},
		{ID: "h-far", Name: "Faraway", Price: 3900, Rating: 4.92},
	}, nil)

	if err := newRanker().Apply(st); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	// h-far's rating edge does not cover its price-fit deficit; the two
	// identical candidates order by ID.
	want := []string{"h-a", "h-z", "h-far"}
	got := candidateIDs(st.FilteredHotels)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ranked order = %v, want %v", got, want)
		}
	}
}

func TestRankIsDeterministic(t *testing.T) {
	forward := []domain.Candidate{
		{ID: "h1", Price: 2000, Rating: 4.5},
		{ID: "h2", Price: 3000, Rating: 4.0},
		{ID: "h3", Price: 2750, Rating: 3.5},
	}
	reversed := []domain.Candidate{forward[2], forward[1], forward[0]}

	a := rankedState(domain.CloneCandidates(forward), nil)
	b := rankedState(domain.CloneCandidates(reversed), nil)
	if err := newRanker().Apply(a); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if err := newRanker().Apply(b); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	got, want := candidateIDs(b.FilteredHotels), candidateIDs(a.FilteredHotels)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order depends on input order: %v vs %v", got, want)
		}
	}
}

func TestRankComputesTotalCost(t *testing.T) {
	st := rankedState(
		[]domain.Candidate{{ID: "h1", Price: 2000, Rating: 4.0}},
		[]domain.Candidate{{ID: "f1", Price: 9000, Rating: 4.0}},
	)

	if err := newRanker().Apply(st); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	// Three nights of hotel plus the round-trip flight.
	if want := 2000*3 + 9000; st.TotalCost != want {
		t.Errorf("total cost = %d, want %d", st.TotalCost, want)
	}
}

func TestRankWithEmptySets(t *testing.T) {
	st := rankedState(nil, nil)
	st.SelectedHotel = &domain.Candidate{ID: "stale"}
	st.TotalCost = 999

	if err := newRanker().Apply(st); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if st.SelectedHotel != nil || st.SelectedFlight != nil {
		t.Errorf("stale selections survived an empty ranking")
	}
	if st.TotalCost != 0 {
		t.Errorf("total cost = %d, want 0", st.TotalCost)
	}
}

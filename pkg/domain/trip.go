package domain

import "time"

// DayPlan is one day of the synthesized itinerary.
type DayPlan struct {
	Day        int       `json:"day"`
	Date       time.Time `json:"date"`
	Activities []string  `json:"activities"`
}

// SynthesisKey captures the four inputs the itinerary depends on. The
// itinerary is recomputed if and only if this key changed since the last
// synthesis.
type SynthesisKey struct {
	HotelID     string    `json:"hotel_id"`
	FlightID    string    `json:"flight_id"`
	Destination string    `json:"destination"`
	Dates       DateRange `json:"dates"`
}

// TripState is the single mutable object owned by one workflow run. It is
// created at session start, mutated only by the pipeline steps, and discarded
// at session end. It is not safe for concurrent mutation; ownership is
// exclusive to the run (pkg/session serializes access across callers).
type TripState struct {
	ID string `json:"id"`

	// Preferences supplied at session start.
	Destination   string     `json:"destination"`
	DepartureCity string     `json:"departure_city"`
	Dates         DateRange  `json:"dates"`
	Travelers     int        `json:"travelers"`
	HolidayType   string     `json:"holiday_type,omitempty"`
	BudgetTier    BudgetTier `json:"budget_tier"`

	// Workflow position.
	CurrentStep Step          `json:"current_step"`
	Status      SessionStatus `json:"status"`

	// Weather evaluation output.
	WeatherScore        int                    `json:"weather_score"`
	WeatherStatus       WeatherStatus          `json:"weather_status"`
	WeatherRainProb     float64                `json:"weather_rain_prob"`
	WeatherDegraded     bool                   `json:"weather_degraded,omitempty"`
	WeatherEvaluations  int                    `json:"weather_evaluations"`
	WeatherRiskAccepted bool                   `json:"weather_risk_accepted,omitempty"`
	Alternates          []AlternateDestination `json:"alternates,omitempty"`

	// Search and selection pipeline.
	HotelCandidates  []Candidate `json:"hotel_candidates,omitempty"`
	FlightCandidates []Candidate `json:"flight_candidates,omitempty"`
	FilteredHotels   []Candidate `json:"filtered_hotels,omitempty"`
	FilteredFlights  []Candidate `json:"filtered_flights,omitempty"`
	EffectiveTier    BudgetTier  `json:"effective_tier"`
	SelectedHotel    *Candidate  `json:"selected_hotel,omitempty"`
	SelectedFlight   *Candidate  `json:"selected_flight,omitempty"`
	TotalCost        int         `json:"total_cost"`

	// Synthesis output.
	Itinerary     []DayPlan     `json:"itinerary,omitempty"`
	LastSynthesis *SynthesisKey `json:"last_synthesis,omitempty"`

	// Optional post-itinerary extras.
	ActivitySuggestions string `json:"activity_suggestions,omitempty"`
	PackingList         string `json:"packing_list,omitempty"`
	FoodCulture         string `json:"food_culture,omitempty"`

	// History is the append-only audit log for the session.
	History []HistoryEntry `json:"history,omitempty"`
}

// NewTripState creates a fresh session positioned at the first step.
func NewTripState(id, destination, departureCity string, dates DateRange, travelers int, tier BudgetTier) *TripState {
	return &TripState{
		ID:            id,
		Destination:   destination,
		DepartureCity: departureCity,
		Dates:         dates,
		Travelers:     travelers,
		BudgetTier:    tier,
		EffectiveTier: tier,
		CurrentStep:   StepWeatherEvaluate,
		Status:        StatusInProgress,
	}
}

// SynthKey returns the synthesis key for the current selections.
func (s *TripState) SynthKey() SynthesisKey {
	key := SynthesisKey{Destination: s.Destination, Dates: s.Dates}
	if s.SelectedHotel != nil {
		key.HotelID = s.SelectedHotel.ID
	}
	if s.SelectedFlight != nil {
		key.FlightID = s.SelectedFlight.ID
	}
	return key
}

// NeedsSynthesis reports whether the itinerary must be recomputed.
func (s *TripState) NeedsSynthesis() bool {
	if s.Itinerary == nil || s.LastSynthesis == nil {
		return true
	}
	return *s.LastSynthesis != s.SynthKey()
}

// AppendHistory adds an entry to the audit log.
func (s *TripState) AppendHistory(entry HistoryEntry) {
	s.History = append(s.History, entry)
}

// Clone returns a deep copy. Step handlers mutate a clone and commit it only
// on success, so a failing collaborator never leaves the session
// half-updated.
func (s *TripState) Clone() *TripState {
	if s == nil {
		return nil
	}
	next := *s
	next.Alternates = append([]AlternateDestination(nil), s.Alternates...)
	next.HotelCandidates = CloneCandidates(s.HotelCandidates)
	next.FlightCandidates = CloneCandidates(s.FlightCandidates)
	next.FilteredHotels = CloneCandidates(s.FilteredHotels)
	next.FilteredFlights = CloneCandidates(s.FilteredFlights)
	if s.SelectedHotel != nil {
		hotel := *s.SelectedHotel
		next.SelectedHotel = &hotel
	}
	if s.SelectedFlight != nil {
		flight := *s.SelectedFlight
		next.SelectedFlight = &flight
	}
	if s.LastSynthesis != nil {
		key := *s.LastSynthesis
		next.LastSynthesis = &key
	}
	if s.Itinerary != nil {
		next.Itinerary = make([]DayPlan, len(s.Itinerary))
		for i, day := range s.Itinerary {
			next.Itinerary[i] = day
			next.Itinerary[i].Activities = append([]string(nil), day.Activities...)
		}
	}
	next.History = append([]HistoryEntry(nil), s.History...)
	return &next
}

package planner

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/avelar-dev/itinero/pkg/config"
	"github.com/avelar-dev/itinero/pkg/domain"
	"github.com/avelar-dev/itinero/pkg/ports"
)

// fakeWeather serves queued forecasts per destination. Once a queue is
// drained the last forecast repeats, so previews and re-evaluations can
// observe different weather for the same place.
type fakeWeather struct {
	forecasts map[string][]ports.Forecast
	errs      map[string]error
	calls     int
}

func (f *fakeWeather) Forecast(ctx context.Context, destination string, _ domain.DateRange) (ports.Forecast, error) {
	if ctx.Err() != nil {
		return ports.Forecast{}, ctx.Err()
	}
	f.calls++
	if err, ok := f.errs[destination]; ok {
		return ports.Forecast{}, err
	}
	queue, ok := f.forecasts[destination]
	if !ok || len(queue) == 0 {
		return ports.Forecast{}, fmt.Errorf("no forecast for %q", destination)
	}
	next := queue[0]
	if len(queue) > 1 {
		f.forecasts[destination] = queue[1:]
	}
	return next, nil
}

func sunny() ports.Forecast {
	return ports.Forecast{RainProbability: 10, TemperatureC: 28, ConditionCode: "clear"}
}

func stormy() ports.Forecast {
	return ports.Forecast{RainProbability: 90, TemperatureC: 27, ConditionCode: "thunderstorm"}
}

type fakeSearch struct {
	hotels     []domain.Candidate
	flights    []domain.Candidate
	hotelsErr  error
	flightsErr error
	delay      time.Duration
}

func (f *fakeSearch) SearchHotels(ctx context.Context, _ string, _ domain.DateRange, _ int) ([]domain.Candidate, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	if f.hotelsErr != nil {
		return nil, f.hotelsErr
	}
	return domain.CloneCandidates(f.hotels), nil
}

func (f *fakeSearch) SearchFlights(ctx context.Context, _, _ string, _ domain.DateRange, _ int) ([]domain.Candidate, error) {
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	if f.flightsErr != nil {
		return nil, f.flightsErr
	}
	return domain.CloneCandidates(f.flights), nil
}

func (f *fakeSearch) wait(ctx context.Context) error {
	if f.delay == 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(f.delay):
		return nil
	}
}

// fakeTextGen counts calls and can fail the first failUntil attempts.
type fakeTextGen struct {
	calls     int
	failUntil int
	err       error
}

func (f *fakeTextGen) Generate(ctx context.Context, _ string, genCtx ports.GenerationContext) (string, error) {
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	if f.calls <= f.failUntil {
		return "", fmt.Errorf("transient generation failure %d", f.calls)
	}
	return fmt.Sprintf("Morning walk in %s\nAfternoon at leisure\nEvening dinner", genCtx.Destination), nil
}

type fakeSuggester struct {
	candidates []ports.AlternateCandidate
	err        error
}

func (f *fakeSuggester) Suggest(ctx context.Context, _, _ string, max int) ([]ports.AlternateCandidate, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if f.err != nil {
		return nil, f.err
	}
	if len(f.candidates) > max {
		return f.candidates[:max], nil
	}
	return f.candidates, nil
}

func fixedClock() clockFunc {
	return func() time.Time { return time.Date(2026, 11, 1, 12, 0, 0, 0, time.UTC) }
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.TextGen.RetryDelay = config.Duration{Duration: time.Millisecond}
	cfg.TextGen.Timeout = config.Duration{Duration: 200 * time.Millisecond}
	cfg.Search.Timeout = config.Duration{Duration: 200 * time.Millisecond}
	cfg.Weather.Timeout = config.Duration{Duration: 200 * time.Millisecond}
	return cfg
}

func tripDates(days int) domain.DateRange {
	start := time.Date(2026, 12, 10, 0, 0, 0, 0, time.UTC)
	return domain.DateRange{Start: start, End: start.AddDate(0, 0, days-1)}
}

func budgetSearch() *fakeSearch {
	return &fakeSearch{
		hotels: []domain.Candidate{
			{ID: "h1", Name: "Seaview Inn", Price: 2600, Rating: 4.2},
			{ID: "h2", Name: "Palm Court", Price: 3200, Rating: 4.0},
		},
		flights: []domain.Candidate{
			{ID: "f1", Name: "AI 662", Price: 9000, Rating: 4.0},
		},
	}
}

func newTestEngine(t *testing.T, weather *fakeWeather, opts ...Option) (*Engine, *fakeTextGen) {
	t.Helper()
	gen := &fakeTextGen{}
	base := []Option{
		WithWeatherProvider(weather),
		WithSearchProvider(budgetSearch()),
		WithTextGenerator(gen),
		withClock(fixedClock()),
	}
	e, err := New(testConfig(), append(base, opts...)...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e, gen
}

func newBudgetState(destination string, days int) *domain.TripState {
	return domain.NewTripState("sess-1", destination, "mumbai", tripDates(days), 2, domain.TierBudget)
}

func historyKinds(st *domain.TripState) []domain.HistoryKind {
	kinds := make([]domain.HistoryKind, 0, len(st.History))
	for _, entry := range st.History {
		kinds = append(kinds, entry.Kind)
	}
	return kinds
}

func countKind(st *domain.TripState, kind domain.HistoryKind) int {
	n := 0
	for _, entry := range st.History {
		if entry.Kind == kind {
			n++
		}
	}
	return n
}

func TestRunHappyPath(t *testing.T) {
	weather := &fakeWeather{forecasts: map[string][]ports.Forecast{"goa": {sunny()}}}
	e, gen := newTestEngine(t, weather)

	st := newBudgetState("goa", 3)
	if err := e.Run(context.Background(), st); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if st.Status != domain.StatusCompleted {
		t.Fatalf("status = %s, want %s", st.Status, domain.StatusCompleted)
	}
	if st.CurrentStep != domain.StepDone {
		t.Errorf("current step = %s, want %s", st.CurrentStep, domain.StepDone)
	}
	if st.WeatherStatus != domain.WeatherFavorable {
		t.Errorf("weather status = %s, want favorable", st.WeatherStatus)
	}
	if st.SelectedHotel == nil || st.SelectedFlight == nil {
		t.Fatalf("selections missing: hotel=%v flight=%v", st.SelectedHotel, st.SelectedFlight)
	}
	wantCost := st.SelectedHotel.Price*3 + st.SelectedFlight.Price
	if st.TotalCost != wantCost {
		t.Errorf("total cost = %d, want %d", st.TotalCost, wantCost)
	}
	if len(st.Itinerary) != 3 {
		t.Fatalf("itinerary days = %d, want 3", len(st.Itinerary))
	}
	if gen.calls != 3 {
		t.Errorf("generator calls = %d, want 3", gen.calls)
	}
	if st.LastSynthesis == nil || *st.LastSynthesis != st.SynthKey() {
		t.Errorf("synthesis key not recorded: %+v", st.LastSynthesis)
	}
}

func TestRunGeneratesExtras(t *testing.T) {
	weather := &fakeWeather{forecasts: map[string][]ports.Forecast{"goa": {sunny()}}}
	e, gen := newTestEngine(t, weather, WithExtras())

	st := newBudgetState("goa", 3)
	if err := e.Run(context.Background(), st); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if st.ActivitySuggestions == "" {
		t.Error("activity suggestions missing")
	}
	if st.PackingList == "" {
		t.Error("packing list missing")
	}
	if st.FoodCulture == "" {
		t.Error("food and culture notes missing")
	}
	if gen.calls != 6 {
		t.Errorf("generator calls = %d, want 3 day plans plus 3 extras", gen.calls)
	}
}

func TestRunPausesOnPoorWeather(t *testing.T) {
	weather := &fakeWeather{forecasts: map[string][]ports.Forecast{
		"goa":         {stormy()},
		"pondicherry": {sunny()},
	}}
	suggester := &fakeSuggester{candidates: []ports.AlternateCandidate{
		{Name: "pondicherry", DistanceKm: 870},
	}}
	e, _ := newTestEngine(t, weather, WithAlternateSuggester(suggester))

	st := newBudgetState("goa", 3)
	if err := e.Run(context.Background(), st); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if st.Status != domain.StatusAwaitingAlternate {
		t.Fatalf("status = %s, want %s", st.Status, domain.StatusAwaitingAlternate)
	}
	if st.WeatherStatus != domain.WeatherPoor {
		t.Errorf("weather status = %s, want poor", st.WeatherStatus)
	}
	if len(st.Alternates) != 1 || st.Alternates[0].Name != "pondicherry" {
		t.Fatalf("alternates = %+v, want pondicherry", st.Alternates)
	}
	if st.Alternates[0].WeatherScore < testConfig().Weather.FavorableThreshold {
		t.Errorf("alternate score = %d, below favorable threshold", st.Alternates[0].WeatherScore)
	}
	if st.SelectedHotel != nil || len(st.Itinerary) != 0 {
		t.Errorf("paused session must not have downstream results")
	}

	if err := e.ChooseAlternate(context.Background(), st, "pondicherry"); err != nil {
		t.Fatalf("ChooseAlternate: %v", err)
	}
	if st.Status != domain.StatusCompleted {
		t.Fatalf("status after choice = %s, want completed", st.Status)
	}
	if st.Destination != "pondicherry" {
		t.Errorf("destination = %q, want pondicherry", st.Destination)
	}
	if st.WeatherEvaluations != 2 {
		t.Errorf("weather evaluations = %d, want 2", st.WeatherEvaluations)
	}
	if countKind(st, domain.HistoryAlternateAccepted) != 1 {
		t.Errorf("history = %v, want one alternate_accepted entry", historyKinds(st))
	}
}

func TestChooseAlternateKeepsOriginal(t *testing.T) {
	weather := &fakeWeather{forecasts: map[string][]ports.Forecast{
		"goa":     {stormy()},
		"gokarna": {sunny()},
	}}
	suggester := &fakeSuggester{candidates: []ports.AlternateCandidate{{Name: "gokarna", DistanceKm: 140}}}
	e, _ := newTestEngine(t, weather, WithAlternateSuggester(suggester))

	st := newBudgetState("goa", 2)
	if err := e.Run(context.Background(), st); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if err := e.ChooseAlternate(context.Background(), st, ""); err != nil {
		t.Fatalf("ChooseAlternate: %v", err)
	}

	if st.Status != domain.StatusCompleted {
		t.Fatalf("status = %s, want completed", st.Status)
	}
	if st.Destination != "goa" {
		t.Errorf("destination = %q, want goa", st.Destination)
	}
	if !st.WeatherRiskAccepted {
		t.Errorf("weather risk not marked accepted")
	}
	if st.WeatherEvaluations != 1 {
		t.Errorf("weather evaluations = %d, want 1 (no re-evaluation on keep)", st.WeatherEvaluations)
	}
	if countKind(st, domain.HistoryWeatherRiskAccepted) != 1 {
		t.Errorf("history = %v, want one weather_risk_accepted entry", historyKinds(st))
	}
}

func TestChooseAlternateRejectsUnknownName(t *testing.T) {
	weather := &fakeWeather{forecasts: map[string][]ports.Forecast{
		"goa":     {stormy()},
		"gokarna": {sunny()},
	}}
	suggester := &fakeSuggester{candidates: []ports.AlternateCandidate{{Name: "gokarna", DistanceKm: 140}}}
	e, _ := newTestEngine(t, weather, WithAlternateSuggester(suggester))

	st := newBudgetState("goa", 2)
	if err := e.Run(context.Background(), st); err != nil {
		t.Fatalf("Run: %v", err)
	}

	err := e.ChooseAlternate(context.Background(), st, "atlantis")
	if !errors.Is(err, domain.ErrInvalidDirective) {
		t.Fatalf("err = %v, want ErrInvalidDirective", err)
	}
	if st.Status != domain.StatusAwaitingAlternate {
		t.Errorf("status = %s, rejection must keep the session paused", st.Status)
	}
}

func TestChooseAlternateRequiresPausedSession(t *testing.T) {
	weather := &fakeWeather{forecasts: map[string][]ports.Forecast{"goa": {sunny()}}}
	e, _ := newTestEngine(t, weather)

	st := newBudgetState("goa", 2)
	if err := e.Run(context.Background(), st); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if err := e.ChooseAlternate(context.Background(), st, "gokarna"); !errors.Is(err, domain.ErrInvalidDirective) {
		t.Fatalf("err = %v, want ErrInvalidDirective", err)
	}
}

func TestChooseAlternateHonorsReevaluationLimit(t *testing.T) {
	weather := &fakeWeather{forecasts: map[string][]ports.Forecast{"goa": {stormy()}}}
	e, _ := newTestEngine(t, weather)

	st := newBudgetState("goa", 2)
	st.Status = domain.StatusAwaitingAlternate
	st.Alternates = []domain.AlternateDestination{{Name: "gokarna", WeatherScore: 90}}
	st.WeatherEvaluations = testConfig().MaxWeatherReevaluations + 1

	if err := e.ChooseAlternate(context.Background(), st, "gokarna"); !errors.Is(err, domain.ErrReevaluationLimit) {
		t.Fatalf("err = %v, want ErrReevaluationLimit", err)
	}
}

func TestAutoAlternateSkipsPause(t *testing.T) {
	weather := &fakeWeather{forecasts: map[string][]ports.Forecast{
		"goa":         {stormy()},
		"pondicherry": {sunny()},
	}}
	suggester := &fakeSuggester{candidates: []ports.AlternateCandidate{{Name: "pondicherry", DistanceKm: 870}}}
	e, _ := newTestEngine(t, weather, WithAlternateSuggester(suggester), WithAutoAlternate())

	st := newBudgetState("goa", 2)
	if err := e.Run(context.Background(), st); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if st.Status != domain.StatusCompleted {
		t.Fatalf("status = %s, want completed", st.Status)
	}
	if st.Destination != "pondicherry" {
		t.Errorf("destination = %q, want pondicherry", st.Destination)
	}
}

func TestRunRiskAcceptsWithoutQualifyingAlternates(t *testing.T) {
	// Every candidate previews stormy, so nothing clears the favorable bar
	// and the original destination proceeds flagged.
	weather := &fakeWeather{forecasts: map[string][]ports.Forecast{
		"goa":     {stormy()},
		"gokarna": {stormy()},
	}}
	suggester := &fakeSuggester{candidates: []ports.AlternateCandidate{{Name: "gokarna", DistanceKm: 140}}}
	e, _ := newTestEngine(t, weather, WithAlternateSuggester(suggester))

	st := newBudgetState("goa", 2)
	if err := e.Run(context.Background(), st); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if st.Status != domain.StatusCompleted {
		t.Fatalf("status = %s, want completed", st.Status)
	}
	if !st.WeatherRiskAccepted {
		t.Errorf("weather risk not accepted")
	}
	if len(st.Alternates) != 0 {
		t.Errorf("alternates = %+v, want none retained", st.Alternates)
	}
}

func TestRunRiskAcceptsWithoutSuggester(t *testing.T) {
	weather := &fakeWeather{forecasts: map[string][]ports.Forecast{"goa": {stormy()}}}
	e, _ := newTestEngine(t, weather)

	st := newBudgetState("goa", 2)
	if err := e.Run(context.Background(), st); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if st.Status != domain.StatusCompleted || !st.WeatherRiskAccepted {
		t.Fatalf("status=%s riskAccepted=%v, want completed with risk accepted", st.Status, st.WeatherRiskAccepted)
	}
}

func TestRunStopsReevaluationLoop(t *testing.T) {
	// Alternates preview sunny but turn stormy on arrival. After the cap the
	// loop resolves by accepting the risk instead of pausing again.
	weather := &fakeWeather{forecasts: map[string][]ports.Forecast{
		"stormport": {stormy()},
		"altville":  {sunny(), stormy()},
		"galeford":  {sunny(), sunny(), stormy()},
	}}
	suggester := &fakeSuggester{candidates: []ports.AlternateCandidate{
		{Name: "altville", DistanceKm: 100},
		{Name: "galeford", DistanceKm: 200},
	}}
	e, _ := newTestEngine(t, weather, WithAlternateSuggester(suggester))

	st := newBudgetState("stormport", 2)
	if err := e.Run(context.Background(), st); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if st.Status != domain.StatusAwaitingAlternate {
		t.Fatalf("status = %s, want awaiting alternate", st.Status)
	}
	if err := e.ChooseAlternate(context.Background(), st, "altville"); err != nil {
		t.Fatalf("first choice: %v", err)
	}
	if st.Status != domain.StatusAwaitingAlternate {
		t.Fatalf("status after first choice = %s, want paused again", st.Status)
	}
	if err := e.ChooseAlternate(context.Background(), st, "galeford"); err != nil {
		t.Fatalf("second choice: %v", err)
	}

	if st.Status != domain.StatusCompleted {
		t.Fatalf("status = %s, want completed after cap", st.Status)
	}
	if st.Destination != "galeford" {
		t.Errorf("destination = %q, want galeford", st.Destination)
	}
	if !st.WeatherRiskAccepted {
		t.Errorf("weather risk not accepted after exhausting re-evaluations")
	}
	if st.WeatherEvaluations != 3 {
		t.Errorf("weather evaluations = %d, want 3", st.WeatherEvaluations)
	}
}

func TestRunNoMatchesIsTerminal(t *testing.T) {
	weather := &fakeWeather{forecasts: map[string][]ports.Forecast{"goa": {sunny()}}}
	gen := &fakeTextGen{}
	e, err := New(testConfig(),
		WithWeatherProvider(weather),
		WithSearchProvider(&fakeSearch{hotelsErr: errors.New("upstream down"), flightsErr: errors.New("upstream down")}),
		WithTextGenerator(gen),
		withClock(fixedClock()),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	st := newBudgetState("goa", 2)
	runErr := e.Run(context.Background(), st)
	if !errors.Is(runErr, domain.ErrNoMatches) {
		t.Fatalf("err = %v, want ErrNoMatches", runErr)
	}
	if !IsTerminal(runErr) {
		t.Errorf("IsTerminal(%v) = false, want true", runErr)
	}
	if st.Status != domain.StatusFailed {
		t.Errorf("status = %s, want failed", st.Status)
	}
	if countKind(st, domain.HistorySearchDegraded) != 2 {
		t.Errorf("history = %v, want two search_degraded entries", historyKinds(st))
	}
}

func TestRunFailedStepDiscardsClone(t *testing.T) {
	weather := &fakeWeather{forecasts: map[string][]ports.Forecast{"goa": {sunny()}}}
	gen := &fakeTextGen{err: errors.New("model offline")}
	e, err := New(testConfig(),
		WithWeatherProvider(weather),
		WithSearchProvider(budgetSearch()),
		WithTextGenerator(gen),
		withClock(fixedClock()),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	st := newBudgetState("goa", 3)
	runErr := e.Run(context.Background(), st)
	if !errors.Is(runErr, domain.ErrProviderUnavailable) {
		t.Fatalf("err = %v, want ErrProviderUnavailable", runErr)
	}
	if st.Status != domain.StatusFailed {
		t.Errorf("status = %s, want failed", st.Status)
	}
	// Ranking committed before the failing step; synthesis must not have.
	if st.SelectedHotel == nil {
		t.Errorf("ranked selection lost on itinerary failure")
	}
	if st.CurrentStep != domain.StepItinerary {
		t.Errorf("current step = %s, want itinerary", st.CurrentStep)
	}
	if st.Itinerary != nil || st.LastSynthesis != nil {
		t.Errorf("failed synthesis leaked partial results")
	}
}

func TestRunContextCancellation(t *testing.T) {
	weather := &fakeWeather{forecasts: map[string][]ports.Forecast{"goa": {sunny()}}}
	e, _ := newTestEngine(t, weather)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	st := newBudgetState("goa", 2)
	err := e.Run(ctx, st)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if st.Status != domain.StatusInProgress {
		t.Errorf("status = %s, cancellation must not mark the session failed", st.Status)
	}
}

func TestRunEmitsStepEvents(t *testing.T) {
	weather := &fakeWeather{forecasts: map[string][]ports.Forecast{"goa": {sunny()}}}
	var entered, left []domain.Step
	hooks := domain.LifecycleHooks{
		OnStepEnter: func(_ context.Context, ev *domain.StepEvent) { entered = append(entered, ev.Step) },
		OnStepLeave: func(_ context.Context, ev *domain.StepEvent) { left = append(left, ev.Step) },
	}
	e, _ := newTestEngine(t, weather, WithLifecycleHooks(hooks))

	st := newBudgetState("goa", 2)
	if err := e.Run(context.Background(), st); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []domain.Step{
		domain.StepWeatherEvaluate,
		domain.StepSearch,
		domain.StepBudgetFilter,
		domain.StepRank,
		domain.StepItinerary,
	}
	if len(entered) != len(want) || len(left) != len(want) {
		t.Fatalf("events: entered=%v left=%v, want %v", entered, left, want)
	}
	for i, step := range want {
		if entered[i] != step || left[i] != step {
			t.Errorf("event %d: entered=%s left=%s, want %s", i, entered[i], left[i], step)
		}
	}
}

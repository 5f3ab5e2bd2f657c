package planner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/avelar-dev/itinero/internal/logging"
	"github.com/avelar-dev/itinero/pkg/config"
	"github.com/avelar-dev/itinero/pkg/domain"
	"github.com/avelar-dev/itinero/pkg/ports"
)

// clockFunc supplies timestamps for history entries and events.
type clockFunc func() time.Time

// Engine drives one TripState through the workflow graph. It owns no state
// itself: all session data lives on the TripState passed into each call, so
// a single Engine serves any number of sequential or concurrent sessions.
type Engine struct {
	cfg        *config.Config
	weather    ports.WeatherProvider
	search     ports.SearchProvider
	textgen    ports.TextGenerator
	alternates ports.AlternateSuggester

	hooks  domain.LifecycleHooks
	logger *slog.Logger
	clock  clockFunc

	autoAlternate bool
	withExtras    bool

	evaluator  *weatherEvaluator
	aggregator *searchAggregator
	filter     *budgetFilter
	ranker     *ranker
	synth      *synthesizer
}

// Option configures the Engine.
type Option func(*Engine)

// WithWeatherProvider sets the weather collaborator (required).
func WithWeatherProvider(p ports.WeatherProvider) Option {
	return func(e *Engine) { e.weather = p }
}

// WithSearchProvider sets the hotel/flight search collaborator (required).
func WithSearchProvider(p ports.SearchProvider) Option {
	return func(e *Engine) { e.search = p }
}

// WithTextGenerator sets the text-generation collaborator (required).
func WithTextGenerator(g ports.TextGenerator) Option {
	return func(e *Engine) { e.textgen = g }
}

// WithAlternateSuggester sets the alternate-destination collaborator.
// Without one, poor weather falls through to the weather-risk-accepted path.
func WithAlternateSuggester(s ports.AlternateSuggester) Option {
	return func(e *Engine) { e.alternates = s }
}

// WithLifecycleHooks registers observability callbacks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) { e.hooks = hooks }
}

// WithLogger sets the engine logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithAutoAlternate makes the engine pick the best qualifying alternate
// automatically instead of pausing for a choice.
func WithAutoAlternate() Option {
	return func(e *Engine) { e.autoAlternate = true }
}

// WithExtras enables post-itinerary activity suggestions, packing list and
// food-and-culture notes generation.
func WithExtras() Option {
	return func(e *Engine) { e.withExtras = true }
}

// withClock overrides the history timestamp source in tests.
func withClock(clock clockFunc) Option {
	return func(e *Engine) { e.clock = clock }
}

// New creates an Engine. The configuration is validated once and shared
// read-only by every component.
func New(cfg *config.Config, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("engine config: %w", err)
	}

	e := &Engine{
		cfg:    cfg,
		logger: logging.NewNop(),
		clock:  func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.weather == nil {
		return nil, fmt.Errorf("engine requires a weather provider")
	}
	if e.search == nil {
		return nil, fmt.Errorf("engine requires a search provider")
	}
	if e.textgen == nil {
		return nil, fmt.Errorf("engine requires a text generator")
	}

	e.evaluator = &weatherEvaluator{cfg: e.cfg, provider: e.weather, logger: e.logger}
	e.aggregator = &searchAggregator{cfg: e.cfg, provider: e.search, logger: e.logger, hooks: e.hooks}
	e.filter = &budgetFilter{cfg: e.cfg, logger: e.logger}
	e.ranker = &ranker{cfg: e.cfg, logger: e.logger}
	e.synth = &synthesizer{cfg: e.cfg, generator: e.textgen, logger: e.logger, hooks: e.hooks}
	return e, nil
}

// Run drives st from its current step until the pipeline completes, pauses
// on an alternate-destination choice, or stops on a terminal error. Each
// step mutates a clone of the state; the clone is committed only when the
// step succeeds, so errors never leave st partially updated.
func (e *Engine) Run(ctx context.Context, st *domain.TripState) error {
	if st == nil {
		return fmt.Errorf("nil trip state")
	}

	for st.Status == domain.StatusInProgress {
		step := st.CurrentStep
		if step == domain.StepDone {
			st.Status = domain.StatusCompleted
			return nil
		}

		start := e.clock()
		e.emitStepEnter(ctx, st, step)

		work := st.Clone()
		err := e.dispatch(ctx, step, work)
		e.emitStepLeave(ctx, st, step, e.clock().Sub(start), err)

		if err != nil {
			if ctx.Err() == nil {
				st.Status = domain.StatusFailed
			}
			return fmt.Errorf("step %s: %w", step, err)
		}

		// Handlers that redirect (alternate choice) or pause set
		// CurrentStep/Status themselves; everything else follows the
		// default edge.
		if work.Status == domain.StatusInProgress && work.CurrentStep == step {
			work.CurrentStep = Next(step, work)
		}
		*st = *work

		if st.CurrentStep == domain.StepDone && st.Status == domain.StatusInProgress {
			st.Status = domain.StatusCompleted
		}
	}
	return nil
}

func (e *Engine) dispatch(ctx context.Context, step domain.Step, work *domain.TripState) error {
	switch step {
	case domain.StepWeatherEvaluate:
		return e.evaluator.Evaluate(ctx, work, e.clock)
	case domain.StepSuggestAlternates:
		return e.suggestAlternates(ctx, work)
	case domain.StepSearch:
		return e.aggregator.Aggregate(ctx, work, e.clock)
	case domain.StepBudgetFilter:
		return e.filter.Apply(work, e.clock)
	case domain.StepRank:
		return e.ranker.Apply(work)
	case domain.StepItinerary:
		if err := e.synth.Synthesize(ctx, work, e.clock); err != nil {
			return err
		}
		if e.withExtras {
			e.generateExtras(ctx, work)
		}
		return nil
	default:
		return fmt.Errorf("unknown step %q", step)
	}
}

// suggestAlternates gathers weather-scored alternate destinations. With no
// qualifying alternates, or with the re-evaluation budget exhausted, the
// original destination is kept and flagged weather-risk accepted rather than
// blocking the pipeline.
func (e *Engine) suggestAlternates(ctx context.Context, st *domain.TripState) error {
	if st.WeatherEvaluations > e.cfg.MaxWeatherReevaluations {
		e.acceptWeatherRisk(st, "re-evaluation limit reached")
		return nil
	}

	alternates, err := e.scoreAlternates(ctx, st)
	if err != nil {
		return err
	}
	st.Alternates = alternates

	if len(alternates) == 0 {
		e.acceptWeatherRisk(st, "no qualifying alternates")
		return nil
	}

	if e.autoAlternate {
		e.applyAlternate(st, alternates[0].Name)
		return nil
	}

	st.Status = domain.StatusAwaitingAlternate
	return nil
}

// scoreAlternates asks the suggester for similar destinations, previews each
// one's weather, keeps those at or above the favorable threshold, and ranks
// them by score descending with ties broken by ascending distance, then name.
func (e *Engine) scoreAlternates(ctx context.Context, st *domain.TripState) ([]domain.AlternateDestination, error) {
	if e.alternates == nil {
		return nil, nil
	}

	candidates, err := e.alternates.Suggest(ctx, st.Destination, st.HolidayType, e.cfg.MaxAlternates*2)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		e.logger.Warn("alternate suggestion failed", "error", err)
		return nil, nil
	}

	scored := make([]domain.AlternateDestination, 0, len(candidates))
	for _, cand := range candidates {
		if cand.Name == "" || cand.Name == st.Destination {
			continue
		}
		callCtx, cancel := context.WithTimeout(ctx, e.cfg.Weather.Timeout.Duration)
		forecast, err := e.weather.Forecast(callCtx, cand.Name, st.Dates)
		cancel()
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			e.logger.Debug("skipping unscoreable alternate", "name", cand.Name, "error", err)
			continue
		}
		score := e.evaluator.score(forecast)
		if score < e.cfg.Weather.FavorableThreshold {
			continue
		}
		scored = append(scored, domain.AlternateDestination{
			Name:         cand.Name,
			WeatherScore: score,
			DistanceKm:   cand.DistanceKm,
		})
	}

	sortAlternates(scored)
	if len(scored) > e.cfg.MaxAlternates {
		scored = scored[:e.cfg.MaxAlternates]
	}
	return scored, nil
}

// ChooseAlternate resolves a session paused on an alternate-destination
// choice. An empty name keeps the original destination with the weather risk
// accepted; a listed name re-enters weather evaluation exactly once. The run
// then continues synchronously.
func (e *Engine) ChooseAlternate(ctx context.Context, st *domain.TripState, name string) error {
	if st.Status != domain.StatusAwaitingAlternate {
		return fmt.Errorf("%w: session is not awaiting an alternate choice", domain.ErrInvalidDirective)
	}

	if name == "" {
		e.acceptWeatherRisk(st, "caller kept original destination")
		st.Status = domain.StatusInProgress
		st.CurrentStep = domain.StepSearch
		return e.Run(ctx, st)
	}

	found := false
	for _, alt := range st.Alternates {
		if alt.Name == name {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: %q is not a suggested alternate", domain.ErrInvalidDirective, name)
	}
	if st.WeatherEvaluations > e.cfg.MaxWeatherReevaluations {
		return domain.ErrReevaluationLimit
	}

	e.applyAlternate(st, name)
	st.Status = domain.StatusInProgress
	return e.Run(ctx, st)
}

// applyAlternate switches the session to an alternate destination and
// rewinds the pipeline to weather evaluation.
func (e *Engine) applyAlternate(st *domain.TripState, name string) {
	st.AppendHistory(domain.HistoryEntry{
		Time:   e.clock(),
		Kind:   domain.HistoryAlternateAccepted,
		Detail: fmt.Sprintf("%s -> %s", st.Destination, name),
	})
	st.Destination = name
	st.Alternates = nil
	st.WeatherRiskAccepted = false
	clearDownstream(st)
	st.CurrentStep = domain.StepWeatherEvaluate
}

func (e *Engine) acceptWeatherRisk(st *domain.TripState, reason string) {
	st.WeatherRiskAccepted = true
	st.AppendHistory(domain.HistoryEntry{
		Time:   e.clock(),
		Kind:   domain.HistoryWeatherRiskAccepted,
		Detail: reason,
	})
}

// clearDownstream drops every field derived from search onward. Used when the
// destination or dates change and the pipeline rewinds.
func clearDownstream(st *domain.TripState) {
	st.HotelCandidates = nil
	st.FlightCandidates = nil
	st.FilteredHotels = nil
	st.FilteredFlights = nil
	st.SelectedHotel = nil
	st.SelectedFlight = nil
	st.TotalCost = 0
	st.Itinerary = nil
	st.LastSynthesis = nil
	st.ActivitySuggestions = ""
	st.PackingList = ""
	st.FoodCulture = ""
}

func (e *Engine) emitStepEnter(ctx context.Context, st *domain.TripState, step domain.Step) {
	if e.hooks.OnStepEnter == nil {
		return
	}
	e.hooks.OnStepEnter(ctx, &domain.StepEvent{
		Type:      domain.EventStepEnter,
		Timestamp: e.clock(),
		SessionID: st.ID,
		Step:      step,
	})
}

func (e *Engine) emitStepLeave(ctx context.Context, st *domain.TripState, step domain.Step, duration time.Duration, err error) {
	if e.hooks.OnStepLeave == nil {
		return
	}
	e.hooks.OnStepLeave(ctx, &domain.StepEvent{
		Type:      domain.EventStepLeave,
		Timestamp: e.clock(),
		SessionID: st.ID,
		Step:      step,
		Duration:  duration,
		Err:       err,
	})
}

// IsTerminal reports whether an error from Run or Replan is a terminal,
// user-actionable condition rather than an internal failure.
func IsTerminal(err error) bool {
	return errors.Is(err, domain.ErrNoMatches)
}

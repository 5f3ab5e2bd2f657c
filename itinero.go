package itinero

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/avelar-dev/itinero/internal/adapters/static"
	"github.com/avelar-dev/itinero/internal/logging"
	"github.com/avelar-dev/itinero/internal/planner"
	"github.com/avelar-dev/itinero/pkg/adapters/memory"
	"github.com/avelar-dev/itinero/pkg/config"
	"github.com/avelar-dev/itinero/pkg/domain"
	"github.com/avelar-dev/itinero/pkg/ports"
	"github.com/avelar-dev/itinero/pkg/session"
)

// Version is the library version, surfaced by the CLI and the MCP server.
const Version = "1.0.0"

// Planner is the high-level entry point for the library. It wraps the
// internal workflow engine with session persistence and locking, so callers
// deal only in session IDs and trip states.
type Planner struct {
	engine   *planner.Engine
	sessions *session.Manager
	logger   *slog.Logger

	cfg        *config.Config
	store      ports.StateStore
	locker     ports.DistributedLocker
	weather    ports.WeatherProvider
	search     ports.SearchProvider
	textgen    ports.TextGenerator
	alternates ports.AlternateSuggester
	hooks      domain.LifecycleHooks
	engineOpts []planner.Option
}

// Option defines a functional option for configuring the Planner.
type Option func(*Planner)

// WithConfig sets the planner configuration. Defaults to config.Default().
func WithConfig(cfg *config.Config) Option {
	return func(p *Planner) { p.cfg = cfg }
}

// WithStore injects a session store, bypassing the default in-memory one.
func WithStore(store ports.StateStore) Option {
	return func(p *Planner) { p.store = store }
}

// WithLocker adds a distributed locker for multi-instance deployments.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(p *Planner) { p.locker = locker }
}

// WithWeatherProvider replaces the offline weather collaborator.
func WithWeatherProvider(w ports.WeatherProvider) Option {
	return func(p *Planner) { p.weather = w }
}

// WithSearchProvider replaces the offline search collaborator.
func WithSearchProvider(s ports.SearchProvider) Option {
	return func(p *Planner) { p.search = s }
}

// WithTextGenerator replaces the offline text-generation collaborator.
func WithTextGenerator(g ports.TextGenerator) Option {
	return func(p *Planner) { p.textgen = g }
}

// WithAlternateSuggester replaces the offline alternate-destination
// collaborator.
func WithAlternateSuggester(s ports.AlternateSuggester) Option {
	return func(p *Planner) { p.alternates = s }
}

// WithLifecycleHooks registers observability hooks on the engine.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(p *Planner) { p.hooks = hooks }
}

// WithLogger sets a structured logger for the planner and engine.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Planner) { p.logger = logger }
}

// WithAutoAlternate makes poor-weather runs pick the best alternate
// automatically instead of pausing for a choice.
func WithAutoAlternate() Option {
	return func(p *Planner) { p.engineOpts = append(p.engineOpts, planner.WithAutoAlternate()) }
}

// WithExtras enables activity suggestions, packing list and food-and-culture
// notes generation after the itinerary is synthesized.
func WithExtras() Option {
	return func(p *Planner) { p.engineOpts = append(p.engineOpts, planner.WithExtras()) }
}

// New initializes a Planner. Without options it runs fully offline: in-memory
// sessions and the static demo collaborators.
func New(opts ...Option) (*Planner, error) {
	p := &Planner{}
	for _, opt := range opts {
		opt(p)
	}

	if p.cfg == nil {
		p.cfg = config.Default()
	}
	if p.logger == nil {
		p.logger = logging.NewNop()
	}
	if p.store == nil {
		p.store = memory.NewStore()
	}
	if p.weather == nil {
		p.weather = static.NewWeather()
	}
	if p.search == nil {
		p.search = static.NewSearch()
	}
	if p.textgen == nil {
		p.textgen = static.NewTextGenerator(p.cfg)
	}
	if p.alternates == nil {
		p.alternates = static.NewAlternates()
	}

	engineOpts := append([]planner.Option{
		planner.WithWeatherProvider(p.weather),
		planner.WithSearchProvider(p.search),
		planner.WithTextGenerator(p.textgen),
		planner.WithAlternateSuggester(p.alternates),
		planner.WithLifecycleHooks(p.hooks),
		planner.WithLogger(p.logger),
	}, p.engineOpts...)

	engine, err := planner.New(p.cfg, engineOpts...)
	if err != nil {
		return nil, err
	}
	p.engine = engine

	sessionOpts := []session.Option{session.WithLogger(p.logger)}
	if p.locker != nil {
		sessionOpts = append(sessionOpts, session.WithLocker(p.locker))
	}
	p.sessions = session.NewManager(p.store, sessionOpts...)
	return p, nil
}

// TripRequest carries the preferences for a new planning session.
type TripRequest struct {
	Destination   string            `json:"destination"`
	DepartureCity string            `json:"departure_city"`
	Dates         domain.DateRange  `json:"dates"`
	Travelers     int               `json:"travelers"`
	BudgetTier    domain.BudgetTier `json:"budget_tier"`
	HolidayType   string            `json:"holiday_type,omitempty"`
}

// Validate checks the request is complete enough to start a session.
func (r TripRequest) Validate() error {
	if r.Destination == "" {
		return fmt.Errorf("destination is required")
	}
	if r.DepartureCity == "" {
		return fmt.Errorf("departure city is required")
	}
	if err := r.Dates.Validate(); err != nil {
		return err
	}
	if r.Travelers < 1 {
		return fmt.Errorf("travelers must be at least 1")
	}
	if !r.BudgetTier.Valid() {
		return fmt.Errorf("unknown budget tier %d", int(r.BudgetTier))
	}
	return nil
}

// Plan starts a new session and runs the workflow until it finishes, pauses
// for an alternate choice, or fails. The resulting state is persisted in all
// three cases. A terminal no-matches outcome is reported via
// domain.ErrNoMatches alongside the persisted state.
func (p *Planner) Plan(ctx context.Context, req TripRequest) (*domain.TripState, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid trip request: %w", err)
	}

	st := domain.NewTripState(uuid.NewString(), req.Destination, req.DepartureCity,
		req.Dates, req.Travelers, req.BudgetTier)
	st.HolidayType = req.HolidayType

	runErr := p.withSession(ctx, st.ID, func(ctx context.Context) error {
		return p.run(ctx, st, func(ctx context.Context) error {
			return p.engine.Run(ctx, st)
		})
	})
	return st, runErr
}

// Get returns the current state of a session.
func (p *Planner) Get(ctx context.Context, sessionID string) (*domain.TripState, error) {
	return p.sessions.Load(ctx, sessionID)
}

// List returns the IDs of all stored sessions.
func (p *Planner) List(ctx context.Context) ([]string, error) {
	return p.sessions.List(ctx)
}

// Delete removes a session.
func (p *Planner) Delete(ctx context.Context, sessionID string) error {
	return p.sessions.Delete(ctx, sessionID)
}

// ChooseAlternate resumes a session paused on an alternate-destination
// choice. An empty name keeps the original destination and accepts the
// weather risk.
func (p *Planner) ChooseAlternate(ctx context.Context, sessionID, name string) (*domain.TripState, error) {
	return p.mutate(ctx, sessionID, func(ctx context.Context, st *domain.TripState) error {
		return p.engine.ChooseAlternate(ctx, st, name)
	})
}

// Replan applies a typed directive to a finished session and re-runs the
// affected part of the workflow.
func (p *Planner) Replan(ctx context.Context, sessionID string, directive domain.ReplanDirective) (*domain.TripState, error) {
	return p.mutate(ctx, sessionID, func(ctx context.Context, st *domain.TripState) error {
		return p.engine.Replan(ctx, st, directive)
	})
}

// mutate runs fn against the stored state under the session lock and
// persists the outcome.
func (p *Planner) mutate(ctx context.Context, sessionID string, fn func(context.Context, *domain.TripState) error) (*domain.TripState, error) {
	var st *domain.TripState
	err := p.withSession(ctx, sessionID, func(ctx context.Context) error {
		// The session lock is already held here; going back through the
		// Manager would block on it.
		loaded, err := p.sessions.Store().Load(ctx, sessionID)
		if err != nil {
			return err
		}
		st = loaded
		return p.run(ctx, st, func(ctx context.Context) error {
			return fn(ctx, st)
		})
	})
	return st, err
}

// run executes fn and persists st afterwards, even when fn failed, so
// failure status and history survive. Save errors only surface when fn
// itself succeeded. Callers hold the session lock, so persistence goes
// through the bare store.
func (p *Planner) run(ctx context.Context, st *domain.TripState, fn func(context.Context) error) error {
	runErr := fn(ctx)
	if err := p.sessions.Store().Save(ctx, st.ID, st); err != nil {
		if runErr != nil {
			p.logger.Error("failed to persist session after run error",
				"session_id", st.ID, "run_error", runErr, "error", err)
			return runErr
		}
		return fmt.Errorf("persist session %s: %w", st.ID, err)
	}
	return runErr
}

func (p *Planner) withSession(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	return p.sessions.WithLock(ctx, sessionID, fn)
}

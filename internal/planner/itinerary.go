package planner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/avelar-dev/itinero/pkg/config"
	"github.com/avelar-dev/itinero/pkg/domain"
	"github.com/avelar-dev/itinero/pkg/ports"
)

// synthesizer produces the day-wise plan via the text-generation
// collaborator. Synthesis is idempotent: it only runs when the selected
// hotel, selected flight, destination, or date range changed since the last
// synthesis.
type synthesizer struct {
	cfg       *config.Config
	generator ports.TextGenerator
	logger    *slog.Logger
	hooks     domain.LifecycleHooks
}

// Synthesize builds one day-plan per day in the date range. When the
// synthesis inputs are unchanged, the previously computed itinerary is
// reused and no collaborator call is made.
func (s *synthesizer) Synthesize(ctx context.Context, st *domain.TripState, clock clockFunc) error {
	if !st.NeedsSynthesis() {
		s.logger.Debug("itinerary unchanged, reusing previous synthesis")
		return nil
	}

	days := st.Dates.Days()
	if days <= 0 {
		return fmt.Errorf("cannot synthesize itinerary for empty date range")
	}

	plans := make([]domain.DayPlan, 0, days)
	for day := 1; day <= days; day++ {
		date := st.Dates.Start.AddDate(0, 0, day-1)
		text, err := s.generate(ctx, st, dayPrompt(st, day, days, date), ports.GenerationContext{
			Destination:   st.Destination,
			Day:           day,
			Date:          date.Format("2006-01-02"),
			DurationDays:  days,
			Travelers:     st.Travelers,
			HolidayType:   st.HolidayType,
			WeatherStatus: st.WeatherStatus,
		}, clock)
		if err != nil {
			// The engine discards the working clone, so the previous
			// itinerary (if any) stays intact.
			return fmt.Errorf("day %d: %w", day, err)
		}
		plans = append(plans, domain.DayPlan{
			Day:        day,
			Date:       date,
			Activities: splitActivities(text),
		})
	}

	st.Itinerary = plans
	key := st.SynthKey()
	st.LastSynthesis = &key
	s.logger.Debug("itinerary synthesized", "days", len(plans))
	return nil
}

// generate calls the collaborator with bounded retries and a fixed delay
// between attempts. Exhausted retries surface ErrProviderUnavailable.
func (s *synthesizer) generate(ctx context.Context, st *domain.TripState, prompt string, genCtx ports.GenerationContext, clock clockFunc) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= s.cfg.TextGen.MaxAttempts; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, s.cfg.TextGen.Timeout.Duration)
		text, err := s.generator.Generate(callCtx, prompt, genCtx)
		cancel()
		if err == nil {
			return text, nil
		}
		lastErr = err
		if s.hooks.OnProviderError != nil {
			s.hooks.OnProviderError(ctx, &domain.ProviderEvent{
				Timestamp: clock(),
				SessionID: st.ID,
				Provider:  "textgen",
				Recovered: attempt < s.cfg.TextGen.MaxAttempts,
				Err:       err,
			})
		}
		if attempt == s.cfg.TextGen.MaxAttempts {
			break
		}
		s.logger.Warn("text generation failed, retrying",
			"attempt", attempt, "error", err)
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(s.cfg.TextGen.RetryDelay.Duration):
		}
	}
	return "", fmt.Errorf("%w: text generation failed after %d attempts: %v",
		domain.ErrProviderUnavailable, s.cfg.TextGen.MaxAttempts, lastErr)
}

// dayPrompt assembles the generation prompt for one day of the trip.
func dayPrompt(st *domain.TripState, day, days int, date time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Plan day %d of %d for a trip to %s on %s.\n",
		day, days, st.Destination, date.Format("Monday, 2 January 2006"))
	fmt.Fprintf(&b, "Travelers: %d. Weather outlook: %s.\n", st.Travelers, st.WeatherStatus)
	if st.HolidayType != "" {
		fmt.Fprintf(&b, "Holiday type: %s.\n", st.HolidayType)
	}
	if st.SelectedHotel != nil {
		fmt.Fprintf(&b, "Staying at %s.\n", st.SelectedHotel.Name)
	}
	if st.SelectedFlight != nil && (day == 1 || day == days) {
		fmt.Fprintf(&b, "Flight: %s.\n", st.SelectedFlight.Name)
	}
	switch day {
	case 1:
		b.WriteString("This is the arrival day: include check-in and evening activities.\n")
	case days:
		b.WriteString("This is the departure day: include check-out and the return journey.\n")
	}
	b.WriteString("List morning, afternoon and evening activities with meal suggestions, one per line.")
	return b.String()
}

// splitActivities turns generated text into the ordered activity list.
func splitActivities(text string) []string {
	var activities []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(line, "-*• \t"))
		if line != "" {
			activities = append(activities, line)
		}
	}
	if len(activities) == 0 {
		activities = []string{"Free day"}
	}
	return activities
}

package planner

import (
	"context"
	"fmt"
	"strings"

	"github.com/avelar-dev/itinero/pkg/domain"
	"github.com/avelar-dev/itinero/pkg/ports"
)

// generateExtras produces the optional activity suggestions, packing list and
// food-and-culture notes after a successful synthesis. Failures are logged and
// skipped; extras never fail the run.
func (e *Engine) generateExtras(ctx context.Context, st *domain.TripState) {
	genCtx := ports.GenerationContext{
		Destination:   st.Destination,
		DurationDays:  st.Dates.Days(),
		Travelers:     st.Travelers,
		HolidayType:   st.HolidayType,
		WeatherStatus: st.WeatherStatus,
	}

	if st.ActivitySuggestions == "" {
		text, err := e.synth.generate(ctx, st, activityPrompt(st), genCtx, e.clock)
		if err != nil {
			e.logger.Warn("activity suggestions skipped", "error", err)
		} else {
			st.ActivitySuggestions = text
		}
	}

	if st.PackingList == "" {
		text, err := e.synth.generate(ctx, st, packingPrompt(st), genCtx, e.clock)
		if err != nil {
			e.logger.Warn("packing list skipped", "error", err)
		} else {
			st.PackingList = text
		}
	}

	if st.FoodCulture == "" {
		text, err := e.synth.generate(ctx, st, foodPrompt(st), genCtx, e.clock)
		if err != nil {
			e.logger.Warn("food and culture notes skipped", "error", err)
		} else {
			st.FoodCulture = text
		}
	}
}

func activityPrompt(st *domain.TripState) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Suggest local activities for a %d day trip to %s", st.Dates.Days(), st.Destination)
	if st.HolidayType != "" {
		fmt.Fprintf(&b, " (%s holiday)", st.HolidayType)
	}
	b.WriteString(". Focus on experiences beyond typical tourist spots, with rough cost and best time of day.")
	return b.String()
}

func foodPrompt(st *domain.TripState) string {
	return fmt.Sprintf(
		"Describe the local cuisine and food culture of %s: signature dishes, where locals eat, markets worth visiting and dining etiquette worth knowing.",
		st.Destination)
}

func packingPrompt(st *domain.TripState) string {
	return fmt.Sprintf(
		"Create a packing list for %d day(s) in %s. Weather outlook: %s. Organize by category: clothing, toiletries, electronics, documents, health.",
		st.Dates.Days(), st.Destination, st.WeatherStatus)
}

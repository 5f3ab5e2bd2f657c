package tui

import (
	"fmt"
	"strings"

	"github.com/avelar-dev/itinero/pkg/domain"
)

// Markdown renders a trip state as a markdown document for terminal display.
func Markdown(st *domain.TripState) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Trip to %s\n\n", st.Destination)
	fmt.Fprintf(&b, "**%s → %s** · %s to %s · %d traveler(s) · %s tier\n\n",
		st.DepartureCity, st.Destination,
		st.Dates.Start.Format("Mon 2 Jan 2006"), st.Dates.End.Format("Mon 2 Jan 2006"),
		st.Travelers, st.BudgetTier)

	fmt.Fprintf(&b, "Weather: **%s** (score %d, rain %.0f%%)",
		st.WeatherStatus, st.WeatherScore, st.WeatherRainProb)
	if st.WeatherRiskAccepted {
		b.WriteString(" — risk accepted")
	}
	b.WriteString("\n\n")

	if st.Status == domain.StatusAwaitingAlternate {
		b.WriteString("## Weather looks poor — alternates\n\n")
		b.WriteString("| Destination | Weather score | Distance |\n|---|---|---|\n")
		for _, alt := range st.Alternates {
			dist := "-"
			if alt.DistanceKm > 0 {
				dist = fmt.Sprintf("%.0f km", alt.DistanceKm)
			}
			fmt.Fprintf(&b, "| %s | %d | %s |\n", alt.Name, alt.WeatherScore, dist)
		}
		b.WriteString("\nPick one with `itinero alternate`, or keep the original destination.\n")
		return b.String()
	}

	if st.SelectedHotel != nil {
		fmt.Fprintf(&b, "**Hotel:** %s — ₹%d/night (rating %.1f)\n\n",
			st.SelectedHotel.Name, st.SelectedHotel.Price, st.SelectedHotel.Rating)
	}
	if st.SelectedFlight != nil {
		fmt.Fprintf(&b, "**Flight:** %s — ₹%d round trip\n\n",
			st.SelectedFlight.Name, st.SelectedFlight.Price)
	}
	if st.TotalCost > 0 {
		fmt.Fprintf(&b, "**Estimated total:** ₹%d (%s tier", st.TotalCost, st.EffectiveTier)
		if st.EffectiveTier != st.BudgetTier {
			fmt.Fprintf(&b, ", escalated from %s", st.BudgetTier)
		}
		b.WriteString(")\n\n")
	}

	if len(st.Itinerary) > 0 {
		b.WriteString("## Day-wise itinerary\n\n")
		for _, day := range st.Itinerary {
			fmt.Fprintf(&b, "### Day %d — %s\n\n", day.Day, day.Date.Format("Monday, 2 January"))
			for _, act := range day.Activities {
				fmt.Fprintf(&b, "- %s\n", act)
			}
			b.WriteString("\n")
		}
	}

	if st.ActivitySuggestions != "" {
		b.WriteString("## Suggested activities\n\n")
		b.WriteString(st.ActivitySuggestions)
		b.WriteString("\n\n")
	}
	if st.PackingList != "" {
		b.WriteString("## Packing list\n\n")
		for _, item := range strings.Split(st.PackingList, "\n") {
			if item = strings.TrimSpace(item); item != "" {
				fmt.Fprintf(&b, "- %s\n", item)
			}
		}
		b.WriteString("\n")
	}
	if st.FoodCulture != "" {
		b.WriteString("## Food and culture\n\n")
		b.WriteString(st.FoodCulture)
		b.WriteString("\n\n")
	}

	fmt.Fprintf(&b, "_Session %s · status: %s_\n", st.ID, st.Status)
	return b.String()
}

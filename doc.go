/*
Package itinero is a deterministic trip-planning workflow engine. It drives a
planning session through a fixed pipeline: weather evaluation, hotel and
flight search, budget filtering, ranking, and itinerary synthesis, with
typed replanning over the result.

The engine separates the workflow (steps and transitions) from the session
state (a single TripState) and from side-effects (weather, search and
text-generation collaborators behind ports). This hexagonal layout lets the
same core serve a CLI, an HTTP API, or an MCP server.

# Usage

	package main

	import (
		"context"
		"log"
		"time"

		"github.com/avelar-dev/itinero"
		"github.com/avelar-dev/itinero/pkg/domain"
	)

	func main() {
		p, err := itinero.New()
		if err != nil {
			log.Fatal(err)
		}

		st, err := p.Plan(context.Background(), itinero.TripRequest{
			Destination:   "Goa",
			DepartureCity: "Mumbai",
			Dates: domain.DateRange{
				Start: time.Date(2026, 12, 20, 0, 0, 0, 0, time.UTC),
				End:   time.Date(2026, 12, 24, 0, 0, 0, 0, time.UTC),
			},
			Travelers:  2,
			BudgetTier: domain.TierBudget,
		})
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("status=%s hotel=%s", st.Status, st.SelectedHotel.Name)
	}

Without options the planner runs fully offline against deterministic demo
collaborators. Production deployments swap them via options, and move
sessions to Redis with WithStore and WithLocker.
*/
package itinero

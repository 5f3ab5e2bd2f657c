/*
Package planner implements the trip-planning workflow core: an explicit
finite state machine over domain.TripState.

The pipeline is a fixed directed graph of steps: evaluate weather, branch to
alternates when it is poor, search hotels and flights, filter by budget tier,
rank, synthesize a day-wise itinerary. A replan controller re-enters the
graph at the step implied by a directive without re-running unaffected steps.

Every step handler mutates a clone of the state and the engine commits the
clone only on success, so a failing collaborator never leaves a session
half-updated. External collaborators are consumed exclusively through the
interfaces in pkg/ports.
*/
package planner

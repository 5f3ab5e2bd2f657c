package planner

import "github.com/avelar-dev/itinero/pkg/domain"

// Next is the pure transition function of the workflow graph. Given the step
// that just completed and the resulting state, it returns the step to run
// next. Handlers that redirect the flow (alternate choice, replanning) set
// CurrentStep themselves; Next covers the default edges.
func Next(step domain.Step, st *domain.TripState) domain.Step {
	switch step {
	case domain.StepWeatherEvaluate:
		if st.WeatherStatus == domain.WeatherPoor && !st.WeatherRiskAccepted {
			return domain.StepSuggestAlternates
		}
		return domain.StepSearch
	case domain.StepSuggestAlternates:
		// Reached only when the alternate step resolved without pausing:
		// either the risk was accepted or an alternate redirected the flow.
		return domain.StepSearch
	case domain.StepSearch:
		return domain.StepBudgetFilter
	case domain.StepBudgetFilter:
		return domain.StepRank
	case domain.StepRank:
		return domain.StepItinerary
	case domain.StepItinerary:
		return domain.StepDone
	default:
		return domain.StepDone
	}
}

// ResumeStep maps a replan directive to the step the pipeline re-enters.
func ResumeStep(kind domain.DirectiveKind) (domain.Step, bool) {
	switch kind {
	case domain.DirectiveChangeHotel:
		return domain.StepRank, true
	case domain.DirectiveChangeDates, domain.DirectiveChangeDestination:
		return domain.StepWeatherEvaluate, true
	default:
		return domain.StepDone, false
	}
}

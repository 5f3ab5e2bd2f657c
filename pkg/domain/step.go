package domain

// Step identifies a node in the planning pipeline.
type Step string

const (
	StepWeatherEvaluate   Step = "weather_evaluate"
	StepSuggestAlternates Step = "suggest_alternates"
	StepSearch            Step = "search"
	StepBudgetFilter      Step = "budget_filter"
	StepRank              Step = "rank"
	StepItinerary         Step = "itinerary"
	StepDone              Step = "done"
)

// SessionStatus defines the current mode of a planning session.
type SessionStatus string

const (
	// StatusInProgress means the pipeline is still being driven forward.
	StatusInProgress SessionStatus = "in_progress"
	// StatusAwaitingAlternate means the session is paused on an
	// alternate-destination choice.
	StatusAwaitingAlternate SessionStatus = "awaiting_alternate"
	// StatusCompleted means an itinerary has been synthesized and the
	// session accepts replan directives.
	StatusCompleted SessionStatus = "completed"
	// StatusAccepted is the terminal state after an Accept directive.
	StatusAccepted SessionStatus = "accepted"
	// StatusFailed means the pipeline stopped on a terminal error.
	StatusFailed SessionStatus = "failed"
)

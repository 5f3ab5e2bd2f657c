package domain

import "time"

// HistoryKind categorizes entries in the session audit log.
type HistoryKind string

const (
	// HistoryReplan records an applied replan directive.
	HistoryReplan HistoryKind = "replan"
	// HistoryTierEscalation records one budget-tier hop during filtering.
	HistoryTierEscalation HistoryKind = "tier_escalation"
	// HistoryWeatherDegraded records a weather provider failure that was
	// recovered with the neutral score.
	HistoryWeatherDegraded HistoryKind = "weather_degraded"
	// HistorySearchDegraded records a hotel or flight lookup that failed or
	// timed out and yielded an empty candidate set.
	HistorySearchDegraded HistoryKind = "search_degraded"
	// HistoryAlternateAccepted records the choice of an alternate destination.
	HistoryAlternateAccepted HistoryKind = "alternate_accepted"
	// HistoryWeatherRiskAccepted records continuing with the original
	// destination despite a Poor classification.
	HistoryWeatherRiskAccepted HistoryKind = "weather_risk_accepted"
)

// HistoryEntry is one record in the append-only session log.
type HistoryEntry struct {
	Time      time.Time     `json:"time"`
	Kind      HistoryKind   `json:"kind"`
	Detail    string        `json:"detail,omitempty"`
	Directive DirectiveKind `json:"directive,omitempty"`

	// FromTier/ToTier are set for tier escalations.
	FromTier BudgetTier `json:"from_tier,omitempty"`
	ToTier   BudgetTier `json:"to_tier,omitempty"`
}

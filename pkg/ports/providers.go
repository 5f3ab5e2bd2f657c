package ports

import (
	"context"

	"github.com/avelar-dev/itinero/pkg/domain"
)

// Forecast is the weather collaborator's answer for one destination and date
// range, aggregated over the trip days.
type Forecast struct {
	// RainProbability is the chance of precipitation in percent [0,100].
	RainProbability float64

	// TemperatureC is the expected daytime temperature in Celsius.
	TemperatureC float64

	// ConditionCode is a lowercase condition keyword (e.g. "clear", "rain",
	// "thunderstorm"). Raw provider payloads may carry extra fields in
	// Attributes; the evaluator only reads the three typed ones.
	ConditionCode string

	// Attributes carries the raw provider payload for diagnostics.
	Attributes map[string]any
}

// WeatherProvider is the external weather collaborator.
type WeatherProvider interface {
	Forecast(ctx context.Context, destination string, dates domain.DateRange) (Forecast, error)
}

// SearchProvider is the external hotel/flight search collaborator. Either
// call may return an empty slice; that is not an error.
type SearchProvider interface {
	SearchHotels(ctx context.Context, destination string, dates domain.DateRange, travelers int) ([]domain.Candidate, error)
	SearchFlights(ctx context.Context, origin, destination string, dates domain.DateRange, travelers int) ([]domain.Candidate, error)
}

// GenerationContext is the structured context passed alongside every text
// generation prompt.
type GenerationContext struct {
	Destination   string               `json:"destination"`
	Day           int                  `json:"day,omitempty"`
	Date          string               `json:"date,omitempty"`
	DurationDays  int                  `json:"duration_days"`
	Travelers     int                  `json:"travelers"`
	HolidayType   string               `json:"holiday_type,omitempty"`
	WeatherStatus domain.WeatherStatus `json:"weather_status,omitempty"`
}

// TextGenerator is the external text-generation collaborator (typically an
// LLM). The core never interprets the returned text.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, genCtx GenerationContext) (string, error)
}

// AlternateCandidate is a raw suggestion before weather scoring.
type AlternateCandidate struct {
	Name       string
	DistanceKm float64
}

// AlternateSuggester proposes destinations similar to the original when its
// weather classifies as Poor. Suggestions are scored and ranked by the core.
type AlternateSuggester interface {
	Suggest(ctx context.Context, destination, holidayType string, max int) ([]AlternateCandidate, error)
}

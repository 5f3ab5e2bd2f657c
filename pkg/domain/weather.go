package domain

// WeatherStatus classifies a numeric weather score.
type WeatherStatus string

const (
	WeatherFavorable WeatherStatus = "favorable"
	WeatherMarginal  WeatherStatus = "marginal"
	WeatherPoor      WeatherStatus = "poor"
	// WeatherUnknown is the zero value before any evaluation ran.
	WeatherUnknown WeatherStatus = ""
)

// ClassifyWeather derives the status from a score in [0,100]. It is a pure
// step function of the score against the two thresholds: a score at or above
// favorableThreshold is Favorable; below it, a rain probability at or above
// rainThreshold makes it Poor; everything else is Marginal.
func ClassifyWeather(score int, rainProbability float64, favorableThreshold int, rainThreshold float64) WeatherStatus {
	if score >= favorableThreshold {
		return WeatherFavorable
	}
	if rainProbability >= rainThreshold {
		return WeatherPoor
	}
	return WeatherMarginal
}

// AlternateDestination is a weather-scored suggestion offered when the
// original destination classifies as Poor.
type AlternateDestination struct {
	Name         string  `json:"name"`
	WeatherScore int     `json:"weather_score"`
	DistanceKm   float64 `json:"distance_km,omitempty"`
}

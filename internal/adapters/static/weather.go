// Package static provides deterministic offline collaborators. They back the
// demo CLI and make the full planning flow runnable without API keys.
package static

import (
	"context"
	"strings"
	"time"

	"github.com/avelar-dev/itinero/pkg/domain"
	"github.com/avelar-dev/itinero/pkg/ports"
)

// climateProfile is a coarse seasonal model for one destination.
type climateProfile struct {
	monsoonStart time.Month
	monsoonEnd   time.Month
	summerTempC  float64
	winterTempC  float64
	condition    string // dominant non-monsoon condition
}

// Indian destinations the demo knows about. Monsoon windows follow the
// southwest monsoon except for Chennai and Pondicherry, which get the
// northeast monsoon.
var climates = map[string]climateProfile{
	"goa":         {time.June, time.September, 30, 27, "clear"},
	"gokarna":     {time.June, time.September, 31, 27, "clear"},
	"mumbai":      {time.June, time.September, 32, 28, "haze"},
	"pondicherry": {time.October, time.December, 33, 27, "clear"},
	"chennai":     {time.October, time.December, 35, 28, "haze"},
	"jaipur":      {time.July, time.September, 38, 20, "clear"},
	"udaipur":     {time.July, time.September, 36, 19, "clear"},
	"delhi":       {time.July, time.September, 39, 15, "haze"},
	"manali":      {time.July, time.September, 24, 4, "clear"},
	"shimla":      {time.July, time.September, 23, 6, "clear"},
	"leh":         {time.August, time.August, 20, -5, "clear"},
	"munnar":      {time.June, time.September, 24, 18, "clouds"},
	"coorg":       {time.June, time.September, 25, 18, "clouds"},
	"bangalore":   {time.June, time.September, 28, 21, "clouds"},
	"kochi":       {time.June, time.September, 31, 28, "clouds"},
	"darjeeling":  {time.June, time.September, 20, 8, "clouds"},
	"rishikesh":   {time.July, time.September, 33, 16, "clear"},
	"andaman":     {time.May, time.September, 31, 28, "clear"},
	"port blair":  {time.May, time.September, 31, 28, "clear"},
}

// Weather is a ports.WeatherProvider backed by the seasonal table. Forecasts
// are a pure function of destination and start month.
type Weather struct{}

// NewWeather returns the offline weather provider.
func NewWeather() *Weather {
	return &Weather{}
}

// Forecast derives a forecast from the destination's climate profile. Unknown
// destinations get a mild, slightly cloudy default.
func (w *Weather) Forecast(ctx context.Context, destination string, dates domain.DateRange) (ports.Forecast, error) {
	if err := ctx.Err(); err != nil {
		return ports.Forecast{}, err
	}

	month := dates.Start.Month()
	profile, ok := climates[strings.ToLower(strings.TrimSpace(destination))]
	if !ok {
		return ports.Forecast{
			RainProbability: 35,
			TemperatureC:    26,
			ConditionCode:   "clouds",
			Attributes:      map[string]any{"source": "static", "profile": "default"},
		}, nil
	}

	f := ports.Forecast{
		TemperatureC:  profile.winterTempC,
		ConditionCode: profile.condition,
		Attributes: map[string]any{
			"source": "static",
			"month":  month.String(),
		},
	}
	if month >= time.April && month <= time.September {
		f.TemperatureC = profile.summerTempC
	}

	if month >= profile.monsoonStart && month <= profile.monsoonEnd {
		f.RainProbability = 82
		f.ConditionCode = "rain"
		// Coastal monsoons bring storms, not just steady rain.
		if profile.summerTempC >= 30 {
			f.ConditionCode = "thunderstorm"
		}
	} else {
		f.RainProbability = 18
	}
	return f, nil
}

package planner

import (
	"context"
	"log/slog"
	"math"

	"github.com/avelar-dev/itinero/pkg/config"
	"github.com/avelar-dev/itinero/pkg/domain"
	"github.com/avelar-dev/itinero/pkg/ports"
)

// Fixed component weights of the weather score. They sum to 1.
const (
	weightRain      = 0.40
	weightTemp      = 0.35
	weightCondition = 0.25
)

// neutralScore is stored when the weather collaborator fails, mapping to
// Marginal so the pipeline proceeds instead of blocking.
const neutralScore = 50

// adverseConditions are condition codes treated as adverse regardless of
// temperature or rain probability.
var adverseConditions = map[string]bool{
	"thunderstorm": true,
	"snow":         true,
	"extreme":      true,
	"squall":       true,
	"tornado":      true,
}

// weatherEvaluator scores and classifies destination weather.
type weatherEvaluator struct {
	cfg      *config.Config
	provider ports.WeatherProvider
	logger   *slog.Logger
}

// Evaluate fetches the forecast and derives score and status on st. Provider
// failures never fail the workflow: the neutral score is stored and a
// degradation entry is appended to history.
func (w *weatherEvaluator) Evaluate(ctx context.Context, st *domain.TripState, clock clockFunc) error {
	callCtx, cancel := context.WithTimeout(ctx, w.cfg.Weather.Timeout.Duration)
	defer cancel()

	forecast, err := w.provider.Forecast(callCtx, st.Destination, st.Dates)
	st.WeatherEvaluations++
	if err != nil {
		if ctx.Err() != nil {
			// The run itself was canceled; don't mask that as degradation.
			return ctx.Err()
		}
		w.logger.Warn("weather lookup failed, using neutral score",
			"destination", st.Destination, "error", err)
		st.WeatherScore = neutralScore
		st.WeatherRainProb = 0
		st.WeatherDegraded = true
		st.WeatherStatus = domain.ClassifyWeather(neutralScore, 0,
			w.cfg.Weather.FavorableThreshold, w.cfg.Weather.RainThreshold)
		st.AppendHistory(domain.HistoryEntry{
			Time:   clock(),
			Kind:   domain.HistoryWeatherDegraded,
			Detail: err.Error(),
		})
		return nil
	}

	st.WeatherScore = w.score(forecast)
	st.WeatherRainProb = forecast.RainProbability
	st.WeatherDegraded = false
	st.WeatherStatus = domain.ClassifyWeather(st.WeatherScore, forecast.RainProbability,
		w.cfg.Weather.FavorableThreshold, w.cfg.Weather.RainThreshold)

	w.logger.Debug("weather evaluated",
		"destination", st.Destination,
		"score", st.WeatherScore,
		"status", st.WeatherStatus)
	return nil
}

// score combines rain probability, temperature deviation from the comfort
// band, and adverse-condition indicators into a single [0,100] value. Each
// component is normalized to [0,100] before weighting.
func (w *weatherEvaluator) score(f ports.Forecast) int {
	rain := clampScore(100 - f.RainProbability)

	var temp float64
	switch {
	case f.TemperatureC < w.cfg.Weather.ComfortTempMinC:
		temp = clampScore(100 - (w.cfg.Weather.ComfortTempMinC-f.TemperatureC)*2.0)
	case f.TemperatureC > w.cfg.Weather.ComfortTempMaxC:
		temp = clampScore(100 - (f.TemperatureC-w.cfg.Weather.ComfortTempMaxC)*1.5)
	default:
		temp = 100
	}

	condition := 100.0
	if adverseConditions[f.ConditionCode] {
		condition = 0
	}

	total := weightRain*rain + weightTemp*temp + weightCondition*condition
	return int(math.Round(clampScore(total)))
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

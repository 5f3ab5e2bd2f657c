// Package config holds the immutable tuning surface of the planner: budget
// tier price tables, weather thresholds, alternate limits, and collaborator
// retry/timeout policies. A Config is built once at construction time and
// shared read-only by every component.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/avelar-dev/itinero/pkg/domain"
)

// Duration wraps time.Duration so YAML files can use "15s" notation.
type Duration struct {
	time.Duration
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	d.Duration = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return d.Duration.String(), nil
}

// Range is an inclusive price bracket.
type Range struct {
	Low  int `yaml:"low"`
	High int `yaml:"high"`
}

// Contains reports whether price falls inside the bracket, bounds inclusive.
func (r Range) Contains(price int) bool {
	return price >= r.Low && price <= r.High
}

// Midpoint returns the center of the bracket.
func (r Range) Midpoint() float64 {
	return float64(r.Low+r.High) / 2
}

// HalfWidth returns half the bracket span, floored at 1 to keep the ranker's
// price-fit division defined for degenerate brackets.
func (r Range) HalfWidth() float64 {
	half := float64(r.High-r.Low) / 2
	if half < 1 {
		return 1
	}
	return half
}

// TierPricing is the per-tier price table. Hotel brackets are per night,
// flight brackets are round-trip totals.
type TierPricing struct {
	Hotel  Range `yaml:"hotel"`
	Flight Range `yaml:"flight"`
}

// WeatherConfig tunes evaluation and classification.
type WeatherConfig struct {
	// FavorableThreshold is the score at or above which weather is Favorable.
	FavorableThreshold int `yaml:"favorable_threshold"`
	// RainThreshold is the rain probability (percent) at or above which a
	// sub-threshold score classifies as Poor.
	RainThreshold float64 `yaml:"rain_threshold"`
	// ComfortTempMinC/MaxC bound the comfortable temperature band.
	ComfortTempMinC float64 `yaml:"comfort_temp_min_c"`
	ComfortTempMaxC float64 `yaml:"comfort_temp_max_c"`
	// Timeout bounds a single forecast call.
	Timeout Duration `yaml:"timeout"`
}

// SearchConfig tunes the hotel/flight lookups.
type SearchConfig struct {
	// Timeout bounds each lookup stream independently; on expiry that
	// stream's candidate set becomes empty.
	Timeout Duration `yaml:"timeout"`
}

// TextGenConfig tunes the text-generation collaborator.
type TextGenConfig struct {
	MaxAttempts int      `yaml:"max_attempts"`
	RetryDelay  Duration `yaml:"retry_delay"`
	Timeout     Duration `yaml:"timeout"`
}

// Config is the full immutable configuration value.
type Config struct {
	Tiers map[domain.BudgetTier]TierPricing `yaml:"tiers"`

	Weather WeatherConfig `yaml:"weather"`

	// MaxAlternates caps the alternate-destination list.
	MaxAlternates int `yaml:"max_alternates"`
	// MaxWeatherReevaluations caps re-entries into weather evaluation per
	// session, guaranteeing termination of the alternate loop.
	MaxWeatherReevaluations int `yaml:"max_weather_reevaluations"`

	Search  SearchConfig  `yaml:"search"`
	TextGen TextGenConfig `yaml:"textgen"`

	// HolidayActivities maps a holiday type to representative activities,
	// used as generation context and by the offline demo generator.
	HolidayActivities map[string][]string `yaml:"holiday_activities"`
}

// Default returns the stock configuration. Price tables mirror typical INR
// brackets: hotel per night, flight round trip.
func Default() *Config {
	return &Config{
		Tiers: map[domain.BudgetTier]TierPricing{
			domain.TierBackpacker: {Hotel: Range{500, 1500}, Flight: Range{3000, 8000}},
			domain.TierBudget:     {Hotel: Range{1500, 4000}, Flight: Range{8000, 15000}},
			domain.TierMidRange:   {Hotel: Range{4000, 10000}, Flight: Range{15000, 35000}},
			domain.TierLuxury:     {Hotel: Range{10000, 50000}, Flight: Range{35000, 150000}},
		},
		Weather: WeatherConfig{
			FavorableThreshold: 65,
			RainThreshold:      60,
			ComfortTempMinC:    15,
			ComfortTempMaxC:    35,
			Timeout:            Duration{10 * time.Second},
		},
		MaxAlternates:           3,
		MaxWeatherReevaluations: 2,
		Search:                  SearchConfig{Timeout: Duration{15 * time.Second}},
		TextGen: TextGenConfig{
			MaxAttempts: 2,
			RetryDelay:  Duration{2 * time.Second},
			Timeout:     Duration{30 * time.Second},
		},
		HolidayActivities: map[string][]string{
			"Beach":     {"swimming", "sunbathing", "water sports"},
			"Adventure": {"hiking", "trekking", "climbing"},
			"CityBreak": {"sightseeing", "museums", "shopping"},
			"Skiing":    {"skiing", "snowboarding"},
			"Party":     {"nightlife", "clubs", "bars"},
			"Family":    {"theme parks", "family attractions"},
			"Romantic":  {"fine dining", "scenic views"},
			"Any":       {"general tourism"},
		},
	}
}

// Load reads a YAML file over the defaults. Fields absent from the file keep
// their default values.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks internal consistency.
func (c *Config) Validate() error {
	for _, tier := range []domain.BudgetTier{domain.TierBackpacker, domain.TierBudget, domain.TierMidRange, domain.TierLuxury} {
		pricing, ok := c.Tiers[tier]
		if !ok {
			return fmt.Errorf("missing price table for tier %s", tier)
		}
		for _, r := range []Range{pricing.Hotel, pricing.Flight} {
			if r.Low < 0 || r.High < r.Low {
				return fmt.Errorf("tier %s has invalid range [%d,%d]", tier, r.Low, r.High)
			}
		}
	}
	if c.Weather.FavorableThreshold < 0 || c.Weather.FavorableThreshold > 100 {
		return fmt.Errorf("favorable_threshold %d outside [0,100]", c.Weather.FavorableThreshold)
	}
	if c.Weather.RainThreshold < 0 || c.Weather.RainThreshold > 100 {
		return fmt.Errorf("rain_threshold %.1f outside [0,100]", c.Weather.RainThreshold)
	}
	if c.Weather.ComfortTempMaxC < c.Weather.ComfortTempMinC {
		return fmt.Errorf("comfort temperature band inverted")
	}
	if c.MaxAlternates < 0 {
		return fmt.Errorf("max_alternates must be non-negative")
	}
	if c.MaxWeatherReevaluations < 0 {
		return fmt.Errorf("max_weather_reevaluations must be non-negative")
	}
	if c.TextGen.MaxAttempts < 1 {
		return fmt.Errorf("textgen max_attempts must be at least 1")
	}
	return nil
}

// TierFor returns the price table for a tier. It panics on unknown tiers;
// Validate guarantees all four are present.
func (c *Config) TierFor(tier domain.BudgetTier) TierPricing {
	pricing, ok := c.Tiers[tier]
	if !ok {
		panic(fmt.Sprintf("config: no price table for tier %s", tier))
	}
	return pricing
}

package static

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/avelar-dev/itinero/pkg/config"
	"github.com/avelar-dev/itinero/pkg/domain"
	"github.com/avelar-dev/itinero/pkg/ports"
)

func datesIn(month time.Month) domain.DateRange {
	return domain.DateRange{
		Start: time.Date(2026, month, 10, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, month, 13, 0, 0, 0, 0, time.UTC),
	}
}

func TestWeatherMonsoonVsDry(t *testing.T) {
	w := NewWeather()
	ctx := context.Background()

	monsoon, err := w.Forecast(ctx, "Goa", datesIn(time.July))
	if err != nil {
		t.Fatalf("forecast: %v", err)
	}
	if monsoon.RainProbability < 60 {
		t.Errorf("expected high rain probability in Goa monsoon, got %.0f", monsoon.RainProbability)
	}

	dry, err := w.Forecast(ctx, "Goa", datesIn(time.December))
	if err != nil {
		t.Fatalf("forecast: %v", err)
	}
	if dry.RainProbability >= 60 {
		t.Errorf("expected low rain probability in Goa winter, got %.0f", dry.RainProbability)
	}
	if dry.ConditionCode != "clear" {
		t.Errorf("expected clear winter condition, got %q", dry.ConditionCode)
	}
}

func TestWeatherDeterministic(t *testing.T) {
	w := NewWeather()
	ctx := context.Background()

	a, _ := w.Forecast(ctx, "Manali", datesIn(time.March))
	b, _ := w.Forecast(ctx, "Manali", datesIn(time.March))
	if a.RainProbability != b.RainProbability || a.TemperatureC != b.TemperatureC {
		t.Error("forecast should be deterministic for the same inputs")
	}
}

func TestSearchCoversAllTiers(t *testing.T) {
	s := NewSearch()
	cfg := config.Default()
	hotels, err := s.SearchHotels(context.Background(), "Goa", datesIn(time.December), 2)
	if err != nil {
		t.Fatalf("search hotels: %v", err)
	}

	for tier, pricing := range cfg.Tiers {
		found := false
		for _, h := range hotels {
			if pricing.Hotel.Contains(h.Price) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("no hotel in %s band %v", tier, pricing.Hotel)
		}
	}
}

func TestSearchFlightsScaleWithTravelers(t *testing.T) {
	s := NewSearch()
	ctx := context.Background()

	solo, err := s.SearchFlights(ctx, "Mumbai", "Goa", datesIn(time.December), 1)
	if err != nil {
		t.Fatalf("search flights: %v", err)
	}
	pair, err := s.SearchFlights(ctx, "Mumbai", "Goa", datesIn(time.December), 2)
	if err != nil {
		t.Fatalf("search flights: %v", err)
	}
	if pair[0].Price != solo[0].Price*2 {
		t.Errorf("expected party price to scale, solo=%d pair=%d", solo[0].Price, pair[0].Price)
	}
}

func TestTextGeneratorDayPlan(t *testing.T) {
	g := NewTextGenerator(config.Default())

	text, err := g.Generate(context.Background(), "plan the day", ports.GenerationContext{
		Destination:  "Goa",
		Day:          1,
		DurationDays: 3,
		Travelers:    2,
		HolidayType:  "Beach",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	lines := strings.Split(text, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 dayparts, got %d: %q", len(lines), text)
	}
	if !strings.Contains(lines[0], "arrive") {
		t.Errorf("day 1 should be the arrival day, got %q", lines[0])
	}
}

func TestTextGeneratorPackingList(t *testing.T) {
	g := NewTextGenerator(config.Default())

	text, err := g.Generate(context.Background(), "Create a packing list for 3 day(s) in Goa", ports.GenerationContext{
		Destination:   "Goa",
		DurationDays:  3,
		Travelers:     2,
		WeatherStatus: domain.WeatherMarginal,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(text, "rain jacket") {
		t.Errorf("marginal weather packing list should include rain gear, got %q", text)
	}
}

func TestTextGeneratorFoodCulture(t *testing.T) {
	g := NewTextGenerator(config.Default())

	text, err := g.Generate(context.Background(), "Describe the local cuisine and food culture of Goa", ports.GenerationContext{
		Destination:  "Goa",
		DurationDays: 3,
		Travelers:    2,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(text, "Goa") {
		t.Errorf("food notes should mention the destination, got %q", text)
	}
	if !strings.Contains(text, "signature dishes") {
		t.Errorf("food notes should cover the local dishes, got %q", text)
	}
}

func TestAlternatesCapAndExclusion(t *testing.T) {
	a := NewAlternates()

	got, err := a.Suggest(context.Background(), "Goa", "Beach", 2)
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(got))
	}
	for _, c := range got {
		if strings.EqualFold(c.Name, "Goa") {
			t.Error("suggestions must not include the original destination")
		}
	}
}

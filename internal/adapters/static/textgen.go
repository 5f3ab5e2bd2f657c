package static

import (
	"context"
	"fmt"
	"strings"

	"github.com/avelar-dev/itinero/pkg/config"
	"github.com/avelar-dev/itinero/pkg/domain"
	"github.com/avelar-dev/itinero/pkg/ports"
)

// TextGenerator is a ports.TextGenerator that assembles day plans from the
// configured holiday activity tables instead of calling an LLM.
type TextGenerator struct {
	activities map[string][]string
}

// NewTextGenerator returns the offline generator. Activity tables come from
// the configuration so custom holiday types flow through.
func NewTextGenerator(cfg *config.Config) *TextGenerator {
	return &TextGenerator{activities: cfg.HolidayActivities}
}

// Generate produces one line per daypart. The prompt is ignored; only the
// structured context drives the output.
func (g *TextGenerator) Generate(ctx context.Context, prompt string, genCtx ports.GenerationContext) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	// Packing and activity-suggestion prompts have no day number.
	if genCtx.Day == 0 {
		return g.generateExtra(prompt, genCtx), nil
	}

	acts := g.lookup(genCtx.HolidayType)
	pick := func(i int) string {
		return acts[(genCtx.Day+i)%len(acts)]
	}

	var b strings.Builder
	switch {
	case genCtx.Day == 1:
		fmt.Fprintf(&b, "Morning: arrive in %s, check in and settle down\n", genCtx.Destination)
	case genCtx.WeatherStatus == domain.WeatherPoor:
		fmt.Fprintf(&b, "Morning: indoor start, local cafe breakfast in %s\n", genCtx.Destination)
	default:
		fmt.Fprintf(&b, "Morning: %s followed by a local breakfast\n", pick(0))
	}

	fmt.Fprintf(&b, "Afternoon: %s, lunch at a nearby restaurant\n", pick(1))

	if genCtx.Day == genCtx.DurationDays {
		fmt.Fprintf(&b, "Evening: check out, souvenir stop and return journey from %s", genCtx.Destination)
	} else {
		fmt.Fprintf(&b, "Evening: %s and dinner", pick(2))
	}
	return b.String(), nil
}

func (g *TextGenerator) generateExtra(prompt string, genCtx ports.GenerationContext) string {
	lower := strings.ToLower(prompt)
	if strings.Contains(lower, "cuisine") || strings.Contains(lower, "food") {
		return strings.Join([]string{
			fmt.Sprintf("Sample the signature dishes of %s at a busy local eatery", genCtx.Destination),
			"Visit the morning produce market before the crowds arrive",
			"Ask your hotel staff which street food stalls they trust",
			"Book one dinner at a traditional family-run restaurant",
		}, "\n")
	}
	if strings.Contains(lower, "packing") {
		items := []string{"ID and tickets", "phone charger", "sunscreen", "comfortable shoes"}
		if genCtx.WeatherStatus != domain.WeatherFavorable {
			items = append(items, "rain jacket", "umbrella")
		}
		if strings.EqualFold(genCtx.HolidayType, "Skiing") {
			items = append(items, "thermal wear", "gloves")
		}
		return strings.Join(items, "\n")
	}

	acts := g.lookup(genCtx.HolidayType)
	lines := make([]string, 0, len(acts))
	for _, a := range acts {
		lines = append(lines, fmt.Sprintf("Try %s in %s", a, genCtx.Destination))
	}
	return strings.Join(lines, "\n")
}

func (g *TextGenerator) lookup(holidayType string) []string {
	if acts, ok := g.activities[holidayType]; ok && len(acts) > 0 {
		return acts
	}
	if acts, ok := g.activities["Any"]; ok && len(acts) > 0 {
		return acts
	}
	return []string{"local sightseeing"}
}

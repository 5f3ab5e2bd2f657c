package static

import (
	"context"
	"strings"

	"github.com/avelar-dev/itinero/pkg/ports"
)

// Curated nearby destinations with approximate road distance in km.
var alternateTable = map[string][]ports.AlternateCandidate{
	"goa": {
		{Name: "Gokarna", DistanceKm: 140},
		{Name: "Pondicherry", DistanceKm: 890},
		{Name: "Udaipur", DistanceKm: 820},
		{Name: "Kochi", DistanceKm: 700},
	},
	"manali": {
		{Name: "Shimla", DistanceKm: 250},
		{Name: "Rishikesh", DistanceKm: 430},
		{Name: "Leh", DistanceKm: 475},
		{Name: "Darjeeling", DistanceKm: 1600},
	},
	"jaipur": {
		{Name: "Udaipur", DistanceKm: 395},
		{Name: "Delhi", DistanceKm: 280},
		{Name: "Rishikesh", DistanceKm: 500},
	},
	"munnar": {
		{Name: "Coorg", DistanceKm: 300},
		{Name: "Kochi", DistanceKm: 130},
		{Name: "Pondicherry", DistanceKm: 520},
	},
	"mumbai": {
		{Name: "Goa", DistanceKm: 580},
		{Name: "Udaipur", DistanceKm: 750},
		{Name: "Jaipur", DistanceKm: 1150},
	},
}

// Fallback pool when the destination has no curated entry. Distances are
// unknown, so the ranker orders these by weather and name.
var defaultAlternates = []ports.AlternateCandidate{
	{Name: "Goa"},
	{Name: "Jaipur"},
	{Name: "Munnar"},
	{Name: "Shimla"},
}

// Alternates is a ports.AlternateSuggester backed by the curated table.
type Alternates struct{}

// NewAlternates returns the offline suggester.
func NewAlternates() *Alternates {
	return &Alternates{}
}

// Suggest returns up to max candidates near the destination, excluding the
// destination itself.
func (a *Alternates) Suggest(ctx context.Context, destination, holidayType string, max int) ([]ports.AlternateCandidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := strings.ToLower(strings.TrimSpace(destination))
	pool, ok := alternateTable[key]
	if !ok {
		pool = defaultAlternates
	}

	out := make([]ports.AlternateCandidate, 0, max)
	for _, cand := range pool {
		if strings.EqualFold(cand.Name, destination) {
			continue
		}
		out = append(out, cand)
		if len(out) == max {
			break
		}
	}
	return out, nil
}

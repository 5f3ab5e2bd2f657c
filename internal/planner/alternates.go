package planner

import (
	"sort"
	"strings"

	"github.com/avelar-dev/itinero/pkg/domain"
)

// sortAlternates orders suggestions by weather score descending, then by
// ascending distance from the original destination, then lexicographically
// by name when distance is unavailable or equal.
func sortAlternates(alts []domain.AlternateDestination) {
	sort.SliceStable(alts, func(i, j int) bool {
		if alts[i].WeatherScore != alts[j].WeatherScore {
			return alts[i].WeatherScore > alts[j].WeatherScore
		}
		di, dj := alts[i].DistanceKm, alts[j].DistanceKm
		if di > 0 && dj > 0 && di != dj {
			return di < dj
		}
		if (di > 0) != (dj > 0) {
			// A known distance ranks ahead of an unknown one.
			return di > 0
		}
		return strings.Compare(alts[i].Name, alts[j].Name) < 0
	})
}

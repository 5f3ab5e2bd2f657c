package static

import (
	"context"
	"fmt"
	"strings"

	"github.com/avelar-dev/itinero/pkg/domain"
)

var airlines = []string{"IndiGo", "Air India", "SpiceJet", "Vistara", "Akasa Air"}

// Round-trip base fares per person for common domestic routes.
var routeFares = map[string]int{
	"mumbai-goa":          4000,
	"mumbai-delhi":        5000,
	"bangalore-chennai":   3500,
	"delhi-bangalore":     6000,
	"hyderabad-bangalore": 3000,
	"pune-bangalore":      4000,
	"delhi-manali":        7000,
	"delhi-jaipur":        3500,
	"mumbai-udaipur":      5500,
	"chennai-port blair":  9000,
}

// Search is a ports.SearchProvider with generated inventory. Results are
// deterministic per destination so repeated runs of a session see the same
// candidates.
type Search struct{}

// NewSearch returns the offline search provider.
func NewSearch() *Search {
	return &Search{}
}

// SearchHotels generates a spread of hotels across price bands, per night.
func (s *Search) SearchHotels(ctx context.Context, destination string, dates domain.DateRange, travelers int) ([]domain.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	slug := slugify(destination)
	hotels := make([]domain.Candidate, 0, len(hotelBands))
	for i, band := range hotelBands {
		hotels = append(hotels, domain.Candidate{
			ID:     fmt.Sprintf("hotel-%s-%d", slug, i+1),
			Name:   fmt.Sprintf("%s %s", band.prefix, title(destination)),
			Price:  band.nightly,
			Rating: band.rating,
			Attributes: []string{
				"WiFi", "Breakfast",
			},
		})
	}
	return hotels, nil
}

// One or more hotels per budget tier, nightly rates in INR.
var hotelBands = []struct {
	prefix  string
	nightly int
	rating  float64
}{
	{"Backpacker Hostel", 900, 3.8},
	{"Guest House", 1400, 4.0},
	{"Hotel Central", 2200, 4.0},
	{"Comfort Inn", 3500, 4.2},
	{"Boutique Stay", 5500, 4.3},
	{"Heritage Hotel", 8500, 4.5},
	{"Grand Resort", 14000, 4.6},
	{"Palace Retreat", 26000, 4.8},
}

// SearchFlights generates round-trip options priced off the route table.
// Flight prices are the round-trip total for the whole party.
func (s *Search) SearchFlights(ctx context.Context, origin, destination string, dates domain.DateRange, travelers int) ([]domain.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if travelers < 1 {
		travelers = 1
	}

	base := routeFare(origin, destination)
	slug := slugify(origin) + "-" + slugify(destination)
	flights := make([]domain.Candidate, 0, 4)
	for i := 0; i < 4; i++ {
		stops := "non-stop"
		if i > 1 {
			stops = fmt.Sprintf("%d stop", i-1)
		}
		flights = append(flights, domain.Candidate{
			ID:     fmt.Sprintf("flight-%s-%d", slug, i+1),
			Name:   airlines[i%len(airlines)],
			Price:  (base + i*1000) * travelers,
			Rating: 4.2 - float64(i)*0.2,
			Attributes: []string{
				stops,
				fmt.Sprintf("%dh 30m", 2+i),
			},
		})
	}
	return flights, nil
}

func routeFare(origin, destination string) int {
	key := slugify(origin) + "-" + slugify(destination)
	if fare, ok := routeFares[key]; ok {
		return fare
	}
	reverse := slugify(destination) + "-" + slugify(origin)
	if fare, ok := routeFares[reverse]; ok {
		return fare
	}
	return 5000
}

func slugify(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "-")
}

func title(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

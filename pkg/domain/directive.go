package domain

import (
	"fmt"
	"time"
)

// DirectiveKind enumerates the typed replan instructions. Natural-language
// interpretation happens outside the core; by the time a directive reaches
// the engine it is already one of these.
type DirectiveKind string

const (
	DirectiveAccept            DirectiveKind = "accept"
	DirectiveChangeHotel       DirectiveKind = "change_hotel"
	DirectiveChangeDates       DirectiveKind = "change_dates"
	DirectiveChangeDestination DirectiveKind = "change_destination"
)

// Valid reports whether k is a known directive kind.
func (k DirectiveKind) Valid() bool {
	switch k {
	case DirectiveAccept, DirectiveChangeHotel, DirectiveChangeDates, DirectiveChangeDestination:
		return true
	}
	return false
}

// ReplanDirective is a typed instruction that re-enters the workflow at a
// specific step. Parameter fields are only read for the kinds that need them.
type ReplanDirective struct {
	Kind DirectiveKind `json:"kind"`

	// NewDates is required for DirectiveChangeDates.
	NewDates *DateRange `json:"new_dates,omitempty"`

	// NewDestination is required for DirectiveChangeDestination.
	NewDestination string `json:"new_destination,omitempty"`

	// Reason is free-form caller context, recorded in history.
	Reason string `json:"reason,omitempty"`
}

// DateRange is an inclusive span of calendar days.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Days returns the trip length in calendar days, counting both endpoints.
func (r DateRange) Days() int {
	if r.End.Before(r.Start) {
		return 0
	}
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

// Validate checks the range is well formed.
func (r DateRange) Validate() error {
	if r.Start.IsZero() || r.End.IsZero() {
		return fmt.Errorf("date range requires both start and end")
	}
	if r.End.Before(r.Start) {
		return fmt.Errorf("date range end %s precedes start %s",
			r.End.Format("2006-01-02"), r.Start.Format("2006-01-02"))
	}
	return nil
}

// Equal reports whether two ranges cover the same span.
func (r DateRange) Equal(other DateRange) bool {
	return r.Start.Equal(other.Start) && r.End.Equal(other.End)
}

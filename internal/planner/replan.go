package planner

import (
	"context"
	"fmt"

	"github.com/avelar-dev/itinero/pkg/domain"
)

// Replan applies a replan directive and synchronously re-runs the pipeline
// from the step the directive implies, leaving unaffected upstream steps
// untouched. Invalid directives are rejected without mutating st.
//
// Transition table:
//
//	Accept            -> terminal, no state change
//	ChangeHotel       -> exclude current selection, re-run from ranking
//	ChangeDates       -> new date range, re-run from weather evaluation
//	ChangeDestination -> new destination, re-run from weather evaluation
func (e *Engine) Replan(ctx context.Context, st *domain.TripState, directive domain.ReplanDirective) error {
	if st == nil {
		return fmt.Errorf("nil trip state")
	}
	if st.Status == domain.StatusAccepted {
		return domain.ErrSessionClosed
	}
	if !directive.Kind.Valid() {
		return fmt.Errorf("%w: unknown kind %q", domain.ErrInvalidDirective, directive.Kind)
	}

	if directive.Kind == domain.DirectiveAccept {
		st.AppendHistory(e.replanEntry(directive))
		st.Status = domain.StatusAccepted
		return nil
	}

	work := st.Clone()
	if err := e.applyDirective(work, directive); err != nil {
		return err
	}

	resume, ok := ResumeStep(directive.Kind)
	if !ok {
		return fmt.Errorf("%w: kind %q has no resume step", domain.ErrInvalidDirective, directive.Kind)
	}
	work.AppendHistory(e.replanEntry(directive))
	work.Itinerary = nil
	work.LastSynthesis = nil
	work.CurrentStep = resume
	work.Status = domain.StatusInProgress

	*st = *work
	return e.Run(ctx, st)
}

// applyDirective validates the directive against the current state and
// mutates the working copy. Any error here leaves the caller's state intact.
func (e *Engine) applyDirective(work *domain.TripState, directive domain.ReplanDirective) error {
	switch directive.Kind {
	case domain.DirectiveChangeHotel:
		if work.SelectedHotel == nil {
			return fmt.Errorf("%w: change_hotel with no selected hotel", domain.ErrInvalidDirective)
		}
		remaining := domain.RemoveCandidate(work.FilteredHotels, work.SelectedHotel.ID)
		if len(remaining) == 0 {
			return fmt.Errorf("%w: no alternative hotels to choose from", domain.ErrInvalidDirective)
		}
		work.FilteredHotels = remaining
		work.SelectedHotel = nil

	case domain.DirectiveChangeDates:
		if directive.NewDates == nil {
			return fmt.Errorf("%w: change_dates requires a new date range", domain.ErrInvalidDirective)
		}
		if err := directive.NewDates.Validate(); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrInvalidDirective, err)
		}
		work.Dates = *directive.NewDates
		work.Alternates = nil
		work.WeatherRiskAccepted = false
		clearDownstream(work)

	case domain.DirectiveChangeDestination:
		if directive.NewDestination == "" {
			return fmt.Errorf("%w: change_destination requires a destination", domain.ErrInvalidDirective)
		}
		work.Destination = directive.NewDestination
		work.Alternates = nil
		work.WeatherRiskAccepted = false
		clearDownstream(work)

	default:
		return fmt.Errorf("%w: kind %q", domain.ErrInvalidDirective, directive.Kind)
	}
	return nil
}

func (e *Engine) replanEntry(directive domain.ReplanDirective) domain.HistoryEntry {
	return domain.HistoryEntry{
		Time:      e.clock(),
		Kind:      domain.HistoryReplan,
		Directive: directive.Kind,
		Detail:    directive.Reason,
	}
}

package domain

import (
	"context"
	"time"
)

// EventType defines the category of a lifecycle event.
type EventType string

const (
	EventStepEnter     EventType = "step_enter"
	EventStepLeave     EventType = "step_leave"
	EventProviderError EventType = "provider_error"
)

// StepEvent describes entry into or exit from a pipeline step.
type StepEvent struct {
	Type      EventType     `json:"type"`
	Timestamp time.Time     `json:"timestamp"`
	SessionID string        `json:"session_id"`
	Step      Step          `json:"step"`
	Duration  time.Duration `json:"duration,omitempty"`
	Err       error         `json:"-"`
}

// ProviderEvent describes a collaborator failure that was recovered or
// surfaced by a step.
type ProviderEvent struct {
	Timestamp time.Time `json:"timestamp"`
	SessionID string    `json:"session_id"`
	Provider  string    `json:"provider"`
	Recovered bool      `json:"recovered"`
	Err       error     `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability. All hooks are
// optional and invoked synchronously on the run's goroutine.
type LifecycleHooks struct {
	OnStepEnter     func(context.Context, *StepEvent)
	OnStepLeave     func(context.Context, *StepEvent)
	OnProviderError func(context.Context, *ProviderEvent)
}

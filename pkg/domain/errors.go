package domain

import "errors"

// ErrNoMatches is returned by budget filtering when even the Luxury tier
// yields no candidates. It is terminal and user-actionable, never retried.
var ErrNoMatches = errors.New("no candidates match any budget tier")

// ErrInvalidDirective is returned when a replan directive references state
// that no longer exists. The session is left untouched.
var ErrInvalidDirective = errors.New("invalid replan directive")

// ErrProviderUnavailable wraps collaborator failures that exhausted their
// local recovery (retries, timeouts).
var ErrProviderUnavailable = errors.New("provider unavailable")

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrSessionClosed is returned when a directive arrives after Accept.
var ErrSessionClosed = errors.New("session already accepted")

// ErrReevaluationLimit is returned when the configured cap on weather
// re-evaluations would be exceeded.
var ErrReevaluationLimit = errors.New("weather re-evaluation limit reached")

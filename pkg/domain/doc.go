/*
Package domain holds the core vocabulary of the trip planning workflow.

TripState is the single mutable record owned by one planning session. It is
threaded through every pipeline step and is never shared across sessions.
The package also defines the typed step identifiers, budget tiers, weather
classification, replan directives, and the append-only history log that make
the workflow auditable and replayable.

Nothing in this package performs I/O. All external collaborators live behind
the interfaces in pkg/ports.
*/
package domain

/*
Package ports defines the driven ports (interfaces) for the planning engine.

These interfaces decouple the workflow core from external implementations:
weather lookup, hotel/flight search, text generation, session persistence,
and distributed locking. The core consumes only these contracts; the host
decides what sits behind them.

# Key Interfaces

  - WeatherProvider: forecast lookup for a destination and date range.
  - SearchProvider: hotel and flight candidate retrieval.
  - TextGenerator: day-plan and extras text synthesis.
  - AlternateSuggester: similar-destination suggestions on poor weather.
  - StateStore: persistence of session TripState.
  - DistributedLocker: cross-replica session locking.
*/
package ports

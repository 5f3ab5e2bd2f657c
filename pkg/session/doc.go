/*
Package session implements session management and persistence orchestration
for planning runs.

A TripState is owned exclusively by one workflow run, so no locking is needed
inside the pipeline itself. The Manager guards the boundary instead: it
serializes Load/mutate/Save cycles per session ID across callers (HTTP
requests, MCP tool calls), and can coordinate across replicas through an
optional distributed locker.
*/
package session

// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Upstream call outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// HTTP server metrics
	ObserveHTTPRequest(route, method string, status int, duration time.Duration)

	// Resource metrics
	IncUserCreated()
	IncListingCreated()

	// Gateway metrics
	ObserveUpstreamRequest(upstream, outcome string, duration time.Duration)
	IncEnrichmentMiss()
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}

package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// ObserveHTTPRequest is a no-op.
func (n *NoopRecorder) ObserveHTTPRequest(route, method string, status int, duration time.Duration) {}

// IncUserCreated is a no-op.
func (n *NoopRecorder) IncUserCreated() {}

// IncListingCreated is a no-op.
func (n *NoopRecorder) IncListingCreated() {}

// ObserveUpstreamRequest is a no-op.
func (n *NoopRecorder) ObserveUpstreamRequest(upstream, outcome string, duration time.Duration) {}

// IncEnrichmentMiss is a no-op.
func (n *NoopRecorder) IncEnrichmentMiss() {}

package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	HTTPRequests     uint64
	UsersCreated     uint64
	ListingsCreated  uint64
	UpstreamSuccess  uint64
	UpstreamFailure  uint64
	EnrichmentMisses uint64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	httpRequests     uint64
	usersCreated     uint64
	listingsCreated  uint64
	upstreamSuccess  uint64
	upstreamFailure  uint64
	enrichmentMisses uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		HTTPRequests:     atomic.LoadUint64(&m.httpRequests),
		UsersCreated:     atomic.LoadUint64(&m.usersCreated),
		ListingsCreated:  atomic.LoadUint64(&m.listingsCreated),
		UpstreamSuccess:  atomic.LoadUint64(&m.upstreamSuccess),
		UpstreamFailure:  atomic.LoadUint64(&m.upstreamFailure),
		EnrichmentMisses: atomic.LoadUint64(&m.enrichmentMisses),
	}
}

// ObserveHTTPRequest counts served requests.
func (m *InMemoryRecorder) ObserveHTTPRequest(route, method string, status int, duration time.Duration) {
	atomic.AddUint64(&m.httpRequests, 1)
}

// IncUserCreated increments user created counter.
func (m *InMemoryRecorder) IncUserCreated() {
	atomic.AddUint64(&m.usersCreated, 1)
}

// IncListingCreated increments listing created counter.
func (m *InMemoryRecorder) IncListingCreated() {
	atomic.AddUint64(&m.listingsCreated, 1)
}

// ObserveUpstreamRequest counts upstream calls by outcome.
func (m *InMemoryRecorder) ObserveUpstreamRequest(upstream, outcome string, duration time.Duration) {
	if outcome == OutcomeSuccess {
		atomic.AddUint64(&m.upstreamSuccess, 1)
		return
	}
	atomic.AddUint64(&m.upstreamFailure, 1)
}

// IncEnrichmentMiss increments the unresolved-owner counter.
func (m *InMemoryRecorder) IncEnrichmentMiss() {
	atomic.AddUint64(&m.enrichmentMisses, 1)
}

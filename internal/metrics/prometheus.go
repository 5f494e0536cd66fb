package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder exports metrics through a private Prometheus registry.
type PrometheusRecorder struct {
	registry *prometheus.Registry

	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
	usersCreated     prometheus.Counter
	listingsCreated  prometheus.Counter
	upstreamRequests *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	enrichmentMisses prometheus.Counter
}

// NewPrometheus creates a recorder whose metric names carry the given
// namespace, e.g. "user_service" or "gateway".
func NewPrometheus(namespace string) *PrometheusRecorder {
	registry := prometheus.NewRegistry()

	p := &PrometheusRecorder{
		registry: registry,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Count of HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Latency of HTTP requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		usersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "users_created_total",
			Help:      "Users persisted.",
		}),
		listingsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "listings_created_total",
			Help:      "Listings persisted.",
		}),
		upstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "requests_total",
			Help:      "Calls to backend services by upstream and outcome.",
		}, []string{"upstream", "outcome"}),
		upstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "upstream",
			Name:      "request_duration_seconds",
			Help:      "Latency of calls to backend services.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"upstream"}),
		enrichmentMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "enrichment_misses_total",
			Help:      "Listings returned with a null user.",
		}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		p.httpRequests,
		p.httpDuration,
		p.usersCreated,
		p.listingsCreated,
		p.upstreamRequests,
		p.upstreamDuration,
		p.enrichmentMisses,
	)

	return p
}

// Handler serves the registry in Prometheus exposition format.
func (p *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}

// ObserveHTTPRequest records one served request.
func (p *PrometheusRecorder) ObserveHTTPRequest(route, method string, status int, duration time.Duration) {
	p.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	p.httpDuration.WithLabelValues(route, method).Observe(duration.Seconds())
}

// IncUserCreated increments user created counter.
func (p *PrometheusRecorder) IncUserCreated() {
	p.usersCreated.Inc()
}

// IncListingCreated increments listing created counter.
func (p *PrometheusRecorder) IncListingCreated() {
	p.listingsCreated.Inc()
}

// ObserveUpstreamRequest records one backend call.
func (p *PrometheusRecorder) ObserveUpstreamRequest(upstream, outcome string, duration time.Duration) {
	p.upstreamRequests.WithLabelValues(upstream, outcome).Inc()
	p.upstreamDuration.WithLabelValues(upstream).Observe(duration.Seconds())
}

// IncEnrichmentMiss increments the unresolved-owner counter.
func (p *PrometheusRecorder) IncEnrichmentMiss() {
	p.enrichmentMisses.Inc()
}

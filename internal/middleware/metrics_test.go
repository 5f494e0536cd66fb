package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
)

type routeRecorder struct {
	mu     sync.Mutex
	routes []string
	status []int
}

func (r *routeRecorder) ObserveHTTPRequest(route, method string, status int, duration time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes = append(r.routes, route)
	r.status = append(r.status, status)
}
func (r *routeRecorder) IncUserCreated() {}

func (r *routeRecorder) IncListingCreated() {}

func (r *routeRecorder) ObserveUpstreamRequest(string, string, time.Duration) {}

func (r *routeRecorder) IncEnrichmentMiss() {}

func TestMetrics_LabelsByRoutePattern(t *testing.T) {
	t.Parallel()

	rec := &routeRecorder{}
	r := chi.NewRouter()
	r.Use(Metrics(rec))
	r.Get("/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, path := range []string{"/users/1", "/users/2"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	if len(rec.routes) != 2 {
		t.Fatalf("expected 2 observations, got %d", len(rec.routes))
	}
	for i, route := range rec.routes {
		if route != "/users/{id}" {
			t.Errorf("route[%d] = %q, want /users/{id}", i, route)
		}
		if rec.status[i] != http.StatusNotFound {
			t.Errorf("status[%d] = %d, want 404", i, rec.status[i])
		}
	}
}

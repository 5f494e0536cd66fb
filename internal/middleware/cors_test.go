package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// serveCORS runs one request from origin through a CORS-wrapped 200 handler.
func serveCORS(allow []string, method, origin string) *httptest.ResponseRecorder {
	cfg := DefaultCORSConfig()
	cfg.AllowedOrigins = allow
	h := CORS(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(method, "/public-api/listings", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCORSOriginMatching(t *testing.T) {
	site := []string{"https://homelist.test"}
	sub := []string{"*.homelist.test"}

	cases := map[string]struct {
		allow  []string
		origin string
		want   string
	}{
		"empty allow list":       {allow: nil, origin: "https://homelist.test"},
		"exact":                  {allow: site, origin: "https://homelist.test", want: "https://homelist.test"},
		"other origin":           {allow: site, origin: "https://elsewhere.test"},
		"upper case config":      {allow: []string{"HTTPS://HOMELIST.TEST"}, origin: "https://homelist.test", want: "https://homelist.test"},
		"subdomain pattern":      {allow: sub, origin: "https://m.homelist.test", want: "https://m.homelist.test"},
		"pattern needs dot":      {allow: sub, origin: "https://nothomelist.test"},
		"same-origin no header":  {allow: site, origin: ""},
	}

	for name, tc := range cases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			rec := serveCORS(tc.allow, http.MethodGet, tc.origin)
			if rec.Code != http.StatusOK {
				t.Fatalf("simple requests always reach the handler, got %d", rec.Code)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tc.want {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	allow := []string{"https://homelist.test"}

	rejected := serveCORS(allow, http.MethodOptions, "https://elsewhere.test")
	if rejected.Code != http.StatusForbidden {
		t.Errorf("unknown origin preflight status = %d, want 403", rejected.Code)
	}

	rec := serveCORS(allow, http.MethodOptions, "https://homelist.test")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("preflight status = %d, want 204", rec.Code)
	}

	want := map[string]string{
		"Access-Control-Allow-Origin":   "https://homelist.test",
		"Access-Control-Allow-Methods":  "GET, POST, OPTIONS",
		"Access-Control-Allow-Headers":  "Content-Type, Accept, " + RequestIDHeader,
		"Access-Control-Expose-Headers": RequestIDHeader,
		"Access-Control-Max-Age":        "86400",
		"Vary":                          "Origin",
	}
	for header, value := range want {
		if got := rec.Header().Get(header); got != value {
			t.Errorf("%s = %q, want %q", header, got, value)
		}
	}
}

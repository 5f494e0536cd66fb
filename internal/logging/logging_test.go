package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewHandler_Format(t *testing.T) {
	var buf bytes.Buffer
	slog.New(newHandler(&buf, "debug", "json")).Debug("user_created", "user_id", 1)
	if !strings.HasPrefix(buf.String(), "{") || !strings.Contains(buf.String(), `"msg":"user_created"`) {
		t.Errorf("expected JSON output, got %q", buf.String())
	}

	buf.Reset()
	slog.New(newHandler(&buf, "info", "text")).Info("listing_created")
	if !strings.Contains(buf.String(), "msg=listing_created") {
		t.Errorf("expected text output, got %q", buf.String())
	}

	buf.Reset()
	slog.New(newHandler(&buf, "warn", "json")).Info("dropped")
	if buf.Len() != 0 {
		t.Errorf("info should be filtered at warn level, got %q", buf.String())
	}
}

func TestRedactURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"postgres://app:s3cret@db:5432/homelist", "postgres://app@db:5432/homelist"},
		{"postgres://db:5432/homelist?password=s3cret&sslmode=disable", "postgres://db:5432/homelist?password=redacted&sslmode=disable"},
		{"http://localhost:6000", "http://localhost:6000"},
	}

	for _, tt := range tests {
		if got := RedactURL(tt.in); got != tt.want {
			t.Errorf("RedactURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSanitizeError(t *testing.T) {
	dsn := "postgres://app:s3cret@db:5432/homelist"
	err := errors.New("failed to connect to " + dsn + ": password=s3cret rejected")

	got := SanitizeError(err, dsn)
	if strings.Contains(got, "s3cret") {
		t.Errorf("secret leaked: %q", got)
	}
	if !strings.Contains(got, "postgres://app@db:5432/homelist") {
		t.Errorf("expected redacted URL in %q", got)
	}

	if SanitizeError(nil, dsn) != "" {
		t.Error("nil error should render empty")
	}
}

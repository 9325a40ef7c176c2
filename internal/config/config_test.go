package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("WEATHER_CLIENT_TIMEOUT", "")
	t.Setenv("OTEL_SERVICE_NAME", "")

	cfg := Load("weather-test")

	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.ClientTimeout != 15*time.Second {
		t.Fatalf("expected default client timeout 15s, got %s", cfg.ClientTimeout)
	}
	if cfg.ServiceName != "weather-test" {
		t.Fatalf("expected service name fallback, got %q", cfg.ServiceName)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("WEATHER_CLIENT_TIMEOUT", "0")
	t.Setenv("UPSTREAM_TIMEOUT", "2500ms")
	t.Setenv("RATE_LIMIT_BURST", "not-a-number")

	cfg := Load("weather-test")

	if cfg.Port != "9090" {
		t.Fatalf("expected port 9090, got %q", cfg.Port)
	}
	if cfg.ClientTimeout != 0 {
		t.Fatalf("expected disabled client timeout, got %s", cfg.ClientTimeout)
	}
	if cfg.UpstreamTimeout != 2500*time.Millisecond {
		t.Fatalf("expected 2.5s upstream timeout, got %s", cfg.UpstreamTimeout)
	}
	if cfg.RateLimitBurst != 10 {
		t.Fatalf("expected fallback burst 10, got %d", cfg.RateLimitBurst)
	}
}

func TestTrustedProxiesAndEnv(t *testing.T) {
	t.Setenv("TRUSTED_PROXIES", " 10.0.0.1, ,10.0.0.2 ")
	t.Setenv("GO_ENV", "production")

	cfg := Load("weather-test")

	if len(cfg.TrustedProxies) != 2 || cfg.TrustedProxies[0] != "10.0.0.1" || cfg.TrustedProxies[1] != "10.0.0.2" {
		t.Fatalf("unexpected trusted proxies: %q", cfg.TrustedProxies)
	}
	if cfg.IsDevelopment() {
		t.Fatalf("expected production mode")
	}

	t.Setenv("TRUSTED_PROXIES", "")
	t.Setenv("GO_ENV", "")
	cfg = Load("weather-test")
	if cfg.TrustedProxies != nil {
		t.Fatalf("expected no trusted proxies, got %q", cfg.TrustedProxies)
	}
	if !cfg.IsDevelopment() {
		t.Fatalf("expected development by default")
	}
}

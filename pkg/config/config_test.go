package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Server.Port != "5000" {
		t.Errorf("Port = %q, want %q", cfg.Server.Port, "5000")
	}
	if cfg.Auth.TokenTTL != time.Hour {
		t.Errorf("TokenTTL = %v, want %v", cfg.Auth.TokenTTL, time.Hour)
	}
	if cfg.Auth.CookieSecure {
		t.Error("CookieSecure defaults to true, want false")
	}
	if len(cfg.CORS.AllowedOrigins) != 1 || cfg.CORS.AllowedOrigins[0] != "http://localhost:5173" {
		t.Errorf("AllowedOrigins = %v", cfg.CORS.AllowedOrigins)
	}
	if cfg.NATS.URL != "" || cfg.Redis.URL != "" {
		t.Error("optional broker/cache URLs should default to empty")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg := Load()

	if cfg.Server.Port != "8080" {
		t.Errorf("Port = %q, want %q", cfg.Server.Port, "8080")
	}
	if cfg.Auth.TokenTTL != 30*time.Minute {
		t.Errorf("TokenTTL = %v, want %v", cfg.Auth.TokenTTL, 30*time.Minute)
	}
	if !cfg.Auth.CookieSecure {
		t.Error("CookieSecure = false, want true")
	}
	want := []string{"https://a.example", "https://b.example"}
	if len(cfg.CORS.AllowedOrigins) != 2 ||
		cfg.CORS.AllowedOrigins[0] != want[0] || cfg.CORS.AllowedOrigins[1] != want[1] {
		t.Errorf("AllowedOrigins = %v, want %v", cfg.CORS.AllowedOrigins, want)
	}
}

func TestLoad_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("TOKEN_TTL", "not-a-duration")
	t.Setenv("COOKIE_SECURE", "maybe")

	cfg := Load()

	if cfg.Auth.TokenTTL != time.Hour {
		t.Errorf("TokenTTL = %v, want fallback %v", cfg.Auth.TokenTTL, time.Hour)
	}
	if cfg.Auth.CookieSecure {
		t.Error("CookieSecure should fall back to false")
	}
}

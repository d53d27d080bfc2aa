package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvAPIKey, EnvDefaultCity, EnvUnits, EnvPort} {
		t.Setenv(key, "")
	}
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
api:
  openweather:
    key: file-key
defaults:
  city: London
  units: imperial
server:
  port: "9090"
`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIKey != "file-key" {
		t.Fatalf("expected file api key, got %q", cfg.APIKey)
	}
	if cfg.DefaultCity != "London" {
		t.Fatalf("expected London, got %q", cfg.DefaultCity)
	}
	if cfg.Units != "imperial" {
		t.Fatalf("expected imperial, got %q", cfg.Units)
	}
	if cfg.Port != "9090" {
		t.Fatalf("expected port 9090, got %q", cfg.Port)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
api:
  openweather:
    key: file-key
defaults:
  city: London
`)
	t.Setenv(EnvAPIKey, "env-key")
	t.Setenv(EnvDefaultCity, "Paris")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIKey != "env-key" {
		t.Fatalf("environment must win, got %q", cfg.APIKey)
	}
	if cfg.DefaultCity != "Paris" {
		t.Fatalf("environment must win, got %q", cfg.DefaultCity)
	}
}

func TestDefaultsWithoutFile(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("a missing config file must not be an error: %v", err)
	}
	if cfg.APIKey != "" {
		t.Fatalf("expected empty api key, got %q", cfg.APIKey)
	}
	if cfg.DefaultCity != "" {
		t.Fatalf("expected no default city, got %q", cfg.DefaultCity)
	}
	if cfg.Units != "metric" {
		t.Fatalf("expected metric default, got %q", cfg.Units)
	}
	if cfg.Port != "8080" {
		t.Fatalf("expected port 8080, got %q", cfg.Port)
	}
	if cfg.HTTPTimeout != 10*time.Second {
		t.Fatalf("expected 10s http timeout, got %v", cfg.HTTPTimeout)
	}
}

func TestInvalidUnitsRejected(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvUnits, "kelvin")

	if _, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected validation to reject unknown units")
	}
}

func TestMalformedFileRejected(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "api: [not a mapping")

	if _, err := LoadFrom(path); err == nil {
		t.Fatal("expected a parse error for malformed yaml")
	}
}

func TestTimeoutOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv("WEATHER_NATIVE_TIMEOUT", "2s")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.NativeTimeout != 2*time.Second {
		t.Fatalf("expected 2s native timeout, got %v", cfg.NativeTimeout)
	}
}

package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_StorageDriverValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("APP_STORAGE_DRIVER", "dynamo")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_STORAGE_DRIVER")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.StorageDriver != StorageMemory {
		t.Fatalf("expected memory storage by default, got %q", cfg.StorageDriver)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected HTTPAddr: %q", cfg.HTTPAddr)
	}
	if cfg.BackfillWorkers != 8 {
		t.Fatalf("unexpected BackfillWorkers: %d", cfg.BackfillWorkers)
	}
	if !cfg.CacheEnabled || cfg.CacheTTL != 60*time.Second {
		t.Fatalf("unexpected cache defaults: enabled=%v ttl=%s", cfg.CacheEnabled, cfg.CacheTTL)
	}
	if !cfg.StatsFeedCircuitEnabled || cfg.StatsFeedCircuitFailureCount != 5 {
		t.Fatalf("unexpected stats feed circuit defaults")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `uptrace-dsn="https://token@api.uptrace.dev/123"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev/123" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoad_StatsFeedParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("STATSFEED_BASE_URL", "https://feed.example.com")
	t.Setenv("STATSFEED_API_KEY", "key-123")
	t.Setenv("STATSFEED_TIMEOUT", "7s")
	t.Setenv("STATSFEED_MAX_RETRIES", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.StatsFeedBaseURL != "https://feed.example.com" {
		t.Fatalf("unexpected StatsFeedBaseURL: %q", cfg.StatsFeedBaseURL)
	}
	if cfg.StatsFeedAPIKey != "key-123" {
		t.Fatalf("unexpected StatsFeedAPIKey")
	}
	if cfg.StatsFeedTimeout != 7*time.Second {
		t.Fatalf("unexpected StatsFeedTimeout: %s", cfg.StatsFeedTimeout)
	}
	if cfg.StatsFeedMaxRetries != 3 {
		t.Fatalf("unexpected StatsFeedMaxRetries: %d", cfg.StatsFeedMaxRetries)
	}
}

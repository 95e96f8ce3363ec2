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

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected HTTPAddr: %q", cfg.HTTPAddr)
	}
	if cfg.ProviderCacheTTL != 5*time.Minute {
		t.Fatalf("unexpected ProviderCacheTTL: %s", cfg.ProviderCacheTTL)
	}
	if !cfg.ESPN.Enabled || cfg.ESPN.BaseURL != defaultESPNBaseURL {
		t.Fatalf("expected ESPN enabled with default base url, got %+v", cfg.ESPN)
	}
	if cfg.NCAA.Enabled || cfg.SportsRef.Enabled {
		t.Fatalf("expected NCAA and Sports-Reference disabled by default")
	}
	if cfg.ESPN.Retry.MaxAttempts != 3 {
		t.Fatalf("expected 3 attempts from 2 retries, got %d", cfg.ESPN.Retry.MaxAttempts)
	}
	if !cfg.ESPN.CircuitBreaker.Enabled || cfg.ESPN.CircuitBreaker.FailureThreshold != 5 {
		t.Fatalf("unexpected ESPN circuit breaker: %+v", cfg.ESPN.CircuitBreaker)
	}
	if cfg.ImportToken != "" {
		t.Fatalf("expected import routes open in dev by default")
	}
}

func TestLoad_ProviderOverrides(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("NCAA_ENABLED", "true")
	t.Setenv("NCAA_BASE_URL", "https://cfbd.example.test/")
	t.Setenv("NCAA_API_KEY", "key-1")
	t.Setenv("NCAA_TIMEOUT", "4s")
	t.Setenv("NCAA_MAX_RETRIES", "0")
	t.Setenv("NCAA_CIRCUIT_FAILURE_COUNT", "3")
	t.Setenv("KAGGLE_DATASET_PATH", "/data/pbp")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.NCAA.BaseURL != "https://cfbd.example.test" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.NCAA.BaseURL)
	}
	if cfg.NCAA.APIKey != "key-1" || cfg.NCAA.Timeout != 4*time.Second {
		t.Fatalf("unexpected NCAA config: %+v", cfg.NCAA)
	}
	if cfg.NCAA.Retry.MaxAttempts != 1 || cfg.NCAA.CircuitBreaker.FailureThreshold != 3 {
		t.Fatalf("unexpected NCAA resilience config: %+v", cfg.NCAA)
	}
	if cfg.KaggleDatasetPath != "/data/pbp" {
		t.Fatalf("unexpected KaggleDatasetPath: %q", cfg.KaggleDatasetPath)
	}
}

func TestLoad_Validation(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
	}{
		{"uptrace requires dsn", map[string]string{"UPTRACE_ENABLED": "true", "UPTRACE_DSN": ""}},
		{"pyroscope requires server", map[string]string{"PYROSCOPE_ENABLED": "true", "PYROSCOPE_SERVER_ADDRESS": ""}},
		{"negative retries", map[string]string{"ESPN_MAX_RETRIES": "-1"}},
		{"zero circuit threshold", map[string]string{"SPORTSREF_CIRCUIT_FAILURE_COUNT": "0"}},
		{"bad duration", map[string]string{"PROVIDER_CACHE_TTL": "soon"}},
		{"zero duration", map[string]string{"CACHE_TTL": "0s"}},
		{"bad bool", map[string]string{"CACHE_ENABLED": "maybe"}},
		{"prod requires import token", map[string]string{"APP_ENV": EnvProd, "IMPORT_TOKEN": ""}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("APP_ENV", EnvDev)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "x-other=1, uptrace-dsn='https://token@api.uptrace.dev?grpc=4317'")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestSplitCSV(t *testing.T) {
	got := splitCSV(" https://a.test, ,https://b.test ")
	if len(got) != 2 || got[0] != "https://a.test" || got[1] != "https://b.test" {
		t.Fatalf("unexpected split: %#v", got)
	}
}

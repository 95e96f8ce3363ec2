package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/film-grading/internal/platform/logging"
	"github.com/riskibarqy/film-grading/internal/platform/resilience"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                     string
	ServiceName                string
	ServiceVersion             string
	HTTPAddr                   string
	DBURL                      string
	DBDisablePreparedBinary    bool
	DBSeedTeams                bool
	CacheEnabled               bool
	CacheTTL                   time.Duration
	CORSAllowedOrigins         []string
	ReadTimeout                time.Duration
	WriteTimeout               time.Duration
	ImportToken                string
	MaxBodyBytes               int64
	RedisURL                   string
	ProviderCacheTTL           time.Duration
	ESPN                       ProviderConfig
	NCAA                       ProviderConfig
	SportsRef                  ProviderConfig
	KaggleDatasetPath          string
	PprofEnabled               bool
	PprofAddr                  string
	UptraceEnabled             bool
	UptraceDSN                 string
	UptraceLogsEnabled         bool
	UptraceCaptureRequestBody  bool
	UptraceRequestBodyMaxBytes int
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
	LogLevel                   logging.Level
}

// ProviderConfig is one remote play-by-play feed.
type ProviderConfig struct {
	Enabled        bool
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	Retry          resilience.RetryConfig
	CircuitBreaker resilience.CircuitBreakerConfig
}

const (
	defaultESPNBaseURL      = "https://site.api.espn.com/apis/site/v2/sports/football/college-football"
	defaultNCAABaseURL      = "https://api.collegefootballdata.com"
	defaultSportsRefBaseURL = "https://www.sports-reference.com"
)

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:                 appEnv,
		ServiceName:            strings.TrimSpace(getEnv("SERVICE_NAME", "film-grading")),
		ServiceVersion:         strings.TrimSpace(getEnv("SERVICE_VERSION", "dev")),
		HTTPAddr:               getEnv("HTTP_ADDR", ":8080"),
		DBURL:                  strings.TrimSpace(getEnv("DB_URL", "")),
		CORSAllowedOrigins:     splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ImportToken:            strings.TrimSpace(getEnv("IMPORT_TOKEN", "")),
		RedisURL:               strings.TrimSpace(getEnv("REDIS_URL", "")),
		KaggleDatasetPath:      strings.TrimSpace(getEnv("KAGGLE_DATASET_PATH", "")),
		PprofAddr:              strings.TrimSpace(getEnv("PPROF_ADDR", ":6060")),
		PyroscopeServerAddress: strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", "")),
		PyroscopeAuthToken:     strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		LogLevel:               logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
	}
	cfg.PyroscopeBasicAuthPassword = strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", ""))
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.ServiceName == "" {
		return Config{}, fmt.Errorf("SERVICE_NAME cannot be empty")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}
	if appEnv == EnvProd && cfg.ImportToken == "" {
		return Config{}, fmt.Errorf("IMPORT_TOKEN is required when APP_ENV=%s", EnvProd)
	}

	bools := []struct {
		key      string
		fallback string
		target   *bool
	}{
		{"DB_DISABLE_PREPARED_BINARY_RESULT", "true", &cfg.DBDisablePreparedBinary},
		{"DB_SEED_TEAMS", "true", &cfg.DBSeedTeams},
		{"CACHE_ENABLED", "true", &cfg.CacheEnabled},
		{"PPROF_ENABLED", "false", &cfg.PprofEnabled},
		{"UPTRACE_ENABLED", "false", &cfg.UptraceEnabled},
		{"UPTRACE_LOGS_ENABLED", "true", &cfg.UptraceLogsEnabled},
		{"UPTRACE_CAPTURE_REQUEST_BODY", "true", &cfg.UptraceCaptureRequestBody},
		{"PYROSCOPE_ENABLED", "false", &cfg.PyroscopeEnabled},
	}
	for _, b := range bools {
		v, err := strconv.ParseBool(getEnv(b.key, b.fallback))
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", b.key, err)
		}
		*b.target = v
	}

	durations := []struct {
		key      string
		fallback string
		target   *time.Duration
	}{
		{"CACHE_TTL", "60s", &cfg.CacheTTL},
		{"APP_READ_TIMEOUT", "10s", &cfg.ReadTimeout},
		{"APP_WRITE_TIMEOUT", "30s", &cfg.WriteTimeout},
		{"PROVIDER_CACHE_TTL", "5m", &cfg.ProviderCacheTTL},
		{"PYROSCOPE_UPLOAD_RATE", "15s", &cfg.PyroscopeUploadRate},
	}
	for _, d := range durations {
		v, err := getEnvAsDuration(d.key, d.fallback)
		if err != nil {
			return Config{}, err
		}
		*d.target = v
	}

	maxBody, err := getEnvAsInt("HTTP_MAX_BODY_BYTES", 8<<20)
	if err != nil {
		return Config{}, fmt.Errorf("parse HTTP_MAX_BODY_BYTES: %w", err)
	}
	if maxBody <= 0 {
		return Config{}, fmt.Errorf("HTTP_MAX_BODY_BYTES must be > 0")
	}
	cfg.MaxBodyBytes = int64(maxBody)

	cfg.UptraceDSN = strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if cfg.UptraceDSN == "" {
		cfg.UptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if cfg.UptraceEnabled && cfg.UptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	cfg.UptraceRequestBodyMaxBytes, err = getEnvAsInt("UPTRACE_REQUEST_BODY_MAX_BYTES", 8192)
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_REQUEST_BODY_MAX_BYTES: %w", err)
	}
	if cfg.UptraceRequestBodyMaxBytes <= 0 {
		return Config{}, fmt.Errorf("UPTRACE_REQUEST_BODY_MAX_BYTES must be > 0")
	}

	if cfg.PprofEnabled && cfg.PprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}
	if cfg.PyroscopeEnabled && cfg.PyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}

	if cfg.ESPN, err = loadProvider("ESPN", defaultESPNBaseURL, true); err != nil {
		return Config{}, err
	}
	if cfg.NCAA, err = loadProvider("NCAA", defaultNCAABaseURL, false); err != nil {
		return Config{}, err
	}
	if cfg.SportsRef, err = loadProvider("SPORTSREF", defaultSportsRefBaseURL, false); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// loadProvider reads <PREFIX>_ENABLED, _BASE_URL, _API_KEY, _TIMEOUT,
// _MAX_RETRIES, _RETRY_BACKOFF and the _CIRCUIT_* settings.
func loadProvider(prefix, defaultBaseURL string, enabledByDefault bool) (ProviderConfig, error) {
	key := func(name string) string { return prefix + "_" + name }

	enabled, err := strconv.ParseBool(getEnv(key("ENABLED"), strconv.FormatBool(enabledByDefault)))
	if err != nil {
		return ProviderConfig{}, fmt.Errorf("parse %s: %w", key("ENABLED"), err)
	}
	out := ProviderConfig{
		Enabled: enabled,
		BaseURL: strings.TrimRight(strings.TrimSpace(getEnv(key("BASE_URL"), defaultBaseURL)), "/"),
		APIKey:  strings.TrimSpace(getEnv(key("API_KEY"), "")),
	}
	if out.Enabled && out.BaseURL == "" {
		return ProviderConfig{}, fmt.Errorf("%s cannot be empty when %s=true", key("BASE_URL"), key("ENABLED"))
	}

	if out.Timeout, err = getEnvAsDuration(key("TIMEOUT"), "15s"); err != nil {
		return ProviderConfig{}, err
	}
	retries, err := getEnvAsInt(key("MAX_RETRIES"), 2)
	if err != nil {
		return ProviderConfig{}, fmt.Errorf("parse %s: %w", key("MAX_RETRIES"), err)
	}
	if retries < 0 {
		return ProviderConfig{}, fmt.Errorf("%s must be >= 0", key("MAX_RETRIES"))
	}
	backoff, err := getEnvAsDuration(key("RETRY_BACKOFF"), "300ms")
	if err != nil {
		return ProviderConfig{}, err
	}
	maxBackoff, err := getEnvAsDuration(key("RETRY_MAX_BACKOFF"), "2s")
	if err != nil {
		return ProviderConfig{}, err
	}
	out.Retry = resilience.RetryConfig{MaxAttempts: retries + 1, Backoff: backoff, MaxBackoff: maxBackoff}

	breaker := resilience.DefaultCircuitBreakerConfig()
	if breaker.Enabled, err = strconv.ParseBool(getEnv(key("CIRCUIT_ENABLED"), "true")); err != nil {
		return ProviderConfig{}, fmt.Errorf("parse %s: %w", key("CIRCUIT_ENABLED"), err)
	}
	if breaker.FailureThreshold, err = getEnvAsInt(key("CIRCUIT_FAILURE_COUNT"), breaker.FailureThreshold); err != nil {
		return ProviderConfig{}, fmt.Errorf("parse %s: %w", key("CIRCUIT_FAILURE_COUNT"), err)
	}
	if breaker.FailureThreshold < 1 {
		return ProviderConfig{}, fmt.Errorf("%s must be >= 1", key("CIRCUIT_FAILURE_COUNT"))
	}
	if breaker.OpenTimeout, err = getEnvAsDuration(key("CIRCUIT_OPEN_TIMEOUT"), breaker.OpenTimeout.String()); err != nil {
		return ProviderConfig{}, err
	}
	if breaker.HalfOpenMaxReq, err = getEnvAsInt(key("CIRCUIT_HALF_OPEN_MAX_REQ"), breaker.HalfOpenMaxReq); err != nil {
		return ProviderConfig{}, fmt.Errorf("parse %s: %w", key("CIRCUIT_HALF_OPEN_MAX_REQ"), err)
	}
	if breaker.HalfOpenMaxReq < 1 {
		return ProviderConfig{}, fmt.Errorf("%s must be >= 1", key("CIRCUIT_HALF_OPEN_MAX_REQ"))
	}
	out.CircuitBreaker = breaker
	return out, nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

// getEnvAsDuration rejects zero and negative values.
func getEnvAsDuration(key, fallback string) (time.Duration, error) {
	out, err := time.ParseDuration(strings.TrimSpace(getEnv(key, fallback)))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if out <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}
	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	for _, item := range strings.Split(raw, ",") {
		name, value, ok := strings.Cut(strings.TrimSpace(item), "=")
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(name), "uptrace-dsn") {
			return strings.Trim(strings.TrimSpace(value), "\"'")
		}
	}
	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

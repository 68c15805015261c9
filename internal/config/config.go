// Package config provides application configuration loaded from environment
// variables with defaults and validation. It centralizes server timeouts,
// logging, database selection, image provider credentials, local image
// storage, analytics timing, rate limiting, and observability.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// CORSConfig defines Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string
}

// SecurityConfig defines security-related settings such as HSTS.
type SecurityConfig struct {
	EnableHSTS bool
	HSTSMaxAge time.Duration
}

// OTELConfig defines OpenTelemetry observability settings.
type OTELConfig struct {
	Enabled     bool    // OTEL_ENABLED
	Endpoint    string  // OTEL_EXPORTER_OTLP_ENDPOINT (e.g. "otel:4317")
	Insecure    bool    // OTEL_EXPORTER_OTLP_INSECURE (true if no TLS)
	ServiceName string  // OTEL_SERVICE_NAME (e.g. "teammate-generator")
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
}

// DBConfig selects the GORM dialect and its connection settings.
type DBConfig struct {
	Driver string // sqlite|postgres
	Path   string // SQLite file path
	URL    string // Postgres DSN (DATABASE_URL)
}

// ProviderConfig carries credentials and endpoints for the image providers.
type ProviderConfig struct {
	ReplicateToken   string        // REPLICATE_API_TOKEN (ideogram, flux)
	ReplicateBaseURL string        // REPLICATE_BASE_URL
	GeminiAPIKey     string        // GEMINI_API_KEY (imagen, gemini)
	DashScopeAPIKey  string        // DASHSCOPE_API_KEY (qwen)
	DashScopeURL     string        // DASHSCOPE_BASE_URL
	Default          string        // DEFAULT_PROVIDER, empty = precedence order
	Timeout          time.Duration // PROVIDER_TIMEOUT, 0 = no deadline
}

// StorageConfig describes where locally persisted images live and how they
// are addressed publicly.
type StorageConfig struct {
	PublicDir string // PUBLIC_DIR; images land in PUBLIC_DIR/generated
	URLPrefix string // GENERATED_URL_PREFIX, e.g. "/generated"
}

// AnalyticsConfig tunes the visitor/session tracker.
type AnalyticsConfig struct {
	SessionTimeout time.Duration // sessions idle longer than this are inactive
	SweepInterval  time.Duration // background sweep period, 0 disables the ticker
	CleanupAge     time.Duration // "cleanup" action threshold
	StatsCacheTTL  time.Duration // 0 disables memoization of stats
}

// Config holds all configuration values for the application.
type Config struct {
	// Server
	Port              string        // just the number
	ReadTimeout       time.Duration // e.g. 15s
	ReadHeaderTimeout time.Duration // e.g. 10s
	WriteTimeout      time.Duration // provider calls can be slow
	IdleTimeout       time.Duration // e.g. 60s
	MaxHeaderBytes    int           // bytes
	GinMode           string        // debug|release|test
	Environment       string        // APP_ENV, reported by /health

	// Logging / Docs
	LogLevel       string // debug|info|warn|error|fatal|panic
	LogPretty      bool   // pretty console logs in dev
	SwaggerEnabled bool   // enable Swagger UI route
	APIBasePath    string // base path for API routes

	// Persistence
	DB DBConfig

	// Image generation
	Providers ProviderConfig
	Storage   StorageConfig

	// Analytics
	Analytics AnalyticsConfig

	// Rate limiting (global, then generation endpoints)
	RateRPS      float64 // tokens per second (>= 0)
	RateBurst    int     // bucket size (>= 1)
	GenRateRPS   float64
	GenRateBurst int

	// Web protection
	CORS     CORSConfig
	Security SecurityConfig

	// Idempotency
	IdempotencyTTL time.Duration // how long a given Idempotency-Key is valid

	// Observability
	OTEL OTELConfig
}

// MustLoad loads the configuration and panics if validation fails.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration from environment variables,
// applies defaults, normalizes values, and validates the result.
func Load() (Config, error) {
	cfg := Config{
		// Server
		Port:              getenv("PORT", "8080"),
		ReadTimeout:       getdur("READ_TIMEOUT", 15*time.Second),
		ReadHeaderTimeout: getdur("READ_HEADER_TIMEOUT", 10*time.Second),
		WriteTimeout:      getdur("WRITE_TIMEOUT", 180*time.Second),
		IdleTimeout:       getdur("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes:    getint("MAX_HEADER_BYTES", 1<<20),
		GinMode:           strings.ToLower(getenv("GIN_MODE", "release")),
		Environment:       getenv("APP_ENV", "development"),

		// Logging / Docs
		LogLevel:       strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogPretty:      getbool("LOG_PRETTY", false),
		SwaggerEnabled: getbool("SWAGGER_ENABLED", false),
		APIBasePath:    normalizeBasePath(getenv("API_BASE_PATH", "/api")),

		// Persistence
		DB: DBConfig{
			Driver: strings.ToLower(getenv("DB_DRIVER", DriverSQLite)),
			Path:   getenv("DB_PATH", "teammates.db"),
			URL:    getenv("DATABASE_URL", ""),
		},

		// Image generation
		Providers: ProviderConfig{
			ReplicateToken:   getenv(EnvReplicateToken, ""),
			ReplicateBaseURL: getenv("REPLICATE_BASE_URL", "https://api.replicate.com/v1"),
			GeminiAPIKey:     getenv(EnvGeminiAPIKey, ""),
			DashScopeAPIKey:  getenv(EnvDashScopeAPIKey, ""),
			DashScopeURL:     getenv("DASHSCOPE_BASE_URL", "https://dashscope-intl.aliyuncs.com/api/v1/services/aigc/multimodal-generation/generation"),
			Default:          strings.ToLower(getenv("DEFAULT_PROVIDER", "")),
			Timeout:          getdur("PROVIDER_TIMEOUT", 0),
		},
		Storage: StorageConfig{
			PublicDir: getenv("PUBLIC_DIR", "public"),
			URLPrefix: normalizeBasePath(getenv("GENERATED_URL_PREFIX", "/generated")),
		},

		// Analytics
		Analytics: AnalyticsConfig{
			SessionTimeout: getdur("SESSION_TIMEOUT", 5*time.Minute),
			SweepInterval:  getdur("SWEEP_INTERVAL", time.Minute),
			CleanupAge:     getdur("SESSION_CLEANUP_AGE", 24*time.Hour),
			StatsCacheTTL:  getdur("STATS_CACHE_TTL", 0),
		},

		// Rate limiting
		RateRPS:      getfloat("RATE_RPS", 5.0),
		RateBurst:    getint("RATE_BURST", 10),
		GenRateRPS:   getfloat("GEN_RATE_RPS", 0.5),
		GenRateBurst: getint("GEN_RATE_BURST", 3),

		// Web protection
		CORS: CORSConfig{
			AllowedOrigins: splitCSV(getenv("CORS_ALLOWED_ORIGINS", "")),
		},
		Security: SecurityConfig{
			EnableHSTS: getbool("ENABLE_HSTS", false),
			HSTSMaxAge: getdur("HSTS_MAX_AGE", 180*24*time.Hour),
		},

		// Idempotency
		IdempotencyTTL: getdur("IDEMPOTENCY_TTL", 24*time.Hour),

		// Observability (OpenTelemetry)
		OTEL: OTELConfig{
			Enabled:     getbool("OTEL_ENABLED", false),
			Endpoint:    getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    getbool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: getenv("OTEL_SERVICE_NAME", "teammate-generator"),
			SampleRatio: getfloat("OTEL_TRACES_SAMPLER_ARG", 1.0),
		},
	}

	// --- normalization ---
	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		cfg.GinMode = "release"
	}
	if cfg.DB.Driver == "postgresql" {
		cfg.DB.Driver = DriverPostgres
	}

	// --- validation ---
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return cfg, errors.New("LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic")
	}
	if strings.TrimSpace(cfg.Port) == "" {
		return cfg, errors.New("PORT must not be empty")
	}
	if cfg.ReadTimeout <= 0 || cfg.ReadHeaderTimeout <= 0 || cfg.WriteTimeout <= 0 || cfg.IdleTimeout <= 0 {
		return cfg, errors.New("timeouts must be positive durations")
	}
	if cfg.MaxHeaderBytes <= 0 {
		return cfg, errors.New("MAX_HEADER_BYTES must be > 0")
	}
	switch cfg.DB.Driver {
	case DriverSQLite:
		if strings.TrimSpace(cfg.DB.Path) == "" {
			return cfg, errors.New("DB_PATH must not be empty")
		}
	case DriverPostgres:
		// DATABASE_URL is reported through MissingVars so the service can
		// still start and answer /health.
	default:
		return cfg, errors.New("DB_DRIVER must be one of: sqlite, postgres")
	}
	if cfg.Providers.Default != "" && !IsKnownProvider(cfg.Providers.Default) {
		return cfg, errors.New("DEFAULT_PROVIDER must be one of: " + strings.Join(ProviderNames(), ", "))
	}
	if cfg.Providers.Timeout < 0 {
		return cfg, errors.New("PROVIDER_TIMEOUT must be >= 0")
	}
	if strings.TrimSpace(cfg.Storage.PublicDir) == "" {
		return cfg, errors.New("PUBLIC_DIR must not be empty")
	}
	if cfg.Analytics.SessionTimeout <= 0 {
		return cfg, errors.New("SESSION_TIMEOUT must be > 0")
	}
	if cfg.Analytics.SweepInterval < 0 || cfg.Analytics.StatsCacheTTL < 0 {
		return cfg, errors.New("SWEEP_INTERVAL and STATS_CACHE_TTL must be >= 0")
	}
	if cfg.Analytics.CleanupAge <= 0 {
		return cfg, errors.New("SESSION_CLEANUP_AGE must be > 0")
	}
	if cfg.RateRPS < 0 || cfg.GenRateRPS < 0 {
		return cfg, errors.New("RATE_RPS and GEN_RATE_RPS must be >= 0")
	}
	if cfg.RateBurst < 1 || cfg.GenRateBurst < 1 {
		return cfg, errors.New("RATE_BURST and GEN_RATE_BURST must be >= 1")
	}
	if cfg.Security.HSTSMaxAge < 0 {
		return cfg, errors.New("HSTS_MAX_AGE must be >= 0")
	}
	if cfg.IdempotencyTTL <= 0 {
		return cfg, errors.New("IDEMPOTENCY_TTL must be > 0")
	}
	if cfg.OTEL.SampleRatio < 0 || cfg.OTEL.SampleRatio > 1 {
		return cfg, errors.New("OTEL_TRACES_SAMPLER_ARG must be in [0,1]")
	}

	return cfg, nil
}

// ---- helpers (no external deps) ----

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func getfloat(k string, def float64) float64 {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getint(k string, def int) int {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// normalizeBasePath ensures leading '/' and strips trailing '/' (except root).
func normalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 && strings.HasSuffix(p, "/") {
		p = strings.TrimRight(p, "/")
	}
	return p
}

package config

import (
	"strings"
	"time"
)

// Supported model providers.
const (
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	LLM       LLMConfig       `yaml:"llm"`
	Session   SessionConfig   `yaml:"session"`
	Database  DatabaseConfig  `yaml:"database"`
	Cache     CacheConfig     `yaml:"cache"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"120s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"   env:"SERVER_MAX_BODY_BYTES"   env-default:"1048576"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig limits model-backed routes per client IP.
type RateLimitConfig struct {
	Enabled   bool `yaml:"enabled"    env:"RATE_LIMIT_ENABLED"    env-default:"true"`
	PerMinute int  `yaml:"per_minute" env:"RATE_LIMIT_PER_MINUTE" env-default:"20"`
	Burst     int  `yaml:"burst"      env:"RATE_LIMIT_BURST"      env-default:"5"`
}

// Default model names per provider.
const (
	DefaultAnthropicModel = "claude-sonnet-4-20250514"
	DefaultGeminiModel    = "gemini-2.5-flash"
)

// LLMConfig selects the model provider and per-operation parameters.
type LLMConfig struct {
	Provider        string        `yaml:"provider"          env:"LLM_PROVIDER"        env-default:"anthropic"`
	AnthropicAPIKey string        `yaml:"anthropic_api_key" env:"ANTHROPIC_API_KEY"`
	GeminiAPIKey    string        `yaml:"gemini_api_key"    env:"GEMINI_API_KEY"`
	BaseURL         string        `yaml:"base_url"          env:"LLM_BASE_URL"`
	RequestTimeout  time.Duration `yaml:"request_timeout"   env:"LLM_REQUEST_TIMEOUT" env-default:"90s"`
	MaxRetries      int           `yaml:"max_retries"       env:"LLM_MAX_RETRIES"     env-default:"0"`
	TermCount       int           `yaml:"term_count"        env:"LLM_TERM_COUNT"      env-default:"12"`
	ExtendCount     int           `yaml:"extend_count"      env:"LLM_EXTEND_COUNT"    env-default:"10"`

	Generate GenerateParams `yaml:"generate"`
	Expand   ExpandParams   `yaml:"expand"`
}

// GenerateParams are the model parameters for glossary generation and
// extension. An empty Model resolves to the provider default.
type GenerateParams struct {
	Model       string  `yaml:"model"       env:"LLM_GENERATE_MODEL"`
	MaxTokens   int     `yaml:"max_tokens"  env:"LLM_GENERATE_MAX_TOKENS"  env-default:"4096"`
	Temperature float64 `yaml:"temperature" env:"LLM_GENERATE_TEMPERATURE" env-default:"0.7"`
}

// ExpandParams are the model parameters for term expansion.
type ExpandParams struct {
	Model       string  `yaml:"model"       env:"LLM_EXPAND_MODEL"`
	MaxTokens   int     `yaml:"max_tokens"  env:"LLM_EXPAND_MAX_TOKENS"  env-default:"2048"`
	Temperature float64 `yaml:"temperature" env:"LLM_EXPAND_TEMPERATURE" env-default:"0.7"`
}

// APIKey returns the key for the selected provider.
func (c LLMConfig) APIKey() string {
	if strings.EqualFold(c.Provider, ProviderGemini) {
		return c.GeminiAPIKey
	}
	return c.AnthropicAPIKey
}

// DefaultModel returns the model used when an operation does not name one.
func (c LLMConfig) DefaultModel() string {
	if strings.EqualFold(c.Provider, ProviderGemini) {
		return DefaultGeminiModel
	}
	return DefaultAnthropicModel
}

// SessionConfig holds the session token settings.
type SessionConfig struct {
	Secret    string        `yaml:"secret"    env:"SESSION_SECRET"`
	Issuer    string        `yaml:"issuer"    env:"SESSION_ISSUER"    env-default:"glossary-builder"`
	TTL       time.Duration `yaml:"ttl"       env:"SESSION_TTL"       env-default:"720h"`
	Namespace string        `yaml:"namespace" env:"SESSION_NAMESPACE" env-default:"glossary-builder:glossary"`
}

// DatabaseConfig holds PostgreSQL connection settings. An empty DSN
// selects the in-memory snapshot store.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	AutoMigrate     bool          `yaml:"auto_migrate"       env:"DATABASE_AUTO_MIGRATE"       env-default:"true"`
}

// CacheConfig configures the expansion cache. An empty Addr selects the
// in-memory cache.
type CacheConfig struct {
	Addr     string        `yaml:"addr"     env:"REDIS_ADDR"`
	Password string        `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int           `yaml:"db"       env:"REDIS_DB"       env-default:"0"`
	TTL      time.Duration `yaml:"ttl"      env:"CACHE_TTL"      env-default:"168h"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" env:"METRICS_ENABLED" env-default:"true"`
	Path    string `yaml:"path"    env:"METRICS_PATH"    env-default:"/metrics"`
}

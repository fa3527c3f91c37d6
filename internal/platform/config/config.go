// Package config provides configuration loading and management using koanf.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Default configuration values.
const (
	// DefaultClientRetryMaxAttempts is the default number of attempts per request.
	// One attempt means no retries.
	DefaultClientRetryMaxAttempts = 1

	// DefaultClientRetryMultiplier is the default exponential backoff multiplier.
	DefaultClientRetryMultiplier = 2.0

	// DefaultClientRetryJitterFactor is the default jitter percentage (±25%).
	DefaultClientRetryJitterFactor = 0.25

	// DefaultClientCircuitMaxFailures is the default consecutive failures before the circuit opens.
	DefaultClientCircuitMaxFailures = 5

	// DefaultClientCircuitHalfOpenLimit is the default number of probes allowed while half-open.
	DefaultClientCircuitHalfOpenLimit = 1

	// DefaultTransportMaxIdleConns is the default max idle connections.
	DefaultTransportMaxIdleConns = 10

	// DefaultTransportMaxIdleConnsPerHost is the default max idle connections per host.
	DefaultTransportMaxIdleConnsPerHost = 2

	// DefaultLogFileMaxSizeMB is the default max log file size in megabytes.
	DefaultLogFileMaxSizeMB = 100

	// DefaultLogFileMaxBackups is the default number of old log files to retain.
	DefaultLogFileMaxBackups = 3

	// DefaultLogFileMaxAgeDays is the default max days to retain old log files.
	DefaultLogFileMaxAgeDays = 28

	// DefaultNewsPageSize is how many headlines are requested from the news API.
	DefaultNewsPageSize = 10

	// DefaultNewsLimit is how many distinct headlines a run posts at most.
	DefaultNewsLimit = 3
)

// Publish error policies.
const (
	// OnPublishErrorAbort stops the run at the first failed send.
	OnPublishErrorAbort = "abort"

	// OnPublishErrorContinue attempts every post and reports failures at the end.
	OnPublishErrorContinue = "continue"
)

// News providers.
const (
	ProviderNewsAPI = "newsapi"
	ProviderRSS     = "rss"
)

// Well-known secret variables read without the APP_ prefix.
var secretEnv = map[string]string{
	"TELEGRAM_BOT_TOKEN": "telegram.bot_token",
	"TELEGRAM_CHAT_ID":   "telegram.chat_id",
	"NEWS_API_KEY":       "news.api_key",
}

// Run switches with their own variables. The APP_ mapping turns every "_"
// into a key separator, so it cannot reach run.dry_run.
var switchEnv = map[string]string{
	"QUOTER_DRY_RUN":          "run.dry_run",
	"QUOTER_ON_PUBLISH_ERROR": "run.on_publish_error",
}

// Config is the root configuration structure.
type Config struct {
	App       AppConfig       `koanf:"app"       validate:"required"`
	Log       LogConfig       `koanf:"log"       validate:"required"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
	Metrics   MetricsConfig   `koanf:"metrics"`
	Client    ClientConfig    `koanf:"client"    validate:"required"`
	News      NewsConfig      `koanf:"news"      validate:"required"`
	Telegram  TelegramConfig  `koanf:"telegram"`
	Corpus    CorpusConfig    `koanf:"corpus"`
	Run       RunConfig       `koanf:"run"       validate:"required"`
}

// AppConfig contains application-level settings.
type AppConfig struct {
	Name        string `koanf:"name"        validate:"required"`
	Version     string `koanf:"version"     validate:"required"`
	Environment string `koanf:"environment" validate:"required,oneof=local dev qa prod test"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string        `koanf:"level"  validate:"required,oneof=trace debug info warn error"`
	Format string        `koanf:"format" validate:"required,oneof=json text pretty"`
	File   LogFileConfig `koanf:"file"`
}

// LogFileConfig contains rolling log file settings.
type LogFileConfig struct {
	Enabled    bool   `koanf:"enabled"`
	Path       string `koanf:"path"        validate:"required_if=Enabled true"`
	MaxSizeMB  int    `koanf:"max_size"    validate:"omitempty,min=1,max=1024"`
	MaxBackups int    `koanf:"max_backups" validate:"omitempty,min=0,max=100"`
	MaxAgeDays int    `koanf:"max_age"     validate:"omitempty,min=0,max=365"`
	Compress   bool   `koanf:"compress"`
}

// TelemetryConfig contains OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled      bool    `koanf:"enabled"`
	Endpoint     string  `koanf:"endpoint"      validate:"required_if=Enabled true"`
	Insecure     bool    `koanf:"insecure"`
	ServiceName  string  `koanf:"service_name"  validate:"required_if=Enabled true"`
	SamplingRate float64 `koanf:"sampling_rate" validate:"min=0,max=1"`
}

// MetricsConfig contains Prometheus Pushgateway settings.
// Metrics are pushed once at the end of a run; an empty URL disables pushing.
type MetricsConfig struct {
	PushgatewayURL string `koanf:"pushgateway_url" validate:"omitempty,url"`
	Job            string `koanf:"job"             validate:"required_with=PushgatewayURL"`
}

// ClientConfig contains HTTP client settings for downstream services.
type ClientConfig struct {
	Timeout        time.Duration        `koanf:"timeout"         validate:"required,min=100ms"`
	Retry          RetryConfig          `koanf:"retry"           validate:"required"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker" validate:"required"`
	Transport      TransportConfig      `koanf:"transport"       validate:"required"`
}

// RetryConfig contains retry settings for HTTP clients.
type RetryConfig struct {
	MaxAttempts     int           `koanf:"max_attempts"     validate:"required,min=1,max=10"`
	InitialInterval time.Duration `koanf:"initial_interval" validate:"required,min=10ms"`
	MaxInterval     time.Duration `koanf:"max_interval"     validate:"required,min=100ms"`
	Multiplier      float64       `koanf:"multiplier"       validate:"required,min=1.1,max=10"`
	JitterFactor    float64       `koanf:"jitter_factor"    validate:"min=0,max=1"`
}

// CircuitBreakerConfig contains circuit breaker settings for HTTP clients.
type CircuitBreakerConfig struct {
	MaxFailures   int           `koanf:"max_failures"    validate:"required,min=1"`
	Timeout       time.Duration `koanf:"timeout"         validate:"required,min=1s"`
	HalfOpenLimit int           `koanf:"half_open_limit" validate:"required,min=1"`
}

// TransportConfig contains HTTP transport pool settings.
type TransportConfig struct {
	MaxIdleConns        int           `koanf:"max_idle_conns"          validate:"required,min=1"`
	MaxIdleConnsPerHost int           `koanf:"max_idle_conns_per_host" validate:"required,min=1"`
	IdleConnTimeout     time.Duration `koanf:"idle_conn_timeout"       validate:"required,min=1s"`
}

// NewsConfig selects and configures the headline source.
type NewsConfig struct {
	Provider string `koanf:"provider"  validate:"required,oneof=newsapi rss"`
	BaseURL  string `koanf:"base_url"  validate:"required_if=Provider newsapi,omitempty,url"`
	APIKey   string `koanf:"api_key"   validate:"required_if=Provider newsapi"`
	Category string `koanf:"category"  validate:"required_if=Provider newsapi"`
	Language string `koanf:"language"  validate:"required_if=Provider newsapi"`
	PageSize int    `koanf:"page_size" validate:"min=1,max=100"`
	Limit    int    `koanf:"limit"     validate:"min=1,max=50"`
	FeedURL  string `koanf:"feed_url"  validate:"required_if=Provider rss,omitempty,url"`
}

// TelegramConfig contains Bot API settings.
// Credentials are only required when posts are actually sent.
type TelegramConfig struct {
	BaseURL        string  `koanf:"base_url"        validate:"required,url"`
	BotToken       string  `koanf:"bot_token"`
	ChatID         string  `koanf:"chat_id"`
	ParseMode      string  `koanf:"parse_mode"      validate:"required,oneof=Markdown MarkdownV2 HTML"`
	DisablePreview bool    `koanf:"disable_preview"`
	RatePerSecond  float64 `koanf:"rate_per_second" validate:"gt=0"`
}

// CorpusConfig points at an external quote file.
// An empty path uses the quotes bundled into the binary.
type CorpusConfig struct {
	Path string `koanf:"path"`
}

// RunConfig controls a single pipeline run.
type RunConfig struct {
	Timeout        time.Duration `koanf:"timeout"          validate:"required,min=1s"`
	DryRun         bool          `koanf:"dry_run"`
	Preflight      bool          `koanf:"preflight"`
	OnPublishError string        `koanf:"on_publish_error" validate:"required,oneof=abort continue"`
}

// defaults returns the default configuration values.
func defaults() map[string]any {
	return map[string]any{
		"app.name":        "headline-quoter",
		"app.version":     "dev",
		"app.environment": "local",

		"log.level":            "info",
		"log.format":           "json",
		"log.file.enabled":     false,
		"log.file.path":        "./logs/quoter.log",
		"log.file.max_size":    DefaultLogFileMaxSizeMB,
		"log.file.max_backups": DefaultLogFileMaxBackups,
		"log.file.max_age":     DefaultLogFileMaxAgeDays,
		"log.file.compress":    true,

		"telemetry.enabled":       false,
		"telemetry.endpoint":      "",
		"telemetry.insecure":      true,
		"telemetry.service_name":  "headline-quoter",
		"telemetry.sampling_rate": 1.0,

		"metrics.pushgateway_url": "",
		"metrics.job":             "headline-quoter",

		"client.timeout":                           "30s",
		"client.retry.max_attempts":                DefaultClientRetryMaxAttempts,
		"client.retry.initial_interval":            "500ms",
		"client.retry.max_interval":                "5s",
		"client.retry.multiplier":                  DefaultClientRetryMultiplier,
		"client.retry.jitter_factor":               DefaultClientRetryJitterFactor,
		"client.circuit_breaker.max_failures":      DefaultClientCircuitMaxFailures,
		"client.circuit_breaker.timeout":           "30s",
		"client.circuit_breaker.half_open_limit":   DefaultClientCircuitHalfOpenLimit,
		"client.transport.max_idle_conns":          DefaultTransportMaxIdleConns,
		"client.transport.max_idle_conns_per_host": DefaultTransportMaxIdleConnsPerHost,
		"client.transport.idle_conn_timeout":       "90s",

		"news.provider":  ProviderNewsAPI,
		"news.base_url":  "https://newsapi.org",
		"news.api_key":   "",
		"news.category":  "general",
		"news.language":  "en",
		"news.page_size": DefaultNewsPageSize,
		"news.limit":     DefaultNewsLimit,
		"news.feed_url":  "",

		"telegram.base_url":        "https://api.telegram.org",
		"telegram.bot_token":       "",
		"telegram.chat_id":         "",
		"telegram.parse_mode":      "Markdown",
		"telegram.disable_preview": true,
		"telegram.rate_per_second": 1.0,

		"corpus.path": "",

		"run.timeout":          "2m",
		"run.dry_run":          false,
		"run.preflight":        false,
		"run.on_publish_error": OnPublishErrorAbort,
	}
}

// Load loads configuration with the following precedence (highest to lowest):
//  1. TELEGRAM_BOT_TOKEN, TELEGRAM_CHAT_ID, NEWS_API_KEY and the QUOTER_ run switches
//  2. Environment variables (APP_ prefix)
//  3. Profile config file (configs/{profile}.yaml)
//  4. Base config file (configs/base.yaml)
//  5. Default values
func Load(profile string) (*Config, error) {
	return LoadFrom("configs", profile)
}

// LoadFrom is Load with an explicit config directory.
func LoadFrom(dir, profile string) (*Config, error) {
	k := koanf.New(".")

	// 1. Load defaults
	err := k.Load(confmap.Provider(defaults(), "."), nil)
	if err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	// 2. Load base config file if it exists
	err = loadFileIfExists(k, dir+"/base.yaml")
	if err != nil {
		return nil, fmt.Errorf("loading base config: %w", err)
	}

	// 3. Load profile config file if it exists
	if profile != "" {
		profilePath := fmt.Sprintf("%s/%s.yaml", dir, profile)

		err := loadFileIfExists(k, profilePath)
		if err != nil {
			return nil, fmt.Errorf("loading profile config %q: %w", profile, err)
		}
	}

	// 4. Load environment variables with APP_ prefix
	err = k.Load(env.Provider("APP_", ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "APP_")),
			"_",
			".",
		)
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	// 5. Secrets and run switches keep their conventional names
	err = k.Load(confmap.Provider(namedFromEnv(secretEnv), "."), nil)
	if err != nil {
		return nil, fmt.Errorf("loading secrets: %w", err)
	}

	err = k.Load(confmap.Provider(namedFromEnv(switchEnv), "."), nil)
	if err != nil {
		return nil, fmt.Errorf("loading run switches: %w", err)
	}

	// Unmarshal into Config struct
	var cfg Config

	err = k.Unmarshal("", &cfg)
	if err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return &cfg, nil
}

// namedFromEnv maps the variables in names that are set and non-empty to
// their config keys.
func namedFromEnv(names map[string]string) map[string]any {
	out := make(map[string]any, len(names))

	for name, key := range names {
		if v := os.Getenv(name); v != "" {
			out[key] = v
		}
	}

	return out
}

// loadFileIfExists loads a YAML config file if it exists.
// Returns nil if the file doesn't exist, error only for parse/read failures.
func loadFileIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil // File doesn't exist, that's fine
	}

	return k.Load(file.Provider(path), yaml.Parser())
}

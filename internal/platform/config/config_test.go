package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearSecrets blanks the well-known secret variables and run switches for
// the duration of a test.
func clearSecrets(t *testing.T) {
	t.Helper()

	for name := range secretEnv {
		t.Setenv(name, "")
	}

	for name := range switchEnv {
		t.Setenv(name, "")
	}
}

// TestLoad_DefaultValues tests that hardcoded defaults are applied correctly.
// This test doesn't depend on YAML files - it only tests the defaults() function.
func TestLoad_DefaultValues(t *testing.T) {
	clearSecrets(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "headline-quoter", cfg.App.Name)
	assert.Equal(t, "dev", cfg.App.Version)
	assert.Equal(t, "local", cfg.App.Environment)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, DefaultClientRetryMaxAttempts, cfg.Client.Retry.MaxAttempts)
	assert.Equal(t, DefaultClientCircuitMaxFailures, cfg.Client.CircuitBreaker.MaxFailures)
}

// TestLoad_NewsDefaults tests the headline request parameters.
func TestLoad_NewsDefaults(t *testing.T) {
	clearSecrets(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ProviderNewsAPI, cfg.News.Provider)
	assert.Equal(t, "https://newsapi.org", cfg.News.BaseURL)
	assert.Equal(t, "general", cfg.News.Category)
	assert.Equal(t, "en", cfg.News.Language)
	assert.Equal(t, DefaultNewsPageSize, cfg.News.PageSize)
	assert.Equal(t, DefaultNewsLimit, cfg.News.Limit)
	assert.Empty(t, cfg.News.APIKey)
}

// TestLoad_TelegramDefaults tests the Bot API defaults.
func TestLoad_TelegramDefaults(t *testing.T) {
	clearSecrets(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://api.telegram.org", cfg.Telegram.BaseURL)
	assert.Equal(t, "Markdown", cfg.Telegram.ParseMode)
	assert.True(t, cfg.Telegram.DisablePreview)
	assert.InDelta(t, 1.0, cfg.Telegram.RatePerSecond, 0)
}

// TestLoad_RunDefaults tests the run policy defaults.
func TestLoad_RunDefaults(t *testing.T) {
	clearSecrets(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 2*time.Minute, cfg.Run.Timeout)
	assert.False(t, cfg.Run.DryRun)
	assert.Equal(t, OnPublishErrorAbort, cfg.Run.OnPublishError)
	assert.Empty(t, cfg.Corpus.Path)
}

// TestLoad_SecretEnvVars tests that the conventional secret names are honoured.
func TestLoad_SecretEnvVars(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123456:ABCdef")
	t.Setenv("TELEGRAM_CHAT_ID", "@channel")
	t.Setenv("NEWS_API_KEY", "news-key")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "123456:ABCdef", cfg.Telegram.BotToken)
	assert.Equal(t, "@channel", cfg.Telegram.ChatID)
	assert.Equal(t, "news-key", cfg.News.APIKey)
}

// TestLoad_EnvVarOverrides tests that environment variables override defaults.
func TestLoad_EnvVarOverrides(t *testing.T) {
	clearSecrets(t)
	t.Setenv("APP_LOG_LEVEL", "warn")
	t.Setenv("APP_NEWS_LIMIT", "5")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 5, cfg.News.Limit)
}

// TestLoad_BoolEnvVar tests that boolean environment variables are parsed correctly.
func TestLoad_BoolEnvVar(t *testing.T) {
	clearSecrets(t)
	t.Setenv("APP_TELEMETRY_ENABLED", "true")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.True(t, cfg.Telemetry.Enabled)
}

// TestLoad_RunSwitchEnvVars tests the dedicated run switch variables.
func TestLoad_RunSwitchEnvVars(t *testing.T) {
	clearSecrets(t)
	t.Setenv("QUOTER_DRY_RUN", "true")
	t.Setenv("QUOTER_ON_PUBLISH_ERROR", OnPublishErrorContinue)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.True(t, cfg.Run.DryRun)
	assert.Equal(t, OnPublishErrorContinue, cfg.Run.OnPublishError)
}

// TestLoadFrom_DryRunEnvOverridesProfile tests that QUOTER_DRY_RUN=false
// switches off a dry run set in a profile file.
func TestLoadFrom_DryRunEnvOverridesProfile(t *testing.T) {
	clearSecrets(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "base.yaml"), []byte("run:\n  dry_run: true\n"), 0o600))

	t.Setenv("QUOTER_DRY_RUN", "false")

	cfg, err := LoadFrom(dir, "")
	require.NoError(t, err)

	assert.False(t, cfg.Run.DryRun)
}

// TestLoadFrom_LocalProfileRequiresCredentials tests that the shipped default
// profile publishes for real and so fails fast without Telegram credentials.
func TestLoadFrom_LocalProfileRequiresCredentials(t *testing.T) {
	clearSecrets(t)
	t.Setenv("NEWS_API_KEY", "news-key")

	cfg, err := LoadFrom(filepath.Join("..", "..", "..", "configs"), "local")
	require.NoError(t, err)

	assert.False(t, cfg.Run.DryRun)

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "telegram.bot_token is required")
	assert.Contains(t, err.Error(), "telegram.chat_id is required")
}

// TestLoad_NonExistentProfile tests that a missing profile file doesn't cause errors.
func TestLoad_NonExistentProfile(t *testing.T) {
	clearSecrets(t)

	cfg, err := Load("nonexistent")
	require.NoError(t, err)

	assert.Equal(t, "headline-quoter", cfg.App.Name)
}

// TestLoadFrom_ProfileOverridesBase tests YAML layering.
func TestLoadFrom_ProfileOverridesBase(t *testing.T) {
	clearSecrets(t)
	dir := t.TempDir()

	base := "news:\n  limit: 2\nrun:\n  dry_run: true\n"
	prod := "news:\n  limit: 1\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "base.yaml"), []byte(base), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "prod.yaml"), []byte(prod), 0o600))

	cfg, err := LoadFrom(dir, "prod")
	require.NoError(t, err)

	assert.Equal(t, 1, cfg.News.Limit)
	assert.True(t, cfg.Run.DryRun)
}

// TestLoadFrom_MalformedYAML tests that a broken config file is reported.
func TestLoadFrom_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "base.yaml"), []byte("news: [unclosed"), 0o600))

	_, err := LoadFrom(dir, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading base config")
}

// TestLoad_DurationParsing tests that duration strings are parsed correctly.
func TestLoad_DurationParsing(t *testing.T) {
	clearSecrets(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 500*time.Millisecond, cfg.Client.Retry.InitialInterval)
	assert.Equal(t, 5*time.Second, cfg.Client.Retry.MaxInterval)
	assert.Equal(t, 30*time.Second, cfg.Client.Timeout)
	assert.Equal(t, 90*time.Second, cfg.Client.Transport.IdleConnTimeout)
}

// TestDefaults tests that the defaults map contains expected values.
func TestDefaults(t *testing.T) {
	d := defaults()

	assert.Equal(t, "headline-quoter", d["app.name"])
	assert.Equal(t, "local", d["app.environment"])
	assert.Equal(t, ProviderNewsAPI, d["news.provider"])
	assert.Equal(t, DefaultNewsLimit, d["news.limit"])
	assert.Equal(t, OnPublishErrorAbort, d["run.on_publish_error"])
}

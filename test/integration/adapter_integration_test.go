//go:build integration

package integration

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/headline-quoter/internal/adapters/clients"
	"github.com/jsamuelsen/headline-quoter/internal/adapters/clients/acl"
	"github.com/jsamuelsen/headline-quoter/internal/domain"
	"github.com/jsamuelsen/headline-quoter/internal/platform/config"
)

const adapterToken = "987654321:AAHadapterTOKENadapterTOKENadapter"

// testAdapterConfig returns a config suitable for adapter integration testing.
func testAdapterConfig(baseURL, service string) *clients.Config {
	return &clients.Config{
		ServiceName: service,
		BaseURL:     baseURL,
		Timeout:     5 * time.Second,
		Retry: config.RetryConfig{
			MaxAttempts:     2,
			InitialInterval: 10 * time.Millisecond,
			MaxInterval:     50 * time.Millisecond,
			Multiplier:      2.0,
		},
		Circuit: config.CircuitBreakerConfig{
			MaxFailures:   3,
			Timeout:       100 * time.Millisecond,
			HalfOpenLimit: 2,
		},
	}
}

func newNewsAPI(t *testing.T, baseURL string) *acl.NewsAPIClient {
	t.Helper()

	cfg := testAdapterConfig(baseURL, "news")
	cfg.AuthFunc = acl.NewsAPIKeyAuth("integration-key")

	client, err := clients.New(cfg)
	require.NoError(t, err)

	return acl.NewNewsAPIClient(acl.NewsAPIClientConfig{
		Client:   client,
		Category: "general",
		Language: "en",
		PageSize: 10,
	})
}

func newTelegram(t *testing.T, baseURL string, rps float64) *acl.TelegramClient {
	t.Helper()

	cfg := testAdapterConfig(baseURL, "telegram")
	cfg.RedactURL = acl.RedactBotToken

	client, err := clients.New(cfg)
	require.NoError(t, err)

	return acl.NewTelegramClient(acl.TelegramClientConfig{
		Client:         client,
		BotToken:       adapterToken,
		ParseMode:      "Markdown",
		DisablePreview: true,
		RatePerSecond:  rps,
	})
}

// TestNewsAPIClient_TopHeadlines_Integration verifies the request shape and
// the translation of a full page.
func TestNewsAPIClient_TopHeadlines_Integration(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/top-headlines", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)

		q := r.URL.Query()
		assert.Equal(t, "general", q.Get("category"))
		assert.Equal(t, "en", q.Get("language"))
		assert.Equal(t, "10", q.Get("pageSize"))
		assert.Equal(t, "integration-key", q.Get("apiKey"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"status": "ok",
			"totalResults": 3,
			"articles": [
				{"source": {"id": null, "name": "Wire"}, "title": "Bread shortages", "description": "<p>Queues &amp; <b>anger</b></p>", "url": "https://example.com/bread"},
				{"source": {"id": null, "name": "Wire"}, "title": "[Removed]", "description": "[Removed]", "url": "https://removed.com"},
				{"source": {"id": null, "name": "Wire"}, "title": "Harvest fails", "description": null, "url": "https://example.com/harvest"}
			]
		}`)
	}))
	defer server.Close()

	articles, err := newNewsAPI(t, server.URL).TopHeadlines(context.Background())

	require.NoError(t, err)
	require.NotEmpty(t, articles)
	assert.Equal(t, "Bread shortages", articles[0].Title)
	assert.Equal(t, "Queues & anger", articles[0].Description)

	for _, a := range articles {
		assert.NotEqual(t, "[Removed]", a.Title)
	}
}

// TestNewsAPIClient_ErrorMapping verifies upstream failures become domain errors.
func TestNewsAPIClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(error) bool
	}{
		{
			name:   "invalid key",
			status: http.StatusUnauthorized,
			body:   `{"status":"error","code":"apiKeyInvalid","message":"Your API key is invalid."}`,
			check:  domain.IsForbidden,
		},
		{
			name:   "rate limited",
			status: http.StatusTooManyRequests,
			body:   `{"status":"error","code":"rateLimited","message":"Too many requests."}`,
			check:  domain.IsUnavailable,
		},
		{
			name:   "bad parameter",
			status: http.StatusBadRequest,
			body:   `{"status":"error","code":"parameterInvalid","message":"bad category"}`,
			check:  domain.IsValidation,
		},
		{
			name:   "not json",
			status: http.StatusOK,
			body:   `<html>maintenance</html>`,
			check:  domain.IsMalformed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer server.Close()

			_, err := newNewsAPI(t, server.URL).TopHeadlines(context.Background())

			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error: %v", err)
			assert.NotContains(t, err.Error(), "integration-key")
		})
	}
}

// TestNewsAPIClient_OutageOpensCircuit verifies that repeated server errors
// open the breaker and later calls fail fast as unavailable.
func TestNewsAPIClient_OutageOpensCircuit(t *testing.T) {
	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	news := newNewsAPI(t, server.URL)

	for range 3 {
		_, err := news.TopHeadlines(context.Background())
		require.Error(t, err)
		assert.True(t, domain.IsUnavailable(err))
	}

	before := calls.Load()

	_, err := news.TopHeadlines(context.Background())

	require.Error(t, err)
	assert.True(t, domain.IsUnavailable(err))
	assert.Equal(t, before, calls.Load(), "no upstream call while the circuit is open")
}

// TestTelegramClient_Publish_Integration verifies the sendMessage request.
func TestTelegramClient_Publish_Integration(t *testing.T) {
	var body string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bot"+adapterToken+"/sendMessage", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		raw, _ := io.ReadAll(r.Body)
		body = string(raw)

		_, _ = io.WriteString(w, `{"ok":true,"result":{"message_id":7}}`)
	}))
	defer server.Close()

	err := newTelegram(t, server.URL, 0).Publish(context.Background(), "-100123", "🗞 *Bread*")

	require.NoError(t, err)
	assert.JSONEq(t, `{
		"chat_id": "-100123",
		"text": "🗞 *Bread*",
		"parse_mode": "Markdown",
		"disable_web_page_preview": true
	}`, body)
}

// TestTelegramClient_RateLimited verifies a 429 carries the retry hint and
// the token never shows up in the error.
func TestTelegramClient_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = io.WriteString(w, `{"ok":false,"error_code":429,"description":"Too Many Requests: retry after 5","parameters":{"retry_after":5}}`)
	}))
	defer server.Close()

	err := newTelegram(t, server.URL, 0).Publish(context.Background(), "-100123", "text")

	require.Error(t, err)
	assert.True(t, domain.IsUnavailable(err))

	var unavailable *domain.UnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, 5*time.Second, unavailable.RetryAfter)
	assert.NotContains(t, err.Error(), adapterToken)
}

// TestTelegramClient_UnreachableHostHidesToken verifies transport errors do
// not carry the bot token in the request URL.
func TestTelegramClient_UnreachableHostHidesToken(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	err := newTelegram(t, url, 0).Publish(context.Background(), "-100123", "text")

	require.Error(t, err)
	assert.NotContains(t, err.Error(), adapterToken)
}

// TestTelegramClient_PacesSends verifies consecutive sends respect the rate.
func TestTelegramClient_PacesSends(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"ok":true,"result":{"message_id":1}}`)
	}))
	defer server.Close()

	tg := newTelegram(t, server.URL, 10) // one send per 100ms

	start := time.Now()

	for range 3 {
		require.NoError(t, tg.Publish(context.Background(), "-100123", "text"))
	}

	assert.GreaterOrEqual(t, time.Since(start), 180*time.Millisecond)
}

// TestTelegramClient_Check_Integration verifies getMe is used as the health probe.
func TestTelegramClient_Check_Integration(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bot"+adapterToken+"/getMe" {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		_, _ = io.WriteString(w, `{"ok":true,"result":{"id":1,"is_bot":true,"username":"quoter_bot"}}`)
	}))
	defer server.Close()

	tg := newTelegram(t, server.URL, 0)

	assert.Equal(t, "telegram", tg.Name())
	assert.NoError(t, tg.Check(context.Background()))
}

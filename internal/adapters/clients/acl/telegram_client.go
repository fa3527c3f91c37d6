package acl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"

	"golang.org/x/time/rate"

	"github.com/jsamuelsen/headline-quoter/internal/adapters/clients"
	"github.com/jsamuelsen/headline-quoter/internal/domain"
	"github.com/jsamuelsen/headline-quoter/internal/platform/logging"
)

const telegramServiceName = "telegram"

var botPathPattern = regexp.MustCompile(`/bot[^/]+/`)

// RedactBotToken renders a Telegram URL with the token removed from the path.
// Use it as clients.Config.RedactURL for the Telegram client.
func RedactBotToken(u *url.URL) string {
	clean := *u
	clean.RawQuery = ""
	clean.User = nil
	clean.Path = botPathPattern.ReplaceAllString(clean.Path, "/botREDACTED/")
	clean.RawPath = ""

	return clean.String()
}

// TelegramClientConfig contains configuration for the Telegram adapter.
type TelegramClientConfig struct {
	// Client is the HTTP client to use for requests.
	// The client's BaseURL should be set to the Bot API host.
	Client *clients.Client

	BotToken       string
	ParseMode      string
	DisablePreview bool

	// RatePerSecond paces sends. Zero or less disables pacing.
	RatePerSecond float64

	// Logger is the structured logger.
	Logger *slog.Logger
}

// TelegramClient implements ports.Publisher and ports.HealthChecker
// against the Telegram Bot API.
type TelegramClient struct {
	BaseAdapter

	token          string
	parseMode      string
	disablePreview bool
	limiter        *rate.Limiter
	logger         *slog.Logger
}

// NewTelegramClient creates a Telegram adapter.
// Panics if Client is nil. Defaults logger to slog.Default() if nil.
func NewTelegramClient(cfg TelegramClientConfig) *TelegramClient {
	if cfg.Client == nil {
		panic("TelegramClient: Client is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}

	return &TelegramClient{
		BaseAdapter:    NewBaseAdapter(cfg.Client, telegramServiceName),
		token:          cfg.BotToken,
		parseMode:      cfg.ParseMode,
		disablePreview: cfg.DisablePreview,
		limiter:        rate.NewLimiter(limit, 1),
		logger:         logger,
	}
}

// sendMessageRequest is the external DTO for sendMessage.
type sendMessageRequest struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode,omitempty"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

// apiResponse is the envelope of every Bot API reply.
type apiResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result"`
	ErrorCode   int             `json:"error_code"`
	Description string          `json:"description"`
}

type sentMessage struct {
	MessageID int64 `json:"message_id"`
}

type botUser struct {
	ID       int64  `json:"id"`
	IsBot    bool   `json:"is_bot"`
	Username string `json:"username"`
}

// Publish sends text to chatID.
// Implements ports.Publisher.
func (c *TelegramClient) Publish(ctx context.Context, chatID, text string) error {
	const operation = "send message"

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("waiting for send slot: %w", err)
	}

	payload, err := json.Marshal(sendMessageRequest{
		ChatID:                chatID,
		Text:                  text,
		ParseMode:             c.parseMode,
		DisableWebPagePreview: c.disablePreview,
	})
	if err != nil {
		return fmt.Errorf("encoding message: %w", err)
	}

	c.logger.Log(ctx, logging.LevelTrace, "starting request", slog.String("method", "sendMessage"))

	body, err := c.Post(ctx, c.methodPath("sendMessage"), bytes.NewReader(payload), operation)
	if err != nil {
		return err
	}

	resp, err := DecodeResponse[apiResponse](body)
	if err != nil {
		return domain.NewMalformedError(c.ServiceName(), err.Error())
	}

	if !resp.OK {
		return domain.NewValidationError("", resp.Description)
	}

	var msg sentMessage
	if len(resp.Result) > 0 {
		if err := json.Unmarshal(resp.Result, &msg); err != nil {
			return domain.NewMalformedError(c.ServiceName(), err.Error())
		}
	}

	c.logger.DebugContext(ctx, "message sent", slog.Int64("message_id", msg.MessageID))

	return nil
}

// Name implements ports.HealthChecker.
func (c *TelegramClient) Name() string {
	return c.ServiceName()
}

// Check verifies the bot token with getMe.
// Implements ports.HealthChecker.
func (c *TelegramClient) Check(ctx context.Context) error {
	body, err := c.Get(ctx, c.methodPath("getMe"), "verify bot token")
	if err != nil {
		return err
	}

	resp, err := DecodeResponse[apiResponse](body)
	if err != nil {
		return domain.NewMalformedError(c.ServiceName(), err.Error())
	}

	if !resp.OK {
		return domain.NewForbiddenError("verify bot token", resp.Description)
	}

	var me botUser
	if err := json.Unmarshal(resp.Result, &me); err != nil {
		return domain.NewMalformedError(c.ServiceName(), err.Error())
	}

	c.logger.DebugContext(ctx, "bot token verified", slog.String("bot", me.Username))

	return nil
}

// methodPath builds the Bot API path. The token is added here, at the last step.
func (c *TelegramClient) methodPath(method string) string {
	return "/bot" + c.token + "/" + method
}

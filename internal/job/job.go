// Package job assembles one run of the quoter from configuration: the
// corpus, the upstream adapters, the pipeline and the run metrics.
package job

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/jsamuelsen/headline-quoter/internal/adapters/clients"
	"github.com/jsamuelsen/headline-quoter/internal/adapters/clients/acl"
	"github.com/jsamuelsen/headline-quoter/internal/adapters/corpus"
	"github.com/jsamuelsen/headline-quoter/internal/adapters/publisher"
	"github.com/jsamuelsen/headline-quoter/internal/app"
	"github.com/jsamuelsen/headline-quoter/internal/platform/config"
	"github.com/jsamuelsen/headline-quoter/internal/platform/logging"
	"github.com/jsamuelsen/headline-quoter/internal/platform/metrics"
	"github.com/jsamuelsen/headline-quoter/internal/platform/telemetry"
	"github.com/jsamuelsen/headline-quoter/internal/ports"
)

const (
	newsServiceName     = "news"
	telegramServiceName = "telegram"

	// pushTimeout bounds the metrics push, which runs after the run context ends.
	pushTimeout = 10 * time.Second
)

// ErrPreflight is returned when a dependency fails its health check before
// anything is fetched.
var ErrPreflight = errors.New("preflight failed")

// Job is a fully wired run.
type Job struct {
	cfg      *config.Config
	logger   *slog.Logger
	pipeline *app.Pipeline
	health   *ports.HealthRegistry
	metrics  *metrics.RunMetrics
}

// New wires a job. Any error here is a startup error: nothing has been
// fetched or sent yet.
func New(cfg *config.Config, logger *slog.Logger) (*Job, error) {
	if logger == nil {
		logger = slog.Default()
	}

	// 1. Quotes (startup-fatal)
	quotes, err := corpus.Load(cfg.Corpus.Path)
	if err != nil {
		return nil, fmt.Errorf("loading quotes: %w", err)
	}

	logger.Info("quotes loaded",
		slog.Int("count", quotes.Len()),
		slog.Bool("embedded", cfg.Corpus.Path == ""),
	)

	// 2. Health registry for preflight
	health := ports.NewHealthRegistry()

	// 3. News source (ACL)
	source, err := newSource(cfg, logger)
	if err != nil {
		return nil, err
	}

	// 4. Publisher (ACL, or a log-only stand-in for dry runs)
	pub, checker, err := newPublisher(cfg, logger)
	if err != nil {
		return nil, err
	}

	if err := health.Register(checker); err != nil {
		return nil, fmt.Errorf("registering %s health check: %w", checker.Name(), err)
	}

	// 5. Run metrics
	runMetrics := metrics.New()

	// 6. Application layer
	pipeline := app.NewPipeline(app.PipelineConfig{
		Headlines: app.NewHeadlineService(app.HeadlineServiceConfig{
			Source: source,
			Limit:  cfg.News.Limit,
		}),
		Matcher:        app.NewQuoteMatcher(quotes),
		Publisher:      pub,
		ChatID:         cfg.Telegram.ChatID,
		OnPublishError: app.PublishErrorPolicy(cfg.Run.OnPublishError),
		Recorder:       runMetrics,
	})

	return &Job{
		cfg:      cfg,
		logger:   logger,
		pipeline: pipeline,
		health:   health,
		metrics:  runMetrics,
	}, nil
}

// Run executes one pass under run.timeout and returns its summary.
// The summary is never nil.
func (j *Job) Run(ctx context.Context) (*app.RunSummary, error) {
	runID := uuid.NewString()

	ctx = logging.WithRunID(logging.WithContext(ctx, j.logger), runID)

	ctx, cancel := context.WithTimeout(ctx, j.cfg.Run.Timeout)
	defer cancel()

	ctx, endSpan := telemetry.StartRun(ctx, runID, j.cfg.Run.DryRun)
	if traceID := telemetry.TraceID(ctx); traceID != "" {
		ctx = logging.WithTraceID(ctx, traceID)
	}

	logger := logging.FromContext(ctx)
	logger.InfoContext(ctx, "run started",
		slog.Bool("dry_run", j.cfg.Run.DryRun),
		slog.String("on_publish_error", j.cfg.Run.OnPublishError),
		slog.Duration("timeout", j.cfg.Run.Timeout),
	)

	summary, err := j.run(ctx)

	endSpan(err)
	j.metrics.RunFinished(summary.Duration, err)
	j.pushMetrics(ctx)

	if err != nil {
		logger.ErrorContext(ctx, "run failed",
			slog.Int("published", summary.Published),
			slog.Int("failed", summary.Failed),
			slog.Int("skipped", summary.Skipped),
			slog.Any("error", err),
		)

		return summary, err
	}

	logger.InfoContext(ctx, "run succeeded",
		slog.Int("published", summary.Published),
		slog.Duration("duration", summary.Duration),
	)

	return summary, nil
}

func (j *Job) run(ctx context.Context) (*app.RunSummary, error) {
	if j.cfg.Run.Preflight {
		start := time.Now()

		result := j.health.CheckAll(ctx)
		if err := result.Err(); err != nil {
			return &app.RunSummary{Duration: time.Since(start)}, fmt.Errorf("%w: %w", ErrPreflight, err)
		}

		logging.FromContext(ctx).InfoContext(ctx, "preflight passed", slog.Int("checks", len(result.Checks)))
	}

	return j.pipeline.Run(ctx)
}

// pushMetrics sends the registry to the Pushgateway when one is configured.
// A failed push is logged and does not change the outcome of the run.
func (j *Job) pushMetrics(ctx context.Context) {
	if j.cfg.Metrics.PushgatewayURL == "" {
		return
	}

	pushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), pushTimeout)
	defer cancel()

	if err := j.metrics.Push(pushCtx, j.cfg.Metrics.PushgatewayURL, j.cfg.Metrics.Job); err != nil {
		logging.FromContext(ctx).WarnContext(ctx, "metrics push failed", slog.Any("error", err))
	}
}

func newClient(
	cfg *config.Config, logger *slog.Logger, baseURL, service string, auth func(*http.Request),
) (*clients.Client, error) {
	clientCfg := &clients.Config{
		BaseURL:     baseURL,
		ServiceName: service,
		Timeout:     cfg.Client.Timeout,
		Retry:       cfg.Client.Retry,
		Circuit:     cfg.Client.CircuitBreaker,
		Transport:   cfg.Client.Transport,
		AuthFunc:    auth,
		Logger:      logger,
	}

	if service == telegramServiceName {
		clientCfg.RedactURL = acl.RedactBotToken
	}

	client, err := clients.New(clientCfg)
	if err != nil {
		return nil, fmt.Errorf("creating %s client: %w", service, err)
	}

	return client, nil
}

func newSource(cfg *config.Config, logger *slog.Logger) (ports.NewsSource, error) {
	switch cfg.News.Provider {
	case config.ProviderRSS:
		base, path, err := acl.SplitFeedURL(cfg.News.FeedURL)
		if err != nil {
			return nil, fmt.Errorf("news.feed_url: %w", err)
		}

		client, err := newClient(cfg, logger, base, newsServiceName, nil)
		if err != nil {
			return nil, err
		}

		return acl.NewRSSClient(acl.RSSClientConfig{
			Client:   client,
			FeedPath: path,
			MaxItems: cfg.News.PageSize,
			Logger:   logger,
		}), nil

	case config.ProviderNewsAPI:
		client, err := newClient(cfg, logger, cfg.News.BaseURL, newsServiceName, acl.NewsAPIKeyAuth(cfg.News.APIKey))
		if err != nil {
			return nil, err
		}

		return acl.NewNewsAPIClient(acl.NewsAPIClientConfig{
			Client:   client,
			Category: cfg.News.Category,
			Language: cfg.News.Language,
			PageSize: cfg.News.PageSize,
			Logger:   logger,
		}), nil

	default:
		return nil, fmt.Errorf("unknown news provider %q", cfg.News.Provider)
	}
}

// publisherChecker is a publisher that can also be probed before the run.
type publisherChecker interface {
	ports.Publisher
	ports.HealthChecker
}

func newPublisher(cfg *config.Config, logger *slog.Logger) (ports.Publisher, ports.HealthChecker, error) {
	var pub publisherChecker

	if cfg.Run.DryRun {
		pub = publisher.NewLogPublisher()
	} else {
		client, err := newClient(cfg, logger, cfg.Telegram.BaseURL, telegramServiceName, nil)
		if err != nil {
			return nil, nil, err
		}

		pub = acl.NewTelegramClient(acl.TelegramClientConfig{
			Client:         client,
			BotToken:       cfg.Telegram.BotToken,
			ParseMode:      cfg.Telegram.ParseMode,
			DisablePreview: cfg.Telegram.DisablePreview,
			RatePerSecond:  cfg.Telegram.RatePerSecond,
			Logger:         logger,
		})
	}

	return pub, pub, nil
}

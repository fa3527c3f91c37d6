package acl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/mmcdole/gofeed"

	"github.com/jsamuelsen/headline-quoter/internal/adapters/clients"
	"github.com/jsamuelsen/headline-quoter/internal/domain"
	"github.com/jsamuelsen/headline-quoter/internal/platform/logging"
)

const rssServiceName = "rss"

// RSSClientConfig contains configuration for the feed adapter.
type RSSClientConfig struct {
	// Client is the HTTP client to use for requests.
	// Its BaseURL should be the feed's scheme and host; see SplitFeedURL.
	Client *clients.Client

	// FeedPath is the request URI of the feed on that host.
	FeedPath string

	// MaxItems caps how many feed items are translated. Zero means all.
	MaxItems int

	// Logger is the structured logger.
	Logger *slog.Logger
}

// RSSClient implements ports.NewsSource over an RSS or Atom feed.
type RSSClient struct {
	BaseAdapter

	path     string
	maxItems int
	parser   *gofeed.Parser
	logger   *slog.Logger
}

// NewRSSClient creates a feed adapter.
// Panics if Client is nil. Defaults logger to slog.Default() if nil.
func NewRSSClient(cfg RSSClientConfig) *RSSClient {
	if cfg.Client == nil {
		panic("RSSClient: Client is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	path := cfg.FeedPath
	if path == "" {
		path = "/"
	}

	return &RSSClient{
		BaseAdapter: NewBaseAdapter(cfg.Client, rssServiceName),
		path:        path,
		maxItems:    cfg.MaxItems,
		parser:      gofeed.NewParser(),
		logger:      logger,
	}
}

// SplitFeedURL splits a feed URL into the client base URL and the request path.
func SplitFeedURL(feedURL string) (base, path string, err error) {
	u, err := url.Parse(feedURL)
	if err != nil {
		return "", "", fmt.Errorf("parsing feed url: %w", err)
	}

	if u.Scheme == "" || u.Host == "" {
		return "", "", errors.New("feed url must be absolute")
	}

	return u.Scheme + "://" + u.Host, u.RequestURI(), nil
}

// TopHeadlines fetches the feed and returns its leading items as articles.
// Implements ports.NewsSource.
func (c *RSSClient) TopHeadlines(ctx context.Context) ([]domain.Article, error) {
	c.logger.Log(ctx, logging.LevelTrace, "starting request", slog.String("path", c.path))

	body, err := c.Get(ctx, c.path, "fetch feed")
	if err != nil {
		return nil, err
	}
	defer func() { _ = body.Close() }()

	feed, err := c.parser.Parse(body)
	if err != nil {
		return nil, domain.NewMalformedError(c.ServiceName(), err.Error())
	}

	items := feed.Items
	if c.maxItems > 0 && len(items) > c.maxItems {
		items = items[:c.maxItems]
	}

	articles, err := TranslateSlice(items, translateFeedItem)
	if err != nil {
		return nil, err
	}

	c.logger.Log(ctx, logging.LevelTrace, "request complete",
		slog.String("feed", feed.Title),
		slog.Int("articles", len(articles)),
	)

	return articles, nil
}

// translateFeedItem converts a feed item to a domain Article.
// The title is kept as parsed. Description is preferred over full content,
// and is reduced to plain text.
func translateFeedItem(item **gofeed.Item) (*domain.Article, error) {
	it := *item
	if it == nil {
		return nil, domain.NewValidationError("item", "is nil")
	}

	description := it.Description
	if description == "" {
		description = it.Content
	}

	return &domain.Article{
		Title:       it.Title,
		Description: PlainText(description),
		URL:         it.Link,
	}, nil
}

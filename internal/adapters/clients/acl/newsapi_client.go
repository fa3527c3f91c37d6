package acl

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jsamuelsen/headline-quoter/internal/adapters/clients"
	"github.com/jsamuelsen/headline-quoter/internal/domain"
	"github.com/jsamuelsen/headline-quoter/internal/platform/logging"
)

const (
	newsAPIServiceName  = "newsapi"
	topHeadlinesPath    = "/v2/top-headlines"
	newsAPIStatusOK     = "ok"
	newsAPIKeyParam     = "apiKey"
	removedArticleTitle = "[Removed]"
)

// NewsAPIClientConfig contains configuration for the NewsAPI adapter.
type NewsAPIClientConfig struct {
	// Client is the HTTP client to use for requests.
	// The client's BaseURL should be set to the NewsAPI host and its
	// AuthFunc to NewsAPIKeyAuth.
	Client *clients.Client

	Category string
	Language string
	PageSize int

	// Logger is the structured logger.
	Logger *slog.Logger
}

// NewsAPIKeyAuth returns a clients.Config AuthFunc that adds the API key as
// the apiKey query parameter. The client applies it to every attempt, and
// its default span URL drops the query string.
func NewsAPIKeyAuth(apiKey string) func(*http.Request) {
	return func(req *http.Request) {
		q := req.URL.Query()
		q.Set(newsAPIKeyParam, apiKey)
		req.URL.RawQuery = q.Encode()
	}
}

// NewsAPIClient implements ports.NewsSource against newsapi.org.
type NewsAPIClient struct {
	BaseAdapter

	category string
	language string
	pageSize int
	logger   *slog.Logger
}

// NewNewsAPIClient creates a NewsAPI adapter.
// Panics if Client is nil. Defaults logger to slog.Default() if nil.
func NewNewsAPIClient(cfg NewsAPIClientConfig) *NewsAPIClient {
	if cfg.Client == nil {
		panic("NewsAPIClient: Client is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &NewsAPIClient{
		BaseAdapter: NewBaseAdapter(cfg.Client, newsAPIServiceName),
		category:    cfg.Category,
		language:    cfg.Language,
		pageSize:    cfg.PageSize,
		logger:      logger,
	}
}

// newsAPIResponse is the external DTO for /v2/top-headlines.
type newsAPIResponse struct {
	Status       string           `json:"status"`
	TotalResults int              `json:"totalResults"`
	Articles     []newsAPIArticle `json:"articles"`
	Code         string           `json:"code"`
	Message      string           `json:"message"`
}

type newsAPIArticle struct {
	Source struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"source"`
	Author      string `json:"author"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}

// TopHeadlines fetches one page of top headlines.
// Implements ports.NewsSource.
func (c *NewsAPIClient) TopHeadlines(ctx context.Context) ([]domain.Article, error) {
	const operation = "fetch top headlines"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	c.logger.Log(ctx, logging.LevelTrace, "starting request", slog.String("path", topHeadlinesPath))
	c.logger.DebugContext(ctx, "fetching top headlines",
		slog.String("category", c.category),
		slog.Int("page_size", c.pageSize),
	)

	body, err := c.DoRequest(ctx, req, operation)
	if err != nil {
		return nil, err
	}

	resp, err := DecodeResponse[newsAPIResponse](body)
	if err != nil {
		return nil, domain.NewMalformedError(c.ServiceName(), err.Error())
	}

	if resp.Status != newsAPIStatusOK {
		return nil, MapExternalCode(resp.Code, resp.Message, c.ServiceName(), operation, 0)
	}

	articles, err := TranslateSlice(resp.Articles, c.translateArticle)
	if err != nil {
		return nil, err
	}

	c.logger.Log(ctx, logging.LevelTrace, "request complete",
		slog.Int("total_results", resp.TotalResults),
		slog.Int("articles", len(articles)),
	)

	return articles, nil
}

// requestURL builds the top-headlines URL. The key is added by the client.
func (c *NewsAPIClient) requestURL() string {
	q := url.Values{}
	q.Set("category", c.category)
	q.Set("language", c.language)
	q.Set("pageSize", strconv.Itoa(c.pageSize))

	return c.Client().URL(topHeadlinesPath + "?" + q.Encode())
}

// translateArticle converts the external DTO to a domain Article.
// The title is kept verbatim; the description is reduced to plain text.
// Articles NewsAPI has taken down are rejected.
func (c *NewsAPIClient) translateArticle(ext *newsAPIArticle) (*domain.Article, error) {
	if ext.Title == removedArticleTitle {
		return nil, domain.NewValidationError("title", "article removed upstream")
	}

	return &domain.Article{
		Title:       ext.Title,
		Description: PlainText(ext.Description),
		URL:         ext.URL,
	}, nil
}

// Package app contains the use cases of a run: choosing headlines, matching
// quotes, formatting posts and driving them through the publisher.
//
// Application Layer Responsibilities:
//   - Orchestrate the run (fetch, then match/format/publish per article)
//   - Enforce the business rules that span entities (dedup, caps, policies)
//   - Handle cross-cutting concerns (logging, run metrics)
//
// What does NOT belong here:
//   - HTTP specifics and upstream DTOs (that's adapters)
//   - Vectorization math (that's domain/similarity)
package app

import (
	"context"
	"log/slog"

	"github.com/jsamuelsen/headline-quoter/internal/domain"
	"github.com/jsamuelsen/headline-quoter/internal/platform/logging"
	"github.com/jsamuelsen/headline-quoter/internal/ports"
)

// DefaultHeadlineLimit is the number of articles a run processes at most.
const DefaultHeadlineLimit = 3

// HeadlineServiceConfig contains configuration for the headline service.
type HeadlineServiceConfig struct {
	Source ports.NewsSource

	// Limit caps the number of returned articles. Zero means DefaultHeadlineLimit.
	Limit int
}

// HeadlineService turns a raw upstream page into the articles a run processes.
type HeadlineService struct {
	source ports.NewsSource
	limit  int
}

// NewHeadlineService creates a new headline service.
// Panics if Source is nil.
func NewHeadlineService(cfg HeadlineServiceConfig) *HeadlineService {
	if cfg.Source == nil {
		panic("HeadlineService: Source is required")
	}

	limit := cfg.Limit
	if limit <= 0 {
		limit = DefaultHeadlineLimit
	}

	return &HeadlineService{
		source: cfg.Source,
		limit:  limit,
	}
}

// Headlines fetches one page from the source and selects the articles to process.
// The result may be empty.
func (s *HeadlineService) Headlines(ctx context.Context) ([]domain.Article, error) {
	raw, err := s.source.TopHeadlines(ctx)
	if err != nil {
		return nil, err
	}

	selected := SelectHeadlines(raw, s.limit)

	logging.FromContext(ctx).InfoContext(ctx, "headlines selected",
		slog.Int("received", len(raw)),
		slog.Int("selected", len(selected)),
	)

	return selected, nil
}

// SelectHeadlines keeps qualifying articles with unique titles, in order,
// up to limit. The first article with a given title wins.
func SelectHeadlines(articles []domain.Article, limit int) []domain.Article {
	seen := make(map[string]struct{}, len(articles))
	selected := make([]domain.Article, 0, min(limit, len(articles)))

	for _, article := range articles {
		if len(selected) == limit {
			break
		}

		if !article.Qualifies() {
			continue
		}

		if _, dup := seen[article.Title]; dup {
			continue
		}

		seen[article.Title] = struct{}{}
		selected = append(selected, article)
	}

	return selected
}

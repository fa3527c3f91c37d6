package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jsamuelsen/headline-quoter/internal/domain"
	"github.com/jsamuelsen/headline-quoter/internal/platform/logging"
	"github.com/jsamuelsen/headline-quoter/internal/ports"
)

// PublishErrorPolicy decides what a failed send does to the rest of the run.
type PublishErrorPolicy string

const (
	// PolicyAbort stops at the first failed send; later articles are skipped.
	PolicyAbort PublishErrorPolicy = "abort"

	// PolicyContinue attempts every article and reports all failures at the end.
	PolicyContinue PublishErrorPolicy = "continue"
)

// PipelineConfig contains the collaborators of a run.
type PipelineConfig struct {
	Headlines *HeadlineService
	Matcher   *QuoteMatcher
	Publisher ports.Publisher

	// ChatID is the destination of every post.
	ChatID string

	// OnPublishError defaults to PolicyAbort.
	OnPublishError PublishErrorPolicy

	// Recorder defaults to ports.NopRecorder.
	Recorder ports.RunRecorder
}

// Pipeline runs Fetch → (Match → Format → Publish per article) once.
// It is strictly sequential and keeps no state between runs.
type Pipeline struct {
	headlines *HeadlineService
	matcher   *QuoteMatcher
	publisher ports.Publisher
	chatID    string
	policy    PublishErrorPolicy
	recorder  ports.RunRecorder
}

// RunSummary reports what a run did.
type RunSummary struct {
	Fetched   int
	Published int
	Failed    int
	Skipped   int
	Posts     []domain.Post
	Duration  time.Duration
}

// NewPipeline creates a pipeline.
// Panics if Headlines, Matcher or Publisher is nil.
func NewPipeline(cfg PipelineConfig) *Pipeline {
	if cfg.Headlines == nil || cfg.Matcher == nil || cfg.Publisher == nil {
		panic("Pipeline: Headlines, Matcher and Publisher are required")
	}

	policy := cfg.OnPublishError
	if policy == "" {
		policy = PolicyAbort
	}

	recorder := cfg.Recorder
	if recorder == nil {
		recorder = ports.NopRecorder{}
	}

	return &Pipeline{
		headlines: cfg.Headlines,
		matcher:   cfg.Matcher,
		publisher: cfg.Publisher,
		chatID:    cfg.ChatID,
		policy:    policy,
		recorder:  recorder,
	}
}

// Run executes one pass. The returned summary is never nil.
//
// A fetch or match failure ends the run. A publish failure ends it under
// PolicyAbort; under PolicyContinue the remaining articles are still
// attempted and every failure is returned joined.
func (p *Pipeline) Run(ctx context.Context) (*RunSummary, error) {
	start := time.Now()
	summary := &RunSummary{}
	logger := logging.FromContext(ctx)

	defer func() { summary.Duration = time.Since(start) }()

	articles, err := runStage(ctx, StageFetch, "", p.headlines.Headlines)
	if err != nil {
		return summary, err
	}

	summary.Fetched = len(articles)
	p.recorder.ArticlesFetched(len(articles))

	if len(articles) == 0 {
		logger.InfoContext(ctx, "no qualifying articles, nothing to publish")
		return summary, nil
	}

	var failures []error

	for i, article := range articles {
		if err := ctx.Err(); err != nil {
			p.skip(summary, len(articles)-i)
			return summary, errors.Join(append(failures, fmt.Errorf("run interrupted: %w", err))...)
		}

		post, err := p.process(logging.WithArticle(ctx, i, article.Title), article)
		if err == nil {
			summary.Published++
			summary.Posts = append(summary.Posts, post)
			p.recorder.PostCompleted(ports.PostResultPublished)

			continue
		}

		summary.Failed++
		p.recorder.PostCompleted(ports.PostResultFailed)

		stage, _ := StageOf(err)
		if stage != StagePublish || p.policy == PolicyAbort {
			p.skip(summary, len(articles)-i-1)
			return summary, errors.Join(append(failures, err)...)
		}

		failures = append(failures, err)
	}

	logger.InfoContext(ctx, "run finished",
		slog.Int("fetched", summary.Fetched),
		slog.Int("published", summary.Published),
		slog.Int("failed", summary.Failed),
	)

	return summary, errors.Join(failures...)
}

// process matches, formats and publishes one article.
func (p *Pipeline) process(ctx context.Context, article domain.Article) (domain.Post, error) {
	match, err := runStage(ctx, StageMatch, article.Title, func(context.Context) (domain.Match, error) {
		return p.matcher.Match(article.MatchText())
	})
	if err != nil {
		return domain.Post{}, err
	}

	p.recorder.MatchScored(match.Score)

	post, err := runStage(ctx, StageFormat, article.Title, func(context.Context) (domain.Post, error) {
		return NewPost(article, match.Quote), nil
	})
	if err != nil {
		return domain.Post{}, err
	}

	_, err = runStage(ctx, StagePublish, article.Title, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, p.publisher.Publish(ctx, p.chatID, post.Text)
	})
	if err != nil {
		return domain.Post{}, err
	}

	logging.FromContext(ctx).InfoContext(ctx, "post published",
		slog.String("quote", match.Quote.Text),
		slog.Float64("score", match.Score),
	)

	return post, nil
}

// skip records n articles that were never attempted.
func (p *Pipeline) skip(summary *RunSummary, n int) {
	for range n {
		summary.Skipped++
		p.recorder.PostCompleted(ports.PostResultSkipped)
	}
}

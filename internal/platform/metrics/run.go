// Package metrics keeps the outcome of a run in a Prometheus registry.
//
// A run is a short-lived batch job, so nothing is scraped: the registry is
// pushed to a Pushgateway once the run ends.
package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/jsamuelsen/headline-quoter/internal/ports"
)

const namespace = "headline_quoter"

// RunMetrics records one run. It implements ports.RunRecorder.
type RunMetrics struct {
	registry *prometheus.Registry

	articlesFetched prometheus.Counter
	posts           *prometheus.CounterVec
	matchScore      prometheus.Histogram
	runDuration     prometheus.Gauge
	lastSuccess     prometheus.Gauge
	lastFailure     prometheus.Gauge
}

// New creates a RunMetrics with its own registry.
func New() *RunMetrics {
	m := &RunMetrics{
		registry: prometheus.NewRegistry(),
		articlesFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "articles_fetched_total",
			Help:      "Qualifying articles selected for processing.",
		}),
		posts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "posts_total",
			Help:      "Posts by result.",
		}, []string{"result"}), // result: published|failed|skipped
		matchScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "match_score",
			Help:      "Cosine similarity of the chosen quote.",
			Buckets:   []float64{0, 0.05, 0.1, 0.2, 0.3, 0.5, 0.75, 1},
		}),
		runDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of the last run.",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful run.",
		}),
		lastFailure: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_failure_timestamp_seconds",
			Help:      "Unix time of the last failed run.",
		}),
	}

	m.registry.MustRegister(
		m.articlesFetched,
		m.posts,
		m.matchScore,
		m.runDuration,
		m.lastSuccess,
		m.lastFailure,
		collectors.NewGoCollector(),
	)

	for _, result := range []string{ports.PostResultPublished, ports.PostResultFailed, ports.PostResultSkipped} {
		m.posts.WithLabelValues(result)
	}

	return m
}

// ArticlesFetched implements ports.RunRecorder.
func (m *RunMetrics) ArticlesFetched(n int) {
	m.articlesFetched.Add(float64(n))
}

// MatchScored implements ports.RunRecorder.
func (m *RunMetrics) MatchScored(score float64) {
	m.matchScore.Observe(score)
}

// PostCompleted implements ports.RunRecorder.
func (m *RunMetrics) PostCompleted(result string) {
	m.posts.WithLabelValues(result).Inc()
}

// RunFinished records the duration and outcome of the run.
func (m *RunMetrics) RunFinished(duration time.Duration, err error) {
	m.runDuration.Set(duration.Seconds())

	if err != nil {
		m.lastFailure.SetToCurrentTime()
		return
	}

	m.lastSuccess.SetToCurrentTime()
}

// Registry exposes the underlying registry.
func (m *RunMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// Push replaces the job's metric group on the Pushgateway at url.
func (m *RunMetrics) Push(ctx context.Context, url, job string) error {
	err := push.New(url, job).
		Gatherer(m.registry).
		PushContext(ctx)
	if err != nil {
		return fmt.Errorf("pushing run metrics: %w", err)
	}

	return nil
}

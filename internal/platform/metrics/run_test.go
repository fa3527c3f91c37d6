package metrics

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/headline-quoter/internal/ports"
)

var _ ports.RunRecorder = (*RunMetrics)(nil)

func TestRunMetrics_Recorder(t *testing.T) {
	m := New()

	m.ArticlesFetched(3)
	m.MatchScored(0.42)
	m.MatchScored(0)
	m.PostCompleted(ports.PostResultPublished)
	m.PostCompleted(ports.PostResultPublished)
	m.PostCompleted(ports.PostResultFailed)

	assert.InDelta(t, 3.0, testutil.ToFloat64(m.articlesFetched), 0)
	assert.InDelta(t, 2.0, testutil.ToFloat64(m.posts.WithLabelValues(ports.PostResultPublished)), 0)
	assert.InDelta(t, 1.0, testutil.ToFloat64(m.posts.WithLabelValues(ports.PostResultFailed)), 0)
	assert.InDelta(t, 0.0, testutil.ToFloat64(m.posts.WithLabelValues(ports.PostResultSkipped)), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(m.matchScore))
}

func TestRunMetrics_PostResultsPreinitialized(t *testing.T) {
	m := New()

	assert.Equal(t, 3, testutil.CollectAndCount(m.posts))
}

func TestRunMetrics_RunFinished(t *testing.T) {
	m := New()

	m.RunFinished(1500*time.Millisecond, nil)

	assert.InDelta(t, 1.5, testutil.ToFloat64(m.runDuration), 1e-9)
	assert.Positive(t, testutil.ToFloat64(m.lastSuccess))
	assert.Zero(t, testutil.ToFloat64(m.lastFailure))

	m.RunFinished(time.Second, errors.New("publish failed"))

	assert.Positive(t, testutil.ToFloat64(m.lastFailure))
}

func TestRunMetrics_Gather(t *testing.T) {
	m := New()
	m.ArticlesFetched(2)

	err := testutil.GatherAndCompare(m.Registry(), strings.NewReader(`
# HELP headline_quoter_articles_fetched_total Qualifying articles selected for processing.
# TYPE headline_quoter_articles_fetched_total counter
headline_quoter_articles_fetched_total 2
`), "headline_quoter_articles_fetched_total")

	assert.NoError(t, err)
}

func TestRunMetrics_Push(t *testing.T) {
	var (
		method string
		path   string
		body   string
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		path = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		body = string(raw)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	m := New()
	m.ArticlesFetched(1)

	require.NoError(t, m.Push(context.Background(), server.URL, "headline-quoter"))

	assert.Equal(t, http.MethodPut, method)
	assert.Equal(t, "/metrics/job/headline-quoter", path)
	assert.NotEmpty(t, body)
}

func TestRunMetrics_PushError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	err := New().Push(context.Background(), server.URL, "headline-quoter")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "pushing run metrics")
}

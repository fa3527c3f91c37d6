package ports

// Post outcomes reported to a RunRecorder.
const (
	PostResultPublished = "published"
	PostResultFailed    = "failed"
	PostResultSkipped   = "skipped"
)

// RunRecorder receives the measurements of one pipeline run.
// Implementations must be cheap; they are called inline.
type RunRecorder interface {
	// ArticlesFetched records how many qualifying articles the run will process.
	ArticlesFetched(n int)

	// MatchScored records the similarity of a chosen quote.
	MatchScored(score float64)

	// PostCompleted records the outcome of one article, one of the PostResult constants.
	PostCompleted(result string)
}

// NopRecorder discards every measurement.
type NopRecorder struct{}

// ArticlesFetched implements RunRecorder.
func (NopRecorder) ArticlesFetched(int) {}

// MatchScored implements RunRecorder.
func (NopRecorder) MatchScored(float64) {}

// PostCompleted implements RunRecorder.
func (NopRecorder) PostCompleted(string) {}

// Package domain contains core business entities and rules.
package domain

// Article is a single headline as seen by the pipeline.
// It is built from one upstream item and discarded after its post is sent.
type Article struct {
	Title       string
	Description string
	URL         string
}

// Qualifies reports whether the article carries enough text to be matched.
func (a Article) Qualifies() bool {
	return a.Title != "" && a.Description != ""
}

// MatchText is the text the quote matcher compares against the corpus.
func (a Article) MatchText() string {
	return a.Title + " " + a.Description
}

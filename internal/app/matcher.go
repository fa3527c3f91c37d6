package app

import (
	"github.com/jsamuelsen/headline-quoter/internal/domain"
	"github.com/jsamuelsen/headline-quoter/internal/domain/similarity"
)

// QuoteMatcher picks the corpus quote closest to a piece of text.
// The vocabulary is rebuilt over the corpus and the query on every call,
// so the matcher holds no state besides the corpus.
type QuoteMatcher struct {
	corpus     *domain.Corpus
	vectorizer similarity.Vectorizer
}

// NewQuoteMatcher creates a matcher over corpus with the default vectorizer.
func NewQuoteMatcher(corpus *domain.Corpus) *QuoteMatcher {
	return &QuoteMatcher{
		corpus:     corpus,
		vectorizer: similarity.NewVectorizer(),
	}
}

// Match returns the most similar quote and its cosine score.
// Ties go to the earliest quote. Returns domain.ErrEmptyCorpus when there
// is nothing to choose from.
func (m *QuoteMatcher) Match(text string) (domain.Match, error) {
	if m.corpus.Len() == 0 {
		return domain.Match{}, domain.ErrEmptyCorpus
	}

	idx, score := similarity.Rank(m.vectorizer, text, m.corpus.Texts())

	return domain.Match{Quote: m.corpus.At(idx), Score: score}, nil
}

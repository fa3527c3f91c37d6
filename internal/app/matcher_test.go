package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/headline-quoter/internal/domain"
)

func corpusOf(t *testing.T, texts ...string) *domain.Corpus {
	t.Helper()

	quotes := make([]domain.Quote, len(texts))
	for i, text := range texts {
		quotes[i] = domain.Quote{Text: text}
	}

	corpus, err := domain.NewCorpus(quotes)
	require.NoError(t, err)

	return corpus
}

func TestQuoteMatcher_Bread(t *testing.T) {
	matcher := NewQuoteMatcher(corpusOf(t, "Quote A about bread", "Quote B about revolution"))

	got, err := matcher.Match("Bread shortages in the capital")

	require.NoError(t, err)
	assert.Equal(t, "Quote A about bread", got.Quote.Text)
	assert.Greater(t, got.Score, 0.0)
}

func TestQuoteMatcher_IdenticalQuery(t *testing.T) {
	texts := []string{
		"Peace to the huts, war on the palaces.",
		"There are decades where nothing happens; and there are weeks where decades happen.",
		"The capitalists will sell us the rope with which we will hang them.",
	}
	matcher := NewQuoteMatcher(corpusOf(t, texts...))

	for _, text := range texts {
		got, err := matcher.Match(text)

		require.NoError(t, err)
		assert.Equal(t, text, got.Quote.Text)
		assert.InDelta(t, 1.0, got.Score, 1e-9)
	}
}

func TestQuoteMatcher_NoOverlapPicksFirst(t *testing.T) {
	matcher := NewQuoteMatcher(corpusOf(t, "bread", "land", "peace"))

	got, err := matcher.Match("quantum chromodynamics")

	require.NoError(t, err)
	assert.Equal(t, "bread", got.Quote.Text)
	assert.Zero(t, got.Score)
}

func TestQuoteMatcher_ResultIsCorpusMember(t *testing.T) {
	texts := []string{"bread and peace", "all power to the soviets", "land to the peasants"}
	matcher := NewQuoteMatcher(corpusOf(t, texts...))

	for _, query := range []string{"", "the", "peasants demand land", "soviet power", "!!!"} {
		got, err := matcher.Match(query)

		require.NoError(t, err)
		assert.Contains(t, texts, got.Quote.Text)
	}
}

func TestQuoteMatcher_EmptyCorpus(t *testing.T) {
	matcher := NewQuoteMatcher(nil)

	assert.NotPanics(t, func() {
		_, err := matcher.Match("anything")
		assert.ErrorIs(t, err, domain.ErrEmptyCorpus)
	})
}

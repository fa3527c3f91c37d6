package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCorpus_Empty(t *testing.T) {
	corpus, err := NewCorpus(nil)

	require.ErrorIs(t, err, ErrEmptyCorpus)
	assert.Nil(t, corpus)
	assert.Equal(t, 0, corpus.Len())
}

func TestNewCorpus_CopiesInput(t *testing.T) {
	quotes := []Quote{{Text: "first"}, {Text: "second"}}

	corpus, err := NewCorpus(quotes)
	require.NoError(t, err)

	quotes[0].Text = "mutated"

	assert.Equal(t, 2, corpus.Len())
	assert.Equal(t, "first", corpus.At(0).Text)
	assert.Equal(t, []string{"first", "second"}, corpus.Texts())
}

func TestArticle_Qualifies(t *testing.T) {
	tests := []struct {
		name    string
		article Article
		want    bool
	}{
		{name: "title and description", article: Article{Title: "t", Description: "d"}, want: true},
		{name: "missing title", article: Article{Description: "d"}, want: false},
		{name: "missing description", article: Article{Title: "t"}, want: false},
		{name: "whitespace title counts as text", article: Article{Title: " ", Description: "d"}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.article.Qualifies())
		})
	}
}

func TestArticle_MatchText(t *testing.T) {
	a := Article{Title: "Bread shortages", Description: "Queues grow."}

	assert.Equal(t, "Bread shortages Queues grow.", a.MatchText())
}

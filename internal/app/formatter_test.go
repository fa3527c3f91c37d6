package app

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jsamuelsen/headline-quoter/internal/domain"
)

func TestFormatPost(t *testing.T) {
	article := domain.Article{
		Title:       "Bread shortages in the capital",
		Description: "Queues form early",
		URL:         "https://example.com/bread",
	}
	quote := domain.Quote{Text: "Quote A about bread"}

	want := "🗞 *Bread shortages in the capital*\n\n" +
		"Ленинский комментарий (1917):\n" +
		"> _\"Quote A about bread\"_\n\n" +
		"🔗 [Читать](https://example.com/bread)\n\n" +
		"_P.S. Капитализм всё ещё не отменили. Но Ленин уже всё сказал._"

	assert.Equal(t, want, FormatPost(article, quote))
}

func TestFormatPost_Verbatim(t *testing.T) {
	article := domain.Article{
		Title: "100% *bold* _claims_ [sic]",
		URL:   "https://example.com/a_b?c=d&e=%20",
	}
	quote := domain.Quote{Text: `He said "no" – 50% of the time`}

	got := FormatPost(article, quote)

	assert.Contains(t, got, article.Title)
	assert.Contains(t, got, article.URL)
	assert.Contains(t, got, quote.Text)
	assert.NotContains(t, got, "%!")
}

func TestFormatPost_Pure(t *testing.T) {
	article := domain.Article{Title: "t", URL: "u"}
	quote := domain.Quote{Text: "q"}

	assert.Equal(t, FormatPost(article, quote), FormatPost(article, quote))
}

func TestNewPost(t *testing.T) {
	article := domain.Article{Title: "t", Description: "d", URL: "u"}
	quote := domain.Quote{Text: "q"}

	post := NewPost(article, quote)

	assert.Equal(t, article, post.Article)
	assert.Equal(t, quote, post.Quote)
	assert.Equal(t, FormatPost(article, quote), post.Text)
}

package app

import (
	"fmt"

	"github.com/jsamuelsen/headline-quoter/internal/domain"
)

// postTemplate is rendered with Telegram's legacy Markdown.
// Title, quote and URL are inserted verbatim, without escaping.
const postTemplate = "🗞 *%s*\n\n" +
	"Ленинский комментарий (1917):\n" +
	"> _\"%s\"_\n\n" +
	"🔗 [Читать](%s)\n\n" +
	"_P.S. Капитализм всё ещё не отменили. Но Ленин уже всё сказал._"

// FormatPost renders the message for one article and its quote.
func FormatPost(article domain.Article, quote domain.Quote) string {
	return fmt.Sprintf(postTemplate, article.Title, quote.Text, article.URL)
}

// NewPost pairs an article with its quote and renders the message.
func NewPost(article domain.Article, quote domain.Quote) domain.Post {
	return domain.Post{
		Article: article,
		Quote:   quote,
		Text:    FormatPost(article, quote),
	}
}

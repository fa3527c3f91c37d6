package benchmark

import (
	"context"
	"fmt"
	"testing"

	"github.com/jsamuelsen/headline-quoter/internal/adapters/corpus"
	"github.com/jsamuelsen/headline-quoter/internal/app"
	"github.com/jsamuelsen/headline-quoter/internal/domain"
	"github.com/jsamuelsen/headline-quoter/internal/domain/similarity"
	"github.com/jsamuelsen/headline-quoter/internal/ports"
)

const headline = "Bread shortages in the capital as workers strike over wages " +
	"and the banks report record profits"

// largeCorpus builds n distinct quotes to show how matching scales, since the
// vocabulary is rebuilt on every call.
func largeCorpus(b *testing.B, n int) *domain.Corpus {
	b.Helper()

	quotes := make([]domain.Quote, n)
	for i := range quotes {
		quotes[i] = domain.Quote{Text: fmt.Sprintf(
			"Quote %d about bread peace land workers capital banks state revolution number%d", i, i)}
	}

	c, err := domain.NewCorpus(quotes)
	if err != nil {
		b.Fatal(err)
	}

	return c
}

// BenchmarkQuoteMatcher_Embedded measures one match against the bundled quotes.
// This is what a run pays per article.
func BenchmarkQuoteMatcher_Embedded(b *testing.B) {
	quotes, err := corpus.Default()
	if err != nil {
		b.Fatal(err)
	}

	matcher := app.NewQuoteMatcher(quotes)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := matcher.Match(headline); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkQuoteMatcher_CorpusSize measures matching as the corpus grows.
func BenchmarkQuoteMatcher_CorpusSize(b *testing.B) {
	for _, n := range []int{10, 100, 1000} {
		b.Run(fmt.Sprintf("quotes=%d", n), func(b *testing.B) {
			matcher := app.NewQuoteMatcher(largeCorpus(b, n))

			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				if _, err := matcher.Match(headline); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkTokenize measures tokenization and n-gram generation of one headline.
func BenchmarkTokenize(b *testing.B) {
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		tokens := similarity.Tokenize(headline)
		_ = similarity.NGrams(tokens, 1, 2)
	}
}

// BenchmarkFormatPost measures rendering one post.
func BenchmarkFormatPost(b *testing.B) {
	article := domain.Article{Title: "Bread shortages", Description: "Queues", URL: "https://example.com/bread"}
	quote := domain.Quote{Text: "Peace to the huts, war on the palaces."}

	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_ = app.FormatPost(article, quote)
	}
}

// BenchmarkHealthRegistry_CheckAll measures preflight with registered checks.
func BenchmarkHealthRegistry_CheckAll(b *testing.B) {
	registry := ports.NewHealthRegistry()

	_ = registry.Register(&simpleHealthChecker{name: "telegram"})
	_ = registry.Register(&simpleHealthChecker{name: "news"})

	ctx := context.Background()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_ = registry.CheckAll(ctx)
	}
}

// simpleHealthChecker is a minimal health checker for benchmarking.
type simpleHealthChecker struct {
	name string
}

func (s *simpleHealthChecker) Name() string {
	return s.name
}

func (s *simpleHealthChecker) Check(_ context.Context) error {
	return nil
}

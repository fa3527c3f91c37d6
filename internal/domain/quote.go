package domain

// Quote is a quotation identified only by its text.
type Quote struct {
	Text string
}

// Corpus is an immutable, ordered, non-empty collection of quotes.
// Order matters: ties during matching resolve to the earliest quote.
type Corpus struct {
	quotes []Quote
}

// NewCorpus builds a corpus from the given quotes.
// Returns ErrEmptyCorpus if there is nothing to choose from.
func NewCorpus(quotes []Quote) (*Corpus, error) {
	if len(quotes) == 0 {
		return nil, ErrEmptyCorpus
	}

	owned := make([]Quote, len(quotes))
	copy(owned, quotes)

	return &Corpus{quotes: owned}, nil
}

// Len returns the number of quotes.
func (c *Corpus) Len() int {
	if c == nil {
		return 0
	}

	return len(c.quotes)
}

// At returns the quote at position i.
func (c *Corpus) At(i int) Quote {
	return c.quotes[i]
}

// Texts returns the quote texts in corpus order.
// The returned slice is a copy.
func (c *Corpus) Texts() []string {
	if c == nil {
		return nil
	}

	texts := make([]string, len(c.quotes))
	for i, q := range c.quotes {
		texts[i] = q.Text
	}

	return texts
}

// Match is the result of ranking the corpus against one article.
type Match struct {
	Quote Quote
	Score float64
}

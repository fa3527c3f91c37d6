package domain

// Post is a rendered message ready to be published.
type Post struct {
	Article Article
	Quote   Quote
	Text    string
}

// Package similarity ranks short texts against each other with TF-IDF
// weighted bag-of-words vectors and cosine similarity.
package similarity

import (
	"strings"
	"unicode"
)

// minTokenLength drops single-character tokens such as "a" or "I".
const minTokenLength = 2

// Tokenize lowercases text and splits it into word tokens.
// A token is a maximal run of letters, numbers or underscores that is at
// least two runes long. Combining marks end a token. Stop words are removed.
func Tokenize(text string) []string {
	text = strings.ToLower(text)

	var (
		tokens []string
		start  = -1
		runes  int
	)

	flush := func(end int) {
		if start >= 0 && runes >= minTokenLength {
			if tok := text[start:end]; !IsStopWord(tok) {
				tokens = append(tokens, tok)
			}
		}
		start, runes = -1, 0
	}

	for i, r := range text {
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
			runes++
			continue
		}
		flush(i)
	}
	flush(len(text))

	return tokens
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// NGrams expands tokens into all n-grams with minN <= n <= maxN.
// Words inside an n-gram are joined with a single space. Unigrams come
// first, then bigrams, and so on.
func NGrams(tokens []string, minN, maxN int) []string {
	if minN < 1 {
		minN = 1
	}

	if maxN < minN {
		maxN = minN
	}

	grams := make([]string, 0, len(tokens)*(maxN-minN+1))

	for n := minN; n <= maxN; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			grams = append(grams, strings.Join(tokens[i:i+n], " "))
		}
	}

	return grams
}

package similarity

import (
	"math"
	"sort"
)

// Default vectorizer settings.
const (
	DefaultMaxFeatures = 1000
	DefaultMinN        = 1
	DefaultMaxN        = 2
)

// Vector is a sparse term-weight vector keyed by term.
//
// Sums over a Vector always run in term order, so equal vectors give
// bit-identical results.
type Vector map[string]float64

// Terms returns the terms of v in sorted order.
func (v Vector) Terms() []string {
	terms := make([]string, 0, len(v))
	for term := range v {
		terms = append(terms, term)
	}

	sort.Strings(terms)

	return terms
}

// Norm returns the Euclidean length of v.
func (v Vector) Norm() float64 {
	var sum float64
	for _, term := range v.Terms() {
		w := v[term]
		sum += w * w
	}

	return math.Sqrt(sum)
}

// Vectorizer turns a set of documents into L2-normalized TF-IDF vectors.
// Every call to FitTransform builds a fresh vocabulary from the documents
// it is given; the Vectorizer itself holds no fitted state.
type Vectorizer struct {
	// MaxFeatures keeps only the most frequent terms across all documents.
	// Zero means no cap.
	MaxFeatures int

	// MinN and MaxN bound the n-gram sizes.
	MinN int
	MaxN int
}

// NewVectorizer returns a vectorizer with unigrams and bigrams capped at
// DefaultMaxFeatures terms.
func NewVectorizer() Vectorizer {
	return Vectorizer{
		MaxFeatures: DefaultMaxFeatures,
		MinN:        DefaultMinN,
		MaxN:        DefaultMaxN,
	}
}

// FitTransform returns one vector per document, in document order.
//
// Term frequency is the raw count of a term in a document. Inverse document
// frequency is smoothed: ln((1+n)/(1+df)) + 1. A document with no surviving
// terms yields an empty vector.
func (v Vectorizer) FitTransform(docs []string) []Vector {
	counts := make([]map[string]int, len(docs))
	totals := make(map[string]int)
	docFreq := make(map[string]int)

	for i, doc := range docs {
		tf := make(map[string]int)
		for _, term := range NGrams(Tokenize(doc), v.MinN, v.MaxN) {
			tf[term]++
		}

		for term, c := range tf {
			totals[term] += c
			docFreq[term]++
		}

		counts[i] = tf
	}

	vocab := v.limitFeatures(totals)

	n := float64(len(docs))
	idf := make(map[string]float64, len(vocab))
	for term := range vocab {
		idf[term] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}

	vectors := make([]Vector, len(docs))
	for i, tf := range counts {
		vec := make(Vector, len(tf))
		for term, c := range tf {
			if _, ok := vocab[term]; ok {
				vec[term] = float64(c) * idf[term]
			}
		}

		normalize(vec)
		vectors[i] = vec
	}

	return vectors
}

// limitFeatures keeps the MaxFeatures terms with the highest total count.
// Ties are broken alphabetically so the result does not depend on map order.
func (v Vectorizer) limitFeatures(totals map[string]int) map[string]struct{} {
	terms := make([]string, 0, len(totals))
	for term := range totals {
		terms = append(terms, term)
	}

	sort.Strings(terms)

	if v.MaxFeatures > 0 && len(terms) > v.MaxFeatures {
		sort.SliceStable(terms, func(i, j int) bool {
			return totals[terms[i]] > totals[terms[j]]
		})
		terms = terms[:v.MaxFeatures]
	}

	vocab := make(map[string]struct{}, len(terms))
	for _, term := range terms {
		vocab[term] = struct{}{}
	}

	return vocab
}

func normalize(vec Vector) {
	norm := vec.Norm()
	if norm == 0 {
		return
	}

	for term, w := range vec {
		vec[term] = w / norm
	}
}

package similarity

// Cosine returns the cosine of the angle between a and b.
// Zero vectors have similarity 0 with everything.
func Cosine(a, b Vector) float64 {
	if len(a) > len(b) {
		a, b = b, a
	}

	var dot float64
	for _, term := range a.Terms() {
		if wb, ok := b[term]; ok {
			dot += a[term] * wb
		}
	}

	if dot == 0 {
		return 0
	}

	return dot / (a.Norm() * b.Norm())
}

// Rank scores query against every candidate text and returns the index of
// the best candidate with its score. The first candidate reaching the top
// score wins. Returns -1 when there are no candidates.
//
// The vocabulary is fitted over the candidates and the query together.
func Rank(v Vectorizer, query string, candidates []string) (int, float64) {
	if len(candidates) == 0 {
		return -1, 0
	}

	docs := make([]string, 0, len(candidates)+1)
	docs = append(docs, candidates...)
	docs = append(docs, query)

	vectors := v.FitTransform(docs)
	q := vectors[len(vectors)-1]

	best, bestScore := 0, Cosine(q, vectors[0])
	for i := 1; i < len(candidates); i++ {
		if score := Cosine(q, vectors[i]); score > bestScore {
			best, bestScore = i, score
		}
	}

	return best, bestScore
}

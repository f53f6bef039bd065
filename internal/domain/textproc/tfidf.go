package textproc

import (
	"math"
	"sort"
	"strings"
)

// maxVocabularySize caps the pairwise TF-IDF vocabulary at the most
// frequent terms across the two-document corpus.
const maxVocabularySize = 1000

// CosineTFIDF computes the cosine similarity of two normalized texts
// under a TF-IDF weighting built over exactly these two documents. The
// vocabulary is unigrams plus bigrams, capped at maxVocabularySize terms
// ranked by corpus frequency (ties broken alphabetically). IDF uses
// smoothed document frequencies, ln((1+n)/(1+df))+1, and each vector is
// L2-normalized before the dot product. Because the vocabulary is local
// to the pair, scores are not comparable across different pairs.
//
// Either input being empty yields 0.0.
func CosineTFIDF(docA, docB string) float64 {
	if docA == "" || docB == "" {
		return 0.0
	}

	countsA := termCounts(docA)
	countsB := termCounts(docB)
	if len(countsA) == 0 || len(countsB) == 0 {
		return 0.0
	}

	vocab := buildVocabulary(countsA, countsB)

	vecA := tfidfVector(countsA, countsB, vocab)
	vecB := tfidfVector(countsB, countsA, vocab)

	var dot float64
	for i := range vecA {
		dot += vecA[i] * vecB[i]
	}
	if dot < 0 {
		return 0.0
	}
	if dot > 1 {
		return 1.0
	}
	return dot
}

// termCounts tallies unigram and bigram frequencies of a normalized
// space-joined token stream.
func termCounts(doc string) map[string]int {
	tokens := strings.Fields(doc)
	counts := make(map[string]int, len(tokens)*2)
	for i, tok := range tokens {
		counts[tok]++
		if i+1 < len(tokens) {
			counts[tok+" "+tokens[i+1]]++
		}
	}
	return counts
}

// buildVocabulary merges the term sets of both documents and keeps the
// maxVocabularySize most frequent terms, with frequency ties resolved by
// ascending term order so the cut is deterministic.
func buildVocabulary(countsA, countsB map[string]int) []string {
	total := make(map[string]int, len(countsA)+len(countsB))
	for term, c := range countsA {
		total[term] += c
	}
	for term, c := range countsB {
		total[term] += c
	}

	terms := make([]string, 0, len(total))
	for term := range total {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if total[terms[i]] != total[terms[j]] {
			return total[terms[i]] > total[terms[j]]
		}
		return terms[i] < terms[j]
	})

	if len(terms) > maxVocabularySize {
		terms = terms[:maxVocabularySize]
	}
	return terms
}

// tfidfVector builds the L2-normalized TF-IDF vector for the document
// with counts own, given the other document's counts for document
// frequencies. The corpus size is fixed at two.
func tfidfVector(own, other map[string]int, vocab []string) []float64 {
	const corpusSize = 2.0

	vec := make([]float64, len(vocab))
	var sumSq float64
	for i, term := range vocab {
		tf := float64(own[term])
		if tf == 0 {
			continue
		}
		df := 1.0
		if _, ok := other[term]; ok {
			df = 2.0
		}
		idf := math.Log((1+corpusSize)/(1+df)) + 1
		vec[i] = tf * idf
		sumSq += vec[i] * vec[i]
	}

	if sumSq == 0 {
		return vec
	}
	norm := math.Sqrt(sumSq)
	for i := range vec {
		vec[i] /= norm
	}
	return vec
}

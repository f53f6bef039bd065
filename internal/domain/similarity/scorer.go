// Package similarity implements the four-dimensional scoring of a
// candidate answer against a reference answer (content, keyword,
// structure, theory), the weighted overall score, and the canned
// feedback synthesis driven by fixed thresholds.  Everything here is
// pure computation: no I/O, no shared mutable state, safe for
// concurrent use.
package similarity

import (
	"math"

	"github.com/turtacn/AnswerKey-Intelligence/internal/domain/textproc"
	atypes "github.com/turtacn/AnswerKey-Intelligence/pkg/types/answer"
)

// Overall score weights.  Fixed; they sum to 1.0 and changing them
// invalidates every stored analysis.
const (
	WeightContent   = 0.40
	WeightKeyword   = 0.25
	WeightStructure = 0.20
	WeightTheory    = 0.15
)

// Structural metric sub-weights.
const (
	weightParagraphs = 0.3
	weightSentences  = 0.4
	weightWords      = 0.3
)

// Scorer computes similarity scores between two answer texts.  It holds
// the shared Normalizer; construct one at startup.
type Scorer struct {
	normalizer *textproc.Normalizer
}

// NewScorer wraps an initialized Normalizer.
func NewScorer(n *textproc.Normalizer) *Scorer {
	return &Scorer{normalizer: n}
}

// ContentSimilarity normalizes both texts and returns their pairwise
// TF-IDF cosine similarity.  Either text being empty, raw or after
// normalization, yields 0.0.
func (s *Scorer) ContentSimilarity(textA, textB string) float64 {
	if textA == "" || textB == "" {
		return 0.0
	}
	return textproc.CosineTFIDF(s.normalizer.Normalize(textA), s.normalizer.Normalize(textB))
}

// Jaccard returns |intersection| / |union| of two term lists treated as
// sets.  Both sets empty yields 0.0: no shared evidence earns no
// similarity credit.
func Jaccard(a, b []string) float64 {
	setA := make(map[string]struct{}, len(a))
	for _, term := range a {
		setA[term] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, term := range b {
		setB[term] = struct{}{}
	}
	if len(setA) == 0 || len(setB) == 0 {
		return 0.0
	}

	intersection := 0
	for term := range setA {
		if _, ok := setB[term]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}

// StructureSimilarity compares the paragraph, sentence, and word counts
// of two texts.  Each metric contributes 1 - |a-b| / max(a+b, 1),
// weighted 0.3 / 0.4 / 0.3, clamped to [0, 1].  Either text empty
// yields 0.0.
func StructureSimilarity(textA, textB string) float64 {
	if textA == "" || textB == "" {
		return 0.0
	}

	ma := textproc.Measure(textA)
	mb := textproc.Measure(textB)

	para := ratioCloseness(ma.ParagraphCount, mb.ParagraphCount)
	sent := ratioCloseness(ma.SentenceCount, mb.SentenceCount)
	word := ratioCloseness(ma.WordCount, mb.WordCount)

	return clamp01(para*weightParagraphs + sent*weightSentences + word*weightWords)
}

// Overall combines the four sub-scores with the fixed weights and
// rounds to three decimal places.
func Overall(content, keyword, structure, theory float64) float64 {
	sum := content*WeightContent + keyword*WeightKeyword + structure*WeightStructure + theory*WeightTheory
	return math.Round(sum*1000) / 1000
}

// Score computes the full score set for one candidate/reference pair.
// Keyword and theory similarity run on the precomputed feature sets so
// reference features are never re-extracted per comparison.
func (s *Scorer) Score(candidateText string, candidate atypes.FeatureSet, referenceText string, reference atypes.FeatureSet) atypes.SimilarityScores {
	content := s.ContentSimilarity(candidateText, referenceText)
	keyword := Jaccard(candidate.Keywords, reference.Keywords)
	structure := StructureSimilarity(candidateText, referenceText)
	theory := Jaccard(candidate.Theories, reference.Theories)

	return atypes.SimilarityScores{
		Content:   content,
		Keyword:   keyword,
		Structure: structure,
		Theory:    theory,
		Overall:   Overall(content, keyword, structure, theory),
	}
}

// BestIndex selects the winning reference from an ordered score slice:
// the first index whose Overall is strictly greater than every earlier
// one.  Ties resolve to the earliest index, and a slice of all-zero
// scores selects index 0, so some reference always wins when scores is
// non-empty.  Returns -1 for an empty slice.
func BestIndex(scores []atypes.SimilarityScores) int {
	best := -1
	bestOverall := math.Inf(-1)
	for i, sc := range scores {
		if sc.Overall > bestOverall {
			bestOverall = sc.Overall
			best = i
		}
	}
	return best
}

func ratioCloseness(a, b int) float64 {
	return 1 - math.Abs(float64(a-b))/math.Max(float64(a+b), 1)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

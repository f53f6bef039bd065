// Package textproc provides the text processing primitives shared by
// feature extraction and similarity scoring: normalization (lowercase,
// noise stripping, stopword removal, lemmatization), structural metrics,
// and pairwise TF-IDF cosine similarity.
package textproc

import (
	"strings"
	"unicode"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"

	"github.com/turtacn/AnswerKey-Intelligence/pkg/errors"
)

// minTokenLength is the shortest token that survives normalization.
// Shorter tokens carry almost no discriminative content in essay text.
const minTokenLength = 3

// Normalizer reduces raw answer text to a canonical space-joined token
// stream. It holds the lemmatization dictionary, which is expensive to
// load, so a single instance should be created at process start and
// shared; all methods are safe for concurrent use.
type Normalizer struct {
	lemmatizer *golem.Lemmatizer
}

// NewNormalizer loads the English lemmatization dictionary and returns a
// ready-to-use Normalizer.
func NewNormalizer() (*Normalizer, error) {
	lem, err := golem.New(en.New())
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeLemmatizerInitFailed, "failed to load lemmatization dictionary")
	}
	return &Normalizer{lemmatizer: lem}, nil
}

// Normalize lowercases the text, replaces every character outside
// [a-z0-9 .,;:!?] with a space, tokenizes on whitespace and punctuation,
// drops stopwords and tokens shorter than three characters, lemmatizes
// the remainder, and rejoins with single spaces. Empty input yields an
// empty string.
func (n *Normalizer) Normalize(text string) string {
	if text == "" {
		return ""
	}

	lowered := strings.ToLower(text)
	tokens := strings.FieldsFunc(lowered, func(r rune) bool {
		return !unicode.IsLower(r) && !unicode.IsDigit(r)
	})

	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if len(tok) < minTokenLength {
			continue
		}
		if _, stop := stopwords[tok]; stop {
			continue
		}
		out = append(out, n.lemmatizer.Lemma(tok))
	}
	return strings.Join(out, " ")
}

// stopwords is the fixed English stopword set. Normalization output is
// part of the scoring contract, so the set is pinned in code rather than
// loaded from a mutable external resource.
var stopwords = map[string]struct{}{}

func init() {
	for _, w := range stopwordList {
		stopwords[w] = struct{}{}
	}
}

var stopwordList = []string{
	"i", "me", "my", "myself", "we", "our", "ours", "ourselves",
	"you", "your", "yours", "yourself", "yourselves",
	"he", "him", "his", "himself", "she", "her", "hers", "herself",
	"it", "its", "itself", "they", "them", "their", "theirs", "themselves",
	"what", "which", "who", "whom", "this", "that", "these", "those",
	"am", "is", "are", "was", "were", "be", "been", "being",
	"have", "has", "had", "having", "do", "does", "did", "doing",
	"a", "an", "the", "and", "but", "if", "or", "because", "as",
	"until", "while", "of", "at", "by", "for", "with", "about",
	"against", "between", "into", "through", "during", "before",
	"after", "above", "below", "to", "from", "up", "down", "in",
	"out", "on", "off", "over", "under", "again", "further", "then",
	"once", "here", "there", "when", "where", "why", "how", "all",
	"any", "both", "each", "few", "more", "most", "other", "some",
	"such", "no", "nor", "not", "only", "own", "same", "so", "than",
	"too", "very", "can", "will", "just", "should", "now", "also",
	"may", "might", "must", "shall", "would", "could",
}

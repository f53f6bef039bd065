// Package lexicon defines the versionable catalogue of domain terms used
// for keyword, thinker and theory extraction from answer text.
package lexicon

import (
	"encoding/json"
	"os"
	"sort"
	"strings"

	"github.com/turtacn/AnswerKey-Intelligence/pkg/errors"
)

// Category groups lexicon terms by their role in an answer.
type Category string

const (
	CategoryTheories Category = "theories"
	CategoryThinkers Category = "thinkers"
	CategoryConcepts Category = "concepts"
	CategoryMethods  Category = "methods"
)

// categoryOrder fixes the scan order during extraction. Matches are
// reported in this order, then in term order within a category; the
// caps below cut in the same order, so reordering changes results.
var categoryOrder = []Category{
	CategoryTheories,
	CategoryThinkers,
	CategoryConcepts,
	CategoryMethods,
}

// Extraction caps bound feedback verbosity. Keywords count matches
// across every category; thinkers and theories are tracked separately.
const (
	MaxKeywords = 10
	MaxThinkers = 5
	MaxTheories = 5
)

// DomainLexicon is an immutable term catalogue. Instances are safe for
// concurrent use; build one at startup and share it.
type DomainLexicon struct {
	terms map[Category][]string
}

// New builds a lexicon from category term lists. Terms are lowercased;
// a lexicon with no terms at all is rejected.
func New(terms map[Category][]string) (*DomainLexicon, error) {
	normalized := make(map[Category][]string, len(terms))
	total := 0
	for cat, list := range terms {
		lowered := make([]string, 0, len(list))
		for _, term := range list {
			term = strings.ToLower(strings.TrimSpace(term))
			if term == "" {
				continue
			}
			lowered = append(lowered, term)
		}
		normalized[cat] = lowered
		total += len(lowered)
	}
	if total == 0 {
		return nil, errors.New(errors.ErrCodeLexiconInvalid, "lexicon contains no terms")
	}
	return &DomainLexicon{terms: normalized}, nil
}

// NewSociologyLexicon returns the built-in sociology catalogue.
func NewSociologyLexicon() *DomainLexicon {
	l, err := New(map[Category][]string{
		CategoryTheories: {
			"functionalism",
			"conflict theory",
			"symbolic interactionism",
			"feminism",
			"postmodernism",
		},
		CategoryThinkers: {
			"karl marx",
			"emile durkheim",
			"max weber",
			"robert merton",
			"talcott parsons",
		},
		CategoryConcepts: {
			"socialization",
			"social stratification",
			"social mobility",
			"social change",
			"social institutions",
		},
		CategoryMethods: {
			"qualitative",
			"quantitative",
			"ethnography",
			"survey",
			"interview",
			"observation",
		},
	})
	if err != nil {
		// The built-in catalogue is non-empty by construction.
		panic(err)
	}
	return l
}

// LoadFile reads a lexicon from a JSON file mapping category names to
// term lists. Unknown category names are kept as-is so custom subjects
// can extend the scan, appended after the built-in category order.
func LoadFile(path string) (*DomainLexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeLexiconInvalid, "failed to read lexicon file")
	}
	var raw map[Category][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeLexiconInvalid, "failed to parse lexicon file")
	}
	return New(raw)
}

// Terms returns the term list for a category, in scan order.
func (l *DomainLexicon) Terms(cat Category) []string {
	out := make([]string, len(l.terms[cat]))
	copy(out, l.terms[cat])
	return out
}

// Matches holds the capped extraction result for one text.
type Matches struct {
	Keywords []string `json:"keywords"`
	Thinkers []string `json:"thinkers"`
	Theories []string `json:"theories"`
}

// Extract scans rawText for lexicon terms using case-insensitive
// substring containment. Matching runs against the raw text, not the
// normalized token stream, so multi-word phrases survive; the flip side
// is that containment is not word-boundary aware ("class" matches
// inside "classroom"), which is intended behavior relied on by the
// scoring contract. Empty input yields empty match lists.
func (l *DomainLexicon) Extract(rawText string) Matches {
	m := Matches{
		Keywords: []string{},
		Thinkers: []string{},
		Theories: []string{},
	}
	if strings.TrimSpace(rawText) == "" {
		return m
	}

	lowered := strings.ToLower(rawText)
	for _, cat := range l.scanOrder() {
		for _, term := range l.terms[cat] {
			if !strings.Contains(lowered, term) {
				continue
			}
			if len(m.Keywords) < MaxKeywords {
				m.Keywords = append(m.Keywords, term)
			}
			switch cat {
			case CategoryThinkers:
				if len(m.Thinkers) < MaxThinkers {
					m.Thinkers = append(m.Thinkers, term)
				}
			case CategoryTheories:
				if len(m.Theories) < MaxTheories {
					m.Theories = append(m.Theories, term)
				}
			}
		}
	}
	return m
}

// scanOrder lists the built-in categories first, then any custom
// categories in name order.
func (l *DomainLexicon) scanOrder() []Category {
	order := make([]Category, 0, len(l.terms))
	seen := make(map[Category]bool, len(l.terms))
	for _, cat := range categoryOrder {
		if _, ok := l.terms[cat]; ok {
			order = append(order, cat)
			seen[cat] = true
		}
	}
	extra := make([]string, 0)
	for cat := range l.terms {
		if !seen[cat] {
			extra = append(extra, string(cat))
		}
	}
	sort.Strings(extra)
	for _, cat := range extra {
		order = append(order, Category(cat))
	}
	return order
}

package textproc

import (
	"regexp"
	"strings"
)

// StructuralMetrics captures the shape of an answer independent of its
// vocabulary: how many words, sentences, and paragraphs it contains.
type StructuralMetrics struct {
	WordCount      int `json:"word_count"`
	SentenceCount  int `json:"sentence_count"`
	ParagraphCount int `json:"paragraph_count"`
}

var (
	blankLinePattern   = regexp.MustCompile(`\n\s*\n`)
	sentenceEndPattern = regexp.MustCompile(`[.!?]+`)
)

// WordCount returns the number of whitespace-delimited tokens in text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// SentenceCount splits text on runs of '.', '!', '?' and returns the
// number of segments with non-whitespace content.
func SentenceCount(text string) int {
	count := 0
	for _, seg := range sentenceEndPattern.Split(text, -1) {
		if strings.TrimSpace(seg) != "" {
			count++
		}
	}
	return count
}

// ParagraphCount returns the number of blank-line-separated blocks with
// non-whitespace content.
func ParagraphCount(text string) int {
	count := 0
	for _, block := range blankLinePattern.Split(text, -1) {
		if strings.TrimSpace(block) != "" {
			count++
		}
	}
	return count
}

// Measure computes all three structural metrics for text. Empty or
// whitespace-only input yields zero counts.
func Measure(text string) StructuralMetrics {
	return StructuralMetrics{
		WordCount:      WordCount(text),
		SentenceCount:  SentenceCount(text),
		ParagraphCount: ParagraphCount(text),
	}
}

package answer

import (
	"github.com/turtacn/AnswerKey-Intelligence/internal/domain/lexicon"
	"github.com/turtacn/AnswerKey-Intelligence/internal/domain/textproc"
	atypes "github.com/turtacn/AnswerKey-Intelligence/pkg/types/answer"
)

// ExtractFeatures computes the full feature set of one raw answer text:
// lexicon matches (keywords, thinkers, theories) plus structural metrics.
// Lexicon matching runs on the raw text so multi-word phrases survive;
// extraction is deterministic and never fails, empty input simply yields
// empty lists and zero counts.
func ExtractFeatures(rawText string, lex *lexicon.DomainLexicon) atypes.FeatureSet {
	matches := lex.Extract(rawText)
	metrics := textproc.Measure(rawText)

	return atypes.FeatureSet{
		Keywords:       matches.Keywords,
		Thinkers:       matches.Thinkers,
		Theories:       matches.Theories,
		WordCount:      metrics.WordCount,
		SentenceCount:  metrics.SentenceCount,
		ParagraphCount: metrics.ParagraphCount,
	}
}

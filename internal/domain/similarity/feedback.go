package similarity

import (
	"strings"

	atypes "github.com/turtacn/AnswerKey-Intelligence/pkg/types/answer"
)

// Feedback thresholds.  Dimension rules fire below their threshold;
// overall rules fire above.  Each rule is evaluated independently, so
// several can trigger on one score set.
const (
	ThresholdContentWeak   = 0.5
	ThresholdKeywordWeak   = 0.4
	ThresholdStructureWeak = 0.6
	ThresholdTheoryWeak    = 0.3
	ThresholdExcellent     = 0.7
	ThresholdEncouraging   = 0.5
)

const fallbackFeedback = "Keep practicing to improve your sociological analysis."

// Synthesize maps a score set to feedback text and improvement
// suggestions through the fixed rule table.  Triggered sentences are
// space-joined in rule order; suggestions keep the same order and are
// not deduplicated.  When no rule triggers, the generic fallback
// sentence is returned.
func Synthesize(scores atypes.SimilarityScores) atypes.FeedbackPayload {
	var parts []string
	suggestions := []string{}
	strengths := []string{}
	improvements := []string{}

	if scores.Content < ThresholdContentWeak {
		parts = append(parts, "Your answer could benefit from more comprehensive coverage of the topic.")
		suggestions = append(suggestions,
			"Include more sociological concepts and examples",
			"Expand on key arguments with supporting evidence")
		improvements = append(improvements, "content coverage")
	} else {
		strengths = append(strengths, "content coverage")
	}

	if scores.Keyword < ThresholdKeywordWeak {
		parts = append(parts, "Consider incorporating more sociology-specific terminology.")
		suggestions = append(suggestions,
			"Use relevant sociological keywords and concepts",
			"Reference appropriate sociological thinkers")
		improvements = append(improvements, "terminology")
	} else {
		strengths = append(strengths, "terminology")
	}

	if scores.Structure < ThresholdStructureWeak {
		parts = append(parts, "Your answer structure could be improved for better clarity.")
		suggestions = append(suggestions,
			"Organize your answer with clear paragraphs",
			"Use topic sentences to guide your arguments")
		improvements = append(improvements, "structure")
	} else {
		strengths = append(strengths, "structure")
	}

	if scores.Theory < ThresholdTheoryWeak {
		parts = append(parts, "Incorporate relevant sociological theories to strengthen your analysis.")
		suggestions = append(suggestions,
			"Apply appropriate theoretical frameworks",
			"Connect your arguments to sociological theories")
		improvements = append(improvements, "theoretical grounding")
	} else {
		strengths = append(strengths, "theoretical grounding")
	}

	if scores.Overall > ThresholdExcellent {
		parts = append(parts, "Excellent work! Your answer demonstrates strong sociological understanding.")
	} else if scores.Overall > ThresholdEncouraging {
		parts = append(parts, "Good effort! With some improvements, your answer could be even stronger.")
	}

	text := fallbackFeedback
	if len(parts) > 0 {
		text = strings.Join(parts, " ")
	}

	return atypes.FeedbackPayload{
		Text:             text,
		Suggestions:      suggestions,
		Strengths:        strengths,
		ImprovementAreas: improvements,
	}
}

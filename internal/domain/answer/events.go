package answer

import (
	"github.com/turtacn/AnswerKey-Intelligence/pkg/types/common"
)

// AnalysisCompletedEvent is published after an analysis is persisted.
type AnalysisCompletedEvent struct {
	common.BaseEvent
	AnswerID        string  `json:"answer_id"`
	QuestionID      string  `json:"question_id"`
	BestReferenceID string  `json:"best_reference_id"`
	OverallScore    float64 `json:"overall_score"`
	ComparedCount   int     `json:"compared_count"`
}

func NewAnalysisCompletedEvent(a *Analysis, questionID common.QuestionID) *AnalysisCompletedEvent {
	return &AnalysisCompletedEvent{
		BaseEvent:       common.NewBaseEvent(string(a.ID)),
		AnswerID:        string(a.AnswerID),
		QuestionID:      string(questionID),
		BestReferenceID: string(a.BestReferenceID),
		OverallScore:    a.Scores.Overall,
		ComparedCount:   a.ComparedCount,
	}
}

// ReferenceIngestedEvent is published after a reference answer is stored
// with its precomputed features.
type ReferenceIngestedEvent struct {
	common.BaseEvent
	ReferenceID  string `json:"reference_id"`
	QuestionID   string `json:"question_id"`
	TopperName   string `json:"topper_name"`
	Year         int    `json:"year"`
	KeywordCount int    `json:"keyword_count"`
}

func NewReferenceIngestedEvent(r *ReferenceAnswer) *ReferenceIngestedEvent {
	return &ReferenceIngestedEvent{
		BaseEvent:    common.NewBaseEvent(string(r.ID)),
		ReferenceID:  string(r.ID),
		QuestionID:   string(r.QuestionID),
		TopperName:   r.TopperName,
		Year:         r.Year,
		KeywordCount: len(r.Features.Keywords),
	}
}

// Package answer implements the answer bounded context: candidate answer
// submissions, ingested reference answers with their precomputed features,
// and the stored similarity analyses that link the two.  Scoring itself
// lives in the similarity package; this package owns the entities, their
// invariants, and the persistence contracts.
package answer

import (
	"fmt"
	"strings"
	"time"

	"github.com/turtacn/AnswerKey-Intelligence/pkg/errors"
	atypes "github.com/turtacn/AnswerKey-Intelligence/pkg/types/answer"
	"github.com/turtacn/AnswerKey-Intelligence/pkg/types/common"
)

// Reference answers older than this are rejected at ingestion; exam
// archives the platform ingests do not predate it.
const MinReferenceYear = 1950

// ─────────────────────────────────────────────────────────────────────────────
// Answer aggregate
// ─────────────────────────────────────────────────────────────────────────────

// Answer is a candidate submission for a question.  The text is immutable
// after creation; re-submission creates a new Answer.
type Answer struct {
	common.BaseEntity

	QuestionID common.QuestionID `json:"question_id"`
	UserID     common.UserID     `json:"user_id,omitempty"`
	Text       string            `json:"text"`
	WordCount  int               `json:"word_count"`
}

// NewAnswer constructs a candidate answer.  Empty text is accepted (it
// scores near zero rather than failing); maxTextLength of zero disables
// the length bound.
func NewAnswer(questionID common.QuestionID, userID common.UserID, text string, maxTextLength int) (*Answer, error) {
	if strings.TrimSpace(string(questionID)) == "" {
		return nil, errors.New(errors.ErrCodeValidation, "question_id is required")
	}
	if maxTextLength > 0 && len(text) > maxTextLength {
		return nil, errors.New(errors.ErrCodeAnswerTextTooLong,
			fmt.Sprintf("answer text exceeds %d characters", maxTextLength))
	}

	now := time.Now().UTC()
	return &Answer{
		BaseEntity: common.BaseEntity{
			ID:        common.NewID(),
			CreatedAt: now,
			UpdatedAt: now,
			Version:   1,
		},
		QuestionID: questionID,
		UserID:     userID,
		Text:       text,
		WordCount:  len(strings.Fields(text)),
	}, nil
}

// ToDTO converts the aggregate to its wire representation.
func (a *Answer) ToDTO() *atypes.AnswerDTO {
	return &atypes.AnswerDTO{
		BaseEntity: a.BaseEntity,
		QuestionID: a.QuestionID,
		UserID:     a.UserID,
		Text:       a.Text,
		WordCount:  a.WordCount,
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// ReferenceAnswer aggregate
// ─────────────────────────────────────────────────────────────────────────────

// ReferenceAnswer is a known high-quality answer for a question, ingested
// by an administrator.  Features are extracted once at ingestion and
// stored alongside the text so comparisons never re-extract them; the
// entity is never mutated afterwards.
type ReferenceAnswer struct {
	common.BaseEntity

	QuestionID    common.QuestionID `json:"question_id"`
	TopperName    string            `json:"topper_name"`
	Year          int               `json:"year"`
	Rank          int               `json:"rank,omitempty"`
	MarksObtained float64           `json:"marks_obtained,omitempty"`
	Text          string            `json:"text"`
	Features      atypes.FeatureSet `json:"features"`
}

// NewReferenceAnswer validates the ingestion metadata and builds the
// aggregate.  The caller supplies the precomputed features.
func NewReferenceAnswer(questionID common.QuestionID, topperName string, year, rank int, marks float64, text string, features atypes.FeatureSet) (*ReferenceAnswer, error) {
	if strings.TrimSpace(string(questionID)) == "" {
		return nil, errors.New(errors.ErrCodeValidation, "question_id is required")
	}
	if strings.TrimSpace(topperName) == "" {
		return nil, errors.New(errors.ErrCodeValidation, "topper_name is required")
	}
	if strings.TrimSpace(text) == "" {
		return nil, errors.New(errors.ErrCodeReferenceEmptyText, "reference answer text must not be empty")
	}
	if year < MinReferenceYear || year > time.Now().UTC().Year()+1 {
		return nil, errors.New(errors.ErrCodeReferenceInvalidYear,
			fmt.Sprintf("year %d is outside the accepted range", year))
	}

	now := time.Now().UTC()
	return &ReferenceAnswer{
		BaseEntity: common.BaseEntity{
			ID:        common.NewID(),
			CreatedAt: now,
			UpdatedAt: now,
			Version:   1,
		},
		QuestionID:    questionID,
		TopperName:    topperName,
		Year:          year,
		Rank:          rank,
		MarksObtained: marks,
		Text:          text,
		Features:      features,
	}, nil
}

// ToDTO converts the aggregate to its wire representation.
func (r *ReferenceAnswer) ToDTO() *atypes.ReferenceAnswerDTO {
	return &atypes.ReferenceAnswerDTO{
		BaseEntity:    r.BaseEntity,
		QuestionID:    r.QuestionID,
		TopperName:    r.TopperName,
		Year:          r.Year,
		Rank:          r.Rank,
		MarksObtained: r.MarksObtained,
		Text:          r.Text,
		Features:      r.Features,
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Analysis aggregate
// ─────────────────────────────────────────────────────────────────────────────

// Analysis is the stored outcome of comparing one candidate answer
// against every reference answer for its question: the best-matching
// reference, the score set against it, and the synthesized feedback.
// At most one Analysis exists per answer; repeat requests return the
// stored row.
type Analysis struct {
	common.BaseEntity

	AnswerID        common.ID               `json:"answer_id"`
	BestReferenceID common.ID               `json:"best_reference_id"`
	Scores          atypes.SimilarityScores `json:"scores"`
	Feedback        atypes.FeedbackPayload  `json:"feedback"`
	ComparedCount   int                     `json:"compared_count"`
}

// NewAnalysis builds an Analysis record for persistence.
func NewAnalysis(answerID, bestReferenceID common.ID, scores atypes.SimilarityScores, feedback atypes.FeedbackPayload, comparedCount int) (*Analysis, error) {
	if answerID == "" {
		return nil, errors.New(errors.ErrCodeValidation, "answer_id is required")
	}
	if bestReferenceID == "" {
		return nil, errors.New(errors.ErrCodeValidation, "best_reference_id is required")
	}
	if comparedCount < 1 {
		return nil, errors.New(errors.ErrCodeValidation, "compared_count must be at least 1")
	}

	now := time.Now().UTC()
	return &Analysis{
		BaseEntity: common.BaseEntity{
			ID:        common.NewID(),
			CreatedAt: now,
			UpdatedAt: now,
			Version:   1,
		},
		AnswerID:        answerID,
		BestReferenceID: bestReferenceID,
		Scores:          scores,
		Feedback:        feedback,
		ComparedCount:   comparedCount,
	}, nil
}

// ToDTO converts the aggregate to its wire representation.
func (a *Analysis) ToDTO() *atypes.AnalysisDTO {
	return &atypes.AnalysisDTO{
		BaseEntity:      a.BaseEntity,
		AnswerID:        a.AnswerID,
		BestReferenceID: a.BestReferenceID,
		Scores:          a.Scores,
		Feedback:        a.Feedback,
		ComparedCount:   a.ComparedCount,
	}
}

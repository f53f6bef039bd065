// Package answer defines all answer-domain Data Transfer Objects, enumerations,
// and request/response structures used across every layer of the
// AnswerKey-Intelligence platform.  No domain logic lives here — only plain
// data types that are safe to import from any layer without creating circular
// dependencies.
package answer

import (
	"github.com/turtacn/AnswerKey-Intelligence/pkg/types/common"
)

// ─────────────────────────────────────────────────────────────────────────────
// Subject — the exam subject a question belongs to
// ─────────────────────────────────────────────────────────────────────────────

// Subject identifies the humanities discipline whose domain lexicon is used
// when extracting features from an answer.
type Subject string

const (
	// SubjectSociology is the default subject; its lexicon ships built in.
	SubjectSociology Subject = "sociology"

	// SubjectPoliticalScience is reserved for a future lexicon catalogue.
	SubjectPoliticalScience Subject = "political_science"

	// SubjectHistory is reserved for a future lexicon catalogue.
	SubjectHistory Subject = "history"
)

// ─────────────────────────────────────────────────────────────────────────────
// SimilarityScores — the four sub-scores plus the weighted overall score
// ─────────────────────────────────────────────────────────────────────────────

// SimilarityScores carries the result of scoring one candidate answer against
// one reference answer.  Every field lies in [0, 1]; Overall is rounded to
// three decimal places.
type SimilarityScores struct {
	// Content is the TF-IDF cosine similarity over normalized texts.
	Content float64 `json:"content_similarity"`

	// Keyword is the Jaccard similarity of extracted keyword sets.
	Keyword float64 `json:"keyword_similarity"`

	// Structure compares paragraph, sentence, and word counts.
	Structure float64 `json:"structure_similarity"`

	// Theory is the Jaccard similarity of referenced theory sets.
	Theory float64 `json:"theory_similarity"`

	// Overall is the weighted aggregate:
	// 0.40·Content + 0.25·Keyword + 0.20·Structure + 0.15·Theory.
	Overall float64 `json:"overall_similarity"`
}

// ─────────────────────────────────────────────────────────────────────────────
// FeatureSet — lexicon and structural features of a single answer text
// ─────────────────────────────────────────────────────────────────────────────

// FeatureSet is the wire representation of the features extracted from one
// answer text.  Keywords span every lexicon category; Thinkers and Theories
// are the two categories surfaced individually because the scorer and the
// feedback synthesizer treat them specially.
type FeatureSet struct {
	Keywords       []string `json:"keywords"`
	Thinkers       []string `json:"thinkers"`
	Theories       []string `json:"theories"`
	WordCount      int      `json:"word_count"`
	SentenceCount  int      `json:"sentence_count"`
	ParagraphCount int      `json:"paragraph_count"`
}

// ─────────────────────────────────────────────────────────────────────────────
// FeedbackPayload — human-readable evaluation attached to a comparison
// ─────────────────────────────────────────────────────────────────────────────

// FeedbackPayload bundles the narrative feedback text with its actionable
// suggestions and the identified strength/improvement areas.
type FeedbackPayload struct {
	// Text is the space-joined concatenation of every triggered feedback
	// sentence, in rule order.
	Text string `json:"text"`

	// Suggestions preserves duplicates and rule order.
	Suggestions []string `json:"suggestions"`

	Strengths        []string `json:"strengths"`
	ImprovementAreas []string `json:"improvement_areas"`
}

// ─────────────────────────────────────────────────────────────────────────────
// DTOs
// ─────────────────────────────────────────────────────────────────────────────

// AnswerDTO is the canonical candidate-answer representation passed between
// the application, interface, and client layers.
type AnswerDTO struct {
	common.BaseEntity

	QuestionID common.QuestionID `json:"question_id"`
	UserID     common.UserID     `json:"user_id,omitempty"`
	Text       string            `json:"text"`
	WordCount  int               `json:"word_count"`
}

// ReferenceAnswerDTO is the wire representation of an ingested topper answer,
// including the features precomputed at ingestion time.
type ReferenceAnswerDTO struct {
	common.BaseEntity

	QuestionID    common.QuestionID `json:"question_id"`
	TopperName    string            `json:"topper_name"`
	Year          int               `json:"year"`
	Rank          int               `json:"rank,omitempty"`
	MarksObtained float64           `json:"marks_obtained,omitempty"`
	Text          string            `json:"text"`
	Features      FeatureSet        `json:"features"`
}

// AnalysisDTO is the wire representation of a stored similarity analysis:
// the best-matching reference, its scores, and the synthesized feedback.
type AnalysisDTO struct {
	common.BaseEntity

	AnswerID        common.ID        `json:"answer_id"`
	BestReferenceID common.ID        `json:"best_reference_id"`
	Scores          SimilarityScores `json:"scores"`
	Feedback        FeedbackPayload  `json:"feedback"`
	ComparedCount   int              `json:"compared_count"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Requests
// ─────────────────────────────────────────────────────────────────────────────

// SubmitAnswerRequest is the POST /answers payload.
type SubmitAnswerRequest struct {
	QuestionID string `json:"question_id" binding:"required"`
	UserID     string `json:"user_id"`
	Text       string `json:"text" binding:"required"`
}

// IngestReferenceRequest is the POST /reference-answers payload.
type IngestReferenceRequest struct {
	QuestionID    string  `json:"question_id" binding:"required"`
	TopperName    string  `json:"topper_name" binding:"required"`
	Year          int     `json:"year" binding:"required"`
	Rank          int     `json:"rank"`
	MarksObtained float64 `json:"marks_obtained"`
	Text          string  `json:"text" binding:"required"`
}

// CompareRequest is the CLI/offline comparison payload: one candidate text
// against ad-hoc reference texts, bypassing persistence.
type CompareRequest struct {
	CandidateText  string   `json:"candidate_text"`
	ReferenceTexts []string `json:"reference_texts"`
}

// Package analysis provides the application-level service orchestrating
// answer submission, reference ingestion, and similarity analysis.  It
// sits between the HTTP/CLI handlers and the domain packages: handlers
// speak DTOs, this service speaks aggregates and repositories.
package analysis

import (
	"context"
	"time"

	domain "github.com/turtacn/AnswerKey-Intelligence/internal/domain/answer"
	"github.com/turtacn/AnswerKey-Intelligence/internal/domain/lexicon"
	"github.com/turtacn/AnswerKey-Intelligence/internal/domain/similarity"
	"github.com/turtacn/AnswerKey-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/AnswerKey-Intelligence/pkg/errors"
	atypes "github.com/turtacn/AnswerKey-Intelligence/pkg/types/answer"
	"github.com/turtacn/AnswerKey-Intelligence/pkg/types/common"
)

// Kafka topics carrying analysis domain events.
const (
	TopicAnalysisCompleted = "answerkey.analysis.completed"
	TopicReferenceIngested = "answerkey.reference.ingested"
)

// AnalysisCache is the read-through cache for stored analyses, keyed by
// answer ID.  Get returns (nil, nil) on a miss.
type AnalysisCache interface {
	Get(ctx context.Context, answerID common.ID) (*domain.Analysis, error)
	Set(ctx context.Context, a *domain.Analysis) error
}

// EventPublisher delivers domain events to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event common.DomainEvent) error
}

// Recorder receives the service-level metrics.
type Recorder interface {
	ObserveAnalysisDuration(d time.Duration)
	IncAnalyses(outcome string)
	IncReferencesIngested()
}

// Service is the application-facing contract for the answer analysis
// workflows.
type Service interface {
	SubmitAnswer(ctx context.Context, req *atypes.SubmitAnswerRequest) (*atypes.AnswerDTO, error)
	GetAnswer(ctx context.Context, id string) (*atypes.AnswerDTO, error)
	ListAnswers(ctx context.Context, questionID string, p common.Pagination) ([]*atypes.AnswerDTO, int64, error)

	IngestReference(ctx context.Context, req *atypes.IngestReferenceRequest) (*atypes.ReferenceAnswerDTO, error)
	GetReference(ctx context.Context, id string) (*atypes.ReferenceAnswerDTO, error)
	ListReferences(ctx context.Context, questionID string) ([]*atypes.ReferenceAnswerDTO, error)

	ExtractFeatures(text string) atypes.FeatureSet
	Compare(req *atypes.CompareRequest) (*ComparisonResult, error)
	AnalyzeAnswer(ctx context.Context, answerID string) (*atypes.AnalysisDTO, error)
	GetAnalysis(ctx context.Context, answerID string) (*atypes.AnalysisDTO, error)
}

// ComparisonResult is the outcome of an ad-hoc comparison that bypasses
// persistence: the winning reference position, its scores, and the
// synthesized feedback.
type ComparisonResult struct {
	BestIndex     int                     `json:"best_index"`
	Scores        atypes.SimilarityScores `json:"scores"`
	Feedback      atypes.FeedbackPayload  `json:"feedback"`
	ComparedCount int                     `json:"compared_count"`
}

// Deps bundles the collaborators of the analysis service.  Cache,
// Publisher, and Metrics are optional; a nil value disables the concern.
type Deps struct {
	Answers    domain.AnswerRepository
	References domain.ReferenceRepository
	Analyses   domain.AnalysisRepository
	Cache      AnalysisCache
	Publisher  EventPublisher
	Metrics    Recorder
	Lexicon    *lexicon.DomainLexicon
	Scorer     *similarity.Scorer
	Logger     logging.Logger

	// MaxTextLength bounds submitted answer text; zero disables.
	MaxTextLength int
}

type serviceImpl struct {
	deps Deps
}

// NewService wires the analysis service.  Lexicon, Scorer, and the three
// repositories are required.
func NewService(deps Deps) Service {
	if deps.Logger == nil {
		deps.Logger = logging.NewNopLogger()
	}
	return &serviceImpl{deps: deps}
}

// ─────────────────────────────────────────────────────────────────────────────
// Answers
// ─────────────────────────────────────────────────────────────────────────────

func (s *serviceImpl) SubmitAnswer(ctx context.Context, req *atypes.SubmitAnswerRequest) (*atypes.AnswerDTO, error) {
	a, err := domain.NewAnswer(common.QuestionID(req.QuestionID), common.UserID(req.UserID), req.Text, s.deps.MaxTextLength)
	if err != nil {
		return nil, err
	}
	if err := s.deps.Answers.Create(ctx, a); err != nil {
		s.deps.Logger.Error("failed to store answer",
			logging.String("question_id", req.QuestionID),
			logging.Err(err))
		return nil, err
	}

	s.deps.Logger.Info("answer submitted",
		logging.String("answer_id", string(a.ID)),
		logging.String("question_id", string(a.QuestionID)),
		logging.Int("word_count", a.WordCount))
	return a.ToDTO(), nil
}

func (s *serviceImpl) GetAnswer(ctx context.Context, id string) (*atypes.AnswerDTO, error) {
	a, err := s.deps.Answers.GetByID(ctx, common.ID(id))
	if err != nil {
		return nil, err
	}
	return a.ToDTO(), nil
}

func (s *serviceImpl) ListAnswers(ctx context.Context, questionID string, p common.Pagination) ([]*atypes.AnswerDTO, int64, error) {
	if err := p.Validate(); err != nil {
		return nil, 0, err
	}
	answers, total, err := s.deps.Answers.ListByQuestion(ctx, common.QuestionID(questionID), p)
	if err != nil {
		return nil, 0, err
	}
	dtos := make([]*atypes.AnswerDTO, len(answers))
	for i, a := range answers {
		dtos[i] = a.ToDTO()
	}
	return dtos, total, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Reference answers
// ─────────────────────────────────────────────────────────────────────────────

func (s *serviceImpl) IngestReference(ctx context.Context, req *atypes.IngestReferenceRequest) (*atypes.ReferenceAnswerDTO, error) {
	features := domain.ExtractFeatures(req.Text, s.deps.Lexicon)

	ref, err := domain.NewReferenceAnswer(
		common.QuestionID(req.QuestionID),
		req.TopperName,
		req.Year,
		req.Rank,
		req.MarksObtained,
		req.Text,
		features,
	)
	if err != nil {
		return nil, err
	}

	if err := s.deps.References.Create(ctx, ref); err != nil {
		s.deps.Logger.Error("failed to store reference answer",
			logging.String("question_id", req.QuestionID),
			logging.Err(err))
		return nil, err
	}

	if s.deps.Metrics != nil {
		s.deps.Metrics.IncReferencesIngested()
	}
	s.publish(ctx, TopicReferenceIngested, domain.NewReferenceIngestedEvent(ref))

	s.deps.Logger.Info("reference answer ingested",
		logging.String("reference_id", string(ref.ID)),
		logging.String("question_id", string(ref.QuestionID)),
		logging.Strings("keywords", features.Keywords))
	return ref.ToDTO(), nil
}

func (s *serviceImpl) GetReference(ctx context.Context, id string) (*atypes.ReferenceAnswerDTO, error) {
	ref, err := s.deps.References.GetByID(ctx, common.ID(id))
	if err != nil {
		return nil, err
	}
	return ref.ToDTO(), nil
}

func (s *serviceImpl) ListReferences(ctx context.Context, questionID string) ([]*atypes.ReferenceAnswerDTO, error) {
	refs, err := s.deps.References.ListByQuestion(ctx, common.QuestionID(questionID))
	if err != nil {
		return nil, err
	}
	dtos := make([]*atypes.ReferenceAnswerDTO, len(refs))
	for i, r := range refs {
		dtos[i] = r.ToDTO()
	}
	return dtos, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Analysis
// ─────────────────────────────────────────────────────────────────────────────

func (s *serviceImpl) ExtractFeatures(text string) atypes.FeatureSet {
	return domain.ExtractFeatures(text, s.deps.Lexicon)
}

// Compare scores a candidate against ad-hoc reference texts, extracting
// features on the fly.  Used by the CLI; nothing is persisted.
func (s *serviceImpl) Compare(req *atypes.CompareRequest) (*ComparisonResult, error) {
	if len(req.ReferenceTexts) == 0 {
		return nil, errors.NoReferenceData("no reference answers available for comparison")
	}

	candidateFeatures := domain.ExtractFeatures(req.CandidateText, s.deps.Lexicon)

	scores := make([]atypes.SimilarityScores, len(req.ReferenceTexts))
	for i, refText := range req.ReferenceTexts {
		refFeatures := domain.ExtractFeatures(refText, s.deps.Lexicon)
		scores[i] = s.deps.Scorer.Score(req.CandidateText, candidateFeatures, refText, refFeatures)
	}

	best := similarity.BestIndex(scores)
	return &ComparisonResult{
		BestIndex:     best,
		Scores:        scores[best],
		Feedback:      similarity.Synthesize(scores[best]),
		ComparedCount: len(scores),
	}, nil
}

// AnalyzeAnswer runs the full analysis workflow for a stored answer.
// Analysis is idempotent per answer: an existing stored (or cached)
// analysis is returned without rescoring.
func (s *serviceImpl) AnalyzeAnswer(ctx context.Context, answerID string) (*atypes.AnalysisDTO, error) {
	started := time.Now()

	if cached := s.cachedAnalysis(ctx, common.ID(answerID)); cached != nil {
		return cached.ToDTO(), nil
	}
	if existing, err := s.deps.Analyses.GetByAnswerID(ctx, common.ID(answerID)); err == nil && existing != nil {
		s.cacheAnalysis(ctx, existing)
		return existing.ToDTO(), nil
	} else if err != nil && !errors.IsNotFound(err) {
		return nil, err
	}

	a, err := s.deps.Answers.GetByID(ctx, common.ID(answerID))
	if err != nil {
		return nil, err
	}

	refs, err := s.deps.References.ListByQuestion(ctx, a.QuestionID)
	if err != nil {
		return nil, err
	}
	if len(refs) == 0 {
		return nil, errors.NoReferenceData("no reference answers available for comparison")
	}

	candidateFeatures := domain.ExtractFeatures(a.Text, s.deps.Lexicon)

	// Score every pair first, then reduce; keeps the first-wins tie
	// break stable no matter how scoring is scheduled.
	scores := make([]atypes.SimilarityScores, len(refs))
	for i, ref := range refs {
		scores[i] = s.deps.Scorer.Score(a.Text, candidateFeatures, ref.Text, ref.Features)
	}
	best := similarity.BestIndex(scores)

	feedback := similarity.Synthesize(scores[best])

	record, err := domain.NewAnalysis(a.ID, refs[best].ID, scores[best], feedback, len(refs))
	if err != nil {
		return nil, err
	}
	if err := s.deps.Analyses.Create(ctx, record); err != nil {
		s.deps.Logger.Error("failed to persist analysis",
			logging.String("answer_id", answerID),
			logging.Err(err))
		s.observeAnalysis(started, "error")
		return nil, errors.Wrap(err, errors.ErrCodeAnalysisPersistError, "failed to persist analysis")
	}

	s.cacheAnalysis(ctx, record)
	s.publish(ctx, TopicAnalysisCompleted, domain.NewAnalysisCompletedEvent(record, a.QuestionID))
	s.observeAnalysis(started, "ok")

	s.deps.Logger.Info("analysis completed",
		logging.String("answer_id", answerID),
		logging.String("best_reference_id", string(refs[best].ID)),
		logging.Float64("overall", scores[best].Overall),
		logging.Int("compared_count", len(refs)))
	return record.ToDTO(), nil
}

func (s *serviceImpl) GetAnalysis(ctx context.Context, answerID string) (*atypes.AnalysisDTO, error) {
	if cached := s.cachedAnalysis(ctx, common.ID(answerID)); cached != nil {
		return cached.ToDTO(), nil
	}
	record, err := s.deps.Analyses.GetByAnswerID(ctx, common.ID(answerID))
	if err != nil {
		return nil, err
	}
	s.cacheAnalysis(ctx, record)
	return record.ToDTO(), nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Internal helpers
// ─────────────────────────────────────────────────────────────────────────────

func (s *serviceImpl) cachedAnalysis(ctx context.Context, answerID common.ID) *domain.Analysis {
	if s.deps.Cache == nil {
		return nil
	}
	record, err := s.deps.Cache.Get(ctx, answerID)
	if err != nil {
		s.deps.Logger.Warn("analysis cache read failed",
			logging.String("answer_id", string(answerID)),
			logging.Err(err))
		return nil
	}
	return record
}

func (s *serviceImpl) cacheAnalysis(ctx context.Context, record *domain.Analysis) {
	if s.deps.Cache == nil || record == nil {
		return
	}
	if err := s.deps.Cache.Set(ctx, record); err != nil {
		s.deps.Logger.Warn("analysis cache write failed",
			logging.String("answer_id", string(record.AnswerID)),
			logging.Err(err))
	}
}

func (s *serviceImpl) publish(ctx context.Context, topic string, event common.DomainEvent) {
	if s.deps.Publisher == nil {
		return
	}
	if err := s.deps.Publisher.Publish(ctx, topic, event); err != nil {
		// Event delivery is best-effort; the stored record is the
		// source of truth.
		s.deps.Logger.Warn("event publish failed",
			logging.String("topic", topic),
			logging.Err(err))
	}
}

func (s *serviceImpl) observeAnalysis(started time.Time, outcome string) {
	if s.deps.Metrics == nil {
		return
	}
	s.deps.Metrics.ObserveAnalysisDuration(time.Since(started))
	s.deps.Metrics.IncAnalyses(outcome)
}

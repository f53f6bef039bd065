package answer

import (
	"context"

	"github.com/turtacn/AnswerKey-Intelligence/pkg/types/common"
)

// AnswerRepository defines the persistence contract for candidate answers.
type AnswerRepository interface {
	Create(ctx context.Context, a *Answer) error
	GetByID(ctx context.Context, id common.ID) (*Answer, error)
	ListByQuestion(ctx context.Context, questionID common.QuestionID, p common.Pagination) ([]*Answer, int64, error)
	ListByUser(ctx context.Context, userID common.UserID, p common.Pagination) ([]*Answer, int64, error)
	Delete(ctx context.Context, id common.ID) error
}

// ReferenceRepository defines the persistence contract for reference
// answers.  ListByQuestion returns rows in ingestion order (creation
// time ascending); best-match selection depends on that order being
// stable.
type ReferenceRepository interface {
	Create(ctx context.Context, r *ReferenceAnswer) error
	GetByID(ctx context.Context, id common.ID) (*ReferenceAnswer, error)
	ListByQuestion(ctx context.Context, questionID common.QuestionID) ([]*ReferenceAnswer, error)
	CountByQuestion(ctx context.Context, questionID common.QuestionID) (int64, error)
	Delete(ctx context.Context, id common.ID) error
}

// AnalysisRepository defines the persistence contract for stored
// analyses.  The answer_id column carries a uniqueness constraint; a
// second Create for the same answer fails rather than duplicating.
type AnalysisRepository interface {
	Create(ctx context.Context, a *Analysis) error
	GetByID(ctx context.Context, id common.ID) (*Analysis, error)
	GetByAnswerID(ctx context.Context, answerID common.ID) (*Analysis, error)
	ExistsForAnswer(ctx context.Context, answerID common.ID) (bool, error)
	Delete(ctx context.Context, id common.ID) error
}

package repositories

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/turtacn/AnswerKey-Intelligence/internal/domain/answer"
	"github.com/turtacn/AnswerKey-Intelligence/internal/infrastructure/database/postgres"
	"github.com/turtacn/AnswerKey-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/AnswerKey-Intelligence/pkg/errors"
	"github.com/turtacn/AnswerKey-Intelligence/pkg/types/common"
)

const analysisColumns = `id, answer_id, best_reference_id, scores, feedback, compared_count, created_at, updated_at, version`

type postgresAnalysisRepo struct {
	conn     *postgres.Connection
	log      logging.Logger
	executor queryExecutor
}

// NewPostgresAnalysisRepo returns the PostgreSQL implementation of
// answer.AnalysisRepository.  The answer_id column carries a unique
// constraint, which is what makes repeat analysis requests idempotent
// even under concurrent writers.
func NewPostgresAnalysisRepo(conn *postgres.Connection, log logging.Logger) answer.AnalysisRepository {
	return &postgresAnalysisRepo{
		conn:     conn,
		log:      log,
		executor: conn.DB(),
	}
}

func (r *postgresAnalysisRepo) Create(ctx context.Context, a *answer.Analysis) error {
	query := `
		INSERT INTO analyses (` + analysisColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	scoresJSON, err := json.Marshal(a.Scores)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode scores")
	}
	feedbackJSON, err := json.Marshal(a.Feedback)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode feedback")
	}

	_, err = r.executor.ExecContext(ctx, query,
		a.ID, a.AnswerID, a.BestReferenceID, scoresJSON, feedbackJSON,
		a.ComparedCount, a.CreatedAt, a.UpdatedAt, a.Version,
	)
	if err != nil {
		if isUniqueViolation(err, "analyses_answer_id_key") {
			return errors.Wrap(err, errors.ErrCodeConflict, "analysis already exists for answer")
		}
		r.log.Error("insert analysis failed", logging.String("answer_id", string(a.AnswerID)), logging.Err(err))
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to create analysis")
	}
	return nil
}

func (r *postgresAnalysisRepo) GetByID(ctx context.Context, id common.ID) (*answer.Analysis, error) {
	query := `SELECT ` + analysisColumns + ` FROM analyses WHERE id = $1`
	return scanAnalysis(r.executor.QueryRowContext(ctx, query, id))
}

func (r *postgresAnalysisRepo) GetByAnswerID(ctx context.Context, answerID common.ID) (*answer.Analysis, error) {
	query := `SELECT ` + analysisColumns + ` FROM analyses WHERE answer_id = $1`
	return scanAnalysis(r.executor.QueryRowContext(ctx, query, answerID))
}

func (r *postgresAnalysisRepo) ExistsForAnswer(ctx context.Context, answerID common.ID) (bool, error) {
	var exists bool
	err := r.executor.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM analyses WHERE answer_id = $1)`, answerID,
	).Scan(&exists)
	if err != nil {
		return false, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to check analysis existence")
	}
	return exists, nil
}

func (r *postgresAnalysisRepo) Delete(ctx context.Context, id common.ID) error {
	res, err := r.executor.ExecContext(ctx, `DELETE FROM analyses WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to delete analysis")
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return errors.New(errors.ErrCodeAnalysisNotFound, "analysis not found: "+string(id))
	}
	return nil
}

func scanAnalysis(s scanner) (*answer.Analysis, error) {
	var (
		a            answer.Analysis
		scoresJSON   []byte
		feedbackJSON []byte
	)
	err := s.Scan(
		&a.ID, &a.AnswerID, &a.BestReferenceID, &scoresJSON, &feedbackJSON,
		&a.ComparedCount, &a.CreatedAt, &a.UpdatedAt, &a.Version,
	)
	if err == sql.ErrNoRows {
		return nil, errors.New(errors.ErrCodeAnalysisNotFound, "analysis not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan analysis")
	}
	if len(scoresJSON) > 0 {
		if err := json.Unmarshal(scoresJSON, &a.Scores); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeSerialization, "failed to decode scores")
		}
	}
	if len(feedbackJSON) > 0 {
		if err := json.Unmarshal(feedbackJSON, &a.Feedback); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeSerialization, "failed to decode feedback")
		}
	}
	return &a, nil
}

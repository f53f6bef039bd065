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

const referenceColumns = `id, question_id, topper_name, year, rank, marks_obtained, text, features, created_at, updated_at, version`

type postgresReferenceRepo struct {
	conn     *postgres.Connection
	log      logging.Logger
	executor queryExecutor
}

// NewPostgresReferenceRepo returns the PostgreSQL implementation of
// answer.ReferenceRepository.  Extracted features are stored in a JSONB
// column so comparison never re-extracts them.
func NewPostgresReferenceRepo(conn *postgres.Connection, log logging.Logger) answer.ReferenceRepository {
	return &postgresReferenceRepo{
		conn:     conn,
		log:      log,
		executor: conn.DB(),
	}
}

func (r *postgresReferenceRepo) Create(ctx context.Context, ref *answer.ReferenceAnswer) error {
	query := `
		INSERT INTO reference_answers (` + referenceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	featJSON, err := json.Marshal(ref.Features)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode reference features")
	}

	_, err = r.executor.ExecContext(ctx, query,
		ref.ID, ref.QuestionID, ref.TopperName, ref.Year, ref.Rank,
		ref.MarksObtained, ref.Text, featJSON,
		ref.CreatedAt, ref.UpdatedAt, ref.Version,
	)
	if err != nil {
		if isUniqueViolation(err, "reference_answers_pkey") {
			return errors.Wrap(err, errors.ErrCodeReferenceAlreadyExists, "reference answer already exists")
		}
		r.log.Error("insert reference answer failed", logging.String("reference_id", string(ref.ID)), logging.Err(err))
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to create reference answer")
	}
	return nil
}

func (r *postgresReferenceRepo) GetByID(ctx context.Context, id common.ID) (*answer.ReferenceAnswer, error) {
	query := `SELECT ` + referenceColumns + ` FROM reference_answers WHERE id = $1`
	return scanReference(r.executor.QueryRowContext(ctx, query, id))
}

// ListByQuestion returns every reference answer for the question in
// ingestion order.  Best-match selection resolves ties by position, so
// the ordering here must stay stable across calls.
func (r *postgresReferenceRepo) ListByQuestion(ctx context.Context, questionID common.QuestionID) ([]*answer.ReferenceAnswer, error) {
	query := `SELECT ` + referenceColumns + ` FROM reference_answers WHERE question_id = $1 ORDER BY created_at, id`
	rows, err := r.executor.QueryContext(ctx, query, questionID)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to list reference answers")
	}
	defer rows.Close()

	var refs []*answer.ReferenceAnswer
	for rows.Next() {
		ref, err := scanReference(rows)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to iterate reference answers")
	}
	return refs, nil
}

func (r *postgresReferenceRepo) CountByQuestion(ctx context.Context, questionID common.QuestionID) (int64, error) {
	var count int64
	err := r.executor.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reference_answers WHERE question_id = $1`, questionID,
	).Scan(&count)
	if err != nil {
		return 0, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to count reference answers")
	}
	return count, nil
}

func (r *postgresReferenceRepo) Delete(ctx context.Context, id common.ID) error {
	res, err := r.executor.ExecContext(ctx, `DELETE FROM reference_answers WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to delete reference answer")
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return errors.New(errors.ErrCodeReferenceNotFound, "reference answer not found: "+string(id))
	}
	return nil
}

func scanReference(s scanner) (*answer.ReferenceAnswer, error) {
	var (
		ref      answer.ReferenceAnswer
		featJSON []byte
	)
	err := s.Scan(
		&ref.ID, &ref.QuestionID, &ref.TopperName, &ref.Year, &ref.Rank,
		&ref.MarksObtained, &ref.Text, &featJSON,
		&ref.CreatedAt, &ref.UpdatedAt, &ref.Version,
	)
	if err == sql.ErrNoRows {
		return nil, errors.New(errors.ErrCodeReferenceNotFound, "reference answer not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan reference answer")
	}
	if len(featJSON) > 0 {
		if err := json.Unmarshal(featJSON, &ref.Features); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeSerialization, "failed to decode reference features")
		}
	}
	return &ref, nil
}

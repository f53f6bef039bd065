package repositories

import (
	"context"
	"database/sql"

	"github.com/turtacn/AnswerKey-Intelligence/internal/domain/answer"
	"github.com/turtacn/AnswerKey-Intelligence/internal/infrastructure/database/postgres"
	"github.com/turtacn/AnswerKey-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/AnswerKey-Intelligence/pkg/errors"
	"github.com/turtacn/AnswerKey-Intelligence/pkg/types/common"
)

const answerColumns = `id, question_id, user_id, text, word_count, created_at, updated_at, version`

type postgresAnswerRepo struct {
	conn     *postgres.Connection
	log      logging.Logger
	executor queryExecutor
}

// NewPostgresAnswerRepo returns the PostgreSQL implementation of
// answer.AnswerRepository.
func NewPostgresAnswerRepo(conn *postgres.Connection, log logging.Logger) answer.AnswerRepository {
	return &postgresAnswerRepo{
		conn:     conn,
		log:      log,
		executor: conn.DB(),
	}
}

func (r *postgresAnswerRepo) Create(ctx context.Context, a *answer.Answer) error {
	query := `
		INSERT INTO answers (` + answerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.executor.ExecContext(ctx, query,
		a.ID, a.QuestionID, a.UserID, a.Text, a.WordCount,
		a.CreatedAt, a.UpdatedAt, a.Version,
	)
	if err != nil {
		if isUniqueViolation(err, "answers_pkey") {
			return errors.Wrap(err, errors.ErrCodeAnswerAlreadyExists, "answer already exists")
		}
		r.log.Error("insert answer failed", logging.String("answer_id", string(a.ID)), logging.Err(err))
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to create answer")
	}
	return nil
}

func (r *postgresAnswerRepo) GetByID(ctx context.Context, id common.ID) (*answer.Answer, error) {
	query := `SELECT ` + answerColumns + ` FROM answers WHERE id = $1`
	return scanAnswer(r.executor.QueryRowContext(ctx, query, id))
}

func (r *postgresAnswerRepo) ListByQuestion(ctx context.Context, questionID common.QuestionID, p common.Pagination) ([]*answer.Answer, int64, error) {
	return r.list(ctx,
		`SELECT `+answerColumns+` FROM answers WHERE question_id = $1 ORDER BY created_at DESC, id LIMIT $2 OFFSET $3`,
		`SELECT COUNT(*) FROM answers WHERE question_id = $1`,
		string(questionID), p)
}

func (r *postgresAnswerRepo) ListByUser(ctx context.Context, userID common.UserID, p common.Pagination) ([]*answer.Answer, int64, error) {
	return r.list(ctx,
		`SELECT `+answerColumns+` FROM answers WHERE user_id = $1 ORDER BY created_at DESC, id LIMIT $2 OFFSET $3`,
		`SELECT COUNT(*) FROM answers WHERE user_id = $1`,
		string(userID), p)
}

func (r *postgresAnswerRepo) list(ctx context.Context, listQuery, countQuery, key string, p common.Pagination) ([]*answer.Answer, int64, error) {
	var total int64
	if err := r.executor.QueryRowContext(ctx, countQuery, key).Scan(&total); err != nil {
		return nil, 0, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to count answers")
	}

	rows, err := r.executor.QueryContext(ctx, listQuery, key, p.PageSize, p.Offset())
	if err != nil {
		return nil, 0, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to list answers")
	}
	defer rows.Close()

	answers := make([]*answer.Answer, 0, p.PageSize)
	for rows.Next() {
		a, err := scanAnswer(rows)
		if err != nil {
			return nil, 0, err
		}
		answers = append(answers, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to iterate answers")
	}
	return answers, total, nil
}

func (r *postgresAnswerRepo) Delete(ctx context.Context, id common.ID) error {
	res, err := r.executor.ExecContext(ctx, `DELETE FROM answers WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to delete answer")
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return errors.New(errors.ErrCodeAnswerNotFound, "answer not found: "+string(id))
	}
	return nil
}

func scanAnswer(s scanner) (*answer.Answer, error) {
	var a answer.Answer
	err := s.Scan(
		&a.ID, &a.QuestionID, &a.UserID, &a.Text, &a.WordCount,
		&a.CreatedAt, &a.UpdatedAt, &a.Version,
	)
	if err == sql.ErrNoRows {
		return nil, errors.New(errors.ErrCodeAnswerNotFound, "answer not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDatabaseError, "failed to scan answer")
	}
	return &a, nil
}

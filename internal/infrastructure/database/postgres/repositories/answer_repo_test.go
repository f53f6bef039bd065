package repositories

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/suite"

	"github.com/turtacn/AnswerKey-Intelligence/internal/domain/answer"
	"github.com/turtacn/AnswerKey-Intelligence/internal/infrastructure/database/postgres"
	"github.com/turtacn/AnswerKey-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/AnswerKey-Intelligence/pkg/errors"
	"github.com/turtacn/AnswerKey-Intelligence/pkg/types/common"
)

type AnswerRepoTestSuite struct {
	suite.Suite
	mock sqlmock.Sqlmock
	db   *sql.DB
	repo answer.AnswerRepository
}

func (s *AnswerRepoTestSuite) SetupTest() {
	var err error
	s.db, s.mock, err = sqlmock.New()
	s.NoError(err)

	logger := logging.NewNopLogger()
	conn := postgres.NewConnectionWithDB(s.db, logger)
	s.repo = NewPostgresAnswerRepo(conn, logger)
}

func (s *AnswerRepoTestSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
	s.db.Close()
}

func (s *AnswerRepoTestSuite) TestCreate_Success() {
	a, err := answer.NewAnswer("q-sociology-01", "user-1", "Functionalism explains social order.", 0)
	s.Require().NoError(err)

	s.mock.ExpectExec("INSERT INTO answers").
		WithArgs(a.ID, a.QuestionID, a.UserID, a.Text, a.WordCount,
			a.CreatedAt, a.UpdatedAt, a.Version).
		WillReturnResult(sqlmock.NewResult(0, 1))

	s.NoError(s.repo.Create(context.Background(), a))
}

func (s *AnswerRepoTestSuite) TestCreate_DatabaseError() {
	a, err := answer.NewAnswer("q-sociology-01", "user-1", "text", 0)
	s.Require().NoError(err)

	s.mock.ExpectExec("INSERT INTO answers").
		WillReturnError(sql.ErrConnDone)

	err = s.repo.Create(context.Background(), a)
	s.Error(err)
	s.True(errors.IsCode(err, errors.ErrCodeDatabaseError))
}

func (s *AnswerRepoTestSuite) TestGetByID_Found() {
	id := common.NewID()
	now := time.Now()

	s.mock.ExpectQuery(`SELECT id, question_id, .* FROM answers WHERE id = \$1`).
		WithArgs(id).
		WillReturnRows(answerRows().AddRow(
			id, "q-sociology-01", "user-1", "Conflict theory emphasises inequality.", 5,
			now, now, 1,
		))

	a, err := s.repo.GetByID(context.Background(), id)
	s.NoError(err)
	s.Equal(id, a.ID)
	s.Equal(common.QuestionID("q-sociology-01"), a.QuestionID)
	s.Equal(5, a.WordCount)
}

func (s *AnswerRepoTestSuite) TestGetByID_NotFound() {
	id := common.NewID()

	s.mock.ExpectQuery(`SELECT id, question_id, .* FROM answers WHERE id = \$1`).
		WithArgs(id).
		WillReturnError(sql.ErrNoRows)

	a, err := s.repo.GetByID(context.Background(), id)
	s.Nil(a)
	s.True(errors.IsCode(err, errors.ErrCodeAnswerNotFound))
	s.True(errors.IsNotFound(err))
}

func (s *AnswerRepoTestSuite) TestListByQuestion_ReturnsPageAndTotal() {
	now := time.Now()
	p := common.Pagination{Page: 1, PageSize: 10}

	s.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM answers WHERE question_id = \$1`).
		WithArgs("q-sociology-01").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	s.mock.ExpectQuery(`SELECT id, question_id, .* FROM answers WHERE question_id = \$1 ORDER BY created_at DESC`).
		WithArgs("q-sociology-01", 10, 0).
		WillReturnRows(answerRows().
			AddRow(common.NewID(), "q-sociology-01", "user-1", "first", 1, now, now, 1).
			AddRow(common.NewID(), "q-sociology-01", "user-2", "second", 1, now, now, 1))

	answers, total, err := s.repo.ListByQuestion(context.Background(), "q-sociology-01", p)
	s.NoError(err)
	s.Equal(int64(2), total)
	s.Len(answers, 2)
}

func (s *AnswerRepoTestSuite) TestListByUser_Empty() {
	p := common.Pagination{Page: 1, PageSize: 20}

	s.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM answers WHERE user_id = \$1`).
		WithArgs("user-9").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	s.mock.ExpectQuery(`SELECT id, question_id, .* FROM answers WHERE user_id = \$1`).
		WithArgs("user-9", 20, 0).
		WillReturnRows(answerRows())

	answers, total, err := s.repo.ListByUser(context.Background(), "user-9", p)
	s.NoError(err)
	s.Equal(int64(0), total)
	s.Empty(answers)
}

func (s *AnswerRepoTestSuite) TestDelete_NotFound() {
	id := common.NewID()

	s.mock.ExpectExec(`DELETE FROM answers WHERE id = \$1`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.repo.Delete(context.Background(), id)
	s.True(errors.IsCode(err, errors.ErrCodeAnswerNotFound))
}

func (s *AnswerRepoTestSuite) TestDelete_Success() {
	id := common.NewID()

	s.mock.ExpectExec(`DELETE FROM answers WHERE id = \$1`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	s.NoError(s.repo.Delete(context.Background(), id))
}

func answerRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "question_id", "user_id", "text", "word_count",
		"created_at", "updated_at", "version",
	})
}

func TestAnswerRepoTestSuite(t *testing.T) {
	suite.Run(t, new(AnswerRepoTestSuite))
}

//go:build integration

// Package integration exercises the PostgreSQL repositories against a real
// database.  Tests require Docker and are gated behind the "integration"
// build tag:
//
//	go test -tags integration ./test/integration/...
package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/turtacn/AnswerKey-Intelligence/internal/config"
	"github.com/turtacn/AnswerKey-Intelligence/internal/domain/answer"
	"github.com/turtacn/AnswerKey-Intelligence/internal/infrastructure/database/postgres"
	"github.com/turtacn/AnswerKey-Intelligence/internal/infrastructure/database/postgres/repositories"
	"github.com/turtacn/AnswerKey-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/AnswerKey-Intelligence/pkg/errors"
	atypes "github.com/turtacn/AnswerKey-Intelligence/pkg/types/answer"
	"github.com/turtacn/AnswerKey-Intelligence/pkg/types/common"
)

// ─────────────────────────────────────────────────────────────────────────────
// Test helpers
// ─────────────────────────────────────────────────────────────────────────────

// startPostgres launches a PostgreSQL 16 container, runs the real migrations
// against it and returns a connected pool.
func startPostgres(t *testing.T) *postgres.Connection {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "answerkey_test",
		},
		// The container restarts once during init; waiting for the second
		// "ready" log line avoids connecting to the throwaway first start.
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	conn, err := postgres.NewConnection(config.DatabaseConfig{
		Host:     host,
		Port:     port.Int(),
		User:     "test",
		Password: "test",
		DBName:   "answerkey_test",
		SSLMode:  "disable",
		MaxConns: 4,
	}, logging.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, conn.RunMigrations("../../migrations"))
	return conn
}

func mustAnswer(t *testing.T, questionID, userID, text string) *answer.Answer {
	t.Helper()
	a, err := answer.NewAnswer(common.QuestionID(questionID), common.UserID(userID), text, 0)
	require.NoError(t, err)
	return a
}

func mustReference(t *testing.T, questionID, topper, text string) *answer.ReferenceAnswer {
	t.Helper()
	r, err := answer.NewReferenceAnswer(common.QuestionID(questionID), topper, 2023, 1, 165.5, text,
		atypes.FeatureSet{
			Keywords:       []string{"solidarity", "division of labour"},
			Thinkers:       []string{"emile durkheim"},
			Theories:       []string{"functionalism"},
			WordCount:      len(text) / 5,
			SentenceCount:  2,
			ParagraphCount: 1,
		})
	require.NoError(t, err)
	return r
}

// ─────────────────────────────────────────────────────────────────────────────
// Answer repository
// ─────────────────────────────────────────────────────────────────────────────

func TestAnswerRepo_CreateAndGet(t *testing.T) {
	conn := startPostgres(t)
	repo := repositories.NewPostgresAnswerRepo(conn, logging.NewNopLogger())
	ctx := context.Background()

	created := mustAnswer(t, "q-soc-101", "u-1", "Durkheim treats social solidarity as an external fact.")
	require.NoError(t, repo.Create(ctx, created))

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, common.QuestionID("q-soc-101"), got.QuestionID)
	assert.Equal(t, common.UserID("u-1"), got.UserID)
	assert.Equal(t, created.Text, got.Text)
	assert.Equal(t, created.WordCount, got.WordCount)
}

func TestAnswerRepo_GetMissingReturnsNotFound(t *testing.T) {
	conn := startPostgres(t)
	repo := repositories.NewPostgresAnswerRepo(conn, logging.NewNopLogger())

	_, err := repo.GetByID(context.Background(), common.NewID())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeAnswerNotFound))
}

func TestAnswerRepo_ListByQuestionPaginates(t *testing.T) {
	conn := startPostgres(t)
	repo := repositories.NewPostgresAnswerRepo(conn, logging.NewNopLogger())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Create(ctx, mustAnswer(t, "q-soc-102", "u-1",
			fmt.Sprintf("answer number %d about stratification", i))))
	}
	// An answer for another question must not leak into the listing.
	require.NoError(t, repo.Create(ctx, mustAnswer(t, "q-soc-999", "u-1", "unrelated answer")))

	page1, total, err := repo.ListByQuestion(ctx, "q-soc-102", common.Pagination{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, page1, 2)

	page3, total, err := repo.ListByQuestion(ctx, "q-soc-102", common.Pagination{Page: 3, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, page3, 1)
}

func TestAnswerRepo_Delete(t *testing.T) {
	conn := startPostgres(t)
	repo := repositories.NewPostgresAnswerRepo(conn, logging.NewNopLogger())
	ctx := context.Background()

	a := mustAnswer(t, "q-soc-103", "u-2", "Weber on bureaucracy.")
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Delete(ctx, a.ID))

	_, err := repo.GetByID(ctx, a.ID)
	assert.True(t, errors.IsNotFound(err))
}

// ─────────────────────────────────────────────────────────────────────────────
// Reference repository
// ─────────────────────────────────────────────────────────────────────────────

func TestReferenceRepo_RoundTripsFeatures(t *testing.T) {
	conn := startPostgres(t)
	repo := repositories.NewPostgresReferenceRepo(conn, logging.NewNopLogger())
	ctx := context.Background()

	ref := mustReference(t, "q-soc-201", "Asha Rao", "Functionalism explains social order through shared norms.")
	require.NoError(t, repo.Create(ctx, ref))

	got, err := repo.GetByID(ctx, ref.ID)
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", got.TopperName)
	assert.Equal(t, 2023, got.Year)
	assert.Equal(t, 165.5, got.MarksObtained)
	assert.Equal(t, []string{"emile durkheim"}, got.Features.Thinkers)
	assert.Equal(t, []string{"functionalism"}, got.Features.Theories)
}

func TestReferenceRepo_ListPreservesIngestionOrder(t *testing.T) {
	conn := startPostgres(t)
	repo := repositories.NewPostgresReferenceRepo(conn, logging.NewNopLogger())
	ctx := context.Background()

	first := mustReference(t, "q-soc-202", "Topper One", "First ingested reference answer.")
	second := mustReference(t, "q-soc-202", "Topper Two", "Second ingested reference answer.")
	// Creation timestamps order the listing; keep them distinct.
	second.CreatedAt = first.CreatedAt.Add(time.Second)
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	refs, err := repo.ListByQuestion(ctx, "q-soc-202")
	require.NoError(t, err)
	require.Len(t, refs, 2)
	assert.Equal(t, first.ID, refs[0].ID)
	assert.Equal(t, second.ID, refs[1].ID)

	count, err := repo.CountByQuestion(ctx, "q-soc-202")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

// ─────────────────────────────────────────────────────────────────────────────
// Analysis repository
// ─────────────────────────────────────────────────────────────────────────────

func TestAnalysisRepo_CreateAndLookupByAnswer(t *testing.T) {
	conn := startPostgres(t)
	repo := repositories.NewPostgresAnalysisRepo(conn, logging.NewNopLogger())
	ctx := context.Background()

	answerID := common.NewID()
	refID := common.NewID()
	a, err := answer.NewAnalysis(answerID, refID,
		atypes.SimilarityScores{Content: 0.62, Keyword: 0.5, Structure: 0.8, Theory: 0.33, Overall: 0.583},
		atypes.FeedbackPayload{
			Text:        "Solid coverage of functionalism, thin on critiques.",
			Suggestions: []string{"Engage conflict-theory counterarguments."},
		}, 2)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, a))

	got, err := repo.GetByAnswerID(ctx, answerID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
	assert.Equal(t, refID, got.BestReferenceID)
	assert.InDelta(t, 0.583, got.Scores.Overall, 1e-9)
	assert.Equal(t, 2, got.ComparedCount)

	exists, err := repo.ExistsForAnswer(ctx, answerID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsForAnswer(ctx, common.NewID())
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestAnalysisRepo_DuplicateAnswerConflicts(t *testing.T) {
	conn := startPostgres(t)
	repo := repositories.NewPostgresAnalysisRepo(conn, logging.NewNopLogger())
	ctx := context.Background()

	answerID := common.NewID()
	build := func() *answer.Analysis {
		a, err := answer.NewAnalysis(answerID, common.NewID(),
			atypes.SimilarityScores{Overall: 0.5}, atypes.FeedbackPayload{Text: "ok"}, 1)
		require.NoError(t, err)
		return a
	}

	require.NoError(t, repo.Create(ctx, build()))

	err := repo.Create(ctx, build())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeConflict))
}

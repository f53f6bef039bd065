package testutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/turtacn/AnswerKey-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/AnswerKey-Intelligence/internal/testutil"
)

func TestMockLogger(t *testing.T) {
	logger := testutil.NewMockLogger()

	logger.Info("test info", logging.String("key", "value"))

	messages := logger.GetMessages()
	assert.Len(t, messages, 1)
	assert.Equal(t, "info", messages[0].Level)
	assert.Equal(t, "test info", messages[0].Message)

	logger.Clear()
	assert.Len(t, logger.GetMessages(), 0)

	logger.Error("test error")
	assert.True(t, logger.HasMessage("error", "test error"))
	assert.False(t, logger.HasMessage("info", "test info"))
}

func TestMockLoggerCountLevel(t *testing.T) {
	logger := testutil.NewMockLogger()

	logger.Warn("slow request")
	logger.Warn("slow request")
	logger.Info("request completed")

	assert.Equal(t, 2, logger.CountLevel("warn"))
	assert.Equal(t, 1, logger.CountLevel("info"))
	assert.Equal(t, 0, logger.CountLevel("error"))
}

func TestMockLoggerWithAndNamed(t *testing.T) {
	logger := testutil.NewMockLogger()

	// With and Named keep recording into the same logger so tests can
	// verify output from child loggers too.
	logger.With(logging.String("component", "http")).Named("router").Info("mounted")

	assert.True(t, logger.HasMessage("info", "mounted"))
}

package kafka

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/AnswerKey-Intelligence/internal/application/analysis"
	"github.com/turtacn/AnswerKey-Intelligence/internal/domain/answer"
	"github.com/turtacn/AnswerKey-Intelligence/internal/infrastructure/monitoring/logging"
	atypes "github.com/turtacn/AnswerKey-Intelligence/pkg/types/answer"
	"github.com/turtacn/AnswerKey-Intelligence/pkg/types/common"
)

func TestEventPublisher_WrapsAndKeysEvent(t *testing.T) {
	w := &mockKafkaWriter{}
	pub := NewEventPublisher(NewProducerWithWriter(w, logging.NewNopLogger()))

	a, err := answer.NewAnalysis(
		common.NewID(), common.NewID(),
		atypes.SimilarityScores{Overall: 0.62},
		atypes.FeedbackPayload{},
		2)
	require.NoError(t, err)

	event := answer.NewAnalysisCompletedEvent(a, "q-sociology-01")

	require.NoError(t, pub.Publish(context.Background(), analysis.TopicAnalysisCompleted, event))
	require.Len(t, w.written, 1)

	msg := w.written[0]
	assert.Equal(t, analysis.TopicAnalysisCompleted, msg.Topic)
	assert.Equal(t, event.AggregateID(), string(msg.Key))

	var env EventEnvelope
	require.NoError(t, json.Unmarshal(msg.Value, &env))
	assert.Equal(t, analysis.TopicAnalysisCompleted, env.EventType)
	assert.Equal(t, eventSource, env.Source)

	var payload answer.AnalysisCompletedEvent
	require.NoError(t, env.DecodePayload(&payload))
	assert.Equal(t, string(a.AnswerID), payload.AnswerID)
	assert.Equal(t, 0.62, payload.OverallScore)
	assert.Equal(t, 2, payload.ComparedCount)
}

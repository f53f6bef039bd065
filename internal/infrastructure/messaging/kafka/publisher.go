package kafka

import (
	"context"

	"github.com/turtacn/AnswerKey-Intelligence/internal/application/analysis"
	"github.com/turtacn/AnswerKey-Intelligence/pkg/types/common"
)

const eventSource = "answerkey"

// EventPublisher adapts the Producer to the application's publishing port.
// Events are keyed by aggregate ID so the per-aggregate ordering Kafka
// gives a partition carries over to consumers.
type EventPublisher struct {
	producer *Producer
}

var _ analysis.EventPublisher = (*EventPublisher)(nil)

func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

// Publish wraps event in an EventEnvelope and writes it to topic.
func (p *EventPublisher) Publish(ctx context.Context, topic string, event common.DomainEvent) error {
	envelope, err := NewEventEnvelope(topic, eventSource, event)
	if err != nil {
		return err
	}
	data, err := envelope.Encode()
	if err != nil {
		return err
	}
	return p.producer.Publish(ctx, topic, []byte(event.AggregateID()), data)
}

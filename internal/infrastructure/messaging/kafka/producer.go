// Package kafka publishes the platform's domain events to Kafka: analysis
// completions and reference ingestions.  Publishing is best-effort from
// the application's point of view; the workflows that emit events never
// fail because the broker is down.
package kafka

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/turtacn/AnswerKey-Intelligence/internal/config"
	"github.com/turtacn/AnswerKey-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/AnswerKey-Intelligence/pkg/errors"
)

var (
	ErrProducerClosed = errors.New(errors.ErrCodeInternal, "producer closed")
)

// WriterInterface abstracts kafka.Writer for testing.
type WriterInterface interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// ProducerMetrics holds producer counters.
type ProducerMetrics struct {
	MessagesSent   atomic.Int64
	MessagesFailed atomic.Int64
	BytesSent      atomic.Int64
}

// Producer writes messages to Kafka, keyed so that events for the same
// aggregate land on the same partition.
type Producer struct {
	writer  WriterInterface
	logger  logging.Logger
	closed  atomic.Bool
	metrics ProducerMetrics
}

// NewProducer builds a Producer against the configured brokers.
func NewProducer(cfg config.KafkaConfig, logger logging.Logger) (*Producer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New(errors.ErrCodeValidation, "kafka brokers required")
	}

	maxAttempts := cfg.ProducerRetries + 1
	if cfg.ProducerRetries <= 0 {
		maxAttempts = 4
	}
	batchSize := cfg.BatchSize
	if batchSize == 0 {
		batchSize = 100
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.Hash{},
		MaxAttempts:            maxAttempts,
		BatchSize:              batchSize,
		BatchTimeout:           time.Second,
		WriteTimeout:           10 * time.Second,
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: cfg.AutoCreateTopics,
	}

	return &Producer{writer: writer, logger: logger}, nil
}

// NewProducerWithWriter wraps an existing writer (for testing).
func NewProducerWithWriter(w WriterInterface, logger logging.Logger) *Producer {
	return &Producer{writer: w, logger: logger}
}

// Publish writes a single keyed message to topic.
func (p *Producer) Publish(ctx context.Context, topic string, key, value []byte) error {
	if p.closed.Load() {
		return ErrProducerClosed
	}
	if topic == "" {
		return errors.New(errors.ErrCodeValidation, "topic required")
	}
	if len(value) == 0 {
		return errors.New(errors.ErrCodeValidation, "value required")
	}

	err := p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   key,
		Value: value,
		Time:  time.Now(),
	})
	if err != nil {
		p.metrics.MessagesFailed.Add(1)
		return errors.Wrap(err, errors.ErrCodeExternalService, "failed to publish message")
	}

	p.metrics.MessagesSent.Add(1)
	p.metrics.BytesSent.Add(int64(len(value)))
	p.logger.Debug("Message published", logging.String("topic", topic))
	return nil
}

// Metrics returns a snapshot of the producer counters.
func (p *Producer) Metrics() (sent, failed, bytes int64) {
	return p.metrics.MessagesSent.Load(), p.metrics.MessagesFailed.Load(), p.metrics.BytesSent.Load()
}

// Close shuts the producer down.  Safe to call more than once.
func (p *Producer) Close() error {
	if !p.closed.CompareAndSwap(false, true) {
		return nil
	}
	err := p.writer.Close()
	p.logger.Info("Kafka producer closed", logging.Int64("sent", p.metrics.MessagesSent.Load()))
	return err
}

package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

const publishBatchTimeout = 10 * time.Millisecond

type KafkaPublisher struct {
	logger zerolog.Logger
	writer *kafka.Writer
}

func NewKafkaPublisher(logger zerolog.Logger, brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		logger: logger,
		writer: &kafka.Writer{
			Addr:  kafka.TCP(brokers...),
			Topic: topic,
			// Events of one user land on one partition and keep their order.
			Balancer: &kafka.Hash{},
			// Publish runs inside the request, so a single event must
			// not wait for the default one second batch window.
			BatchTimeout:           publishBatchTimeout,
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		},
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.UserID),
		Value: value,
		Time:  event.OccurredAt,
	})
	if err != nil {
		return fmt.Errorf("failed to write kafka message: %w", err)
	}
	p.logger.Debug().
		Str("event_id", event.ID).
		Str("type", string(event.Type)).
		Msg("published event")
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

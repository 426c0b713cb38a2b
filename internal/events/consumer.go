package events

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

type Handler func(ctx context.Context, event Event) error

type KafkaConsumer struct {
	logger zerolog.Logger
	reader *kafka.Reader
}

func NewKafkaConsumer(logger zerolog.Logger, brokers []string, topic, groupID string) *KafkaConsumer {
	return &KafkaConsumer{
		logger: logger,
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: brokers,
			Topic:   topic,
			GroupID: groupID,
		}),
	}
}

// Run feeds every message of the topic to handle until ctx is done.
// Malformed messages are logged and committed so they are not
// redelivered forever. An error from handle stops the consumer
// without committing the message.
func (c *KafkaConsumer) Run(ctx context.Context, handle Handler) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return fmt.Errorf("failed to fetch message: %w", err)
		}

		event, err := Decode(msg.Value)
		if err != nil {
			c.logger.Warn().
				Err(err).
				Int("partition", msg.Partition).
				Int64("offset", msg.Offset).
				Msg("skipping malformed event")
		} else {
			err = handle(ctx, event)
			if err != nil {
				return fmt.Errorf("failed to handle event %s: %w", event.ID, err)
			}
		}

		err = c.reader.CommitMessages(ctx, msg)
		if err != nil {
			return fmt.Errorf("failed to commit message: %w", err)
		}
	}
}

func (c *KafkaConsumer) Close() error {
	return c.reader.Close()
}

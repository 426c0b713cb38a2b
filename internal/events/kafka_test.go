package events

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errStop = errors.New("stop")

func TestKafkaPublisherFlushesPromptly(t *testing.T) {
	publisher := NewKafkaPublisher(zerolog.Nop(), []string{"localhost:9092"}, "events")
	defer publisher.Close()

	assert.Equal(t, publishBatchTimeout, publisher.writer.BatchTimeout)
	assert.LessOrEqual(t, publisher.writer.BatchTimeout, 50*time.Millisecond)
}

func TestKafkaRoundTrip(t *testing.T) {
	brokers := os.Getenv("TEST_KAFKA_BROKERS")
	if brokers == "" {
		t.Skip("TEST_KAFKA_BROKERS is not set")
	}

	topic := fmt.Sprintf("study-planner-test-%d", time.Now().UnixNano())
	logger := zerolog.Nop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	publisher := NewKafkaPublisher(logger, strings.Split(brokers, ","), topic)
	defer publisher.Close()

	sent := New(TaskToggled, "alice", 42)
	start := time.Now()
	require.NoError(t, publisher.Publish(ctx, sent))
	assert.Less(t, time.Since(start), 500*time.Millisecond)

	consumer := NewKafkaConsumer(logger, strings.Split(brokers, ","), topic, topic+"-group")
	defer consumer.Close()

	var received Event
	err := consumer.Run(ctx, func(_ context.Context, event Event) error {
		received = event
		return errStop
	})
	require.ErrorIs(t, err, errStop)

	assert.Equal(t, sent.ID, received.ID)
	assert.Equal(t, TaskToggled, received.Type)
	assert.Equal(t, "alice", received.UserID)
	assert.EqualValues(t, 42, received.EntityID)
}

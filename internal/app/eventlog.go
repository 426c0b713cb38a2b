package app

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/adanyl0v/go-study-planner/internal/config"
	"github.com/adanyl0v/go-study-planner/internal/events"
)

// MustRunEventLog consumes the event topic and writes one log line
// per event until SIGINT or SIGTERM.
func MustRunEventLog() {
	cfg, err := config.NewEnvReader().ReadEventLog()
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to read env")
		panic(err)
	}
	MustInitLogger(cfg.Env)

	consumer := events.NewKafkaConsumer(
		componentLogger("eventlog"),
		cfg.Kafka.Brokers,
		cfg.Kafka.Topic,
		cfg.Kafka.GroupID,
	)
	defer func() {
		err := consumer.Close()
		if err != nil {
			globalLogger.Error().
				Err(err).
				Msg("failed to close kafka consumer")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	globalLogger.Info().
		Strs("brokers", cfg.Kafka.Brokers).
		Str("topic", cfg.Kafka.Topic).
		Str("group_id", cfg.Kafka.GroupID).
		Msg("consuming events")

	err = consumer.Run(ctx, logEvent)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to consume events")
		panic(err)
	}
	globalLogger.Info().Msg("stopped consuming events")
}

func logEvent(_ context.Context, event events.Event) error {
	globalLogger.Info().
		Str("event_id", event.ID).
		Str("type", string(event.Type)).
		Str("user_id", event.UserID).
		Int64("entity_id", event.EntityID).
		Time("occurred_at", event.OccurredAt).
		Msg("event")
	return nil
}

package app

import (
	"github.com/adanyl0v/go-study-planner/internal/config"
	"github.com/adanyl0v/go-study-planner/internal/events"
)

var globalEventPublisher events.Publisher = events.NopPublisher{}

func InitEventPublisher() {
	cfg := config.Global().Kafka
	if !cfg.Enabled() {
		globalLogger.Info().Msg("kafka is not configured, events are dropped")
		return
	}

	globalEventPublisher = events.NewKafkaPublisher(componentLogger("events"), cfg.Brokers, cfg.Topic)
	globalLogger.Info().
		Strs("brokers", cfg.Brokers).
		Str("topic", cfg.Topic).
		Msg("initialized kafka publisher")
}

func CloseEventPublisher() {
	err := globalEventPublisher.Close()
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to close event publisher")
		return
	}
	globalLogger.Info().Msg("closed event publisher")
}

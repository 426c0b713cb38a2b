package app

import (
	"context"

	"github.com/robfig/cron/v3"

	"github.com/adanyl0v/go-study-planner/internal/services"
)

// startSessionJanitor periodically removes sessions whose refresh
// token has expired. The returned func stops the scheduler and waits
// for a running cleanup to finish.
func startSessionJanitor(schedule string, sessions services.SessionService) func() {
	logger := componentLogger("session_janitor")

	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		removed, err := sessions.DeleteExpiredSessions(context.Background())
		if err != nil {
			logger.Error().
				Err(err).
				Msg("failed to clean up sessions")
			return
		}
		logger.Debug().
			Int64("removed", removed).
			Msg("cleaned up sessions")
	})
	if err != nil {
		globalLogger.Error().
			Err(err).
			Str("schedule", schedule).
			Msg("failed to schedule session cleanup")
		panic(err)
	}

	c.Start()
	globalLogger.Info().
		Str("schedule", schedule).
		Msg("started session janitor")

	return func() {
		<-c.Stop().Done()
		globalLogger.Info().Msg("stopped session janitor")
	}
}

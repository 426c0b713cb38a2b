package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-study-planner/internal/access"
	"github.com/adanyl0v/go-study-planner/internal/cache"
	"github.com/adanyl0v/go-study-planner/internal/events"
	"github.com/adanyl0v/go-study-planner/internal/models"
)

// changeNotifier runs the side effects of a committed write. Failures
// are logged only: the write itself already succeeded.
type changeNotifier struct {
	logger     zerolog.Logger
	publisher  events.Publisher
	dashboards cache.DashboardCache
}

func (n changeNotifier) changed(ctx context.Context, event events.Event) {
	err := n.dashboards.Invalidate(ctx, event.UserID)
	if err != nil {
		n.logger.Warn().
			Err(err).
			Str("user_id", event.UserID).
			Msg("failed to invalidate dashboard")
	}

	err = n.publisher.Publish(ctx, event)
	if err != nil {
		n.logger.Error().
			Err(err).
			Str("type", string(event.Type)).
			Str("user_id", event.UserID).
			Msg("failed to publish event")
	}
}

func requireIdentity(identity models.Identity) error {
	if identity.Anonymous() {
		return access.ErrAnonymous
	}
	return nil
}

package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-study-planner/internal/cache"
	"github.com/adanyl0v/go-study-planner/internal/models"
)

type dashboardServiceImpl struct {
	logger     zerolog.Logger
	tasks      TaskService
	notes      NoteService
	dashboards cache.DashboardCache
}

func NewDashboardService(
	logger zerolog.Logger,
	tasks TaskService,
	notes NoteService,
	dashboards cache.DashboardCache,
) DashboardService {
	return &dashboardServiceImpl{
		logger:     logger,
		tasks:      tasks,
		notes:      notes,
		dashboards: dashboards,
	}
}

func (s *dashboardServiceImpl) GetDashboard(ctx context.Context, identity models.Identity) (*models.Dashboard, error) {
	err := requireIdentity(identity)
	if err != nil {
		return nil, err
	}

	// The version is read before the store so that a write committed
	// while the dashboard is built invalidates what gets cached.
	version, err := s.dashboards.Version(ctx, identity.UserID)
	cacheable := err == nil
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("user_id", identity.UserID).
			Msg("failed to read dashboard version")
	}

	if cacheable {
		dashboard, err := s.dashboards.Get(ctx, identity.UserID, version)
		if err != nil {
			s.logger.Warn().
				Err(err).
				Str("user_id", identity.UserID).
				Msg("failed to read cached dashboard")
		} else if dashboard != nil {
			s.logger.Debug().
				Str("user_id", identity.UserID).
				Int64("version", version).
				Msg("dashboard cache hit")
			return dashboard, nil
		}
	}

	stats, err := s.tasks.CountTasks(ctx, identity)
	if err != nil {
		return nil, err
	}

	notes, err := s.notes.ListNotes(ctx, identity, ListParams{Limit: models.RecentNotesLimit})
	if err != nil {
		return nil, err
	}

	dashboard := &models.Dashboard{
		TotalTasks:     stats.Total,
		CompletedTasks: stats.Completed,
		PendingTasks:   stats.Pending(),
		RecentNotes:    notes,
	}

	if cacheable {
		err = s.dashboards.Set(ctx, identity.UserID, version, dashboard)
		if err != nil {
			s.logger.Warn().
				Err(err).
				Str("user_id", identity.UserID).
				Msg("failed to cache dashboard")
		}
	}

	s.logger.Info().
		Str("user_id", identity.UserID).
		Int64("total_tasks", dashboard.TotalTasks).
		Msg("built dashboard")
	return dashboard, nil
}

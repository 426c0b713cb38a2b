package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adanyl0v/go-study-planner/internal/models"
)

type taskServiceStub struct {
	TaskService
	countFn func(ctx context.Context, identity models.Identity) (models.TaskStats, error)
}

func (s *taskServiceStub) CountTasks(ctx context.Context, identity models.Identity) (models.TaskStats, error) {
	return s.countFn(ctx, identity)
}

type noteServiceStub struct {
	NoteService
	listFn func(ctx context.Context, identity models.Identity, params ListParams) ([]*models.Note, error)
}

func (s *noteServiceStub) ListNotes(ctx context.Context, identity models.Identity, params ListParams) ([]*models.Note, error) {
	return s.listFn(ctx, identity, params)
}

type memoryDashboardCache struct {
	entries  map[string]*models.Dashboard
	versions map[string]int64
	getErr   error
}

func newMemoryDashboardCache() *memoryDashboardCache {
	return &memoryDashboardCache{
		entries:  make(map[string]*models.Dashboard),
		versions: make(map[string]int64),
	}
}

func entryKey(userID string, version int64) string {
	return fmt.Sprintf("%s:%d", userID, version)
}

func (c *memoryDashboardCache) Version(_ context.Context, userID string) (int64, error) {
	return c.versions[userID], nil
}

func (c *memoryDashboardCache) Get(_ context.Context, userID string, version int64) (*models.Dashboard, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.entries[entryKey(userID, version)], nil
}

func (c *memoryDashboardCache) Set(_ context.Context, userID string, version int64, dashboard *models.Dashboard) error {
	c.entries[entryKey(userID, version)] = dashboard
	return nil
}

func (c *memoryDashboardCache) Invalidate(_ context.Context, userID string) error {
	c.versions[userID]++
	return nil
}

func TestDashboardServiceBuildsAndCaches(t *testing.T) {
	alice := models.Identity{UserID: "alice"}
	calls := 0

	tasks := &taskServiceStub{
		countFn: func(_ context.Context, identity models.Identity) (models.TaskStats, error) {
			calls++
			assert.Equal(t, alice, identity)
			return models.TaskStats{Total: 5, Completed: 2}, nil
		},
	}
	notes := &noteServiceStub{
		listFn: func(_ context.Context, identity models.Identity, params ListParams) ([]*models.Note, error) {
			assert.Equal(t, alice, identity)
			assert.EqualValues(t, models.RecentNotesLimit, params.Limit)
			return []*models.Note{{ID: 2, Title: "newest"}, {ID: 1, Title: "older"}}, nil
		},
	}
	dashboards := newMemoryDashboardCache()

	svc := NewDashboardService(zerolog.Nop(), tasks, notes, dashboards)

	got, err := svc.GetDashboard(context.Background(), alice)
	require.NoError(t, err)
	assert.EqualValues(t, 5, got.TotalTasks)
	assert.EqualValues(t, 2, got.CompletedTasks)
	assert.EqualValues(t, 3, got.PendingTasks)
	require.Len(t, got.RecentNotes, 2)
	assert.Equal(t, "newest", got.RecentNotes[0].Title)
	assert.Contains(t, dashboards.entries, entryKey("alice", 0))

	_, err = svc.GetDashboard(context.Background(), alice)
	require.NoError(t, err)
	assert.Equal(t, 1, calls, "second call must be served from cache")
}

func TestDashboardServiceIgnoresCacheErrors(t *testing.T) {
	tasks := &taskServiceStub{
		countFn: func(context.Context, models.Identity) (models.TaskStats, error) {
			return models.TaskStats{}, nil
		},
	}
	notes := &noteServiceStub{
		listFn: func(context.Context, models.Identity, ListParams) ([]*models.Note, error) {
			return []*models.Note{}, nil
		},
	}
	dashboards := newMemoryDashboardCache()
	dashboards.getErr = errors.New("redis is down")

	svc := NewDashboardService(zerolog.Nop(), tasks, notes, dashboards)
	got, err := svc.GetDashboard(context.Background(), models.Identity{UserID: "bob"})
	require.NoError(t, err)
	assert.Zero(t, got.TotalTasks)
	assert.Empty(t, got.RecentNotes)
}

func TestDashboardServicePropagatesStoreErrors(t *testing.T) {
	storeErr := errors.New("connection refused")
	tasks := &taskServiceStub{
		countFn: func(context.Context, models.Identity) (models.TaskStats, error) {
			return models.TaskStats{}, storeErr
		},
	}

	svc := NewDashboardService(zerolog.Nop(), tasks, &noteServiceStub{}, newMemoryDashboardCache())
	_, err := svc.GetDashboard(context.Background(), models.Identity{UserID: "bob"})
	require.ErrorIs(t, err, storeErr)
}

func TestDashboardServiceWriteDuringBuildIsNotMasked(t *testing.T) {
	alice := models.Identity{UserID: "alice"}
	dashboards := newMemoryDashboardCache()
	total := int64(1)
	calls := 0

	tasks := &taskServiceStub{
		countFn: func(ctx context.Context, identity models.Identity) (models.TaskStats, error) {
			calls++
			stats := models.TaskStats{Total: total}
			if calls == 1 {
				// A task is created and committed after the count was read.
				total++
				require.NoError(t, dashboards.Invalidate(ctx, identity.UserID))
			}
			return stats, nil
		},
	}
	notes := &noteServiceStub{
		listFn: func(context.Context, models.Identity, ListParams) ([]*models.Note, error) {
			return []*models.Note{}, nil
		},
	}

	svc := NewDashboardService(zerolog.Nop(), tasks, notes, dashboards)

	got, err := svc.GetDashboard(context.Background(), alice)
	require.NoError(t, err)
	assert.EqualValues(t, 1, got.TotalTasks)

	got, err = svc.GetDashboard(context.Background(), alice)
	require.NoError(t, err)
	assert.EqualValues(t, 2, got.TotalTasks)
	assert.Equal(t, 2, calls)

	_, err = svc.GetDashboard(context.Background(), alice)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestListParamsLimit(t *testing.T) {
	assert.EqualValues(t, defaultListLimit, ListParams{}.limit())
	assert.EqualValues(t, 10, ListParams{Limit: 10}.limit())
	assert.EqualValues(t, maxListLimit, ListParams{Limit: maxListLimit + 1}.limit())
}

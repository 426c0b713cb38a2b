package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adanyl0v/go-study-planner/internal/models"
)

func TestNopDashboardCache(t *testing.T) {
	var c DashboardCache = NopDashboardCache{}
	ctx := context.Background()

	version, err := c.Version(ctx, "alice")
	require.NoError(t, err)
	require.NoError(t, c.Set(ctx, "alice", version, &models.Dashboard{TotalTasks: 1}))
	got, err := c.Get(ctx, "alice", version)
	require.NoError(t, err)
	assert.Nil(t, got)
	require.NoError(t, c.Invalidate(ctx, "alice"))
}

func TestRedisDashboardCache(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR is not set")
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = rdb.Close() })

	ctx := context.Background()
	c := NewRedisDashboardCache(rdb, time.Minute)
	userID := "cache-test-" + time.Now().Format(time.RFC3339Nano)
	t.Cleanup(func() { _ = rdb.Del(ctx, versionKey(userID)).Err() })

	version, err := c.Version(ctx, userID)
	require.NoError(t, err)
	assert.Zero(t, version)

	got, err := c.Get(ctx, userID, version)
	require.NoError(t, err)
	assert.Nil(t, got)

	want := &models.Dashboard{
		TotalTasks:     3,
		CompletedTasks: 1,
		PendingTasks:   2,
		RecentNotes:    []*models.Note{{ID: 9, UserID: userID, Title: "Lecture"}},
	}
	require.NoError(t, c.Set(ctx, userID, version, want))

	got, err = c.Get(ctx, userID, version)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want.PendingTasks, got.PendingTasks)
	require.Len(t, got.RecentNotes, 1)
	assert.Equal(t, "Lecture", got.RecentNotes[0].Title)

	require.NoError(t, c.Invalidate(ctx, userID))
	next, err := c.Version(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, version+1, next)

	got, err = c.Get(ctx, userID, next)
	require.NoError(t, err)
	assert.Nil(t, got)

	// An entry stored under the old version after invalidation stays unreachable.
	require.NoError(t, c.Set(ctx, userID, version, want))
	got, err = c.Get(ctx, userID, next)
	require.NoError(t, err)
	assert.Nil(t, got)
}

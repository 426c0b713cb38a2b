// Package cache keeps per-user dashboards in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/adanyl0v/go-study-planner/internal/models"
)

// DashboardCache stores dashboards under a per-user version. Invalidate
// bumps the version, so an entry built from data read before a write
// lands under a version nobody reads again.
type DashboardCache interface {
	Version(ctx context.Context, userID string) (int64, error)
	// Get returns nil without an error on a cache miss.
	Get(ctx context.Context, userID string, version int64) (*models.Dashboard, error)
	Set(ctx context.Context, userID string, version int64, dashboard *models.Dashboard) error
	Invalidate(ctx context.Context, userID string) error
}

type RedisDashboardCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisDashboardCache(rdb *redis.Client, ttl time.Duration) *RedisDashboardCache {
	return &RedisDashboardCache{
		rdb: rdb,
		ttl: ttl,
	}
}

func versionKey(userID string) string {
	return "dashboard:version:" + userID
}

func dashboardKey(userID string, version int64) string {
	return "dashboard:" + userID + ":" + strconv.FormatInt(version, 10)
}

func (c *RedisDashboardCache) Version(ctx context.Context, userID string) (int64, error) {
	version, err := c.rdb.Get(ctx, versionKey(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return version, err
}

func (c *RedisDashboardCache) Get(ctx context.Context, userID string, version int64) (*models.Dashboard, error) {
	val, err := c.rdb.Get(ctx, dashboardKey(userID, version)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var dashboard models.Dashboard
	err = json.Unmarshal(val, &dashboard)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal dashboard: %w", err)
	}
	return &dashboard, nil
}

func (c *RedisDashboardCache) Set(ctx context.Context, userID string, version int64, dashboard *models.Dashboard) error {
	data, err := json.Marshal(dashboard)
	if err != nil {
		return fmt.Errorf("failed to marshal dashboard: %w", err)
	}
	return c.rdb.Set(ctx, dashboardKey(userID, version), data, c.ttl).Err()
}

func (c *RedisDashboardCache) Invalidate(ctx context.Context, userID string) error {
	return c.rdb.Incr(ctx, versionKey(userID)).Err()
}

// NopDashboardCache always misses.
type NopDashboardCache struct{}

func (NopDashboardCache) Version(context.Context, string) (int64, error) { return 0, nil }

func (NopDashboardCache) Get(context.Context, string, int64) (*models.Dashboard, error) {
	return nil, nil
}

func (NopDashboardCache) Set(context.Context, string, int64, *models.Dashboard) error { return nil }

func (NopDashboardCache) Invalidate(context.Context, string) error { return nil }

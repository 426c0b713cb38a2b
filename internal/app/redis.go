package app

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/adanyl0v/go-study-planner/internal/cache"
	"github.com/adanyl0v/go-study-planner/internal/config"
)

var (
	globalRedisClient    *redis.Client
	globalDashboardCache cache.DashboardCache = cache.NopDashboardCache{}
)

// MustConnectRedis enables the dashboard cache. Without REDIS_ADDR
// dashboards are rebuilt on every request.
func MustConnectRedis() {
	cfg := config.Global().Redis
	if !cfg.Enabled() {
		globalLogger.Info().Msg("redis is not configured, dashboard cache disabled")
		return
	}

	globalRedisClient = redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	err := globalRedisClient.Ping(context.Background()).Err()
	if err != nil {
		globalLogger.Error().
			Err(err).
			Str("addr", cfg.Addr).
			Msg("failed to ping redis")
		panic(err)
	}

	globalDashboardCache = cache.NewRedisDashboardCache(globalRedisClient, cfg.DashboardTTL)
	globalLogger.Info().
		Str("addr", cfg.Addr).
		Dur("dashboard_ttl", cfg.DashboardTTL).
		Msg("connected to redis")
}

func DisconnectRedis() {
	if globalRedisClient == nil {
		return
	}

	err := globalRedisClient.Close()
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to close redis client")
		return
	}
	globalLogger.Info().Msg("disconnected from redis")
}

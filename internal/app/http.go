package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-study-planner/internal/config"
	"github.com/adanyl0v/go-study-planner/internal/delivery/http/v1"
	"github.com/adanyl0v/go-study-planner/internal/services"
)

func MustListenAndServeHTTP() {
	cfg := config.Global()
	if cfg.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	httpCfg := cfg.HTTP

	sessionService := services.NewSessionService(componentLogger("sessions"), globalPostgresPool)
	stopJanitor := startSessionJanitor(cfg.Cron.SessionCleanupSchedule, sessionService)
	defer stopJanitor()

	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/healthz", handleHealth)
	registerRoutes(router, sessionService)

	server := &http.Server{
		Addr:    net.JoinHostPort(httpCfg.Host, httpCfg.Port),
		Handler: router,
	}

	go func() {
		globalLogger.Info().
			Str("host", httpCfg.Host).
			Str("port", httpCfg.Port).
			Msg("setting up http server")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			globalLogger.Error().
				Err(err).
				Msg("failed to listen and serve http")
			panic(err)
		}
	}()

	// kill (no params) by default sends syscall.SIGTERM
	// kill -2 is syscall.SIGINT
	// kill -9 is syscall.SIGKILL but can't be caught, so don't need to add it
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	globalLogger.Info().
		Msg("shutting down http server")

	ctx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer cancel()

	err := server.Shutdown(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to shutdown http server")
		panic(err)
	}
	globalLogger.Info().Msg("shut down http server")
}

func registerRoutes(router gin.IRouter, sessionService services.SessionService) {
	jwtCfg := config.Global().JWT
	authService := services.NewAuthService(
		componentLogger("auth"),
		globalPostgresPool,
		services.AuthConfig{
			JWTIssuer:          jwtCfg.Issuer,
			JWTSigningKey:      []byte(jwtCfg.SigningKey),
			JWTAccessTokenTTL:  jwtCfg.AccessTokenTTL,
			JWTRefreshTokenTTL: jwtCfg.RefreshTokenTTL,
		},
		globalEventPublisher,
		globalDashboardCache,
	)
	taskService := services.NewTaskService(
		componentLogger("tasks"),
		globalPostgresPool,
		globalEventPublisher,
		globalDashboardCache,
	)
	noteService := services.NewNoteService(
		componentLogger("notes"),
		globalPostgresPool,
		globalEventPublisher,
		globalDashboardCache,
	)
	dashboardService := services.NewDashboardService(
		componentLogger("dashboard"),
		taskService,
		noteService,
		globalDashboardCache,
	)

	v1Handler := v1.New(
		componentLogger("http"),
		authService,
		sessionService,
		taskService,
		noteService,
		dashboardService,
	)
	v1.Register(router.Group("/api/v1"), v1Handler)
}

func handleHealth(c *gin.Context) {
	err := globalPostgresPool.Ping(c)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("health check failed")
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

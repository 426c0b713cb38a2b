package v1

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/adanyl0v/go-study-planner/internal/models"
	"github.com/adanyl0v/go-study-planner/internal/services"
)

const identityCtxKey = "identity"

func (h *handlerImpl) HandleAuthMiddleware(c *gin.Context) {
	const authHeader = "Authorization"
	header := c.GetHeader(authHeader)
	if header == "" {
		h.logger.Error().Msg("authorization header required")
		abort(c, newStatusTextError(http.StatusUnauthorized))
		return
	}

	const bearerPrefix = "Bearer"
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != bearerPrefix {
		h.logger.Error().Msg("invalid authorization header")
		abort(c, newStatusTextError(http.StatusUnauthorized))
		return
	}

	claims, err := h.auth.ParseJWTToken(parts[1])
	if err != nil {
		if !errors.Is(err, jwt.ErrTokenExpired) {
			h.logger.Error().
				Err(err).
				Msg("failed to parse token")
			abort(c, newStatusTextError(http.StatusUnauthorized))
			return
		}

		result, ok := h.refresh(c)
		if !ok {
			return
		}

		claims, err = h.auth.ParseJWTToken(result.AccessToken)
		if err != nil {
			h.logger.Error().
				Err(err).
				Msg("failed to parse fresh token")
			abort(c, newStatusTextError(http.StatusUnauthorized))
			return
		}
	}

	session, err := h.sessions.GetSessionByID(c, claims.Subject)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSessionNotFound):
			abort(c, newUnauthorizedError(services.ErrSessionNotFound.Error()))
			return
		case errors.Is(err, services.ErrSessionExpired):
			abort(c, newUnauthorizedError(services.ErrSessionExpired.Error()))
			return
		}

		h.logger.Error().
			Err(err).
			Msg("failed to fetch session")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	fingerprint, err := generateFingerprint(c)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to generate fingerprint")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	if fingerprint != session.Fingerprint {
		h.logger.Error().
			Str("session_id", session.ID).
			Msg("fingerprint mismatch")
		abort(c, newStatusTextError(http.StatusUnauthorized))
		return
	}

	c.Set(identityCtxKey, session.Identity())
	c.Next()
}

// HandleLoggerMiddleware writes one access log line per request.
func (h *handlerImpl) HandleLoggerMiddleware(c *gin.Context) {
	start := time.Now()
	c.Next()

	status := c.Writer.Status()
	event := h.logger.Info()
	switch {
	case status >= http.StatusInternalServerError:
		event = h.logger.Error()
	case status >= http.StatusBadRequest:
		event = h.logger.Warn()
	}

	if identity, ok := getIdentity(c); ok {
		event = event.Str("user_id", identity.UserID)
	}
	event.
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Int("status", status).
		Str("client_ip", c.ClientIP()).
		Dur("latency", time.Since(start)).
		Msg("handled request")
}

func getIdentity(c *gin.Context) (models.Identity, bool) {
	value, exists := c.Get(identityCtxKey)
	if !exists {
		return models.Identity{}, false
	}
	identity, ok := value.(models.Identity)
	return identity, ok
}

// mustGetIdentity aborts with 401 when the auth middleware didn't run.
func (h *handlerImpl) mustGetIdentity(c *gin.Context) (models.Identity, bool) {
	identity, ok := getIdentity(c)
	if !ok || identity.Anonymous() {
		h.logger.Error().Msg("no identity found in context")
		abort(c, newStatusTextError(http.StatusUnauthorized))
		return models.Identity{}, false
	}
	return identity, true
}

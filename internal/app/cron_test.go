package app

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/adanyl0v/go-study-planner/internal/services"
)

type sessionServiceStub struct {
	services.SessionService
	calls atomic.Int32
}

func (s *sessionServiceStub) DeleteExpiredSessions(context.Context) (int64, error) {
	s.calls.Add(1)
	return 2, nil
}

func TestSessionJanitorRunsOnSchedule(t *testing.T) {
	globalLogger = zerolog.Nop()
	sessions := new(sessionServiceStub)

	stop := startSessionJanitor("@every 1s", sessions)
	assert.Eventually(t, func() bool {
		return sessions.calls.Load() > 0
	}, 3*time.Second, 50*time.Millisecond)
	stop()
}

func TestSessionJanitorRejectsBadSchedule(t *testing.T) {
	globalLogger = zerolog.Nop()

	assert.Panics(t, func() {
		startSessionJanitor("every now and then", new(sessionServiceStub))
	})
}

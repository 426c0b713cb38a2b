package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTaskString(t *testing.T) {
	task := &Task{Title: "Essay"}
	assert.Equal(t, "[TODO] Essay", task.String())

	task.Completed = true
	assert.Equal(t, "[DONE] Essay", task.String())
}

func TestTaskStatsPending(t *testing.T) {
	stats := TaskStats{Total: 7, Completed: 3}
	assert.EqualValues(t, 4, stats.Pending())
}

func TestIdentityAnonymous(t *testing.T) {
	assert.True(t, Identity{}.Anonymous())
	assert.False(t, Identity{UserID: "u1"}.Anonymous())
}

func TestSessionExpired(t *testing.T) {
	now := time.Now()
	session := &Session{ID: "s1", UserID: "u1", ExpiresAt: now.Add(time.Minute)}

	assert.False(t, session.Expired(now))
	assert.True(t, session.Expired(now.Add(time.Minute)))
	assert.Equal(t, Identity{UserID: "u1", SessionID: "s1"}, session.Identity())
}

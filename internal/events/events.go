// Package events publishes task and note changes to Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TaskCreated Type = "task.created"
	TaskUpdated Type = "task.updated"
	TaskToggled Type = "task.toggled"
	TaskDeleted Type = "task.deleted"
	NoteCreated Type = "note.created"
	NoteUpdated Type = "note.updated"
	NoteDeleted Type = "note.deleted"
	UserDeleted Type = "user.deleted"
)

type Event struct {
	ID         string    `json:"id"`
	Type       Type      `json:"type"`
	UserID     string    `json:"user_id"`
	EntityID   int64     `json:"entity_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func New(typ Type, userID string, entityID int64) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       typ,
		UserID:     userID,
		EntityID:   entityID,
		OccurredAt: time.Now().UTC(),
	}
}

func Decode(data []byte) (Event, error) {
	var event Event
	err := json.Unmarshal(data, &event)
	if err != nil {
		return Event{}, fmt.Errorf("failed to decode event: %w", err)
	}
	if event.Type == "" || event.UserID == "" {
		return Event{}, fmt.Errorf("incomplete event %q", data)
	}
	return event, nil
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NopPublisher drops every event. It is used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

func (NopPublisher) Close() error { return nil }

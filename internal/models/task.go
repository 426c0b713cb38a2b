package models

import "time"

const (
	TaskTitleMaxLength = 255
	// DateLayout is the wire format of Task.DueDate.
	DateLayout = time.DateOnly
)

type Task struct {
	ID          int64
	UserID      string
	Title       string
	Description string
	DueDate     *time.Time
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (t *Task) OwnerID() string {
	if t == nil {
		return ""
	}
	return t.UserID
}

func (t *Task) String() string {
	if t.Completed {
		return "[DONE] " + t.Title
	}
	return "[TODO] " + t.Title
}

// TaskStats is the per-user aggregate shown on the dashboard.
type TaskStats struct {
	Total     int64
	Completed int64
}

func (s TaskStats) Pending() int64 {
	return s.Total - s.Completed
}

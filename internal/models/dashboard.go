package models

const RecentNotesLimit = 5

type Dashboard struct {
	TotalTasks     int64   `json:"total_tasks"`
	CompletedTasks int64   `json:"completed_tasks"`
	PendingTasks   int64   `json:"pending_tasks"`
	RecentNotes    []*Note `json:"recent_notes"`
}

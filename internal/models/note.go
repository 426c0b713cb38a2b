package models

import "time"

const NoteTitleMaxLength = 200

type Note struct {
	ID        int64
	UserID    string
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (n *Note) OwnerID() string {
	if n == nil {
		return ""
	}
	return n.UserID
}

func (n *Note) String() string {
	return n.Title
}

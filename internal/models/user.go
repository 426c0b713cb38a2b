package models

import "time"

type User struct {
	ID        string
	Email     string
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Identity is the authenticated requester. It is resolved once per
// request by the auth middleware and handed to every service call.
type Identity struct {
	UserID    string
	SessionID string
}

func (i Identity) Anonymous() bool {
	return i.UserID == ""
}

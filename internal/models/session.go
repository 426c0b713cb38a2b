package models

import "time"

// Session is a refresh token bound to one browser fingerprint.
// A user holds at most one session at a time.
type Session struct {
	ID           string
	UserID       string
	Fingerprint  string
	RefreshToken string
	ExpiresAt    time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

func (s *Session) Identity() Identity {
	return Identity{
		UserID:    s.UserID,
		SessionID: s.ID,
	}
}

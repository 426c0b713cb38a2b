package services

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/adanyl0v/go-study-planner/internal/models"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUserAlreadyExists    = errors.New("user already exists")
	ErrUserPasswordMismatch = errors.New("user password mismatch")
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionExpired       = errors.New("session expired")
	ErrTaskNotFound         = errors.New("task not found")
	ErrNoteNotFound         = errors.New("note not found")
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

type AuthService interface {
	// Login authenticates the user by email and password.
	//
	// It deletes all sessions with the same user ID and creates
	// a new session and generates a new JWT token pair.
	//
	// It returns ErrUserNotFound if the user with the given
	// email doesn't exist or ErrUserPasswordMismatch if the
	// given password doesn't match the user's password.
	Login(ctx context.Context, params LoginParams) (*LoginResult, error)

	// Refresh updates the session with the given refresh token.
	//
	// It returns ErrSessionNotFound if the session with the
	// given refresh token doesn't exist or ErrSessionExpired
	// if the session is expired.
	Refresh(ctx context.Context, params RefreshParams) (*LoginResult, error)

	// Register a user with the given email and password.
	//
	// It hashes the password, generates a unique ID and creates a
	// session with the given fingerprint and a fresh JWT token pair.
	//
	// It returns ErrUserAlreadyExists if the user
	// with the given email already exists.
	Register(ctx context.Context, params LoginParams) (*LoginResult, error)

	// Logout invalidates all sessions with the given user ID.
	Logout(ctx context.Context, identity models.Identity) error

	// DeleteAccount removes the user. Sessions, tasks and notes
	// of the user are removed with it by the database.
	DeleteAccount(ctx context.Context, identity models.Identity) error

	// ParseJWTToken parses the given JWT token and returns the registered
	// claims or jwt.ErrTokenExpired if the token is expired.
	ParseJWTToken(token string) (*jwt.RegisteredClaims, error)
}

type SessionService interface {
	// GetSessionByID returns ErrSessionNotFound for an unknown id and
	// ErrSessionExpired for a session past its refresh deadline.
	GetSessionByID(ctx context.Context, sessionID string) (*models.Session, error)

	// DeleteExpiredSessions returns the number of removed sessions.
	DeleteExpiredSessions(ctx context.Context) (int64, error)
}

// TaskService reads and writes the tasks of the given identity only.
// A task of another user is reported as ErrTaskNotFound.
type TaskService interface {
	// CreateTask stores a new task owned by identity. Any owner set
	// on the argument is ignored.
	CreateTask(ctx context.Context, identity models.Identity, task *models.Task) (*models.Task, error)
	GetTask(ctx context.Context, identity models.Identity, taskID int64) (*models.Task, error)

	// ListTasks returns the tasks ordered incomplete first, then
	// newest first. It returns an empty slice if there are none.
	ListTasks(ctx context.Context, identity models.Identity, params ListParams) ([]*models.Task, error)

	// UpdateTask locks the task, passes it to patch and stores the
	// result. An error from patch aborts the update and is returned as is.
	UpdateTask(ctx context.Context, identity models.Identity, taskID int64, patch func(*models.Task) error) (*models.Task, error)

	// ToggleTask flips the completion flag.
	ToggleTask(ctx context.Context, identity models.Identity, taskID int64) (*models.Task, error)
	DeleteTask(ctx context.Context, identity models.Identity, taskID int64) error
	CountTasks(ctx context.Context, identity models.Identity) (models.TaskStats, error)
}

// NoteService is the note counterpart of TaskService. Notes are
// always ordered newest first.
type NoteService interface {
	CreateNote(ctx context.Context, identity models.Identity, note *models.Note) (*models.Note, error)
	GetNote(ctx context.Context, identity models.Identity, noteID int64) (*models.Note, error)
	ListNotes(ctx context.Context, identity models.Identity, params ListParams) ([]*models.Note, error)
	UpdateNote(ctx context.Context, identity models.Identity, noteID int64, patch func(*models.Note) error) (*models.Note, error)
	DeleteNote(ctx context.Context, identity models.Identity, noteID int64) error
}

type DashboardService interface {
	GetDashboard(ctx context.Context, identity models.Identity) (*models.Dashboard, error)
}

type LoginParams struct {
	Email       string
	Password    string
	Fingerprint string
}

type LoginResult struct {
	UserID                string
	SessionID             string
	AccessToken           string
	AccessTokenExpiresAt  time.Time
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
}

type RefreshParams struct {
	RefreshToken string
	Fingerprint  string
}

type ListParams struct {
	Offset uint32
	Limit  uint32
}

func (p ListParams) limit() uint32 {
	switch {
	case p.Limit == 0:
		return defaultListLimit
	case p.Limit > maxListLimit:
		return maxListLimit
	default:
		return p.Limit
	}
}

package v1

import (
	"context"
	"sort"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/adanyl0v/go-study-planner/internal/models"
	"github.com/adanyl0v/go-study-planner/internal/services"
)

// authServiceStub treats an access token as the id of its session.
type authServiceStub struct {
	services.AuthService
	expired   map[string]bool
	loginFn   func(params services.LoginParams) (*services.LoginResult, error)
	refreshFn func(params services.RefreshParams) (*services.LoginResult, error)
	logouts   []models.Identity
	deleted   []models.Identity
}

func (s *authServiceStub) ParseJWTToken(token string) (*jwt.RegisteredClaims, error) {
	if s.expired[token] {
		return nil, jwt.ErrTokenExpired
	}
	return &jwt.RegisteredClaims{Subject: token}, nil
}

func (s *authServiceStub) Login(_ context.Context, params services.LoginParams) (*services.LoginResult, error) {
	return s.loginFn(params)
}

func (s *authServiceStub) Register(_ context.Context, params services.LoginParams) (*services.LoginResult, error) {
	return s.loginFn(params)
}

func (s *authServiceStub) Refresh(_ context.Context, params services.RefreshParams) (*services.LoginResult, error) {
	return s.refreshFn(params)
}

func (s *authServiceStub) Logout(_ context.Context, identity models.Identity) error {
	s.logouts = append(s.logouts, identity)
	return nil
}

func (s *authServiceStub) DeleteAccount(_ context.Context, identity models.Identity) error {
	s.deleted = append(s.deleted, identity)
	return nil
}

type sessionServiceStub struct {
	services.SessionService
	sessions map[string]*models.Session
}

func (s *sessionServiceStub) GetSessionByID(_ context.Context, sessionID string) (*models.Session, error) {
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, services.ErrSessionNotFound
	}
	return session, nil
}

// memoryTaskService keeps tasks in a map and scopes every call to
// the owner the same way the SQL implementation does.
type memoryTaskService struct {
	tasks  map[int64]*models.Task
	nextID int64
}

func newMemoryTaskService() *memoryTaskService {
	return &memoryTaskService{tasks: make(map[int64]*models.Task)}
}

func (s *memoryTaskService) owned(identity models.Identity, taskID int64) (*models.Task, error) {
	task, ok := s.tasks[taskID]
	if !ok || task.UserID != identity.UserID {
		return nil, services.ErrTaskNotFound
	}
	return task, nil
}

func (s *memoryTaskService) CreateTask(_ context.Context, identity models.Identity, task *models.Task) (*models.Task, error) {
	s.nextID++
	created := *task
	created.ID = s.nextID
	created.UserID = identity.UserID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	s.tasks[created.ID] = &created

	result := created
	return &result, nil
}

func (s *memoryTaskService) GetTask(_ context.Context, identity models.Identity, taskID int64) (*models.Task, error) {
	task, err := s.owned(identity, taskID)
	if err != nil {
		return nil, err
	}
	result := *task
	return &result, nil
}

func (s *memoryTaskService) ListTasks(_ context.Context, identity models.Identity, _ services.ListParams) ([]*models.Task, error) {
	tasks := make([]*models.Task, 0)
	for _, task := range s.tasks {
		if task.UserID == identity.UserID {
			result := *task
			tasks = append(tasks, &result)
		}
	}
	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].Completed != tasks[j].Completed {
			return !tasks[i].Completed
		}
		return tasks[i].ID > tasks[j].ID
	})
	return tasks, nil
}

func (s *memoryTaskService) UpdateTask(_ context.Context, identity models.Identity, taskID int64, patch func(*models.Task) error) (*models.Task, error) {
	task, err := s.owned(identity, taskID)
	if err != nil {
		return nil, err
	}

	updated := *task
	err = patch(&updated)
	if err != nil {
		return nil, err
	}
	updated.UpdatedAt = time.Now()
	s.tasks[taskID] = &updated

	result := updated
	return &result, nil
}

func (s *memoryTaskService) ToggleTask(ctx context.Context, identity models.Identity, taskID int64) (*models.Task, error) {
	return s.UpdateTask(ctx, identity, taskID, func(task *models.Task) error {
		task.Completed = !task.Completed
		return nil
	})
}

func (s *memoryTaskService) DeleteTask(_ context.Context, identity models.Identity, taskID int64) error {
	_, err := s.owned(identity, taskID)
	if err != nil {
		return err
	}
	delete(s.tasks, taskID)
	return nil
}

func (s *memoryTaskService) CountTasks(_ context.Context, identity models.Identity) (models.TaskStats, error) {
	var stats models.TaskStats
	for _, task := range s.tasks {
		if task.UserID != identity.UserID {
			continue
		}
		stats.Total++
		if task.Completed {
			stats.Completed++
		}
	}
	return stats, nil
}

type noteServiceStub struct {
	services.NoteService
	createFn func(identity models.Identity, note *models.Note) (*models.Note, error)
	getFn    func(identity models.Identity, noteID int64) (*models.Note, error)
	listFn   func(identity models.Identity, params services.ListParams) ([]*models.Note, error)
	updateFn func(identity models.Identity, noteID int64, patch func(*models.Note) error) (*models.Note, error)
	deleteFn func(identity models.Identity, noteID int64) error
}

func (s *noteServiceStub) CreateNote(_ context.Context, identity models.Identity, note *models.Note) (*models.Note, error) {
	return s.createFn(identity, note)
}

func (s *noteServiceStub) GetNote(_ context.Context, identity models.Identity, noteID int64) (*models.Note, error) {
	return s.getFn(identity, noteID)
}

func (s *noteServiceStub) ListNotes(_ context.Context, identity models.Identity, params services.ListParams) ([]*models.Note, error) {
	return s.listFn(identity, params)
}

func (s *noteServiceStub) DeleteNote(_ context.Context, identity models.Identity, noteID int64) error {
	return s.deleteFn(identity, noteID)
}

func (s *noteServiceStub) UpdateNote(_ context.Context, identity models.Identity, noteID int64, patch func(*models.Note) error) (*models.Note, error) {
	return s.updateFn(identity, noteID, patch)
}

type dashboardServiceStub struct {
	getFn func(identity models.Identity) (*models.Dashboard, error)
}

func (s *dashboardServiceStub) GetDashboard(_ context.Context, identity models.Identity) (*models.Dashboard, error) {
	return s.getFn(identity)
}

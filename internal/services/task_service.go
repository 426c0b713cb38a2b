package services

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-study-planner/internal/access"
	"github.com/adanyl0v/go-study-planner/internal/cache"
	"github.com/adanyl0v/go-study-planner/internal/events"
	"github.com/adanyl0v/go-study-planner/internal/models"
)

const taskColumns = `id,
       user_id,
       title,
       description,
       due_date,
       completed,
       created_at,
       updated_at`

type taskServiceImpl struct {
	changeNotifier
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func NewTaskService(
	logger zerolog.Logger,
	pgPool *pgxpool.Pool,
	publisher events.Publisher,
	dashboards cache.DashboardCache,
) TaskService {
	return &taskServiceImpl{
		changeNotifier: changeNotifier{
			logger:     logger,
			publisher:  publisher,
			dashboards: dashboards,
		},
		logger: logger,
		pgPool: pgPool,
	}
}

func scanTask(row pgx.Row) (*models.Task, error) {
	task := new(models.Task)
	err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.Description,
		&task.DueDate,
		&task.Completed,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskServiceImpl) CreateTask(ctx context.Context, identity models.Identity, task *models.Task) (*models.Task, error) {
	err := requireIdentity(identity)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	task = &models.Task{
		UserID:      identity.UserID,
		Title:       task.Title,
		Description: task.Description,
		DueDate:     task.DueDate,
		Completed:   task.Completed,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	const insertTaskQuery = `
INSERT INTO tasks (user_id,
                   title,
                   description,
                   due_date,
                   completed,
                   created_at,
                   updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id
`
	err = s.pgPool.QueryRow(
		ctx,
		insertTaskQuery,
		task.UserID,
		task.Title,
		task.Description,
		task.DueDate,
		task.Completed,
		task.CreatedAt,
		task.UpdatedAt,
	).Scan(&task.ID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", task.UserID).
			Msg("failed to insert task")
		return nil, err
	}
	s.logger.Debug().
		Int64("task_id", task.ID).
		Msg("inserted task")

	s.changed(ctx, events.New(events.TaskCreated, task.UserID, task.ID))

	s.logger.Info().
		Int64("task_id", task.ID).
		Str("user_id", task.UserID).
		Msg("created task")
	return task, nil
}

func (s *taskServiceImpl) GetTask(ctx context.Context, identity models.Identity, taskID int64) (*models.Task, error) {
	err := requireIdentity(identity)
	if err != nil {
		return nil, err
	}

	const selectTaskQuery = `
SELECT ` + taskColumns + `
FROM tasks
WHERE id = $1 AND
      user_id = $2
`
	task, err := scanTask(s.pgPool.QueryRow(
		ctx,
		selectTaskQuery,
		taskID,
		identity.UserID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Error().
				Int64("task_id", taskID).
				Str("user_id", identity.UserID).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("task_id", taskID).
			Msg("failed to select task")
		return nil, err
	}
	s.logger.Debug().
		Int64("task_id", task.ID).
		Msg("selected task")
	return task, nil
}

func (s *taskServiceImpl) ListTasks(ctx context.Context, identity models.Identity, params ListParams) ([]*models.Task, error) {
	err := requireIdentity(identity)
	if err != nil {
		return nil, err
	}
	limit := params.limit()

	const selectTasksByUserIDQuery = `
SELECT ` + taskColumns + `
FROM tasks
WHERE user_id = $1
ORDER BY completed, created_at DESC, id DESC
LIMIT $2 OFFSET $3
`
	rows, err := s.pgPool.Query(
		ctx,
		selectTasksByUserIDQuery,
		identity.UserID,
		limit,
		params.Offset,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select tasks by user id")
		return nil, err
	}
	defer rows.Close()

	tasks := make([]*models.Task, 0, limit)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan task")
			return nil, err
		}
		tasks = append(tasks, task)
	}

	err = rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}

	s.logger.Debug().
		Int("count", len(tasks)).
		Str("user_id", identity.UserID).
		Msg("selected tasks by user id")
	return tasks, nil
}

func (s *taskServiceImpl) UpdateTask(
	ctx context.Context,
	identity models.Identity,
	taskID int64,
	patch func(*models.Task) error,
) (*models.Task, error) {
	err := requireIdentity(identity)
	if err != nil {
		return nil, err
	}

	tx, err := s.pgPool.Begin(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to begin transaction")
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const selectTaskForUpdateQuery = `
SELECT ` + taskColumns + `
FROM tasks
WHERE id = $1
FOR UPDATE
`
	task, err := scanTask(tx.QueryRow(
		ctx,
		selectTaskForUpdateQuery,
		taskID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Error().
				Int64("task_id", taskID).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("task_id", taskID).
			Msg("failed to select task for update")
		return nil, err
	}

	err = access.Authorize(identity, task)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Int64("task_id", taskID).
			Str("user_id", identity.UserID).
			Msg("rejected task update")
		return nil, ErrTaskNotFound
	}

	err = patch(task)
	if err != nil {
		return nil, err
	}
	task.UpdatedAt = time.Now()

	const updateTaskQuery = `
UPDATE tasks
SET title = $1,
    description = $2,
    due_date = $3,
    completed = $4,
    updated_at = $5
WHERE id = $6 AND
      user_id = $7
`
	_, err = tx.Exec(
		ctx,
		updateTaskQuery,
		task.Title,
		task.Description,
		task.DueDate,
		task.Completed,
		task.UpdatedAt,
		task.ID,
		identity.UserID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("task_id", task.ID).
			Msg("failed to update task")
		return nil, err
	}

	err = tx.Commit(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to commit transaction")
		return nil, err
	}
	s.logger.Debug().
		Int64("task_id", task.ID).
		Msg("updated task")

	s.changed(ctx, events.New(events.TaskUpdated, task.UserID, task.ID))

	s.logger.Info().
		Int64("task_id", task.ID).
		Str("user_id", task.UserID).
		Msg("updated task")
	return task, nil
}

func (s *taskServiceImpl) ToggleTask(ctx context.Context, identity models.Identity, taskID int64) (*models.Task, error) {
	err := requireIdentity(identity)
	if err != nil {
		return nil, err
	}

	const toggleTaskQuery = `
UPDATE tasks
SET completed = NOT completed,
    updated_at = $1
WHERE id = $2 AND
      user_id = $3
RETURNING ` + taskColumns + `
`
	task, err := scanTask(s.pgPool.QueryRow(
		ctx,
		toggleTaskQuery,
		time.Now(),
		taskID,
		identity.UserID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Error().
				Int64("task_id", taskID).
				Str("user_id", identity.UserID).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("task_id", taskID).
			Msg("failed to toggle task")
		return nil, err
	}
	s.logger.Debug().
		Int64("task_id", task.ID).
		Bool("completed", task.Completed).
		Msg("toggled task")

	s.changed(ctx, events.New(events.TaskToggled, task.UserID, task.ID))

	s.logger.Info().
		Int64("task_id", task.ID).
		Str("user_id", task.UserID).
		Msg("toggled task")
	return task, nil
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, identity models.Identity, taskID int64) error {
	err := requireIdentity(identity)
	if err != nil {
		return err
	}

	const deleteTaskQuery = `
DELETE FROM tasks
WHERE id = $1 AND
      user_id = $2
`
	tag, err := s.pgPool.Exec(
		ctx,
		deleteTaskQuery,
		taskID,
		identity.UserID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("task_id", taskID).
			Msg("failed to delete task")
		return err
	}
	if tag.RowsAffected() == 0 {
		s.logger.Error().
			Int64("task_id", taskID).
			Str("user_id", identity.UserID).
			Msg("task not found")
		return ErrTaskNotFound
	}
	s.logger.Debug().
		Int64("task_id", taskID).
		Msg("deleted task")

	s.changed(ctx, events.New(events.TaskDeleted, identity.UserID, taskID))

	s.logger.Info().
		Int64("task_id", taskID).
		Str("user_id", identity.UserID).
		Msg("deleted task")
	return nil
}

func (s *taskServiceImpl) CountTasks(ctx context.Context, identity models.Identity) (models.TaskStats, error) {
	var stats models.TaskStats
	err := requireIdentity(identity)
	if err != nil {
		return stats, err
	}

	const countTasksQuery = `
SELECT count(*),
       count(*) FILTER (WHERE completed)
FROM tasks
WHERE user_id = $1
`
	err = s.pgPool.QueryRow(
		ctx,
		countTasksQuery,
		identity.UserID,
	).Scan(
		&stats.Total,
		&stats.Completed,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", identity.UserID).
			Msg("failed to count tasks")
		return stats, err
	}
	s.logger.Debug().
		Int64("total", stats.Total).
		Int64("completed", stats.Completed).
		Msg("counted tasks")
	return stats, nil
}

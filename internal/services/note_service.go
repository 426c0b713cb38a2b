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

const noteColumns = `id,
       user_id,
       title,
       content,
       created_at,
       updated_at`

type noteServiceImpl struct {
	changeNotifier
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func NewNoteService(
	logger zerolog.Logger,
	pgPool *pgxpool.Pool,
	publisher events.Publisher,
	dashboards cache.DashboardCache,
) NoteService {
	return &noteServiceImpl{
		changeNotifier: changeNotifier{
			logger:     logger,
			publisher:  publisher,
			dashboards: dashboards,
		},
		logger: logger,
		pgPool: pgPool,
	}
}

func scanNote(row pgx.Row) (*models.Note, error) {
	note := new(models.Note)
	err := row.Scan(
		&note.ID,
		&note.UserID,
		&note.Title,
		&note.Content,
		&note.CreatedAt,
		&note.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return note, nil
}

func (s *noteServiceImpl) CreateNote(ctx context.Context, identity models.Identity, note *models.Note) (*models.Note, error) {
	err := requireIdentity(identity)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	note = &models.Note{
		UserID:    identity.UserID,
		Title:     note.Title,
		Content:   note.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	const insertNoteQuery = `
INSERT INTO notes (user_id,
                   title,
                   content,
                   created_at,
                   updated_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id
`
	err = s.pgPool.QueryRow(
		ctx,
		insertNoteQuery,
		note.UserID,
		note.Title,
		note.Content,
		note.CreatedAt,
		note.UpdatedAt,
	).Scan(&note.ID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", note.UserID).
			Msg("failed to insert note")
		return nil, err
	}
	s.logger.Debug().
		Int64("note_id", note.ID).
		Msg("inserted note")

	s.changed(ctx, events.New(events.NoteCreated, note.UserID, note.ID))

	s.logger.Info().
		Int64("note_id", note.ID).
		Str("user_id", note.UserID).
		Msg("created note")
	return note, nil
}

func (s *noteServiceImpl) GetNote(ctx context.Context, identity models.Identity, noteID int64) (*models.Note, error) {
	err := requireIdentity(identity)
	if err != nil {
		return nil, err
	}

	const selectNoteQuery = `
SELECT ` + noteColumns + `
FROM notes
WHERE id = $1 AND
      user_id = $2
`
	note, err := scanNote(s.pgPool.QueryRow(
		ctx,
		selectNoteQuery,
		noteID,
		identity.UserID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Error().
				Int64("note_id", noteID).
				Str("user_id", identity.UserID).
				Msg("note not found")
			return nil, ErrNoteNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("note_id", noteID).
			Msg("failed to select note")
		return nil, err
	}
	s.logger.Debug().
		Int64("note_id", note.ID).
		Msg("selected note")
	return note, nil
}

func (s *noteServiceImpl) ListNotes(ctx context.Context, identity models.Identity, params ListParams) ([]*models.Note, error) {
	err := requireIdentity(identity)
	if err != nil {
		return nil, err
	}
	limit := params.limit()

	const selectNotesByUserIDQuery = `
SELECT ` + noteColumns + `
FROM notes
WHERE user_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2 OFFSET $3
`
	rows, err := s.pgPool.Query(
		ctx,
		selectNotesByUserIDQuery,
		identity.UserID,
		limit,
		params.Offset,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select notes by user id")
		return nil, err
	}
	defer rows.Close()

	notes := make([]*models.Note, 0, limit)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan note")
			return nil, err
		}
		notes = append(notes, note)
	}

	err = rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}

	s.logger.Debug().
		Int("count", len(notes)).
		Str("user_id", identity.UserID).
		Msg("selected notes by user id")
	return notes, nil
}

func (s *noteServiceImpl) UpdateNote(
	ctx context.Context,
	identity models.Identity,
	noteID int64,
	patch func(*models.Note) error,
) (*models.Note, error) {
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

	const selectNoteForUpdateQuery = `
SELECT ` + noteColumns + `
FROM notes
WHERE id = $1
FOR UPDATE
`
	note, err := scanNote(tx.QueryRow(
		ctx,
		selectNoteForUpdateQuery,
		noteID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Error().
				Int64("note_id", noteID).
				Msg("note not found")
			return nil, ErrNoteNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("note_id", noteID).
			Msg("failed to select note for update")
		return nil, err
	}

	err = access.Authorize(identity, note)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Int64("note_id", noteID).
			Str("user_id", identity.UserID).
			Msg("rejected note update")
		return nil, ErrNoteNotFound
	}

	err = patch(note)
	if err != nil {
		return nil, err
	}
	note.UpdatedAt = time.Now()

	const updateNoteQuery = `
UPDATE notes
SET title = $1,
    content = $2,
    updated_at = $3
WHERE id = $4 AND
      user_id = $5
`
	_, err = tx.Exec(
		ctx,
		updateNoteQuery,
		note.Title,
		note.Content,
		note.UpdatedAt,
		note.ID,
		identity.UserID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("note_id", note.ID).
			Msg("failed to update note")
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
		Int64("note_id", note.ID).
		Msg("updated note")

	s.changed(ctx, events.New(events.NoteUpdated, note.UserID, note.ID))

	s.logger.Info().
		Int64("note_id", note.ID).
		Str("user_id", note.UserID).
		Msg("updated note")
	return note, nil
}

func (s *noteServiceImpl) DeleteNote(ctx context.Context, identity models.Identity, noteID int64) error {
	err := requireIdentity(identity)
	if err != nil {
		return err
	}

	const deleteNoteQuery = `
DELETE FROM notes
WHERE id = $1 AND
      user_id = $2
`
	tag, err := s.pgPool.Exec(
		ctx,
		deleteNoteQuery,
		noteID,
		identity.UserID,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("note_id", noteID).
			Msg("failed to delete note")
		return err
	}
	if tag.RowsAffected() == 0 {
		s.logger.Error().
			Int64("note_id", noteID).
			Str("user_id", identity.UserID).
			Msg("note not found")
		return ErrNoteNotFound
	}
	s.logger.Debug().
		Int64("note_id", noteID).
		Msg("deleted note")

	s.changed(ctx, events.New(events.NoteDeleted, identity.UserID, noteID))

	s.logger.Info().
		Int64("note_id", noteID).
		Str("user_id", identity.UserID).
		Msg("deleted note")
	return nil
}

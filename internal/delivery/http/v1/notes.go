package v1

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-study-planner/internal/forms"
	"github.com/adanyl0v/go-study-planner/internal/models"
	"github.com/adanyl0v/go-study-planner/internal/services"
)

type getNoteResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newGetNoteResponse(note *models.Note) getNoteResponse {
	return getNoteResponse{
		ID:        note.ID,
		Title:     note.Title,
		Content:   note.Content,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}

func newGetNoteResponses(notes []*models.Note) []getNoteResponse {
	response := make([]getNoteResponse, len(notes))
	for i, note := range notes {
		response[i] = newGetNoteResponse(note)
	}
	return response
}

func (h *handlerImpl) HandleCreateNote(c *gin.Context) {
	identity, ok := h.mustGetIdentity(c)
	if !ok {
		return
	}

	var form forms.CreateNoteForm
	err := c.ShouldBind(&form)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind request body")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	err = form.Validate()
	if err != nil {
		h.abortFormError(c, err)
		return
	}

	note, err := h.notes.CreateNote(c, identity, form.Note())
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("user_id", identity.UserID).
			Msg("failed to create note")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	c.Header("Location", fmt.Sprintf("%s/%d", c.FullPath(), note.ID))
	c.JSON(http.StatusCreated, newGetNoteResponse(note))
}

func (h *handlerImpl) HandleGetNotes(c *gin.Context) {
	identity, ok := h.mustGetIdentity(c)
	if !ok {
		return
	}

	var query listQuery
	err := c.ShouldBindQuery(&query)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind query")
		abort(c, newBadRequestError(errInvalidQuery.Error()))
		return
	}

	notes, err := h.notes.ListNotes(c, identity, query.params())
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("user_id", identity.UserID).
			Msg("failed to list notes")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}
	c.JSON(http.StatusOK, newGetNoteResponses(notes))
}

func (h *handlerImpl) HandleGetNote(c *gin.Context) {
	identity, ok := h.mustGetIdentity(c)
	if !ok {
		return
	}

	noteID, ok := h.mustGetID(c, services.ErrNoteNotFound)
	if !ok {
		return
	}

	note, err := h.notes.GetNote(c, identity, noteID)
	if err != nil {
		h.abortNoteError(c, err, "failed to get note")
		return
	}
	c.JSON(http.StatusOK, newGetNoteResponse(note))
}

func (h *handlerImpl) HandleUpdateNote(c *gin.Context) {
	identity, ok := h.mustGetIdentity(c)
	if !ok {
		return
	}

	noteID, ok := h.mustGetID(c, services.ErrNoteNotFound)
	if !ok {
		return
	}

	var form forms.UpdateNoteForm
	err := c.ShouldBind(&form)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind request body")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	err = form.Validate()
	if err != nil {
		h.abortFormError(c, err)
		return
	}

	note, err := h.notes.UpdateNote(c, identity, noteID, func(note *models.Note) error {
		form.Apply(note)
		return nil
	})
	if err != nil {
		h.abortNoteError(c, err, "failed to update note")
		return
	}
	c.JSON(http.StatusOK, newGetNoteResponse(note))
}

func (h *handlerImpl) HandleDeleteNote(c *gin.Context) {
	identity, ok := h.mustGetIdentity(c)
	if !ok {
		return
	}

	noteID, ok := h.mustGetID(c, services.ErrNoteNotFound)
	if !ok {
		return
	}

	err := h.notes.DeleteNote(c, identity, noteID)
	if err != nil {
		h.abortNoteError(c, err, "failed to delete note")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlerImpl) abortNoteError(c *gin.Context, err error, msg string) {
	if errors.Is(err, services.ErrNoteNotFound) {
		abort(c, newNotFoundError(services.ErrNoteNotFound.Error()))
		return
	}

	h.logger.Error().
		Err(err).
		Str("note_id", c.Param("id")).
		Msg(msg)
	abort(c, newStatusTextError(http.StatusInternalServerError))
}

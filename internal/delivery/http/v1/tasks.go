package v1

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-study-planner/internal/forms"
	"github.com/adanyl0v/go-study-planner/internal/models"
	"github.com/adanyl0v/go-study-planner/internal/services"
)

type getTaskResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     *string   `json:"due_date"`
	Completed   bool      `json:"completed"`
	Label       string    `json:"label"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newGetTaskResponse(task *models.Task) getTaskResponse {
	resp := getTaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Completed:   task.Completed,
		Label:       task.String(),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
	if task.DueDate != nil {
		dueDate := task.DueDate.Format(models.DateLayout)
		resp.DueDate = &dueDate
	}
	return resp
}

type listQuery struct {
	Offset uint32 `form:"offset"`
	Limit  uint32 `form:"limit" binding:"max=200"`
}

func (q listQuery) params() services.ListParams {
	return services.ListParams{
		Offset: q.Offset,
		Limit:  q.Limit,
	}
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	identity, ok := h.mustGetIdentity(c)
	if !ok {
		return
	}

	var form forms.CreateTaskForm
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

	task, err := form.Task()
	if err != nil {
		h.abortFormError(c, err)
		return
	}

	task, err = h.tasks.CreateTask(c, identity, task)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("user_id", identity.UserID).
			Msg("failed to create task")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	c.Header("Location", fmt.Sprintf("%s/%d", c.FullPath(), task.ID))
	c.JSON(http.StatusCreated, newGetTaskResponse(task))
}

func (h *handlerImpl) HandleGetTasks(c *gin.Context) {
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

	tasks, err := h.tasks.ListTasks(c, identity, query.params())
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("user_id", identity.UserID).
			Msg("failed to list tasks")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	response := make([]getTaskResponse, len(tasks))
	for i, task := range tasks {
		response[i] = newGetTaskResponse(task)
	}
	c.JSON(http.StatusOK, response)
}

func (h *handlerImpl) HandleGetTask(c *gin.Context) {
	identity, ok := h.mustGetIdentity(c)
	if !ok {
		return
	}

	taskID, ok := h.mustGetID(c, services.ErrTaskNotFound)
	if !ok {
		return
	}

	task, err := h.tasks.GetTask(c, identity, taskID)
	if err != nil {
		h.abortTaskError(c, err, "failed to get task")
		return
	}
	c.JSON(http.StatusOK, newGetTaskResponse(task))
}

func (h *handlerImpl) HandleUpdateTask(c *gin.Context) {
	identity, ok := h.mustGetIdentity(c)
	if !ok {
		return
	}

	taskID, ok := h.mustGetID(c, services.ErrTaskNotFound)
	if !ok {
		return
	}

	var form forms.UpdateTaskForm
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

	task, err := h.tasks.UpdateTask(c, identity, taskID, form.Apply)
	if err != nil {
		var fields forms.FieldErrors
		if errors.As(err, &fields) {
			abortValidation(c, fields)
			return
		}
		h.abortTaskError(c, err, "failed to update task")
		return
	}
	c.JSON(http.StatusOK, newGetTaskResponse(task))
}

func (h *handlerImpl) HandleToggleTask(c *gin.Context) {
	identity, ok := h.mustGetIdentity(c)
	if !ok {
		return
	}

	taskID, ok := h.mustGetID(c, services.ErrTaskNotFound)
	if !ok {
		return
	}

	task, err := h.tasks.ToggleTask(c, identity, taskID)
	if err != nil {
		h.abortTaskError(c, err, "failed to toggle task")
		return
	}
	c.JSON(http.StatusOK, newGetTaskResponse(task))
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	identity, ok := h.mustGetIdentity(c)
	if !ok {
		return
	}

	taskID, ok := h.mustGetID(c, services.ErrTaskNotFound)
	if !ok {
		return
	}

	err := h.tasks.DeleteTask(c, identity, taskID)
	if err != nil {
		h.abortTaskError(c, err, "failed to delete task")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlerImpl) abortTaskError(c *gin.Context, err error, msg string) {
	if errors.Is(err, services.ErrTaskNotFound) {
		abort(c, newNotFoundError(services.ErrTaskNotFound.Error()))
		return
	}

	h.logger.Error().
		Err(err).
		Str("task_id", c.Param("id")).
		Msg(msg)
	abort(c, newStatusTextError(http.StatusInternalServerError))
}

// mustGetID parses the :id path parameter. A malformed id can't name
// an existing record, so it is reported as notFound.
func (h *handlerImpl) mustGetID(c *gin.Context, notFound error) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		h.logger.Debug().
			Str("id", c.Param("id")).
			Msg("malformed id")
		abort(c, newNotFoundError(notFound.Error()))
		return 0, false
	}
	return id, true
}

func (h *handlerImpl) abortFormError(c *gin.Context, err error) {
	var fields forms.FieldErrors
	if errors.As(err, &fields) {
		abortValidation(c, fields)
		return
	}

	h.logger.Error().
		Err(err).
		Msg("failed to validate form")
	abort(c, newStatusTextError(http.StatusInternalServerError))
}

package forms

import (
	"time"

	"github.com/adanyl0v/go-study-planner/internal/models"
)

type CreateTaskForm struct {
	Title       string   `json:"title" form:"title" validate:"required,max=255"`
	Description string   `json:"description" form:"description"`
	DueDate     string   `json:"due_date" form:"due_date" validate:"omitempty,datetime=2006-01-02"`
	Completed   Checkbox `json:"completed" form:"completed"`
}

func (f *CreateTaskForm) Validate() error {
	trim(&f.Title)
	trim(&f.Description)
	trim(&f.DueDate)
	return check(f)
}

// Task materializes a validated form. The caller sets the owner.
func (f *CreateTaskForm) Task() (*models.Task, error) {
	dueDate, err := parseDueDate(f.DueDate)
	if err != nil {
		return nil, err
	}
	return &models.Task{
		Title:       f.Title,
		Description: f.Description,
		DueDate:     dueDate,
		Completed:   bool(f.Completed),
	}, nil
}

// UpdateTaskForm patches an existing task. Omitted fields keep their
// current value and an empty due_date clears it, so the date format is
// checked by Apply rather than by a struct tag.
type UpdateTaskForm struct {
	Title       *string   `json:"title" form:"title" validate:"omitnil,notblank,max=255"`
	Description *string   `json:"description" form:"description"`
	DueDate     *string   `json:"due_date" form:"due_date"`
	Completed   *Checkbox `json:"completed" form:"completed"`
}

func (f *UpdateTaskForm) Validate() error {
	trim(f.Title)
	trim(f.Description)
	trim(f.DueDate)

	err := check(f)
	if f.DueDate == nil {
		return err
	}
	_, dateErr := parseDueDate(*f.DueDate)
	if dateErr == nil {
		return err
	}
	if err == nil {
		return dateErr
	}

	fields, ok := err.(FieldErrors)
	if !ok {
		return err
	}
	for field, messages := range dateErr.(FieldErrors) {
		fields[field] = append(fields[field], messages...)
	}
	return fields
}

func (f *UpdateTaskForm) Apply(task *models.Task) error {
	if f.Title != nil {
		task.Title = *f.Title
	}
	if f.Description != nil {
		task.Description = *f.Description
	}
	if f.DueDate != nil {
		dueDate, err := parseDueDate(*f.DueDate)
		if err != nil {
			return err
		}
		task.DueDate = dueDate
	}
	if f.Completed != nil {
		task.Completed = bool(*f.Completed)
	}
	return nil
}

func parseDueDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	dueDate, err := time.Parse(models.DateLayout, value)
	if err != nil {
		fields := make(FieldErrors, 1)
		fields.Add("due_date", "due_date must be a date in YYYY-MM-DD format")
		return nil, fields
	}
	return &dueDate, nil
}

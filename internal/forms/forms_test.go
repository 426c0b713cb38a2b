package forms

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adanyl0v/go-study-planner/internal/models"
)

func ptr[T any](v T) *T {
	return &v
}

func fieldErrors(t *testing.T, err error) FieldErrors {
	t.Helper()
	require.Error(t, err)
	fields, ok := err.(FieldErrors)
	require.Truef(t, ok, "expected FieldErrors, got %T", err)
	return fields
}

func TestCreateTaskFormValid(t *testing.T) {
	form := CreateTaskForm{
		Title:       "  Essay ",
		Description: "History essay",
		DueDate:     "2025-01-10",
	}
	require.NoError(t, form.Validate())

	task, err := form.Task()
	require.NoError(t, err)
	assert.Equal(t, "Essay", task.Title)
	assert.Equal(t, "History essay", task.Description)
	assert.Empty(t, task.UserID)
	assert.False(t, task.Completed)
	require.NotNil(t, task.DueDate)
	assert.True(t, task.DueDate.Equal(time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)))
}

func TestCreateTaskFormRequiresTitle(t *testing.T) {
	for _, title := range []string{"", "   "} {
		form := CreateTaskForm{Title: title}
		fields := fieldErrors(t, form.Validate())
		assert.Equal(t, []string{"title is a required field"}, fields["title"])
	}
}

func TestCreateTaskFormTitleTooLong(t *testing.T) {
	form := CreateTaskForm{Title: strings.Repeat("a", models.TaskTitleMaxLength+1)}
	fields := fieldErrors(t, form.Validate())
	assert.Len(t, fields["title"], 1)

	form = CreateTaskForm{Title: strings.Repeat("a", models.TaskTitleMaxLength)}
	require.NoError(t, form.Validate())
}

func TestCreateTaskFormBadDueDate(t *testing.T) {
	form := CreateTaskForm{Title: "Essay", DueDate: "10/01/2025"}
	fields := fieldErrors(t, form.Validate())
	assert.Contains(t, fields, "due_date")
	assert.NotContains(t, fields, "title")
}

func TestCreateTaskFormWithoutDueDate(t *testing.T) {
	form := CreateTaskForm{Title: "Read chapter 3"}
	require.NoError(t, form.Validate())

	task, err := form.Task()
	require.NoError(t, err)
	assert.Nil(t, task.DueDate)
}

func TestUpdateTaskFormApply(t *testing.T) {
	due := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	task := &models.Task{
		ID:          1,
		UserID:      "alice",
		Title:       "Essay",
		Description: "draft",
		DueDate:     &due,
	}

	form := UpdateTaskForm{Description: ptr(" final "), Completed: ptr(Checkbox(true))}
	require.NoError(t, form.Validate())
	require.NoError(t, form.Apply(task))

	assert.Equal(t, "Essay", task.Title)
	assert.Equal(t, "final", task.Description)
	assert.True(t, task.Completed)
	assert.Equal(t, &due, task.DueDate)
	assert.Equal(t, "alice", task.UserID)

	form = UpdateTaskForm{DueDate: ptr("")}
	require.NoError(t, form.Validate())
	require.NoError(t, form.Apply(task))
	assert.Nil(t, task.DueDate)
}

func TestUpdateTaskFormDueDate(t *testing.T) {
	form := UpdateTaskForm{DueDate: ptr("  ")}
	require.NoError(t, form.Validate())
	assert.Equal(t, "", *form.DueDate)

	form = UpdateTaskForm{DueDate: ptr("2025-02-30")}
	fields := fieldErrors(t, form.Validate())
	assert.Equal(t, []string{"due_date must be a date in YYYY-MM-DD format"}, fields["due_date"])

	form = UpdateTaskForm{Title: ptr(" "), DueDate: ptr("tomorrow")}
	fields = fieldErrors(t, form.Validate())
	assert.Contains(t, fields, "title")
	assert.Contains(t, fields, "due_date")
}

func TestCheckboxUnmarshalParam(t *testing.T) {
	for param, want := range map[string]bool{
		"on": true, "true": true, "1": true,
		"off": false, "false": false, "0": false, "": false,
	} {
		var c Checkbox
		require.NoError(t, c.UnmarshalParam(param), param)
		assert.Equal(t, want, bool(c), param)
	}

	var c Checkbox
	assert.Error(t, c.UnmarshalParam("yes please"))
}

func TestUpdateTaskFormRejectsBlankTitle(t *testing.T) {
	form := UpdateTaskForm{Title: ptr("   ")}
	fields := fieldErrors(t, form.Validate())
	assert.Equal(t, []string{"title must not be blank"}, fields["title"])
}

func TestCreateNoteForm(t *testing.T) {
	form := CreateNoteForm{Title: "Lecture 1"}
	require.NoError(t, form.Validate())
	note := form.Note()
	assert.Equal(t, "Lecture 1", note.Title)
	assert.Empty(t, note.Content)

	form = CreateNoteForm{Title: strings.Repeat("n", models.NoteTitleMaxLength+1)}
	fields := fieldErrors(t, form.Validate())
	assert.Contains(t, fields, "title")
}

func TestUpdateNoteFormApply(t *testing.T) {
	note := &models.Note{UserID: "alice", Title: "Lecture 1", Content: "old"}

	form := UpdateNoteForm{Content: ptr("new")}
	require.NoError(t, form.Validate())
	form.Apply(note)

	assert.Equal(t, "Lecture 1", note.Title)
	assert.Equal(t, "new", note.Content)
}

func TestFieldErrorsError(t *testing.T) {
	fields := FieldErrors{}
	fields.Add("title", "title is a required field")
	fields.Add("due_date", "bad date")
	assert.Equal(t, "due_date: bad date; title: title is a required field", fields.Error())
}

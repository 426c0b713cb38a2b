package forms

import "github.com/adanyl0v/go-study-planner/internal/models"

type CreateNoteForm struct {
	Title   string `json:"title" form:"title" validate:"required,max=200"`
	Content string `json:"content" form:"content"`
}

func (f *CreateNoteForm) Validate() error {
	trim(&f.Title)
	trim(&f.Content)
	return check(f)
}

func (f *CreateNoteForm) Note() *models.Note {
	return &models.Note{
		Title:   f.Title,
		Content: f.Content,
	}
}

type UpdateNoteForm struct {
	Title   *string `json:"title" form:"title" validate:"omitnil,notblank,max=200"`
	Content *string `json:"content" form:"content"`
}

func (f *UpdateNoteForm) Validate() error {
	trim(f.Title)
	trim(f.Content)
	return check(f)
}

func (f *UpdateNoteForm) Apply(note *models.Note) {
	if f.Title != nil {
		note.Title = *f.Title
	}
	if f.Content != nil {
		note.Content = *f.Content
	}
}

package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateCategoryRequest struct {
	Name  string `json:"name" validate:"required,max=100"`
	Color string `json:"color" validate:"required"`
}

// UpdateCategoryRequest carries PATCH semantics: nil means "leave as is".
type UpdateCategoryRequest struct {
	Id    uuid.UUID `json:"-"`
	Name  *string   `json:"name" validate:"omitempty,max=100"`
	Color *string   `json:"color"`
}

type CategoryResponse struct {
	Id         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
	Color      string    `json:"color"`
	NotesCount int64     `json:"notes_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

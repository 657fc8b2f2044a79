package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateNoteRequest struct {
	Title    string    `json:"title" validate:"required,max=255"`
	Content  string    `json:"content"`
	Category uuid.UUID `json:"category" validate:"required"`
}

// UpdateNoteRequest carries PATCH semantics: nil means "leave as is".
type UpdateNoteRequest struct {
	Id       uuid.UUID  `json:"-"`
	Title    *string    `json:"title" validate:"omitempty,max=255"`
	Content  *string    `json:"content"`
	Category *uuid.UUID `json:"category"`
}

// NoteFilter narrows a list query; zero values mean "no filter".
type NoteFilter struct {
	CategoryId *uuid.UUID
	Search     string
}

type NoteResponse struct {
	Id            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	Preview       string    `json:"preview"`
	Category      uuid.UUID `json:"category"`
	CategoryName  string    `json:"category_name"`
	CategoryColor string    `json:"category_color"`
	CategorySlug  string    `json:"category_slug"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NoteListItemResponse is the lightweight list shape: preview instead of
// full content.
type NoteListItemResponse struct {
	Id            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Preview       string    `json:"preview"`
	Category      uuid.UUID `json:"category"`
	CategoryName  string    `json:"category_name"`
	CategoryColor string    `json:"category_color"`
	CategorySlug  string    `json:"category_slug"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

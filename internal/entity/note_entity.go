package entity

import (
	"time"

	"github.com/google/uuid"
)

const previewLength = 100

type Note struct {
	Id         uuid.UUID
	Title      string
	Content    string
	CategoryId uuid.UUID
	UserId     uuid.UUID
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Preview returns the truncated list-view representation of the content:
// the first 100 characters plus "..." when the content is longer, the
// content as-is otherwise, or "No content" when empty. Characters, not
// bytes: slicing the raw string would split multi-byte runes.
func (n *Note) Preview() string {
	if n.Content == "" {
		return "No content"
	}
	runes := []rune(n.Content)
	if len(runes) > previewLength {
		return string(runes[:previewLength]) + "..."
	}
	return n.Content
}

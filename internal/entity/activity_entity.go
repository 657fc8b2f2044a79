package entity

import (
	"time"

	"github.com/google/uuid"
)

// ActivityLog is an audit-trail row written by the background consumer, not
// by request handlers directly.
type ActivityLog struct {
	Id         uuid.UUID
	UserId     uuid.UUID
	Action     string
	Resource   string
	ResourceId uuid.UUID
	CreatedAt  time.Time
}

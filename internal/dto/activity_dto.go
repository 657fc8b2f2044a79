package dto

import (
	"time"

	"github.com/google/uuid"
)

// ActivityMessage travels over the in-process bus from services to the
// activity-log consumer.
type ActivityMessage struct {
	UserId     uuid.UUID `json:"user_id"`
	Action     string    `json:"action"`
	Resource   string    `json:"resource"`
	ResourceId uuid.UUID `json:"resource_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ActivityLogResponse is one persisted audit trail entry, newest first.
type ActivityLogResponse struct {
	Id         uuid.UUID `json:"id"`
	Action     string    `json:"action"`
	Resource   string    `json:"resource"`
	ResourceId uuid.UUID `json:"resource_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

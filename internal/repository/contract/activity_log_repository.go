package contract

import (
	"context"

	"notekeeper-be/internal/entity"
	"notekeeper-be/internal/repository/specification"
)

type ActivityLogRepository interface {
	Create(ctx context.Context, log *entity.ActivityLog) error
	FindRecent(ctx context.Context, limit int, specs ...specification.Specification) ([]*entity.ActivityLog, error)
}

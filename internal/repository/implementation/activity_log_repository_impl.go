package implementation

import (
	"context"

	"notekeeper-be/internal/entity"
	"notekeeper-be/internal/model"
	"notekeeper-be/internal/repository/contract"
	"notekeeper-be/internal/repository/scope"
	"notekeeper-be/internal/repository/specification"

	"gorm.io/gorm"
)

type ActivityLogRepositoryImpl struct {
	db *gorm.DB
}

func NewActivityLogRepository(db *gorm.DB) contract.ActivityLogRepository {
	return &ActivityLogRepositoryImpl{db: db}
}

func (r *ActivityLogRepositoryImpl) Create(ctx context.Context, log *entity.ActivityLog) error {
	m := &model.ActivityLog{
		Id:         log.Id,
		UserId:     log.UserId,
		Action:     log.Action,
		Resource:   log.Resource,
		ResourceId: log.ResourceId,
		CreatedAt:  log.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	log.Id = m.Id
	log.CreatedAt = m.CreatedAt
	return nil
}

func (r *ActivityLogRepositoryImpl) FindRecent(ctx context.Context, limit int, specs ...specification.Specification) ([]*entity.ActivityLog, error) {
	query := r.db.WithContext(ctx).Scopes(scope.OrderByCreatedDesc).Limit(limit)
	for _, spec := range specs {
		query = spec.Apply(query)
	}

	var models []*model.ActivityLog
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	logs := make([]*entity.ActivityLog, len(models))
	for i, m := range models {
		logs[i] = &entity.ActivityLog{
			Id:         m.Id,
			UserId:     m.UserId,
			Action:     m.Action,
			Resource:   m.Resource,
			ResourceId: m.ResourceId,
			CreatedAt:  m.CreatedAt,
		}
	}
	return logs, nil
}

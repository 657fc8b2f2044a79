package service

import (
	"context"

	"notekeeper-be/internal/dto"
	"notekeeper-be/internal/pkg/apperror"
	"notekeeper-be/internal/repository/specification"
	"notekeeper-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

const (
	defaultActivityLimit = 20
	maxActivityLimit     = 100
)

type IUserService interface {
	Profile(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error)
	RecentActivity(ctx context.Context, userId uuid.UUID, limit int) ([]dto.ActivityLogResponse, error)
}

type userService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewUserService(uowFactory unitofwork.RepositoryFactory) IUserService {
	return &userService{uowFactory: uowFactory}
}

func (s *userService) Profile(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("user")
	}

	return &dto.UserProfileResponse{
		Id:        user.Id,
		Email:     user.Email,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	}, nil
}

// RecentActivity returns the caller's newest audit trail entries.
func (s *userService) RecentActivity(ctx context.Context, userId uuid.UUID, limit int) ([]dto.ActivityLogResponse, error) {
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	if limit > maxActivityLimit {
		limit = maxActivityLimit
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	logs, err := uow.ActivityLogRepository().FindRecent(ctx, limit, specification.OwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ActivityLogResponse, 0, len(logs))
	for _, entry := range logs {
		responses = append(responses, dto.ActivityLogResponse{
			Id:         entry.Id,
			Action:     entry.Action,
			Resource:   entry.Resource,
			ResourceId: entry.ResourceId,
			OccurredAt: entry.CreatedAt,
		})
	}
	return responses, nil
}

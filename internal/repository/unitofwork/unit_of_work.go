package unitofwork

import (
	"context"

	"notekeeper-be/internal/repository/contract"
)

// UnitOfWork hands out repositories bound to one logical request. After
// Begin, every repository accessor returns an instance bound to the open
// transaction until Commit or Rollback.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	CategoryRepository() contract.CategoryRepository
	NoteRepository() contract.NoteRepository
	ActivityLogRepository() contract.ActivityLogRepository
}

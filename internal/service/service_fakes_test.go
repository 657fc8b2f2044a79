package service

import (
	"context"
	"sort"
	"strings"

	"notekeeper-be/internal/entity"
	"notekeeper-be/internal/repository/contract"
	"notekeeper-be/internal/repository/specification"
	"notekeeper-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// In-memory repositories that interpret the same specifications the GORM
// implementations translate to SQL. Shared by the service tests.

type fakeStore struct {
	users         []*entity.User
	refreshTokens []*entity.RefreshToken
	categories    []*entity.Category
	notes         []*entity.Note
	activityLogs  []*entity.ActivityLog
}

type fakeFactory struct {
	store *fakeStore
}

func newFakeFactory() *fakeFactory {
	return &fakeFactory{store: &fakeStore{}}
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUnitOfWork{store: f.store}
}

type fakeUnitOfWork struct {
	store *fakeStore
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error                   { return nil }
func (u *fakeUnitOfWork) Rollback() error                 { return nil }

func (u *fakeUnitOfWork) UserRepository() contract.UserRepository {
	return &fakeUserRepository{store: u.store}
}

func (u *fakeUnitOfWork) CategoryRepository() contract.CategoryRepository {
	return &fakeCategoryRepository{store: u.store}
}

func (u *fakeUnitOfWork) NoteRepository() contract.NoteRepository {
	return &fakeNoteRepository{store: u.store}
}

func (u *fakeUnitOfWork) ActivityLogRepository() contract.ActivityLogRepository {
	return &fakeActivityLogRepository{store: u.store}
}

// The match helpers mirror the WHERE clauses a specification produces.
func matchUser(user *entity.User, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if user.Id != s.ID {
				return false
			}
		case specification.ByEmail:
			if user.Email != s.Email {
				return false
			}
		}
	}
	return true
}

func matchCategory(category *entity.Category, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if category.Id != s.ID {
				return false
			}
		case specification.ExcludeID:
			if category.Id == s.ID {
				return false
			}
		case specification.OwnedBy:
			if category.UserId != s.UserID {
				return false
			}
		case specification.BySlug:
			if category.Slug != s.Slug {
				return false
			}
		case specification.ByName:
			if category.Name != s.Name {
				return false
			}
		}
	}
	return true
}

func matchNote(note *entity.Note, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if note.Id != s.ID {
				return false
			}
		case specification.ExcludeID:
			if note.Id == s.ID {
				return false
			}
		case specification.OwnedBy:
			if note.UserId != s.UserID {
				return false
			}
		case specification.ByCategoryID:
			if note.CategoryId != s.CategoryID {
				return false
			}
		case specification.NoteSearchQuery:
			term := strings.ToLower(s.Query)
			if !strings.Contains(strings.ToLower(note.Title), term) &&
				!strings.Contains(strings.ToLower(note.Content), term) {
				return false
			}
		}
	}
	return true
}

type fakeUserRepository struct {
	store *fakeStore
}

func (r *fakeUserRepository) Create(ctx context.Context, user *entity.User) error {
	clone := *user
	r.store.users = append(r.store.users, &clone)
	return nil
}

func (r *fakeUserRepository) Update(ctx context.Context, user *entity.User) error {
	for i, existing := range r.store.users {
		if existing.Id == user.Id {
			clone := *user
			r.store.users[i] = &clone
			return nil
		}
	}
	return nil
}

func (r *fakeUserRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	for _, user := range r.store.users {
		if matchUser(user, specs) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	for _, user := range r.store.users {
		if matchUser(user, specs) {
			count++
		}
	}
	return count, nil
}

func (r *fakeUserRepository) CreateRefreshToken(ctx context.Context, token *entity.RefreshToken) error {
	clone := *token
	r.store.refreshTokens = append(r.store.refreshTokens, &clone)
	return nil
}

func (r *fakeUserRepository) FindRefreshToken(ctx context.Context, specs ...specification.Specification) (*entity.RefreshToken, error) {
	for _, token := range r.store.refreshTokens {
		matched := true
		for _, spec := range specs {
			if s, ok := spec.(specification.ByTokenHash); ok && token.TokenHash != s.Hash {
				matched = false
			}
		}
		if matched {
			clone := *token
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepository) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	for _, token := range r.store.refreshTokens {
		if token.TokenHash == tokenHash {
			token.Revoked = true
		}
	}
	return nil
}

type fakeCategoryRepository struct {
	store *fakeStore
}

func (r *fakeCategoryRepository) Create(ctx context.Context, category *entity.Category) error {
	clone := *category
	r.store.categories = append(r.store.categories, &clone)
	return nil
}

func (r *fakeCategoryRepository) Update(ctx context.Context, category *entity.Category) error {
	for i, existing := range r.store.categories {
		if existing.Id == category.Id {
			clone := *category
			r.store.categories[i] = &clone
			return nil
		}
	}
	return nil
}

func (r *fakeCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	kept := r.store.categories[:0]
	for _, category := range r.store.categories {
		if category.Id != id {
			kept = append(kept, category)
		}
	}
	r.store.categories = kept
	return nil
}

func (r *fakeCategoryRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Category, error) {
	for _, category := range r.store.categories {
		if matchCategory(category, specs) {
			clone := *category
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeCategoryRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Category, error) {
	var result []*entity.Category
	for _, category := range r.store.categories {
		if matchCategory(category, specs) {
			clone := *category
			result = append(result, &clone)
		}
	}
	for _, spec := range specs {
		if s, ok := spec.(specification.OrderBy); ok && s.Field == "name" {
			sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
		}
	}
	return result, nil
}

func (r *fakeCategoryRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	for _, category := range r.store.categories {
		if matchCategory(category, specs) {
			count++
		}
	}
	return count, nil
}

func (r *fakeCategoryRepository) NoteCounts(ctx context.Context, userId uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64)
	for _, note := range r.store.notes {
		if note.UserId == userId {
			counts[note.CategoryId]++
		}
	}
	return counts, nil
}

type fakeNoteRepository struct {
	store *fakeStore
}

func (r *fakeNoteRepository) Create(ctx context.Context, note *entity.Note) error {
	clone := *note
	r.store.notes = append(r.store.notes, &clone)
	return nil
}

func (r *fakeNoteRepository) Update(ctx context.Context, note *entity.Note) error {
	for i, existing := range r.store.notes {
		if existing.Id == note.Id {
			clone := *note
			r.store.notes[i] = &clone
			return nil
		}
	}
	return nil
}

func (r *fakeNoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	kept := r.store.notes[:0]
	for _, note := range r.store.notes {
		if note.Id != id {
			kept = append(kept, note)
		}
	}
	r.store.notes = kept
	return nil
}

func (r *fakeNoteRepository) DeleteByCategoryId(ctx context.Context, categoryId uuid.UUID) error {
	kept := r.store.notes[:0]
	for _, note := range r.store.notes {
		if note.CategoryId != categoryId {
			kept = append(kept, note)
		}
	}
	r.store.notes = kept
	return nil
}

func (r *fakeNoteRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error) {
	for _, note := range r.store.notes {
		if matchNote(note, specs) {
			clone := *note
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeNoteRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error) {
	var result []*entity.Note
	for _, note := range r.store.notes {
		if matchNote(note, specs) {
			clone := *note
			result = append(result, &clone)
		}
	}
	for _, spec := range specs {
		if s, ok := spec.(specification.OrderBy); ok && s.Field == "updated_at" && s.Desc {
			sort.Slice(result, func(i, j int) bool { return result[i].UpdatedAt.After(result[j].UpdatedAt) })
		}
	}
	return result, nil
}

func (r *fakeNoteRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	for _, note := range r.store.notes {
		if matchNote(note, specs) {
			count++
		}
	}
	return count, nil
}

type fakeActivityLogRepository struct {
	store *fakeStore
}

func (r *fakeActivityLogRepository) Create(ctx context.Context, log *entity.ActivityLog) error {
	clone := *log
	r.store.activityLogs = append(r.store.activityLogs, &clone)
	return nil
}

func (r *fakeActivityLogRepository) FindRecent(ctx context.Context, limit int, specs ...specification.Specification) ([]*entity.ActivityLog, error) {
	var logs []*entity.ActivityLog
	for _, entry := range r.store.activityLogs {
		matched := true
		for _, spec := range specs {
			if s, ok := spec.(specification.OwnedBy); ok && entry.UserId != s.UserID {
				matched = false
			}
		}
		if matched {
			logs = append(logs, entry)
		}
	}
	if limit > 0 && len(logs) > limit {
		logs = logs[len(logs)-limit:]
	}
	result := make([]*entity.ActivityLog, 0, len(logs))
	for i := len(logs) - 1; i >= 0; i-- {
		clone := *logs[i]
		result = append(result, &clone)
	}
	return result, nil
}

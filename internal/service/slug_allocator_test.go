package service

import (
	"context"
	"testing"
	"time"

	"notekeeper-be/internal/entity"
	"notekeeper-be/internal/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCategory(store *fakeStore, userId uuid.UUID, name, slugValue string) *entity.Category {
	category := &entity.Category{
		Id:        uuid.New(),
		Name:      name,
		Slug:      slugValue,
		Color:     "#C8CFA0",
		UserId:    userId,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	store.categories = append(store.categories, category)
	return category
}

func TestSlugAllocatorProbesUntilFree(t *testing.T) {
	ctx := context.Background()
	factory := newFakeFactory()
	owner := uuid.New()
	allocator := NewSlugAllocator()
	repo := factory.NewUnitOfWork(ctx).CategoryRepository()

	got, err := allocator.Allocate(ctx, repo, owner, "My Slug!", nil)
	require.NoError(t, err)
	assert.Equal(t, "my-slug", got)

	seedCategory(factory.store, owner, "My Slug!", "my-slug")
	got, err = allocator.Allocate(ctx, repo, owner, "My Slug!", nil)
	require.NoError(t, err)
	assert.Equal(t, "my-slug-1", got)

	seedCategory(factory.store, owner, "My Slug!", "my-slug-1")
	got, err = allocator.Allocate(ctx, repo, owner, "My Slug!", nil)
	require.NoError(t, err)
	assert.Equal(t, "my-slug-2", got)
}

func TestSlugAllocatorScopesByOwner(t *testing.T) {
	ctx := context.Background()
	factory := newFakeFactory()
	allocator := NewSlugAllocator()
	repo := factory.NewUnitOfWork(ctx).CategoryRepository()

	seedCategory(factory.store, uuid.New(), "Work", "work")

	got, err := allocator.Allocate(ctx, repo, uuid.New(), "Work", nil)
	require.NoError(t, err)
	assert.Equal(t, "work", got, "another owner's slug must not collide")
}

func TestSlugAllocatorExcludesUpdatedRecord(t *testing.T) {
	ctx := context.Background()
	factory := newFakeFactory()
	owner := uuid.New()
	allocator := NewSlugAllocator()
	repo := factory.NewUnitOfWork(ctx).CategoryRepository()

	existing := seedCategory(factory.store, owner, "Work", "work")

	got, err := allocator.Allocate(ctx, repo, owner, "Work", &existing.Id)
	require.NoError(t, err)
	assert.Equal(t, "work", got, "a rename that keeps the name keeps the slug")
}

func TestSlugAllocatorFallbackBase(t *testing.T) {
	ctx := context.Background()
	factory := newFakeFactory()
	owner := uuid.New()
	allocator := NewSlugAllocator()
	repo := factory.NewUnitOfWork(ctx).CategoryRepository()

	got, err := allocator.Allocate(ctx, repo, owner, "!!!", nil)
	require.NoError(t, err)
	assert.Equal(t, "category", got)

	seedCategory(factory.store, owner, "!!!", "category")
	got, err = allocator.Allocate(ctx, repo, owner, "???", nil)
	require.NoError(t, err)
	assert.Equal(t, "category-1", got)
}

func TestSlugAllocatorRequiresOwner(t *testing.T) {
	ctx := context.Background()
	factory := newFakeFactory()
	allocator := NewSlugAllocator()
	repo := factory.NewUnitOfWork(ctx).CategoryRepository()

	_, err := allocator.Allocate(ctx, repo, uuid.Nil, "Work", nil)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindPrecondition))
}

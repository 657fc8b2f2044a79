package service

import (
	"context"
	"testing"
	"time"

	"notekeeper-be/internal/dto"
	"notekeeper-be/internal/entity"
	"notekeeper-be/internal/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCategoryService(factory *fakeFactory) ICategoryService {
	return NewCategoryService(factory, NewSlugAllocator(), nil)
}

func seedNote(store *fakeStore, userId, categoryId uuid.UUID, title, content string) *entity.Note {
	note := &entity.Note{
		Id:         uuid.New(),
		Title:      title,
		Content:    content,
		CategoryId: categoryId,
		UserId:     userId,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	store.notes = append(store.notes, note)
	return note
}

func TestCategoryCreateAllocatesSlug(t *testing.T) {
	ctx := context.Background()
	factory := newFakeFactory()
	svc := newCategoryService(factory)
	owner := uuid.New()

	res, err := svc.Create(ctx, owner, &dto.CreateCategoryRequest{Name: "Side Projects", Color: "#EF9C66"})
	require.NoError(t, err)
	assert.Equal(t, "side-projects", res.Slug)
	assert.Equal(t, int64(0), res.NotesCount)
}

func TestCategoryCreateValidatesColor(t *testing.T) {
	ctx := context.Background()
	svc := newCategoryService(newFakeFactory())

	tests := []struct {
		name  string
		color string
		valid bool
	}{
		{name: "six hex digits", color: "#EF9C66", valid: true},
		{name: "lowercase hex", color: "#ef9c66", valid: true},
		{name: "missing hash", color: "EF9C66", valid: false},
		{name: "three digits", color: "#EFC", valid: false},
		{name: "non-hex characters", color: "#GGGGGG", valid: false},
		{name: "named color", color: "tomato", valid: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, uuid.New(), &dto.CreateCategoryRequest{Name: tt.name, Color: tt.color})
			if tt.valid {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			appErr, ok := apperror.From(err)
			require.True(t, ok)
			assert.Equal(t, apperror.KindValidation, appErr.Kind)
			assert.Contains(t, appErr.Fields, "color")
		})
	}
}

func TestCategoryCreateRejectsDuplicateName(t *testing.T) {
	ctx := context.Background()
	factory := newFakeFactory()
	svc := newCategoryService(factory)
	owner := uuid.New()

	_, err := svc.Create(ctx, owner, &dto.CreateCategoryRequest{Name: "Work", Color: "#FCDC94"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, owner, &dto.CreateCategoryRequest{Name: "Work", Color: "#78ABA8"})
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))

	// The same name under another owner is fine.
	_, err = svc.Create(ctx, uuid.New(), &dto.CreateCategoryRequest{Name: "Work", Color: "#78ABA8"})
	require.NoError(t, err)
}

func TestCategoryShowHidesForeignRows(t *testing.T) {
	ctx := context.Background()
	factory := newFakeFactory()
	svc := newCategoryService(factory)
	owner := uuid.New()
	stranger := uuid.New()

	category := seedCategory(factory.store, owner, "Work", "work")

	_, err := svc.Show(ctx, stranger, category.Id)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err), "foreign rows must read as missing")

	res, err := svc.Show(ctx, owner, category.Id)
	require.NoError(t, err)
	assert.Equal(t, category.Id, res.Id)
}

func TestCategoryListIncludesNoteCounts(t *testing.T) {
	ctx := context.Background()
	factory := newFakeFactory()
	svc := newCategoryService(factory)
	owner := uuid.New()

	work := seedCategory(factory.store, owner, "Work", "work")
	ideas := seedCategory(factory.store, owner, "Ideas", "ideas")
	seedNote(factory.store, owner, work.Id, "standup", "notes")
	seedNote(factory.store, owner, work.Id, "retro", "notes")

	res, err := svc.List(ctx, owner)
	require.NoError(t, err)
	require.Len(t, res, 2)
	// Ordered by name.
	assert.Equal(t, ideas.Id, res[0].Id)
	assert.Equal(t, int64(0), res[0].NotesCount)
	assert.Equal(t, work.Id, res[1].Id)
	assert.Equal(t, int64(2), res[1].NotesCount)
}

func TestCategoryUpdateReallocatesSlug(t *testing.T) {
	ctx := context.Background()
	factory := newFakeFactory()
	svc := newCategoryService(factory)
	owner := uuid.New()

	category := seedCategory(factory.store, owner, "Work", "work")
	seedCategory(factory.store, owner, "Projects", "projects")

	name := "Projects!"
	res, err := svc.Update(ctx, owner, &dto.UpdateCategoryRequest{Id: category.Id, Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Projects!", res.Name)
	assert.Equal(t, "projects-1", res.Slug, "slug must dodge the sibling's slug")
}

func TestCategoryUpdateKeepsSlugWhenNameUnchanged(t *testing.T) {
	ctx := context.Background()
	factory := newFakeFactory()
	svc := newCategoryService(factory)
	owner := uuid.New()

	category := seedCategory(factory.store, owner, "Work", "work")

	color := "#78ABA8"
	res, err := svc.Update(ctx, owner, &dto.UpdateCategoryRequest{Id: category.Id, Color: &color})
	require.NoError(t, err)
	assert.Equal(t, "work", res.Slug)
	assert.Equal(t, "#78ABA8", res.Color)
}

func TestCategoryUpdateRejectsDuplicateName(t *testing.T) {
	ctx := context.Background()
	factory := newFakeFactory()
	svc := newCategoryService(factory)
	owner := uuid.New()

	category := seedCategory(factory.store, owner, "Work", "work")
	seedCategory(factory.store, owner, "Ideas", "ideas")

	name := "Ideas"
	_, err := svc.Update(ctx, owner, &dto.UpdateCategoryRequest{Id: category.Id, Name: &name})
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
}

func TestCategoryDeleteRemovesNotes(t *testing.T) {
	ctx := context.Background()
	factory := newFakeFactory()
	svc := newCategoryService(factory)
	owner := uuid.New()

	work := seedCategory(factory.store, owner, "Work", "work")
	ideas := seedCategory(factory.store, owner, "Ideas", "ideas")
	seedNote(factory.store, owner, work.Id, "standup", "notes")
	kept := seedNote(factory.store, owner, ideas.Id, "spark", "notes")

	err := svc.Delete(ctx, owner, work.Id)
	require.NoError(t, err)

	require.Len(t, factory.store.categories, 1)
	require.Len(t, factory.store.notes, 1)
	assert.Equal(t, kept.Id, factory.store.notes[0].Id)
}

func TestCategoryListNotesUsesPreview(t *testing.T) {
	ctx := context.Background()
	factory := newFakeFactory()
	svc := newCategoryService(factory)
	owner := uuid.New()

	work := seedCategory(factory.store, owner, "Work", "work")
	seedNote(factory.store, owner, work.Id, "empty", "")

	res, err := svc.ListNotes(ctx, owner, work.Id)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "No content", res[0].Preview)
	assert.Equal(t, "work", res[0].CategorySlug)
}

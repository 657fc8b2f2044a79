package service

import (
	"context"
	"strings"
	"testing"

	"notekeeper-be/internal/dto"
	"notekeeper-be/internal/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNoteService(factory *fakeFactory) INoteService {
	return NewNoteService(factory, nil, nil)
}

func TestNoteCreateRequiresOwnCategory(t *testing.T) {
	ctx := context.Background()
	factory := newFakeFactory()
	svc := newNoteService(factory)
	owner := uuid.New()
	stranger := uuid.New()

	foreign := seedCategory(factory.store, stranger, "Work", "work")

	_, err := svc.Create(ctx, owner, &dto.CreateNoteRequest{Title: "standup", Category: foreign.Id})
	require.Error(t, err)
	appErr, ok := apperror.From(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindValidation, appErr.Kind)
	assert.Contains(t, appErr.Fields, "category")
}

func TestNoteCreateEmbedsCategoryDetails(t *testing.T) {
	ctx := context.Background()
	factory := newFakeFactory()
	svc := newNoteService(factory)
	owner := uuid.New()

	work := seedCategory(factory.store, owner, "Work", "work")

	res, err := svc.Create(ctx, owner, &dto.CreateNoteRequest{
		Title:    "standup",
		Content:  "daily sync notes",
		Category: work.Id,
	})
	require.NoError(t, err)
	assert.Equal(t, "standup", res.Title)
	assert.Equal(t, "daily sync notes", res.Preview)
	assert.Equal(t, "Work", res.CategoryName)
	assert.Equal(t, "#C8CFA0", res.CategoryColor)
	assert.Equal(t, "work", res.CategorySlug)
}

func TestNoteShowHidesForeignRows(t *testing.T) {
	ctx := context.Background()
	factory := newFakeFactory()
	svc := newNoteService(factory)
	owner := uuid.New()
	stranger := uuid.New()

	work := seedCategory(factory.store, owner, "Work", "work")
	note := seedNote(factory.store, owner, work.Id, "standup", "notes")

	_, err := svc.Show(ctx, stranger, note.Id)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))

	res, err := svc.Show(ctx, owner, note.Id)
	require.NoError(t, err)
	assert.Equal(t, note.Id, res.Id)
}

func TestNoteListFilters(t *testing.T) {
	ctx := context.Background()
	factory := newFakeFactory()
	svc := newNoteService(factory)
	owner := uuid.New()

	work := seedCategory(factory.store, owner, "Work", "work")
	ideas := seedCategory(factory.store, owner, "Ideas", "ideas")
	seedNote(factory.store, owner, work.Id, "Standup agenda", "walk the board")
	seedNote(factory.store, owner, work.Id, "Retro", "what went WELL")
	seedNote(factory.store, owner, ideas.Id, "Spark", "a standup comedy app")

	all, err := svc.List(ctx, owner, dto.NoteFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byCategory, err := svc.List(ctx, owner, dto.NoteFilter{CategoryId: &work.Id})
	require.NoError(t, err)
	assert.Len(t, byCategory, 2)

	// Case-insensitive, matches title or content.
	bySearch, err := svc.List(ctx, owner, dto.NoteFilter{Search: "standup"})
	require.NoError(t, err)
	assert.Len(t, bySearch, 2)

	byBoth, err := svc.List(ctx, owner, dto.NoteFilter{CategoryId: &ideas.Id, Search: "well"})
	require.NoError(t, err)
	assert.Len(t, byBoth, 0)
}

func TestNoteListTruncatesPreview(t *testing.T) {
	ctx := context.Background()
	factory := newFakeFactory()
	svc := newNoteService(factory)
	owner := uuid.New()

	work := seedCategory(factory.store, owner, "Work", "work")
	long := strings.Repeat("a", 150)
	seedNote(factory.store, owner, work.Id, "long", long)

	res, err := svc.List(ctx, owner, dto.NoteFilter{})
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, long[:100]+"...", res[0].Preview)
	assert.Equal(t, "Work", res[0].CategoryName)
}

func TestNoteUpdateReassignsCategory(t *testing.T) {
	ctx := context.Background()
	factory := newFakeFactory()
	svc := newNoteService(factory)
	owner := uuid.New()
	stranger := uuid.New()

	work := seedCategory(factory.store, owner, "Work", "work")
	ideas := seedCategory(factory.store, owner, "Ideas", "ideas")
	foreign := seedCategory(factory.store, stranger, "Theirs", "theirs")
	note := seedNote(factory.store, owner, work.Id, "standup", "notes")

	res, err := svc.Update(ctx, owner, &dto.UpdateNoteRequest{Id: note.Id, Category: &ideas.Id})
	require.NoError(t, err)
	assert.Equal(t, ideas.Id, res.Category)
	assert.Equal(t, "ideas", res.CategorySlug)

	_, err = svc.Update(ctx, owner, &dto.UpdateNoteRequest{Id: note.Id, Category: &foreign.Id})
	require.Error(t, err)
	appErr, ok := apperror.From(err)
	require.True(t, ok)
	assert.Contains(t, appErr.Fields, "category")
}

func TestNoteUpdatePartialFields(t *testing.T) {
	ctx := context.Background()
	factory := newFakeFactory()
	svc := newNoteService(factory)
	owner := uuid.New()

	work := seedCategory(factory.store, owner, "Work", "work")
	note := seedNote(factory.store, owner, work.Id, "standup", "original content")

	title := "renamed"
	res, err := svc.Update(ctx, owner, &dto.UpdateNoteRequest{Id: note.Id, Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "renamed", res.Title)
	assert.Equal(t, "original content", res.Content)
	assert.Equal(t, work.Id, res.Category)
}

func TestNoteDelete(t *testing.T) {
	ctx := context.Background()
	factory := newFakeFactory()
	svc := newNoteService(factory)
	owner := uuid.New()
	stranger := uuid.New()

	work := seedCategory(factory.store, owner, "Work", "work")
	note := seedNote(factory.store, owner, work.Id, "standup", "notes")

	err := svc.Delete(ctx, stranger, note.Id)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
	assert.Len(t, factory.store.notes, 1)

	err = svc.Delete(ctx, owner, note.Id)
	require.NoError(t, err)
	assert.Len(t, factory.store.notes, 0)

	err = svc.Delete(ctx, owner, note.Id)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}


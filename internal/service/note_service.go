package service

import (
	"context"
	"fmt"
	"time"

	"notekeeper-be/internal/dto"
	"notekeeper-be/internal/entity"
	"notekeeper-be/internal/pkg/apperror"
	"notekeeper-be/internal/repository/specification"
	"notekeeper-be/internal/repository/unitofwork"
	"notekeeper-be/pkg/events"
	pktNats "notekeeper-be/pkg/nats"

	"github.com/google/uuid"
)

type INoteService interface {
	List(ctx context.Context, userId uuid.UUID, filter dto.NoteFilter) ([]dto.NoteListItemResponse, error)
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.NoteResponse, error)
	Show(ctx context.Context, userId, noteId uuid.UUID) (*dto.NoteResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error)
	Delete(ctx context.Context, userId, noteId uuid.UUID) error
}

type noteService struct {
	uowFactory     unitofwork.RepositoryFactory
	publisher      IPublisherService
	eventPublisher *pktNats.Publisher
}

func NewNoteService(uowFactory unitofwork.RepositoryFactory, publisher IPublisherService, eventPublisher *pktNats.Publisher) INoteService {
	return &noteService{
		uowFactory:     uowFactory,
		publisher:      publisher,
		eventPublisher: eventPublisher,
	}
}

func (s *noteService) List(ctx context.Context, userId uuid.UUID, filter dto.NoteFilter) ([]dto.NoteListItemResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{specification.OwnedBy{UserID: userId}}
	if filter.CategoryId != nil {
		specs = append(specs, specification.ByCategoryID{CategoryID: *filter.CategoryId})
	}
	if filter.Search != "" {
		specs = append(specs, specification.NoteSearchQuery{Query: filter.Search})
	}
	specs = append(specs,
		specification.OrderBy{Field: "updated_at", Desc: true},
		specification.OrderBy{Field: "created_at", Desc: true},
	)

	notes, err := uow.NoteRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	categories, err := s.categoriesById(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.NoteListItemResponse, 0, len(notes))
	for _, note := range notes {
		item := dto.NoteListItemResponse{
			Id:        note.Id,
			Title:     note.Title,
			Preview:   note.Preview(),
			Category:  note.CategoryId,
			CreatedAt: note.CreatedAt,
			UpdatedAt: note.UpdatedAt,
		}
		if category, ok := categories[note.CategoryId]; ok {
			item.CategoryName = category.Name
			item.CategoryColor = category.Color
			item.CategorySlug = category.Slug
		}
		responses = append(responses, item)
	}
	return responses, nil
}

func (s *noteService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	category, err := s.ownedCategory(ctx, uow, userId, req.Category)
	if err != nil {
		return nil, err
	}

	note := &entity.Note{
		Id:         uuid.New(),
		Title:      req.Title,
		Content:    req.Content,
		CategoryId: category.Id,
		UserId:     userId,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	if err := uow.NoteRepository().Create(ctx, note); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, "NOTE_CREATED", map[string]interface{}{
		"note_id":     note.Id,
		"user_id":     userId,
		"category_id": category.Id,
	})
	publishActivity(ctx, s.publisher, userId, ActionNoteCreated, "note", note.Id)

	response := toNoteResponse(note, category)
	return &response, nil
}

func (s *noteService) Show(ctx context.Context, userId, noteId uuid.UUID) (*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := s.findOwned(ctx, uow, userId, noteId)
	if err != nil {
		return nil, err
	}

	category, err := uow.CategoryRepository().FindOne(ctx,
		specification.ByID{ID: note.CategoryId},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}

	response := toNoteResponse(note, category)
	return &response, nil
}

func (s *noteService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := s.findOwned(ctx, uow, userId, req.Id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		note.Title = *req.Title
	}
	if req.Content != nil {
		note.Content = *req.Content
	}
	if req.Category != nil && *req.Category != note.CategoryId {
		// Reassignment runs through the same ownership gate as creation.
		category, err := s.ownedCategory(ctx, uow, userId, *req.Category)
		if err != nil {
			return nil, err
		}
		note.CategoryId = category.Id
	}
	note.UpdatedAt = time.Now()

	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return nil, err
	}

	publishActivity(ctx, s.publisher, userId, ActionNoteUpdated, "note", note.Id)

	category, err := uow.CategoryRepository().FindOne(ctx,
		specification.ByID{ID: note.CategoryId},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}

	response := toNoteResponse(note, category)
	return &response, nil
}

func (s *noteService) Delete(ctx context.Context, userId, noteId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := s.findOwned(ctx, uow, userId, noteId)
	if err != nil {
		return err
	}

	if err := uow.NoteRepository().Delete(ctx, note.Id); err != nil {
		return err
	}

	publishActivity(ctx, s.publisher, userId, ActionNoteDeleted, "note", note.Id)
	return nil
}

func (s *noteService) findOwned(ctx context.Context, uow unitofwork.UnitOfWork, userId, noteId uuid.UUID) (*entity.Note, error) {
	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: noteId},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperror.NotFound("note")
	}
	return note, nil
}

// ownedCategory gates note placement: a note may only ever point at a
// category belonging to the same user. A foreign category reads as a field
// error, not a not-found, because the category id arrived in the payload.
func (s *noteService) ownedCategory(ctx context.Context, uow unitofwork.UnitOfWork, userId, categoryId uuid.UUID) (*entity.Category, error) {
	category, err := uow.CategoryRepository().FindOne(ctx,
		specification.ByID{ID: categoryId},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.ValidationField("category", "You can only assign notes to your own categories.")
	}
	return category, nil
}

func (s *noteService) categoriesById(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (map[uuid.UUID]*entity.Category, error) {
	categories, err := uow.CategoryRepository().FindAll(ctx, specification.OwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}
	byId := make(map[uuid.UUID]*entity.Category, len(categories))
	for _, category := range categories {
		byId[category.Id] = category
	}
	return byId, nil
}

func (s *noteService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.BaseEvent{Type: eventType, Data: data, OccurredAt: time.Now()}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		fmt.Printf("[WARN] Failed to publish %s event: %v\n", eventType, err)
	}
}

func toNoteResponse(note *entity.Note, category *entity.Category) dto.NoteResponse {
	response := dto.NoteResponse{
		Id:        note.Id,
		Title:     note.Title,
		Content:   note.Content,
		Preview:   note.Preview(),
		Category:  note.CategoryId,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
	if category != nil {
		response.CategoryName = category.Name
		response.CategoryColor = category.Color
		response.CategorySlug = category.Slug
	}
	return response
}

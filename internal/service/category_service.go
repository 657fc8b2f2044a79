package service

import (
	"context"
	"regexp"
	"time"

	"notekeeper-be/internal/dto"
	"notekeeper-be/internal/entity"
	"notekeeper-be/internal/pkg/apperror"
	"notekeeper-be/internal/repository/specification"
	"notekeeper-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

var hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

type ICategoryService interface {
	List(ctx context.Context, userId uuid.UUID) ([]dto.CategoryResponse, error)
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	Show(ctx context.Context, userId, categoryId uuid.UUID) (*dto.CategoryResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateCategoryRequest) (*dto.CategoryResponse, error)
	Delete(ctx context.Context, userId, categoryId uuid.UUID) error
	ListNotes(ctx context.Context, userId, categoryId uuid.UUID) ([]dto.NoteListItemResponse, error)
}

type categoryService struct {
	uowFactory unitofwork.RepositoryFactory
	allocator  *SlugAllocator
	publisher  IPublisherService
}

func NewCategoryService(uowFactory unitofwork.RepositoryFactory, allocator *SlugAllocator, publisher IPublisherService) ICategoryService {
	return &categoryService{
		uowFactory: uowFactory,
		allocator:  allocator,
		publisher:  publisher,
	}
}

func (s *categoryService) List(ctx context.Context, userId uuid.UUID) ([]dto.CategoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	categories, err := uow.CategoryRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "name"},
	)
	if err != nil {
		return nil, err
	}

	counts, err := uow.CategoryRepository().NoteCounts(ctx, userId)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		responses = append(responses, toCategoryResponse(category, counts[category.Id]))
	}
	return responses, nil
}

func (s *categoryService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if !hexColorPattern.MatchString(req.Color) {
		return nil, apperror.ValidationField("color", "Color must be a valid hex color code (e.g., #EF9C66).")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	taken, err := uow.CategoryRepository().Count(ctx,
		specification.OwnedBy{UserID: userId},
		specification.ByName{Name: req.Name},
	)
	if err != nil {
		return nil, err
	}
	if taken > 0 {
		return nil, apperror.Conflict("category with this name already exists.")
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	slugValue, err := s.allocator.Allocate(ctx, uow.CategoryRepository(), userId, req.Name, nil)
	if err != nil {
		return nil, err
	}

	category := &entity.Category{
		Id:        uuid.New(),
		Name:      req.Name,
		Slug:      slugValue,
		Color:     req.Color,
		UserId:    userId,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := uow.CategoryRepository().Create(ctx, category); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	publishActivity(ctx, s.publisher, userId, ActionCategoryCreated, "category", category.Id)

	response := toCategoryResponse(category, 0)
	return &response, nil
}

func (s *categoryService) Show(ctx context.Context, userId, categoryId uuid.UUID) (*dto.CategoryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	category, err := s.findOwned(ctx, uow, userId, categoryId)
	if err != nil {
		return nil, err
	}

	count, err := uow.NoteRepository().Count(ctx,
		specification.OwnedBy{UserID: userId},
		specification.ByCategoryID{CategoryID: categoryId},
	)
	if err != nil {
		return nil, err
	}

	response := toCategoryResponse(category, count)
	return &response, nil
}

func (s *categoryService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	if req.Color != nil && !hexColorPattern.MatchString(*req.Color) {
		return nil, apperror.ValidationField("color", "Color must be a valid hex color code (e.g., #EF9C66).")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	category, err := s.findOwned(ctx, uow, userId, req.Id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != category.Name {
		taken, err := uow.CategoryRepository().Count(ctx,
			specification.OwnedBy{UserID: userId},
			specification.ByName{Name: *req.Name},
			specification.ExcludeID{ID: category.Id},
		)
		if err != nil {
			return nil, err
		}
		if taken > 0 {
			return nil, apperror.Conflict("category with this name already exists.")
		}
		category.Name = *req.Name
	}
	if req.Color != nil {
		category.Color = *req.Color
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	// The slug tracks the name on every save, excluding the record itself
	// so an unchanged name keeps its slug.
	slugValue, err := s.allocator.Allocate(ctx, uow.CategoryRepository(), userId, category.Name, &category.Id)
	if err != nil {
		return nil, err
	}
	category.Slug = slugValue
	category.UpdatedAt = time.Now()

	if err := uow.CategoryRepository().Update(ctx, category); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	publishActivity(ctx, s.publisher, userId, ActionCategoryUpdated, "category", category.Id)

	count, err := uow.NoteRepository().Count(ctx,
		specification.OwnedBy{UserID: userId},
		specification.ByCategoryID{CategoryID: category.Id},
	)
	if err != nil {
		return nil, err
	}

	response := toCategoryResponse(category, count)
	return &response, nil
}

func (s *categoryService) Delete(ctx context.Context, userId, categoryId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	category, err := s.findOwned(ctx, uow, userId, categoryId)
	if err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	// Notes go with their category; the FK cascade is the database-level
	// backstop for the same rule.
	if err := uow.NoteRepository().DeleteByCategoryId(ctx, category.Id); err != nil {
		return err
	}
	if err := uow.CategoryRepository().Delete(ctx, category.Id); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	publishActivity(ctx, s.publisher, userId, ActionCategoryDeleted, "category", category.Id)
	return nil
}

func (s *categoryService) ListNotes(ctx context.Context, userId, categoryId uuid.UUID) ([]dto.NoteListItemResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	category, err := s.findOwned(ctx, uow, userId, categoryId)
	if err != nil {
		return nil, err
	}

	notes, err := uow.NoteRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.ByCategoryID{CategoryID: category.Id},
		specification.OrderBy{Field: "updated_at", Desc: true},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.NoteListItemResponse, 0, len(notes))
	for _, note := range notes {
		responses = append(responses, dto.NoteListItemResponse{
			Id:            note.Id,
			Title:         note.Title,
			Preview:       note.Preview(),
			Category:      category.Id,
			CategoryName:  category.Name,
			CategoryColor: category.Color,
			CategorySlug:  category.Slug,
			CreatedAt:     note.CreatedAt,
			UpdatedAt:     note.UpdatedAt,
		})
	}
	return responses, nil
}

// findOwned resolves a category by id within one owner's rows. Missing and
// foreign rows are indistinguishable to the caller.
func (s *categoryService) findOwned(ctx context.Context, uow unitofwork.UnitOfWork, userId, categoryId uuid.UUID) (*entity.Category, error) {
	category, err := uow.CategoryRepository().FindOne(ctx,
		specification.ByID{ID: categoryId},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NotFound("category")
	}
	return category, nil
}

func toCategoryResponse(category *entity.Category, notesCount int64) dto.CategoryResponse {
	return dto.CategoryResponse{
		Id:         category.Id,
		Name:       category.Name,
		Slug:       category.Slug,
		Color:      category.Color,
		NotesCount: notesCount,
		CreatedAt:  category.CreatedAt,
		UpdatedAt:  category.UpdatedAt,
	}
}

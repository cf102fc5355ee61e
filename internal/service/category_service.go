package service

import (
	"context"
	"errors"

	"auraops/internal/dto"
	"auraops/internal/model"
	"auraops/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoryService defines business operations for menu categories.
type CategoryService interface {
	Create(ctx context.Context, req dto.CreateCategoryRequest) (dto.CategoryResponse, error)
	List(ctx context.Context) ([]dto.CategoryResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (dto.CategoryResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type categoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

// mapCategory converts a model to a DTO response.
func mapCategory(c model.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Active:      c.Active,
	}
}

func (s *categoryService) Create(ctx context.Context, req dto.CreateCategoryRequest) (dto.CategoryResponse, error) {
	// Check for duplicate name
	existing, err := s.repo.FindByName(ctx, req.Name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.CategoryResponse{}, err
	}
	if existing != nil {
		return dto.CategoryResponse{}, errors.New("a category with that name already exists")
	}

	c := &model.Category{
		Name:        req.Name,
		Description: req.Description,
		Active:      true,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return dto.CategoryResponse{}, err
	}
	return mapCategory(*c), nil
}

func (s *categoryService) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, mapCategory(c))
	}
	return out, nil
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (dto.CategoryResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return dto.CategoryResponse{}, errors.New("category not found")
	}
	c.Name = req.Name
	c.Description = req.Description
	if err := s.repo.Update(ctx, c); err != nil {
		return dto.CategoryResponse{}, err
	}
	return mapCategory(*c), nil
}

func (s *categoryService) Deactivate(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}

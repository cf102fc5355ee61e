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

type SupplierService interface {
	Create(ctx context.Context, req dto.CreateSupplierRequest) (*dto.SupplierResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.SupplierResponse, error)
	List(ctx context.Context) ([]dto.SupplierResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateSupplierRequest) (*dto.SupplierResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	// Ingredients returns the active ingredients sourced from this supplier.
	Ingredients(ctx context.Context, id uuid.UUID) ([]dto.IngredientResponse, error)
}

type supplierService struct {
	repo           repository.SupplierRepository
	ingredientRepo repository.IngredientRepository
}

func NewSupplierService(repo repository.SupplierRepository, ingredientRepo repository.IngredientRepository) SupplierService {
	return &supplierService{repo: repo, ingredientRepo: ingredientRepo}
}

func supplierToResponse(s *model.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:     s.ID.String(),
		Name:   s.Name,
		Email:  s.Email,
		Phone:  s.Phone,
		Notes:  s.Notes,
		Active: s.Active,
	}
}

func (s *supplierService) Create(ctx context.Context, req dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	existing, err := s.repo.FindByName(ctx, req.Name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, errors.New("a supplier with that name already exists")
	}

	sup := &model.Supplier{
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Notes:  req.Notes,
		Active: true,
	}
	if err := s.repo.Create(ctx, sup); err != nil {
		return nil, err
	}
	return supplierToResponse(sup), nil
}

func (s *supplierService) Get(ctx context.Context, id uuid.UUID) (*dto.SupplierResponse, error) {
	sup, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("supplier not found")
	}
	return supplierToResponse(sup), nil
}

func (s *supplierService) List(ctx context.Context) ([]dto.SupplierResponse, error) {
	suppliers, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierResponse, 0, len(suppliers))
	for i := range suppliers {
		out = append(out, *supplierToResponse(&suppliers[i]))
	}
	return out, nil
}

func (s *supplierService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	sup, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("supplier not found")
	}
	sup.Name = req.Name
	sup.Email = req.Email
	sup.Phone = req.Phone
	sup.Notes = req.Notes
	if err := s.repo.Update(ctx, sup); err != nil {
		return nil, err
	}
	return supplierToResponse(sup), nil
}

func (s *supplierService) Deactivate(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}

func (s *supplierService) Ingredients(ctx context.Context, id uuid.UUID) ([]dto.IngredientResponse, error) {
	ingredients, err := s.ingredientRepo.ListBySupplier(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]dto.IngredientResponse, 0, len(ingredients))
	for i := range ingredients {
		out = append(out, *ingredientToResponse(&ingredients[i]))
	}
	return out, nil
}

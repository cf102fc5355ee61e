package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"auraops/internal/dto"
	"auraops/internal/model"
	"auraops/internal/repository"

	"github.com/google/uuid"
)

// InventoryService manages ingredient master data, manual stock corrections
// and the restocking flow. Sale-time decrements belong to DeductionService;
// everything here is the "unrelated restocking flows" side of the ledger.
type InventoryService interface {
	CreateIngredient(ctx context.Context, req dto.CreateIngredientRequest) (*dto.IngredientResponse, error)
	GetIngredient(ctx context.Context, id uuid.UUID) (*dto.IngredientResponse, error)
	ListIngredients(ctx context.Context, filter dto.IngredientFilter) (*dto.IngredientListResponse, error)
	UpdateIngredient(ctx context.Context, id uuid.UUID, req dto.UpdateIngredientRequest) (*dto.IngredientResponse, error)
	DeactivateIngredient(ctx context.Context, id uuid.UUID) error
	// AdjustStock applies a signed manual correction and records a movement.
	AdjustStock(ctx context.Context, id uuid.UUID, req dto.AdjustStockRequest) (*dto.IngredientResponse, error)
	// Restock adds incoming stock, stamps last_ordered and records a movement.
	Restock(ctx context.Context, id uuid.UUID, req dto.RestockRequest) (*dto.IngredientResponse, error)
	LowStockAlerts(ctx context.Context) ([]dto.LowStockAlertResponse, error)
	ListMovements(ctx context.Context, filter repository.StockMovementFilter) (*dto.StockMovementListResponse, error)
}

type inventoryService struct {
	repo         repository.IngredientRepository
	movementRepo repository.StockMovementRepository
}

func NewInventoryService(repo repository.IngredientRepository, movementRepo repository.StockMovementRepository) InventoryService {
	return &inventoryService{repo: repo, movementRepo: movementRepo}
}

func (s *inventoryService) CreateIngredient(ctx context.Context, req dto.CreateIngredientRequest) (*dto.IngredientResponse, error) {
	ing := &model.Ingredient{
		Name:         req.Name,
		Unit:         req.Unit,
		CurrentStock: req.Stock,
		MinStock:     req.MinStock,
		Active:       true,
	}
	if req.SupplierID != nil {
		sid, err := uuid.Parse(*req.SupplierID)
		if err != nil {
			return nil, fmt.Errorf("invalid supplier_id: %w", err)
		}
		ing.SupplierID = &sid
	}
	if err := s.repo.Create(ctx, ing); err != nil {
		return nil, err
	}
	return ingredientToResponse(ing), nil
}

func (s *inventoryService) GetIngredient(ctx context.Context, id uuid.UUID) (*dto.IngredientResponse, error) {
	ing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("ingredient not found")
	}
	return ingredientToResponse(ing), nil
}

func (s *inventoryService) ListIngredients(ctx context.Context, filter dto.IngredientFilter) (*dto.IngredientListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	ingredients, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.IngredientResponse, 0, len(ingredients))
	for i := range ingredients {
		data = append(data, *ingredientToResponse(&ingredients[i]))
	}
	return &dto.IngredientListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *inventoryService) UpdateIngredient(ctx context.Context, id uuid.UUID, req dto.UpdateIngredientRequest) (*dto.IngredientResponse, error) {
	ing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("ingredient not found")
	}
	ing.Name = req.Name
	ing.Unit = req.Unit
	ing.MinStock = req.MinStock
	if req.SupplierID != nil {
		sid, err := uuid.Parse(*req.SupplierID)
		if err != nil {
			return nil, fmt.Errorf("invalid supplier_id: %w", err)
		}
		ing.SupplierID = &sid
	}
	if err := s.repo.Update(ctx, ing); err != nil {
		return nil, err
	}
	return ingredientToResponse(ing), nil
}

func (s *inventoryService) DeactivateIngredient(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}

func (s *inventoryService) AdjustStock(ctx context.Context, id uuid.UUID, req dto.AdjustStockRequest) (*dto.IngredientResponse, error) {
	ing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("ingredient not found")
	}

	after := ing.CurrentStock.Add(req.Delta)
	if after.IsNegative() {
		return nil, fmt.Errorf("adjustment would drive %q stock negative (%s)", ing.Name, after.String())
	}

	if err := s.repo.AdjustStock(ctx, id, req.Delta); err != nil {
		return nil, err
	}
	mov := &model.StockMovement{
		IngredientID: ing.ID,
		Type:         "adjustment",
		Quantity:     req.Delta,
		StockBefore:  ing.CurrentStock,
		StockAfter:   after,
		Reason:       req.Reason,
	}
	if err := s.movementRepo.Create(ctx, mov); err != nil {
		return nil, err
	}

	ing.CurrentStock = after
	return ingredientToResponse(ing), nil
}

func (s *inventoryService) Restock(ctx context.Context, id uuid.UUID, req dto.RestockRequest) (*dto.IngredientResponse, error) {
	if !req.Quantity.IsPositive() {
		return nil, errors.New("restock quantity must be positive")
	}
	ing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("ingredient not found")
	}

	if err := s.repo.AdjustStock(ctx, id, req.Quantity); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	if err := s.repo.MarkOrdered(ctx, id, now); err != nil {
		return nil, err
	}

	reason := req.Reason
	if reason == "" {
		reason = "Restock"
	}
	after := ing.CurrentStock.Add(req.Quantity)
	mov := &model.StockMovement{
		IngredientID: ing.ID,
		Type:         "restock",
		Quantity:     req.Quantity,
		StockBefore:  ing.CurrentStock,
		StockAfter:   after,
		Reason:       reason,
	}
	if err := s.movementRepo.Create(ctx, mov); err != nil {
		return nil, err
	}

	ing.CurrentStock = after
	ing.LastOrdered = &now
	return ingredientToResponse(ing), nil
}

func (s *inventoryService) LowStockAlerts(ctx context.Context) ([]dto.LowStockAlertResponse, error) {
	ingredients, err := s.repo.ListBelowMin(ctx)
	if err != nil {
		return nil, err
	}
	alerts := make([]dto.LowStockAlertResponse, 0, len(ingredients))
	for _, ing := range ingredients {
		alerts = append(alerts, dto.LowStockAlertResponse{
			IngredientID: ing.ID.String(),
			Name:         ing.Name,
			Unit:         ing.Unit,
			CurrentStock: ing.CurrentStock,
			MinStock:     ing.MinStock,
		})
	}
	return alerts, nil
}

func (s *inventoryService) ListMovements(ctx context.Context, filter repository.StockMovementFilter) (*dto.StockMovementListResponse, error) {
	movements, total, err := s.movementRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.StockMovementResponse, 0, len(movements))
	for _, m := range movements {
		name := ""
		if m.Ingredient != nil {
			name = m.Ingredient.Name
		}
		var ref *string
		if m.ReferenceID != nil {
			r := m.ReferenceID.String()
			ref = &r
		}
		data = append(data, dto.StockMovementResponse{
			ID:           m.ID.String(),
			IngredientID: m.IngredientID.String(),
			Ingredient:   name,
			Type:         m.Type,
			Quantity:     m.Quantity,
			StockBefore:  m.StockBefore,
			StockAfter:   m.StockAfter,
			Reason:       m.Reason,
			ReferenceID:  ref,
			CreatedAt:    m.CreatedAt.Format("2006-01-02T15:04:05Z"),
		})
	}
	return &dto.StockMovementListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func ingredientToResponse(i *model.Ingredient) *dto.IngredientResponse {
	var lastOrdered *string
	if i.LastOrdered != nil {
		s := i.LastOrdered.Format("2006-01-02T15:04:05Z")
		lastOrdered = &s
	}
	var supplierID *string
	if i.SupplierID != nil {
		s := i.SupplierID.String()
		supplierID = &s
	}
	return &dto.IngredientResponse{
		ID:           i.ID.String(),
		Name:         i.Name,
		Unit:         i.Unit,
		CurrentStock: i.CurrentStock,
		MinStock:     i.MinStock,
		LastOrdered:  lastOrdered,
		SupplierID:   supplierID,
		Active:       i.Active,
	}
}

package service

import (
	"context"
	"errors"
	"fmt"

	"auraops/internal/dto"
	"auraops/internal/model"
	"auraops/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// MenuService manages the sellable catalog: menu items, their embedded
// recipes and the immutable cost history written on every price change.
type MenuService interface {
	Create(ctx context.Context, req dto.CreateMenuItemRequest) (*dto.MenuItemResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.MenuItemResponse, error)
	List(ctx context.Context, filter dto.MenuItemFilter) (*dto.MenuItemListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateMenuItemRequest) (*dto.MenuItemResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error
	CostHistory(ctx context.Context, id uuid.UUID) ([]dto.CostHistoryResponse, error)
}

type menuService struct {
	repo        repository.MenuItemRepository
	historyRepo repository.CostHistoryRepository
}

func NewMenuService(repo repository.MenuItemRepository, historyRepo repository.CostHistoryRepository) MenuService {
	return &menuService{repo: repo, historyRepo: historyRepo}
}

// marginPct computes (price - cost) / cost * 100, zero when cost is zero.
func marginPct(price, cost decimal.Decimal) decimal.Decimal {
	if cost.IsZero() {
		return decimal.Zero
	}
	return price.Sub(cost).Div(cost).Mul(hundred).Round(2)
}

func buildRecipeLines(menuItemID uuid.UUID, reqs []dto.RecipeLineRequest) ([]model.RecipeLine, error) {
	lines := make([]model.RecipeLine, 0, len(reqs))
	for _, r := range reqs {
		line := model.RecipeLine{
			MenuItemID:     menuItemID,
			IngredientName: r.IngredientName,
			QtyPerServing:  r.QtyPerServing,
			Unit:           r.Unit,
		}
		if !r.QtyPerServing.IsPositive() {
			return nil, fmt.Errorf("recipe line %q: qty_per_serving must be positive", r.IngredientName)
		}
		if r.IngredientID != nil {
			id, err := uuid.Parse(*r.IngredientID)
			if err != nil {
				return nil, fmt.Errorf("recipe line %q: invalid ingredient_id", r.IngredientName)
			}
			line.IngredientID = &id
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func (s *menuService) Create(ctx context.Context, req dto.CreateMenuItemRequest) (*dto.MenuItemResponse, error) {
	item := &model.MenuItem{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		SalePrice:   req.SalePrice,
		UnitCost:    req.UnitCost,
		MarginPct:   marginPct(req.SalePrice, req.UnitCost),
		Active:      true,
	}
	lines, err := buildRecipeLines(uuid.Nil, req.Recipe)
	if err != nil {
		return nil, err
	}
	// GORM assigns the foreign key when creating the association rows.
	for i := range lines {
		item.Recipe = append(item.Recipe, lines[i])
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return menuItemToResponse(item), nil
}

func (s *menuService) Get(ctx context.Context, id uuid.UUID) (*dto.MenuItemResponse, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("menu item not found")
	}
	return menuItemToResponse(item), nil
}

func (s *menuService) List(ctx context.Context, filter dto.MenuItemFilter) (*dto.MenuItemListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.MenuItemResponse, 0, len(items))
	for i := range items {
		data = append(data, *menuItemToResponse(&items[i]))
	}
	return &dto.MenuItemListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *menuService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateMenuItemRequest) (*dto.MenuItemResponse, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("menu item not found")
	}

	priceChanged := !item.SalePrice.Equal(req.SalePrice) || !item.UnitCost.Equal(req.UnitCost)
	history := &model.CostHistory{
		MenuItemID:  item.ID,
		CostBefore:  item.UnitCost,
		CostAfter:   req.UnitCost,
		PriceBefore: item.SalePrice,
		PriceAfter:  req.SalePrice,
		Reason:      "manual",
	}

	item.Name = req.Name
	item.Description = req.Description
	item.Category = req.Category
	item.SalePrice = req.SalePrice
	item.UnitCost = req.UnitCost
	item.MarginPct = marginPct(req.SalePrice, req.UnitCost)

	lines, err := buildRecipeLines(item.ID, req.Recipe)
	if err != nil {
		return nil, err
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.Update(ctx, item); err != nil {
			return err
		}
		if err := s.repo.ReplaceRecipe(tx, item.ID, lines); err != nil {
			return err
		}
		if priceChanged {
			return s.historyRepo.Create(ctx, history)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	item.Recipe = lines
	return menuItemToResponse(item), nil
}

func (s *menuService) Deactivate(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}

func (s *menuService) Reactivate(ctx context.Context, id uuid.UUID) error {
	return s.repo.Reactivate(ctx, id)
}

func (s *menuService) CostHistory(ctx context.Context, id uuid.UUID) ([]dto.CostHistoryResponse, error) {
	records, err := s.historyRepo.ListByMenuItem(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CostHistoryResponse, 0, len(records))
	for _, h := range records {
		out = append(out, dto.CostHistoryResponse{
			ID:          h.ID.String(),
			MenuItemID:  h.MenuItemID.String(),
			CostBefore:  h.CostBefore,
			CostAfter:   h.CostAfter,
			PriceBefore: h.PriceBefore,
			PriceAfter:  h.PriceAfter,
			Reason:      h.Reason,
			CreatedAt:   h.CreatedAt.Format("2006-01-02T15:04:05Z"),
		})
	}
	return out, nil
}

func menuItemToResponse(m *model.MenuItem) *dto.MenuItemResponse {
	recipe := make([]dto.RecipeLineResponse, 0, len(m.Recipe))
	for _, line := range m.Recipe {
		var ingredientID *string
		if line.IngredientID != nil {
			s := line.IngredientID.String()
			ingredientID = &s
		}
		recipe = append(recipe, dto.RecipeLineResponse{
			IngredientID:   ingredientID,
			IngredientName: line.IngredientName,
			QtyPerServing:  line.QtyPerServing,
			Unit:           line.Unit,
		})
	}
	return &dto.MenuItemResponse{
		ID:          m.ID.String(),
		Name:        m.Name,
		Description: m.Description,
		Category:    m.Category,
		SalePrice:   m.SalePrice,
		UnitCost:    m.UnitCost,
		MarginPct:   m.MarginPct,
		Active:      m.Active,
		Recipe:      recipe,
		CreatedAt:   m.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

package service

import (
	"context"
	"fmt"
	"time"

	"auraops/internal/dto"
	"auraops/internal/model"
	"auraops/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// DeductionService resolves one menu item sale into per-ingredient stock
// decrements. It is the leaf of the sale pipeline: SaleService calls it once
// per line item.
type DeductionService interface {
	// Resolve walks the menu item's recipe and deducts quantity*qty_per_serving
	// from each ingredient. An error is returned only for the two fatal cases
	// (menu item not found, empty recipe, plus a non-positive quantity) — in
	// all of them no ingredient has been touched. Everything else is recorded
	// per line in the result: skipped lines accumulate in Errors while the
	// remaining lines keep deducting, so one bad ingredient never blocks the
	// others.
	//
	// saleRef, when non-nil, is stamped onto every "sale" movement row so the
	// ledger links back to the Sale that caused the deduction. Standalone
	// deductions pass nil.
	Resolve(ctx context.Context, menuItemID uuid.UUID, quantity int, saleRef *uuid.UUID) (*dto.DeductionResult, error)
}

type deductionService struct {
	menuRepo       repository.MenuItemRepository
	ingredientRepo repository.IngredientRepository
	movementRepo   repository.StockMovementRepository
}

func NewDeductionService(
	menuRepo repository.MenuItemRepository,
	ingredientRepo repository.IngredientRepository,
	movementRepo repository.StockMovementRepository,
) DeductionService {
	return &deductionService{
		menuRepo:       menuRepo,
		ingredientRepo: ingredientRepo,
		movementRepo:   movementRepo,
	}
}

func (s *deductionService) Resolve(ctx context.Context, menuItemID uuid.UUID, quantity int, saleRef *uuid.UUID) (*dto.DeductionResult, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1, got %d", quantity)
	}

	item, err := s.menuRepo.FindByID(ctx, menuItemID)
	if err != nil {
		return nil, fmt.Errorf("menu item %s not found", menuItemID)
	}
	if len(item.Recipe) == 0 {
		// A menu item must be fully recipe-configured before it can be sold —
		// this is a hard configuration error, not a zero-deduction success.
		return nil, fmt.Errorf("menu item %q has no recipe configured and cannot be sold", item.Name)
	}

	result := &dto.DeductionResult{
		MenuItemID:   item.ID.String(),
		MenuItemName: item.Name,
		QuantitySold: quantity,
		UnitPrice:    item.SalePrice,
		UnitCost:     item.UnitCost,
		DeductionLog: []dto.DeductionLogEntry{},
	}
	qty := decimal.NewFromInt(int64(quantity))

	for _, line := range item.Recipe {
		if line.IngredientID == nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("Recipe line %q has no ingredient reference", line.IngredientName))
			continue
		}

		required := line.QtyPerServing.Mul(qty)

		ing, err := s.ingredientRepo.FindByID(ctx, *line.IngredientID)
		if err != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("Ingredient %q not found", line.IngredientName))
			continue
		}

		if ing.CurrentStock.LessThan(required) {
			// No partial deduction is ever applied on insufficient stock.
			result.Errors = append(result.Errors, insufficientStockMsg(ing.Name, line.Unit, required, ing.CurrentStock))
			continue
		}

		// Conditional decrement: the WHERE current_stock >= required guard
		// serializes concurrent sales at the storage layer, so the pre-check
		// above can never turn into a lost update.
		ok, err := s.ingredientRepo.DeductStock(ctx, ing.ID, required)
		if err != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("Failed to update stock for %q: %v", ing.Name, err))
			continue
		}
		if !ok {
			// Another sale consumed the stock between our read and the update.
			result.Errors = append(result.Errors, insufficientStockMsg(ing.Name, line.Unit, required, ing.CurrentStock))
			continue
		}

		after := ing.CurrentStock.Sub(required)
		result.DeductionLog = append(result.DeductionLog, dto.DeductionLogEntry{
			IngredientID:     ing.ID.String(),
			IngredientName:   ing.Name,
			QuantityDeducted: required,
			Unit:             line.Unit,
			StockBefore:      ing.CurrentStock,
			StockAfter:       after,
		})
		if after.LessThanOrEqual(ing.MinStock) {
			result.LowStock = append(result.LowStock, ing.ID.String())
		}

		// Ledger entry is best-effort: the decrement is already durable.
		mov := &model.StockMovement{
			IngredientID: ing.ID,
			Type:         "sale",
			Quantity:     required.Neg(),
			StockBefore:  ing.CurrentStock,
			StockAfter:   after,
			Reason:       fmt.Sprintf("Sale deduction: %d x %s", quantity, item.Name),
			ReferenceID:  saleRef,
		}
		if err := s.movementRepo.Create(ctx, mov); err != nil {
			log.Warn().Err(err).Str("ingredient_id", ing.ID.String()).
				Msg("deduction: failed to record stock movement")
		}
	}

	result.Success = len(result.Errors) == 0
	result.Timestamp = time.Now().UTC().Format(time.RFC3339)
	return result, nil
}

func insufficientStockMsg(name, unit string, required, available decimal.Decimal) string {
	return fmt.Sprintf("Insufficient stock for %q. Required: %s %s, Available: %s %s",
		name, required.String(), unit, available.String(), unit)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"auraops/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chaiLatteFixture(ingredients *stubIngredientRepo, menu *stubMenuRepo, milkStock float64) (*model.MenuItem, *model.Ingredient) {
	milk := ingredients.add("milk", "L", milkStock, 0.5)
	item := &model.MenuItem{
		ID:        uuid.New(),
		Name:      "Chai Latte",
		Category:  "drinks",
		SalePrice: decimal.NewFromFloat(5.50),
		UnitCost:  decimal.NewFromFloat(1.20),
		Active:    true,
		Recipe: []model.RecipeLine{
			{
				ID:             uuid.New(),
				MenuItemID:     uuid.Nil,
				IngredientID:   &milk.ID,
				IngredientName: "milk",
				QtyPerServing:  decimal.NewFromFloat(0.2),
				Unit:           "L",
			},
		},
	}
	menu.items[item.ID] = item
	return item, milk
}

func TestResolveDeductsStock(t *testing.T) {
	menu := newStubMenuRepo()
	ingredients := newStubIngredientRepo()
	movements := &stubMovementRepo{}
	svc := NewDeductionService(menu, ingredients, movements)

	item, milk := chaiLatteFixture(ingredients, menu, 1.0)

	res, err := svc.Resolve(context.Background(), item.ID, 3, nil)
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Empty(t, res.Errors)
	assert.Equal(t, 3, res.QuantitySold)
	require.Len(t, res.DeductionLog, 1)

	entry := res.DeductionLog[0]
	assert.Equal(t, "milk", entry.IngredientName)
	assert.True(t, entry.QuantityDeducted.Equal(decimal.NewFromFloat(0.6)), "deducted %s", entry.QuantityDeducted)
	assert.True(t, entry.StockBefore.Equal(decimal.NewFromFloat(1.0)))
	assert.True(t, entry.StockAfter.Equal(decimal.NewFromFloat(0.4)))

	stored := ingredients.ingredients[milk.ID]
	assert.True(t, stored.CurrentStock.Equal(decimal.NewFromFloat(0.4)), "stock %s", stored.CurrentStock)

	// A "sale" ledger entry was recorded with a negative quantity.
	require.Len(t, movements.movements, 1)
	assert.Equal(t, "sale", movements.movements[0].Type)
	assert.True(t, movements.movements[0].Quantity.Equal(decimal.NewFromFloat(-0.6)))
}

func TestResolveInsufficientStock(t *testing.T) {
	menu := newStubMenuRepo()
	ingredients := newStubIngredientRepo()
	svc := NewDeductionService(menu, ingredients, &stubMovementRepo{})

	item, milk := chaiLatteFixture(ingredients, menu, 0.5)

	res, err := svc.Resolve(context.Background(), item.ID, 3, nil)
	require.NoError(t, err)

	assert.False(t, res.Success)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, `Insufficient stock for "milk". Required: 0.6 L, Available: 0.5 L`, res.Errors[0])
	assert.Empty(t, res.DeductionLog)

	// No partial deduction: stock is untouched.
	stored := ingredients.ingredients[milk.ID]
	assert.True(t, stored.CurrentStock.Equal(decimal.NewFromFloat(0.5)))
}

func TestResolveFailureIsRepeatable(t *testing.T) {
	menu := newStubMenuRepo()
	ingredients := newStubIngredientRepo()
	svc := NewDeductionService(menu, ingredients, &stubMovementRepo{})

	item, milk := chaiLatteFixture(ingredients, menu, 0.5)

	for i := 0; i < 3; i++ {
		res, err := svc.Resolve(context.Background(), item.ID, 3, nil)
		require.NoError(t, err)
		assert.False(t, res.Success)
	}
	// Repeated failed attempts never drain stock.
	assert.True(t, ingredients.ingredients[milk.ID].CurrentStock.Equal(decimal.NewFromFloat(0.5)))
}

func TestResolveMenuItemNotFound(t *testing.T) {
	svc := NewDeductionService(newStubMenuRepo(), newStubIngredientRepo(), &stubMovementRepo{})

	id := uuid.New()
	res, err := svc.Resolve(context.Background(), id, 1, nil)
	require.Error(t, err)
	assert.Nil(t, res)
	assert.Contains(t, err.Error(), fmt.Sprintf("menu item %s not found", id))
}

func TestResolveEmptyRecipe(t *testing.T) {
	menu := newStubMenuRepo()
	svc := NewDeductionService(menu, newStubIngredientRepo(), &stubMovementRepo{})

	item := &model.MenuItem{ID: uuid.New(), Name: "Tap Water", Active: true}
	menu.items[item.ID] = item

	res, err := svc.Resolve(context.Background(), item.ID, 1, nil)
	require.Error(t, err)
	assert.Nil(t, res)
	assert.Contains(t, err.Error(), "no recipe configured")
}

func TestResolveRejectsNonPositiveQuantity(t *testing.T) {
	menu := newStubMenuRepo()
	ingredients := newStubIngredientRepo()
	svc := NewDeductionService(menu, ingredients, &stubMovementRepo{})
	item, _ := chaiLatteFixture(ingredients, menu, 1.0)

	for _, qty := range []int{0, -2} {
		res, err := svc.Resolve(context.Background(), item.ID, qty, nil)
		require.Error(t, err, "quantity %d", qty)
		assert.Nil(t, res)
	}
}

func TestResolveSkipsLineWithoutIngredientRef(t *testing.T) {
	menu := newStubMenuRepo()
	ingredients := newStubIngredientRepo()
	svc := NewDeductionService(menu, ingredients, &stubMovementRepo{})

	beans := ingredients.add("espresso beans", "kg", 2, 0.2)
	item := &model.MenuItem{
		ID:        uuid.New(),
		Name:      "Mystery Blend",
		SalePrice: decimal.NewFromFloat(4),
		Active:    true,
		Recipe: []model.RecipeLine{
			{ID: uuid.New(), IngredientID: nil, IngredientName: "secret spice", QtyPerServing: decimal.NewFromFloat(1), Unit: "g"},
			{ID: uuid.New(), IngredientID: &beans.ID, IngredientName: "espresso beans", QtyPerServing: decimal.NewFromFloat(0.02), Unit: "kg"},
		},
	}
	menu.items[item.ID] = item

	res, err := svc.Resolve(context.Background(), item.ID, 1, nil)
	require.NoError(t, err)

	// The broken line is recorded; the healthy line still deducts.
	assert.False(t, res.Success)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, `Recipe line "secret spice" has no ingredient reference`, res.Errors[0])
	require.Len(t, res.DeductionLog, 1)
	assert.Equal(t, "espresso beans", res.DeductionLog[0].IngredientName)
	assert.True(t, ingredients.ingredients[beans.ID].CurrentStock.Equal(decimal.NewFromFloat(1.98)))
}

func TestResolveMissingIngredient(t *testing.T) {
	menu := newStubMenuRepo()
	ingredients := newStubIngredientRepo()
	svc := NewDeductionService(menu, ingredients, &stubMovementRepo{})

	ghostID := uuid.New()
	item := &model.MenuItem{
		ID:        uuid.New(),
		Name:      "Haunted Soup",
		SalePrice: decimal.NewFromFloat(8),
		Active:    true,
		Recipe: []model.RecipeLine{
			{ID: uuid.New(), IngredientID: &ghostID, IngredientName: "stock cube", QtyPerServing: decimal.NewFromFloat(1), Unit: "unit"},
		},
	}
	menu.items[item.ID] = item

	res, err := svc.Resolve(context.Background(), item.ID, 1, nil)
	require.NoError(t, err)
	assert.False(t, res.Success)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, `Ingredient "stock cube" not found`, res.Errors[0])
}

func TestResolveLostRaceCountsAsInsufficient(t *testing.T) {
	menu := newStubMenuRepo()
	ingredients := newStubIngredientRepo()
	svc := NewDeductionService(menu, ingredients, &stubMovementRepo{})

	item, milk := chaiLatteFixture(ingredients, menu, 1.0)
	ingredients.raceOn[milk.ID] = true

	res, err := svc.Resolve(context.Background(), item.ID, 1, nil)
	require.NoError(t, err)
	assert.False(t, res.Success)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], `Insufficient stock for "milk"`)
}

func TestResolveDeductErrorIsRecoverable(t *testing.T) {
	menu := newStubMenuRepo()
	ingredients := newStubIngredientRepo()
	svc := NewDeductionService(menu, ingredients, &stubMovementRepo{})

	item, milk := chaiLatteFixture(ingredients, menu, 1.0)
	ingredients.deductErr[milk.ID] = errors.New("connection reset")

	res, err := svc.Resolve(context.Background(), item.ID, 1, nil)
	require.NoError(t, err)
	assert.False(t, res.Success)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], `Failed to update stock for "milk"`)
}

func TestResolveFlagsLowStock(t *testing.T) {
	menu := newStubMenuRepo()
	ingredients := newStubIngredientRepo()
	svc := NewDeductionService(menu, ingredients, &stubMovementRepo{})

	// 0.6 deducted from 1.0 leaves 0.4, below the 0.5 minimum.
	milk := ingredients.add("milk", "L", 1.0, 0.5)
	item := &model.MenuItem{
		ID:        uuid.New(),
		Name:      "Chai Latte",
		SalePrice: decimal.NewFromFloat(5.50),
		Active:    true,
		Recipe: []model.RecipeLine{
			{ID: uuid.New(), IngredientID: &milk.ID, IngredientName: "milk", QtyPerServing: decimal.NewFromFloat(0.2), Unit: "L"},
		},
	}
	menu.items[item.ID] = item

	res, err := svc.Resolve(context.Background(), item.ID, 3, nil)
	require.NoError(t, err)
	assert.True(t, res.Success)
	require.Len(t, res.LowStock, 1)
	assert.Equal(t, milk.ID.String(), res.LowStock[0])
}

func TestResolveStampsSaleReferenceOnMovements(t *testing.T) {
	menu := newStubMenuRepo()
	ingredients := newStubIngredientRepo()
	movements := &stubMovementRepo{}
	svc := NewDeductionService(menu, ingredients, movements)

	item, _ := chaiLatteFixture(ingredients, menu, 1.0)

	saleID := uuid.New()
	res, err := svc.Resolve(context.Background(), item.ID, 1, &saleID)
	require.NoError(t, err)
	require.True(t, res.Success)

	require.Len(t, movements.movements, 1)
	require.NotNil(t, movements.movements[0].ReferenceID)
	assert.Equal(t, saleID, *movements.movements[0].ReferenceID)

	// Standalone deductions carry no reference.
	_, err = svc.Resolve(context.Background(), item.ID, 1, nil)
	require.NoError(t, err)
	require.Len(t, movements.movements, 2)
	assert.Nil(t, movements.movements[1].ReferenceID)
}

func TestResolveMovementFailureDoesNotFailDeduction(t *testing.T) {
	menu := newStubMenuRepo()
	ingredients := newStubIngredientRepo()
	movements := &stubMovementRepo{createErr: errors.New("ledger down")}
	svc := NewDeductionService(menu, ingredients, movements)

	item, milk := chaiLatteFixture(ingredients, menu, 1.0)

	res, err := svc.Resolve(context.Background(), item.ID, 1, nil)
	require.NoError(t, err)
	assert.True(t, res.Success)
	// Decrement is durable even when the ledger write fails.
	assert.True(t, ingredients.ingredients[milk.ID].CurrentStock.Equal(decimal.NewFromFloat(0.8)))
}

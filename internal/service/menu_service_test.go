package service

import (
	"context"
	"testing"

	"auraops/internal/dto"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }

func TestCreateMenuItemComputesMargin(t *testing.T) {
	menu := newStubMenuRepo()
	svc := NewMenuService(menu, &stubCostHistoryRepo{})

	res, err := svc.Create(context.Background(), dto.CreateMenuItemRequest{
		Name:      "Chai Latte",
		Category:  "drinks",
		SalePrice: decimal.NewFromFloat(5.50),
		UnitCost:  decimal.NewFromFloat(1.20),
		Recipe: []dto.RecipeLineRequest{
			{IngredientName: "milk", QtyPerServing: decimal.NewFromFloat(0.2), Unit: "L"},
		},
	})
	require.NoError(t, err)
	// (5.50 - 1.20) / 1.20 * 100 = 358.33
	assert.True(t, res.MarginPct.Equal(decimal.NewFromFloat(358.33)), "margin %s", res.MarginPct)
	assert.True(t, res.Active)
	require.Len(t, res.Recipe, 1)
}

func TestCreateMenuItemZeroCostHasZeroMargin(t *testing.T) {
	svc := NewMenuService(newStubMenuRepo(), &stubCostHistoryRepo{})

	res, err := svc.Create(context.Background(), dto.CreateMenuItemRequest{
		Name:      "Tap Water",
		Category:  "drinks",
		SalePrice: decimal.NewFromFloat(0.50),
	})
	require.NoError(t, err)
	assert.True(t, res.MarginPct.IsZero())
}

func TestCreateMenuItemRejectsNonPositiveRecipeQty(t *testing.T) {
	svc := NewMenuService(newStubMenuRepo(), &stubCostHistoryRepo{})

	_, err := svc.Create(context.Background(), dto.CreateMenuItemRequest{
		Name:      "Broken",
		Category:  "drinks",
		SalePrice: decimal.NewFromFloat(1),
		Recipe: []dto.RecipeLineRequest{
			{IngredientName: "milk", QtyPerServing: decimal.Zero, Unit: "L"},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be positive")
}

func TestUpdateRecordsCostHistoryOnPriceChange(t *testing.T) {
	menu := newStubMenuRepo()
	history := &stubCostHistoryRepo{}
	svc := NewMenuService(menu, history)

	created, err := svc.Create(context.Background(), dto.CreateMenuItemRequest{
		Name:      "Chai Latte",
		Category:  "drinks",
		SalePrice: decimal.NewFromFloat(5.50),
		UnitCost:  decimal.NewFromFloat(1.20),
	})
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	// Same price and cost: no history entry.
	_, err = svc.Update(context.Background(), id, dto.UpdateMenuItemRequest{
		Name:      "Chai Latte",
		Category:  "drinks",
		SalePrice: decimal.NewFromFloat(5.50),
		UnitCost:  decimal.NewFromFloat(1.20),
	})
	require.NoError(t, err)
	assert.Empty(t, history.records)

	// Price bump: one immutable record with before/after values.
	updated, err := svc.Update(context.Background(), id, dto.UpdateMenuItemRequest{
		Name:      "Chai Latte",
		Category:  "drinks",
		SalePrice: decimal.NewFromFloat(6.00),
		UnitCost:  decimal.NewFromFloat(1.20),
	})
	require.NoError(t, err)
	assert.True(t, updated.SalePrice.Equal(decimal.NewFromFloat(6.00)))

	require.Len(t, history.records, 1)
	rec := history.records[0]
	assert.True(t, rec.PriceBefore.Equal(decimal.NewFromFloat(5.50)))
	assert.True(t, rec.PriceAfter.Equal(decimal.NewFromFloat(6.00)))
	assert.True(t, rec.CostBefore.Equal(rec.CostAfter))

	listed, err := svc.CostHistory(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "manual", listed[0].Reason)
}

func TestDeactivateAndReactivateMenuItem(t *testing.T) {
	menu := newStubMenuRepo()
	svc := NewMenuService(menu, &stubCostHistoryRepo{})

	created, err := svc.Create(context.Background(), dto.CreateMenuItemRequest{
		Name:        "Butter Croissant",
		Description: strp("plain"),
		Category:    "bakery",
		SalePrice:   decimal.NewFromFloat(3.50),
	})
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	require.NoError(t, svc.Deactivate(context.Background(), id))
	got, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, got.Active)

	require.NoError(t, svc.Reactivate(context.Background(), id))
	got, err = svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, got.Active)
}

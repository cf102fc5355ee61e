package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"auraops/internal/dto"
	"auraops/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSaleServiceFixture(t *testing.T) (SaleService, *stubSaleRepo, *stubMenuRepo, *stubIngredientRepo) {
	t.Helper()
	menu := newStubMenuRepo()
	ingredients := newStubIngredientRepo()
	deduction := NewDeductionService(menu, ingredients, &stubMovementRepo{})
	saleRepo := newStubSaleRepo()
	svc := NewSaleService(saleRepo, deduction, nil, "SALE")
	return svc, saleRepo, menu, ingredients
}

func addMenuItem(menu *stubMenuRepo, ingredients *stubIngredientRepo, name string, price, cost float64, recipe map[string]float64, stocks map[string]float64) *model.MenuItem {
	item := &model.MenuItem{
		ID:        uuid.New(),
		Name:      name,
		SalePrice: decimal.NewFromFloat(price),
		UnitCost:  decimal.NewFromFloat(cost),
		Active:    true,
	}
	for ingName, qty := range recipe {
		ing := ingredients.add(ingName, "unit", stocks[ingName], 0)
		item.Recipe = append(item.Recipe, model.RecipeLine{
			ID:             uuid.New(),
			IngredientID:   &ing.ID,
			IngredientName: ingName,
			QtyPerServing:  decimal.NewFromFloat(qty),
			Unit:           "unit",
		})
	}
	menu.items[item.ID] = item
	return item
}

func TestProcessHappyPath(t *testing.T) {
	svc, saleRepo, menu, ingredients := newSaleServiceFixture(t)

	latte := addMenuItem(menu, ingredients, "Chai Latte", 5.50, 1.20,
		map[string]float64{"milk": 0.2}, map[string]float64{"milk": 10})

	res, err := svc.Process(context.Background(), dto.ProcessSaleRequest{
		Items:      []dto.SaleLineRequest{{MenuItemID: latte.ID.String(), Quantity: 2}},
		StaffEmail: "sam@example.com",
		StaffName:  "Sam",
	})
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Nil(t, res.Warnings)
	assert.True(t, strings.HasPrefix(res.Sale.SaleNumber, "SALE-"), "sale number %s", res.Sale.SaleNumber)
	assert.Len(t, res.Sale.SaleNumber, len("SALE-")+6)
	assert.Equal(t, "dine_in", res.Sale.SaleType)
	assert.True(t, res.Sale.StockDeducted)

	// Financial rollup: subtotal 11.00, cost 2.40, GP 8.60, GP% 78.18
	assert.True(t, res.Sale.Subtotal.Equal(decimal.NewFromFloat(11.00)))
	assert.True(t, res.Sale.TotalCost.Equal(decimal.NewFromFloat(2.40)))
	assert.True(t, res.Sale.GrossProfit.Equal(decimal.NewFromFloat(8.60)))
	assert.True(t, res.Sale.GPPercent.Equal(decimal.NewFromFloat(78.18)), "gp%% %s", res.Sale.GPPercent)

	// Exactly one Sale record.
	assert.Len(t, saleRepo.sales, 1)
}

func TestProcessPartialDeductionFailure(t *testing.T) {
	svc, saleRepo, menu, ingredients := newSaleServiceFixture(t)

	latte := addMenuItem(menu, ingredients, "Chai Latte", 5.50, 1.20,
		map[string]float64{"milk": 0.2}, map[string]float64{"milk": 10})
	soup := addMenuItem(menu, ingredients, "Haunted Soup", 8.00, 2.00,
		map[string]float64{"stock cube": 1}, map[string]float64{"stock cube": 0})

	res, err := svc.Process(context.Background(), dto.ProcessSaleRequest{
		Items: []dto.SaleLineRequest{
			{MenuItemID: latte.ID.String(), Quantity: 1},
			{MenuItemID: soup.ID.String(), Quantity: 1},
		},
		StaffEmail: "sam@example.com",
		StaffName:  "Sam",
	})
	require.NoError(t, err)

	// Sale still created, flagged and carrying warnings.
	assert.False(t, res.Success)
	assert.False(t, res.Sale.StockDeducted)
	require.NotNil(t, res.Warnings)
	assert.Contains(t, *res.Warnings, `Insufficient stock for "stock cube"`)
	assert.Len(t, saleRepo.sales, 1)

	// Both lines are still priced into the totals.
	assert.True(t, res.Sale.Subtotal.Equal(decimal.NewFromFloat(13.50)), "subtotal %s", res.Sale.Subtotal)
	require.Len(t, res.DeductionResults, 2)
	assert.True(t, res.DeductionResults[0].Success)
	assert.False(t, res.DeductionResults[1].Success)
}

func TestProcessMissingMenuItemDegradesToZeroPrice(t *testing.T) {
	svc, saleRepo, menu, ingredients := newSaleServiceFixture(t)

	latte := addMenuItem(menu, ingredients, "Chai Latte", 5.50, 1.20,
		map[string]float64{"milk": 0.2}, map[string]float64{"milk": 10})

	res, err := svc.Process(context.Background(), dto.ProcessSaleRequest{
		Items: []dto.SaleLineRequest{
			{MenuItemID: latte.ID.String(), Quantity: 1},
			{MenuItemID: uuid.NewString(), Quantity: 1},
		},
		StaffEmail: "sam@example.com",
		StaffName:  "Sam",
	})
	require.NoError(t, err)

	assert.False(t, res.Success)
	assert.False(t, res.Sale.StockDeducted)
	// The unknown line contributes nothing to the totals.
	assert.True(t, res.Sale.Subtotal.Equal(decimal.NewFromFloat(5.50)))
	require.Len(t, res.Sale.Items, 2)
	assert.Equal(t, "Unknown item", res.Sale.Items[1].MenuItemName)
	assert.Len(t, saleRepo.sales, 1)
}

func TestProcessMalformedMenuItemIDStillPersistsSale(t *testing.T) {
	menu := newStubMenuRepo()
	ingredients := newStubIngredientRepo()
	deduction := NewDeductionService(menu, ingredients, &stubMovementRepo{})
	saleRepo := newStubSaleRepo()
	svc := NewSaleService(saleRepo, deduction, nil, "SALE")

	latte := addMenuItem(menu, ingredients, "Chai Latte", 5.50, 1.20,
		map[string]float64{"milk": 0.2}, map[string]float64{"milk": 10})

	res, err := svc.Process(context.Background(), dto.ProcessSaleRequest{
		Items: []dto.SaleLineRequest{
			{MenuItemID: latte.ID.String(), Quantity: 1},
			{MenuItemID: "not-a-uuid", Quantity: 1},
		},
		StaffEmail: "sam@example.com",
		StaffName:  "Sam",
	})
	require.NoError(t, err)

	// The first line's deduction went through, so the Sale must survive as
	// its audit record even though the second line never parsed.
	assert.False(t, res.Success)
	assert.False(t, res.Sale.StockDeducted)
	require.NotNil(t, res.Warnings)
	assert.Contains(t, *res.Warnings, `invalid menu item id "not-a-uuid"`)
	assert.Len(t, saleRepo.sales, 1)

	milkID := *latte.Recipe[0].IngredientID
	assert.True(t, ingredients.ingredients[milkID].CurrentStock.Equal(decimal.NewFromFloat(9.8)))

	// The broken line is priced at zero under a placeholder name.
	assert.True(t, res.Sale.Subtotal.Equal(decimal.NewFromFloat(5.50)))
	require.Len(t, res.Sale.Items, 2)
	assert.Equal(t, "Unknown item", res.Sale.Items[1].MenuItemName)
	require.Len(t, res.DeductionResults, 2)
	assert.False(t, res.DeductionResults[1].Success)
}

func TestProcessMovementsReferencePersistedSale(t *testing.T) {
	menu := newStubMenuRepo()
	ingredients := newStubIngredientRepo()
	movements := &stubMovementRepo{}
	deduction := NewDeductionService(menu, ingredients, movements)
	saleRepo := newStubSaleRepo()
	svc := NewSaleService(saleRepo, deduction, nil, "SALE")

	latte := addMenuItem(menu, ingredients, "Chai Latte", 5.50, 1.20,
		map[string]float64{"milk": 0.2}, map[string]float64{"milk": 10})

	res, err := svc.Process(context.Background(), dto.ProcessSaleRequest{
		Items:      []dto.SaleLineRequest{{MenuItemID: latte.ID.String(), Quantity: 2}},
		StaffEmail: "sam@example.com",
		StaffName:  "Sam",
	})
	require.NoError(t, err)
	require.True(t, res.Success)

	saleID := uuid.MustParse(res.Sale.ID)
	_, ok := saleRepo.sales[saleID]
	assert.True(t, ok, "persisted sale id should match the response")

	require.Len(t, movements.movements, 1)
	require.NotNil(t, movements.movements[0].ReferenceID)
	assert.Equal(t, saleID, *movements.movements[0].ReferenceID)
}

func TestProcessZeroSubtotalGuardsDivision(t *testing.T) {
	svc, _, _, _ := newSaleServiceFixture(t)

	// Every line unknown: subtotal stays zero and GP% must not divide by it.
	res, err := svc.Process(context.Background(), dto.ProcessSaleRequest{
		Items:      []dto.SaleLineRequest{{MenuItemID: uuid.NewString(), Quantity: 1}},
		StaffEmail: "sam@example.com",
		StaffName:  "Sam",
	})
	require.NoError(t, err)
	assert.True(t, res.Sale.Subtotal.IsZero())
	assert.True(t, res.Sale.GPPercent.IsZero())
}

func TestProcessRejectsEmptyItems(t *testing.T) {
	svc, saleRepo, _, _ := newSaleServiceFixture(t)

	res, err := svc.Process(context.Background(), dto.ProcessSaleRequest{
		StaffEmail: "sam@example.com",
		StaffName:  "Sam",
	})
	require.Error(t, err)
	assert.Nil(t, res)
	assert.Empty(t, saleRepo.sales)
}

func TestProcessSaleNumbersAreSequential(t *testing.T) {
	svc, _, menu, ingredients := newSaleServiceFixture(t)

	latte := addMenuItem(menu, ingredients, "Chai Latte", 5.50, 1.20,
		map[string]float64{"milk": 0.2}, map[string]float64{"milk": 10})

	req := dto.ProcessSaleRequest{
		Items:      []dto.SaleLineRequest{{MenuItemID: latte.ID.String(), Quantity: 1}},
		StaffEmail: "sam@example.com",
		StaffName:  "Sam",
	}
	first, err := svc.Process(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.Process(context.Background(), req)
	require.NoError(t, err)

	assert.NotEqual(t, first.Sale.SaleNumber, second.Sale.SaleNumber)
	assert.Equal(t, "SALE-001000", first.Sale.SaleNumber)
	assert.Equal(t, "SALE-001001", second.Sale.SaleNumber)
}

func TestProcessPersistsCombinedDeductionLog(t *testing.T) {
	svc, saleRepo, menu, ingredients := newSaleServiceFixture(t)

	latte := addMenuItem(menu, ingredients, "Chai Latte", 5.50, 1.20,
		map[string]float64{"milk": 0.2, "chai syrup": 30}, map[string]float64{"milk": 10, "chai syrup": 2000})

	res, err := svc.Process(context.Background(), dto.ProcessSaleRequest{
		Items:      []dto.SaleLineRequest{{MenuItemID: latte.ID.String(), Quantity: 1}},
		StaffEmail: "sam@example.com",
		StaffName:  "Sam",
	})
	require.NoError(t, err)
	require.True(t, res.Success)

	var stored *model.Sale
	for _, s := range saleRepo.sales {
		stored = s
	}
	require.NotNil(t, stored)

	var entries []dto.DeductionLogEntry
	require.NoError(t, json.Unmarshal([]byte(stored.DeductionLog), &entries))
	assert.Len(t, entries, 2)
}

func TestGetUnknownSale(t *testing.T) {
	svc, _, _, _ := newSaleServiceFixture(t)
	_, err := svc.Get(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, "sale not found", err.Error())
}

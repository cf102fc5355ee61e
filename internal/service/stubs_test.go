package service

import (
	"context"
	"errors"
	"time"

	"auraops/internal/dto"
	"auraops/internal/model"
	"auraops/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────
// In-memory repository stubs shared by the service unit tests. They implement
// the same contracts the GORM implementations do, including the conditional
// decrement guard on DeductStock.

type stubMenuRepo struct {
	items map[uuid.UUID]*model.MenuItem
}

func newStubMenuRepo() *stubMenuRepo {
	return &stubMenuRepo{items: make(map[uuid.UUID]*model.MenuItem)}
}

func (r *stubMenuRepo) Create(_ context.Context, m *model.MenuItem) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.items[m.ID] = m
	return nil
}

func (r *stubMenuRepo) FindByID(_ context.Context, id uuid.UUID) (*model.MenuItem, error) {
	m, ok := r.items[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return m, nil
}

func (r *stubMenuRepo) List(_ context.Context, _ dto.MenuItemFilter) ([]model.MenuItem, int64, error) {
	out := make([]model.MenuItem, 0, len(r.items))
	for _, m := range r.items {
		out = append(out, *m)
	}
	return out, int64(len(out)), nil
}

func (r *stubMenuRepo) Update(_ context.Context, m *model.MenuItem) error {
	r.items[m.ID] = m
	return nil
}

func (r *stubMenuRepo) ReplaceRecipe(_ *gorm.DB, menuItemID uuid.UUID, lines []model.RecipeLine) error {
	if m, ok := r.items[menuItemID]; ok {
		m.Recipe = lines
	}
	return nil
}

func (r *stubMenuRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if m, ok := r.items[id]; ok {
		m.Active = false
	}
	return nil
}

func (r *stubMenuRepo) Reactivate(_ context.Context, id uuid.UUID) error {
	if m, ok := r.items[id]; ok {
		m.Active = true
	}
	return nil
}

func (r *stubMenuRepo) DB() *gorm.DB { return nil }

var _ repository.MenuItemRepository = (*stubMenuRepo)(nil)

type stubIngredientRepo struct {
	ingredients map[uuid.UUID]*model.Ingredient
	// deductErr forces DeductStock to fail for a given ingredient.
	deductErr map[uuid.UUID]error
	// raceOn simulates a concurrent sale: the guard refuses the decrement
	// even though the pre-read saw enough stock.
	raceOn map[uuid.UUID]bool
}

func newStubIngredientRepo() *stubIngredientRepo {
	return &stubIngredientRepo{
		ingredients: make(map[uuid.UUID]*model.Ingredient),
		deductErr:   make(map[uuid.UUID]error),
		raceOn:      make(map[uuid.UUID]bool),
	}
}

func (r *stubIngredientRepo) add(name, unit string, stock, min float64) *model.Ingredient {
	ing := &model.Ingredient{
		ID:           uuid.New(),
		Name:         name,
		Unit:         unit,
		CurrentStock: decimal.NewFromFloat(stock),
		MinStock:     decimal.NewFromFloat(min),
		Active:       true,
	}
	r.ingredients[ing.ID] = ing
	return ing
}

func (r *stubIngredientRepo) Create(_ context.Context, i *model.Ingredient) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	r.ingredients[i.ID] = i
	return nil
}

func (r *stubIngredientRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Ingredient, error) {
	i, ok := r.ingredients[id]
	if !ok {
		return nil, errors.New("not found")
	}
	cp := *i
	return &cp, nil
}

func (r *stubIngredientRepo) List(_ context.Context, _ dto.IngredientFilter) ([]model.Ingredient, int64, error) {
	out := make([]model.Ingredient, 0, len(r.ingredients))
	for _, i := range r.ingredients {
		out = append(out, *i)
	}
	return out, int64(len(out)), nil
}

func (r *stubIngredientRepo) ListBySupplier(_ context.Context, supplierID uuid.UUID) ([]model.Ingredient, error) {
	var out []model.Ingredient
	for _, i := range r.ingredients {
		if i.SupplierID != nil && *i.SupplierID == supplierID {
			out = append(out, *i)
		}
	}
	return out, nil
}

func (r *stubIngredientRepo) ListBelowMin(_ context.Context) ([]model.Ingredient, error) {
	var out []model.Ingredient
	for _, i := range r.ingredients {
		if i.Active && i.CurrentStock.LessThanOrEqual(i.MinStock) {
			out = append(out, *i)
		}
	}
	return out, nil
}

func (r *stubIngredientRepo) Update(_ context.Context, i *model.Ingredient) error {
	r.ingredients[i.ID] = i
	return nil
}

func (r *stubIngredientRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if i, ok := r.ingredients[id]; ok {
		i.Active = false
	}
	return nil
}

func (r *stubIngredientRepo) DeductStock(_ context.Context, id uuid.UUID, qty decimal.Decimal) (bool, error) {
	if err, ok := r.deductErr[id]; ok {
		return false, err
	}
	i, ok := r.ingredients[id]
	if !ok {
		return false, errors.New("not found")
	}
	if r.raceOn[id] || i.CurrentStock.LessThan(qty) {
		return false, nil
	}
	i.CurrentStock = i.CurrentStock.Sub(qty)
	return true, nil
}

func (r *stubIngredientRepo) AdjustStock(_ context.Context, id uuid.UUID, delta decimal.Decimal) error {
	i, ok := r.ingredients[id]
	if !ok {
		return errors.New("not found")
	}
	i.CurrentStock = i.CurrentStock.Add(delta)
	return nil
}

func (r *stubIngredientRepo) MarkOrdered(_ context.Context, id uuid.UUID, at time.Time) error {
	i, ok := r.ingredients[id]
	if !ok {
		return errors.New("not found")
	}
	i.LastOrdered = &at
	return nil
}

var _ repository.IngredientRepository = (*stubIngredientRepo)(nil)

type stubMovementRepo struct {
	movements []model.StockMovement
	createErr error
}

func (r *stubMovementRepo) Create(_ context.Context, m *model.StockMovement) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.movements = append(r.movements, *m)
	return nil
}

func (r *stubMovementRepo) List(_ context.Context, filter repository.StockMovementFilter) ([]model.StockMovement, int64, error) {
	var out []model.StockMovement
	for _, m := range r.movements {
		if filter.IngredientID != nil && m.IngredientID != *filter.IngredientID {
			continue
		}
		if filter.Type != "" && m.Type != filter.Type {
			continue
		}
		out = append(out, m)
	}
	return out, int64(len(out)), nil
}

var _ repository.StockMovementRepository = (*stubMovementRepo)(nil)

type stubSaleRepo struct {
	sales   map[uuid.UUID]*model.Sale
	saleSeq int64
}

func newStubSaleRepo() *stubSaleRepo {
	return &stubSaleRepo{sales: make(map[uuid.UUID]*model.Sale), saleSeq: 999}
}

func (r *stubSaleRepo) Create(_ context.Context, s *model.Sale) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.sales[s.ID] = s
	return nil
}

func (r *stubSaleRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return s, nil
}

func (r *stubSaleRepo) NextSaleNumber(_ context.Context) (int64, error) {
	r.saleSeq++
	return r.saleSeq, nil
}

func (r *stubSaleRepo) List(_ context.Context, _ dto.SaleFilter) ([]model.Sale, int64, error) {
	out := make([]model.Sale, 0, len(r.sales))
	for _, s := range r.sales {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (r *stubSaleRepo) DB() *gorm.DB { return nil }

var _ repository.SaleRepository = (*stubSaleRepo)(nil)

type stubShiftRepo struct {
	shifts map[uuid.UUID]*model.Shift
}

func newStubShiftRepo() *stubShiftRepo {
	return &stubShiftRepo{shifts: make(map[uuid.UUID]*model.Shift)}
}

func (r *stubShiftRepo) Create(_ context.Context, s *model.Shift) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.shifts[s.ID] = s
	return nil
}

func (r *stubShiftRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Shift, error) {
	s, ok := r.shifts[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return s, nil
}

func (r *stubShiftRepo) FindOpenByStation(_ context.Context, station string) (*model.Shift, error) {
	for _, s := range r.shifts {
		if s.Station == station && s.Status == "open" {
			return s, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *stubShiftRepo) Update(_ context.Context, s *model.Shift) error {
	r.shifts[s.ID] = s
	return nil
}

func (r *stubShiftRepo) List(_ context.Context, _ dto.ShiftFilter) ([]model.Shift, int64, error) {
	out := make([]model.Shift, 0, len(r.shifts))
	for _, s := range r.shifts {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

var _ repository.ShiftRepository = (*stubShiftRepo)(nil)

type stubCostHistoryRepo struct {
	records []model.CostHistory
}

func (r *stubCostHistoryRepo) Create(_ context.Context, h *model.CostHistory) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	r.records = append(r.records, *h)
	return nil
}

func (r *stubCostHistoryRepo) ListByMenuItem(_ context.Context, menuItemID uuid.UUID) ([]model.CostHistory, error) {
	var out []model.CostHistory
	for _, h := range r.records {
		if h.MenuItemID == menuItemID {
			out = append(out, h)
		}
	}
	return out, nil
}

var _ repository.CostHistoryRepository = (*stubCostHistoryRepo)(nil)

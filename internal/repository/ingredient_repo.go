package repository

import (
	"context"
	"time"

	"auraops/internal/dto"
	"auraops/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// IngredientRepository defines the data access contract for inventory units.
type IngredientRepository interface {
	Create(ctx context.Context, i *model.Ingredient) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Ingredient, error)
	List(ctx context.Context, filter dto.IngredientFilter) ([]model.Ingredient, int64, error)
	ListBySupplier(ctx context.Context, supplierID uuid.UUID) ([]model.Ingredient, error)
	// ListBelowMin returns active ingredients with current_stock <= min_stock.
	ListBelowMin(ctx context.Context) ([]model.Ingredient, error)
	Update(ctx context.Context, i *model.Ingredient) error
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// DeductStock applies a conditional atomic decrement:
	//   UPDATE ... SET current_stock = current_stock - qty
	//   WHERE id = ? AND current_stock >= qty
	// Returns false (no error) when the guard refused the decrement, so two
	// concurrent sales can never drive current_stock negative. Only the
	// current_stock column is touched — last_ordered passes through verbatim.
	DeductStock(ctx context.Context, id uuid.UUID, qty decimal.Decimal) (bool, error)

	// AdjustStock applies a signed manual correction without the sufficiency
	// guard (restocks and corrections may exceed any bound).
	AdjustStock(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error

	// MarkOrdered stamps last_ordered — called only by the restocking flow.
	MarkOrdered(ctx context.Context, id uuid.UUID, at time.Time) error
}

type ingredientRepo struct{ db *gorm.DB }

func NewIngredientRepository(db *gorm.DB) IngredientRepository { return &ingredientRepo{db: db} }

func (r *ingredientRepo) Create(ctx context.Context, i *model.Ingredient) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *ingredientRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Ingredient, error) {
	var i model.Ingredient
	err := r.db.WithContext(ctx).First(&i, id).Error
	return &i, err
}

func (r *ingredientRepo) List(ctx context.Context, filter dto.IngredientFilter) ([]model.Ingredient, int64, error) {
	var ingredients []model.Ingredient
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Ingredient{})

	switch filter.Active {
	case "false":
		q = q.Where("active = false")
	case "all":
	default:
		q = q.Where("active = true")
	}
	if filter.Name != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Name+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("name ASC").Limit(filter.Limit).Offset(offset).Find(&ingredients).Error
	return ingredients, total, err
}

func (r *ingredientRepo) ListBySupplier(ctx context.Context, supplierID uuid.UUID) ([]model.Ingredient, error) {
	var ingredients []model.Ingredient
	err := r.db.WithContext(ctx).
		Where("supplier_id = ? AND active = true", supplierID).
		Order("name ASC").Find(&ingredients).Error
	return ingredients, err
}

func (r *ingredientRepo) ListBelowMin(ctx context.Context) ([]model.Ingredient, error) {
	var ingredients []model.Ingredient
	err := r.db.WithContext(ctx).
		Where("active = true AND current_stock <= min_stock").
		Order("name ASC").Find(&ingredients).Error
	return ingredients, err
}

func (r *ingredientRepo) Update(ctx context.Context, i *model.Ingredient) error {
	return r.db.WithContext(ctx).Save(i).Error
}

func (r *ingredientRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Ingredient{}).Where("id = ?", id).Update("active", false).Error
}

func (r *ingredientRepo) DeductStock(ctx context.Context, id uuid.UUID, qty decimal.Decimal) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Ingredient{}).
		Where("id = ? AND current_stock >= ?", id, qty).
		Update("current_stock", gorm.Expr("current_stock - ?", qty))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *ingredientRepo) AdjustStock(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error {
	return r.db.WithContext(ctx).Model(&model.Ingredient{}).
		Where("id = ?", id).
		Update("current_stock", gorm.Expr("current_stock + ?", delta)).Error
}

func (r *ingredientRepo) MarkOrdered(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).Model(&model.Ingredient{}).
		Where("id = ?", id).
		Update("last_ordered", at).Error
}

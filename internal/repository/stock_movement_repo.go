package repository

import (
	"context"

	"auraops/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockMovementFilter defines filters for listing the movement ledger.
type StockMovementFilter struct {
	IngredientID *uuid.UUID
	Type         string
	Page         int
	Limit        int
}

type StockMovementRepository interface {
	Create(ctx context.Context, m *model.StockMovement) error
	List(ctx context.Context, filter StockMovementFilter) ([]model.StockMovement, int64, error)
}

type stockMovementRepo struct{ db *gorm.DB }

func NewStockMovementRepository(db *gorm.DB) StockMovementRepository {
	return &stockMovementRepo{db: db}
}

func (r *stockMovementRepo) Create(ctx context.Context, m *model.StockMovement) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *stockMovementRepo) List(ctx context.Context, filter StockMovementFilter) ([]model.StockMovement, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.StockMovement{}).
		Preload("Ingredient")
	if filter.IngredientID != nil {
		q = q.Where("ingredient_id = ?", *filter.IngredientID)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	limit := filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 500 {
		limit = 100
	}
	offset := (page - 1) * limit

	var movements []model.StockMovement
	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&movements).Error
	return movements, total, err
}

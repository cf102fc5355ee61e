package repository

import (
	"context"

	"auraops/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CostHistoryRepository interface {
	Create(ctx context.Context, h *model.CostHistory) error
	ListByMenuItem(ctx context.Context, menuItemID uuid.UUID) ([]model.CostHistory, error)
}

type costHistoryRepo struct{ db *gorm.DB }

func NewCostHistoryRepository(db *gorm.DB) CostHistoryRepository {
	return &costHistoryRepo{db: db}
}

func (r *costHistoryRepo) Create(ctx context.Context, h *model.CostHistory) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *costHistoryRepo) ListByMenuItem(ctx context.Context, menuItemID uuid.UUID) ([]model.CostHistory, error) {
	var records []model.CostHistory
	err := r.db.WithContext(ctx).
		Where("menu_item_id = ?", menuItemID).
		Order("created_at DESC").Find(&records).Error
	return records, err
}

package repository

import (
	"context"

	"auraops/internal/dto"
	"auraops/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MenuItemRepository defines the data access contract for menu items.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type MenuItemRepository interface {
	Create(ctx context.Context, m *model.MenuItem) error
	// FindByID loads the item with its recipe preloaded.
	FindByID(ctx context.Context, id uuid.UUID) (*model.MenuItem, error)
	List(ctx context.Context, filter dto.MenuItemFilter) ([]model.MenuItem, int64, error)
	Update(ctx context.Context, m *model.MenuItem) error
	// ReplaceRecipe swaps the full recipe line set inside a transaction.
	ReplaceRecipe(tx *gorm.DB, menuItemID uuid.UUID, lines []model.RecipeLine) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type menuItemRepo struct{ db *gorm.DB }

func NewMenuItemRepository(db *gorm.DB) MenuItemRepository { return &menuItemRepo{db: db} }

func (r *menuItemRepo) Create(ctx context.Context, m *model.MenuItem) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *menuItemRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.MenuItem, error) {
	var m model.MenuItem
	err := r.db.WithContext(ctx).Preload("Recipe").First(&m, id).Error
	return &m, err
}

func (r *menuItemRepo) List(ctx context.Context, filter dto.MenuItemFilter) ([]model.MenuItem, int64, error) {
	var items []model.MenuItem
	var total int64

	q := r.db.WithContext(ctx).Model(&model.MenuItem{})

	// Active filter: "false" = inactive, "all" = everything, default = active
	switch filter.Active {
	case "false":
		q = q.Where("active = false")
	case "all":
		// no filter
	default:
		q = q.Where("active = true")
	}

	if filter.Name != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Recipe").Order("name ASC").Limit(filter.Limit).Offset(offset).Find(&items).Error
	return items, total, err
}

func (r *menuItemRepo) Update(ctx context.Context, m *model.MenuItem) error {
	return r.db.WithContext(ctx).Omit("Recipe").Save(m).Error
}

func (r *menuItemRepo) ReplaceRecipe(tx *gorm.DB, menuItemID uuid.UUID, lines []model.RecipeLine) error {
	if err := tx.Where("menu_item_id = ?", menuItemID).Delete(&model.RecipeLine{}).Error; err != nil {
		return err
	}
	if len(lines) == 0 {
		return nil
	}
	return tx.Create(&lines).Error
}

func (r *menuItemRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.MenuItem{}).Where("id = ?", id).Update("active", false).Error
}

func (r *menuItemRepo) Reactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.MenuItem{}).Where("id = ?", id).Update("active", true).Error
}

func (r *menuItemRepo) DB() *gorm.DB { return r.db }

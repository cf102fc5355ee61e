package repository

import (
	"context"

	"auraops/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SupplierRepository interface {
	Create(ctx context.Context, s *model.Supplier) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Supplier, error)
	FindByName(ctx context.Context, name string) (*model.Supplier, error)
	List(ctx context.Context) ([]model.Supplier, error)
	Update(ctx context.Context, s *model.Supplier) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type supplierRepo struct{ db *gorm.DB }

func NewSupplierRepository(db *gorm.DB) SupplierRepository { return &supplierRepo{db: db} }

func (r *supplierRepo) Create(ctx context.Context, s *model.Supplier) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *supplierRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Supplier, error) {
	var s model.Supplier
	err := r.db.WithContext(ctx).First(&s, id).Error
	return &s, err
}

func (r *supplierRepo) FindByName(ctx context.Context, name string) (*model.Supplier, error) {
	var s model.Supplier
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *supplierRepo) List(ctx context.Context) ([]model.Supplier, error) {
	var suppliers []model.Supplier
	err := r.db.WithContext(ctx).Where("active = true").Order("name ASC").Find(&suppliers).Error
	return suppliers, err
}

func (r *supplierRepo) Update(ctx context.Context, s *model.Supplier) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *supplierRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Supplier{}).Where("id = ?", id).Update("active", false).Error
}

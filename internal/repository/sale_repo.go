package repository

import (
	"context"

	"auraops/internal/dto"
	"auraops/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SaleRepository interface {
	Create(ctx context.Context, s *model.Sale) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	// NextSaleNumber draws the next value from the sales number sequence,
	// so display numbers are unique by assignment rather than by chance.
	NextSaleNumber(ctx context.Context) (int64, error)
	List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error)
	DB() *gorm.DB
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) DB() *gorm.DB { return r.db }

func (r *saleRepo) Create(ctx context.Context, s *model.Sale) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *saleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).Preload("Items").First(&s, id).Error
	return &s, err
}

func (r *saleRepo) NextSaleNumber(ctx context.Context) (int64, error) {
	var num int64
	err := r.db.WithContext(ctx).Raw("SELECT nextval('sales_sale_number_seq')").Scan(&num).Error
	return num, err
}

func (r *saleRepo) List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error) {
	var sales []model.Sale
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Sale{})

	if filter.SaleType != "" && filter.SaleType != "all" {
		q = q.Where("sale_type = ?", filter.SaleType)
	}
	if filter.Date != "" {
		q = q.Where("DATE(created_at) = ?", filter.Date)
	} else {
		// Default: today
		q = q.Where("DATE(created_at) = CURRENT_DATE")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Items").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&sales).Error

	return sales, total, err
}

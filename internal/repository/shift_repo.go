package repository

import (
	"context"

	"auraops/internal/dto"
	"auraops/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ShiftRepository interface {
	Create(ctx context.Context, s *model.Shift) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Shift, error)
	// FindOpenByStation returns the open shift at a station, if any.
	FindOpenByStation(ctx context.Context, station string) (*model.Shift, error)
	Update(ctx context.Context, s *model.Shift) error
	List(ctx context.Context, filter dto.ShiftFilter) ([]model.Shift, int64, error)
}

type shiftRepo struct{ db *gorm.DB }

func NewShiftRepository(db *gorm.DB) ShiftRepository { return &shiftRepo{db: db} }

func (r *shiftRepo) Create(ctx context.Context, s *model.Shift) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *shiftRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Shift, error) {
	var s model.Shift
	err := r.db.WithContext(ctx).First(&s, id).Error
	return &s, err
}

func (r *shiftRepo) FindOpenByStation(ctx context.Context, station string) (*model.Shift, error) {
	var s model.Shift
	err := r.db.WithContext(ctx).Where("station = ? AND status = 'open'", station).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *shiftRepo) Update(ctx context.Context, s *model.Shift) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *shiftRepo) List(ctx context.Context, filter dto.ShiftFilter) ([]model.Shift, int64, error) {
	var shifts []model.Shift
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Shift{})
	if filter.Station != "" {
		q = q.Where("station = ?", filter.Station)
	}
	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("status = ?", filter.Status)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("opened_at DESC").Offset(offset).Limit(filter.Limit).Find(&shifts).Error
	return shifts, total, err
}

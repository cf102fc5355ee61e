package service

import (
	"context"
	"errors"
	"time"

	"auraops/internal/dto"
	"auraops/internal/model"
	"auraops/internal/repository"

	"github.com/google/uuid"
)

// ShiftService handles staff check-ins. One open shift per station at a time;
// the partial unique index on shifts enforces the same at the DB.
type ShiftService interface {
	CheckIn(ctx context.Context, req dto.CheckInRequest) (*dto.ShiftResponse, error)
	CheckOut(ctx context.Context, id uuid.UUID, req dto.CheckOutRequest) (*dto.ShiftResponse, error)
	Active(ctx context.Context, station string) (*dto.ShiftResponse, error)
	List(ctx context.Context, filter dto.ShiftFilter) (*dto.ShiftListResponse, error)
}

type shiftService struct {
	repo repository.ShiftRepository
}

func NewShiftService(repo repository.ShiftRepository) ShiftService {
	return &shiftService{repo: repo}
}

func (s *shiftService) CheckIn(ctx context.Context, req dto.CheckInRequest) (*dto.ShiftResponse, error) {
	// Guard: no duplicate open shift per station
	if existing, err := s.repo.FindOpenByStation(ctx, req.Station); err == nil && existing != nil {
		return nil, errors.New("there is already an open shift at this station")
	}

	shift := &model.Shift{
		Station:    req.Station,
		StaffEmail: req.StaffEmail,
		StaffName:  req.StaffName,
		Status:     "open",
		OpenedAt:   time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, shift); err != nil {
		return nil, err
	}
	return shiftToResponse(shift), nil
}

func (s *shiftService) CheckOut(ctx context.Context, id uuid.UUID, req dto.CheckOutRequest) (*dto.ShiftResponse, error) {
	shift, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("shift not found")
	}
	if shift.Status == "closed" {
		return nil, errors.New("shift is already closed")
	}

	now := time.Now().UTC()
	shift.Status = "closed"
	shift.ClosedAt = &now
	shift.Notes = req.Notes
	if err := s.repo.Update(ctx, shift); err != nil {
		return nil, err
	}
	return shiftToResponse(shift), nil
}

func (s *shiftService) Active(ctx context.Context, station string) (*dto.ShiftResponse, error) {
	shift, err := s.repo.FindOpenByStation(ctx, station)
	if err != nil || shift == nil {
		return nil, errors.New("no open shift at this station")
	}
	return shiftToResponse(shift), nil
}

func (s *shiftService) List(ctx context.Context, filter dto.ShiftFilter) (*dto.ShiftListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	shifts, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ShiftResponse, 0, len(shifts))
	for i := range shifts {
		data = append(data, *shiftToResponse(&shifts[i]))
	}
	return &dto.ShiftListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func shiftToResponse(s *model.Shift) *dto.ShiftResponse {
	var closedAt *string
	if s.ClosedAt != nil {
		c := s.ClosedAt.Format("2006-01-02T15:04:05Z")
		closedAt = &c
	}
	return &dto.ShiftResponse{
		ID:         s.ID.String(),
		Station:    s.Station,
		StaffEmail: s.StaffEmail,
		StaffName:  s.StaffName,
		Status:     s.Status,
		Notes:      s.Notes,
		OpenedAt:   s.OpenedAt.Format("2006-01-02T15:04:05Z"),
		ClosedAt:   closedAt,
	}
}

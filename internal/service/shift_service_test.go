package service

import (
	"context"
	"testing"

	"auraops/internal/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckInOpensShift(t *testing.T) {
	repo := newStubShiftRepo()
	svc := NewShiftService(repo)

	res, err := svc.CheckIn(context.Background(), dto.CheckInRequest{
		Station:    "kitchen",
		StaffEmail: "sam@example.com",
		StaffName:  "Sam",
	})
	require.NoError(t, err)
	assert.Equal(t, "open", res.Status)
	assert.Equal(t, "kitchen", res.Station)
	assert.Nil(t, res.ClosedAt)
}

func TestCheckInRejectsSecondOpenShiftPerStation(t *testing.T) {
	repo := newStubShiftRepo()
	svc := NewShiftService(repo)

	req := dto.CheckInRequest{Station: "bar", StaffEmail: "sam@example.com", StaffName: "Sam"}
	_, err := svc.CheckIn(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.CheckIn(context.Background(), req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already an open shift")

	// A different station is unaffected.
	req.Station = "front"
	_, err = svc.CheckIn(context.Background(), req)
	require.NoError(t, err)
}

func TestCheckOutClosesShift(t *testing.T) {
	repo := newStubShiftRepo()
	svc := NewShiftService(repo)

	opened, err := svc.CheckIn(context.Background(), dto.CheckInRequest{
		Station: "kitchen", StaffEmail: "sam@example.com", StaffName: "Sam",
	})
	require.NoError(t, err)

	id := uuid.MustParse(opened.ID)
	notes := "clean close"
	closed, err := svc.CheckOut(context.Background(), id, dto.CheckOutRequest{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, "closed", closed.Status)
	require.NotNil(t, closed.ClosedAt)
	require.NotNil(t, closed.Notes)
	assert.Equal(t, "clean close", *closed.Notes)

	// Closing twice fails; the station frees up for a new check-in.
	_, err = svc.CheckOut(context.Background(), id, dto.CheckOutRequest{})
	require.Error(t, err)
	_, err = svc.CheckIn(context.Background(), dto.CheckInRequest{
		Station: "kitchen", StaffEmail: "alex@example.com", StaffName: "Alex",
	})
	require.NoError(t, err)
}

func TestActiveShiftLookup(t *testing.T) {
	repo := newStubShiftRepo()
	svc := NewShiftService(repo)

	_, err := svc.Active(context.Background(), "kitchen")
	require.Error(t, err)

	_, err = svc.CheckIn(context.Background(), dto.CheckInRequest{
		Station: "kitchen", StaffEmail: "sam@example.com", StaffName: "Sam",
	})
	require.NoError(t, err)

	res, err := svc.Active(context.Background(), "kitchen")
	require.NoError(t, err)
	assert.Equal(t, "sam@example.com", res.StaffEmail)
}

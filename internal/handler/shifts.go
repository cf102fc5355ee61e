package handler

import (
	"net/http"

	"auraops/internal/apierror"
	"auraops/internal/dto"
	"auraops/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ShiftsHandler struct {
	svc service.ShiftService
}

func NewShiftsHandler(svc service.ShiftService) *ShiftsHandler {
	return &ShiftsHandler{svc: svc}
}

// CheckIn godoc
// @Summary      Open a shift
// @Description  Opens a shift for a station. Fails when the station already has an open shift.
// @Tags         shifts
// @Accept       json
// @Produce      json
// @Param        body body dto.CheckInRequest true "Station and staff identity"
// @Success      201  {object} dto.ShiftResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/shifts/check-in [post]
func (h *ShiftsHandler) CheckIn(c *gin.Context) {
	var req dto.CheckInRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CheckIn(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// CheckOut godoc
// @Summary      Close a shift
// @Tags         shifts
// @Accept       json
// @Produce      json
// @Param        id   path string              true "Shift id"
// @Param        body body dto.CheckOutRequest true "Closing notes"
// @Success      200  {object} dto.ShiftResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/shifts/{id}/check-out [post]
func (h *ShiftsHandler) CheckOut(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return
	}
	var req dto.CheckOutRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CheckOut(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Active returns the open shift for a station, 404 when none is open.
func (h *ShiftsHandler) Active(c *gin.Context) {
	station := c.Query("station")
	if station == "" {
		c.JSON(http.StatusBadRequest, apierror.New("station query parameter is required"))
		return
	}
	resp, err := h.svc.Active(c.Request.Context(), station)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List godoc
// @Summary      List shifts
// @Tags         shifts
// @Produce      json
// @Param        station query string false "Station name"
// @Param        status  query string false "open | closed | all"
// @Param        page    query int    false "Page (default 1)"
// @Param        limit   query int    false "Rows per page (default 50)"
// @Success      200  {object} dto.ShiftListResponse
// @Router       /v1/shifts [get]
func (h *ShiftsHandler) List(c *gin.Context) {
	var filter dto.ShiftFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list shifts"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

package handler

import (
	"net/http"

	"auraops/internal/apierror"
	"auraops/internal/dto"
	"auraops/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SalesHandler struct {
	svc       service.SaleService
	deduction service.DeductionService
}

func NewSalesHandler(svc service.SaleService, deduction service.DeductionService) *SalesHandler {
	return &SalesHandler{svc: svc, deduction: deduction}
}

// Process godoc
// @Summary      Process a sale transaction
// @Description  Resolves inventory deductions per line item, computes the financial rollup and persists one Sale record. Partial deduction failures still create the Sale, flagged stock_deducted=false.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        body body dto.ProcessSaleRequest true "Sale lines plus staff identity"
// @Success      201  {object} dto.SaleResult
// @Failure      400  {object} apierror.APIError
// @Router       /v1/sales [post]
func (h *SalesHandler) Process(c *gin.Context) {
	var req dto.ProcessSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Process(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Deduct godoc
// @Summary      Deduct inventory for a single menu item sale
// @Description  Walks the item's recipe and decrements ingredient stock. Per-line shortfalls are logged, not fatal; missing menu item or empty recipe fails the whole call with no stock touched.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        body body dto.DeductRequest true "Menu item and quantity (default 1)"
// @Success      200  {object} dto.DeductionResult
// @Failure      400  {object} apierror.APIError
// @Router       /v1/sales/deduct [post]
func (h *SalesHandler) Deduct(c *gin.Context) {
	var req dto.DeductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	id, err := uuid.Parse(req.MenuItemID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid menu_item_id"))
		return
	}
	qty := req.Quantity
	if qty == 0 {
		qty = 1
	}
	resp, err := h.deduction.Resolve(c.Request.Context(), id, qty, nil)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List godoc
// @Summary      List sales
// @Description  Returns a paginated sale list filtered by date and sale type.
// @Tags         sales
// @Produce      json
// @Param        date      query string false "Date YYYY-MM-DD (default: today)"
// @Param        sale_type query string false "dine_in | takeaway | delivery | all"
// @Param        page      query int    false "Page (default 1)"
// @Param        limit     query int    false "Rows per page (default 50)"
// @Success      200  {object} dto.SaleListResponse
// @Failure      500  {object} apierror.APIError
// @Router       /v1/sales [get]
func (h *SalesHandler) List(c *gin.Context) {
	var filter dto.SaleFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list sales"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get returns one sale with its line items and deduction log.
func (h *SalesHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

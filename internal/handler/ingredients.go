package handler

import (
	"net/http"
	"strconv"

	"auraops/internal/apierror"
	"auraops/internal/dto"
	"auraops/internal/repository"
	"auraops/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type IngredientsHandler struct {
	svc service.InventoryService
}

func NewIngredientsHandler(svc service.InventoryService) *IngredientsHandler {
	return &IngredientsHandler{svc: svc}
}

// Create godoc
// @Summary      Create an ingredient
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body body dto.CreateIngredientRequest true "Ingredient payload"
// @Success      201  {object} dto.IngredientResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/ingredients [post]
func (h *IngredientsHandler) Create(c *gin.Context) {
	var req dto.CreateIngredientRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateIngredient(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *IngredientsHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return
	}
	resp, err := h.svc.GetIngredient(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List godoc
// @Summary      List ingredients
// @Tags         inventory
// @Produce      json
// @Param        name   query string false "Name filter (partial match)"
// @Param        active query string false "false | all (default: active only)"
// @Param        page   query int    false "Page (default 1)"
// @Param        limit  query int    false "Rows per page (default 50)"
// @Success      200  {object} dto.IngredientListResponse
// @Router       /v1/ingredients [get]
func (h *IngredientsHandler) List(c *gin.Context) {
	var filter dto.IngredientFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListIngredients(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list ingredients"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *IngredientsHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return
	}
	var req dto.UpdateIngredientRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateIngredient(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *IngredientsHandler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return
	}
	if err := h.svc.DeactivateIngredient(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Ingredient deactivated"})
}

// AdjustStock godoc
// @Summary      Manual stock adjustment
// @Description  Applies a signed correction to an ingredient's stock and records an adjustment movement. Rejects adjustments that would leave stock negative.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id   path string                 true "Ingredient id"
// @Param        body body dto.AdjustStockRequest true "Signed quantity plus reason"
// @Success      200  {object} dto.IngredientResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/ingredients/{id}/adjust [post]
func (h *IngredientsHandler) AdjustStock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return
	}
	var req dto.AdjustStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AdjustStock(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Restock godoc
// @Summary      Receive a delivery
// @Description  Adds stock, stamps last_ordered and records a restock movement.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id   path string             true "Ingredient id"
// @Param        body body dto.RestockRequest true "Received quantity"
// @Success      200  {object} dto.IngredientResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/ingredients/{id}/restock [post]
func (h *IngredientsHandler) Restock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return
	}
	var req dto.RestockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Restock(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// LowStockAlerts godoc
// @Summary      Ingredients at or below their minimum stock
// @Tags         inventory
// @Produce      json
// @Success      200  {array} dto.LowStockAlertResponse
// @Router       /v1/inventory/alerts [get]
func (h *IngredientsHandler) LowStockAlerts(c *gin.Context) {
	resp, err := h.svc.LowStockAlerts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to load alerts"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Movements godoc
// @Summary      Stock movement audit trail
// @Tags         inventory
// @Produce      json
// @Param        ingredient_id query string false "Filter by ingredient"
// @Param        type          query string false "sale | restock | adjustment"
// @Param        page          query int    false "Page (default 1)"
// @Param        limit         query int    false "Rows per page (default 50)"
// @Success      200  {object} dto.StockMovementListResponse
// @Router       /v1/inventory/movements [get]
func (h *IngredientsHandler) Movements(c *gin.Context) {
	var filter repository.StockMovementFilter
	if raw := c.Query("ingredient_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("Invalid ingredient_id"))
			return
		}
		filter.IngredientID = &id
	}
	filter.Type = c.Query("type")
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	resp, err := h.svc.ListMovements(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list movements"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

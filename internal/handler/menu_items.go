package handler

import (
	"net/http"

	"auraops/internal/apierror"
	"auraops/internal/dto"
	"auraops/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MenuHandler struct {
	svc service.MenuService
}

func NewMenuHandler(svc service.MenuService) *MenuHandler {
	return &MenuHandler{svc: svc}
}

// Create godoc
// @Summary      Create a menu item
// @Description  Registers a menu item with its recipe lines. Ingredient references may be null for lines not yet linked to inventory.
// @Tags         menu
// @Accept       json
// @Produce      json
// @Param        body body dto.CreateMenuItemRequest true "Menu item payload"
// @Success      201  {object} dto.MenuItemResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/menu-items [post]
func (h *MenuHandler) Create(c *gin.Context) {
	var req dto.CreateMenuItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Get returns one menu item with its recipe.
func (h *MenuHandler) Get(c *gin.Context) {
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

// List godoc
// @Summary      List menu items
// @Tags         menu
// @Produce      json
// @Param        name     query string false "Name filter (partial match)"
// @Param        category query string false "Category name"
// @Param        active   query string false "false | all (default: active only)"
// @Param        page     query int    false "Page (default 1)"
// @Param        limit    query int    false "Rows per page (default 50)"
// @Success      200  {object} dto.MenuItemListResponse
// @Router       /v1/menu-items [get]
func (h *MenuHandler) List(c *gin.Context) {
	var filter dto.MenuItemFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list menu items"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update godoc
// @Summary      Update a menu item
// @Description  Updates name, price, category or recipe. A price change records a cost history entry with the margin at that moment.
// @Tags         menu
// @Accept       json
// @Produce      json
// @Param        id   path string                   true "Menu item id"
// @Param        body body dto.UpdateMenuItemRequest true "Fields to update"
// @Success      200  {object} dto.MenuItemResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/menu-items/{id} [put]
func (h *MenuHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return
	}
	var req dto.UpdateMenuItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Deactivate soft-deletes a menu item. Sales history keeps its snapshots.
func (h *MenuHandler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return
	}
	if err := h.svc.Deactivate(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item deactivated"})
}

func (h *MenuHandler) Reactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return
	}
	if err := h.svc.Reactivate(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Menu item reactivated"})
}

// CostHistory godoc
// @Summary      Price and cost history of a menu item
// @Tags         menu
// @Produce      json
// @Param        id path string true "Menu item id"
// @Success      200  {array} dto.CostHistoryResponse
// @Router       /v1/menu-items/{id}/cost-history [get]
func (h *MenuHandler) CostHistory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return
	}
	resp, err := h.svc.CostHistory(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to load cost history"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

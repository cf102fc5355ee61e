package handler

import (
	"net/http"

	"auraops/internal/apierror"
	"auraops/internal/dto"
	"auraops/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CategoriesHandler struct {
	svc service.CategoryService
}

func NewCategoriesHandler(svc service.CategoryService) *CategoriesHandler {
	return &CategoriesHandler{svc: svc}
}

func (h *CategoriesHandler) Create(c *gin.Context) {
	var req dto.CreateCategoryRequest
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

func (h *CategoriesHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list categories"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CategoriesHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return
	}
	var req dto.UpdateCategoryRequest
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

func (h *CategoriesHandler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return
	}
	if err := h.svc.Deactivate(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deactivated"})
}

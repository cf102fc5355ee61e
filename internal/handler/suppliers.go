package handler

import (
	"net/http"

	"auraops/internal/apierror"
	"auraops/internal/dto"
	"auraops/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SuppliersHandler struct {
	svc service.SupplierService
}

func NewSuppliersHandler(svc service.SupplierService) *SuppliersHandler {
	return &SuppliersHandler{svc: svc}
}

func (h *SuppliersHandler) Create(c *gin.Context) {
	var req dto.CreateSupplierRequest
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

func (h *SuppliersHandler) Get(c *gin.Context) {
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

func (h *SuppliersHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list suppliers"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SuppliersHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return
	}
	var req dto.UpdateSupplierRequest
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

func (h *SuppliersHandler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return
	}
	if err := h.svc.Deactivate(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Supplier deactivated"})
}

// Ingredients lists the ingredients sourced from a supplier.
func (h *SuppliersHandler) Ingredients(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return
	}
	resp, err := h.svc.Ingredients(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Failed to list supplier ingredients"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

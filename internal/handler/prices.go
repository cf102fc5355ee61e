package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"auraops/internal/apierror"
	"auraops/internal/dto"
	"auraops/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// PricesHandler serves the public menu price lookup used by the
// front-of-house display. Read-only, no side effects.
type PricesHandler struct {
	repo     repository.MenuItemRepository
	rdb      *redis.Client
	cacheTTL time.Duration
}

func NewPricesHandler(repo repository.MenuItemRepository, rdb *redis.Client, cacheTTL time.Duration) *PricesHandler {
	return &PricesHandler{repo: repo, rdb: rdb, cacheTTL: cacheTTL}
}

// GetPrice godoc
// @Summary      Menu item price lookup
// @Description  Cached read-only price check for the front-of-house display.
// @Tags         prices
// @Produce      json
// @Param        id path string true "Menu item id"
// @Success      200 {object} dto.PriceResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/menu/price/{id} [get]
func (h *PricesHandler) GetPrice(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return
	}
	ctx := c.Request.Context()
	cacheKey := "price:" + id.String()

	if cached, err := h.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
		var resp dto.PriceResponse
		if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	item, err := h.repo.FindByID(ctx, id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Menu item not found"))
		return
	}

	resp := dto.PriceResponse{
		ID:        item.ID.String(),
		Name:      item.Name,
		SalePrice: item.SalePrice,
	}

	// Populate cache — best effort, ignore errors.
	if b, jsonErr := json.Marshal(resp); jsonErr == nil {
		_ = h.rdb.Set(context.Background(), cacheKey, b, h.cacheTTL).Err()
	}

	c.JSON(http.StatusOK, resp)
}

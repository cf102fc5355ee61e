package dto

import "github.com/shopspring/decimal"

type CreateIngredientRequest struct {
	Name       string          `json:"name"        validate:"required,min=2"`
	Unit       string          `json:"unit"        validate:"required"`
	Stock      decimal.Decimal `json:"stock"       validate:"min=0"`
	MinStock   decimal.Decimal `json:"min_stock"   validate:"min=0"`
	SupplierID *string         `json:"supplier_id" validate:"omitempty,uuid"`
}

type UpdateIngredientRequest struct {
	Name       string          `json:"name"        validate:"required,min=2"`
	Unit       string          `json:"unit"        validate:"required"`
	MinStock   decimal.Decimal `json:"min_stock"   validate:"min=0"`
	SupplierID *string         `json:"supplier_id" validate:"omitempty,uuid"`
}

// AdjustStockRequest applies a signed manual correction to current stock.
type AdjustStockRequest struct {
	Delta  decimal.Decimal `json:"delta"  validate:"required"`
	Reason string          `json:"reason" validate:"required,min=3"`
}

// RestockRequest adds incoming stock and stamps last_ordered.
type RestockRequest struct {
	Quantity   decimal.Decimal `json:"quantity"    validate:"required"`
	SupplierID *string         `json:"supplier_id" validate:"omitempty,uuid"`
	Reason     string          `json:"reason"`
}

type IngredientResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinStock     decimal.Decimal `json:"min_stock"`
	LastOrdered  *string         `json:"last_ordered"`
	SupplierID   *string         `json:"supplier_id"`
	Active       bool            `json:"active"`
}

// IngredientFilter is bound from query string of GET /v1/ingredients.
type IngredientFilter struct {
	Name   string `form:"name"`
	Active string `form:"active"` // "false" | "all" | default active only
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type IngredientListResponse struct {
	Data  []IngredientResponse `json:"data"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}

// LowStockAlertResponse reports one ingredient at or under its minimum.
type LowStockAlertResponse struct {
	IngredientID string          `json:"ingredient_id"`
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinStock     decimal.Decimal `json:"min_stock"`
}

type StockMovementResponse struct {
	ID           string          `json:"id"`
	IngredientID string          `json:"ingredient_id"`
	Ingredient   string          `json:"ingredient"`
	Type         string          `json:"type"`
	Quantity     decimal.Decimal `json:"quantity"`
	StockBefore  decimal.Decimal `json:"stock_before"`
	StockAfter   decimal.Decimal `json:"stock_after"`
	Reason       string          `json:"reason"`
	ReferenceID  *string         `json:"reference_id"`
	CreatedAt    string          `json:"created_at"`
}

type StockMovementListResponse struct {
	Data  []StockMovementResponse `json:"data"`
	Total int64                   `json:"total"`
	Page  int                     `json:"page"`
	Limit int                     `json:"limit"`
}

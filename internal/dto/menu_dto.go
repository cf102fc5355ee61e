package dto

import "github.com/shopspring/decimal"

// RecipeLineRequest is one recipe entry on a create/update menu item request.
type RecipeLineRequest struct {
	IngredientID   *string         `json:"ingredient_id"    validate:"omitempty,uuid"`
	IngredientName string          `json:"ingredient_name"  validate:"required"`
	QtyPerServing  decimal.Decimal `json:"qty_per_serving"  validate:"required"`
	Unit           string          `json:"unit"             validate:"required"`
}

type CreateMenuItemRequest struct {
	Name        string              `json:"name"        validate:"required,min=2"`
	Description *string             `json:"description"`
	Category    string              `json:"category"    validate:"required"`
	SalePrice   decimal.Decimal     `json:"sale_price"  validate:"required,gt=0"`
	UnitCost    decimal.Decimal     `json:"unit_cost"   validate:"min=0"`
	Recipe      []RecipeLineRequest `json:"recipe"      validate:"omitempty,dive"`
}

type UpdateMenuItemRequest struct {
	Name        string              `json:"name"        validate:"required,min=2"`
	Description *string             `json:"description"`
	Category    string              `json:"category"    validate:"required"`
	SalePrice   decimal.Decimal     `json:"sale_price"  validate:"required,gt=0"`
	UnitCost    decimal.Decimal     `json:"unit_cost"   validate:"min=0"`
	Recipe      []RecipeLineRequest `json:"recipe"      validate:"omitempty,dive"`
}

type RecipeLineResponse struct {
	IngredientID   *string         `json:"ingredient_id"`
	IngredientName string          `json:"ingredient_name"`
	QtyPerServing  decimal.Decimal `json:"qty_per_serving"`
	Unit           string          `json:"unit"`
}

type MenuItemResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description *string              `json:"description"`
	Category    string               `json:"category"`
	SalePrice   decimal.Decimal      `json:"sale_price"`
	UnitCost    decimal.Decimal      `json:"unit_cost"`
	MarginPct   decimal.Decimal      `json:"margin_pct"`
	Active      bool                 `json:"active"`
	Recipe      []RecipeLineResponse `json:"recipe"`
	CreatedAt   string               `json:"created_at"`
}

// MenuItemFilter is bound from query string of GET /v1/menu-items.
type MenuItemFilter struct {
	Name     string `form:"name"`
	Category string `form:"category"`
	Active   string `form:"active"` // "false" = inactive, "all" = everything, default = active only
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type MenuItemListResponse struct {
	Data  []MenuItemResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

// PriceResponse is the public cached price lookup payload.
type PriceResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	SalePrice decimal.Decimal `json:"sale_price"`
}

// CostHistoryResponse is one immutable price/cost change record.
type CostHistoryResponse struct {
	ID          string          `json:"id"`
	MenuItemID  string          `json:"menu_item_id"`
	CostBefore  decimal.Decimal `json:"cost_before"`
	CostAfter   decimal.Decimal `json:"cost_after"`
	PriceBefore decimal.Decimal `json:"price_before"`
	PriceAfter  decimal.Decimal `json:"price_after"`
	Reason      string          `json:"reason"`
	CreatedAt   string          `json:"created_at"`
}

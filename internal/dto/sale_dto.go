package dto

import "github.com/shopspring/decimal"

// ─── Deduction engine ────────────────────────────────────────────────────────

// DeductRequest is bound from POST /v1/sales/deduct.
// Quantity defaults to 1 when omitted.
type DeductRequest struct {
	MenuItemID string `json:"menu_item_id" validate:"required,uuid"`
	Quantity   int    `json:"quantity"     validate:"omitempty,min=1"`
}

// DeductionLogEntry is one successful per-ingredient stock decrement.
type DeductionLogEntry struct {
	IngredientID     string          `json:"ingredient_id"`
	IngredientName   string          `json:"ingredient_name"`
	QuantityDeducted decimal.Decimal `json:"quantity_deducted"`
	Unit             string          `json:"unit"`
	StockBefore      decimal.Decimal `json:"stock_before"`
	StockAfter       decimal.Decimal `json:"stock_after"`
}

// DeductionResult is the structured outcome of resolving one menu item sale.
// Success is true iff zero per-line errors occurred. Line errors never abort
// the call — they accumulate in Errors while remaining lines keep deducting.
type DeductionResult struct {
	Success      bool   `json:"success"`
	MenuItemID   string `json:"menu_item_id"`
	MenuItemName string `json:"menu_item_name"`
	QuantitySold int    `json:"quantity_sold"`
	// UnitPrice / UnitCost are snapshots taken on the single menu item fetch,
	// so the sale orchestrator prices lines without a second lookup.
	UnitPrice    decimal.Decimal     `json:"unit_price"`
	UnitCost     decimal.Decimal     `json:"unit_cost"`
	DeductionLog []DeductionLogEntry `json:"deduction_log"`
	Errors       []string            `json:"errors,omitempty"`
	// LowStock lists ingredient ids whose stock fell to or under min_stock
	// during this deduction — the orchestrator enqueues alerts from it.
	LowStock  []string `json:"low_stock,omitempty"`
	Timestamp string   `json:"timestamp"`
}

// ─── Sale transaction ────────────────────────────────────────────────────────

type SaleLineRequest struct {
	MenuItemID string `json:"menu_item_id" validate:"required,uuid"`
	Quantity   int    `json:"quantity"     validate:"required,min=1"`
}

// ProcessSaleRequest is bound from POST /v1/sales.
type ProcessSaleRequest struct {
	Items      []SaleLineRequest `json:"items"       validate:"required,min=1,dive"`
	StaffEmail string            `json:"staff_email" validate:"required,email"`
	StaffName  string            `json:"staff_name"  validate:"required"`
	SaleType   string            `json:"sale_type"   validate:"omitempty,oneof=dine_in takeaway delivery"`
}

type SaleItemResponse struct {
	MenuItemName string          `json:"menu_item_name"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	TotalCost    decimal.Decimal `json:"total_cost"`
}

type SaleResponse struct {
	ID            string              `json:"id"`
	SaleNumber    string              `json:"sale_number"`
	SaleType      string              `json:"sale_type"`
	Items         []SaleItemResponse  `json:"items"`
	Subtotal      decimal.Decimal     `json:"subtotal"`
	TotalCost     decimal.Decimal     `json:"total_cost"`
	GrossProfit   decimal.Decimal     `json:"gross_profit"`
	GPPercent     decimal.Decimal     `json:"gp_percent"`
	StockDeducted bool                `json:"stock_deducted"`
	DeductionLog  []DeductionLogEntry `json:"deduction_log"`
	StaffEmail    string              `json:"staff_email"`
	StaffName     string              `json:"staff_name"`
	CreatedAt     string              `json:"created_at"`
}

// SaleResult is the outcome of one whole checkout. Warnings is present iff
// at least one line had deduction errors (the sale is still persisted, with
// stock_deducted=false).
type SaleResult struct {
	Success          bool              `json:"success"`
	Sale             SaleResponse      `json:"sale"`
	DeductionResults []DeductionResult `json:"deduction_results"`
	Warnings         *string           `json:"warnings,omitempty"`
}

// ─── Filter / List ───────────────────────────────────────────────────────────

// SaleFilter is bound from query string of GET /v1/sales.
type SaleFilter struct {
	Date     string `form:"date"` // YYYY-MM-DD; empty = today
	SaleType string `form:"sale_type"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type SaleListResponse struct {
	Data  []SaleResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale is the append-only audit record of one checkout. It is created exactly
// once per transaction and never mutated afterward — it stays the durable
// record even when some inventory writes failed (StockDeducted=false).
type Sale struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	// SaleNumber is a human-auditable display number: prefix + a value from
	// a PostgreSQL sequence, so it is unique by assignment.
	SaleNumber  string          `gorm:"uniqueIndex;not null"`
	SaleType    string          `gorm:"not null;default:'dine_in'"` // dine_in | takeaway | delivery
	Subtotal    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalCost   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	GrossProfit decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	GPPercent   decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	// StockDeducted is true only when zero deduction errors occurred across
	// every line of the transaction.
	StockDeducted bool `gorm:"not null"`
	// DeductionLog holds the full concatenated per-ingredient deduction log
	// across all lines, serialized as JSON.
	DeductionLog string  `gorm:"type:jsonb;not null;default:'[]'"`
	Warnings     *string
	StaffEmail   string `gorm:"not null"`
	StaffName    string `gorm:"not null"`
	CreatedAt    time.Time

	Items []SaleItem `gorm:"foreignKey:SaleID"`
}

// SaleItem carries the resolved name/price/cost snapshot at sale time,
// not a live menu item reference.
type SaleItem struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	MenuItemID   *uuid.UUID `gorm:"type:uuid"`
	MenuItemName string     `gorm:"not null"`
	Quantity     int             `gorm:"not null"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	UnitCost     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	TotalPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalCost    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt    time.Time
}

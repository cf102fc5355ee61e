package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CostHistory records every price/cost change on a menu item.
// Records are immutable — never deleted or modified.
type CostHistory struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MenuItemID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	CostBefore  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CostAfter   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PriceBefore decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PriceAfter  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Reason      string          `gorm:"not null;default:'manual'"` // manual | supplier_update
	CreatedAt   time.Time

	MenuItem MenuItem `gorm:"foreignKey:MenuItemID"`
}

// TableName overrides GORM's default pluralization.
func (CostHistory) TableName() string { return "cost_history" }

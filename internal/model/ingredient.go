package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ingredient is an inventory unit. CurrentStock is fractional (liters, kg)
// and never goes negative through the sale path: decrements are applied with
// a conditional update that refuses underflow.
//
// LastOrdered is set only by the restocking flow and passed through verbatim
// by every deduction.
type Ingredient struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string          `gorm:"index;not null"`
	Unit         string          `gorm:"not null;default:'unit'"` // unit, kg, g, L, ml
	CurrentStock decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	MinStock     decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	LastOrdered  *time.Time
	SupplierID   *uuid.UUID `gorm:"type:uuid;index"`
	Active       bool       `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Supplier *Supplier `gorm:"foreignKey:SupplierID"`
}

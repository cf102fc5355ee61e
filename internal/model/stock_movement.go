package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockMovement records every stock change on an ingredient.
// Created automatically on sale deductions, restocks and manual adjustments.
// Movements are NEVER modified or deleted — corrections create new entries.
type StockMovement struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	IngredientID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type         string          `gorm:"not null"`                  // "sale" | "restock" | "adjustment"
	Quantity     decimal.Decimal `gorm:"type:decimal(12,3);not null"` // positive = in, negative = out
	StockBefore  decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	StockAfter   decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	Reason       string
	ReferenceID  *uuid.UUID `gorm:"type:uuid"` // sale_id when Type = "sale"
	CreatedAt    time.Time

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID"`
}

// TableName overrides GORM's default pluralization.
func (StockMovement) TableName() string { return "stock_movements" }

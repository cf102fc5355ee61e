package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MenuItem is a sellable catalog entry. Its recipe (RecipeLine rows) drives
// the inventory deduction engine: an item with an empty recipe cannot be sold.
type MenuItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"index;not null"`
	Description *string
	Category    string          `gorm:"not null;default:'general'"`
	SalePrice   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	UnitCost    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	// MarginPct is derived from (SalePrice - UnitCost) / UnitCost * 100
	MarginPct decimal.Decimal `gorm:"type:decimal(5,2)"`
	Active    bool            `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Recipe []RecipeLine `gorm:"foreignKey:MenuItemID"`
}

// RecipeLine is one entry of a menu item's recipe: the ingredient consumed
// and the quantity per single unit sold. IngredientID is nullable — a line
// whose reference was cleared is skipped with a logged reason at sale time
// rather than aborting the sale.
type RecipeLine struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MenuItemID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	IngredientID *uuid.UUID `gorm:"type:uuid;index"`
	// IngredientName is a display snapshot kept on the line so the recipe
	// stays readable even when the ingredient reference is gone.
	IngredientName string          `gorm:"not null"`
	QtyPerServing  decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	Unit           string          `gorm:"not null;default:'unit'"`
	CreatedAt      time.Time

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID"`
}

// TableName overrides GORM's pluralization (recipe_lines, not recipe_line).
func (RecipeLine) TableName() string { return "recipe_lines" }

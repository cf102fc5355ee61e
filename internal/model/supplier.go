package model

import (
	"time"

	"github.com/google/uuid"
)

// Supplier is a vendor that ingredients are restocked from.
type Supplier struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"uniqueIndex;not null"`
	Email     *string
	Phone     *string
	Notes     *string
	Active    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

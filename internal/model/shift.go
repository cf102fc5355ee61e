package model

import (
	"time"

	"github.com/google/uuid"
)

// Shift represents the lifecycle of one staff check-in at a station.
// Status: "open" | "closed"
type Shift struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Station    string    `gorm:"not null;index"` // kitchen | front | bar
	StaffEmail string    `gorm:"not null;index"`
	StaffName  string    `gorm:"not null"`
	Status     string    `gorm:"type:varchar(20);not null;default:'open'"`
	Notes      *string
	OpenedAt   time.Time
	ClosedAt   *time.Time
}

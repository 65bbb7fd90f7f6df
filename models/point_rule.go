package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PointRule maps a product category to a THB-per-point exchange rate.
// Categories are unique so rule lookup never depends on row order.
type PointRule struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Category    string    `gorm:"not null;uniqueIndex" json:"category"`
	THBPerPoint float64   `gorm:"type:decimal(10,2);not null" json:"thbPerPoint"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (r *PointRule) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}

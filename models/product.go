package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ProductActive   = "Active"
	ProductInactive = "Inactive"
)

type Product struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name     string    `gorm:"not null" json:"name"`
	Price    float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Category string    `gorm:"default:'General'" json:"category"`
	Status   string    `gorm:"type:varchar(10);default:'Active'" json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}

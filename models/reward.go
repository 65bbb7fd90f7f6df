package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Reward struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name   string    `gorm:"not null" json:"name"`
	Points int       `gorm:"not null" json:"points"` // redemption cost

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (r *Reward) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GreetingLog records each birthday SMS attempt.
type GreetingLog struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	MemberID     uuid.UUID `gorm:"type:uuid;index;not null" json:"memberId"`
	Message      string    `gorm:"type:text" json:"message"`
	Status       string    `gorm:"type:varchar(20)" json:"status"` // sent, failed
	ErrorMessage string    `gorm:"type:text" json:"errorMessage,omitempty"`
	SentAt       time.Time `json:"sentAt"`

	CreatedAt time.Time `json:"createdAt"`
}

func (g *GreetingLog) BeforeCreate(tx *gorm.DB) (err error) {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return
}

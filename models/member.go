package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Member struct {
	ID       uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Name     string     `gorm:"not null" json:"name"`
	Phone    string     `gorm:"not null;uniqueIndex" json:"phone"`
	Birthday *time.Time `json:"birthday"`

	// Running balance; every change is paired with a Transaction row
	// in the same database transaction.
	Points int `gorm:"not null;default:0" json:"points"`

	Transactions []Transaction `gorm:"foreignKey:MemberID" json:"-"`
	UnpaidDebts  []UnpaidDebt  `gorm:"foreignKey:CustomerID" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (m *Member) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DebtUnpaid = "unpaid"
	DebtPaid   = "paid"
)

// UnpaidDebt records a sale that was not settled immediately. Total is
// computed once at creation from the item snapshots and never
// recalculated.
type UnpaidDebt struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null" json:"customerId"`

	Items []DebtItem `gorm:"foreignKey:DebtID;constraint:OnDelete:CASCADE" json:"items"`
	Total float64    `gorm:"type:decimal(10,2);not null" json:"total"`

	Status        string     `gorm:"type:varchar(10);index;default:'unpaid'" json:"status"`
	PaidAt        *time.Time `json:"paidAt"`
	PaymentMethod string     `json:"paymentMethod,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DebtItem is a snapshot of one sold unit at debt-creation time, so
// later catalog edits cannot change what was owed.
type DebtItem struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	DebtID   uuid.UUID `gorm:"type:uuid;index;not null" json:"debtId"`
	Position int       `gorm:"not null" json:"position"`
	Name     string    `gorm:"not null" json:"name"`
	Price    float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Category string    `json:"category"`
}

func (d *UnpaidDebt) BeforeCreate(tx *gorm.DB) (err error) {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return
}

func (i *DebtItem) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return
}

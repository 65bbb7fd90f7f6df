package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TransactionSale       = "sale"
	TransactionAccumulate = "accumulate"
	TransactionRedeem     = "redeem"
)

// Transaction is the append-only points ledger. Points are stored
// positive; sale and accumulate add to the balance, redeem subtracts.
// Rows are never updated or deleted.
type Transaction struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	MemberID      uuid.UUID `gorm:"type:uuid;index;not null" json:"memberId"`
	Type          string    `gorm:"type:varchar(20);index;not null" json:"type"`
	Points        int       `gorm:"not null" json:"points"`
	Details       string    `json:"details"`
	PaymentMethod string    `json:"paymentMethod,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}

// services/ledger.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"loyaltypos-backend/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Categories with no point rule fall back to 10 THB per point.
const DefaultTHBPerPoint = 10

// SaleItem is one sold unit at point of sale; quantity is expressed by
// repeating the item.
type SaleItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
}

type SaleResult struct {
	PointsEarned int        `json:"pointsEarned"`
	Total        float64    `json:"total"`
	NewBalance   int        `json:"newBalance"`
	DebtID       *uuid.UUID `json:"debtId,omitempty"`
}

// LedgerService owns every mutation of a member's point balance. Each
// balance change and its transaction-log append run in one database
// transaction so the balance can never drift from the ledger.
type LedgerService struct {
	db *gorm.DB
}

func NewLedgerService(db *gorm.DB) *LedgerService {
	return &LedgerService{db: db}
}

// CalculatePoints awards floor(price / thbPerPoint) per item, using the
// rule matching the item's category or the default rate when none does.
// Truncation is per line, so regrouping items can change the sum, but
// the same item list always yields the same total.
func CalculatePoints(items []SaleItem, rules []models.PointRule) int {
	total := 0
	for _, item := range items {
		rate := float64(DefaultTHBPerPoint)
		for _, rule := range rules {
			if rule.Category == item.Category {
				rate = rule.THBPerPoint
				break
			}
		}
		total += pointsFor(item.Price, rate)
	}
	return total
}

// ValidateExchangeRate rejects rates the calculator could not divide
// by. The HTTP bindings enforce the same bound; this guard covers
// callers that reach the store without them.
func ValidateExchangeRate(thbPerPoint float64) error {
	if thbPerPoint <= 0 {
		return ErrInvalidRate
	}
	return nil
}

// pointsFor divides through decimals so prices like 0.3/0.1 don't lose
// a point to float rounding.
func pointsFor(price, thbPerPoint float64) int {
	if price <= 0 || thbPerPoint <= 0 {
		return 0
	}
	quotient := decimal.NewFromFloat(price).Div(decimal.NewFromFloat(thbPerPoint))
	return int(quotient.Floor().IntPart())
}

// ManualAccruePoints converts a purchase amount to points at the default
// rate and credits the member found by exact phone match.
func (s *LedgerService) ManualAccruePoints(ctx context.Context, phone string, amount float64) (*SaleResult, error) {
	points := pointsFor(amount, DefaultTHBPerPoint)

	var result SaleResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		member, err := findMemberByPhone(tx, phone)
		if err != nil {
			return err
		}
		if err := adjustBalance(tx, member.ID, points); err != nil {
			return err
		}
		txn := models.Transaction{
			MemberID: member.ID,
			Type:     models.TransactionAccumulate,
			Points:   points,
			Details:  fmt.Sprintf("Accumulated from a %.2f THB purchase", amount),
		}
		if err := tx.Create(&txn).Error; err != nil {
			return err
		}
		result = SaleResult{PointsEarned: points, Total: amount, NewBalance: member.Points + points}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// RecordSale accrues points for the sold items and appends the sale to
// the ledger. With deferred set, the unpaid debt is created in the same
// transaction, with item snapshots and a total fixed at creation time.
func (s *LedgerService) RecordSale(ctx context.Context, phone string, items []SaleItem, paymentMethod string, deferred bool) (*SaleResult, error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}

	var rules []models.PointRule
	if err := s.db.WithContext(ctx).Find(&rules).Error; err != nil {
		return nil, err
	}
	points := CalculatePoints(items, rules)

	var total float64
	for _, item := range items {
		total += item.Price
	}

	var result SaleResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		member, err := findMemberByPhone(tx, phone)
		if err != nil {
			return err
		}
		if err := adjustBalance(tx, member.ID, points); err != nil {
			return err
		}
		txn := models.Transaction{
			MemberID:      member.ID,
			Type:          models.TransactionSale,
			Points:        points,
			PaymentMethod: paymentMethod,
			Details:       fmt.Sprintf("Sale of %d item(s) totalling %.2f THB", len(items), total),
		}
		if err := tx.Create(&txn).Error; err != nil {
			return err
		}

		result = SaleResult{PointsEarned: points, Total: total, NewBalance: member.Points + points}

		if deferred {
			debt := models.UnpaidDebt{
				CustomerID: member.ID,
				Total:      total,
				Status:     models.DebtUnpaid,
			}
			for i, item := range items {
				debt.Items = append(debt.Items, models.DebtItem{
					Position: i,
					Name:     item.Name,
					Price:    item.Price,
					Category: item.Category,
				})
			}
			if err := tx.Create(&debt).Error; err != nil {
				return err
			}
			result.DebtID = &debt.ID
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// RedeemReward subtracts the reward cost from the member's balance and
// appends the redeem transaction. A balance below the cost fails with
// ErrInsufficientPoints and leaves the balance untouched.
func (s *LedgerService) RedeemReward(ctx context.Context, phone string, rewardID uuid.UUID) (*SaleResult, error) {
	var result SaleResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		member, err := findMemberByPhone(tx, phone)
		if err != nil {
			return err
		}

		var reward models.Reward
		if err := tx.First(&reward, "id = ?", rewardID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRewardNotFound
			}
			return err
		}

		// Guarded update: the points >= cost predicate makes the
		// debit safe under concurrent redemptions.
		res := tx.Model(&models.Member{}).
			Where("id = ? AND points >= ?", member.ID, reward.Points).
			Update("points", gorm.Expr("points - ?", reward.Points))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientPoints
		}

		txn := models.Transaction{
			MemberID: member.ID,
			Type:     models.TransactionRedeem,
			Points:   reward.Points,
			Details:  "Redeemed reward: " + reward.Name,
		}
		if err := tx.Create(&txn).Error; err != nil {
			return err
		}

		result = SaleResult{PointsEarned: -reward.Points, NewBalance: member.Points - reward.Points}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// SettleDebts marks every selected debt paid with an identical paidAt
// and payment method. All-or-nothing: an unknown or already-paid id
// rolls the whole batch back.
func (s *LedgerService) SettleDebts(ctx context.Context, ids []uuid.UUID, paymentMethod string) (time.Time, error) {
	now := time.Now()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.UnpaidDebt{}).
			Where("id IN ? AND status = ?", ids, models.DebtUnpaid).
			Updates(map[string]interface{}{
				"status":         models.DebtPaid,
				"paid_at":        &now,
				"payment_method": paymentMethod,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != int64(len(ids)) {
			return ErrDebtsNotSettleable
		}
		return nil
	})
	if err != nil {
		return time.Time{}, err
	}
	return now, nil
}

func findMemberByPhone(tx *gorm.DB, phone string) (*models.Member, error) {
	var member models.Member
	if err := tx.Where("phone = ?", phone).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return &member, nil
}

func adjustBalance(tx *gorm.DB, memberID uuid.UUID, delta int) error {
	res := tx.Model(&models.Member{}).
		Where("id = ?", memberID).
		Update("points", gorm.Expr("points + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrMemberNotFound
	}
	return nil
}

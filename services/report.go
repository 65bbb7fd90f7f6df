// services/report.go
package services

import (
	"context"
	"sort"
	"time"

	"loyaltypos-backend/models"
	"loyaltypos-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const PaymentMethodCash = "Cash"

// DailySummary is the end-of-day drawer report. Sale figures are in
// points (the original counter report counts sale points as THB at the
// default rate); payments received are debt totals in THB.
type DailySummary struct {
	Date                 string         `json:"date"`
	TotalSales           int            `json:"totalSales"`
	NewUnpaidDebts       int64          `json:"newUnpaidDebts"`
	PaymentsReceived     float64        `json:"paymentsReceived"`
	ExpectedCash         float64        `json:"expectedCash"`
	SalesByPaymentMethod map[string]int `json:"salesByPaymentMethod"`
}

type LoyalCustomer struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Phone             string    `json:"phone"`
	Points            int       `json:"points"`
	TotalPurchases    int       `json:"totalPurchases"`
	AccumulatedAmount int       `json:"accumulatedAmount"`
	UnpaidDebts       int       `json:"unpaidDebts"`
}

type DebtGroup struct {
	CustomerName string              `json:"customerName"`
	Total        float64             `json:"total"`
	Debts        []models.UnpaidDebt `json:"debts"`
}

// ReportService runs read-only reductions over the ledger and the debt
// book. Figures are as of the read time; concurrent writes may skew
// them, which this domain tolerates.
type ReportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

// GetDailySummary reports on the local midnight-to-midnight window of
// the given day.
func (s *ReportService) GetDailySummary(ctx context.Context, day time.Time) (*DailySummary, error) {
	start := utils.BeginningOfDay(day)
	end := utils.EndOfDay(day)

	var sales []models.Transaction
	if err := s.db.WithContext(ctx).
		Where("type = ? AND created_at >= ? AND created_at < ?", models.TransactionSale, start, end).
		Find(&sales).Error; err != nil {
		return nil, err
	}

	var newDebts int64
	if err := s.db.WithContext(ctx).Model(&models.UnpaidDebt{}).
		Where("created_at >= ? AND created_at < ?", start, end).
		Count(&newDebts).Error; err != nil {
		return nil, err
	}

	var paidDebts []models.UnpaidDebt
	if err := s.db.WithContext(ctx).
		Where("status = ? AND paid_at >= ? AND paid_at < ?", models.DebtPaid, start, end).
		Find(&paidDebts).Error; err != nil {
		return nil, err
	}

	summary := BuildDailySummary(sales, paidDebts, newDebts)
	summary.Date = start.Format("2006-01-02")
	return &summary, nil
}

// BuildDailySummary reduces one day of sales and settled debts.
func BuildDailySummary(sales []models.Transaction, paidDebts []models.UnpaidDebt, newDebts int64) DailySummary {
	summary := DailySummary{
		NewUnpaidDebts:       newDebts,
		SalesByPaymentMethod: map[string]int{},
	}

	for _, sale := range sales {
		summary.TotalSales += sale.Points

		method := sale.PaymentMethod
		if method == "" {
			method = "Unknown"
		}
		summary.SalesByPaymentMethod[method] += sale.Points

		if sale.PaymentMethod == PaymentMethodCash {
			summary.ExpectedCash += float64(sale.Points)
		}
	}

	for _, debt := range paidDebts {
		summary.PaymentsReceived += debt.Total
		if debt.PaymentMethod == PaymentMethodCash {
			summary.ExpectedCash += debt.Total
		}
	}

	return summary
}

// GetLoyalCustomers ranks every member by sale-transaction count.
func (s *ReportService) GetLoyalCustomers(ctx context.Context) ([]LoyalCustomer, error) {
	var members []models.Member
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&members).Error; err != nil {
		return nil, err
	}

	type saleRow struct {
		MemberID  uuid.UUID
		Purchases int
		Points    int
	}
	var saleRows []saleRow
	if err := s.db.WithContext(ctx).Model(&models.Transaction{}).
		Select("member_id, COUNT(*) AS purchases, COALESCE(SUM(points), 0) AS points").
		Where("type = ?", models.TransactionSale).
		Group("member_id").
		Scan(&saleRows).Error; err != nil {
		return nil, err
	}

	type debtRow struct {
		CustomerID uuid.UUID
		Count      int
	}
	var debtRows []debtRow
	if err := s.db.WithContext(ctx).Model(&models.UnpaidDebt{}).
		Select("customer_id, COUNT(*) AS count").
		Where("status = ?", models.DebtUnpaid).
		Group("customer_id").
		Scan(&debtRows).Error; err != nil {
		return nil, err
	}

	purchases := make(map[uuid.UUID]saleRow, len(saleRows))
	for _, row := range saleRows {
		purchases[row.MemberID] = row
	}
	unpaid := make(map[uuid.UUID]int, len(debtRows))
	for _, row := range debtRows {
		unpaid[row.CustomerID] = row.Count
	}

	ranked := make([]LoyalCustomer, 0, len(members))
	for _, member := range members {
		stat := purchases[member.ID]
		ranked = append(ranked, LoyalCustomer{
			ID:                member.ID,
			Name:              member.Name,
			Phone:             member.Phone,
			Points:            member.Points,
			TotalPurchases:    stat.Purchases,
			AccumulatedAmount: stat.Points,
			UnpaidDebts:       unpaid[member.ID],
		})
	}
	return RankLoyalCustomers(ranked), nil
}

// RankLoyalCustomers sorts descending by purchase count; ties keep
// their incoming order.
func RankLoyalCustomers(customers []LoyalCustomer) []LoyalCustomer {
	sort.SliceStable(customers, func(i, j int) bool {
		return customers[i].TotalPurchases > customers[j].TotalPurchases
	})
	return customers
}

// GetUnpaidDebts lists open debts grouped by the member's current name.
// A rename moves the member's historical debts to the new name.
func (s *ReportService) GetUnpaidDebts(ctx context.Context) ([]DebtGroup, error) {
	var debts []models.UnpaidDebt
	if err := s.db.WithContext(ctx).Preload("Items").
		Where("status = ?", models.DebtUnpaid).
		Order("created_at ASC").
		Find(&debts).Error; err != nil {
		return nil, err
	}

	var members []models.Member
	if err := s.db.WithContext(ctx).Find(&members).Error; err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(members))
	for _, member := range members {
		names[member.ID] = member.Name
	}

	return GroupDebtsByCustomer(debts, names), nil
}

// GroupDebtsByCustomer buckets debts under each customer name in
// first-seen order; debts of unknown members group under "Unknown".
func GroupDebtsByCustomer(debts []models.UnpaidDebt, names map[uuid.UUID]string) []DebtGroup {
	var groups []DebtGroup
	index := map[string]int{}

	for _, debt := range debts {
		name, ok := names[debt.CustomerID]
		if !ok {
			name = "Unknown"
		}
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, DebtGroup{CustomerName: name})
		}
		groups[i].Debts = append(groups[i].Debts, debt)
		groups[i].Total += debt.Total
	}
	return groups
}

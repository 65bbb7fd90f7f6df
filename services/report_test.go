package services

import (
	"context"
	"testing"
	"time"

	"loyaltypos-backend/models"

	"github.com/google/uuid"
)

func TestBuildDailySummary(t *testing.T) {
	sales := []models.Transaction{
		{Type: models.TransactionSale, Points: 8, PaymentMethod: "Cash"},
		{Type: models.TransactionSale, Points: 5, PaymentMethod: "QR Code"},
	}

	summary := BuildDailySummary(sales, nil, 0)

	if summary.TotalSales != 13 {
		t.Errorf("TotalSales = %d, want 13", summary.TotalSales)
	}
	if summary.ExpectedCash != 8 {
		t.Errorf("ExpectedCash = %.2f, want 8", summary.ExpectedCash)
	}
	if summary.SalesByPaymentMethod["Cash"] != 8 {
		t.Errorf("Cash bucket = %d, want 8", summary.SalesByPaymentMethod["Cash"])
	}
	if summary.SalesByPaymentMethod["QR Code"] != 5 {
		t.Errorf("QR Code bucket = %d, want 5", summary.SalesByPaymentMethod["QR Code"])
	}
}

func TestBuildDailySummaryUnknownMethod(t *testing.T) {
	sales := []models.Transaction{
		{Type: models.TransactionSale, Points: 3},
	}

	summary := BuildDailySummary(sales, nil, 0)

	if summary.SalesByPaymentMethod["Unknown"] != 3 {
		t.Errorf("Unknown bucket = %d, want 3", summary.SalesByPaymentMethod["Unknown"])
	}
	if summary.ExpectedCash != 0 {
		t.Errorf("ExpectedCash = %.2f, want 0", summary.ExpectedCash)
	}
}

func TestBuildDailySummaryPaidDebts(t *testing.T) {
	sales := []models.Transaction{
		{Type: models.TransactionSale, Points: 8, PaymentMethod: "Cash"},
	}
	paidDebts := []models.UnpaidDebt{
		{Total: 120, Status: models.DebtPaid, PaymentMethod: "Cash"},
		{Total: 45, Status: models.DebtPaid, PaymentMethod: "QR Code"},
	}

	summary := BuildDailySummary(sales, paidDebts, 2)

	if summary.PaymentsReceived != 165 {
		t.Errorf("PaymentsReceived = %.2f, want 165", summary.PaymentsReceived)
	}
	if summary.ExpectedCash != 128 {
		t.Errorf("ExpectedCash = %.2f, want 128", summary.ExpectedCash)
	}
	if summary.NewUnpaidDebts != 2 {
		t.Errorf("NewUnpaidDebts = %d, want 2", summary.NewUnpaidDebts)
	}
}

func TestRankLoyalCustomersByPurchaseCount(t *testing.T) {
	customers := []LoyalCustomer{
		{Name: "Few", TotalPurchases: 2, AccumulatedAmount: 9999},
		{Name: "Many", TotalPurchases: 5, AccumulatedAmount: 1},
	}

	ranked := RankLoyalCustomers(customers)

	if ranked[0].Name != "Many" {
		t.Errorf("top customer = %q, want Many (purchase count outranks accumulated amount)", ranked[0].Name)
	}
}

func TestRankLoyalCustomersStableTies(t *testing.T) {
	customers := []LoyalCustomer{
		{Name: "First", TotalPurchases: 3},
		{Name: "Second", TotalPurchases: 3},
		{Name: "Third", TotalPurchases: 3},
	}

	ranked := RankLoyalCustomers(customers)

	for i, want := range []string{"First", "Second", "Third"} {
		if ranked[i].Name != want {
			t.Errorf("position %d = %q, want %q", i, ranked[i].Name, want)
		}
	}
}

func TestGroupDebtsByCustomer(t *testing.T) {
	alice := uuid.New()
	bob := uuid.New()
	ghost := uuid.New()
	names := map[uuid.UUID]string{alice: "Alice", bob: "Bob"}

	debts := []models.UnpaidDebt{
		{CustomerID: alice, Total: 50},
		{CustomerID: bob, Total: 30},
		{CustomerID: alice, Total: 20},
		{CustomerID: ghost, Total: 10},
	}

	groups := GroupDebtsByCustomer(debts, names)

	if len(groups) != 3 {
		t.Fatalf("got %d groups, want 3", len(groups))
	}
	if groups[0].CustomerName != "Alice" || groups[0].Total != 70 || len(groups[0].Debts) != 2 {
		t.Errorf("Alice group = %+v", groups[0])
	}
	if groups[1].CustomerName != "Bob" || groups[1].Total != 30 {
		t.Errorf("Bob group = %+v", groups[1])
	}
	if groups[2].CustomerName != "Unknown" || groups[2].Total != 10 {
		t.Errorf("Unknown group = %+v", groups[2])
	}
}

func TestGetDailySummaryDayWindow(t *testing.T) {
	db := setupTestDB(t)
	reports := NewReportService(db)
	member := createMember(t, db, "Alice", "0812345678")

	firstInstant := time.Date(2026, 8, 31, 0, 0, 0, 0, time.Local)
	lastSecond := time.Date(2026, 8, 31, 23, 59, 59, 0, time.Local)
	nextMidnight := time.Date(2026, 9, 1, 0, 0, 0, 0, time.Local)
	priorDay := time.Date(2026, 8, 30, 23, 59, 59, 0, time.Local)
	noon := time.Date(2026, 8, 31, 12, 0, 0, 0, time.Local)

	txns := []models.Transaction{
		{MemberID: member.ID, Type: models.TransactionSale, Points: 1, PaymentMethod: "Cash", CreatedAt: firstInstant},
		{MemberID: member.ID, Type: models.TransactionSale, Points: 2, PaymentMethod: "QR Code", CreatedAt: lastSecond},
		{MemberID: member.ID, Type: models.TransactionSale, Points: 4, PaymentMethod: "Cash", CreatedAt: nextMidnight},
		{MemberID: member.ID, Type: models.TransactionSale, Points: 8, PaymentMethod: "Cash", CreatedAt: priorDay},
		{MemberID: member.ID, Type: models.TransactionAccumulate, Points: 16, CreatedAt: noon},
	}
	for i := range txns {
		if err := db.Create(&txns[i]).Error; err != nil {
			t.Fatalf("create transaction: %v", err)
		}
	}

	debts := []models.UnpaidDebt{
		{CustomerID: member.ID, Total: 50, Status: models.DebtUnpaid, CreatedAt: noon},
		{CustomerID: member.ID, Total: 120, Status: models.DebtPaid, PaidAt: &noon, PaymentMethod: "Cash", CreatedAt: priorDay},
		{CustomerID: member.ID, Total: 999, Status: models.DebtPaid, PaidAt: &nextMidnight, PaymentMethod: "Cash", CreatedAt: priorDay},
	}
	for i := range debts {
		if err := db.Create(&debts[i]).Error; err != nil {
			t.Fatalf("create debt: %v", err)
		}
	}

	summary, err := reports.GetDailySummary(context.Background(), noon)
	if err != nil {
		t.Fatalf("daily summary: %v", err)
	}

	// Only the midnight-to-midnight window of Aug 31 counts: the
	// first-instant and last-second sales are in, the next-midnight
	// and prior-day sales are out, the accumulate row is not a sale.
	if summary.TotalSales != 3 {
		t.Errorf("TotalSales = %d, want 3", summary.TotalSales)
	}
	if summary.Date != "2026-08-31" {
		t.Errorf("Date = %q, want 2026-08-31", summary.Date)
	}
	if summary.SalesByPaymentMethod["Cash"] != 1 {
		t.Errorf("Cash bucket = %d, want 1", summary.SalesByPaymentMethod["Cash"])
	}
	if summary.SalesByPaymentMethod["QR Code"] != 2 {
		t.Errorf("QR Code bucket = %d, want 2", summary.SalesByPaymentMethod["QR Code"])
	}
	if summary.NewUnpaidDebts != 1 {
		t.Errorf("NewUnpaidDebts = %d, want 1 (only the debt created that day)", summary.NewUnpaidDebts)
	}
	if summary.PaymentsReceived != 120 {
		t.Errorf("PaymentsReceived = %.2f, want 120 (paidAt at next midnight excluded)", summary.PaymentsReceived)
	}
	if summary.ExpectedCash != 121 {
		t.Errorf("ExpectedCash = %.2f, want 121", summary.ExpectedCash)
	}
}

func TestGetLoyalCustomersAggregation(t *testing.T) {
	db := setupTestDB(t)
	reports := NewReportService(db)
	alice := createMember(t, db, "Alice", "0812345678")
	bob := createMember(t, db, "Bob", "0898765432")

	for i := 0; i < 5; i++ {
		txn := models.Transaction{MemberID: bob.ID, Type: models.TransactionSale, Points: 1}
		if err := db.Create(&txn).Error; err != nil {
			t.Fatalf("create transaction: %v", err)
		}
	}
	for i := 0; i < 2; i++ {
		txn := models.Transaction{MemberID: alice.ID, Type: models.TransactionSale, Points: 10}
		if err := db.Create(&txn).Error; err != nil {
			t.Fatalf("create transaction: %v", err)
		}
	}
	// Accumulate rows do not count as purchases
	accrual := models.Transaction{MemberID: alice.ID, Type: models.TransactionAccumulate, Points: 100}
	if err := db.Create(&accrual).Error; err != nil {
		t.Fatalf("create transaction: %v", err)
	}

	open := models.UnpaidDebt{CustomerID: alice.ID, Total: 50, Status: models.DebtUnpaid}
	settled := models.UnpaidDebt{CustomerID: bob.ID, Total: 70, Status: models.DebtPaid}
	for _, debt := range []*models.UnpaidDebt{&open, &settled} {
		if err := db.Create(debt).Error; err != nil {
			t.Fatalf("create debt: %v", err)
		}
	}

	ranked, err := reports.GetLoyalCustomers(context.Background())
	if err != nil {
		t.Fatalf("loyal customers: %v", err)
	}
	if len(ranked) != 2 {
		t.Fatalf("got %d customers, want 2", len(ranked))
	}

	if ranked[0].Name != "Bob" || ranked[0].TotalPurchases != 5 || ranked[0].AccumulatedAmount != 5 {
		t.Errorf("top customer = %+v, want Bob with 5 purchases / 5 accumulated", ranked[0])
	}
	if ranked[0].UnpaidDebts != 0 {
		t.Errorf("Bob unpaid debts = %d, want 0 (settled debt excluded)", ranked[0].UnpaidDebts)
	}
	if ranked[1].Name != "Alice" || ranked[1].TotalPurchases != 2 || ranked[1].AccumulatedAmount != 20 {
		t.Errorf("second customer = %+v, want Alice with 2 purchases / 20 accumulated", ranked[1])
	}
	if ranked[1].UnpaidDebts != 1 {
		t.Errorf("Alice unpaid debts = %d, want 1", ranked[1].UnpaidDebts)
	}
}

func TestGetUnpaidDebtsGroupsByMemberName(t *testing.T) {
	db := setupTestDB(t)
	reports := NewReportService(db)
	alice := createMember(t, db, "Alice", "0812345678")
	bob := createMember(t, db, "Bob", "0898765432")

	debts := []models.UnpaidDebt{
		{CustomerID: alice.ID, Total: 50, Status: models.DebtUnpaid,
			Items: []models.DebtItem{{Position: 0, Name: "Coffee", Price: 50, Category: "Drinks"}}},
		{CustomerID: bob.ID, Total: 30, Status: models.DebtUnpaid},
		{CustomerID: alice.ID, Total: 20, Status: models.DebtUnpaid},
		{CustomerID: alice.ID, Total: 80, Status: models.DebtPaid},
	}
	for i := range debts {
		if err := db.Create(&debts[i]).Error; err != nil {
			t.Fatalf("create debt: %v", err)
		}
	}

	groups, err := reports.GetUnpaidDebts(context.Background())
	if err != nil {
		t.Fatalf("unpaid debts: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2 (paid debt excluded)", len(groups))
	}

	if groups[0].CustomerName != "Alice" || groups[0].Total != 70 || len(groups[0].Debts) != 2 {
		t.Errorf("Alice group = name %q, total %.2f, %d debts; want Alice/70/2",
			groups[0].CustomerName, groups[0].Total, len(groups[0].Debts))
	}
	if len(groups[0].Debts[0].Items) != 1 || groups[0].Debts[0].Items[0].Name != "Coffee" {
		t.Errorf("Alice first debt items = %+v, want the Coffee snapshot", groups[0].Debts[0].Items)
	}
	if groups[1].CustomerName != "Bob" || groups[1].Total != 30 {
		t.Errorf("Bob group = name %q, total %.2f; want Bob/30", groups[1].CustomerName, groups[1].Total)
	}
}

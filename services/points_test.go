package services

import (
	"testing"

	"loyaltypos-backend/models"
)

func TestCalculatePointsDefaultRate(t *testing.T) {
	cases := []struct {
		price float64
		want  int
	}{
		{95, 9},
		{100, 10},
		{9, 0},
		{0, 0},
		{10, 1},
	}

	for _, tc := range cases {
		items := []SaleItem{{Name: "Coffee", Price: tc.price, Category: "Drinks"}}
		got := CalculatePoints(items, nil)
		if got != tc.want {
			t.Errorf("price %.2f: got %d points, want %d", tc.price, got, tc.want)
		}
	}
}

func TestCalculatePointsUsesCategoryRule(t *testing.T) {
	rules := []models.PointRule{
		{Category: "Drinks", THBPerPoint: 5},
		{Category: "Desserts", THBPerPoint: 20},
	}

	items := []SaleItem{
		{Name: "Coffee", Price: 50, Category: "Drinks"},   // 10
		{Name: "Cake", Price: 80, Category: "Desserts"},   // 4
		{Name: "Candle", Price: 35, Category: "Misc"},     // default rate: 3
	}

	if got := CalculatePoints(items, rules); got != 17 {
		t.Errorf("got %d points, want 17", got)
	}
}

func TestCalculatePointsFractionalRate(t *testing.T) {
	rules := []models.PointRule{{Category: "Drinks", THBPerPoint: 2.5}}

	items := []SaleItem{{Name: "Tea", Price: 10, Category: "Drinks"}}
	if got := CalculatePoints(items, rules); got != 4 {
		t.Errorf("got %d points, want 4", got)
	}

	// 0.3 / 0.1 must not lose a point to float division
	rules = []models.PointRule{{Category: "Drinks", THBPerPoint: 0.1}}
	items = []SaleItem{{Name: "Tea", Price: 0.3, Category: "Drinks"}}
	if got := CalculatePoints(items, rules); got != 3 {
		t.Errorf("got %d points, want 3", got)
	}
}

func TestCalculatePointsPerItemTruncation(t *testing.T) {
	// Truncation is per line: two 95 THB items earn 18, not floor(190/10)=19
	items := []SaleItem{
		{Name: "A", Price: 95, Category: "Misc"},
		{Name: "B", Price: 95, Category: "Misc"},
	}
	if got := CalculatePoints(items, nil); got != 18 {
		t.Errorf("got %d points, want 18", got)
	}
}

func TestCalculatePointsDeterministic(t *testing.T) {
	rules := []models.PointRule{{Category: "Drinks", THBPerPoint: 7}}
	items := []SaleItem{
		{Name: "Coffee", Price: 50, Category: "Drinks"},
		{Name: "Cake", Price: 80, Category: "Desserts"},
	}

	first := CalculatePoints(items, rules)
	for i := 0; i < 10; i++ {
		if got := CalculatePoints(items, rules); got != first {
			t.Fatalf("run %d: got %d, want %d", i, got, first)
		}
	}
}

func TestCalculatePointsEmptyItems(t *testing.T) {
	if got := CalculatePoints(nil, nil); got != 0 {
		t.Errorf("got %d points for empty sale, want 0", got)
	}
}

func TestValidateExchangeRate(t *testing.T) {
	for _, rate := range []float64{0, -1, -2.5} {
		if err := ValidateExchangeRate(rate); err != ErrInvalidRate {
			t.Errorf("rate %.2f: err = %v, want ErrInvalidRate", rate, err)
		}
	}
	for _, rate := range []float64{0.1, 10, 2.5} {
		if err := ValidateExchangeRate(rate); err != nil {
			t.Errorf("rate %.2f: err = %v, want nil", rate, err)
		}
	}
}

package discount

import (
	"testing"
	"time"

	"github.com/bmartin2011/Fetterman-s-sub000/internal/domain"
	"github.com/bmartin2011/Fetterman-s-sub000/internal/upstream"
)

// 2026-03-02 is a Monday.
var testNow = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

func testEngine() *Engine {
	until := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
	expired := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	return NewEngine([]domain.Discount{
		{
			ID:             "d1",
			Code:           "FIVEOFF",
			Type:           domain.DiscountFixedAmount,
			Value:          500,
			MinOrderAmount: 2500,
			ValidUntil:     &until,
			Active:         true,
		},
		{
			ID:     "d2",
			Code:   "TENPCT",
			Type:   domain.DiscountPercentage,
			Value:  10,
			Active: true,
		},
		{
			ID:                "d3",
			Code:              "TENPCT-CAP",
			Type:              domain.DiscountPercentage,
			Value:             10,
			MaxDiscountAmount: 1000,
			Active:            true,
		},
		{
			ID:         "d4",
			Code:       "OLDCODE",
			Type:       domain.DiscountPercentage,
			Value:      20,
			ValidUntil: &expired,
			Active:     true,
		},
		{
			ID:     "d5",
			Code:   "INACTIVE",
			Type:   domain.DiscountPercentage,
			Value:  50,
			Active: false,
		},
		{
			ID:    "d6",
			Code:  "CONDITIONAL",
			Type:  domain.DiscountPercentage,
			Value: 15,
			Conditions: &domain.DiscountConditions{
				MinQuantity:        3,
				AllowedCategoryIDs: []string{"CAT-SUBS"},
				DaysOfWeek:         []string{"MONDAY"},
				StartTime:          "11:00:00",
				EndTime:            "14:00:00",
			},
			Active: true,
		},
	})
}

func TestValidate_InvalidCode(t *testing.T) {
	result := testEngine().Validate("NOSUCHCODE", nil, 1000, testNow)
	if result.IsValid || result.Error != "invalid discount code" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestValidate_CaseInsensitiveLookup(t *testing.T) {
	result := testEngine().Validate("tenpct", nil, 5000, testNow)
	if !result.IsValid {
		t.Fatalf("expected case-insensitive match: %+v", result)
	}
}

func TestValidate_InactiveCodeNotFound(t *testing.T) {
	result := testEngine().Validate("INACTIVE", nil, 5000, testNow)
	if result.IsValid {
		t.Fatal("inactive discounts must not validate")
	}
}

func TestValidate_Expired(t *testing.T) {
	result := testEngine().Validate("OLDCODE", nil, 5000, testNow)
	if result.IsValid || result.Error != "discount code has expired" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestValidate_MinimumOrderAmount(t *testing.T) {
	// $5 off with $25 minimum at a $20 subtotal
	result := testEngine().Validate("FIVEOFF", nil, 2000, testNow)
	if result.IsValid {
		t.Fatal("expected minimum-amount failure")
	}
	if result.Error != "order minimum of $25.00 not met" {
		t.Fatalf("unexpected message: %q", result.Error)
	}

	// $30 subtotal passes and applies $5.00
	result = testEngine().Validate("FIVEOFF", nil, 3000, testNow)
	if !result.IsValid || result.AppliedAmount != 500 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestValidate_PercentageAmount(t *testing.T) {
	// 10% of $50.00
	result := testEngine().Validate("TENPCT", nil, 5000, testNow)
	if !result.IsValid || result.AppliedAmount != 500 {
		t.Fatalf("expected 500, got %+v", result)
	}
}

func TestValidate_PercentageCappedAtMax(t *testing.T) {
	// 10% of $200.00 would be $20.00, capped at $10.00
	result := testEngine().Validate("TENPCT-CAP", nil, 20000, testNow)
	if !result.IsValid || result.AppliedAmount != 1000 {
		t.Fatalf("expected cap at 1000, got %+v", result)
	}
}

func TestValidate_FixedAmountNeverExceedsSubtotal(t *testing.T) {
	engine := NewEngine([]domain.Discount{
		{ID: "d", Code: "BIGOFF", Type: domain.DiscountFixedAmount, Value: 5000, Active: true},
	})

	result := engine.Validate("BIGOFF", nil, 1200, testNow)
	if !result.IsValid || result.AppliedAmount != 1200 {
		t.Fatalf("fixed discount must not exceed the order, got %+v", result)
	}
}

func TestValidate_Conditions(t *testing.T) {
	subsCart := []domain.CartItem{
		{ProductID: "P1", CategoryIDs: []string{"CAT-SUBS"}, Quantity: 2},
		{ProductID: "P2", CategoryIDs: []string{"CAT-DRINKS"}, Quantity: 1},
	}

	tests := []struct {
		name    string
		cart    []domain.CartItem
		now     time.Time
		isValid bool
	}{
		{"all conditions met", subsCart, testNow, true},
		{
			"below min quantity",
			[]domain.CartItem{{ProductID: "P1", CategoryIDs: []string{"CAT-SUBS"}, Quantity: 2}},
			testNow,
			false,
		},
		{
			"no allowed category in cart",
			[]domain.CartItem{
				{ProductID: "P2", CategoryIDs: []string{"CAT-DRINKS"}, Quantity: 3},
			},
			testNow,
			false,
		},
		{"wrong day", subsCart, testNow.AddDate(0, 0, 1), false},
		{"outside time window", subsCart, time.Date(2026, 3, 2, 16, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := testEngine().Validate("CONDITIONAL", tt.cart, 5000, tt.now)
			if result.IsValid != tt.isValid {
				t.Fatalf("expected isValid=%v, got %+v", tt.isValid, result)
			}
			if !tt.isValid && result.Error == "" {
				t.Fatal("condition failures must carry a reason")
			}
		})
	}
}

func TestValidate_ProductAllowList(t *testing.T) {
	engine := NewEngine([]domain.Discount{
		{
			ID:    "d",
			Code:  "ITEMONLY",
			Type:  domain.DiscountPercentage,
			Value: 10,
			Conditions: &domain.DiscountConditions{
				AllowedProductIDs: []string{"P-SPECIAL"},
			},
			Active: true,
		},
	})

	miss := engine.Validate("ITEMONLY", []domain.CartItem{{ProductID: "P1", Quantity: 1}}, 1000, testNow)
	if miss.IsValid {
		t.Fatal("expected product allow-list failure")
	}

	hit := engine.Validate("ITEMONLY", []domain.CartItem{
		{ProductID: "P1", Quantity: 1},
		{ProductID: "P-SPECIAL", Quantity: 1},
	}, 1000, testNow)
	if !hit.IsValid {
		t.Fatalf("expected allow-list hit, got %+v", hit)
	}
}

func TestMapDiscounts(t *testing.T) {
	raw := []upstream.RawDiscount{
		{
			ID: "D1",
			Data: map[string]interface{}{
				"name":          "Ten Percent",
				"code":          "TEN",
				"discount_type": "FIXED_PERCENTAGE",
				"percentage":    "10.0",
			},
		},
		{
			ID: "D2",
			Data: map[string]interface{}{
				"name":          "Five Off",
				"code":          "FIVE",
				"discount_type": "FIXED_AMOUNT",
				"amount_money":  map[string]interface{}{"amount": float64(500)},
			},
		},
		{ID: "D3"}, // no data: skipped
	}

	discounts := MapDiscounts(raw)
	if len(discounts) != 2 {
		t.Fatalf("expected 2 discounts, got %d", len(discounts))
	}
	if discounts[0].Type != domain.DiscountPercentage || discounts[0].Value != 10 {
		t.Fatalf("unexpected percentage mapping: %+v", discounts[0])
	}
	if discounts[1].Type != domain.DiscountFixedAmount || discounts[1].Value != 500 {
		t.Fatalf("unexpected fixed mapping: %+v", discounts[1])
	}
}

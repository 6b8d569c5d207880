package discount

import (
	"fmt"
	"strings"
	"time"

	"github.com/bmartin2011/Fetterman-s-sub000/internal/domain"
	"github.com/shopspring/decimal"
)

// Engine validates discount codes against cart contents. Business failures
// (unknown code, expired, unmet condition) are structured results with a
// human-readable reason, never errors: code entry is a user-facing flow and
// must not propagate failures to the caller.
type Engine struct {
	discounts []domain.Discount
}

func NewEngine(discounts []domain.Discount) *Engine {
	return &Engine{discounts: discounts}
}

// Validate runs the layered checks in order, short-circuiting on the first
// failure. An unexpected panic anywhere inside degrades to a generic
// invalid result instead of crashing the request.
func (e *Engine) Validate(code string, cartItems []domain.CartItem, subtotal int64, now time.Time) (result domain.DiscountValidation) {
	defer func() {
		if r := recover(); r != nil {
			result = domain.DiscountValidation{IsValid: false, Error: "validation failed"}
		}
	}()

	discount := e.lookup(code)
	if discount == nil {
		return domain.DiscountValidation{IsValid: false, Error: "invalid discount code"}
	}

	if !withinValidityWindow(*discount, now) {
		return domain.DiscountValidation{IsValid: false, Error: "discount code has expired"}
	}

	if discount.MinOrderAmount > 0 && subtotal < discount.MinOrderAmount {
		return domain.DiscountValidation{
			IsValid: false,
			Error:   fmt.Sprintf("order minimum of $%.2f not met", float64(discount.MinOrderAmount)/100),
		}
	}

	if discount.Conditions != nil {
		if reason := checkConditions(*discount.Conditions, cartItems, now); reason != "" {
			return domain.DiscountValidation{IsValid: false, Error: reason}
		}
	}

	applied := computeAmount(*discount, subtotal)

	return domain.DiscountValidation{
		IsValid:       true,
		Discount:      discount,
		AppliedAmount: applied,
	}
}

// lookup finds an active discount by code, case-insensitively.
func (e *Engine) lookup(code string) *domain.Discount {
	code = strings.TrimSpace(code)
	for i := range e.discounts {
		d := &e.discounts[i]
		if d.Active && d.Code != "" && strings.EqualFold(d.Code, code) {
			return d
		}
	}
	return nil
}

func withinValidityWindow(d domain.Discount, now time.Time) bool {
	if d.ValidFrom != nil && now.Before(*d.ValidFrom) {
		return false
	}
	if d.ValidUntil != nil && now.After(*d.ValidUntil) {
		return false
	}
	return true
}

// checkConditions evaluates the structured conditions in order and returns
// the first failure's reason, or "" when every condition passes.
func checkConditions(c domain.DiscountConditions, cartItems []domain.CartItem, now time.Time) string {
	if c.MinQuantity > 0 {
		total := 0
		for _, item := range cartItems {
			total += item.Quantity
		}
		if total < c.MinQuantity {
			return fmt.Sprintf("add at least %d items to use this code", c.MinQuantity)
		}
	}

	if len(c.AllowedProductIDs) > 0 && !anyProductAllowed(c.AllowedProductIDs, cartItems) {
		return "this code does not apply to the items in your cart"
	}

	if len(c.AllowedCategoryIDs) > 0 && !anyCategoryAllowed(c.AllowedCategoryIDs, cartItems) {
		return "this code does not apply to the categories in your cart"
	}

	if len(c.DaysOfWeek) > 0 && !matchesDayOfWeek(c.DaysOfWeek, now) {
		return "this code is not valid today"
	}

	if c.StartTime != "" && c.EndTime != "" && !withinTimeOfDay(c.StartTime, c.EndTime, now) {
		return "this code is not valid at this time"
	}

	return ""
}

func anyProductAllowed(allowed []string, cartItems []domain.CartItem) bool {
	allowedSet := make(map[string]bool, len(allowed))
	for _, id := range allowed {
		allowedSet[id] = true
	}
	for _, item := range cartItems {
		if allowedSet[item.ProductID] {
			return true
		}
	}
	return false
}

func anyCategoryAllowed(allowed []string, cartItems []domain.CartItem) bool {
	allowedSet := make(map[string]bool, len(allowed))
	for _, id := range allowed {
		allowedSet[id] = true
	}
	for _, item := range cartItems {
		for _, categoryID := range item.CategoryIDs {
			if allowedSet[categoryID] {
				return true
			}
		}
	}
	return false
}

func matchesDayOfWeek(days []string, now time.Time) bool {
	weekday := now.Weekday().String()
	for _, day := range days {
		if strings.EqualFold(day, weekday) {
			return true
		}
	}
	return false
}

// withinTimeOfDay mirrors the catalog availability semantics: an end time
// before the start time wraps across midnight.
func withinTimeOfDay(startTime, endTime string, now time.Time) bool {
	start, err := parseTimeOfDay(startTime)
	if err != nil {
		return false
	}
	end, err := parseTimeOfDay(endTime)
	if err != nil {
		return false
	}

	sec := now.Hour()*3600 + now.Minute()*60 + now.Second()
	if end < start {
		return sec >= start || sec <= end
	}
	return sec >= start && sec <= end
}

func parseTimeOfDay(value string) (int, error) {
	t, err := time.Parse("15:04:05", value)
	if err != nil {
		t, err = time.Parse("15:04", value)
		if err != nil {
			return 0, fmt.Errorf("invalid time of day %q: %w", value, err)
		}
	}
	return t.Hour()*3600 + t.Minute()*60 + t.Second(), nil
}

// computeAmount returns the discount in minor units. Percentage amounts are
// rounded half-up via decimal arithmetic and capped at MaxDiscountAmount
// when one is set; fixed amounts never exceed the order subtotal.
func computeAmount(d domain.Discount, subtotal int64) int64 {
	switch d.Type {
	case domain.DiscountPercentage:
		amount := decimal.NewFromInt(subtotal).
			Mul(decimal.NewFromFloat(d.Value)).
			Div(decimal.NewFromInt(100)).
			Round(0).
			IntPart()
		if d.MaxDiscountAmount > 0 && amount > d.MaxDiscountAmount {
			amount = d.MaxDiscountAmount
		}
		return amount
	case domain.DiscountFixedAmount:
		amount := int64(d.Value)
		if amount > subtotal {
			amount = subtotal
		}
		return amount
	default:
		return 0
	}
}

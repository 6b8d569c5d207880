package domain

import "time"

type DiscountType string

const (
	DiscountPercentage  DiscountType = "percentage"
	DiscountFixedAmount DiscountType = "fixed_amount"
	DiscountAutomatic   DiscountType = "automatic"
	DiscountOther       DiscountType = "other"
)

// Discount describes one promotion. Value is a percentage (e.g. 10 for 10%)
// for percentage discounts and a minor-unit amount for fixed-amount discounts.
type Discount struct {
	ID                string              `bson:"id" json:"id"`
	Code              string              `bson:"code,omitempty" json:"code,omitempty"`
	Name              string              `bson:"name" json:"name"`
	Type              DiscountType        `bson:"type" json:"type"`
	Value             float64             `bson:"value" json:"value"`
	MinOrderAmount    int64               `bson:"min_order_amount,omitempty" json:"min_order_amount,omitempty"`
	MaxDiscountAmount int64               `bson:"max_discount_amount,omitempty" json:"max_discount_amount,omitempty"`
	ValidFrom         *time.Time          `bson:"valid_from,omitempty" json:"valid_from,omitempty"`
	ValidUntil        *time.Time          `bson:"valid_until,omitempty" json:"valid_until,omitempty"`
	Conditions        *DiscountConditions `bson:"conditions,omitempty" json:"conditions,omitempty"`
	Active            bool                `bson:"active" json:"active"`
}

// DiscountConditions are layered business rules checked in order during
// validation; any zero-valued field is treated as unset.
type DiscountConditions struct {
	MinQuantity        int      `bson:"min_quantity,omitempty" json:"min_quantity,omitempty"`
	AllowedProductIDs  []string `bson:"allowed_product_ids,omitempty" json:"allowed_product_ids,omitempty"`
	AllowedCategoryIDs []string `bson:"allowed_category_ids,omitempty" json:"allowed_category_ids,omitempty"`
	DaysOfWeek         []string `bson:"days_of_week,omitempty" json:"days_of_week,omitempty"`
	StartTime          string   `bson:"start_time,omitempty" json:"start_time,omitempty"`
	EndTime            string   `bson:"end_time,omitempty" json:"end_time,omitempty"`
}

type AppliedDiscount struct {
	Discount      Discount `json:"discount"`
	AppliedAmount int64    `json:"applied_amount"`
}

type CartItem struct {
	ProductID   string   `json:"product_id"`
	Name        string   `json:"name,omitempty"`
	CategoryIDs []string `json:"category_ids,omitempty"`
	Quantity    int      `json:"quantity"`
	UnitPrice   int64    `json:"unit_price"`
}

// DiscountValidation is the structured outcome of one code-entry attempt.
// Business failures (unknown code, expired, condition unmet) come back here
// with a reason; they are never surfaced as errors.
type DiscountValidation struct {
	IsValid       bool      `json:"is_valid"`
	Discount      *Discount `json:"discount,omitempty"`
	AppliedAmount int64     `json:"applied_amount,omitempty"`
	Error         string    `json:"error,omitempty"`
}

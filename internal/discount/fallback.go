package discount

import "github.com/bmartin2011/Fetterman-s-sub000/internal/domain"

// FallbackDiscounts is the small built-in set used when the upstream
// discount fetch fails outright, so the code-entry flow keeps functioning
// instead of fully breaking.
func FallbackDiscounts() []domain.Discount {
	return []domain.Discount{
		{
			ID:                "fallback-welcome10",
			Code:              "WELCOME10",
			Name:              "10% off your order",
			Type:              domain.DiscountPercentage,
			Value:             10,
			MaxDiscountAmount: 1000,
			Active:            true,
		},
		{
			ID:             "fallback-sub5",
			Code:           "SUB5",
			Name:           "$5 off orders over $25",
			Type:           domain.DiscountFixedAmount,
			Value:          500,
			MinOrderAmount: 2500,
			Active:         true,
		},
	}
}

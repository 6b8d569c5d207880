package discount

import (
	"strings"
	"time"

	"github.com/bmartin2011/Fetterman-s-sub000/internal/domain"
	"github.com/bmartin2011/Fetterman-s-sub000/internal/upstream"
	"github.com/spf13/cast"
)

// MapDiscounts normalizes raw upstream discount objects. Like the catalog
// mapper it tolerates loose field shapes via coercion and skips records it
// cannot make sense of rather than failing the batch.
func MapDiscounts(raw []upstream.RawDiscount) []domain.Discount {
	discounts := make([]domain.Discount, 0, len(raw))
	for _, rd := range raw {
		if rd.Data == nil {
			continue
		}

		d := domain.Discount{
			ID:     rd.ID,
			Name:   cast.ToString(rd.Data["name"]),
			Code:   strings.TrimSpace(cast.ToString(rd.Data["code"])),
			Active: true,
		}

		d.Type = mapDiscountType(cast.ToString(rd.Data["discount_type"]))
		switch d.Type {
		case domain.DiscountPercentage:
			d.Value = cast.ToFloat64(rd.Data["percentage"])
		case domain.DiscountFixedAmount:
			if money, ok := rd.Data["amount_money"].(map[string]interface{}); ok {
				d.Value = cast.ToFloat64(money["amount"])
			}
		}

		d.MinOrderAmount = cast.ToInt64(rd.Data["min_order_amount"])
		d.MaxDiscountAmount = cast.ToInt64(rd.Data["max_discount_amount"])

		if from := parseTimestamp(rd.Data["valid_from"]); from != nil {
			d.ValidFrom = from
		}
		if until := parseTimestamp(rd.Data["valid_until"]); until != nil {
			d.ValidUntil = until
		}

		if conditions, ok := rd.Data["conditions"].(map[string]interface{}); ok {
			d.Conditions = &domain.DiscountConditions{
				MinQuantity:        cast.ToInt(conditions["min_quantity"]),
				AllowedProductIDs:  cast.ToStringSlice(conditions["allowed_product_ids"]),
				AllowedCategoryIDs: cast.ToStringSlice(conditions["allowed_category_ids"]),
				DaysOfWeek:         cast.ToStringSlice(conditions["days_of_week"]),
				StartTime:          cast.ToString(conditions["start_time"]),
				EndTime:            cast.ToString(conditions["end_time"]),
			}
		}

		discounts = append(discounts, d)
	}

	return discounts
}

func mapDiscountType(raw string) domain.DiscountType {
	switch {
	case strings.Contains(raw, "PERCENTAGE"):
		return domain.DiscountPercentage
	case strings.Contains(raw, "AMOUNT"):
		return domain.DiscountFixedAmount
	case strings.Contains(raw, "AUTOMATIC"):
		return domain.DiscountAutomatic
	default:
		return domain.DiscountOther
	}
}

func parseTimestamp(value interface{}) *time.Time {
	s := cast.ToString(value)
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	return &t
}

package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderRecord is the local audit copy of an order placed upstream. The
// commerce platform stays the system of record; this exists for support
// lookups and reconciliation.
type OrderRecord struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UpstreamOrderID string             `bson:"upstream_order_id" json:"upstream_order_id"`
	LocationID      string             `bson:"location_id" json:"location_id"`
	Items           []CartItem         `bson:"items" json:"items"`
	Subtotal        int64              `bson:"subtotal" json:"subtotal"`
	DiscountCode    string             `bson:"discount_code,omitempty" json:"discount_code,omitempty"`
	DiscountAmount  int64              `bson:"discount_amount,omitempty" json:"discount_amount,omitempty"`
	Total           int64              `bson:"total" json:"total"`
	CheckoutURL     string             `bson:"checkout_url,omitempty" json:"checkout_url,omitempty"`
	Status          string             `bson:"status" json:"status"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
}

package domain

import "time"

type CatalogSyncMessage struct {
	TaskID     string `json:"task_id"`
	LocationID string `json:"location_id,omitempty"`
}

// OrderEvent travels over the order-events queue and is persisted verbatim
// as the order lifecycle audit trail.
type OrderEvent struct {
	EventType       string    `bson:"event_type" json:"event_type"`
	OrderID         string    `bson:"order_id" json:"order_id"`
	UpstreamOrderID string    `bson:"upstream_order_id" json:"upstream_order_id"`
	Status          string    `bson:"status" json:"status"`
	Timestamp       time.Time `bson:"timestamp" json:"timestamp"`
}

const (
	EventCatalogSynced = "catalog.synced"
	EventOrderCreated  = "order.created"
	EventOrderPaid     = "order.paid"
	EventOrderFailed   = "order.failed"
)

package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SyncTaskStatus string

const (
	SyncStatusQueued     SyncTaskStatus = "queued"
	SyncStatusProcessing SyncTaskStatus = "processing"
	SyncStatusCompleted  SyncTaskStatus = "completed"
	SyncStatusFailed     SyncTaskStatus = "failed"
)

// SyncTask tracks one catalog refresh requested through the API and processed
// by the sync worker.
type SyncTask struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Status        SyncTaskStatus      `bson:"status" json:"status"`
	LocationID    string              `bson:"location_id,omitempty" json:"location_id,omitempty"`
	SnapshotID    *primitive.ObjectID `bson:"snapshot_id,omitempty" json:"snapshot_id,omitempty"`
	ProductCount  int                 `bson:"product_count" json:"product_count"`
	CategoryCount int                 `bson:"category_count" json:"category_count"`
	ErrorMessage  string              `bson:"error_message,omitempty" json:"error_message,omitempty"`
	RetryCount    int                 `bson:"retry_count" json:"retry_count"`
	CreatedAt     time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time           `bson:"updated_at" json:"updated_at"`
}

// CatalogSnapshot is the last fully mapped catalog persisted after a sync, so
// the storefront can keep serving data when the upstream platform is down.
type CatalogSnapshot struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	LocationID string             `bson:"location_id,omitempty" json:"location_id,omitempty"`
	Products   []Product          `bson:"products" json:"products"`
	Categories []Category         `bson:"categories" json:"categories"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updated_at"`
}

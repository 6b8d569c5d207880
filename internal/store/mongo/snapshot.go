package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/bmartin2011/Fetterman-s-sub000/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SnapshotRepository struct {
	collection *mongo.Collection
}

func NewSnapshotRepository(db *mongo.Database) *SnapshotRepository {
	return &SnapshotRepository{
		collection: db.Collection("catalog_snapshots"),
	}
}

func (r *SnapshotRepository) Save(ctx context.Context, snapshot *domain.CatalogSnapshot) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if snapshot.ID.IsZero() {
		snapshot.ID = primitive.NewObjectID()
	}
	snapshot.CreatedAt = time.Now()
	snapshot.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, snapshot)
	if err != nil {
		return fmt.Errorf("failed to save catalog snapshot: %w", err)
	}

	return nil
}

func (r *SnapshotRepository) GetLatest(ctx context.Context, locationID string) (*domain.CatalogSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if locationID != "" {
		filter["location_id"] = locationID
	}

	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var snapshot domain.CatalogSnapshot
	err := r.collection.FindOne(ctx, filter, opts).Decode(&snapshot)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("no catalog snapshot found")
		}
		return nil, fmt.Errorf("failed to get catalog snapshot: %w", err)
	}

	return &snapshot, nil
}

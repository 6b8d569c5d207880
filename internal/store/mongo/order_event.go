package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/bmartin2011/Fetterman-s-sub000/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type OrderEventRepository struct {
	collection *mongo.Collection
}

func NewOrderEventRepository(db *mongo.Database) *OrderEventRepository {
	return &OrderEventRepository{
		collection: db.Collection("order_events"),
	}
}

func (r *OrderEventRepository) Record(ctx context.Context, event *domain.OrderEvent) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.collection.InsertOne(ctx, event)
	if err != nil {
		return fmt.Errorf("failed to record order event: %w", err)
	}

	return nil
}

func (r *OrderEventRepository) ListByOrder(ctx context.Context, upstreamOrderID string) ([]domain.OrderEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"upstream_order_id": upstreamOrderID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list order events: %w", err)
	}
	defer cursor.Close(ctx)

	var events []domain.OrderEvent
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("failed to decode order events: %w", err)
	}

	return events, nil
}

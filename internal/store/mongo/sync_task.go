package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/bmartin2011/Fetterman-s-sub000/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type SyncTaskRepository struct {
	collection *mongo.Collection
}

func NewSyncTaskRepository(db *mongo.Database) *SyncTaskRepository {
	return &SyncTaskRepository{
		collection: db.Collection("sync_tasks"),
	}
}

func (r *SyncTaskRepository) Create(ctx context.Context, task *domain.SyncTask) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if task.ID.IsZero() {
		task.ID = primitive.NewObjectID()
	}
	task.CreatedAt = time.Now()
	task.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to create sync task: %w", err)
	}

	return nil
}

func (r *SyncTaskRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.SyncTask, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var task domain.SyncTask
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&task)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("sync task not found")
		}
		return nil, fmt.Errorf("failed to get sync task: %w", err)
	}

	return &task, nil
}

func (r *SyncTaskRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.SyncTaskStatus, errorMsg string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"status":        status,
			"error_message": errorMsg,
			"updated_at":    time.Now(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update sync task status: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("sync task not found")
	}

	return nil
}

func (r *SyncTaskRepository) Complete(ctx context.Context, id primitive.ObjectID, snapshotID primitive.ObjectID, productCount, categoryCount int) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"status":         domain.SyncStatusCompleted,
			"snapshot_id":    snapshotID,
			"product_count":  productCount,
			"category_count": categoryCount,
			"updated_at":     time.Now(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to complete sync task: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("sync task not found")
	}

	return nil
}

func (r *SyncTaskRepository) IncrementRetryCount(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$inc": bson.M{"retry_count": 1},
		"$set": bson.M{"updated_at": time.Now()},
	}

	if _, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update); err != nil {
		return fmt.Errorf("failed to increment retry count: %w", err)
	}

	return nil
}

package repo

import (
	"context"

	"github.com/bmartin2011/Fetterman-s-sub000/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SyncTaskRepository interface {
	Create(ctx context.Context, task *domain.SyncTask) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.SyncTask, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.SyncTaskStatus, errorMsg string) error
	Complete(ctx context.Context, id primitive.ObjectID, snapshotID primitive.ObjectID, productCount, categoryCount int) error
	IncrementRetryCount(ctx context.Context, id primitive.ObjectID) error
}

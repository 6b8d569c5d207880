package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bmartin2011/Fetterman-s-sub000/internal/domain"
	"github.com/bmartin2011/Fetterman-s-sub000/internal/queue"
	"github.com/bmartin2011/Fetterman-s-sub000/internal/repo"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// SyncService coordinates catalog refreshes: the API enqueues a task, the
// worker picks it up, refetches the catalog and persists a snapshot.
type SyncService struct {
	tasks     repo.SyncTaskRepository
	snapshots repo.SnapshotRepository
	catalog   *CatalogService
	broker    queue.Broker
	logger    *zap.SugaredLogger
}

func NewSyncService(
	tasks repo.SyncTaskRepository,
	snapshots repo.SnapshotRepository,
	catalog *CatalogService,
	broker queue.Broker,
	logger *zap.SugaredLogger,
) *SyncService {
	return &SyncService{
		tasks:     tasks,
		snapshots: snapshots,
		catalog:   catalog,
		broker:    broker,
		logger:    logger,
	}
}

// CreateSyncTask records a queued task and publishes it for the worker. If
// the publish fails the task is marked failed immediately so the caller is
// not left polling a task nobody will process.
func (s *SyncService) CreateSyncTask(ctx context.Context, locationID string) (*domain.SyncTask, error) {
	task := &domain.SyncTask{
		Status:     domain.SyncStatusQueued,
		LocationID: locationID,
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create sync task: %w", err)
	}

	message := domain.CatalogSyncMessage{
		TaskID:     task.ID.Hex(),
		LocationID: locationID,
	}

	body, err := json.Marshal(message)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sync message: %w", err)
	}

	if err := s.broker.Publish(ctx, queue.QueueCatalogSync, body); err != nil {
		if updateErr := s.tasks.UpdateStatus(ctx, task.ID, domain.SyncStatusFailed, "failed to enqueue task"); updateErr != nil {
			s.logger.Errorw("failed to mark task failed", "task_id", task.ID.Hex(), "error", updateErr)
		}
		return nil, fmt.Errorf("failed to publish sync message: %w", err)
	}

	s.logger.Infow("sync task enqueued", "task_id", task.ID.Hex())

	return task, nil
}

func (s *SyncService) GetTaskStatus(ctx context.Context, taskID string) (*domain.SyncTask, error) {
	id, err := primitive.ObjectIDFromHex(taskID)
	if err != nil {
		return nil, fmt.Errorf("invalid task id: %w", err)
	}

	return s.tasks.GetByID(ctx, id)
}

// ProcessSyncTask runs one queued refresh. Returning an error hands the
// message back to the broker retry loop, so transient upstream failures get
// another attempt before landing in the dead letter queue.
func (s *SyncService) ProcessSyncTask(ctx context.Context, message domain.CatalogSyncMessage) error {
	taskID, err := primitive.ObjectIDFromHex(message.TaskID)
	if err != nil {
		// unparseable id will never succeed; drop without retry
		s.logger.Errorw("discarding sync message with bad task id", "task_id", message.TaskID)
		return nil
	}

	if err := s.tasks.UpdateStatus(ctx, taskID, domain.SyncStatusProcessing, ""); err != nil {
		return fmt.Errorf("failed to mark task processing: %w", err)
	}

	products, categories, err := s.catalog.RefreshCatalog(ctx)
	if err != nil {
		if updateErr := s.tasks.UpdateStatus(ctx, taskID, domain.SyncStatusFailed, err.Error()); updateErr != nil {
			s.logger.Errorw("failed to mark task failed", "task_id", message.TaskID, "error", updateErr)
		}
		if retryErr := s.tasks.IncrementRetryCount(ctx, taskID); retryErr != nil {
			s.logger.Errorw("failed to bump retry count", "task_id", message.TaskID, "error", retryErr)
		}
		return fmt.Errorf("catalog refresh failed: %w", err)
	}

	snapshot := &domain.CatalogSnapshot{
		LocationID: message.LocationID,
		Products:   products,
		Categories: categories,
		CreatedAt:  time.Now(),
	}
	if err := s.snapshots.Save(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to save catalog snapshot: %w", err)
	}

	if err := s.tasks.Complete(ctx, taskID, snapshot.ID, len(products), len(categories)); err != nil {
		return fmt.Errorf("failed to complete task: %w", err)
	}

	s.logger.Infow("catalog sync completed",
		"task_id", message.TaskID,
		"products", len(products),
		"categories", len(categories))

	return nil
}

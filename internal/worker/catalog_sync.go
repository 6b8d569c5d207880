package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bmartin2011/Fetterman-s-sub000/internal/domain"
	"github.com/bmartin2011/Fetterman-s-sub000/internal/queue"
	"github.com/bmartin2011/Fetterman-s-sub000/internal/service"
	"go.uber.org/zap"
)

type CatalogSyncWorker struct {
	syncService *service.SyncService
	broker      queue.Broker
	logger      *zap.SugaredLogger
	ctx         context.Context
	cancel      context.CancelFunc
}

func NewCatalogSyncWorker(
	syncService *service.SyncService,
	broker queue.Broker,
	logger *zap.SugaredLogger,
) *CatalogSyncWorker {
	ctx, cancel := context.WithCancel(context.Background())

	return &CatalogSyncWorker{
		syncService: syncService,
		broker:      broker,
		logger:      logger,
		ctx:         ctx,
		cancel:      cancel,
	}
}

func (w *CatalogSyncWorker) Start() error {
	w.logger.Info("starting catalog sync worker")

	return w.broker.Subscribe(w.ctx, queue.QueueCatalogSync, w.handleMessage)
}

func (w *CatalogSyncWorker) Stop() {
	w.logger.Info("stopping catalog sync worker")
	w.cancel()
}

func (w *CatalogSyncWorker) handleMessage(ctx context.Context, message []byte) error {
	var msg domain.CatalogSyncMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		w.logger.Errorw("failed to unmarshal message", "error", err)
		return fmt.Errorf("failed to unmarshal message: %w", err)
	}

	w.logger.Infow("processing catalog sync message", "task_id", msg.TaskID)

	if err := w.syncService.ProcessSyncTask(ctx, msg); err != nil {
		w.logger.Errorw("failed to process sync task", "task_id", msg.TaskID, "error", err)
		return err
	}

	return nil
}

package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bmartin2011/Fetterman-s-sub000/internal/domain"
	"github.com/bmartin2011/Fetterman-s-sub000/internal/queue"
	"github.com/bmartin2011/Fetterman-s-sub000/internal/repo"
	"go.uber.org/zap"
)

// OrderEventsWorker drains the order-events queue into the audit collection.
type OrderEventsWorker struct {
	events repo.OrderEventRepository
	broker queue.Broker
	logger *zap.SugaredLogger
	ctx    context.Context
	cancel context.CancelFunc
}

func NewOrderEventsWorker(
	events repo.OrderEventRepository,
	broker queue.Broker,
	logger *zap.SugaredLogger,
) *OrderEventsWorker {
	ctx, cancel := context.WithCancel(context.Background())

	return &OrderEventsWorker{
		events: events,
		broker: broker,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

func (w *OrderEventsWorker) Start() error {
	w.logger.Info("starting order events worker")

	return w.broker.Subscribe(w.ctx, queue.QueueOrderEvents, w.handleMessage)
}

func (w *OrderEventsWorker) Stop() {
	w.logger.Info("stopping order events worker")
	w.cancel()
}

func (w *OrderEventsWorker) handleMessage(ctx context.Context, message []byte) error {
	var event domain.OrderEvent
	if err := json.Unmarshal(message, &event); err != nil {
		w.logger.Errorw("failed to unmarshal order event", "error", err)
		return fmt.Errorf("failed to unmarshal order event: %w", err)
	}

	if err := w.events.Record(ctx, &event); err != nil {
		w.logger.Errorw("failed to record order event",
			"event_type", event.EventType,
			"order_id", event.UpstreamOrderID,
			"error", err)
		return err
	}

	w.logger.Infow("order event recorded",
		"event_type", event.EventType,
		"order_id", event.UpstreamOrderID,
		"status", event.Status)

	return nil
}

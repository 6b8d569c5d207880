package queue

import (
	"context"
)

type Broker interface {
	Publish(ctx context.Context, queueName string, message []byte) error
	Subscribe(ctx context.Context, queueName string, handler MessageHandler) error
	Close() error
}

type MessageHandler func(ctx context.Context, message []byte) error

const (
	QueueCatalogSync    = "catalog-sync"
	QueueOrderEvents    = "order-events"
	QueueCatalogSyncDLQ = "catalog-sync-dlq"
	QueueOrderEventsDLQ = "order-events-dlq"
)

// AllQueues is the set declared at broker startup.
var AllQueues = []string{
	QueueCatalogSync,
	QueueOrderEvents,
	QueueCatalogSyncDLQ,
	QueueOrderEventsDLQ,
}

package repo

import (
	"context"

	"github.com/bmartin2011/Fetterman-s-sub000/internal/domain"
)

type OrderEventRepository interface {
	Record(ctx context.Context, event *domain.OrderEvent) error
	ListByOrder(ctx context.Context, upstreamOrderID string) ([]domain.OrderEvent, error)
}

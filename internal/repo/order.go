package repo

import (
	"context"

	"github.com/bmartin2011/Fetterman-s-sub000/internal/domain"
)

type OrderRepository interface {
	Create(ctx context.Context, record *domain.OrderRecord) error
	GetByUpstreamID(ctx context.Context, upstreamOrderID string) (*domain.OrderRecord, error)
	UpdateStatus(ctx context.Context, upstreamOrderID string, status string) error
	ListRecent(ctx context.Context, limit int) ([]domain.OrderRecord, error)
}

package repo

import (
	"context"

	"github.com/bmartin2011/Fetterman-s-sub000/internal/domain"
)

type SnapshotRepository interface {
	Save(ctx context.Context, snapshot *domain.CatalogSnapshot) error
	GetLatest(ctx context.Context, locationID string) (*domain.CatalogSnapshot, error)
}

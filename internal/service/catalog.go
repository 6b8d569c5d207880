package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bmartin2011/Fetterman-s-sub000/internal/cache"
	"github.com/bmartin2011/Fetterman-s-sub000/internal/catalog"
	"github.com/bmartin2011/Fetterman-s-sub000/internal/domain"
	"github.com/bmartin2011/Fetterman-s-sub000/internal/repo"
	"github.com/bmartin2011/Fetterman-s-sub000/internal/upstream"
	"go.uber.org/zap"
)

const (
	keyLocations  = "locations"
	keyCategories = "categories"
	keyProducts   = "products"
)

// CatalogService serves normalized catalog data, populating TTL caches from
// the commerce platform on miss and degrading to the last stored snapshot
// when the platform is unreachable.
type CatalogService struct {
	client        *upstream.Client
	snapshots     repo.SnapshotRepository
	locationCache *cache.Cache[string, []domain.Location]
	categoryCache *cache.Cache[string, []domain.Category]
	productCache  *cache.Cache[string, []domain.Product]
	logger        *zap.SugaredLogger
}

type CatalogConfig struct {
	CacheTTL     time.Duration
	CacheMaxSize int
	Backing      cache.Backing
}

func NewCatalogService(
	client *upstream.Client,
	snapshots repo.SnapshotRepository,
	cfg CatalogConfig,
	logger *zap.SugaredLogger,
) *CatalogService {
	newCache := func(namespace string) cache.Config {
		return cache.Config{
			Namespace:  namespace,
			MaxSize:    cfg.CacheMaxSize,
			DefaultTTL: cfg.CacheTTL,
			Backing:    cfg.Backing,
			Logger:     logger,
		}
	}

	return &CatalogService{
		client:        client,
		snapshots:     snapshots,
		locationCache: cache.New[string, []domain.Location](newCache("locations")),
		categoryCache: cache.New[string, []domain.Category](newCache("categories")),
		productCache:  cache.New[string, []domain.Product](newCache("products")),
		logger:        logger,
	}
}

// RestoreCaches loads the durable cache copies, typically once at startup.
func (s *CatalogService) RestoreCaches(ctx context.Context) error {
	if err := s.locationCache.Restore(ctx); err != nil {
		return err
	}
	if err := s.categoryCache.Restore(ctx); err != nil {
		return err
	}
	return s.productCache.Restore(ctx)
}

func (s *CatalogService) GetLocations(ctx context.Context) ([]domain.Location, error) {
	if cached, ok := s.locationCache.Get(keyLocations); ok {
		return cached, nil
	}

	raw, err := s.client.ListLocations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch locations: %w", err)
	}

	locations := make([]domain.Location, 0, len(raw))
	for _, l := range raw {
		locations = append(locations, domain.Location{
			ID:       l.ID,
			Name:     l.Name,
			Address:  l.Address,
			Timezone: l.Timezone,
			Currency: l.Currency,
			Status:   l.Status,
		})
	}

	s.locationCache.Put(keyLocations, locations)

	return locations, nil
}

// GetCategories returns the category forest. The cache holds the flat list;
// the tree is rebuilt per call so callers can never mutate a shared pointer
// graph.
func (s *CatalogService) GetCategories(ctx context.Context) ([]*domain.Category, error) {
	if cached, ok := s.categoryCache.Get(keyCategories); ok {
		return catalog.BuildHierarchy(cached), nil
	}

	flat, err := s.fetchCategories(ctx)
	if err != nil {
		s.logger.Warnw("category fetch failed, trying snapshot", "error", err)
		snapshot, snapErr := s.snapshots.GetLatest(ctx, "")
		if snapErr != nil {
			return nil, fmt.Errorf("failed to fetch categories: %w", err)
		}
		return catalog.BuildHierarchy(snapshot.Categories), nil
	}

	s.categoryCache.Put(keyCategories, flat)

	return catalog.BuildHierarchy(flat), nil
}

func (s *CatalogService) GetProducts(ctx context.Context) ([]domain.Product, error) {
	if cached, ok := s.productCache.Get(keyProducts); ok {
		return cached, nil
	}

	products, _, err := s.fetchCatalog(ctx)
	if err != nil {
		s.logger.Warnw("product fetch failed, trying snapshot", "error", err)
		snapshot, snapErr := s.snapshots.GetLatest(ctx, "")
		if snapErr != nil {
			return nil, fmt.Errorf("failed to fetch products: %w", err)
		}
		return snapshot.Products, nil
	}

	s.productCache.Put(keyProducts, products)

	return products, nil
}

// GetProductsByCategory filters the mapped products by category id.
func (s *CatalogService) GetProductsByCategory(ctx context.Context, categoryID string) ([]domain.Product, error) {
	products, err := s.GetProducts(ctx)
	if err != nil {
		return nil, err
	}

	var filtered []domain.Product
	for _, p := range products {
		for _, id := range p.CategoryIDs {
			if id == categoryID {
				filtered = append(filtered, p)
				break
			}
		}
	}

	return filtered, nil
}

// RefreshCatalog refetches everything from upstream, bypassing the caches,
// and repopulates them. The sync worker drives this.
func (s *CatalogService) RefreshCatalog(ctx context.Context) ([]domain.Product, []domain.Category, error) {
	products, flat, err := s.fetchCatalog(ctx)
	if err != nil {
		return nil, nil, err
	}

	s.productCache.Put(keyProducts, products)
	s.categoryCache.Put(keyCategories, flat)

	return products, flat, nil
}

func (s *CatalogService) fetchCategories(ctx context.Context) ([]domain.Category, error) {
	raw, err := s.client.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.MapCategories(raw), nil
}

// fetchCatalog pulls items, modifier lists, categories and images, then maps
// them into products plus the flat category list.
func (s *CatalogService) fetchCatalog(ctx context.Context) ([]domain.Product, []domain.Category, error) {
	items, err := s.client.SearchCatalogItems(ctx)
	if err != nil {
		return nil, nil, err
	}

	modifierLists, err := s.client.ListModifierLists(ctx)
	if err != nil {
		return nil, nil, err
	}

	flat, err := s.fetchCategories(ctx)
	if err != nil {
		return nil, nil, err
	}

	images, err := s.client.ListImages(ctx)
	if err != nil {
		// images are cosmetic; products still map without them
		s.logger.Warnw("image fetch failed, mapping without images", "error", err)
		images = nil
	}

	categoryNames := make(map[string]string, len(flat))
	for _, c := range flat {
		categoryNames[c.ID] = c.Name
	}
	imageURLs := make(map[string]string, len(images))
	for _, img := range images {
		imageURLs[img.ID] = img.URL
	}

	products := catalog.MapProducts(items, modifierLists, categoryNames, imageURLs)

	return products, flat, nil
}

// CleanupCaches sweeps expired entries from every catalog cache and returns
// the total removed. Runs on a fixed interval independent of traffic.
func (s *CatalogService) CleanupCaches() int {
	removed := s.locationCache.Cleanup()
	removed += s.categoryCache.Cleanup()
	removed += s.productCache.Cleanup()
	return removed
}

func (s *CatalogService) CacheStats() map[string]cache.Stats {
	return map[string]cache.Stats{
		"locations":  s.locationCache.Stats(),
		"categories": s.categoryCache.Stats(),
		"products":   s.productCache.Stats(),
	}
}

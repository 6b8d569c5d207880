package service

import (
	"context"
	"time"

	"github.com/bmartin2011/Fetterman-s-sub000/internal/cache"
	"github.com/bmartin2011/Fetterman-s-sub000/internal/discount"
	"github.com/bmartin2011/Fetterman-s-sub000/internal/domain"
	"github.com/bmartin2011/Fetterman-s-sub000/internal/upstream"
	"go.uber.org/zap"
)

const keyDiscounts = "discounts"

// DiscountService fetches and caches platform discounts and validates codes
// against a cart. When upstream is unreachable it serves the hardcoded
// fallback set so checkout keeps working.
type DiscountService struct {
	client *upstream.Client
	cache  *cache.Cache[string, []domain.Discount]
	logger *zap.SugaredLogger
}

func NewDiscountService(
	client *upstream.Client,
	cfg CatalogConfig,
	logger *zap.SugaredLogger,
) *DiscountService {
	return &DiscountService{
		client: client,
		cache: cache.New[string, []domain.Discount](cache.Config{
			Namespace:  "discounts",
			MaxSize:    cfg.CacheMaxSize,
			DefaultTTL: cfg.CacheTTL,
			Backing:    cfg.Backing,
			Logger:     logger,
		}),
		logger: logger,
	}
}

func (s *DiscountService) RestoreCache(ctx context.Context) error {
	return s.cache.Restore(ctx)
}

// GetDiscounts returns the active discount set. Fallback discounts are never
// cached, so the next call retries upstream.
func (s *DiscountService) GetDiscounts(ctx context.Context) []domain.Discount {
	if cached, ok := s.cache.Get(keyDiscounts); ok {
		return cached
	}

	raw, err := s.client.ListDiscounts(ctx)
	if err != nil {
		s.logger.Warnw("discount fetch failed, using fallback set", "error", err)
		return discount.FallbackDiscounts()
	}

	discounts := discount.MapDiscounts(raw)
	s.cache.Put(keyDiscounts, discounts)

	return discounts
}

// ValidateCode checks a discount code against the cart and returns the
// computed discount amount when it applies.
func (s *DiscountService) ValidateCode(ctx context.Context, code string, items []domain.CartItem, subtotal int64) domain.DiscountValidation {
	engine := discount.NewEngine(s.GetDiscounts(ctx))
	return engine.Validate(code, items, subtotal, time.Now())
}

func (s *DiscountService) CleanupCache() int {
	return s.cache.Cleanup()
}

package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bmartin2011/Fetterman-s-sub000/internal/domain"
	"github.com/bmartin2011/Fetterman-s-sub000/internal/upstream"
	"go.uber.org/zap"
)

func newUpstreamClient(t *testing.T, baseURL string) *upstream.Client {
	t.Helper()

	client, err := upstream.New(upstream.Config{
		BaseURL:       baseURL,
		AccessToken:   "test-token",
		MaxAttempts:   2,
		BackoffBase:   time.Millisecond,
		BackoffJitter: time.Millisecond,
	}, upstream.NewLogCollector(zap.NewNop().Sugar()), zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	return client
}

func newDiscountService(t *testing.T, baseURL string) *DiscountService {
	t.Helper()

	return NewDiscountService(newUpstreamClient(t, baseURL), CatalogConfig{
		CacheTTL:     time.Minute,
		CacheMaxSize: 10,
	}, zap.NewNop().Sugar())
}

func TestDiscountServiceFallsBackWhenUpstreamDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	svc := newDiscountService(t, server.URL)

	discounts := svc.GetDiscounts(context.Background())
	if len(discounts) == 0 {
		t.Fatal("expected fallback discounts, got none")
	}

	found := false
	for _, d := range discounts {
		if d.Code == "WELCOME10" {
			found = true
		}
	}
	if !found {
		t.Error("expected fallback set to contain WELCOME10")
	}
}

func TestDiscountServiceCachesUpstreamSet(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"objects": [
			{"id": "disc-1", "discount_data": {"name": "Ten Percent", "discount_type": "FIXED_PERCENTAGE", "percentage": "10"}}
		]}`))
	}))
	defer server.Close()

	svc := newDiscountService(t, server.URL)
	ctx := context.Background()

	first := svc.GetDiscounts(ctx)
	second := svc.GetDiscounts(ctx)

	if calls != 1 {
		t.Errorf("expected one upstream call, got %d", calls)
	}
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("expected one discount, got %d then %d", len(first), len(second))
	}
	if first[0].Type != domain.DiscountPercentage {
		t.Errorf("expected percentage type, got %s", first[0].Type)
	}
}

func TestDiscountServiceValidateCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"objects": [
			{"id": "disc-1", "discount_data": {"name": "Five Off", "code": "FIVEOFF", "discount_type": "FIXED_AMOUNT", "amount_money": {"amount": 500}}}
		]}`))
	}))
	defer server.Close()

	svc := newDiscountService(t, server.URL)

	items := []domain.CartItem{{ProductID: "p1", Quantity: 2, UnitPrice: 1500}}
	result := svc.ValidateCode(context.Background(), "FIVEOFF", items, 3000)

	if !result.IsValid {
		t.Fatalf("expected valid result, got error %q", result.Error)
	}
	if result.AppliedAmount != 500 {
		t.Errorf("expected applied amount 500, got %d", result.AppliedAmount)
	}
}

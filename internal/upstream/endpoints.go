package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

func (c *Client) get(path string) requestFactory {
	return func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	}
}

func (c *Client) post(path string, payload interface{}) requestFactory {
	return func(ctx context.Context) (*http.Request, error) {
		body, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode payload: %w", err)
		}
		return http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	}
}

type Location struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address,omitempty"`
	Timezone string `json:"timezone,omitempty"`
	Currency string `json:"currency,omitempty"`
	Status   string `json:"status,omitempty"`
}

func (c *Client) ListLocations(ctx context.Context) ([]Location, error) {
	parsed, err := c.do(ctx, "list-locations", c.get("/v2/locations"), "locations")
	if err != nil {
		return nil, err
	}

	var locations []Location
	if err := decodeField("list-locations", parsed, "locations", &locations); err != nil {
		return nil, err
	}

	return locations, nil
}

func (c *Client) SearchCatalogItems(ctx context.Context) ([]CatalogObject, error) {
	payload := map[string]interface{}{
		"object_types":            []string{"ITEM"},
		"include_deleted_objects": false,
	}

	parsed, err := c.do(ctx, "search-catalog-items", c.post("/v2/catalog/search", payload), "objects")
	if err != nil {
		return nil, err
	}

	var objects []CatalogObject
	if err := decodeField("search-catalog-items", parsed, "objects", &objects); err != nil {
		return nil, err
	}

	return objects, nil
}

func (c *Client) ListCategories(ctx context.Context) ([]RawCategory, error) {
	parsed, err := c.do(ctx, "list-categories", c.get("/v2/catalog/list?types=CATEGORY"), "objects")
	if err != nil {
		return nil, err
	}

	var categories []RawCategory
	if err := decodeField("list-categories", parsed, "objects", &categories); err != nil {
		return nil, err
	}

	return categories, nil
}

func (c *Client) ListModifierLists(ctx context.Context) ([]ModifierList, error) {
	parsed, err := c.do(ctx, "list-modifier-lists", c.get("/v2/catalog/list?types=MODIFIER_LIST"), "objects")
	if err != nil {
		return nil, err
	}

	var lists []ModifierList
	if err := decodeField("list-modifier-lists", parsed, "objects", &lists); err != nil {
		return nil, err
	}

	return lists, nil
}

func (c *Client) ListDiscounts(ctx context.Context) ([]RawDiscount, error) {
	parsed, err := c.do(ctx, "list-discounts", c.get("/v2/catalog/list?types=DISCOUNT"), "objects")
	if err != nil {
		return nil, err
	}

	var discounts []RawDiscount
	if err := decodeField("list-discounts", parsed, "objects", &discounts); err != nil {
		return nil, err
	}

	return discounts, nil
}

func (c *Client) ListImages(ctx context.Context) ([]CatalogImage, error) {
	parsed, err := c.do(ctx, "list-images", c.get("/v2/catalog/list?types=IMAGE"), "objects")
	if err != nil {
		return nil, err
	}

	var images []CatalogImage
	if err := decodeField("list-images", parsed, "objects", &images); err != nil {
		return nil, err
	}

	return images, nil
}

func (c *Client) ListMeasurementUnits(ctx context.Context) ([]MeasurementUnit, error) {
	parsed, err := c.do(ctx, "list-measurement-units", c.get("/v2/catalog/list?types=MEASUREMENT_UNIT"), "objects")
	if err != nil {
		return nil, err
	}

	var units []MeasurementUnit
	if err := decodeField("list-measurement-units", parsed, "objects", &units); err != nil {
		return nil, err
	}

	return units, nil
}

type OrderLineItem struct {
	CatalogObjectID string `json:"catalog_object_id"`
	Quantity        string `json:"quantity"`
	BasePriceMoney  *Money `json:"base_price_money,omitempty"`
}

type CreateOrderRequest struct {
	IdempotencyKey string          `json:"idempotency_key"`
	LocationID     string          `json:"location_id"`
	LineItems      []OrderLineItem `json:"line_items"`
	DiscountCode   string          `json:"discount_code,omitempty"`
}

type Order struct {
	ID         string `json:"id"`
	LocationID string `json:"location_id"`
	State      string `json:"state,omitempty"`
	TotalMoney *Money `json:"total_money,omitempty"`
}

func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	parsed, err := c.do(ctx, "create-order", c.post("/v2/orders", req), "order")
	if err != nil {
		return nil, err
	}

	var order Order
	if err := decodeField("create-order", parsed, "order", &order); err != nil {
		return nil, err
	}

	return &order, nil
}

type CreatePaymentRequest struct {
	IdempotencyKey string `json:"idempotency_key"`
	OrderID        string `json:"order_id"`
	SourceID       string `json:"source_id"`
	AmountMoney    Money  `json:"amount_money"`
}

type Payment struct {
	ID      string `json:"id"`
	OrderID string `json:"order_id"`
	Status  string `json:"status,omitempty"`
}

func (c *Client) CreatePayment(ctx context.Context, req CreatePaymentRequest) (*Payment, error) {
	parsed, err := c.do(ctx, "create-payment", c.post("/v2/payments", req), "payment")
	if err != nil {
		return nil, err
	}

	var payment Payment
	if err := decodeField("create-payment", parsed, "payment", &payment); err != nil {
		return nil, err
	}

	return &payment, nil
}

type CreateCheckoutRequest struct {
	IdempotencyKey string             `json:"idempotency_key"`
	Order          CreateOrderRequest `json:"order"`
	RedirectURL    string             `json:"redirect_url,omitempty"`
}

type CheckoutSession struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	OrderID string `json:"order_id,omitempty"`
}

func (c *Client) CreateCheckoutSession(ctx context.Context, req CreateCheckoutRequest) (*CheckoutSession, error) {
	parsed, err := c.do(ctx, "create-checkout-session", c.post("/v2/online-checkout/payment-links", req), "payment_link")
	if err != nil {
		return nil, err
	}

	var session CheckoutSession
	if err := decodeField("create-checkout-session", parsed, "payment_link", &session); err != nil {
		return nil, err
	}

	return &session, nil
}

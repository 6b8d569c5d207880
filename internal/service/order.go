package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/bmartin2011/Fetterman-s-sub000/internal/domain"
	"github.com/bmartin2011/Fetterman-s-sub000/internal/queue"
	"github.com/bmartin2011/Fetterman-s-sub000/internal/repo"
	"github.com/bmartin2011/Fetterman-s-sub000/internal/upstream"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrInvalidDiscount marks a rejected discount code; the reason travels in
// the wrapping error message.
var ErrInvalidDiscount = errors.New("invalid discount")

type OrderService struct {
	client    *upstream.Client
	orders    repo.OrderRepository
	discounts *DiscountService
	broker    queue.Broker
	logger    *zap.SugaredLogger
}

func NewOrderService(
	client *upstream.Client,
	orders repo.OrderRepository,
	discounts *DiscountService,
	broker queue.Broker,
	logger *zap.SugaredLogger,
) *OrderService {
	return &OrderService{
		client:    client,
		orders:    orders,
		discounts: discounts,
		broker:    broker,
		logger:    logger,
	}
}

type CreateOrderInput struct {
	LocationID   string
	Items        []domain.CartItem
	DiscountCode string
	RedirectURL  string
}

// CreateOrder places the order upstream, opens a hosted checkout session and
// stores the local audit record. The platform is charged exactly once per
// call thanks to fresh idempotency keys.
func (s *OrderService) CreateOrder(ctx context.Context, input CreateOrderInput) (*domain.OrderRecord, error) {
	var subtotal int64
	for _, item := range input.Items {
		subtotal += item.UnitPrice * int64(item.Quantity)
	}

	var discountAmount int64
	if input.DiscountCode != "" {
		validation := s.discounts.ValidateCode(ctx, input.DiscountCode, input.Items, subtotal)
		if !validation.IsValid {
			return nil, fmt.Errorf("%w: %s", ErrInvalidDiscount, validation.Error)
		}
		discountAmount = validation.AppliedAmount
	}

	orderReq := upstream.CreateOrderRequest{
		IdempotencyKey: uuid.New().String(),
		LocationID:     input.LocationID,
		LineItems:      buildLineItems(input.Items),
		DiscountCode:   input.DiscountCode,
	}

	order, err := s.client.CreateOrder(ctx, orderReq)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	session, err := s.client.CreateCheckoutSession(ctx, upstream.CreateCheckoutRequest{
		IdempotencyKey: uuid.New().String(),
		Order:          orderReq,
		RedirectURL:    input.RedirectURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	record := &domain.OrderRecord{
		UpstreamOrderID: order.ID,
		LocationID:      input.LocationID,
		Items:           input.Items,
		Subtotal:        subtotal,
		DiscountCode:    input.DiscountCode,
		DiscountAmount:  discountAmount,
		Total:           subtotal - discountAmount,
		CheckoutURL:     session.URL,
		Status:          "pending",
		CreatedAt:       time.Now(),
	}

	if err := s.orders.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to store order record: %w", err)
	}

	s.publishEvent(ctx, domain.EventOrderCreated, record)

	return record, nil
}

// RecordPayment charges the order through the platform and marks the local
// record paid.
func (s *OrderService) RecordPayment(ctx context.Context, upstreamOrderID, sourceID string) (*domain.OrderRecord, error) {
	record, err := s.orders.GetByUpstreamID(ctx, upstreamOrderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order record: %w", err)
	}

	_, err = s.client.CreatePayment(ctx, upstream.CreatePaymentRequest{
		IdempotencyKey: uuid.New().String(),
		OrderID:        upstreamOrderID,
		SourceID:       sourceID,
		AmountMoney:    upstream.Money{Amount: record.Total, Currency: "USD"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	if err := s.orders.UpdateStatus(ctx, upstreamOrderID, "paid"); err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	record.Status = "paid"

	s.publishEvent(ctx, domain.EventOrderPaid, record)

	return record, nil
}

func (s *OrderService) GetOrder(ctx context.Context, upstreamOrderID string) (*domain.OrderRecord, error) {
	return s.orders.GetByUpstreamID(ctx, upstreamOrderID)
}

// ListOrders returns the most recent order records, newest first. The limit
// is clamped to keep support queries from paging the whole collection.
func (s *OrderService) ListOrders(ctx context.Context, limit int) ([]domain.OrderRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	return s.orders.ListRecent(ctx, limit)
}

// publishEvent is best effort: a broker outage never fails the order.
func (s *OrderService) publishEvent(ctx context.Context, eventType string, record *domain.OrderRecord) {
	event := domain.OrderEvent{
		EventType:       eventType,
		OrderID:         record.ID.Hex(),
		UpstreamOrderID: record.UpstreamOrderID,
		Status:          record.Status,
		Timestamp:       time.Now(),
	}

	body, err := json.Marshal(event)
	if err != nil {
		s.logger.Errorw("failed to marshal order event", "error", err)
		return
	}

	if err := s.broker.Publish(ctx, queue.QueueOrderEvents, body); err != nil {
		s.logger.Errorw("failed to publish order event",
			"event_type", eventType,
			"order_id", record.UpstreamOrderID,
			"error", err)
	}
}

func buildLineItems(items []domain.CartItem) []upstream.OrderLineItem {
	lineItems := make([]upstream.OrderLineItem, 0, len(items))
	for _, item := range items {
		lineItems = append(lineItems, upstream.OrderLineItem{
			CatalogObjectID: item.ProductID,
			Quantity:        strconv.Itoa(item.Quantity),
			BasePriceMoney:  &upstream.Money{Amount: item.UnitPrice, Currency: "USD"},
		})
	}
	return lineItems
}

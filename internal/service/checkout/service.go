package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

const (
	orderCurrency = "USD"

	eventTypeOrderCreated = "order.created"
	aggregateTypeOrder    = "order"
)

// Service оформляет заказ из снимка корзины. Это та самая сверка с
// актуальными остатками, которую корзина сознательно откладывает до
// оформления: цены берутся из снимка, остатки — из каталога.
type Service struct {
	products domain.ProductRepository
	orders   domain.OrderRepository
	outbox   domain.OutboxRepository
	pricing  domain.PricingPolicy
	logger   *log.Entry
}

// NewService конструирует сервис оформления заказа.
func NewService(
	products domain.ProductRepository,
	orders domain.OrderRepository,
	outbox domain.OutboxRepository,
	pricing domain.PricingPolicy,
	logger *log.Entry,
) *Service {
	if logger == nil {
		logger = log.WithField("component", "checkout")
	}
	return &Service{
		products: products,
		orders:   orders,
		outbox:   outbox,
		pricing:  pricing,
		logger:   logger,
	}
}

// orderCreatedPayload — тело события order.created для outbox.
type orderCreatedPayload struct {
	OrderID    string    `json:"order_id"`
	CustomerID string    `json:"customer_id"`
	Status     string    `json:"status"`
	TotalMinor int64     `json:"total_minor"`
	Currency   string    `json:"currency"`
	CreatedAt  time.Time `json:"created_at"`
}

// PlaceOrder превращает позиции корзины в заказ:
// проверяет остатки по актуальному каталогу, фиксирует суммы по политике
// цен, сохраняет заказ и ставит событие order.created в outbox.
// Очистка корзины — забота вызывающего после успешного оформления.
func (s *Service) PlaceOrder(_ context.Context, customerID string, items []domain.CartItem) (domain.Order, error) {
	if customerID == "" {
		return domain.Order{}, domain.ErrCustomerRequired
	}
	if len(items) == 0 {
		return domain.Order{}, domain.ErrCartEmpty
	}

	now := time.Now().UTC()
	orderID := uuid.NewString()

	orderItems := make([]domain.OrderItem, 0, len(items))
	for _, item := range items {
		current, err := s.products.Get(item.Product.ID)
		if err != nil {
			if errors.Is(err, domain.ErrProductNotFound) {
				return domain.Order{}, fmt.Errorf("%w: %s", domain.ErrProductNotFound, item.Product.ID)
			}
			return domain.Order{}, fmt.Errorf("lookup product %s: %w", item.Product.ID, err)
		}
		if item.Quantity > current.Stock {
			return domain.Order{}, fmt.Errorf("%w: product %s has %d left, cart wants %d",
				domain.ErrInsufficientStock, item.Product.ID, current.Stock, item.Quantity)
		}

		orderItems = append(orderItems, domain.OrderItem{
			ID:        uuid.NewString(),
			ProductID: item.Product.ID,
			Name:      item.Product.Name,
			Qty:       item.Quantity,
			// Цена фиксируется по снимку корзины, не по текущему каталогу.
			PriceMinor: item.Product.PriceMinor,
			CreatedAt:  now,
		})
	}

	subtotal := domain.SubtotalMinor(items)
	shipping := s.pricing.ShippingMinor(subtotal)
	tax := s.pricing.TaxMinor(subtotal)

	order := domain.Order{
		ID:            orderID,
		CustomerID:    customerID,
		Status:        domain.OrderStatusPending,
		Currency:      orderCurrency,
		SubtotalMinor: subtotal,
		ShippingMinor: shipping,
		TaxMinor:      tax,
		TotalMinor:    subtotal + shipping + tax,
		Items:         orderItems,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if errs := order.ValidateInvariants(); len(errs) > 0 {
		return domain.Order{}, errors.Join(errs...)
	}

	if err := s.orders.Create(order); err != nil {
		return domain.Order{}, fmt.Errorf("create order: %w", err)
	}

	s.enqueueOrderCreated(order)

	s.logger.WithFields(log.Fields{
		"order_id":    order.ID,
		"customer_id": order.CustomerID,
		"total_minor": order.TotalMinor,
		"items":       len(order.Items),
	}).Info("order placed")

	return order, nil
}

// enqueueOrderCreated ставит событие в outbox; заказ уже сохранён,
// поэтому сбой постановки только логируется.
func (s *Service) enqueueOrderCreated(order domain.Order) {
	if s.outbox == nil {
		return
	}

	payload, err := json.Marshal(orderCreatedPayload{
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		Status:     string(order.Status),
		TotalMinor: order.TotalMinor,
		Currency:   order.Currency,
		CreatedAt:  order.CreatedAt,
	})
	if err != nil {
		s.logger.WithError(err).WithField("order_id", order.ID).Warn("failed to marshal order.created payload")
		return
	}

	if _, err := s.outbox.Enqueue(domain.OutboxMessage{
		AggregateType: aggregateTypeOrder,
		AggregateID:   order.ID,
		EventType:     eventTypeOrderCreated,
		Payload:       payload,
	}); err != nil {
		s.logger.WithError(err).WithField("order_id", order.ID).Warn("failed to enqueue order.created event")
	}
}

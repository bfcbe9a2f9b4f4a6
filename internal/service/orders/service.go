package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

const (
	eventTypeOrderStatusChanged = "order.status_changed"
	aggregateTypeOrder          = "order"

	defaultListLimit = 100
)

// Service предоставляет чтение заказов клиенту и управление статусами администратору.
type Service struct {
	repo   domain.OrderRepository
	outbox domain.OutboxRepository
	logger *log.Entry
}

// NewService конструирует сервис заказов.
func NewService(repo domain.OrderRepository, outbox domain.OutboxRepository, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.WithField("component", "orders")
	}
	return &Service{repo: repo, outbox: outbox, logger: logger}
}

// ListByCustomer возвращает заказы клиента, новые первыми.
func (s *Service) ListByCustomer(_ context.Context, customerID string, limit int) ([]domain.Order, error) {
	if customerID == "" {
		return nil, domain.ErrCustomerRequired
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	return s.repo.ListByCustomer(customerID, limit)
}

// GetForCustomer возвращает заказ клиента. Чужой заказ неотличим от
// отсутствующего: наружу уходит ErrOrderNotFound.
func (s *Service) GetForCustomer(_ context.Context, orderID, customerID string) (domain.Order, error) {
	order, err := s.repo.Get(orderID)
	if err != nil {
		return domain.Order{}, err
	}
	if order.CustomerID != customerID {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return order, nil
}

// ListAll возвращает заказы всех клиентов (админский срез).
func (s *Service) ListAll(_ context.Context, limit int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	return s.repo.ListAll(limit)
}

// Get возвращает заказ без проверки владельца (админская операция).
func (s *Service) Get(_ context.Context, orderID string) (domain.Order, error) {
	return s.repo.Get(orderID)
}

// statusChangedPayload — тело события order.status_changed для outbox.
type statusChangedPayload struct {
	OrderID    string    `json:"order_id"`
	CustomerID string    `json:"customer_id"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	ChangedAt  time.Time `json:"changed_at"`
}

// UpdateStatus переводит заказ в новый статус (админская операция).
// Переход проверяется по жизненному циклу заказа; сохранение защищено
// optimistic locking, конфликт версий отдаётся вызывающему как есть.
func (s *Service) UpdateStatus(_ context.Context, orderID string, to domain.OrderStatus) (domain.Order, error) {
	if !to.Valid() {
		return domain.Order{}, domain.ErrOrderStatusInvalid
	}

	order, err := s.repo.Get(orderID)
	if err != nil {
		return domain.Order{}, err
	}

	from := order.Status
	if !domain.CanTransition(from, to) {
		return domain.Order{}, fmt.Errorf("%w: %s -> %s", domain.ErrOrderStatusTransition, from, to)
	}

	order.Status = to
	order.UpdatedAt = time.Now().UTC()
	if err := s.repo.Save(order); err != nil {
		return domain.Order{}, fmt.Errorf("save order status: %w", err)
	}
	order.Version++

	s.enqueueStatusChanged(order, from, to)

	s.logger.WithFields(log.Fields{
		"order_id":    order.ID,
		"from_status": from,
		"to_status":   to,
	}).Info("order status updated")
	return order, nil
}

func (s *Service) enqueueStatusChanged(order domain.Order, from, to domain.OrderStatus) {
	if s.outbox == nil {
		return
	}

	payload, err := json.Marshal(statusChangedPayload{
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		FromStatus: string(from),
		ToStatus:   string(to),
		ChangedAt:  order.UpdatedAt,
	})
	if err != nil {
		s.logger.WithError(err).WithField("order_id", order.ID).Warn("failed to marshal status change payload")
		return
	}

	if _, err := s.outbox.Enqueue(domain.OutboxMessage{
		AggregateType: aggregateTypeOrder,
		AggregateID:   order.ID,
		EventType:     eventTypeOrderStatusChanged,
		Payload:       payload,
	}); err != nil {
		s.logger.WithError(err).WithField("order_id", order.ID).Warn("failed to enqueue status change event")
	}
}

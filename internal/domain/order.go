package domain

import "time"

// OrderStatus описывает жизненный цикл заказа витрины.
type OrderStatus string

const (
	// OrderStatusPending — заказ создан и ожидает обработки.
	OrderStatusPending OrderStatus = "pending"
	// OrderStatusProcessing — заказ принят в работу.
	OrderStatusProcessing OrderStatus = "processing"
	// OrderStatusShipped — заказ передан в доставку.
	OrderStatusShipped OrderStatus = "shipped"
	// OrderStatusDelivered — заказ доставлен клиенту.
	OrderStatusDelivered OrderStatus = "delivered"
	// OrderStatusCancelled — заказ отменён до отгрузки.
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Valid проверяет, что статус входит в известный набор.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// CanTransition проверяет допустимость перехода статуса заказа.
// Отмена возможна только до отгрузки; доставленный заказ терминален.
func CanTransition(from, to OrderStatus) bool {
	switch from {
	case OrderStatusPending:
		return to == OrderStatusProcessing || to == OrderStatusCancelled
	case OrderStatusProcessing:
		return to == OrderStatusShipped || to == OrderStatusCancelled
	case OrderStatusShipped:
		return to == OrderStatusDelivered
	default:
		return false
	}
}

// OrderItem представляет одну позицию заказа — снимок цены и количества
// на момент оформления.
type OrderItem struct {
	ID        string
	ProductID string
	Name      string
	Qty       int32
	// PriceMinor — цена за единицу в минимальных денежных единицах.
	PriceMinor int64
	CreatedAt  time.Time
}

// Order агрегирует состояние заказа и его позиции. Суммы раскладываются
// на подытог, доставку и налог, зафиксированные политикой цен на момент
// оформления.
type Order struct {
	ID            string
	CustomerID    string
	Status        OrderStatus
	Currency      string
	SubtotalMinor int64
	ShippingMinor int64
	TaxMinor      int64
	TotalMinor    int64
	Items         []OrderItem
	Version       int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ValidateInvariants проверяет базовые инварианты заказа и возвращает список замечаний.
func (o *Order) ValidateInvariants() []error {
	var errs []error

	if o.CustomerID == "" {
		errs = append(errs, ErrCustomerRequired)
	}
	if o.Currency == "" {
		errs = append(errs, ErrCurrencyRequired)
	}
	if len(o.Items) == 0 {
		errs = append(errs, ErrItemsRequired)
	}
	if !o.Status.Valid() {
		errs = append(errs, ErrOrderStatusInvalid)
	}

	// Сверяем подытог с суммой позиций: qty * price.
	var calc int64
	for _, item := range o.Items {
		if item.Qty <= 0 {
			errs = append(errs, ErrItemQtyInvalid)
		}
		if item.PriceMinor < 0 {
			errs = append(errs, ErrItemPriceInvalid)
		}
		calc += int64(item.Qty) * item.PriceMinor
	}
	if calc != o.SubtotalMinor {
		errs = append(errs, ErrAmountMismatch)
	}
	if o.ShippingMinor < 0 || o.TaxMinor < 0 {
		errs = append(errs, ErrItemPriceInvalid)
	}
	if o.TotalMinor != o.SubtotalMinor+o.ShippingMinor+o.TaxMinor {
		errs = append(errs, ErrTotalMismatch)
	}

	return errs
}

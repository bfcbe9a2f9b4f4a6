package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vladislavdragonenkov/storefront/internal/metrics"
	"github.com/vladislavdragonenkov/storefront/internal/service/checkout"
	"github.com/vladislavdragonenkov/storefront/internal/service/orders"
)

// OrdersHandler обслуживает оформление заказа и историю заказов клиента.
type OrdersHandler struct {
	checkout *checkout.Service
	orders   *orders.Service
	carts    *CartRegistry
	metrics  *metrics.StorefrontMetrics
}

// NewOrdersHandler создаёт handler заказов.
func NewOrdersHandler(
	checkoutSvc *checkout.Service,
	ordersSvc *orders.Service,
	carts *CartRegistry,
	m *metrics.StorefrontMetrics,
) *OrdersHandler {
	return &OrdersHandler{
		checkout: checkoutSvc,
		orders:   ordersSvc,
		carts:    carts,
		metrics:  m,
	}
}

// Checkout оформляет заказ из корзины текущей сессии.
// Корзина очищается только после успешного создания заказа.
func (h *OrdersHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	store := h.carts.ForSession(sessionIDFromContext(r.Context()))

	start := time.Now()
	order, err := h.checkout.PlaceOrder(r.Context(), userID, store.Items())
	if err != nil {
		if h.metrics != nil {
			h.metrics.RecordOrderFailed()
		}
		respondDomainError(w, err)
		return
	}

	store.Clear()
	if h.metrics != nil {
		h.metrics.RecordOrderPlaced()
		h.metrics.RecordCheckoutDuration(time.Since(start))
	}

	respondJSON(w, http.StatusCreated, toOrderDTO(order))
}

// List отдаёт заказы текущего клиента, новые первыми.
func (h *OrdersHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	result, err := h.orders.ListByCustomer(r.Context(), userID, 0)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toOrderDTOs(result))
}

// Get отдаёт заказ текущего клиента. Чужие заказы неотличимы от отсутствующих.
func (h *OrdersHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())

	order, err := h.orders.GetForCustomer(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toOrderDTO(order))
}

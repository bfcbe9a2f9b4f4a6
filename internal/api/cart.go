package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vladislavdragonenkov/storefront/internal/cart"
	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/metrics"
	"github.com/vladislavdragonenkov/storefront/internal/service/catalog"
)

// CartHandler обслуживает корзину текущей сессии.
type CartHandler struct {
	carts   *CartRegistry
	catalog *catalog.Service
	metrics *metrics.StorefrontMetrics
}

// NewCartHandler создаёт handler корзины.
func NewCartHandler(carts *CartRegistry, catalogSvc *catalog.Service, m *metrics.StorefrontMetrics) *CartHandler {
	return &CartHandler{carts: carts, catalog: catalogSvc, metrics: m}
}

type addItemRequest struct {
	ProductID string `json:"product_id"`
}

type updateQuantityRequest struct {
	Quantity int32 `json:"quantity"`
}

func (h *CartHandler) sessionCart(r *http.Request) *cart.Store {
	return h.carts.ForSession(sessionIDFromContext(r.Context()))
}

func totalQuantity(items []domain.CartItem) int64 {
	var total int64
	for _, item := range items {
		total += int64(item.Quantity)
	}
	return total
}

// Get отдаёт корзину сессии с производными суммами.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	store := h.sessionCart(r)
	respondJSON(w, http.StatusOK, toCartDTO(store.Items(), store.Summary()))
}

// AddItem добавляет товар каталога в корзину. Товар без остатка и позиция
// на потолке остатка не меняют корзину и не считаются ошибкой.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "product_id is required")
		return
	}

	product, err := h.catalog.Get(r.Context(), req.ProductID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	store := h.sessionCart(r)
	beforeQty := totalQuantity(store.Items())
	items := store.Add(product)

	if h.metrics != nil {
		if totalQuantity(items) > beforeQty {
			h.metrics.RecordCartItemAdded()
		} else {
			h.metrics.RecordCartRejected("out_of_stock")
		}
	}

	respondJSON(w, http.StatusOK, toCartDTO(items, store.Summary()))
}

// UpdateQuantity выставляет количество позиции; ноль удаляет позицию.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "product_id")

	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	store := h.sessionCart(r)
	items, err := store.UpdateQuantity(productID, req.Quantity)
	if err != nil {
		if h.metrics != nil {
			h.metrics.RecordCartRejected("invalid_quantity")
		}
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toCartDTO(items, store.Summary()))
}

// RemoveItem удаляет позицию из корзины.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	store := h.sessionCart(r)
	items := store.Remove(chi.URLParam(r, "product_id"))

	if h.metrics != nil {
		h.metrics.RecordCartItemRemoved()
	}

	respondJSON(w, http.StatusOK, toCartDTO(items, store.Summary()))
}

// Clear опустошает корзину сессии.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	store := h.sessionCart(r)
	items := store.Clear()

	if h.metrics != nil {
		h.metrics.RecordCartCleared()
	}

	respondJSON(w, http.StatusOK, toCartDTO(items, store.Summary()))
}

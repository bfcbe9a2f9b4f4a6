package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/service/catalog"
	"github.com/vladislavdragonenkov/storefront/internal/service/customers"
	"github.com/vladislavdragonenkov/storefront/internal/service/dashboard"
	"github.com/vladislavdragonenkov/storefront/internal/service/orders"
)

// AdminHandler обслуживает админский срез: управление каталогом,
// заказами, клиентами и панель показателей.
type AdminHandler struct {
	catalog   *catalog.Service
	orders    *orders.Service
	customers *customers.Service
	dashboard *dashboard.Service
}

// NewAdminHandler создаёт админский handler.
func NewAdminHandler(
	catalogSvc *catalog.Service,
	ordersSvc *orders.Service,
	customersSvc *customers.Service,
	dashboardSvc *dashboard.Service,
) *AdminHandler {
	return &AdminHandler{
		catalog:   catalogSvc,
		orders:    ordersSvc,
		customers: customersSvc,
		dashboard: dashboardSvc,
	}
}

// productRequest — тело создания/обновления товара.
type productRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	PriceMinor  int64    `json:"price_minor"`
	Condition   string   `json:"condition"`
	Stock       int32    `json:"stock"`
	Category    string   `json:"category"`
	Images      []string `json:"images"`
}

func (req productRequest) toDomain(id string) domain.Product {
	return domain.Product{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		PriceMinor:  req.PriceMinor,
		Condition:   domain.ProductCondition(req.Condition),
		Stock:       req.Stock,
		Category:    req.Category,
		Images:      req.Images,
	}
}

// CreateProduct добавляет товар в каталог.
func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	product, err := h.catalog.Create(r.Context(), req.toDomain(""))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toProductDTO(product))
}

// UpdateProduct обновляет товар каталога.
func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	product, err := h.catalog.Update(r.Context(), req.toDomain(chi.URLParam(r, "id")))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toProductDTO(product))
}

// DeleteProduct удаляет товар каталога.
func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListOrders отдаёт заказы всех клиентов.
func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	result, err := h.orders.ListAll(r.Context(), 0)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toOrderDTOs(result))
}

// GetOrder отдаёт заказ без проверки владельца.
func (h *AdminHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toOrderDTO(order))
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateOrderStatus переводит заказ в новый статус жизненного цикла.
func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	order, err := h.orders.UpdateStatus(r.Context(), chi.URLParam(r, "id"), domain.OrderStatus(req.Status))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toOrderDTO(order))
}

// customerRequest — тело создания/обновления клиента.
type customerRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	AvatarURL string `json:"avatar_url"`
}

func (req customerRequest) toDomain(id string) domain.Customer {
	return domain.Customer{
		ID:        id,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		AvatarURL: req.AvatarURL,
	}
}

// ListCustomers отдаёт профили клиентов.
func (h *AdminHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	result, err := h.customers.List(r.Context(), 0)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toCustomerDTOs(result))
}

// GetCustomer отдаёт профиль клиента.
func (h *AdminHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	customer, err := h.customers.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toCustomerDTO(customer))
}

// CreateCustomer создаёт профиль клиента.
func (h *AdminHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req customerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	customer, err := h.customers.Create(r.Context(), req.toDomain(""))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toCustomerDTO(customer))
}

// UpdateCustomer обновляет профиль клиента.
func (h *AdminHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	var req customerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	customer, err := h.customers.Update(r.Context(), req.toDomain(chi.URLParam(r, "id")))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toCustomerDTO(customer))
}

// DeleteCustomer удаляет профиль клиента.
func (h *AdminHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	if err := h.customers.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Dashboard отдаёт агрегаты витрины для админской панели.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboard.Stats(r.Context(), time.Now().UTC())
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toDashboardDTO(stats))
}

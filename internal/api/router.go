package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vladislavdragonenkov/storefront/internal/metrics"
	"github.com/vladislavdragonenkov/storefront/internal/service/catalog"
	"github.com/vladislavdragonenkov/storefront/internal/service/checkout"
	"github.com/vladislavdragonenkov/storefront/internal/service/customers"
	"github.com/vladislavdragonenkov/storefront/internal/service/dashboard"
	"github.com/vladislavdragonenkov/storefront/internal/service/orders"
)

const requestTimeout = 30 * time.Second

// RouterDeps — зависимости HTTP API витрины.
type RouterDeps struct {
	Catalog   *catalog.Service
	Checkout  *checkout.Service
	Orders    *orders.Service
	Customers *customers.Service
	Dashboard *dashboard.Service
	Carts     *CartRegistry
	Metrics   *metrics.StorefrontMetrics
}

// NewRouter собирает роутер витрины: публичный каталог и корзина,
// клиентские заказы и админский срез.
func NewRouter(deps RouterDeps) http.Handler {
	productHandler := NewProductHandler(deps.Catalog)
	cartHandler := NewCartHandler(deps.Carts, deps.Catalog, deps.Metrics)
	ordersHandler := NewOrdersHandler(deps.Checkout, deps.Orders, deps.Carts, deps.Metrics)
	adminHandler := NewAdminHandler(deps.Catalog, deps.Orders, deps.Customers, deps.Dashboard)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(MetricsMiddleware(deps.Metrics))
	r.Use(SessionMiddleware)
	r.Use(MockAuthMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.List)
			r.Get("/{id}", productHandler.Get)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.Get)
			r.Delete("/", cartHandler.Clear)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{product_id}", cartHandler.UpdateQuantity)
			r.Delete("/items/{product_id}", cartHandler.RemoveItem)
		})

		r.Group(func(r chi.Router) {
			r.Use(RequireUser)
			r.Post("/checkout", ordersHandler.Checkout)
			r.Route("/orders", func(r chi.Router) {
				r.Get("/", ordersHandler.List)
				r.Get("/{id}", ordersHandler.Get)
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(RequireAdmin)

			r.Get("/dashboard", adminHandler.Dashboard)

			r.Route("/products", func(r chi.Router) {
				r.Post("/", adminHandler.CreateProduct)
				r.Put("/{id}", adminHandler.UpdateProduct)
				r.Delete("/{id}", adminHandler.DeleteProduct)
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", adminHandler.ListOrders)
				r.Get("/{id}", adminHandler.GetOrder)
				r.Put("/{id}/status", adminHandler.UpdateOrderStatus)
			})

			r.Route("/customers", func(r chi.Router) {
				r.Get("/", adminHandler.ListCustomers)
				r.Post("/", adminHandler.CreateCustomer)
				r.Get("/{id}", adminHandler.GetCustomer)
				r.Put("/{id}", adminHandler.UpdateCustomer)
				r.Delete("/{id}", adminHandler.DeleteCustomer)
			})
		})
	})

	return r
}

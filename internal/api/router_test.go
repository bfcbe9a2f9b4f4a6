package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/storefront/internal/api"
	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/service/catalog"
	"github.com/vladislavdragonenkov/storefront/internal/service/checkout"
	"github.com/vladislavdragonenkov/storefront/internal/service/customers"
	"github.com/vladislavdragonenkov/storefront/internal/service/dashboard"
	"github.com/vladislavdragonenkov/storefront/internal/service/orders"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
)

type testEnv struct {
	router   http.Handler
	products domain.ProductRepository
	orders   domain.OrderRepository
	session  *http.Cookie
	user     string
	role     string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	products := memory.NewProductRepository()
	ordersRepo := memory.NewOrderRepository()
	customersRepo := memory.NewCustomerRepository()
	outbox := memory.NewOutboxRepository()
	kv := memory.NewKeyValueStore()
	pricing := domain.DefaultPricingPolicy()

	router := api.NewRouter(api.RouterDeps{
		Catalog:   catalog.NewService(products, nil),
		Checkout:  checkout.NewService(products, ordersRepo, outbox, pricing, nil),
		Orders:    orders.NewService(ordersRepo, outbox, nil),
		Customers: customers.NewService(customersRepo, nil),
		Dashboard: dashboard.NewService(ordersRepo, customersRepo, products, nil),
		Carts:     api.NewCartRegistry(kv, pricing, nil),
	})

	return &testEnv{router: router, products: products, orders: ordersRepo}
}

func (e *testEnv) seedProduct(t *testing.T, id string, priceMinor int64, stock int32) domain.Product {
	t.Helper()
	p := domain.Product{
		ID:         id,
		Name:       "Product " + id,
		PriceMinor: priceMinor,
		Condition:  domain.ConditionNew,
		Stock:      stock,
		Category:   "electronics",
	}
	require.NoError(t, e.products.Create(p))
	return p
}

// do выполняет запрос, пронося cookie сессии между вызовами.
func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if e.session != nil {
		req.AddCookie(e.session)
	}
	if e.user != "" {
		req.Header.Set("X-User-ID", e.user)
	}
	if e.role != "" {
		req.Header.Set("X-User-Role", e.role)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == api.SessionCookieName {
			e.session = cookie
		}
	}
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(w.Body).Decode(out))
}

type cartResponse struct {
	Items []struct {
		ID       string `json:"id"`
		Quantity int32  `json:"quantity"`
	} `json:"items"`
	ItemCount     int    `json:"item_count"`
	SubtotalMinor int64  `json:"subtotal_minor"`
	ShippingMinor int64  `json:"shipping_minor"`
	TaxMinor      int64  `json:"tax_minor"`
	TotalMinor    int64  `json:"total_minor"`
	Total         string `json:"total"`
}

func TestProducts_ListAndGet(t *testing.T) {
	env := newTestEnv(t)
	env.seedProduct(t, "p1", 1999, 5)
	env.seedProduct(t, "p2", 50000, 2)

	w := env.do(t, http.MethodGet, "/api/products", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list []map[string]interface{}
	decodeBody(t, w, &list)
	assert.Len(t, list, 2)

	w = env.do(t, http.MethodGet, "/api/products/p1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/products/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProducts_ListWithPriceFilter(t *testing.T) {
	env := newTestEnv(t)
	env.seedProduct(t, "cheap", 500, 5)
	env.seedProduct(t, "pricey", 50000, 2)

	w := env.do(t, http.MethodGet, "/api/products?max_price=1000", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list []struct {
		ID string `json:"id"`
	}
	decodeBody(t, w, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "cheap", list[0].ID)

	w = env.do(t, http.MethodGet, "/api/products?max_price=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCart_FullFlow(t *testing.T) {
	env := newTestEnv(t)
	env.seedProduct(t, "p1", 1999, 2)
	env.seedProduct(t, "p2", 500, 5)

	// Пустая корзина новой сессии.
	w := env.do(t, http.MethodGet, "/api/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, env.session)

	var resp cartResponse
	decodeBody(t, w, &resp)
	assert.Zero(t, resp.ItemCount)

	// Добавляем товар дважды: количество растёт до потолка остатка.
	w = env.do(t, http.MethodPost, "/api/cart/items", map[string]string{"product_id": "p1"})
	require.Equal(t, http.StatusOK, w.Code)
	w = env.do(t, http.MethodPost, "/api/cart/items", map[string]string{"product_id": "p1"})
	require.Equal(t, http.StatusOK, w.Code)

	// Третья попытка — молчаливый no-op на потолке.
	w = env.do(t, http.MethodPost, "/api/cart/items", map[string]string{"product_id": "p1"})
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &resp)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, int32(2), resp.Items[0].Quantity)
	assert.Equal(t, int64(3998), resp.SubtotalMinor)

	// Обновление количества и удаление.
	w = env.do(t, http.MethodPost, "/api/cart/items", map[string]string{"product_id": "p2"})
	require.Equal(t, http.StatusOK, w.Code)
	w = env.do(t, http.MethodPut, "/api/cart/items/p2", map[string]int32{"quantity": 3})
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &resp)
	assert.Equal(t, int64(3998+1500), resp.SubtotalMinor)

	w = env.do(t, http.MethodDelete, "/api/cart/items/p1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &resp)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "p2", resp.Items[0].ID)

	// Очистка.
	w = env.do(t, http.MethodDelete, "/api/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &resp)
	assert.Empty(t, resp.Items)
}

func TestCart_NegativeQuantityRejected(t *testing.T) {
	env := newTestEnv(t)
	env.seedProduct(t, "p1", 1999, 5)

	w := env.do(t, http.MethodPost, "/api/cart/items", map[string]string{"product_id": "p1"})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodPut, "/api/cart/items/p1", map[string]int32{"quantity": -1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp cartResponse
	w = env.do(t, http.MethodGet, "/api/cart", nil)
	decodeBody(t, w, &resp)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, int32(1), resp.Items[0].Quantity)
}

func TestCart_OutOfStockProductIgnored(t *testing.T) {
	env := newTestEnv(t)
	env.seedProduct(t, "p1", 1999, 0)

	w := env.do(t, http.MethodPost, "/api/cart/items", map[string]string{"product_id": "p1"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp cartResponse
	decodeBody(t, w, &resp)
	assert.Empty(t, resp.Items)
}

func TestCheckout_RequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/checkout", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCheckout_PlacesOrderAndClearsCart(t *testing.T) {
	env := newTestEnv(t)
	env.seedProduct(t, "p1", 10000, 5)
	env.user = "cust-1"

	w := env.do(t, http.MethodPost, "/api/cart/items", map[string]string{"product_id": "p1"})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodPost, "/api/checkout", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var order struct {
		ID            string `json:"id"`
		Status        string `json:"status"`
		ShippingMinor int64  `json:"shipping_minor"`
		TotalMinor    int64  `json:"total_minor"`
	}
	decodeBody(t, w, &order)
	assert.Equal(t, "pending", order.Status)
	assert.Zero(t, order.ShippingMinor)
	assert.Equal(t, int64(10800), order.TotalMinor)

	// Корзина очищена после оформления.
	var resp cartResponse
	w = env.do(t, http.MethodGet, "/api/cart", nil)
	decodeBody(t, w, &resp)
	assert.Empty(t, resp.Items)

	// Заказ виден в истории клиента.
	w = env.do(t, http.MethodGet, "/api/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []struct {
		ID string `json:"id"`
	}
	decodeBody(t, w, &list)
	require.Len(t, list, 1)
	assert.Equal(t, order.ID, list[0].ID)
}

func TestCheckout_EmptyCart(t *testing.T) {
	env := newTestEnv(t)
	env.user = "cust-1"

	w := env.do(t, http.MethodPost, "/api/checkout", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrders_ForeignOrderHidden(t *testing.T) {
	env := newTestEnv(t)
	env.seedProduct(t, "p1", 1000, 5)

	env.user = "cust-1"
	env.do(t, http.MethodPost, "/api/cart/items", map[string]string{"product_id": "p1"})
	w := env.do(t, http.MethodPost, "/api/checkout", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var order struct {
		ID string `json:"id"`
	}
	decodeBody(t, w, &order)

	env.user = "cust-2"
	w = env.do(t, http.MethodGet, "/api/orders/"+order.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdmin_RequiresAdminRole(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/admin/orders", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	env.user = "cust-1"
	w = env.do(t, http.MethodGet, "/api/admin/orders", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	env.role = "admin"
	w = env.do(t, http.MethodGet, "/api/admin/orders", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdmin_ProductLifecycle(t *testing.T) {
	env := newTestEnv(t)
	env.user = "admin-1"
	env.role = "admin"

	w := env.do(t, http.MethodPost, "/api/admin/products", map[string]interface{}{
		"name":        "Turntable",
		"price_minor": 24900,
		"condition":   "refurbished",
		"stock":       3,
		"category":    "audio",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		ID string `json:"id"`
	}
	decodeBody(t, w, &created)
	require.NotEmpty(t, created.ID)

	w = env.do(t, http.MethodPut, "/api/admin/products/"+created.ID, map[string]interface{}{
		"name":        "Turntable",
		"price_minor": 19900,
		"condition":   "refurbished",
		"stock":       3,
		"category":    "audio",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodDelete, "/api/admin/products/"+created.ID, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = env.do(t, http.MethodGet, "/api/products/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdmin_CreateProductValidation(t *testing.T) {
	env := newTestEnv(t)
	env.user = "admin-1"
	env.role = "admin"

	w := env.do(t, http.MethodPost, "/api/admin/products", map[string]interface{}{
		"name":        "",
		"price_minor": -5,
		"condition":   "new",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdmin_OrderStatusUpdate(t *testing.T) {
	env := newTestEnv(t)
	env.seedProduct(t, "p1", 1000, 5)

	env.user = "cust-1"
	env.do(t, http.MethodPost, "/api/cart/items", map[string]string{"product_id": "p1"})
	w := env.do(t, http.MethodPost, "/api/checkout", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var order struct {
		ID string `json:"id"`
	}
	decodeBody(t, w, &order)

	env.user = "admin-1"
	env.role = "admin"

	w = env.do(t, http.MethodPut, "/api/admin/orders/"+order.ID+"/status", map[string]string{"status": "processing"})
	require.Equal(t, http.StatusOK, w.Code)

	// Недопустимый переход.
	w = env.do(t, http.MethodPut, "/api/admin/orders/"+order.ID+"/status", map[string]string{"status": "delivered"})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Неизвестный статус.
	w = env.do(t, http.MethodPut, "/api/admin/orders/"+order.ID+"/status", map[string]string{"status": "teleported"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdmin_CustomersAndDashboard(t *testing.T) {
	env := newTestEnv(t)
	env.user = "admin-1"
	env.role = "admin"

	w := env.do(t, http.MethodPost, "/api/admin/customers", map[string]string{
		"email":      "jane@example.com",
		"first_name": "Jane",
		"last_name":  "Doe",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var customer struct {
		ID       string `json:"id"`
		FullName string `json:"full_name"`
	}
	decodeBody(t, w, &customer)
	assert.Equal(t, "Jane Doe", customer.FullName)

	w = env.do(t, http.MethodGet, "/api/admin/customers", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/admin/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stats struct {
		TotalCustomers int `json:"total_customers"`
	}
	decodeBody(t, w, &stats)
	assert.Equal(t, 1, stats.TotalCustomers)
}

func TestSessionIsolation(t *testing.T) {
	env := newTestEnv(t)
	env.seedProduct(t, "p1", 1999, 5)

	w := env.do(t, http.MethodPost, "/api/cart/items", map[string]string{"product_id": "p1"})
	require.Equal(t, http.StatusOK, w.Code)

	// Другая сессия видит пустую корзину.
	other := &testEnv{router: env.router, products: env.products, orders: env.orders}
	w = other.do(t, http.MethodGet, "/api/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp cartResponse
	decodeBody(t, w, &resp)
	assert.Empty(t, resp.Items)
}

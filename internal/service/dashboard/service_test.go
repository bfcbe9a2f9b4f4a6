package dashboard_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
	"github.com/vladislavdragonenkov/storefront/internal/service/dashboard"
	"github.com/vladislavdragonenkov/storefront/internal/storage/memory"
)

type dashboardEnv struct {
	orders    domain.OrderRepository
	customers domain.CustomerRepository
	products  domain.ProductRepository
	svc       *dashboard.Service
}

func newDashboardEnv() *dashboardEnv {
	orders := memory.NewOrderRepository()
	customers := memory.NewCustomerRepository()
	products := memory.NewProductRepository()
	return &dashboardEnv{
		orders:    orders,
		customers: customers,
		products:  products,
		svc:       dashboard.NewService(orders, customers, products, nil),
	}
}

func (e *dashboardEnv) seedOrder(t *testing.T, id string, status domain.OrderStatus, totalMinor int64, createdAt time.Time) {
	t.Helper()
	require.NoError(t, e.orders.Create(domain.Order{
		ID:         id,
		CustomerID: "cust-1",
		Status:     status,
		Currency:   "USD",
		TotalMinor: totalMinor,
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}))
}

func (e *dashboardEnv) seedCustomer(t *testing.T, id string, createdAt time.Time) {
	t.Helper()
	require.NoError(t, e.customers.Create(domain.Customer{
		ID:        id,
		Email:     id + "@example.com",
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}))
}

func TestStats_TotalsAndStatusBreakdown(t *testing.T) {
	env := newDashboardEnv()
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	env.seedOrder(t, "o-1", domain.OrderStatusPending, 1000, now.Add(-time.Hour))
	env.seedOrder(t, "o-2", domain.OrderStatusDelivered, 2500, now.Add(-2*time.Hour))
	env.seedOrder(t, "o-3", domain.OrderStatusCancelled, 9999, now.Add(-3*time.Hour))
	env.seedCustomer(t, "cust-1", now.Add(-24*time.Hour))

	require.NoError(t, env.products.Create(domain.Product{
		ID: "p-1", Name: "Cable", PriceMinor: 500, Condition: domain.ConditionNew, Stock: 3,
	}))

	stats, err := env.svc.Stats(t.Context(), now)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalOrders)
	assert.Equal(t, 1, stats.TotalCustomers)
	assert.Equal(t, 1, stats.TotalProducts)

	// Отменённый заказ не попадает в продажи.
	assert.Equal(t, int64(3500), stats.TotalSalesMinor)

	assert.Equal(t, 1, stats.OrdersByStatus[domain.OrderStatusPending])
	assert.Equal(t, 1, stats.OrdersByStatus[domain.OrderStatusDelivered])
	assert.Equal(t, 1, stats.OrdersByStatus[domain.OrderStatusCancelled])
}

func TestStats_Trends(t *testing.T) {
	env := newDashboardEnv()
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	// Текущее окно: 30 дней, предыдущее окно: 30 дней до него.
	env.seedOrder(t, "o-cur", domain.OrderStatusDelivered, 2000, now.Add(-10*24*time.Hour))
	env.seedOrder(t, "o-prev", domain.OrderStatusDelivered, 1000, now.Add(-40*24*time.Hour))

	env.seedCustomer(t, "cust-cur", now.Add(-5*24*time.Hour))

	stats, err := env.svc.Stats(t.Context(), now)
	require.NoError(t, err)

	assert.InDelta(t, 100.0, stats.SalesTrendPct, 0.01)
	assert.InDelta(t, 0.0, stats.OrdersTrendPct, 0.01)
	// Предыдущее окно пустое, текущее непустое.
	assert.InDelta(t, 100.0, stats.CustomersTrendPct, 0.01)
}

func TestStats_TrendsEmptyStore(t *testing.T) {
	env := newDashboardEnv()

	stats, err := env.svc.Stats(t.Context(), time.Now().UTC())
	require.NoError(t, err)

	assert.Zero(t, stats.TotalSalesMinor)
	assert.InDelta(t, 0.0, stats.SalesTrendPct, 0.01)
	assert.InDelta(t, 0.0, stats.OrdersTrendPct, 0.01)
	assert.Empty(t, stats.RecentOrders)
}

func TestStats_MonthlySales(t *testing.T) {
	env := newDashboardEnv()
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	env.seedOrder(t, "o-jun", domain.OrderStatusDelivered, 3000, now.Add(-24*time.Hour))
	env.seedOrder(t, "o-may", domain.OrderStatusDelivered, 1500, time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC))
	env.seedOrder(t, "o-may-cancel", domain.OrderStatusCancelled, 7777, time.Date(2026, 5, 3, 0, 0, 0, 0, time.UTC))
	env.seedOrder(t, "o-ancient", domain.OrderStatusDelivered, 500, time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC))

	stats, err := env.svc.Stats(t.Context(), now)
	require.NoError(t, err)

	require.Len(t, stats.MonthlySales, 6)
	assert.Equal(t, "Jan", stats.MonthlySales[0].Month)
	assert.Equal(t, "Jun", stats.MonthlySales[5].Month)
	assert.Equal(t, int64(3000), stats.MonthlySales[5].TotalMinor)
	assert.Equal(t, int64(1500), stats.MonthlySales[4].TotalMinor)
	// Ноябрь 2025 вне окна шести месяцев.
	var total int64
	for _, m := range stats.MonthlySales {
		total += m.TotalMinor
	}
	assert.Equal(t, int64(4500), total)
}

func TestStats_RecentOrdersCapped(t *testing.T) {
	env := newDashboardEnv()
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 8; i++ {
		env.seedOrder(t, fmt.Sprintf("o-%d", i), domain.OrderStatusPending, 100, now.Add(-time.Duration(i)*time.Hour))
	}

	stats, err := env.svc.Stats(t.Context(), now)
	require.NoError(t, err)
	require.Len(t, stats.RecentOrders, 5)
	assert.Equal(t, "o-0", stats.RecentOrders[0].ID)
	assert.Equal(t, "o-4", stats.RecentOrders[4].ID)
}

package dashboard

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

const (
	trendWindow    = 30 * 24 * time.Hour
	monthlyWindow  = 6
	recentOrderCap = 5
)

// MonthlySales — суммарные продажи за календарный месяц.
type MonthlySales struct {
	Month      string `json:"month"`
	TotalMinor int64  `json:"total_minor"`
}

// Stats агрегирует показатели витрины для админской панели.
type Stats struct {
	TotalSalesMinor   int64                      `json:"total_sales_minor"`
	TotalOrders       int                        `json:"total_orders"`
	TotalCustomers    int                        `json:"total_customers"`
	TotalProducts     int                        `json:"total_products"`
	SalesTrendPct     float64                    `json:"sales_trend_pct"`
	OrdersTrendPct    float64                    `json:"orders_trend_pct"`
	CustomersTrendPct float64                    `json:"customers_trend_pct"`
	OrdersByStatus    map[domain.OrderStatus]int `json:"orders_by_status"`
	MonthlySales      []MonthlySales             `json:"monthly_sales"`
	RecentOrders      []domain.Order             `json:"recent_orders"`
}

// Service строит агрегаты админской панели поверх репозиториев.
// Вся арифметика — по выборке в памяти; объёмы витрины это позволяют.
type Service struct {
	orders    domain.OrderRepository
	customers domain.CustomerRepository
	products  domain.ProductRepository
	logger    *log.Entry
}

// NewService конструирует сервис панели.
func NewService(
	orders domain.OrderRepository,
	customers domain.CustomerRepository,
	products domain.ProductRepository,
	logger *log.Entry,
) *Service {
	if logger == nil {
		logger = log.WithField("component", "dashboard")
	}
	return &Service{orders: orders, customers: customers, products: products, logger: logger}
}

// Stats собирает показатели на момент now. Отменённые заказы не
// участвуют в суммах продаж, но учитываются в разбивке по статусам.
func (s *Service) Stats(_ context.Context, now time.Time) (Stats, error) {
	allOrders, err := s.orders.ListAll(0)
	if err != nil {
		return Stats{}, fmt.Errorf("list orders: %w", err)
	}
	allCustomers, err := s.customers.List(0)
	if err != nil {
		return Stats{}, fmt.Errorf("list customers: %w", err)
	}
	allProducts, err := s.products.List(domain.ProductFilter{})
	if err != nil {
		return Stats{}, fmt.Errorf("list products: %w", err)
	}

	stats := Stats{
		TotalOrders:    len(allOrders),
		TotalCustomers: len(allCustomers),
		TotalProducts:  len(allProducts),
		OrdersByStatus: make(map[domain.OrderStatus]int),
	}

	currentStart := now.Add(-trendWindow)
	previousStart := now.Add(-2 * trendWindow)

	var salesCur, salesPrev int64
	var ordersCur, ordersPrev int

	for _, order := range allOrders {
		stats.OrdersByStatus[order.Status]++

		if order.Status == domain.OrderStatusCancelled {
			continue
		}
		stats.TotalSalesMinor += order.TotalMinor

		switch {
		case !order.CreatedAt.Before(currentStart):
			salesCur += order.TotalMinor
			ordersCur++
		case !order.CreatedAt.Before(previousStart):
			salesPrev += order.TotalMinor
			ordersPrev++
		}
	}

	var customersCur, customersPrev int
	for _, customer := range allCustomers {
		switch {
		case !customer.CreatedAt.Before(currentStart):
			customersCur++
		case !customer.CreatedAt.Before(previousStart):
			customersPrev++
		}
	}

	stats.SalesTrendPct = trendPct(float64(salesCur), float64(salesPrev))
	stats.OrdersTrendPct = trendPct(float64(ordersCur), float64(ordersPrev))
	stats.CustomersTrendPct = trendPct(float64(customersCur), float64(customersPrev))

	stats.MonthlySales = monthlySales(allOrders, now)

	if len(allOrders) > recentOrderCap {
		stats.RecentOrders = allOrders[:recentOrderCap]
	} else {
		stats.RecentOrders = allOrders
	}

	return stats, nil
}

// trendPct возвращает процент изменения текущего окна к предыдущему.
// Пустое предыдущее окно даёт 100% при ненулевом текущем и 0% иначе.
func trendPct(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return (current - previous) / previous * 100
}

// monthlySales раскладывает продажи по последним шести календарным месяцам.
func monthlySales(orders []domain.Order, now time.Time) []MonthlySales {
	type bucket struct {
		label string
		total int64
	}

	buckets := make([]bucket, monthlyWindow)
	index := make(map[string]int, monthlyWindow)
	for i := 0; i < monthlyWindow; i++ {
		m := now.AddDate(0, -(monthlyWindow - 1 - i), 0)
		key := m.Format("2006-01")
		buckets[i] = bucket{label: m.Format("Jan")}
		index[key] = i
	}

	for _, order := range orders {
		if order.Status == domain.OrderStatusCancelled {
			continue
		}
		key := order.CreatedAt.Format("2006-01")
		if i, ok := index[key]; ok {
			buckets[i].total += order.TotalMinor
		}
	}

	result := make([]MonthlySales, monthlyWindow)
	for i, b := range buckets {
		result[i] = MonthlySales{Month: b.label, TotalMinor: b.total}
	}
	return result
}

package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StorefrontMetrics содержит метрики корзины, оформления заказов и HTTP API.
type StorefrontMetrics struct {
	// Счётчики операций корзины
	cartItemsAdded   prometheus.Counter
	cartItemsRemoved prometheus.Counter
	cartRejected     *prometheus.CounterVec
	cartCleared      prometheus.Counter

	// Оформление заказов
	ordersPlaced     prometheus.Counter
	ordersFailed     prometheus.Counter
	checkoutDuration prometheus.Histogram

	// HTTP API
	httpRequestDuration *prometheus.HistogramVec
}

// NewStorefrontMetrics создаёт метрики витрины в default registry.
func NewStorefrontMetrics() *StorefrontMetrics {
	return NewStorefrontMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

// NewStorefrontMetricsWithRegisterer создаёт метрики в переданном registry.
// Повторная регистрация возвращает уже существующие collectors.
func NewStorefrontMetricsWithRegisterer(registerer prometheus.Registerer) *StorefrontMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &StorefrontMetrics{
		cartItemsAdded: registerCounter(registerer, prometheus.CounterOpts{
			Name: "storefront_cart_items_added_total",
			Help: "Total number of items added to carts",
		}),
		cartItemsRemoved: registerCounter(registerer, prometheus.CounterOpts{
			Name: "storefront_cart_items_removed_total",
			Help: "Total number of items removed from carts",
		}),
		cartRejected: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "storefront_cart_rejected_total",
			Help: "Total number of rejected cart mutations grouped by reason",
		}, []string{"reason"}),
		cartCleared: registerCounter(registerer, prometheus.CounterOpts{
			Name: "storefront_cart_cleared_total",
			Help: "Total number of cart clear operations",
		}),
		ordersPlaced: registerCounter(registerer, prometheus.CounterOpts{
			Name: "storefront_orders_placed_total",
			Help: "Total number of orders placed successfully",
		}),
		ordersFailed: registerCounter(registerer, prometheus.CounterOpts{
			Name: "storefront_orders_failed_total",
			Help: "Total number of failed checkout attempts",
		}),
		checkoutDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "storefront_checkout_duration_seconds",
			Help:    "Duration of checkout operations in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		httpRequestDuration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "storefront_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"method", "route", "status"}),
	}
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	collector := prometheus.NewHistogram(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Histogram)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	collector := prometheus.NewHistogramVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.HistogramVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram vec %q: %v", opts.Name, err))
	}
	return collector
}

// RecordCartItemAdded увеличивает счётчик добавлений в корзину.
func (m *StorefrontMetrics) RecordCartItemAdded() {
	m.cartItemsAdded.Inc()
}

// RecordCartItemRemoved увеличивает счётчик удалений из корзины.
func (m *StorefrontMetrics) RecordCartItemRemoved() {
	m.cartItemsRemoved.Inc()
}

// RecordCartRejected увеличивает счётчик отклонённых мутаций корзины.
func (m *StorefrontMetrics) RecordCartRejected(reason string) {
	m.cartRejected.WithLabelValues(reason).Inc()
}

// RecordCartCleared увеличивает счётчик очисток корзины.
func (m *StorefrontMetrics) RecordCartCleared() {
	m.cartCleared.Inc()
}

// RecordOrderPlaced увеличивает счётчик успешных оформлений.
func (m *StorefrontMetrics) RecordOrderPlaced() {
	m.ordersPlaced.Inc()
}

// RecordOrderFailed увеличивает счётчик неудачных оформлений.
func (m *StorefrontMetrics) RecordOrderFailed() {
	m.ordersFailed.Inc()
}

// RecordCheckoutDuration записывает длительность оформления заказа.
func (m *StorefrontMetrics) RecordCheckoutDuration(duration time.Duration) {
	m.checkoutDuration.Observe(duration.Seconds())
}

// RecordHTTPRequest записывает длительность HTTP-запроса.
func (m *StorefrontMetrics) RecordHTTPRequest(method, route, status string, duration time.Duration) {
	m.httpRequestDuration.WithLabelValues(method, route, status).Observe(duration.Seconds())
}

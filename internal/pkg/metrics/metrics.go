package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	HttpRequestsTotal   *prometheus.CounterVec
	HttpRequestDuration *prometheus.HistogramVec

	// operation is e.g. "add", "update_quantity"; result is "success" or "error"
	CartOperations  *prometheus.CounterVec
	OrderOperations *prometheus.CounterVec
	OrderTotal      prometheus.Histogram
	ChatRequests    *prometheus.CounterVec

	CatalogCacheHits   prometheus.Counter
	CatalogCacheMisses prometheus.Counter
}

// NewMetrics registers every collector on reg with the given name prefix.
func NewMetrics(prefix string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HttpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HttpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		CartOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_cart_operations_total",
				Help: "Cart operations by type and result",
			},
			[]string{"operation", "result"},
		),
		OrderOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_order_operations_total",
				Help: "Order placements by result",
			},
			[]string{"operation", "result"},
		),
		OrderTotal: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    prefix + "_order_total_amount",
				Help:    "Distribution of placed order totals",
				Buckets: []float64{10, 25, 50, 100, 250, 500, 1000},
			},
		),
		ChatRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_chat_requests_total",
				Help: "Assistant requests by result",
			},
			[]string{"result"},
		),
		CatalogCacheHits: factory.NewCounter(
			prometheus.CounterOpts{
				Name: prefix + "_catalog_cache_hits_total",
				Help: "Catalog reads served from cache",
			},
		),
		CatalogCacheMisses: factory.NewCounter(
			prometheus.CounterOpts{
				Name: prefix + "_catalog_cache_misses_total",
				Help: "Catalog reads that went to the database",
			},
		),
	}
}

func resultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// The helpers below are nil-safe so services can run without metrics in tests.

func (m *Metrics) ObserveCart(operation string, err error) {
	if m == nil {
		return
	}
	m.CartOperations.WithLabelValues(operation, resultLabel(err)).Inc()
}

func (m *Metrics) ObserveOrder(operation string, err error) {
	if m == nil {
		return
	}
	m.OrderOperations.WithLabelValues(operation, resultLabel(err)).Inc()
}

func (m *Metrics) ObserveOrderTotal(amount float64) {
	if m == nil {
		return
	}
	m.OrderTotal.Observe(amount)
}

func (m *Metrics) ObserveChat(err error) {
	if m == nil {
		return
	}
	m.ChatRequests.WithLabelValues(resultLabel(err)).Inc()
}

func (m *Metrics) CacheHit() {
	if m == nil {
		return
	}
	m.CatalogCacheHits.Inc()
}

func (m *Metrics) CacheMiss() {
	if m == nil {
		return
	}
	m.CatalogCacheMisses.Inc()
}

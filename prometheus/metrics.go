package prometheus

import (
	"github.com/invmanage/inventory-service/pkg/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Domain operation counters
	CategoryOperationsCounter prometheus.CounterVec
	ProductOperationsCounter  prometheus.CounterVec
	UserOperationsCounter     prometheus.CounterVec

	// POS ingestion metrics
	SalesRowsIngestedCounter prometheus.Counter
	SalesUploadsCounter      prometheus.Counter

	// Inventory state
	LowStockGauge prometheus.Gauge
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(cfg *config.Config) {
	prefix := cfg.Metrics.Prefix

	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	CategoryOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_category_operations_total",
			Help: "Total number of category operations by type",
		},
		[]string{"operation"},
	)

	ProductOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_product_operations_total",
			Help: "Total number of product operations by type",
		},
		[]string{"operation"},
	)

	UserOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_user_operations_total",
			Help: "Total number of user operations by type",
		},
		[]string{"operation"},
	)

	SalesRowsIngestedCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_pos_rows_ingested_total",
			Help: "Total number of POS sales records ingested",
		},
	)

	SalesUploadsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_pos_uploads_total",
			Help: "Total number of POS CSV uploads",
		},
	)

	LowStockGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: prefix + "_low_stock_products",
			Help: "Number of products at or below their reorder threshold",
		},
	)
}

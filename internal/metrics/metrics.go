package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Business Metrics
	PaymentsReceived     prometheus.Counter
	PaymentsProcessed    *prometheus.CounterVec
	ReconnectionAttempts *prometheus.CounterVec
	CreditsGranted       *prometheus.CounterVec
	WalletBalances       *prometheus.GaugeVec

	// Database Metrics
	DBConnectionsInUse prometheus.Gauge
	DBConnectionsIdle  prometheus.Gauge
	DBQueryDuration    *prometheus.HistogramVec
	DBQueriesTotal     *prometheus.CounterVec
	DBConnectionErrors prometheus.Counter

	// System Metrics
	ServiceUptime    prometheus.Gauge
	Goroutines       prometheus.Gauge
	MemoryUsageBytes *prometheus.GaugeVec
}

func NewMetrics() *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "callbackprocessor_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "callbackprocessor_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "callbackprocessor_http_requests_in_flight",
				Help: "Number of HTTP requests currently being served",
			},
		),

		PaymentsReceived: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "callbackprocessor_payments_received_total",
				Help: "Total number of payment callbacks received",
			},
		),
		PaymentsProcessed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "callbackprocessor_payments_processed_total",
				Help: "Total number of payments processed by route and outcome",
			},
			[]string{"route", "status"},
		),
		ReconnectionAttempts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "callbackprocessor_reconnection_attempts_total",
				Help: "Total number of device reconnection attempts",
			},
			[]string{"status"},
		),
		CreditsGranted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "callbackprocessor_credits_granted_total",
				Help: "Total number of messaging credits granted",
			},
			[]string{"credit_type"},
		),
		WalletBalances: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "callbackprocessor_isp_wallet_balance",
				Help: "Last observed wallet balance per ISP",
			},
			[]string{"isp_id"},
		),

		DBConnectionsInUse: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "callbackprocessor_db_connections_in_use",
				Help: "Number of database connections currently in use",
			},
		),
		DBConnectionsIdle: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "callbackprocessor_db_connections_idle",
				Help: "Number of idle database connections",
			},
		),
		DBQueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "callbackprocessor_db_query_duration_seconds",
				Help:    "Duration of database queries in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
			},
			[]string{"operation", "table"},
		),
		DBQueriesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "callbackprocessor_db_queries_total",
				Help: "Total number of database queries",
			},
			[]string{"operation", "table", "status"},
		),
		DBConnectionErrors: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "callbackprocessor_db_connection_errors_total",
				Help: "Total number of database connection errors",
			},
		),

		ServiceUptime: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "callbackprocessor_service_uptime_seconds",
				Help: "Service uptime in seconds",
			},
		),
		Goroutines: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "callbackprocessor_goroutines",
				Help: "Number of goroutines currently running",
			},
		),
		MemoryUsageBytes: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "callbackprocessor_memory_usage_bytes",
				Help: "Memory usage in bytes",
			},
			[]string{"type"},
		),
	}
}

// --- Recording Methods ---

func (m *Metrics) RecordHTTPRequest(method, path, statusCode string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration.Seconds())
}

func (m *Metrics) RecordPaymentReceived() {
	m.PaymentsReceived.Inc()
}

func (m *Metrics) RecordPaymentProcessed(route, status string) {
	m.PaymentsProcessed.WithLabelValues(route, status).Inc()
}

func (m *Metrics) RecordReconnection(status string) {
	m.ReconnectionAttempts.WithLabelValues(status).Inc()
}

func (m *Metrics) RecordCreditsGranted(creditType string, credits int64) {
	m.CreditsGranted.WithLabelValues(creditType).Add(float64(credits))
}

func (m *Metrics) UpdateWalletBalance(ispID string, balance float64) {
	m.WalletBalances.WithLabelValues(ispID).Set(balance)
}

func (m *Metrics) RecordDBQuery(operation, table, status string, duration time.Duration) {
	m.DBQueriesTotal.WithLabelValues(operation, table, status).Inc()
	m.DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
}

func (m *Metrics) RecordDBConnectionError() {
	m.DBConnectionErrors.Inc()
}

// UpdateSystemMetrics updates system-level metrics (goroutines, uptime, memory).
func (m *Metrics) UpdateSystemMetrics(uptime time.Duration, memStats *runtime.MemStats) {
	m.ServiceUptime.Set(uptime.Seconds())
	m.Goroutines.Set(float64(runtime.NumGoroutine()))

	m.MemoryUsageBytes.WithLabelValues("alloc").Set(float64(memStats.Alloc))
	m.MemoryUsageBytes.WithLabelValues("sys").Set(float64(memStats.Sys))
	m.MemoryUsageBytes.WithLabelValues("heap_alloc").Set(float64(memStats.HeapAlloc))
}

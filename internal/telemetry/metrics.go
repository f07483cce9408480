package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "accounts_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "accounts_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Transfer metrics
	TransfersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "accounts_transfers_total",
			Help: "Total number of transfer attempts",
		},
		[]string{"status"}, // success, rejected
	)

	TransferViolationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "accounts_transfer_violations_total",
			Help: "Total number of transfer validation violations",
		},
		[]string{"code"},
	)

	TransferAmount = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "accounts_transfer_amount",
			Help:    "Transfer amount distribution",
			Buckets: []float64{1, 5, 10, 50, 100, 500, 1000, 5000, 10000},
		},
		[]string{"status"},
	)

	TransferDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "accounts_transfer_duration_seconds",
			Help:    "Time to perform a transfer end to end",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)

	LockWaitDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "accounts_lock_wait_duration_seconds",
			Help:    "Time spent acquiring both account locks",
			Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
		},
	)

	// Notification metrics
	NotificationsPublished = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "accounts_notifications_published_total",
			Help: "Total number of transfer notifications published",
		},
	)

	NotificationFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "accounts_notification_failures_total",
			Help: "Total number of notification deliveries that failed",
		},
	)

	// Account metrics
	AccountCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "accounts_count",
			Help: "Total number of accounts",
		},
	)

	TotalBalanceGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "accounts_total_balance",
			Help: "Total balance across all accounts",
		},
	)
)

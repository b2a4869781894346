package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Entry metrics
	EntriesCreated  *prometheus.CounterVec
	EntryDuration   prometheus.Histogram
	EntryErrors     *prometheus.CounterVec
	TransfersLinked prometheus.Counter

	// Book metrics
	BooksCreated   prometheus.Counter
	BookOperations *prometheus.CounterVec

	// Exchange rate metrics
	RateRefreshes   *prometheus.CounterVec
	RatesStored     prometheus.Gauge
	RateFetchErrors *prometheus.CounterVec
	RateCacheHits   prometheus.Counter
	RateCacheMisses prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Authentication metrics
	AuthAttempts *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Entry metrics
		EntriesCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "forexledger_entries_created_total",
				Help: "Total number of entries created by transaction type",
			},
			[]string{"transaction_type"},
		),
		EntryDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "forexledger_entry_duration_seconds",
			Help:    "Duration of entry creation",
			Buckets: prometheus.DefBuckets,
		}),
		EntryErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "forexledger_entry_errors_total",
				Help: "Total number of entry errors by type",
			},
			[]string{"error_type"},
		),
		TransfersLinked: promauto.NewCounter(prometheus.CounterOpts{
			Name: "forexledger_transfers_linked_total",
			Help: "Total number of cross-book transfers expanded into entry pairs",
		}),

		// Book metrics
		BooksCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "forexledger_books_created_total",
			Help: "Total number of books created",
		}),
		BookOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "forexledger_book_operations_total",
				Help: "Total book operations by type",
			},
			[]string{"operation"},
		),

		// Exchange rate metrics
		RateRefreshes: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "forexledger_rate_refreshes_total",
				Help: "Total rate refresh runs by bank",
			},
			[]string{"bank"},
		),
		RatesStored: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "forexledger_rates_stored",
			Help: "Number of rates stored by the last refresh",
		}),
		RateFetchErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "forexledger_rate_fetch_errors_total",
				Help: "Total rate source fetch errors by bank",
			},
			[]string{"bank"},
		),
		RateCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "forexledger_rate_cache_hits_total",
			Help: "Total rate lookups served from cache",
		}),
		RateCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "forexledger_rate_cache_misses_total",
			Help: "Total rate lookups that fell through to the database",
		}),

		// API metrics
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "forexledger_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "forexledger_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		// Authentication metrics
		AuthAttempts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "forexledger_auth_attempts_total",
				Help: "Total authentication attempts",
			},
			[]string{"status"},
		),
	}
}

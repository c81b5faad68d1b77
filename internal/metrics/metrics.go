package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsPrefix is the prefix used for all metrics
const MetricsPrefix = "cryptomarket_"

// Request status labels
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Sync cycle result labels
const (
	CycleOK     = "ok"
	CycleFailed = "failed"
)

var (
	// CoingeckoRequestsTotal counts HTTP requests to the CoinGecko API
	// Cardinality: 2 (success, error)
	CoingeckoRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "coingecko_requests_total",
			Help: "Total number of HTTP requests to the CoinGecko API",
		},
		[]string{"status"},
	)

	// CoingeckoRetriesTotal counts page fetches that had to be retried
	CoingeckoRetriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "coingecko_retries_total",
			Help: "Total number of retried CoinGecko page fetches",
		},
	)

	// SyncCyclesTotal counts completed sync cycles by result
	// Cardinality: 2 (ok, failed)
	SyncCyclesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "sync_cycles_total",
			Help: "Total number of snapshot sync cycles by result",
		},
		[]string{"result"},
	)

	// SyncCycleDuration tracks how long a full fetch-and-replace cycle takes
	SyncCycleDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: MetricsPrefix + "sync_cycle_duration_seconds",
			Help: "Time taken to fetch and replace a full market snapshot",
		},
	)

	// SnapshotSize tracks the row count of the last stored snapshot
	SnapshotSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricsPrefix + "snapshot_size",
			Help: "Number of cryptocurrencies in the last stored snapshot",
		},
	)

	// LastSyncUnix tracks when the last successful sync finished
	LastSyncUnix = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricsPrefix + "last_sync_timestamp_seconds",
			Help: "Unix timestamp of the last successful snapshot sync",
		},
	)
)

// RecordCycle records the outcome and duration of one sync cycle
func RecordCycle(result string, start time.Time) {
	SyncCyclesTotal.WithLabelValues(result).Inc()
	SyncCycleDuration.Observe(time.Since(start).Seconds())
}

// RecordSnapshot records a successfully stored snapshot
func RecordSnapshot(size int) {
	SnapshotSize.Set(float64(size))
	LastSyncUnix.Set(float64(time.Now().Unix()))
}

package syncer

import (
	"context" // Loop cancellation
	"time"    // Interval ticker

	"cryptomarket/internal/domain"  // Snapshot rows
	"cryptomarket/internal/metrics" // Cycle counters
	"cryptomarket/internal/utils"   // Redis cache helpers

	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// CryptoCachePrefix namespaces the Redis keys of the crypto listing endpoints
const CryptoCachePrefix = "cryptos:"

// MarketFetcher fetches the full upstream snapshot
type MarketFetcher interface {
	FetchMarkets(ctx context.Context) ([]domain.CryptoCurrency, error)
}

// SnapshotStore swaps the cached snapshot for a new one
type SnapshotStore interface {
	ReplaceAll(ctx context.Context, cryptos []domain.CryptoCurrency) error
}

// Syncer periodically refreshes the local snapshot from the market provider.
// It owns all writes to the cryptocurrency table.
type Syncer struct {
	fetcher  MarketFetcher
	store    SnapshotStore
	rdb      *redis.Client
	interval time.Duration
}

// New creates a syncer; rdb may be nil when no response cache is configured
func New(fetcher MarketFetcher, store SnapshotStore, rdb *redis.Client, interval time.Duration) *Syncer {
	return &Syncer{fetcher: fetcher, store: store, rdb: rdb, interval: interval}
}

// Run executes sync cycles until the context is cancelled. The first cycle
// starts immediately; a failed cycle is logged and counted, and the loop
// carries on at the next tick.
func (s *Syncer) Run(ctx context.Context) {
	logrus.WithFields(logrus.Fields{
		"interval": s.interval.String(),
	}).Info("Snapshot sync started")
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		if err := s.RunOnce(ctx); err != nil {
			if ctx.Err() != nil {
				logrus.Info("Snapshot sync stopped")
				return
			}
			logrus.WithField("error", err.Error()).Error("Sync cycle failed")
		}
		select {
		case <-ctx.Done():
			logrus.Info("Snapshot sync stopped")
			return
		case <-ticker.C:
		}
	}
}

// RunOnce performs one fetch-and-replace cycle
func (s *Syncer) RunOnce(ctx context.Context) error {
	start := time.Now()
	cryptos, err := s.fetcher.FetchMarkets(ctx)
	if err != nil {
		metrics.RecordCycle(metrics.CycleFailed, start)
		return err
	}
	if err := s.store.ReplaceAll(ctx, cryptos); err != nil {
		metrics.RecordCycle(metrics.CycleFailed, start)
		return err
	}
	// Listing responses cached before the replace describe the old snapshot
	if err := utils.DeleteCacheByPrefix(ctx, s.rdb, CryptoCachePrefix); err != nil {
		logrus.WithField("error", err.Error()).Warn("Failed to invalidate listing cache")
	}
	metrics.RecordCycle(metrics.CycleOK, start)
	metrics.RecordSnapshot(len(cryptos))
	logrus.WithFields(logrus.Fields{
		"cryptos":  len(cryptos),
		"duration": time.Since(start).String(),
	}).Info("Snapshot replaced")
	return nil
}

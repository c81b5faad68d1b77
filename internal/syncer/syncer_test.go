package syncer

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"cryptomarket/internal/domain"
	"cryptomarket/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBCounter int64

func newCryptoRepo(t *testing.T) *repository.CryptoRepository {
	t.Helper()
	dsn := fmt.Sprintf("file:synctest%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.CryptoCurrency{}))
	return repository.NewCryptoRepository(db)
}

// fakeFetcher returns a fixed snapshot or error, counting calls
type fakeFetcher struct {
	snapshot []domain.CryptoCurrency
	err      error
	calls    atomic.Int64
}

func (f *fakeFetcher) FetchMarkets(ctx context.Context) ([]domain.CryptoCurrency, error) {
	f.calls.Add(1)
	return f.snapshot, f.err
}

func TestRunOnceReplacesSnapshot(t *testing.T) {
	repo := newCryptoRepo(t)
	fetcher := &fakeFetcher{snapshot: []domain.CryptoCurrency{
		{ID: "bitcoin", Name: "Bitcoin", CurrentPrice: 350000},
		{ID: "ethereum", Name: "Ethereum", CurrentPrice: 18000},
	}}
	s := New(fetcher, repo, nil, time.Minute)

	require.NoError(t, s.RunOnce(context.Background()))
	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestRunOnceKeepsOldSnapshotOnFetchFailure(t *testing.T) {
	repo := newCryptoRepo(t)
	good := &fakeFetcher{snapshot: []domain.CryptoCurrency{{ID: "bitcoin", Name: "Bitcoin"}}}
	require.NoError(t, New(good, repo, nil, time.Minute).RunOnce(context.Background()))

	bad := &fakeFetcher{err: errors.New("provider outage")}
	err := New(bad, repo, nil, time.Minute).RunOnce(context.Background())
	require.Error(t, err)

	// The previous snapshot stays intact when a cycle fails before replacing
	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	repo := newCryptoRepo(t)
	fetcher := &fakeFetcher{snapshot: []domain.CryptoCurrency{{ID: "bitcoin", Name: "Bitcoin"}}}
	s := New(fetcher, repo, nil, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()
	time.Sleep(30 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sync loop did not stop after context cancellation")
	}
	assert.GreaterOrEqual(t, fetcher.calls.Load(), int64(2)) // Ran more than the initial cycle
}

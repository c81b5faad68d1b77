package repository

import (
	"fmt"
	"sync/atomic"
	"testing"

	"cryptomarket/internal/domain"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBCounter int64

// newTestDB opens a fresh in-memory database with the full schema
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:repotest%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	if err := db.AutoMigrate(&domain.User{}, &domain.CryptoCurrency{}); err != nil {
		t.Fatalf("migrating test db: %v", err)
	}
	return db
}

// sampleSnapshot returns a small deterministic market snapshot
func sampleSnapshot() []domain.CryptoCurrency {
	return []domain.CryptoCurrency{
		{ID: "bitcoin", Name: "Bitcoin", CurrentPrice: 350000, MarketCap: 6.9e12, PercentPriceChange24h: 1.2, PercentPriceChange7D: -3.4, Ath: 380000, Atl: 300},
		{ID: "ethereum", Name: "Ethereum", CurrentPrice: 18000, MarketCap: 2.2e12, PercentPriceChange24h: -0.5, PercentPriceChange7D: 2.1, Ath: 25000, Atl: 2},
		{ID: "dogecoin", Name: "Dogecoin", CurrentPrice: 0.8, MarketCap: 1.1e11, PercentPriceChange24h: 4.0, PercentPriceChange7D: 9.9, Ath: 3.5, Atl: 0.001},
	}
}

package domain

// CryptoCurrency Model
//
// Rows mirror one upstream CoinGecko snapshot at a time: the sync job replaces
// the whole table each cycle and nothing else writes to it.
type CryptoCurrency struct {
	ID                    string  `gorm:"primaryKey" json:"id"`                                          // Provider-assigned slug, e.g. "bitcoin"
	Name                  string  `json:"name"`                                                          // Display name
	CurrentPrice          float64 `gorm:"column:current_price" json:"currentPrice"`                      // Current price in the configured quote currency
	MarketCap             float64 `gorm:"column:market_cap" json:"marketCap"`                            // Market capitalization
	PercentPriceChange24h float64 `gorm:"column:percent_price_change_24h" json:"percentPriceChange24h"` // 24h price change percentage
	PercentPriceChange7D  float64 `gorm:"column:percent_price_change_7d" json:"percentPriceChange7D"`    // 7d price change percentage
	Ath                   float64 `gorm:"column:ath" json:"ath"`                                         // All-time high
	Atl                   float64 `gorm:"column:atl" json:"atl"`                                         // All-time low
}

// TableName keeps the table name stable regardless of naming strategy
func (CryptoCurrency) TableName() string {
	return "crypto_currencies"
}

package coingecko

import "cryptomarket/internal/domain"

// marketRecord is one entry of the /coins/markets response
type marketRecord struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	CurrentPrice   float64 `json:"current_price"`
	MarketCap      float64 `json:"market_cap"`
	PriceChange24h float64 `json:"price_change_percentage_24h"`
	PriceChange7D  float64 `json:"price_change_percentage_7d_in_currency"`
	Ath            float64 `json:"ath"`
	Atl            float64 `json:"atl"`
}

// toDomain renames the provider fields into the cached shape
func (m marketRecord) toDomain() domain.CryptoCurrency {
	return domain.CryptoCurrency{
		ID:                    m.ID,
		Name:                  m.Name,
		CurrentPrice:          m.CurrentPrice,
		MarketCap:             m.MarketCap,
		PercentPriceChange24h: m.PriceChange24h,
		PercentPriceChange7D:  m.PriceChange7D,
		Ath:                   m.Ath,
		Atl:                   m.Atl,
	}
}

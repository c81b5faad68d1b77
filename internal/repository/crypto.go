package repository

import (
	"context"                      // Context for the sync-job write path
	"cryptomarket/internal/domain" // Importing domain models
	"cryptomarket/internal/validate"

	"gorm.io/gorm"        // GORM ORM library
	"gorm.io/gorm/clause" // Conflict clauses for the bulk insert
)

// Pagination defaults applied by the query builder; the 200 cap is enforced
// upstream by the schemas
const (
	defaultLimit  = 100
	defaultOffset = 0
)

// RequisitionInfo describes the page window of a listing response
type RequisitionInfo struct {
	Limit  int   `json:"limit"`  // Applied page size
	Offset int   `json:"offset"` // Applied row offset
	Count  int64 `json:"count"`  // Total rows in the cache table
}

// orderColumns maps external sortable field names to table columns
var orderColumns = map[string]string{
	"id":                    "id",
	"name":                  "name",
	"currentPrice":          "current_price",
	"marketCap":             "market_cap",
	"percentPriceChange24h": "percent_price_change_24h",
	"percentPriceChange7D":  "percent_price_change_7d",
	"ath":                   "ath",
	"atl":                   "atl",
}

// CryptoRepository reads and replaces the cached cryptocurrency snapshot
type CryptoRepository struct {
	db *gorm.DB
}

// NewCryptoRepository creates a repository over the given database handle
func NewCryptoRepository(db *gorm.DB) *CryptoRepository {
	return &CryptoRepository{db: db}
}

// BuildOrdering translates an ordering list into SQL order expressions plus
// the columns that must not be null. The ordering preserves the input field
// order; id is exempt from the not-null set because it is always present.
func BuildOrdering(orders []validate.OrderField) (orderBy []string, notNull []string) {
	for _, o := range orders {
		col, known := orderColumns[o.Field]
		if !known {
			continue // Unknown fields are rejected upstream by the schema
		}
		orderBy = append(orderBy, col+" "+o.Direction)
		if o.Field != "id" {
			notNull = append(notNull, col)
		}
	}
	return orderBy, notNull
}

// pageWindow applies the default limit/offset when unset
func pageWindow(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if offset < 0 {
		offset = defaultOffset
	}
	return limit, offset
}

// FindByFilter returns cryptos matching the validated exact-match filter,
// plus the page window and total cache count
func (r *CryptoRepository) FindByFilter(in validate.FilterCryptosInput) ([]domain.CryptoCurrency, RequisitionInfo, error) {
	limit, offset := pageWindow(in.Limit, in.Offset)
	info := RequisitionInfo{Limit: limit, Offset: offset}
	if err := r.db.Model(&domain.CryptoCurrency{}).Count(&info.Count).Error; err != nil {
		return nil, info, err
	}
	query := r.db.Model(&domain.CryptoCurrency{})
	if in.ID != nil {
		query = query.Where("id = ?", *in.ID) // Filter by provider slug
	}
	if in.Name != nil {
		query = query.Where("name = ?", *in.Name) // Filter by name
	}
	cryptos := []domain.CryptoCurrency{}
	if err := query.Offset(offset).Limit(limit).Find(&cryptos).Error; err != nil {
		return nil, info, err
	}
	return cryptos, info, nil
}

// FindOrdered returns cryptos sorted by the validated ordering list. Rows
// missing any ordered field are excluded so the sort stays well defined.
func (r *CryptoRepository) FindOrdered(in validate.OrderCryptosInput) ([]domain.CryptoCurrency, RequisitionInfo, error) {
	limit, offset := pageWindow(in.Limit, in.Offset)
	info := RequisitionInfo{Limit: limit, Offset: offset}
	if err := r.db.Model(&domain.CryptoCurrency{}).Count(&info.Count).Error; err != nil {
		return nil, info, err
	}
	orderBy, notNull := BuildOrdering(in.Orders)
	query := r.db.Model(&domain.CryptoCurrency{})
	for _, col := range notNull {
		query = query.Where(col + " IS NOT NULL")
	}
	for _, expr := range orderBy {
		query = query.Order(expr)
	}
	cryptos := []domain.CryptoCurrency{}
	if err := query.Offset(offset).Limit(limit).Find(&cryptos).Error; err != nil {
		return nil, info, err
	}
	return cryptos, info, nil
}

// Count returns the number of cached rows
func (r *CryptoRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.CryptoCurrency{}).Count(&count).Error
	return count, err
}

// ReplaceAll swaps the cached snapshot for the freshly fetched one. The
// delete and insert run in one transaction so concurrent readers never
// observe an empty or half-filled cache; duplicate slugs in the snapshot are
// skipped instead of failing the batch.
func (r *CryptoRepository) ReplaceAll(ctx context.Context, cryptos []domain.CryptoCurrency) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&domain.CryptoCurrency{}).Error; err != nil {
			return err
		}
		if len(cryptos) == 0 {
			return nil
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(cryptos, 500).Error
	})
}

package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"time"     // Cache TTL

	"cryptomarket/internal/service"  // Snapshot read flows
	"cryptomarket/internal/syncer"   // Shared cache key prefix
	"cryptomarket/internal/utils"    // Redis cache helpers
	"cryptomarket/internal/validate" // Input schemas

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// listingCacheTTL bounds staleness between sync-driven invalidations
const listingCacheTTL = 60 * time.Second

// FindCryptosHandler lists the cached snapshot filtered by the query
func FindCryptosHandler(cryptos *service.CryptoService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		in, ferrs := validate.FilterCryptos(c.Request.URL.RawQuery)
		if ferrs != nil {
			c.JSON(http.StatusBadRequest, ferrs)
			return
		}
		ctx := context.Background() // Use background context for Redis
		cacheKey := syncer.CryptoCachePrefix + "filter:" + c.Request.URL.RawQuery
		var cached service.CryptoPage
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
			c.JSON(http.StatusOK, cached)
			return
		}
		page, err := cryptos.FindCryptos(in)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": 500, "message": err.Error()})
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, page, listingCacheTTL)
		c.JSON(http.StatusOK, page)
	}
}

// OrderCryptosHandler lists the cached snapshot sorted by the query fields
func OrderCryptosHandler(cryptos *service.CryptoService, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		in, ferrs := validate.OrderCryptos(c.Request.URL.RawQuery)
		if ferrs != nil {
			c.JSON(http.StatusBadRequest, ferrs)
			return
		}
		ctx := context.Background()
		cacheKey := syncer.CryptoCachePrefix + "order:" + c.Request.URL.RawQuery
		var cached service.CryptoPage
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
			c.JSON(http.StatusOK, cached)
			return
		}
		page, err := cryptos.OrderCryptos(in)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": 500, "message": err.Error()})
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, page, listingCacheTTL)
		c.JSON(http.StatusOK, page)
	}
}

// HealthHandler reports process liveness
func HealthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

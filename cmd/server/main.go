package main

import (
	"context"   // Context for Redis and the sync loop
	"log"       // log package is needed for logging
	"os/signal" // Graceful sync-loop shutdown
	"syscall"   // SIGTERM handling

	"cryptomarket/internal/api"        // Custom package for API handlers
	"cryptomarket/internal/coingecko"  // Market data client
	"cryptomarket/internal/config"     // Custom package for configuration
	"cryptomarket/internal/middleware" // Custom package for middleware
	"cryptomarket/internal/repository" // Persistence layer
	"cryptomarket/internal/service"    // Business flows
	"cryptomarket/internal/syncer"     // Snapshot sync loop

	"github.com/gin-gonic/gin"                                // Gin web framework
	"github.com/prometheus/client_golang/prometheus/promhttp" // Metrics endpoint
	"github.com/redis/go-redis/v9"                            // Redis client
	"github.com/sirupsen/logrus"                              // Logrus for structured logging
	"gorm.io/driver/mysql"                                    // MySQL driver for GORM
	"gorm.io/gorm"                                            // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Connect to the database; the HTTP handlers and the sync loop share this pool
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client for the listing response cache
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection; the cache is optional, so a missing Redis only
	// degrades the listing endpoints to uncached reads
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logrus.Warnf("Redis unavailable, listing cache disabled: %v", err)
		redisClient = nil
	}

	// Wire repositories and services
	userRepo := repository.NewUserRepository(db)
	cryptoRepo := repository.NewCryptoRepository(db)
	userService := service.NewUserService(userRepo)
	cryptoService := service.NewCryptoService(cryptoRepo)

	// Market data client for the sync job
	marketClient := coingecko.NewClient(coingecko.Options{
		BaseURL:    cfg.CoinGeckoBaseURL,
		APIKey:     cfg.CoinGeckoAPIKey,
		VsCurrency: cfg.VsCurrency,
		RetryWait:  cfg.RetryWait,
		MaxRetries: cfg.MaxRetries,
	})

	// Start the snapshot sync loop; it stops on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go syncer.New(marketClient, cryptoRepo, redisClient, cfg.SyncInterval).Run(ctx)

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	r.Use(middleware.RequestLogger()) // Structured request log

	// User routes
	r.GET("/users", api.FindUsersHandler(userService))        // Filtered user listing
	r.POST("/users", api.CreateUserHandler(userService))      // Signup endpoint
	r.PATCH("/users/:id", api.UpdateUserHandler(userService)) // Partial update endpoint

	// Crypto routes (read-only views of the cached snapshot)
	r.GET("/cryptos", api.FindCryptosHandler(cryptoService, redisClient))
	r.GET("/cryptos/order", api.OrderCryptosHandler(cryptoService, redisClient))

	// Operational endpoints
	r.GET("/health", api.HealthHandler())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	log.Println("Server running on " + cfg.AppPort) // Log server start
	if err := r.Run(":" + cfg.AppPort); err != nil {
		logrus.Fatalf("server stopped: %v", err)
	}
}

package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"time"    // For duration parsing

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort          string        // Application port
	DBUser           string        // Database user
	DBPassword       string        // Database password
	DBHost           string        // Database host
	DBPort           string        // Database port
	DBName           string        // Database name
	RedisAddr        string        // Redis server address
	RedisPass        string        // Redis password
	RedisDB          int           // Redis database number
	CoinGeckoAPIKey  string        // CoinGecko demo API key for the sync job
	CoinGeckoBaseURL string        // CoinGecko base URL, overridable for tests
	VsCurrency       string        // Quote currency for market prices
	SyncInterval     time.Duration // Pause between sync cycles
	RetryWait        time.Duration // Base wait before retrying a failed page fetch
	MaxRetries       int           // Attempts per page before a cycle gives up
	IsProd           bool          // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	return &Config{
		AppPort:          getEnv("APP_PORT", "8080"),
		DBUser:           os.Getenv("DB_USER"),
		DBPassword:       os.Getenv("DB_PASSWORD"),
		DBHost:           os.Getenv("DB_HOST"),
		DBPort:           os.Getenv("DB_PORT"),
		DBName:           os.Getenv("DB_NAME"),
		RedisAddr:        os.Getenv("REDIS_ADDR"),
		RedisPass:        os.Getenv("REDIS_PASS"),
		RedisDB:          redisDB,
		CoinGeckoAPIKey:  os.Getenv("COINGECKO_API_KEY"),
		CoinGeckoBaseURL: getEnv("COINGECKO_BASE_URL", "https://api.coingecko.com/api/v3"),
		VsCurrency:       getEnv("VS_CURRENCY", "brl"),
		SyncInterval:     getDuration("SYNC_INTERVAL", 5*time.Minute),
		RetryWait:        getDuration("SYNC_RETRY_WAIT", 60*time.Second),
		MaxRetries:       getInt("SYNC_MAX_RETRIES", 5),
		IsProd:           os.Getenv("IS_PROD") == "true",
	}
}

// DSN builds the MySQL Data Source Name from the loaded fields
func (c *Config) DSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true"
}

// getEnv returns the environment value or a fallback
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getInt returns the environment value parsed as int, or a fallback
func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// getDuration returns the environment value parsed as a duration, or a fallback
func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

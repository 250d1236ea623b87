package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds every runtime setting, all sourced from environment variables.
type Config struct {
	DatabaseURL string
	Port        int

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	LowStockThreshold int
	LowStockInterval  time.Duration
}

// Load reads configuration from the environment. DATABASE_URL is the only
// required setting; everything else has development defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Port:              8080,
		RedisAddr:         "localhost:6379",
		RedisDB:           0,
		MinioEndpoint:     "localhost:9000",
		MinioAccessKey:    "minioadmin",
		MinioSecretKey:    "minioadmin",
		MinioBucket:       "product-images",
		LowStockThreshold: 10,
		LowStockInterval:  15 * time.Minute,
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Port = port
	}

	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	if v := os.Getenv("REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			cfg.RedisDB = db
		}
	}

	if v := os.Getenv("MINIO_ENDPOINT"); v != "" {
		cfg.MinioEndpoint = v
	}
	if v := os.Getenv("MINIO_ACCESS_KEY"); v != "" {
		cfg.MinioAccessKey = v
	}
	if v := os.Getenv("MINIO_SECRET_KEY"); v != "" {
		cfg.MinioSecretKey = v
	}
	if v := os.Getenv("MINIO_BUCKET"); v != "" {
		cfg.MinioBucket = v
	}
	cfg.MinioUseSSL = os.Getenv("MINIO_USE_SSL") == "true"

	if v := os.Getenv("LOW_STOCK_THRESHOLD"); v != "" {
		if threshold, err := strconv.Atoi(v); err == nil && threshold > 0 {
			cfg.LowStockThreshold = threshold
		}
	}
	if v := os.Getenv("LOW_STOCK_INTERVAL"); v != "" {
		if interval, err := time.ParseDuration(v); err == nil && interval > 0 {
			cfg.LowStockInterval = interval
		}
	}

	return cfg, nil
}

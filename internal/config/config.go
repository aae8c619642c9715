package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Cart store backends selectable via CART_STORE.
const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

type Config struct {
	AppEnv  string
	AppPort string

	// CartStore selects the durable backend for cart snapshots.
	CartStore string

	// CatalogPath points at the JSON catalog file used when the
	// catalog is not served from Postgres.
	CatalogSource string
	CatalogPath   string

	RedisURL      string
	RedisAddr     string
	RedisPassword string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:  os.Getenv("APP_ENV"),
		AppPort: getEnv("APP_PORT", "8080"),

		CartStore: getEnv("CART_STORE", StoreMemory),

		CatalogSource: getEnv("CATALOG_SOURCE", "file"),
		CatalogPath:   getEnv("CATALOG_PATH", "catalog.json"),

		RedisURL:      os.Getenv("REDIS_URL"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     os.Getenv("DB_PORT"),
	}

	return cfg
}

// NeedsDatabase reports whether the selected backends require Postgres.
func (c *Config) NeedsDatabase() bool {
	return c.CartStore == StorePostgres || c.CatalogSource == StorePostgres
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

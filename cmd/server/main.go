package main

import (
	"database/sql"
	"fmt"
	"log"

	"verbena-be/internal/cart"
	"verbena-be/internal/catalog"
	"verbena-be/internal/config"
	"verbena-be/internal/db"
	"verbena-be/internal/logger"
	"verbena-be/internal/transport"

	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	var database *sql.DB
	if cfg.NeedsDatabase() {
		var err error
		database, err = db.NewDatabase(cfg)
		if err != nil {
			log.Fatalf("failed to connect to DB: %v", err)
		}
		defer database.Close()
	}

	catalogRepo, err := newCatalogRepository(cfg, database)
	if err != nil {
		log.Fatalf("failed to load catalog: %v", err)
	}

	cartRepo, err := newCartRepository(cfg, database)
	if err != nil {
		log.Fatalf("failed to set up cart store: %v", err)
	}

	cartSvc := cart.NewService(cartRepo)
	router := transport.NewRouter(catalogRepo, cartSvc)

	log.Printf("🌸 Verbena storefront API running at http://localhost:%s/", cfg.AppPort)
	log.Fatal(router.Run(":" + cfg.AppPort))
}

func newCatalogRepository(cfg *config.Config, database *sql.DB) (catalog.Repository, error) {
	switch cfg.CatalogSource {
	case config.StorePostgres:
		return catalog.NewRepository(database), nil
	case "file":
		return catalog.NewFileRepository(cfg.CatalogPath)
	default:
		return nil, fmt.Errorf("unknown catalog source: %s", cfg.CatalogSource)
	}
}

func newCartRepository(cfg *config.Config, database *sql.DB) (cart.Repository, error) {
	switch cfg.CartStore {
	case config.StoreMemory:
		return cart.NewMemoryRepository(), nil
	case config.StorePostgres:
		return cart.NewRepository(database), nil
	case config.StoreRedis:
		client, err := newRedisClient(cfg)
		if err != nil {
			return nil, err
		}
		return cart.NewRedisRepository(client), nil
	default:
		return nil, fmt.Errorf("unknown cart store: %s", cfg.CartStore)
	}
}

func newRedisClient(cfg *config.Config) (*redis.Client, error) {
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
		}
		return redis.NewClient(opt), nil
	}

	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	}), nil
}

package main

import (
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/AnshRaj112/goalledger-backend/internal/config"
	"github.com/AnshRaj112/goalledger-backend/internal/database"
	"github.com/AnshRaj112/goalledger-backend/internal/store"
)

// openBackend connects the storage driver named by STORE_DRIVER. The returned
// cleanup closes whatever connection the driver opened.
func openBackend(cfg *config.Config, redisClient *redis.Client) (store.Backend, func(), error) {
	noop := func() {}
	switch cfg.StoreDriver {
	case "", "file":
		b, err := store.NewFileBackend(cfg.StorePath)
		if err != nil {
			return nil, noop, err
		}
		log.Printf("Using file store at %s", cfg.StorePath)
		return b, noop, nil

	case "memory":
		log.Println("⚠️  Using in-memory store; data is lost on restart")
		return store.NewMemoryBackend(), noop, nil

	case "postgres":
		log.Printf("Connecting to PostgreSQL...")
		db, err := database.ConnectPostgres(cfg.PostgresURI)
		if err != nil {
			return nil, noop, err
		}
		if err := database.InitPostgresTables(db); err != nil {
			db.Close()
			return nil, noop, err
		}
		return store.NewPostgresBackend(db, cfg.StoreName), func() { db.Close() }, nil

	case "mongo", "mongodb":
		log.Printf("Connecting to MongoDB...")
		client, db, err := database.ConnectMongo(cfg.MongoURI)
		if err != nil {
			return nil, noop, err
		}
		return store.NewMongoBackend(db, cfg.StoreName), func() { database.DisconnectMongo(client) }, nil

	case "redis":
		if redisClient == nil {
			return nil, noop, fmt.Errorf("STORE_DRIVER=redis requires REDIS_URI")
		}
		return store.NewRedisBackend(redisClient, cfg.StoreName), noop, nil

	default:
		return nil, noop, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}

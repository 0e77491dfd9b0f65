// Package bootstrap wires configuration to concrete runtime resources.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wesleybertipaglia/uknow/internal/blob"
	"github.com/wesleybertipaglia/uknow/internal/config"
)

// OpenBlobStore opens the blob store selected by cfg.Storage. The caller
// owns the returned store and must Close it.
func OpenBlobStore(cfg *config.Config) (blob.Store, error) {
	switch cfg.Storage {
	case config.StorageRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisURL})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("redis connection failed: %w", err)
		}
		return blob.NewRedisStore(client, cfg.KeyPrefix), nil

	case config.StorageSQLite:
		db, err := gorm.Open(sqlite.Open(cfg.SQLitePath), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			return nil, fmt.Errorf("sqlite open failed: %w", err)
		}
		return blob.NewGormStore(db)

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
	}
}

package tokenstore

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/sessionkeeper/internal/client/config"
	"github.com/dmitrijs2005/sessionkeeper/internal/client/repositories/metadata"
	"github.com/redis/go-redis/v9"
)

// RedisKeyPrefix namespaces SessionKeeper keys in a shared Redis.
const RedisKeyPrefix = "sessionkeeper:"

// OpenBackend builds the Backend named by cfg.StoreBackend. The returned
// close function releases the underlying handle and is never nil.
func OpenBackend(ctx context.Context, cfg *config.Config) (Backend, func() error, error) {
	noop := func() error { return nil }

	switch cfg.StoreBackend {
	case config.StoreSQLite:
		db, err := metadata.OpenDatabase(ctx, cfg.DatabasePath)
		if err != nil {
			return nil, noop, fmt.Errorf("open sqlite token store: %w", err)
		}
		return NewSQLiteBackend(metadata.NewSQLiteRepository(db)), db.Close, nil

	case config.StoreFile:
		return NewFileBackend(cfg.TokenFilePath), noop, nil

	case config.StoreRedis:
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return NewRedisBackend(rdb, RedisKeyPrefix), rdb.Close, nil

	case config.StoreMemory:
		return NewMemoryBackend(), noop, nil

	default:
		return nil, noop, fmt.Errorf("unknown token store backend %q", cfg.StoreBackend)
	}
}

package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/dmitrijs2005/sessionkeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/sessionkeeper/internal/common"
	"github.com/dmitrijs2005/sessionkeeper/internal/filex"
	"github.com/redis/go-redis/v9"
)

// Backend is the durable medium behind a Store.
//
// Get returns common.ErrorNotFound when nothing is stored under key.
type Backend interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// SQLiteBackend keeps the token in the local metadata table.
type SQLiteBackend struct {
	repo metadata.Repository
}

func NewSQLiteBackend(repo metadata.Repository) *SQLiteBackend {
	return &SQLiteBackend{repo: repo}
}

func (b *SQLiteBackend) Get(ctx context.Context, key string) (string, error) {
	v, err := b.repo.Get(ctx, key)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func (b *SQLiteBackend) Set(ctx context.Context, key, value string) error {
	return b.repo.Set(ctx, key, []byte(value))
}

func (b *SQLiteBackend) Delete(ctx context.Context, key string) error {
	return b.repo.Delete(ctx, key)
}

// FileBackend keeps the token in a single 0600 file. The storage key is
// ignored: the configured path already names the token.
type FileBackend struct {
	path string
}

func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

func (b *FileBackend) Get(_ context.Context, _ string) (string, error) {
	return readTokenFile(b.path)
}

func (b *FileBackend) Set(_ context.Context, _ string, value string) error {
	return filex.WriteFileAtomic(b.path, []byte(value), 0o600)
}

func (b *FileBackend) Delete(_ context.Context, _ string) error {
	return removeTokenFile(b.path)
}

func readTokenFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", common.ErrorNotFound
	}
	if err != nil {
		return "", fmt.Errorf("read token file: %w", err)
	}
	return string(data), nil
}

func removeTokenFile(path string) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove token file: %w", err)
	}
	return nil
}

// RedisBackend stores the token in Redis under prefix+key.
type RedisBackend struct {
	rdb    redis.Cmdable
	prefix string
}

func NewRedisBackend(rdb redis.Cmdable, prefix string) *RedisBackend {
	return &RedisBackend{rdb: rdb, prefix: prefix}
}

func (b *RedisBackend) Get(ctx context.Context, key string) (string, error) {
	v, err := b.rdb.Get(ctx, b.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", common.ErrorNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, nil
}

func (b *RedisBackend) Set(ctx context.Context, key, value string) error {
	if err := b.rdb.Set(ctx, b.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (b *RedisBackend) Delete(ctx context.Context, key string) error {
	if err := b.rdb.Del(ctx, b.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

// MemoryBackend keeps values for the lifetime of the process.
type MemoryBackend struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: make(map[string]string)}
}

func (b *MemoryBackend) Get(_ context.Context, key string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.values[key]
	if !ok {
		return "", common.ErrorNotFound
	}
	return v, nil
}

func (b *MemoryBackend) Set(_ context.Context, key, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.values[key] = value
	return nil
}

func (b *MemoryBackend) Delete(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.values, key)
	return nil
}

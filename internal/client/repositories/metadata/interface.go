// Package metadata is a small key/value repository over the local SQLite
// database. The session token store keeps its single key here.
package metadata

import (
	"context"
)

// Repository stores opaque values by key.
//
// Get returns common.ErrorNotFound when the key is absent.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

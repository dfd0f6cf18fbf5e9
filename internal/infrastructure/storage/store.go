// Package storage provides the key-value persistence media the cart store
// writes to: in-memory, one-file-per-key on disk, and Redis.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/tdpro/backend/internal/domain"
)

// Store is a closable persistence medium
type Store interface {
	domain.KVStore
	Close() error
}

// Options selects and configures a Store
type Options struct {
	Type     string // "memory", "file" or "redis"
	Dir      string
	RedisURL string
	TTL      time.Duration
}

// Open builds the Store named by opts.Type
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Type {
	case "", "memory":
		return NewMemoryStore(opts.TTL), nil
	case "file":
		return NewFileStore(opts.Dir)
	case "redis":
		return NewRedisStore(ctx, opts.RedisURL, opts.TTL)
	default:
		return nil, fmt.Errorf("%w: unknown storage type %q", domain.ErrInvalidRequest, opts.Type)
	}
}

package store

import (
	"context"
	"errors"
)

// ErrClosed is returned by operations on a store after Close.
var ErrClosed = errors.New("store is closed")

// KV is a durable string key-value store. The task list occupies a single
// key; implementations must make Set an atomic overwrite of that key.
type KV interface {
	// Get returns the value stored under key. ok is false when the key is
	// absent, in which case err is nil.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	// Clear deletes every key owned by this store.
	Clear(ctx context.Context) error

	// Close releases the underlying connection.
	Close() error
}

var (
	_ KV = (*SQLiteStore)(nil)
	_ KV = (*RedisStore)(nil)
	_ KV = (*MemoryStore)(nil)
)

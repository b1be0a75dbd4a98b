package interfaces

import "context"

// KVStore is the flat string-keyed blob store underneath the persistence
// adapter. Implementations: in-memory (tests, development) and SQLite
// (durable local storage). A missing key is reported via kv.ErrKeyNotFound;
// an exhausted storage budget via kv.ErrQuotaExceeded.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

package kv

import (
	"context"
	"sync"

	"github.com/m-mizutani/goerr/v2"
)

// Memory is an in-memory KVStore. A non-zero quota bounds the total stored
// bytes, which lets tests exercise the quota-exceeded path the same way a
// full browser storage quota would behave.
type Memory struct {
	mu    sync.RWMutex
	data  map[string][]byte
	quota int
}

// MemoryOption configures a Memory store
type MemoryOption func(*Memory)

// WithQuota bounds the total stored bytes. Zero means unbounded.
func WithQuota(bytes int) MemoryOption {
	return func(m *Memory) {
		m.quota = bytes
	}
}

// NewMemory creates an in-memory KVStore
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{data: make(map[string][]byte)}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Memory) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]
	if !ok {
		return nil, goerr.Wrap(ErrKeyNotFound, "key not found", goerr.V(KeyKey, key))
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (m *Memory) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.quota > 0 {
		total := len(value)
		for k, v := range m.data {
			if k == key {
				continue
			}
			total += len(v)
		}
		if total > m.quota {
			return goerr.Wrap(ErrQuotaExceeded, "write exceeds storage quota",
				goerr.V(KeyKey, key), goerr.V(SizeKey, len(value)))
		}
	}

	stored := make([]byte, len(value))
	copy(stored, value)
	m.data[key] = stored
	return nil
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)
	return nil
}

func (m *Memory) Close() error {
	return nil
}

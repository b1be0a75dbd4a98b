package kv

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/osint-lab/casetrail/pkg/domain/interfaces"
	"github.com/osint-lab/casetrail/pkg/utils/logging"
)

// Persistence key namespace. The underlying store is flat: one JSON blob
// per key.
const (
	// CasesKey holds the JSON array of all cases
	CasesKey = "cases"
	// ActiveCaseKey holds the id of the active case, or is absent
	ActiveCaseKey = "active-case"
	// HistoryKey holds the global recent-search list. This is the only key
	// subject to quota remediation: case data is never shrunk automatically,
	// its finding/timeline caps are its only safeguard.
	HistoryKey = "history"
)

// Adapter wraps a KVStore with JSON encoding, default fallback on missing
// or corrupt data, and quota remediation.
type Adapter struct {
	store interfaces.KVStore
}

// NewAdapter wraps the given store
func NewAdapter(store interfaces.KVStore) *Adapter {
	return &Adapter{store: store}
}

// Load reads and decodes the value at key into dst. It returns false when
// the key is absent or the stored blob does not parse; the caller's default
// value stands in both situations. Corrupt data is logged, never surfaced.
func (a *Adapter) Load(ctx context.Context, key string, dst any) bool {
	data, err := a.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			logging.From(ctx).Warn("failed to read key, using default", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		logging.From(ctx).Warn("corrupt data at key, using default", "key", key, "error", err)
		return false
	}
	return true
}

// Save encodes v as JSON and writes it. On a quota-exceeded write it halves
// the persisted search history and retries once; the retry outcome is
// returned as-is, so case writes can still fail with ErrQuotaExceeded after
// remediation.
func (a *Adapter) Save(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return goerr.Wrap(err, "failed to encode value", goerr.V(KeyKey, key))
	}

	err = a.store.Set(ctx, key, data)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrQuotaExceeded) {
		return goerr.Wrap(err, "failed to write value", goerr.V(KeyKey, key))
	}

	logging.From(ctx).Warn("storage quota exceeded, halving search history", "key", key)
	a.halveHistory(ctx)

	if err := a.store.Set(ctx, key, data); err != nil {
		return goerr.Wrap(err, "write failed after history remediation", goerr.V(KeyKey, key))
	}
	return nil
}

// Remove deletes the key
func (a *Adapter) Remove(ctx context.Context, key string) error {
	if err := a.store.Delete(ctx, key); err != nil {
		return goerr.Wrap(err, "failed to remove key", goerr.V(KeyKey, key))
	}
	return nil
}

// halveHistory truncates the persisted search history to its newer half.
// The history list is newest-first, so the first half is kept.
func (a *Adapter) halveHistory(ctx context.Context) {
	var entries []json.RawMessage
	if !a.Load(ctx, HistoryKey, &entries) || len(entries) == 0 {
		return
	}

	halved := entries[:len(entries)/2]
	data, err := json.Marshal(halved)
	if err != nil {
		return
	}
	if err := a.store.Set(ctx, HistoryKey, data); err != nil {
		logging.From(ctx).Warn("failed to persist halved history", "error", err)
	}
}

package kv_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/osint-lab/casetrail/pkg/repository/kv"
)

func TestLoadDefaultFallback(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	adapter := kv.NewAdapter(store)

	t.Run("absent key keeps default", func(t *testing.T) {
		value := "default"
		gt.Bool(t, adapter.Load(ctx, "missing", &value)).False()
		gt.Value(t, value).Equal("default")
	})

	t.Run("corrupt data keeps default", func(t *testing.T) {
		gt.NoError(t, store.Set(ctx, "corrupt", []byte("{not json"))).Required()

		value := "default"
		gt.Bool(t, adapter.Load(ctx, "corrupt", &value)).False()
		gt.Value(t, value).Equal("default")
	})

	t.Run("valid data loads", func(t *testing.T) {
		gt.NoError(t, adapter.Save(ctx, "greeting", "hello")).Required()

		var value string
		gt.Bool(t, adapter.Load(ctx, "greeting", &value)).True()
		gt.Value(t, value).Equal("hello")
	})
}

func TestSaveRoundTrip(t *testing.T) {
	ctx := context.Background()
	adapter := kv.NewAdapter(kv.NewMemory())

	type record struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	gt.NoError(t, adapter.Save(ctx, "r", record{Name: "x", Count: 3})).Required()

	var got record
	gt.Bool(t, adapter.Load(ctx, "r", &got)).True()
	gt.Value(t, got).Equal(record{Name: "x", Count: 3})
}

func TestQuotaRemediationHalvesHistory(t *testing.T) {
	ctx := context.Background()
	// Quota sized so the initial history fits but the follow-up write
	// overflows until history is halved.
	store := kv.NewMemory(kv.WithQuota(2000))
	adapter := kv.NewAdapter(store)

	history := make([]string, 40)
	for i := range history {
		history[i] = "0123456789012345678901234567890123456789"
	}
	gt.NoError(t, adapter.Save(ctx, kv.HistoryKey, history)).Required()

	big := make([]string, 10)
	for i := range big {
		big[i] = "0123456789012345678901234567890123456789"
	}
	gt.NoError(t, adapter.Save(ctx, "cases", big)).Required()

	var halved []string
	gt.Bool(t, adapter.Load(ctx, kv.HistoryKey, &halved)).True()
	gt.Array(t, halved).Length(20)
}

func TestQuotaExceededSurfaces(t *testing.T) {
	ctx := context.Background()
	// No history to shrink: the write must fail with the typed error.
	store := kv.NewMemory(kv.WithQuota(8))
	adapter := kv.NewAdapter(store)

	err := adapter.Save(ctx, "cases", "a value far over the quota")
	gt.Bool(t, errors.Is(err, kv.ErrQuotaExceeded)).True()
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	adapter := kv.NewAdapter(kv.NewMemory())

	gt.NoError(t, adapter.Save(ctx, "k", "v")).Required()
	gt.NoError(t, adapter.Remove(ctx, "k")).Required()

	var value string
	gt.Bool(t, adapter.Load(ctx, "k", &value)).False()
}

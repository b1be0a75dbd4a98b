package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/osint-lab/casetrail/pkg/cli/config"
	"github.com/osint-lab/casetrail/pkg/domain/interfaces"
	"github.com/osint-lab/casetrail/pkg/repository/kv"
	"github.com/urfave/cli/v3"
)

func configureStorage(t *testing.T, args []string) (interfaces.KVStore, error) {
	t.Helper()

	var cfg config.Storage
	var store interfaces.KVStore
	var cfgErr error

	cmd := &cli.Command{
		Name:  "test",
		Flags: cfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			store, cfgErr = cfg.Configure(ctx, c)
			return nil
		},
	}
	gt.NoError(t, cmd.Run(context.Background(), args)).Required()

	if store != nil {
		t.Cleanup(func() { _ = store.Close() })
	}
	return store, cfgErr
}

func TestStorageMemoryBackend(t *testing.T) {
	store, err := configureStorage(t, []string{"test", "--storage-backend", "memory"})
	gt.NoError(t, err).Required()
	gt.Value(t, store).NotNil()

	_, ok := store.(*kv.Memory)
	gt.Bool(t, ok).True()
}

func TestStorageInvalidBackend(t *testing.T) {
	_, err := configureStorage(t, []string{"test", "--storage-backend", "redis"})
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, config.ErrInvalidBackend)).True()
}

func TestStorageConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "casetrail.toml")
	content := `
[storage]
backend = "memory"
quota_bytes = 4096
`
	gt.NoError(t, os.WriteFile(path, []byte(content), 0o600)).Required()

	store, err := configureStorage(t, []string{"test", "--config", path})
	gt.NoError(t, err).Required()

	_, ok := store.(*kv.Memory)
	gt.Bool(t, ok).True()
}

func TestStorageFlagWinsOverFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "casetrail.toml")
	content := `
[storage]
backend = "sqlite"
path = "` + filepath.Join(dir, "file.db") + `"
`
	gt.NoError(t, os.WriteFile(path, []byte(content), 0o600)).Required()

	store, err := configureStorage(t, []string{
		"test", "--config", path, "--storage-backend", "memory",
	})
	gt.NoError(t, err).Required()

	_, ok := store.(*kv.Memory)
	gt.Bool(t, ok).True()
}

func TestStorageConfigNotFound(t *testing.T) {
	_, err := configureStorage(t, []string{
		"test", "--config", "/nonexistent/casetrail.toml", "--storage-backend", "memory",
	})
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, config.ErrConfigNotFound)).True()
}

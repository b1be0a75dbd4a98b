package config

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/osint-lab/casetrail/pkg/domain/interfaces"
	"github.com/osint-lab/casetrail/pkg/repository/kv"
	"github.com/osint-lab/casetrail/pkg/utils/logging"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// Storage holds CLI flags for the key-value storage backend
type Storage struct {
	backend    string
	path       string
	quota      int
	configPath string
}

// storageFile mirrors the optional TOML configuration file
type storageFile struct {
	Storage struct {
		Backend    string `toml:"backend"`
		Path       string `toml:"path"`
		QuotaBytes int64  `toml:"quota_bytes"`
	} `toml:"storage"`
}

// Flags returns CLI flags for storage configuration
func (s *Storage) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "storage-backend",
			Usage:       "Storage backend (sqlite or memory)",
			Value:       "sqlite",
			Sources:     cli.EnvVars("CASETRAIL_STORAGE_BACKEND"),
			Destination: &s.backend,
		},
		&cli.StringFlag{
			Name:        "storage-path",
			Usage:       "SQLite database path",
			Value:       "casetrail.db",
			Sources:     cli.EnvVars("CASETRAIL_STORAGE_PATH"),
			Destination: &s.path,
		},
		&cli.IntFlag{
			Name:        "storage-quota",
			Usage:       "Storage quota in bytes for the memory backend (0 = unbounded)",
			Sources:     cli.EnvVars("CASETRAIL_STORAGE_QUOTA"),
			Destination: &s.quota,
		},
		&cli.StringFlag{
			Name:        "config",
			Usage:       "Path to a TOML configuration file",
			Sources:     cli.EnvVars("CASETRAIL_CONFIG"),
			Destination: &s.configPath,
		},
	}
}

// Configure resolves the configuration (file values yield to explicit
// flags) and opens the KV store. The caller owns Close.
func (s *Storage) Configure(ctx context.Context, c *cli.Command) (interfaces.KVStore, error) {
	if s.configPath != "" {
		if err := s.loadFile(c); err != nil {
			return nil, err
		}
	}

	switch s.backend {
	case "sqlite":
		store, err := kv.NewSQLite(ctx, s.path)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to open sqlite storage")
		}
		logging.Default().Info("Using SQLite storage", "path", s.path)
		return store, nil

	case "memory":
		logging.Default().Info("Using in-memory storage (development mode)", "quota", s.quota)
		if s.quota > 0 {
			return kv.NewMemory(kv.WithQuota(s.quota)), nil
		}
		return kv.NewMemory(), nil

	default:
		return nil, goerr.Wrap(ErrInvalidBackend, "unsupported storage backend", goerr.V(BackendKey, s.backend))
	}
}

func (s *Storage) loadFile(c *cli.Command) error {
	data, err := os.ReadFile(s.configPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return goerr.Wrap(ErrConfigNotFound, "configuration file not found", goerr.V(ConfigPathKey, s.configPath))
		}
		return goerr.Wrap(err, "failed to read configuration file", goerr.V(ConfigPathKey, s.configPath))
	}

	var file storageFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return goerr.Wrap(err, "failed to parse configuration file", goerr.V(ConfigPathKey, s.configPath))
	}

	// Explicit flags win over file values.
	if file.Storage.Backend != "" && !c.IsSet("storage-backend") {
		s.backend = file.Storage.Backend
	}
	if file.Storage.Path != "" && !c.IsSet("storage-path") {
		s.path = file.Storage.Path
	}
	if file.Storage.QuotaBytes > 0 && !c.IsSet("storage-quota") {
		s.quota = int(file.Storage.QuotaBytes)
	}
	return nil
}

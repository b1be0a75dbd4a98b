package kv

import (
	"context"
	"database/sql"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	_ "modernc.org/sqlite"
)

// SQLite is a durable KVStore over a single-table SQLite database. It is
// the local-disk analog of browser key-value storage: one row per key, the
// value a JSON blob.
type SQLite struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value BLOB NOT NULL
)`

// NewSQLite opens (and if needed initializes) the database at path
func NewSQLite(ctx context.Context, path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open sqlite database", goerr.V("path", path))
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, goerr.Wrap(err, "failed to initialize kv schema", goerr.V("path", path))
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, goerr.Wrap(ErrKeyNotFound, "key not found", goerr.V(KeyKey, key))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query kv", goerr.V(KeyKey, key))
	}
	return value, nil
}

func (s *SQLite) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv(key, value) VALUES(?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return goerr.Wrap(err, "failed to write kv", goerr.V(KeyKey, key), goerr.V(SizeKey, len(value)))
	}
	return nil
}

func (s *SQLite) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return goerr.Wrap(err, "failed to delete kv", goerr.V(KeyKey, key))
	}
	return nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

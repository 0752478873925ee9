package draftcache

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS cache_entries (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	expires_at INTEGER,
	updated_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_cache_entries_expires ON cache_entries(expires_at);
`

// SQLiteStore is a Store backed by a single SQLite file.
type SQLiteStore struct {
	db   *sql.DB
	path string
	now  Clock
}

// OpenSQLite opens (creating if needed) the cache database at path.
// A nil clock uses time.Now.
func OpenSQLite(path string, now Clock) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("cache path is empty")
	}
	if now == nil {
		now = time.Now
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}
	// One writer; avoids SQLITE_BUSY between pooled connections.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize cache schema: %w", err)
	}

	return &SQLiteStore{db: db, path: path, now: now}, nil
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.path
}

func (s *SQLiteStore) Set(key string, value any, opts Options) error {
	data, err := encode(key, value)
	if err != nil {
		return err
	}
	now := s.now()
	var exp sql.NullInt64
	if t := expiry(now, opts); t != nil {
		exp = sql.NullInt64{Int64: t.UnixMilli(), Valid: true}
	}

	_, err = s.db.Exec(`
		INSERT INTO cache_entries (key, value, expires_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			expires_at = excluded.expires_at,
			updated_at = excluded.updated_at`,
		key, string(data), exp, now.UnixMilli())
	if err != nil {
		return &CacheError{Op: "set", Key: key, Cause: err}
	}
	return nil
}

func (s *SQLiteStore) Get(key string, out any) (bool, error) {
	var (
		value string
		exp   sql.NullInt64
	)
	err := s.db.QueryRow(`SELECT value, expires_at FROM cache_entries WHERE key = ?`, key).Scan(&value, &exp)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, &CacheError{Op: "get", Key: key, Cause: err}
	}

	if exp.Valid && s.now().UnixMilli() >= exp.Int64 {
		if err := s.Remove(key); err != nil {
			return false, err
		}
		return false, nil
	}

	if err := decode(key, []byte(value), out); err != nil {
		return false, err
	}
	return true, nil
}

func (s *SQLiteStore) Remove(key string) error {
	if _, err := s.db.Exec(`DELETE FROM cache_entries WHERE key = ?`, key); err != nil {
		return &CacheError{Op: "remove", Key: key, Cause: err}
	}
	return nil
}

func (s *SQLiteStore) Purge() (int, error) {
	res, err := s.db.Exec(`DELETE FROM cache_entries WHERE expires_at IS NOT NULL AND expires_at <= ?`, s.now().UnixMilli())
	if err != nil {
		return 0, &CacheError{Op: "purge", Cause: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, &CacheError{Op: "purge", Cause: err}
	}
	return int(n), nil
}

// Keys lists every stored key, expired or not, in lexical order.
func (s *SQLiteStore) Keys() ([]string, error) {
	rows, err := s.db.Query(`SELECT key FROM cache_entries ORDER BY key`)
	if err != nil {
		return nil, &CacheError{Op: "list", Cause: err}
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, &CacheError{Op: "list", Cause: err}
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

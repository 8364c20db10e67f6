// Package store provides key/value blob storage for the persisted ledger
// document, backed by SQLite.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // register sqlite driver
)

// DB is a SQLite-backed blob store. Each key holds one document that is
// replaced as a whole on every write.
type DB struct {
	db *sql.DB
}

// Open opens or creates the store database at the given path.
func Open(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(full)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening store db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the store database.
func (s *DB) Close() error {
	return s.db.Close()
}

// Get returns the blob stored under key. ok is false when the key has never
// been written.
func (s *DB) Get(key string) (data []byte, ok bool, err error) {
	err = s.db.QueryRow("SELECT value FROM blobs WHERE key = ?", key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading %s: %w", key, err)
	}
	return data, true, nil
}

// Put replaces the blob stored under key. The write is a single transaction:
// readers see either the previous document or the new one.
func (s *DB) Put(key string, data []byte) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err = tx.Exec(`INSERT INTO blobs (key, value, revision, updated_at)
		VALUES (?, ?, 1, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			revision = blobs.revision + 1,
			updated_at = excluded.updated_at`,
		key, data, now,
	)
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}

	return tx.Commit()
}

// Delete removes key. Deleting a missing key is not an error.
func (s *DB) Delete(key string) error {
	_, err := s.db.Exec("DELETE FROM blobs WHERE key = ?", key)
	return err
}

// Info describes a stored blob without its contents.
type Info struct {
	Key       string
	Size      int64
	Revision  int64
	UpdatedAt time.Time
}

// Stat returns metadata for key.
func (s *DB) Stat(key string) (Info, bool, error) {
	var info Info
	var updated string
	err := s.db.QueryRow(
		"SELECT key, length(value), revision, updated_at FROM blobs WHERE key = ?", key,
	).Scan(&info.Key, &info.Size, &info.Revision, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return Info{}, false, nil
	}
	if err != nil {
		return Info{}, false, err
	}
	info.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)
	return info, true, nil
}

// Keys lists all stored keys in lexical order.
func (s *DB) Keys() ([]string, error) {
	rows, err := s.db.Query("SELECT key FROM blobs ORDER BY key")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Get loads the JSON value stored under key into out, which must be a
// pointer to a default-initialized value. It reports whether a usable
// value was found. On a missing key out is left untouched; on a read or
// decode failure the problem is logged and out is left untouched — the
// caller keeps its default and the UI never sees a storage error.
func (s *Store) Get(key string, out any) bool {
	var raw string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to read %q from store: %v\n", key, err)
		return false
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		fmt.Fprintf(os.Stderr, "warning: corrupt value for %q, using default: %v\n", key, err)
		return false
	}
	return true
}

// Set JSON-encodes v and upserts it under key.
func (s *Store) Set(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}

	_, err = s.db.Exec(
		"INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, string(raw),
	)
	if err != nil {
		return fmt.Errorf("write %q: %w", key, err)
	}
	return nil
}

// Remove deletes the value stored under key. Removing a missing key is
// not an error.
func (s *Store) Remove(key string) error {
	if _, err := s.db.Exec("DELETE FROM kv WHERE key = ?", key); err != nil {
		return fmt.Errorf("remove %q: %w", key, err)
	}
	return nil
}

// Clear deletes every stored key.
func (s *Store) Clear() error {
	if _, err := s.db.Exec("DELETE FROM kv"); err != nil {
		return fmt.Errorf("clear store: %w", err)
	}
	return nil
}

// Keys returns all stored key names, sorted.
func (s *Store) Keys() ([]string, error) {
	rows, err := s.db.Query("SELECT key FROM kv ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scan key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

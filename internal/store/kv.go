package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// The snapshot table is a keyed blob store for session progress,
// gamification stats, and settings. Store itself implements the narrow
// Load/Save/Clear interface those packages persist through.

// Load returns the blob stored under key, or (nil, nil) when absent.
func (s *Store) Load(key string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRow(`SELECT data FROM snapshots WHERE key = ?`, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot %q: %w", key, err)
	}
	return data, nil
}

// Save upserts the blob under key.
func (s *Store) Save(key string, data []byte) error {
	_, err := s.db.Exec(`
		INSERT INTO snapshots (key, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		key, data, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save snapshot %q: %w", key, err)
	}
	return nil
}

// Clear deletes the blob under key. Clearing an absent key is not an error.
func (s *Store) Clear(key string) error {
	if _, err := s.db.Exec(`DELETE FROM snapshots WHERE key = ?`, key); err != nil {
		return fmt.Errorf("clear snapshot %q: %w", key, err)
	}
	return nil
}

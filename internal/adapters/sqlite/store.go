// Package sqlite provides a SQLite-backed implementation of the snapshot store port.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // Import the driver anonymously

	"github.com/ewhitmore/trackbox/internal/core/domain"
	"github.com/ewhitmore/trackbox/internal/core/ports"
)

// snapshotKey is the fixed storage key for the enriched library.
const snapshotKey = "audioFiles"

// Store persists the enriched library as a single keyed JSON snapshot.
type Store struct {
	db *sql.DB
}

// compile-time interface assertion
var _ ports.SnapshotStore = (*Store)(nil)

// NewStore creates a connection and runs the schema migration.
func NewStore(storagePath string) (*Store, error) {
	db, err := sql.Open("sqlite3", storagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}

	// Verify connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return store, nil
}

// Close ensures the DB connection is closed gracefully.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save serializes the library and upserts it under the fixed key. The write
// is a single statement, so a present row is always a complete serialization
// of some past library value.
func (s *Store) Save(ctx context.Context, lib domain.Library) error {
	payload, err := json.Marshal(lib)
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot: %w", err)
	}

	query := `
		INSERT INTO snapshots (key, payload, saved_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET payload=excluded.payload, saved_at=excluded.saved_at;
	`
	if _, err := s.db.ExecContext(ctx, query, snapshotKey, string(payload)); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	return nil
}

// Load deserializes the last persisted snapshot. A missing row and an
// undecodable payload both map to ports.ErrNoSnapshot so callers can treat
// the cache as absent either way.
func (s *Store) Load(ctx context.Context) (domain.Library, error) {
	row := s.db.QueryRowContext(ctx, "SELECT payload FROM snapshots WHERE key = ?", snapshotKey)

	var payload string
	if err := row.Scan(&payload); err != nil {
		if err == sql.ErrNoRows {
			return domain.Library{}, ports.ErrNoSnapshot
		}
		return domain.Library{}, fmt.Errorf("failed to load snapshot: %w", err)
	}

	var lib domain.Library
	if err := json.Unmarshal([]byte(payload), &lib); err != nil {
		return domain.Library{}, fmt.Errorf("corrupt snapshot payload: %w", ports.ErrNoSnapshot)
	}

	return lib, nil
}

func (s *Store) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS snapshots (
		key TEXT PRIMARY KEY,
		payload TEXT NOT NULL,
		saved_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err := s.db.Exec(query); err != nil {
		return err
	}

	return nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// PostgresBlobStore keeps blobs in the kv_blobs table.
type PostgresBlobStore struct {
	db *sqlx.DB
}

// NewPostgresBlobStore creates a new instance of PostgresBlobStore.
func NewPostgresBlobStore(db *sqlx.DB) *PostgresBlobStore {
	return &PostgresBlobStore{db: db}
}

// EnsureSchema creates the kv_blobs table when missing.
func (s *PostgresBlobStore) EnsureSchema(ctx context.Context) error {
	const query = `CREATE TABLE IF NOT EXISTS kv_blobs (key TEXT PRIMARY KEY, value BYTEA NOT NULL, updated_at TIMESTAMPTZ NOT NULL)`
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("ensure kv_blobs: %w", err)
	}
	return nil
}

// Get returns the value stored under key.
func (s *PostgresBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	const query = `SELECT value FROM kv_blobs WHERE key = $1`
	var value []byte
	if err := s.db.GetContext(ctx, &value, query, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBlobNotFound
		}
		return nil, fmt.Errorf("get blob %s: %w", key, err)
	}
	return value, nil
}

// Put upserts the value.
func (s *PostgresBlobStore) Put(ctx context.Context, key string, value []byte) error {
	const query = `INSERT INTO kv_blobs (key, value, updated_at) VALUES ($1, $2, $3)
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
	if _, err := s.db.ExecContext(ctx, query, key, value, time.Now().UTC()); err != nil {
		return fmt.Errorf("put blob %s: %w", key, err)
	}
	return nil
}

// Delete removes the row if present.
func (s *PostgresBlobStore) Delete(ctx context.Context, key string) error {
	const query = `DELETE FROM kv_blobs WHERE key = $1`
	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("delete blob %s: %w", key, err)
	}
	return nil
}

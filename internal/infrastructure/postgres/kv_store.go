package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/trackassure/compliance-api/internal/domain/repository"
)

var _ repository.KVStore = (*KVStore)(nil)

// KVStore implements the credential-store port over a key/value table.
//
//	CREATE TABLE credential_store (
//	    key        TEXT PRIMARY KEY,
//	    value      TEXT NOT NULL,
//	    updated_at TIMESTAMPTZ NOT NULL
//	);
type KVStore struct {
	pool *pgxpool.Pool
}

// NewKVStore builds the persistence adapter for the credential store.
func NewKVStore(pool *pgxpool.Pool) *KVStore {
	return &KVStore{pool: pool}
}

// Get returns the stored value; ok is false when the key is absent.
func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.pool.QueryRow(ctx, `SELECT value FROM credential_store WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get credential record: %w", err)
	}
	return value, true, nil
}

// Set upserts a record.
func (s *KVStore) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO credential_store (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
	if _, err := s.pool.Exec(ctx, query, key, value, time.Now()); err != nil {
		return fmt.Errorf("set credential record: %w", err)
	}
	return nil
}

// Remove deletes a record. Removing an absent key is not an error.
func (s *KVStore) Remove(ctx context.Context, key string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM credential_store WHERE key = $1`, key); err != nil {
		return fmt.Errorf("remove credential record: %w", err)
	}
	return nil
}

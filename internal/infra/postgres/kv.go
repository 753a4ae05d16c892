package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/palabras-bot/internal/repository"
)

const kvSchema = `
	CREATE TABLE IF NOT EXISTS kv_store (
		key        TEXT PRIMARY KEY,
		value      BYTEA NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)
`

// KVStore keeps key-value pairs in the kv_store table.
type KVStore struct {
	db         DBTX
	transactor *Transactor
}

func NewKVStore(db DBTX, transactor *Transactor) *KVStore {
	return &KVStore{db: db, transactor: transactor}
}

// EnsureSchema creates the kv_store table when missing.
func (s *KVStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, kvSchema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// Get returns the value stored under key.
func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRow(ctx, `SELECT value FROM kv_store WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrKeyNotFound
		}
		return nil, fmt.Errorf("get: %w", err)
	}
	return value, nil
}

// Update locks the row of key, applies fn and writes the result back.
func (s *KVStore) Update(ctx context.Context, key string, fn func(current []byte) ([]byte, error)) error {
	return s.transactor.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		var current []byte
		err := tx.QueryRow(ctx, `SELECT value FROM kv_store WHERE key = $1 FOR UPDATE`, key).Scan(&current)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("lock: %w", err)
		}

		next, err := fn(current)
		if err != nil {
			return err
		}
		if next == nil {
			next = []byte{}
		}

		query := `
			INSERT INTO kv_store (key, value, updated_at)
			VALUES ($1, $2, now())
			ON CONFLICT (key) DO UPDATE SET
				value = EXCLUDED.value,
				updated_at = EXCLUDED.updated_at
		`
		if _, err := tx.Exec(ctx, query, key, next); err != nil {
			return fmt.Errorf("upsert: %w", err)
		}

		return nil
	})
}

// Delete removes key.
func (s *KVStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM kv_store WHERE key = $1`, key); err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	return nil
}

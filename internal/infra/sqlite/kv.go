package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aliskhannn/palabras-bot/internal/repository"
)

// Get returns the value stored under key.
func (d *DB) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := d.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrKeyNotFound
		}
		return nil, fmt.Errorf("get %q: %w", key, err)
	}
	return value, nil
}

// Update reads and rewrites key inside one immediate transaction.
func (d *DB) Update(ctx context.Context, key string, fn func(current []byte) ([]byte, error)) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var current []byte
	err = tx.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&current)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("get %q: %w", key, err)
	}

	next, err := fn(current)
	if err != nil {
		return err
	}
	if next == nil {
		next = []byte{}
	}

	query := `
		INSERT INTO kv (key, value, updated_at)
		VALUES (?, ?, strftime('%s', 'now'))
		ON CONFLICT (key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`
	if _, err := tx.ExecContext(ctx, query, key, next); err != nil {
		return fmt.Errorf("put %q: %w", key, err)
	}

	return tx.Commit()
}

// Delete removes key. Deleting a missing key is not an error.
func (d *DB) Delete(ctx context.Context, key string) error {
	if _, err := d.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

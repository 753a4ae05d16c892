package repository

import (
	"context"
	"errors"
)

var ErrKeyNotFound = errors.New("key not found")

// KVStore is a byte-oriented key-value store.
type KVStore interface {
	// Get returns ErrKeyNotFound when key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	// Update replaces the value of key with the result of fn. fn receives the
	// current value, nil when absent. The read and the write are atomic with
	// respect to other updates of the same key.
	Update(ctx context.Context, key string, fn func(current []byte) ([]byte, error)) error
	Delete(ctx context.Context, key string) error
}

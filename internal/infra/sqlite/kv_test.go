package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/palabras-bot/internal/repository"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "data", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestDB_KV(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	_, err := db.Get(ctx, "progress:1")
	assert.ErrorIs(t, err, repository.ErrKeyNotFound)

	require.NoError(t, db.Update(ctx, "progress:1", func(current []byte) ([]byte, error) {
		assert.Nil(t, current)
		return []byte(`{"lastMode":null}`), nil
	}))

	require.NoError(t, db.Update(ctx, "progress:1", func(current []byte) ([]byte, error) {
		assert.Equal(t, `{"lastMode":null}`, string(current))
		return []byte(`{"lastMode":"es-en"}`), nil
	}))

	v, err := db.Get(ctx, "progress:1")
	require.NoError(t, err)
	assert.Equal(t, `{"lastMode":"es-en"}`, string(v))

	require.NoError(t, db.Delete(ctx, "progress:1"))
	_, err = db.Get(ctx, "progress:1")
	assert.ErrorIs(t, err, repository.ErrKeyNotFound)
}

func TestDB_UpdateRollsBack(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	require.NoError(t, db.Update(ctx, "k", func([]byte) ([]byte, error) {
		return []byte("v1"), nil
	}))

	boom := errors.New("boom")
	err := db.Update(ctx, "k", func([]byte) ([]byte, error) { return []byte("v2"), boom })
	assert.ErrorIs(t, err, boom)

	v, err := db.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v1", string(v))
}

func TestDB_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, db.Update(ctx, "k", func([]byte) ([]byte, error) { return []byte("kept"), nil }))
	require.NoError(t, db.Close())

	db, err = Open(ctx, path)
	require.NoError(t, err)
	defer db.Close()

	v, err := db.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "kept", string(v))
}

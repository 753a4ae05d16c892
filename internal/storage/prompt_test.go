package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptStorage(t *testing.T) {
	s := NewPromptStorage()
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	_, ok := s.UpsertAndGetPrev(1, 100, 10, 0)
	assert.False(t, ok)

	prev, ok := s.UpsertAndGetPrev(1, 100, 11, 1)
	require.True(t, ok)
	assert.Equal(t, PromptMessage{ChatID: 100, MessageID: 10, Cursor: 0, SentAt: now}, prev)

	cur, ok := s.Get(1)
	require.True(t, ok)
	assert.Equal(t, 11, cur.MessageID)

	taken, ok := s.Take(1)
	require.True(t, ok)
	assert.Equal(t, 11, taken.MessageID)

	_, ok = s.Take(1)
	assert.False(t, ok)
}

func TestPromptStorage_Sweep(t *testing.T) {
	s := NewPromptStorage()
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	s.UpsertAndGetPrev(1, 100, 10, 0)
	s.UpsertAndGetPrev(2, 200, 20, 0)

	assert.Zero(t, s.Sweep(now))
	assert.Equal(t, 2, s.Sweep(now.Add(time.Second)))

	_, ok := s.Get(1)
	assert.False(t, ok)
}

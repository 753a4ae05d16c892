package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type recordingSweeper struct {
	cutoffs []time.Time
	dropped int
}

func (s *recordingSweeper) Sweep(cutoff time.Time) int {
	s.cutoffs = append(s.cutoffs, cutoff)
	return s.dropped
}

func TestJanitor_SweepOnce(t *testing.T) {
	sessions := &recordingSweeper{dropped: 2}
	prompts := &recordingSweeper{dropped: 1}

	j := NewJanitor("@every 1m", time.Hour, map[string]Sweeper{
		"sessions": sessions,
		"prompts":  prompts,
	}, zap.NewNop())
	now := time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)
	j.now = func() time.Time { return now }

	assert.Equal(t, 3, j.SweepOnce())

	want := []time.Time{now.Add(-time.Hour)}
	assert.Equal(t, want, sessions.cutoffs)
	assert.Equal(t, want, prompts.cutoffs)
}

func TestJanitor_Start(t *testing.T) {
	t.Run("invalid schedule", func(t *testing.T) {
		j := NewJanitor("not a schedule", time.Hour, nil, zap.NewNop())

		assert.Error(t, j.Start(context.Background()))
	})

	t.Run("stops with the context", func(t *testing.T) {
		j := NewJanitor("@every 1h", time.Hour, nil, zap.NewNop())
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		assert.NoError(t, j.Start(ctx))
	})
}

package service

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Sweeper drops in-memory state not touched since cutoff.
type Sweeper interface {
	Sweep(cutoff time.Time) int
}

// Janitor periodically releases memory held for idle players.
// Persisted progress is never touched.
type Janitor struct {
	schedule string
	idleTTL  time.Duration
	sweepers map[string]Sweeper
	logger   *zap.Logger
	now      func() time.Time
}

// NewJanitor creates a janitor running on a cron schedule, e.g. "@every 10m".
func NewJanitor(schedule string, idleTTL time.Duration, sweepers map[string]Sweeper, logger *zap.Logger) *Janitor {
	return &Janitor{
		schedule: schedule,
		idleTTL:  idleTTL,
		sweepers: sweepers,
		logger:   logger,
		now:      time.Now,
	}
}

// Start runs the sweep loop until ctx is cancelled.
func (j *Janitor) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(time.UTC))

	_, err := c.AddFunc(j.schedule, func() {
		j.SweepOnce()
	})
	if err != nil {
		return err
	}

	c.Start()
	j.logger.Info("janitor started",
		zap.String("schedule", j.schedule),
		zap.Duration("idle_ttl", j.idleTTL),
	)

	<-ctx.Done()

	<-c.Stop().Done()
	j.logger.Info("janitor stopped")

	return nil
}

// SweepOnce drops everything idle for longer than the TTL.
func (j *Janitor) SweepOnce() int {
	cutoff := j.now().Add(-j.idleTTL)

	total := 0
	for name, s := range j.sweepers {
		n := s.Sweep(cutoff)
		if n > 0 {
			j.logger.Info("idle state dropped",
				zap.String("component", name),
				zap.Int("count", n),
			)
		}
		total += n
	}

	return total
}

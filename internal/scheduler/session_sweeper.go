package scheduler

import (
	"context"
	"time"

	"offerte_backend/platform/logger"
)

const defaultSessionSweepInterval = time.Minute

// SessionSweeper is the part of the session store the sweeper drives.
type SessionSweeper interface {
	Sweep(ctx context.Context) int
	Len() int
}

// SessionCleanup periodically closes idle intake sessions.
type SessionCleanup struct {
	store    SessionSweeper
	log      *logger.Logger
	interval time.Duration
}

func NewSessionCleanup(store SessionSweeper, log *logger.Logger, interval time.Duration) *SessionCleanup {
	if interval <= 0 {
		interval = defaultSessionSweepInterval
	}

	return &SessionCleanup{
		store:    store,
		log:      log,
		interval: interval,
	}
}

func (c *SessionCleanup) Run(ctx context.Context) {
	if c == nil || c.store == nil {
		return
	}

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.cleanup(ctx)
		}
	}
}

func (c *SessionCleanup) cleanup(ctx context.Context) {
	closed := c.store.Sweep(ctx)
	if closed > 0 {
		c.log.Info("session cleanup closed idle sessions", "closed", closed, "remaining", c.store.Len())
	}
}

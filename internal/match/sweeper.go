package match

import (
	"context"
	"time"

	"tictactoe_arena/internal/logger"
)

// Sweeper drives turn-deadline enforcement on a fixed cadence. It is the
// only background actor that mutates match state.
type Sweeper struct {
	manager  *Manager
	interval time.Duration
}

func NewSweeper(manager *Manager, interval time.Duration) *Sweeper {
	return &Sweeper{manager: manager, interval: interval}
}

// Run blocks until the context is cancelled, sweeping expired turns on every
// tick. A panic inside a sweep is logged and the loop keeps running.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	logger.Info("turn sweeper started", "interval", s.interval.String())

	for {
		select {
		case <-ctx.Done():
			logger.Info("turn sweeper stopped")
			return
		case <-ticker.C:
			s.sweepOnce()
		}
	}
}

func (s *Sweeper) sweepOnce() {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("sweep panicked", "panic", r)
		}
	}()
	s.manager.SweepExpired()
}

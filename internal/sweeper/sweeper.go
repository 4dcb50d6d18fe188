package sweeper

import (
	"context"
	"time"

	"github.com/prepmate/prepmate-server/internal/logger"
)

// SessionSweeper deactivates expired sessions and reports how many.
type SessionSweeper interface {
	SweepExpired(ctx context.Context) (int64, error)
}

// Sweeper runs the expired-session sweep on a fixed interval, owned by the
// process lifecycle rather than any request path. Sweep failures are logged
// and swallowed; cleanup resumes on the next tick.
type Sweeper struct {
	sessions SessionSweeper
	interval time.Duration
	logger   *logger.Logger
}

// New creates a Sweeper ticking every interval.
func New(sessions SessionSweeper, interval time.Duration, logger *logger.Logger) *Sweeper {
	return &Sweeper{
		sessions: sessions,
		interval: interval,
		logger:   logger,
	}
}

// Run sweeps once immediately, then on every tick until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	if _, err := s.sessions.SweepExpired(ctx); err != nil {
		s.logger.Error("Sweeper: sweep failed",
			"error", err.Error())
	}
}

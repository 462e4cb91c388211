package worker

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

// Runner executes the warm job on a fixed interval until its context is
// cancelled. The first run happens immediately so the cache is hot before
// the first TTL window elapses.
type Runner struct {
	job      *RefreshJob
	interval time.Duration
	clock    clockwork.Clock
	logger   zerolog.Logger
}

// RunnerConfig holds configuration for the periodic runner.
type RunnerConfig struct {
	Job      *RefreshJob
	Interval time.Duration
	Clock    clockwork.Clock
	Logger   zerolog.Logger
}

// NewRunner creates a periodic warm runner. A zero interval defaults to
// 4 minutes, just inside the default cache TTL.
func NewRunner(cfg RunnerConfig) *Runner {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 4 * time.Minute
	}
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Runner{
		job:      cfg.Job,
		interval: interval,
		clock:    clock,
		logger:   cfg.Logger,
	}
}

// Start blocks, warming immediately and then on every interval tick, until
// ctx is cancelled.
func (r *Runner) Start(ctx context.Context) {
	r.logger.Info().
		Dur("interval", r.interval).
		Msg("cache warmer started")

	r.job.Run(ctx)

	ticker := r.clock.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info().Msg("cache warmer stopped")
			return
		case <-ticker.Chan():
			r.job.Run(ctx)
		}
	}
}

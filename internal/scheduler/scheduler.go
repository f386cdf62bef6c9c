package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmelton/jobdigest/internal/pipeline"
)

// Scheduler owns the main loop: ticks on an interval and runs each feed
// pipeline sequentially.
type Scheduler struct {
	pipelines []*pipeline.FeedPipeline
	interval  time.Duration
	logger    *slog.Logger
}

// NewScheduler creates a scheduler that runs all pipelines at the given
// interval.
func NewScheduler(pipelines []*pipeline.FeedPipeline, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		pipelines: pipelines,
		interval:  interval,
		logger:    logger,
	}
}

// Run starts the loop. It runs one immediate cycle, then ticks on the
// configured interval. Returns nil when ctx is cancelled (graceful
// shutdown).
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info("starting scheduler",
		"interval", s.interval.String(),
		"feeds", len(s.pipelines),
	)

	s.runAll(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("shutting down scheduler")
			return nil
		case <-time.After(s.interval):
			s.runAll(ctx)
		}
	}
}

// runAll runs each pipeline sequentially. A failing source never stops the
// others.
func (s *Scheduler) runAll(ctx context.Context) {
	for _, p := range s.pipelines {
		if ctx.Err() != nil {
			return
		}
		if err := p.Run(ctx); err != nil {
			s.logger.Error("pipeline run failed",
				"source", p.Source(),
				"error", err,
			)
		}
	}
}

// Package scheduler runs the nightly anomaly and milestone scan on a cron
// schedule. The same scan is reachable over HTTP for external schedulers.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ScanFunc runs one full scan pass.
type ScanFunc func(ctx context.Context) error

// Scheduler owns the cron runner.
type Scheduler struct {
	cron   *cron.Cron
	logger *zap.Logger
}

// New creates a scheduler that runs scan on the given cron spec
// (e.g. "0 2 * * *" for 2am daily).
func New(spec string, scan ScanFunc, logger *zap.Logger) (*Scheduler, error) {
	c := cron.New()

	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		start := time.Now()
		if err := scan(ctx); err != nil {
			logger.Error("scheduler: scan failed",
				zap.Duration("elapsed", time.Since(start)),
				zap.Error(err),
			)
			return
		}
		logger.Info("scheduler: scan complete", zap.Duration("elapsed", time.Since(start)))
	})
	if err != nil {
		return nil, err
	}

	return &Scheduler{cron: c, logger: logger}, nil
}

// Start begins running scheduled jobs in their own goroutines.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler: started")
}

// Stop halts scheduling and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler: stopped")
}

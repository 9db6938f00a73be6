// Package scheduler runs periodic background jobs such as reconciliation.
package scheduler

import (
	"fmt"
	"time"

	"wallet-engine/pkg/logger"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Scheduler wraps a cron runner. Specs use six fields (with seconds) in UTC.
type Scheduler struct {
	cron *cron.Cron
	log  zerolog.Logger
}

// New creates a stopped scheduler. A job still running when its next tick
// arrives is skipped for that tick.
func New(log zerolog.Logger) *Scheduler {
	l := logger.WithComponent(log, "scheduler")
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
		cron.WithChain(
			cron.Recover(cron.PrintfLogger(&l)),
			cron.SkipIfStillRunning(cron.PrintfLogger(&l)),
		),
	)
	return &Scheduler{cron: c, log: l}
}

// Register adds a named job.
func (s *Scheduler) Register(name, spec string, job func()) error {
	id, err := s.cron.AddFunc(spec, func() {
		start := time.Now()
		s.log.Debug().Str("job", name).Msg("job started")
		job()
		s.log.Debug().Str("job", name).Dur("took", time.Since(start)).Msg("job finished")
	})
	if err != nil {
		return fmt.Errorf("register job %s with spec %q: %w", name, spec, err)
	}
	s.log.Info().
		Str("job", name).
		Str("spec", spec).
		Time("next_run", s.cron.Entry(id).Schedule.Next(time.Now().UTC())).
		Msg("job registered")
	return nil
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info().Int("jobs", len(s.cron.Entries())).Msg("scheduler started")
}

// Stop halts new runs and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info().Msg("scheduler stopped")
}

// Jobs returns the number of registered jobs.
func (s *Scheduler) Jobs() int {
	return len(s.cron.Entries())
}

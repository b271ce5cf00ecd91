// Package jobs runs the background work of the lead API on cron schedules.
package jobs

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler owns the cron runner and tracks registered jobs by name so they
// can be removed or listed later.
type Scheduler struct {
	runner  *cron.Cron
	logger  *zap.Logger
	mu      sync.Mutex
	entries map[string]cron.EntryID
}

// NewScheduler builds a scheduler whose jobs recover from panics and never
// overlap themselves when a run takes longer than its interval.
func NewScheduler(logger *zap.Logger) *Scheduler {
	runner := cron.New(
		cron.WithSeconds(),
		cron.WithChain(
			cron.SkipIfStillRunning(cron.DefaultLogger),
			cron.Recover(cron.DefaultLogger),
		),
	)
	return &Scheduler{
		runner:  runner,
		logger:  logger,
		entries: make(map[string]cron.EntryID),
	}
}

// Start begins executing registered jobs on their schedules.
func (s *Scheduler) Start() {
	s.logger.Info("starting job scheduler")
	s.runner.Start()
}

// Stop halts scheduling. The returned context is done once in-flight jobs
// have finished.
func (s *Scheduler) Stop() context.Context {
	s.logger.Info("stopping job scheduler")
	return s.runner.Stop()
}

// AddJob registers fn under a unique name. cronExpr accepts the six-field
// form with seconds, the standard five-field form, and descriptors such as
// "@hourly" or "@every 30m".
func (s *Scheduler) AddJob(name string, cronExpr string, fn func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.entries[name]; taken {
		return fmt.Errorf("job %s already exists", name)
	}

	id, err := s.runner.AddFunc(cronExpr, func() {
		s.logger.Info("running scheduled job", zap.String("job_name", name))
		fn()
		s.logger.Info("completed scheduled job", zap.String("job_name", name))
	})
	if err != nil {
		return fmt.Errorf("failed to add job %s: %w", name, err)
	}
	s.entries[name] = id

	s.logger.Info("added scheduled job",
		zap.String("job_name", name),
		zap.String("cron_expr", cronExpr))
	return nil
}

// RemoveJob unregisters a job by name.
func (s *Scheduler) RemoveJob(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.entries[name]
	if !ok {
		return fmt.Errorf("job %s not found", name)
	}
	s.runner.Remove(id)
	delete(s.entries, name)

	s.logger.Info("removed scheduled job", zap.String("job_name", name))
	return nil
}

// GetJobNames lists the currently registered job names.
func (s *Scheduler) GetJobNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		names = append(names, name)
	}
	return names
}

// Package schedule re-runs registered checks on a cron schedule.
package schedule

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/your-org/pipelines/pkg/run"
)

// Invoker runs a named action and reports its run record
type Invoker interface {
	Invoke(ctx context.Context, name string) (*run.Record, error)
}

// Scheduler triggers actions at the right time; execution stays with the
// invoker.
type Scheduler struct {
	cron    *cron.Cron
	invoker Invoker
	entries map[string]cron.EntryID
	logger  *slog.Logger
}

// NewScheduler creates a scheduler around the given invoker
func NewScheduler(invoker Invoker, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		invoker: invoker,
		entries: make(map[string]cron.EntryID),
		logger:  logger.With("component", "scheduler"),
	}
}

// Add schedules the named action with a cron expression. Re-adding a name
// replaces its previous schedule.
func (s *Scheduler) Add(name, spec string) error {
	if entryID, ok := s.entries[name]; ok {
		s.cron.Remove(entryID)
	}

	job := &actionJob{
		name:    name,
		invoker: s.invoker,
		logger:  s.logger.With("action", name),
	}

	entryID, err := s.cron.AddJob(spec, job)
	if err != nil {
		s.logger.Error("failed to schedule action", "action", name, "error", err)
		return err
	}

	s.entries[name] = entryID
	s.logger.Info("scheduled action", "action", name, "schedule", spec)
	return nil
}

// Remove drops the named action from the schedule
func (s *Scheduler) Remove(name string) {
	if entryID, ok := s.entries[name]; ok {
		s.cron.Remove(entryID)
		delete(s.entries, name)
		s.logger.Info("unscheduled action", "action", name)
	}
}

// Len returns the number of scheduled actions
func (s *Scheduler) Len() int {
	return len(s.entries)
}

// Start runs the scheduler until ctx is done
func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started")
	s.cron.Start()
	<-ctx.Done()
	s.logger.Info("scheduler stopping")
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.logger.Info("scheduler stopped")
	return ctx.Err()
}

// actionJob is called by the cron library; it only dispatches to the invoker
type actionJob struct {
	name    string
	invoker Invoker
	logger  *slog.Logger
}

func (j *actionJob) Run() {
	j.logger.Info("dispatching scheduled action")
	if _, err := j.invoker.Invoke(context.Background(), j.name); err != nil {
		j.logger.Error("scheduled action failed", "error", err)
	}
}

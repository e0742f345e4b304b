package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/fleetnexa/fleetnexa-server/internal/jobs"
	"github.com/fleetnexa/fleetnexa-server/internal/logger"
)

// Scheduler runs registered jobs on six-field cron specs in UTC.
type Scheduler struct {
	cron *cron.Cron
}

func New() *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithSeconds(), cron.WithLocation(time.UTC)),
	}
}

// Register binds a job to a cron spec. Each firing gets its own context.
func (s *Scheduler) Register(spec string, job jobs.Job) error {
	_, err := s.cron.AddFunc(spec, func() {
		jobs.RunWithRecovery(context.Background(), job)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule job %s: %w", job.Name(), err)
	}
	logger.Info("job scheduled", "job", job.Name(), "spec", spec)
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	logger.Info("scheduler started")
}

// Stop halts scheduling and waits for in-flight jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("scheduler stopped")
}

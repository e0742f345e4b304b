package jobs

import (
	"context"
	"time"

	"github.com/fleetnexa/fleetnexa-server/internal/logger"
)

// Job is a unit of scheduled work. Run must be safe to invoke repeatedly;
// every job here recomputes from source data rather than applying deltas.
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// RunWithRecovery executes a job, converts panics into logged errors and
// records the duration. The scheduler must survive any single bad run.
func RunWithRecovery(ctx context.Context, job Job) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("job panicked", "job", job.Name(), "panic", r)
		}
	}()

	start := time.Now()
	logger.Info("job started", "job", job.Name())

	if err := job.Run(ctx); err != nil {
		logger.Error("job failed", "job", job.Name(), "duration", time.Since(start), "error", err)
		return
	}
	logger.Info("job finished", "job", job.Name(), "duration", time.Since(start))
}

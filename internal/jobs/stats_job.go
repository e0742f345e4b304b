package jobs

import (
	"context"
	"time"

	"github.com/fleetnexa/fleetnexa-server/internal/service"
)

// StatsRecomputeJob rebuilds the precomputed stats for every tenant. The
// dashboard reads only these rows, so its freshness is bounded by the cron
// cadence.
type StatsRecomputeJob struct {
	statsSvc service.StatsService
}

func NewStatsRecomputeJob(statsSvc service.StatsService) *StatsRecomputeJob {
	return &StatsRecomputeJob{statsSvc: statsSvc}
}

func (j *StatsRecomputeJob) Name() string { return "stats-recompute" }

func (j *StatsRecomputeJob) Run(ctx context.Context) error {
	return j.statsSvc.RecomputeAll(ctx, time.Now().UTC())
}

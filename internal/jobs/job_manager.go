package jobs

import (
	"fmt"

	"go.uber.org/zap"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	stalePendingOrdersJob *StalePendingOrdersJob
}

// NewJobManager creates a job manager with all jobs wired to their handlers.
func NewJobManager(staleOrdersSchedule string, metricsHandler MetricsHandler, logger *zap.Logger) *JobManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JobManager{
		stalePendingOrdersJob: NewStalePendingOrdersJob(staleOrdersSchedule, metricsHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.stalePendingOrdersJob.Start(); err != nil {
		return fmt.Errorf("failed to start stale pending orders job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.stalePendingOrdersJob.Stop()
}

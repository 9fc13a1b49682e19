package jobs

import (
	"fmt"
	"log/slog"

	"timberops/internal/core/application/usecases/queries"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	stalePendingJob *StalePendingJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	stalePendingHandler queries.GetStalePendingQueryHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		stalePendingJob: NewStalePendingJob(stalePendingHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.stalePendingJob.Start(); err != nil {
		return fmt.Errorf("failed to start stale pending sweep: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.stalePendingJob.Stop()
}

package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	countdownJob *CountdownJob
}

// NewJobManager creates a new job manager with all required jobs.
// countdownSchedule is a cron spec such as "@every 1m" or "*/1 * * * *".
func NewJobManager(advanceCountdowns countdownAdvancer, countdownSchedule string, logger *slog.Logger) *JobManager {
	return &JobManager{
		countdownJob: NewCountdownJob(advanceCountdowns, countdownSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.countdownJob.Start(); err != nil {
		return fmt.Errorf("failed to start countdown job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs and waits for running ones.
func (jm *JobManager) StopAll() {
	jm.countdownJob.Stop()
}

package jobs

import (
	"fmt"
	"log/slog"
	"time"
)

// RetentionConfig sets how long audit actions and stored notifications are
// kept. A zero retention disables the corresponding job.
type RetentionConfig struct {
	ActionRetention       time.Duration
	NotificationRetention time.Duration
	Schedule              string
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	trimActionsJob        *TrimActionsJob
	purgeNotificationsJob *PurgeNotificationsJob
}

// NewJobManager creates a job manager with the retention jobs enabled by cfg.
func NewJobManager(
	trimActionsHandler TrimActionsHandler,
	purgeNotificationsHandler PurgeNotificationsHandler,
	cfg RetentionConfig,
	logger *slog.Logger,
) *JobManager {
	jm := &JobManager{}
	if cfg.ActionRetention > 0 {
		jm.trimActionsJob = NewTrimActionsJob(trimActionsHandler, cfg.ActionRetention, cfg.Schedule, logger)
	}
	if cfg.NotificationRetention > 0 {
		jm.purgeNotificationsJob = NewPurgeNotificationsJob(purgeNotificationsHandler, cfg.NotificationRetention, cfg.Schedule, logger)
	}
	return jm
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if jm.trimActionsJob != nil {
		if err := jm.trimActionsJob.Start(); err != nil {
			return fmt.Errorf("failed to start trim actions job: %w", err)
		}
	}

	if jm.purgeNotificationsJob != nil {
		if err := jm.purgeNotificationsJob.Start(); err != nil {
			// Stop already started jobs if this one fails
			if jm.trimActionsJob != nil {
				jm.trimActionsJob.Stop()
			}
			return fmt.Errorf("failed to start purge notifications job: %w", err)
		}
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	if jm.trimActionsJob != nil {
		jm.trimActionsJob.Stop()
	}
	if jm.purgeNotificationsJob != nil {
		jm.purgeNotificationsJob.Stop()
	}
}

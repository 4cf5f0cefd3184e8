// Package jobs provides scheduled background tasks of the workflow service.
//
// Jobs are cron-based (github.com/robfig/cron/v3, six-field expressions with
// seconds) and only perform housekeeping; status transitions never depend on them.
//
// # Available Jobs
//
// 1. TrimActionsJob - deletes audit actions older than ACTION_RETENTION
// 2. PurgeNotificationsJob - deletes stored notifications older than NOTIFICATION_RETENTION
//
// # Usage
//
//	jobManager := jobs.NewJobManager(trimHandler, purgeHandler, jobs.RetentionConfig{
//		ActionRetention:       365 * 24 * time.Hour,
//		NotificationRetention: 30 * 24 * time.Hour,
//	}, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed run is logged and retried at the next tick. Failed job starts stop
// any already running jobs.
package jobs

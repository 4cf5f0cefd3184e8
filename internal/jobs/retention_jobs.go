package jobs

import (
	"context"
	"log/slog"
	"time"

	"orderflow/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultRetentionSchedule runs retention at 03:15 every day (seconds field first).
const DefaultRetentionSchedule = "0 15 3 * * *"

const runTimeout = 5 * time.Minute

type (
	TrimActionsHandler interface {
		Handle(ctx context.Context, cmd commands.TrimActionsCommand) (int64, error)
	}
	PurgeNotificationsHandler interface {
		Handle(ctx context.Context, cmd commands.PurgeNotificationsCommand) (int64, error)
	}
)

// TrimActionsJob deletes audit actions older than the retention window.
// Transitions never trim the log; this job is the only periodic caller.
type TrimActionsJob struct {
	handler   TrimActionsHandler
	retention time.Duration
	schedule  string
	cron      *cron.Cron
	logger    *slog.Logger
}

func NewTrimActionsJob(handler TrimActionsHandler, retention time.Duration, schedule string, logger *slog.Logger) *TrimActionsJob {
	return &TrimActionsJob{
		handler:   handler,
		retention: retention,
		schedule:  scheduleOrDefault(schedule),
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "trim_actions_job"),
	}
}

func (j *TrimActionsJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Trim actions job started",
		"schedule", j.schedule, "retention", j.retention.String())
	return nil
}

// Stop waits for a running trim to finish.
func (j *TrimActionsJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Trim actions job stopped")
}

func (j *TrimActionsJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	cmd, err := commands.NewTrimActionsCommand(j.retention)
	if err != nil {
		j.logger.ErrorContext(ctx, "Trim actions job misconfigured", "error", err)
		return
	}

	if _, err = j.handler.Handle(ctx, cmd); err != nil {
		j.logger.ErrorContext(ctx, "Trim actions job failed", "error", err)
	}
}

// PurgeNotificationsJob deletes stored notifications older than the retention
// window, read or not.
type PurgeNotificationsJob struct {
	handler   PurgeNotificationsHandler
	retention time.Duration
	schedule  string
	cron      *cron.Cron
	logger    *slog.Logger
}

func NewPurgeNotificationsJob(
	handler PurgeNotificationsHandler,
	retention time.Duration,
	schedule string,
	logger *slog.Logger,
) *PurgeNotificationsJob {
	return &PurgeNotificationsJob{
		handler:   handler,
		retention: retention,
		schedule:  scheduleOrDefault(schedule),
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "purge_notifications_job"),
	}
}

func (j *PurgeNotificationsJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Purge notifications job started",
		"schedule", j.schedule, "retention", j.retention.String())
	return nil
}

func (j *PurgeNotificationsJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Purge notifications job stopped")
}

func (j *PurgeNotificationsJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	cmd, err := commands.NewPurgeNotificationsCommand(j.retention)
	if err != nil {
		j.logger.ErrorContext(ctx, "Purge notifications job misconfigured", "error", err)
		return
	}

	if _, err = j.handler.Handle(ctx, cmd); err != nil {
		j.logger.ErrorContext(ctx, "Purge notifications job failed", "error", err)
	}
}

func scheduleOrDefault(schedule string) string {
	if schedule == "" {
		return DefaultRetentionSchedule
	}
	return schedule
}

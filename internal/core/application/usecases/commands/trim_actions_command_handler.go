package commands

import (
	"context"
	"log/slog"
	"time"

	"orderflow/internal/core/domain/model/kernel"
)

// ActionTrimmer deletes old audit actions.
type ActionTrimmer interface {
	DeleteOlderThan(ctx context.Context, horizon time.Time) (int64, error)
}

// NotificationPurger deletes old stored notifications.
type NotificationPurger interface {
	DeleteOlderThan(ctx context.Context, horizon time.Time) (int64, error)
}

// TrimActionsCommandHandler applies the audit retention policy.
//
// Example:
//
//	cmd, _ := NewTrimActionsCommand(365 * 24 * time.Hour)
//	removed, err := handler.Handle(ctx, cmd)
type TrimActionsCommandHandler struct {
	actions ActionTrimmer
	clock   kernel.Clock
	logger  *slog.Logger
}

func NewTrimActionsCommandHandler(actions ActionTrimmer, clock kernel.Clock, logger *slog.Logger) TrimActionsCommandHandler {
	if clock == nil {
		clock = kernel.SystemClock()
	}
	return TrimActionsCommandHandler{actions: actions, clock: clock, logger: logger.With("component", "TrimActions")}
}

// Handle returns how many actions were removed.
func (h TrimActionsCommandHandler) Handle(ctx context.Context, cmd TrimActionsCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	horizon := h.clock().Add(-cmd.Retention())
	removed, err := h.actions.DeleteOlderThan(ctx, horizon)
	if err != nil {
		return 0, storageFailure("trim actions", err)
	}

	h.logger.InfoContext(ctx, "actions trimmed", "horizon", horizon, "removed", removed)
	return removed, nil
}

// PurgeNotificationsCommandHandler applies the notification retention policy.
type PurgeNotificationsCommandHandler struct {
	notifications NotificationPurger
	clock         kernel.Clock
	logger        *slog.Logger
}

func NewPurgeNotificationsCommandHandler(
	notifications NotificationPurger,
	clock kernel.Clock,
	logger *slog.Logger,
) PurgeNotificationsCommandHandler {
	if clock == nil {
		clock = kernel.SystemClock()
	}
	return PurgeNotificationsCommandHandler{
		notifications: notifications,
		clock:         clock,
		logger:        logger.With("component", "PurgeNotifications"),
	}
}

// Handle returns how many notification rows were removed.
func (h PurgeNotificationsCommandHandler) Handle(ctx context.Context, cmd PurgeNotificationsCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	horizon := h.clock().Add(-cmd.Retention())
	removed, err := h.notifications.DeleteOlderThan(ctx, horizon)
	if err != nil {
		return 0, storageFailure("purge notifications", err)
	}

	h.logger.InfoContext(ctx, "notifications purged", "horizon", horizon, "removed", removed)
	return removed, nil
}

package commands

import (
	"errors"
	"time"

	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrTrimActionsCommandIsNotConstructed = errors.New(
	"TrimActionsCommand must be created via NewTrimActionsCommand constructor",
)

// minRetention keeps a trim from wiping the audit trail of running orders.
const minRetention = 24 * time.Hour

// TrimActionsCommand deletes audit actions older than a retention period.
// It is the only operation that removes actions; status changes never do.
type TrimActionsCommand struct { //nolint:recvcheck //using for validation
	retention time.Duration

	guard guard.ConstructorGuard
}

func NewTrimActionsCommand(retention time.Duration) (TrimActionsCommand, error) {
	cmd := TrimActionsCommand{guard: guard.NewConstructorGuard()}
	if err := cmd.setRetention(retention); err != nil {
		return TrimActionsCommand{}, err
	}
	return cmd, nil
}

func (c TrimActionsCommand) Validate() error {
	return c.guard.Validate(ErrTrimActionsCommandIsNotConstructed)
}

func (c TrimActionsCommand) Retention() time.Duration {
	return c.retention
}

func (c *TrimActionsCommand) setRetention(retention time.Duration) error {
	if retention < minRetention {
		return errs.NewValueIsOutOfRangeError("retention", retention, minRetention, "unbounded")
	}
	c.retention = retention
	return nil
}

var ErrPurgeNotificationsCommandIsNotConstructed = errors.New(
	"PurgeNotificationsCommand must be created via NewPurgeNotificationsCommand constructor",
)

// PurgeNotificationsCommand deletes stored notifications older than a
// retention period, read or not.
type PurgeNotificationsCommand struct { //nolint:recvcheck //using for validation
	retention time.Duration

	guard guard.ConstructorGuard
}

func NewPurgeNotificationsCommand(retention time.Duration) (PurgeNotificationsCommand, error) {
	cmd := PurgeNotificationsCommand{guard: guard.NewConstructorGuard()}
	if retention < minRetention {
		return PurgeNotificationsCommand{}, errs.NewValueIsOutOfRangeError("retention", retention, minRetention, "unbounded")
	}
	cmd.retention = retention
	return cmd, nil
}

func (c PurgeNotificationsCommand) Validate() error {
	return c.guard.Validate(ErrPurgeNotificationsCommandIsNotConstructed)
}

func (c PurgeNotificationsCommand) Retention() time.Duration {
	return c.retention
}

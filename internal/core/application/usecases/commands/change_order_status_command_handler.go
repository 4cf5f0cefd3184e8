package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"orderflow/internal/core/application/events"
	"orderflow/internal/core/application/notifications"
	"orderflow/internal/core/domain/model/action"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/notification"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/workflow"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const defaultStorageTimeout = 5 * time.Second

// ChangeOrderStatusResult is the order as stored after the change and the
// audit action recorded for it.
type ChangeOrderStatusResult struct {
	Order  *order.Order
	Action *action.Action
}

// EngineConfig holds the collaborators of the workflow engine that have
// sensible defaults.
type EngineConfig struct {
	StorageTimeout time.Duration
	Clock          kernel.Clock
	NewID          func() kernel.UUID
	Metrics        *TransitionMetrics
}

// ChangeOrderStatusCommandHandler is the workflow engine: the only code path
// that changes an order's status.
//
// A successful change runs in this order:
//  1. the order is loaded and the transition checked by the guard
//  2. the status effect is applied and the order stored, only if nobody
//     changed its status meanwhile
//  3. the audit action is appended in the same transaction, then committed
//  4. one notification per notify role is queued for delivery
//  5. order_status_changed is emitted on the engine's event bus
//
// Failures in steps 1 to 3 are returned and nothing is audited, notified or
// emitted. Failures in steps 4 and 5 are logged and never returned.
//
// Steps 2 to 5 hold a per-order lock, so changes of one order are queued and
// emitted in commit order. Steps 4 and 5 are detached from the caller's
// cancellation: a committed change is delivered even if the caller is gone.
// Action times of one order strictly increase.
//
// Example:
//
//	handler := NewChangeOrderStatusCommandHandler(uowFactory, registry, composer, dispatcher, bus, cfg, logger)
//	result, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrPermissionDenied):
//	    // actor may not make this change
//	case errors.Is(err, errs.ErrConflict):
//	    // reload and retry
//	}
type ChangeOrderStatusCommandHandler struct {
	uowFactory     WorkflowUoWFactory
	registry       *workflow.Registry
	guard          workflow.Guard
	composer       services.NotificationComposer
	queue          NotificationQueue
	bus            *events.Bus
	storageTimeout time.Duration
	clock          kernel.Clock
	newID          func() kernel.UUID
	metrics        *TransitionMetrics
	locks          *orderLocks
	logger         *slog.Logger
}

func NewChangeOrderStatusCommandHandler(
	uowFactory WorkflowUoWFactory,
	registry *workflow.Registry,
	composer services.NotificationComposer,
	queue NotificationQueue,
	bus *events.Bus,
	cfg EngineConfig,
	logger *slog.Logger,
) *ChangeOrderStatusCommandHandler {
	if cfg.StorageTimeout <= 0 {
		cfg.StorageTimeout = defaultStorageTimeout
	}
	if cfg.Clock == nil {
		cfg.Clock = kernel.SystemClock()
	}
	if cfg.NewID == nil {
		cfg.NewID = kernel.NewUUID
	}

	return &ChangeOrderStatusCommandHandler{
		uowFactory:     uowFactory,
		registry:       registry,
		guard:          workflow.NewGuard(registry),
		composer:       composer,
		queue:          queue,
		bus:            bus,
		storageTimeout: cfg.StorageTimeout,
		clock:          cfg.Clock,
		newID:          cfg.NewID,
		metrics:        cfg.Metrics,
		locks:          newOrderLocks(orderLockStripes),
		logger:         logger.With("component", "WorkflowEngine"),
	}
}

// Events returns the bus order_status_changed is emitted on.
func (h *ChangeOrderStatusCommandHandler) Events() *events.Bus {
	return h.bus
}

// Handle applies cmd. Errors are *errs.ObjectNotFoundError,
// *errs.PermissionDeniedError, *errs.ConflictError or *errs.StorageError.
func (h *ChangeOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd ChangeOrderStatusCommand,
) (ChangeOrderStatusResult, error) {
	if err := cmd.Validate(); err != nil {
		return ChangeOrderStatusResult{}, err
	}

	ctx, span := tracing.Tracer().Start(ctx, "Business ChangeOrderStatus")
	defer span.End()
	span.SetAttributes(
		attribute.String("order.id", cmd.OrderID().String()),
		attribute.String("order.new_status", string(cmd.NewStatus())),
		attribute.String("actor.role", string(cmd.Actor().Role())),
	)

	started := time.Now()
	updated, act, release, err := h.apply(ctx, cmd)
	h.metrics.observe(cmd.NewStatus(), err, time.Since(started))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcomeOf(err))
		h.logger.WarnContext(ctx, "status change refused",
			"orderId", cmd.OrderID().String(),
			"newStatus", string(cmd.NewStatus()),
			"actorRole", string(cmd.Actor().Role()),
			"error", err)
		return ChangeOrderStatusResult{}, err
	}
	defer release()

	span.SetAttributes(attribute.String("order.old_status", string(act.OldStatus())))
	h.logger.InfoContext(ctx, "order status changed",
		"orderId", updated.ID().String(),
		"oldStatus", string(act.OldStatus()),
		"newStatus", string(act.NewStatus()),
		"actorId", act.ActorID().String())

	committed := context.WithoutCancel(ctx)
	h.notify(committed, updated, act, cmd.Actor().Name())
	h.bus.Emit(committed, events.NewOrderStatusChanged(updated, act, cmd.Actor().Name()))

	return ChangeOrderStatusResult{Order: updated, Action: act}, nil
}

// apply runs the transaction. On success the order lock is still held and
// release must be called once the change is queued and emitted.
func (h *ChangeOrderStatusCommandHandler) apply(
	ctx context.Context,
	cmd ChangeOrderStatusCommand,
) (_ *order.Order, _ *action.Action, _ func(), err error) {
	ctx, cancel := context.WithTimeout(ctx, h.storageTimeout)
	defer cancel()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, nil, nil, storageFailure("begin transaction", err)
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	current, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, nil, nil, storageFailure("load order", err)
	}

	if err = h.guard.Check(cmd.Actor().Role(), current.Status(), cmd.NewStatus()); err != nil {
		return nil, nil, nil, err
	}

	at := h.clock()
	if last := current.StatusChangedAt(); !at.After(last) {
		at = last.Add(time.Microsecond)
	}
	next, err := current.Transition(cmd.NewStatus(), cmd.Extra(), at)
	if err != nil {
		return nil, nil, nil, err
	}

	unlock, err := h.locks.acquire(ctx, current.ID())
	if err != nil {
		return nil, nil, nil, storageFailure("lock order", err)
	}
	defer func() {
		if err != nil {
			unlock()
		}
	}()

	if err = uow.OrderRepository().UpdateIfStatus(ctx, next, current.Status()); err != nil {
		return nil, nil, nil, storageFailure("update order", err)
	}

	act, err := action.NewAction(h.newID(), current.ID(), cmd.Actor(),
		current.Status(), cmd.NewStatus(), cmd.Reason(), cmd.Extra(), at)
	if err != nil {
		return nil, nil, nil, err
	}

	if err = uow.ActionLog().Append(ctx, act); err != nil {
		return nil, nil, nil, storageFailure("append action", err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, nil, nil, storageFailure("commit transaction", err)
	}

	return next, act, unlock, nil
}

// notify queues one notification per notify role of the new status.
func (h *ChangeOrderStatusCommandHandler) notify(ctx context.Context, o *order.Order, act *action.Action, actorName string) {
	change := services.StatusChange{
		Order:     o,
		OldStatus: act.OldStatus(),
		NewStatus: act.NewStatus(),
		ActorName: actorName,
		Reason:    act.Reason(),
	}

	roles := h.registry.NotifyRoles(act.NewStatus())
	batch := notifications.Batch{
		OrderID:       o.ID(),
		Notifications: make([]*notification.Notification, 0, len(roles)),
	}
	for _, r := range roles {
		n, err := h.composer.Compose(change, r)
		if err != nil {
			h.logger.ErrorContext(ctx, "compose notification", "orderId", o.ID().String(), "role", string(r), "error", err)
			continue
		}
		batch.Notifications = append(batch.Notifications, n)
	}

	if err := h.queue.Enqueue(ctx, batch); err != nil {
		h.logger.ErrorContext(ctx, "queue notifications", "orderId", o.ID().String(), "error", err)
	}
}

// storageFailure keeps typed repository errors and wraps anything else.
func storageFailure(operation string, err error) error {
	if errors.Is(err, errs.ErrObjectNotFound) ||
		errors.Is(err, errs.ErrConflict) ||
		errors.Is(err, errs.ErrStorage) {
		return err
	}
	return errs.NewStorageErrorWithCause(operation, err)
}

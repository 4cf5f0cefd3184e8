// Package action models the audit trail of the order workflow: one Action is
// recorded for every successful status change and never updated afterwards.
package action

import (
	"errors"
	"maps"
	"strings"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/role"
	"orderflow/internal/pkg/errs"
)

var ErrActionIsNotConstructed = errors.New("Action must be created via NewAction constructor")

// Action is an immutable audit record of one status transition.
type Action struct {
	id         kernel.UUID
	orderID    kernel.UUID
	actorID    kernel.UUID
	actorRole  role.Role
	oldStatus  order.Status
	newStatus  order.Status
	reason     string
	occurredAt time.Time
	extra      order.Extra

	isConstructed bool
}

// Snapshot is the exported form used by persistence and transport adapters.
type Snapshot struct {
	ID         kernel.UUID
	OrderID    kernel.UUID
	ActorID    kernel.UUID
	ActorRole  role.Role
	OldStatus  order.Status
	NewStatus  order.Status
	Reason     string
	OccurredAt time.Time
	Extra      order.Extra
}

// NewAction records actor moving orderID from oldStatus to newStatus at occurredAt.
func NewAction(
	id, orderID kernel.UUID,
	actor Actor,
	oldStatus, newStatus order.Status,
	reason string,
	extra order.Extra,
	occurredAt time.Time,
) (*Action, error) {
	return RestoreAction(Snapshot{
		ID:         id,
		OrderID:    orderID,
		ActorID:    actor.ID(),
		ActorRole:  actor.Role(),
		OldStatus:  oldStatus,
		NewStatus:  newStatus,
		Reason:     reason,
		OccurredAt: occurredAt,
		Extra:      extra,
	})
}

// RestoreAction rebuilds an action from storage.
func RestoreAction(s Snapshot) (*Action, error) {
	a := &Action{
		reason:        strings.TrimSpace(s.Reason),
		extra:         maps.Clone(s.Extra),
		isConstructed: true,
	}

	if err := errors.Join(
		a.setID(s.ID),
		a.setOrderID(s.OrderID),
		a.setActor(s.ActorID, s.ActorRole),
		a.setStatuses(s.OldStatus, s.NewStatus),
		a.setOccurredAt(s.OccurredAt),
	); err != nil {
		return nil, err
	}

	return a, nil
}

func (a *Action) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrActionIsNotConstructed
	}
	return nil
}

func (a *Action) ID() kernel.UUID {
	return a.id
}

func (a *Action) OrderID() kernel.UUID {
	return a.orderID
}

func (a *Action) ActorID() kernel.UUID {
	return a.actorID
}

func (a *Action) ActorRole() role.Role {
	return a.actorRole
}

func (a *Action) OldStatus() order.Status {
	return a.oldStatus
}

func (a *Action) NewStatus() order.Status {
	return a.newStatus
}

func (a *Action) Reason() string {
	return a.reason
}

func (a *Action) OccurredAt() time.Time {
	return a.occurredAt
}

// Extra returns a copy of the request payload stored with the action.
func (a *Action) Extra() order.Extra {
	return maps.Clone(a.extra)
}

func (a *Action) Snapshot() Snapshot {
	return Snapshot{
		ID:         a.id,
		OrderID:    a.orderID,
		ActorID:    a.actorID,
		ActorRole:  a.actorRole,
		OldStatus:  a.oldStatus,
		NewStatus:  a.newStatus,
		Reason:     a.reason,
		OccurredAt: a.occurredAt,
		Extra:      maps.Clone(a.extra),
	}
}

func (a *Action) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Action) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	a.orderID = orderID
	return nil
}

func (a *Action) setActor(actorID kernel.UUID, actorRole role.Role) error {
	if err := errors.Join(actorID.Validate(), actorRole.Validate()); err != nil {
		return err
	}
	a.actorID = actorID
	a.actorRole = actorRole
	return nil
}

func (a *Action) setStatuses(oldStatus, newStatus order.Status) error {
	if err := errors.Join(oldStatus.Validate(), newStatus.Validate()); err != nil {
		return err
	}
	a.oldStatus = oldStatus
	a.newStatus = newStatus
	return nil
}

func (a *Action) setOccurredAt(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("occurredAt")
	}
	a.occurredAt = at
	return nil
}

package commands

import (
	"errors"
	"maps"
	"strings"

	"orderflow/internal/core/domain/model/action"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/guard"
)

var ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
	"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
)

// ChangeOrderStatusCommand asks the workflow engine to move an order to a new
// status on behalf of an actor.
//
// Example:
//
//	actor, _ := action.NewActor(userID, role.Counter, "Marc")
//	cmd, err := NewChangeOrderStatusCommand(orderID, order.Shipped, actor, "handed to carrier",
//	    order.Extra{order.ExtraTrackingNumber: "TRK123"})
//	if err != nil {
//	    return fmt.Errorf("invalid status change: %w", err)
//	}
//	result, err := handler.Handle(ctx, cmd)
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	newStatus order.Status
	actor     action.Actor
	reason    string
	extra     order.Extra

	guard guard.ConstructorGuard
}

// NewChangeOrderStatusCommand validates the order id, the target status and
// the actor. Reason and extra are optional.
func NewChangeOrderStatusCommand(
	orderID kernel.UUID,
	newStatus order.Status,
	actor action.Actor,
	reason string,
	extra order.Extra,
) (ChangeOrderStatusCommand, error) {
	cmd := ChangeOrderStatusCommand{
		reason: strings.TrimSpace(reason),
		extra:  maps.Clone(extra),
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setNewStatus(newStatus),
		cmd.setActor(actor),
	); err != nil {
		return ChangeOrderStatusCommand{}, err
	}

	return cmd, nil
}

func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

func (c ChangeOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ChangeOrderStatusCommand) NewStatus() order.Status {
	return c.newStatus
}

func (c ChangeOrderStatusCommand) Actor() action.Actor {
	return c.actor
}

func (c ChangeOrderStatusCommand) Reason() string {
	return c.reason
}

// Extra returns a copy of the free-form payload.
func (c ChangeOrderStatusCommand) Extra() order.Extra {
	return maps.Clone(c.extra)
}

func (c *ChangeOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *ChangeOrderStatusCommand) setNewStatus(status order.Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	c.newStatus = status
	return nil
}

func (c *ChangeOrderStatusCommand) setActor(actor action.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

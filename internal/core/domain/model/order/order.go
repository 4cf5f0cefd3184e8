package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order was not created through
// NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

// Order is the aggregate root of the workflow. Fields are private so that the
// status and its derived timestamps can only move through Transition.
type Order struct {
	id             kernel.UUID
	number         string
	status         Status
	clientID       kernel.UUID
	total          int64
	trackingNumber string
	createdAt      time.Time
	changedAt      time.Time
	shippedAt      *time.Time
	deliveredAt    *time.Time
	completedAt    *time.Time

	isConstructed bool
}

// Snapshot is the flat, exported view of an order used to restore it from
// persistence and to map it to transport models. A zero StatusChangedAt
// restores as CreatedAt.
type Snapshot struct {
	ID              kernel.UUID
	Number          string
	Status          Status
	ClientID        kernel.UUID
	Total           int64
	TrackingNumber  string
	CreatedAt       time.Time
	StatusChangedAt time.Time
	ShippedAt       *time.Time
	DeliveredAt     *time.Time
	CompletedAt     *time.Time
}

// NewOrder creates a pending order. total is expressed in minor currency units.
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), "ORD-2026-000123", clientID, 125000, clock())
//	if err != nil {
//	    return err
//	}
func NewOrder(id kernel.UUID, number string, clientID kernel.UUID, total int64, createdAt time.Time) (*Order, error) {
	return RestoreOrder(Snapshot{
		ID:        id,
		Number:    number,
		Status:    Pending,
		ClientID:  clientID,
		Total:     total,
		CreatedAt: createdAt,
	})
}

// RestoreOrder rebuilds an order from persisted state, validating every field.
func RestoreOrder(s Snapshot) (*Order, error) {
	changedAt := s.StatusChangedAt
	if changedAt.IsZero() {
		changedAt = s.CreatedAt
	}

	o := &Order{
		trackingNumber: strings.TrimSpace(s.TrackingNumber),
		createdAt:      s.CreatedAt,
		changedAt:      changedAt,
		shippedAt:      copyTime(s.ShippedAt),
		deliveredAt:    copyTime(s.DeliveredAt),
		completedAt:    copyTime(s.CompletedAt),
		isConstructed:  true,
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setNumber(s.Number),
		o.setStatus(s.Status),
		o.setClientID(s.ClientID),
		o.setTotal(s.Total),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the order was built by NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) Number() string {
	return o.number
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) ClientID() kernel.UUID {
	return o.clientID
}

// Total returns the order amount in minor currency units.
func (o *Order) Total() int64 {
	return o.total
}

func (o *Order) TrackingNumber() string {
	return o.trackingNumber
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// StatusChangedAt is when the order entered its current status.
func (o *Order) StatusChangedAt() time.Time {
	return o.changedAt
}

func (o *Order) ShippedAt() *time.Time {
	return copyTime(o.shippedAt)
}

func (o *Order) DeliveredAt() *time.Time {
	return copyTime(o.deliveredAt)
}

func (o *Order) CompletedAt() *time.Time {
	return copyTime(o.completedAt)
}

// Snapshot exports the current state.
func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		ID:              o.id,
		Number:          o.number,
		Status:          o.status,
		ClientID:        o.clientID,
		Total:           o.total,
		TrackingNumber:  o.trackingNumber,
		CreatedAt:       o.createdAt,
		StatusChangedAt: o.changedAt,
		ShippedAt:       copyTime(o.shippedAt),
		DeliveredAt:     copyTime(o.deliveredAt),
		CompletedAt:     copyTime(o.completedAt),
	}
}

// Transition returns a copy of the order moved to status `to` with the
// status effect applied. It does not check the transition graph or the actor's
// role: callers run the workflow guard first. The receiver is never modified.
func (o *Order) Transition(to Status, extra Extra, at time.Time) (*Order, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := to.Validate(); err != nil {
		return nil, err
	}

	next := EffectFor(to)(*o, extra, at)
	next.status = to
	next.changedAt = at
	return &next, nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number string) error {
	number = strings.TrimSpace(number)
	if number == "" {
		return errs.NewValueIsRequiredError("order number")
	}
	o.number = number
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setClientID(clientID kernel.UUID) error {
	if err := clientID.Validate(); err != nil {
		return err
	}
	o.clientID = clientID
	return nil
}

func (o *Order) setTotal(total int64) error {
	if total < 0 {
		return errs.NewValueIsInvalidErrorWithCause("total is invalid", fmt.Errorf("%d is negative", total))
	}
	o.total = total
	return nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

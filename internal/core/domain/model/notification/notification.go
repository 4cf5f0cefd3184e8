// Package notification models the messages produced by order status changes
// and their per-recipient inbox entries.
package notification

import (
	"errors"
	"strings"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
)

// TypeOrderStatusChanged is the only notification type the workflow emits.
const TypeOrderStatusChanged = "order_status_changed"

// CategoryOrder groups workflow notifications in client inboxes.
const CategoryOrder = "order"

var ErrNotificationIsNotConstructed = errors.New("Notification must be created via NewNotification constructor")

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) Validate() error {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return nil
	default:
		return errs.NewValueIsInvalidError("priority")
	}
}

// Payload is the structured part of a notification clients use to link back
// to the order.
type Payload struct {
	OrderID     kernel.UUID  `json:"orderId"`
	OrderNumber string       `json:"orderNumber"`
	OldStatus   order.Status `json:"oldStatus"`
	NewStatus   order.Status `json:"newStatus"`
	Reason      string       `json:"reason"`
	ActorName   string       `json:"actorName"`
}

// Notification is immutable once built. Its id is shared by the live event and
// every stored inbox row so clients can drop duplicates.
type Notification struct {
	id        kernel.UUID
	kind      string
	title     string
	message   string
	createdAt time.Time
	priority  Priority
	category  string
	target    Target
	payload   Payload

	isConstructed bool
}

// Snapshot is the exported form of a Notification.
type Snapshot struct {
	ID        kernel.UUID
	Type      string
	Title     string
	Message   string
	CreatedAt time.Time
	Priority  Priority
	Category  string
	Target    Target
	Payload   Payload
}

func NewNotification(s Snapshot) (*Notification, error) {
	n := &Notification{
		message:       s.Message,
		createdAt:     s.CreatedAt,
		category:      s.Category,
		payload:       s.Payload,
		isConstructed: true,
	}

	if err := errors.Join(
		n.setID(s.ID),
		n.setType(s.Type),
		n.setTitle(s.Title),
		n.setPriority(s.Priority),
		n.setTarget(s.Target),
	); err != nil {
		return nil, err
	}

	return n, nil
}

func (n *Notification) Validate() error {
	if n == nil || !n.isConstructed {
		return ErrNotificationIsNotConstructed
	}
	return nil
}

func (n *Notification) ID() kernel.UUID {
	return n.id
}

func (n *Notification) Type() string {
	return n.kind
}

func (n *Notification) Title() string {
	return n.title
}

func (n *Notification) Message() string {
	return n.message
}

func (n *Notification) CreatedAt() time.Time {
	return n.createdAt
}

func (n *Notification) Priority() Priority {
	return n.priority
}

func (n *Notification) Category() string {
	return n.category
}

func (n *Notification) Target() Target {
	return n.target
}

func (n *Notification) Payload() Payload {
	return n.payload
}

func (n *Notification) Snapshot() Snapshot {
	return Snapshot{
		ID:        n.id,
		Type:      n.kind,
		Title:     n.title,
		Message:   n.message,
		CreatedAt: n.createdAt,
		Priority:  n.priority,
		Category:  n.category,
		Target:    n.target,
		Payload:   n.payload,
	}
}

func (n *Notification) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	n.id = id
	return nil
}

func (n *Notification) setType(kind string) error {
	if strings.TrimSpace(kind) == "" {
		return errs.NewValueIsRequiredError("type")
	}
	n.kind = kind
	return nil
}

func (n *Notification) setTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return errs.NewValueIsRequiredError("title")
	}
	n.title = title
	return nil
}

func (n *Notification) setPriority(p Priority) error {
	if err := p.Validate(); err != nil {
		return err
	}
	n.priority = p
	return nil
}

func (n *Notification) setTarget(t Target) error {
	if err := t.Validate(); err != nil {
		return err
	}
	n.target = t
	return nil
}

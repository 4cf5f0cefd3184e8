// Package events is the in-process notification mechanism of the workflow
// engine. Every engine owns its Bus; there is no package-level listener list.
package events

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"orderflow/internal/core/domain/model/action"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/role"
)

// NameOrderStatusChanged names the event in logs and on the message bus.
const NameOrderStatusChanged = "order_status_changed"

// OrderStatusChanged is emitted after a transition has been committed.
type OrderStatusChanged struct {
	ActionID    kernel.UUID  `json:"actionId"`
	OrderID     kernel.UUID  `json:"orderId"`
	OrderNumber string       `json:"orderNumber"`
	OldStatus   order.Status `json:"oldStatus"`
	NewStatus   order.Status `json:"newStatus"`
	ActorID     kernel.UUID  `json:"actorId"`
	ActorRole   role.Role    `json:"actorRole"`
	ActorName   string       `json:"actorName"`
	Reason      string       `json:"reason"`
	OccurredAt  time.Time    `json:"occurredAt"`
}

// NewOrderStatusChanged builds the event from the stored order and its action.
func NewOrderStatusChanged(o *order.Order, a *action.Action, actorName string) OrderStatusChanged {
	return OrderStatusChanged{
		ActionID:    a.ID(),
		OrderID:     o.ID(),
		OrderNumber: o.Number(),
		OldStatus:   a.OldStatus(),
		NewStatus:   a.NewStatus(),
		ActorID:     a.ActorID(),
		ActorRole:   a.ActorRole(),
		ActorName:   actorName,
		Reason:      a.Reason(),
		OccurredAt:  a.OccurredAt(),
	}
}

// Listener reacts to a committed status change. A returned error is logged.
type Listener func(ctx context.Context, event OrderStatusChanged) error

// Bus calls listeners synchronously, in registration order. A failing or
// panicking listener is logged and does not stop the others.
type Bus struct {
	mu        sync.RWMutex
	listeners map[uint64]Listener
	order     []uint64
	nextID    uint64
	logger    *slog.Logger
}

func NewBus(logger *slog.Logger) *Bus {
	return &Bus{
		listeners: make(map[uint64]Listener),
		logger:    logger.With("component", "EventBus"),
	}
}

// Add registers listener and returns the function that removes it.
// Calling the returned function more than once is a no-op.
func (b *Bus) Add(listener Listener) (remove func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.listeners[id] = listener
	b.order = append(b.order, id)

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id) })
	}
}

func (b *Bus) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.listeners, id)
	for i, registered := range b.order {
		if registered == id {
			b.order = append(b.order[:i:i], b.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of registered listeners.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.order)
}

// Emit calls every listener registered at the time of the call and returns
// how many of them failed.
func (b *Bus) Emit(ctx context.Context, event OrderStatusChanged) int {
	b.mu.RLock()
	snapshot := make([]Listener, 0, len(b.order))
	for _, id := range b.order {
		snapshot = append(snapshot, b.listeners[id])
	}
	b.mu.RUnlock()

	failed := 0
	for _, listener := range snapshot {
		if err := b.call(ctx, listener, event); err != nil {
			failed++
			b.logger.ErrorContext(ctx, "listener failed",
				"event", NameOrderStatusChanged,
				"orderId", event.OrderID.String(),
				"error", err)
		}
	}
	return failed
}

func (b *Bus) call(ctx context.Context, listener Listener, event OrderStatusChanged) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("listener panicked: %v", r)
		}
	}()
	return listener(ctx, event)
}

package order

import (
	"strings"
	"time"
)

// Extra carries the free-form payload of a status change request.
type Extra map[string]any

// ExtraTrackingNumber is the Extra key holding the carrier tracking number.
const ExtraTrackingNumber = "trackingNumber"

// String returns the trimmed string value for key, or "" when it is absent or
// not a string.
func (e Extra) String(key string) string {
	v, ok := e[key].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(v)
}

// Effect derives the fields that change when an order arrives in a status.
// Effects receive and return values; they never touch the caller's order.
type Effect func(o Order, extra Extra, at time.Time) Order

var effects = map[Status]Effect{
	Shipped:   markShipped,
	Delivered: markDelivered,
	Completed: markCompleted,
}

// EffectFor returns the effect registered for status, or the identity effect.
func EffectFor(status Status) Effect {
	if effect, ok := effects[status]; ok {
		return effect
	}
	return func(o Order, _ Extra, _ time.Time) Order { return o }
}

// markShipped records the tracking number and shipping time, only when a
// tracking number is supplied.
func markShipped(o Order, extra Extra, at time.Time) Order {
	tracking := extra.String(ExtraTrackingNumber)
	if tracking == "" {
		return o
	}
	o.trackingNumber = tracking
	o.shippedAt = &at
	return o
}

func markDelivered(o Order, _ Extra, at time.Time) Order {
	o.deliveredAt = &at
	return o
}

func markCompleted(o Order, _ Extra, at time.Time) Order {
	o.completedAt = &at
	return o
}

package order

import (
	"fmt"
	"strings"

	"orderflow/internal/pkg/errs"
)

// Status is a named stage in an order's lifecycle.
//
//	pending ──> confirmed ──> preparing ──> ready ──> shipped ──> delivered ──> completed
//	   │  ▲         │             │
//	   │  └─ rejected             │
//	   └──────────┴───────────────┴──> cancelled
//
// The edges and role permissions live in the workflow registry configuration;
// this type only knows which keys exist.
type Status string

const (
	Pending   Status = "pending"
	Confirmed Status = "confirmed"
	Rejected  Status = "rejected"
	Preparing Status = "preparing"
	Ready     Status = "ready"
	Shipped   Status = "shipped"
	Delivered Status = "delivered"
	Completed Status = "completed"
	Cancelled Status = "cancelled"
)

// KnownStatuses lists every status key in lifecycle order.
func KnownStatuses() []Status {
	return []Status{Pending, Confirmed, Rejected, Preparing, Ready, Shipped, Delivered, Completed, Cancelled}
}

// ParseStatus normalizes case and surrounding whitespace and validates the key.
func ParseStatus(s string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(s)))
	if status == "" {
		return "", errs.NewValueIsRequiredError("status")
	}
	if err := status.Validate(); err != nil {
		return "", err
	}
	return status, nil
}

// Validate checks the status is one of the known keys.
func (s Status) Validate() error {
	for _, known := range KnownStatuses() {
		if s == known {
			return nil
		}
	}
	return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", string(s)))
}

func (s Status) String() string {
	return string(s)
}

package workflow

import (
	"fmt"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/role"
	"orderflow/internal/pkg/errs"
)

// Guard decides whether an actor may move an order between two statuses.
type Guard struct {
	registry *Registry
}

func NewGuard(registry *Registry) Guard {
	return Guard{registry: registry}
}

// CanTransition reports whether to is a next status of current and actor is
// allowed into it. Admin skips the role check but never the graph.
func (g Guard) CanTransition(actor role.Role, current, to order.Status) bool {
	return g.Check(actor, current, to) == nil
}

// Check is CanTransition with the reason for a refusal.
func (g Guard) Check(actor role.Role, current, to order.Status) error {
	operation := fmt.Sprintf("move order from %s to %s", current, to)

	from, ok := g.registry.StatusInfo(current)
	if !ok {
		return errs.NewPermissionDeniedErrorWithCause(string(actor), operation,
			fmt.Errorf("unknown current status %q", current))
	}
	if !from.leadsTo(to) {
		return errs.NewPermissionDeniedErrorWithCause(string(actor), operation,
			fmt.Errorf("%s is not a next status of %s", to, current))
	}
	if actor == role.Admin {
		return nil
	}
	target, _ := g.registry.StatusInfo(to)
	if !target.allows(actor) {
		return errs.NewPermissionDeniedErrorWithCause(string(actor), operation,
			fmt.Errorf("role %s may not set status %s", actor, to))
	}
	return nil
}

package workflow

import (
	"slices"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/role"
)

// StatusDefinition describes one status of the graph. Slice accessors return
// copies so a definition cannot be changed through them.
type StatusDefinition struct {
	key          order.Status
	label        string
	description  string
	nextStatuses []order.Status
	allowedRoles []role.Role
	notifyRoles  []role.Role
}

func (d StatusDefinition) Key() order.Status {
	return d.key
}

func (d StatusDefinition) Label() string {
	return d.label
}

func (d StatusDefinition) Description() string {
	return d.description
}

// NextStatuses lists the statuses reachable in one step.
func (d StatusDefinition) NextStatuses() []order.Status {
	return slices.Clone(d.nextStatuses)
}

// AllowedRoles lists the roles that may move an order into this status.
func (d StatusDefinition) AllowedRoles() []role.Role {
	return slices.Clone(d.allowedRoles)
}

// NotifyRoles lists the roles told when an order arrives in this status.
func (d StatusDefinition) NotifyRoles() []role.Role {
	return slices.Clone(d.notifyRoles)
}

// IsTerminal reports whether no transition leaves this status.
func (d StatusDefinition) IsTerminal() bool {
	return len(d.nextStatuses) == 0
}

func (d StatusDefinition) allows(r role.Role) bool {
	return slices.Contains(d.allowedRoles, r)
}

func (d StatusDefinition) leadsTo(s order.Status) bool {
	return slices.Contains(d.nextStatuses, s)
}

// Package queries contains read operations of the order workflow. Handlers
// read straight from storage or the status registry and never change state.
package queries

import (
	"time"

	"orderflow/internal/core/domain/model/action"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/role"
	"orderflow/internal/core/domain/model/workflow"
)

// StatusInfoResponse describes one status of the graph.
type StatusInfoResponse struct {
	Key          order.Status
	Label        string
	Description  string
	NextStatuses []order.Status
	AllowedRoles []role.Role
	NotifyRoles  []role.Role
	Terminal     bool
}

func statusInfoFrom(def workflow.StatusDefinition) StatusInfoResponse {
	return StatusInfoResponse{
		Key:          def.Key(),
		Label:        def.Label(),
		Description:  def.Description(),
		NextStatuses: def.NextStatuses(),
		AllowedRoles: def.AllowedRoles(),
		NotifyRoles:  def.NotifyRoles(),
		Terminal:     def.IsTerminal(),
	}
}

// ActionResponse is the read model of an audit entry.
type ActionResponse struct {
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

func actionsFrom(actions []*action.Action) []ActionResponse {
	result := make([]ActionResponse, 0, len(actions))
	for _, a := range actions {
		s := a.Snapshot()
		result = append(result, ActionResponse{
			ID:         s.ID,
			OrderID:    s.OrderID,
			ActorID:    s.ActorID,
			ActorRole:  s.ActorRole,
			OldStatus:  s.OldStatus,
			NewStatus:  s.NewStatus,
			Reason:     s.Reason,
			OccurredAt: s.OccurredAt,
			Extra:      s.Extra,
		})
	}
	return result
}

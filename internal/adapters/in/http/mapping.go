package http

import (
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/action"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/role"
	"orderflow/internal/generated/servers"
)

func orderFromDomain(o *order.Order) servers.Order {
	return servers.Order{
		Id:             o.ID().Bytes(),
		Number:         o.Number(),
		Status:         o.Status().String(),
		ClientId:       o.ClientID().Bytes(),
		Total:          o.Total(),
		TrackingNumber: optional(o.TrackingNumber()),
		CreatedAt:      o.CreatedAt(),
		ShippedAt:      o.ShippedAt(),
		DeliveredAt:    o.DeliveredAt(),
		CompletedAt:    o.CompletedAt(),
	}
}

func orderFromResponse(o queries.GetOrderQueryResponse) servers.Order {
	return servers.Order{
		Id:             o.ID.Bytes(),
		Number:         o.Number,
		Status:         o.Status.String(),
		ClientId:       o.ClientID.Bytes(),
		Total:          o.Total,
		TrackingNumber: optional(o.TrackingNumber),
		CreatedAt:      o.CreatedAt,
		ShippedAt:      o.ShippedAt,
		DeliveredAt:    o.DeliveredAt,
		CompletedAt:    o.CompletedAt,
	}
}

func actionFromDomain(a *action.Action) servers.Action {
	s := a.Snapshot()
	return servers.Action{
		Id:         s.ID.Bytes(),
		OrderId:    s.OrderID.Bytes(),
		ActorId:    s.ActorID.Bytes(),
		ActorRole:  s.ActorRole.String(),
		OldStatus:  s.OldStatus.String(),
		NewStatus:  s.NewStatus.String(),
		Reason:     s.Reason,
		OccurredAt: s.OccurredAt,
		Extra:      extraOf(s.Extra),
	}
}

func actionsFromResponse(actions []queries.ActionResponse) []servers.Action {
	response := make([]servers.Action, len(actions))
	for i, a := range actions {
		response[i] = servers.Action{
			Id:         a.ID.Bytes(),
			OrderId:    a.OrderID.Bytes(),
			ActorId:    a.ActorID.Bytes(),
			ActorRole:  a.ActorRole.String(),
			OldStatus:  a.OldStatus.String(),
			NewStatus:  a.NewStatus.String(),
			Reason:     a.Reason,
			OccurredAt: a.OccurredAt,
			Extra:      extraOf(a.Extra),
		}
	}
	return response
}

func statusInfoFromResponse(info queries.StatusInfoResponse) servers.StatusInfo {
	return servers.StatusInfo{
		Key:          info.Key.String(),
		Label:        info.Label,
		Description:  info.Description,
		NextStatuses: statusStrings(info.NextStatuses),
		AllowedRoles: roleStrings(info.AllowedRoles),
		NotifyRoles:  roleStrings(info.NotifyRoles),
		Terminal:     info.Terminal,
	}
}

func notificationFromResponse(r queries.NotificationResponse) servers.Notification {
	n := r.Notification
	return servers.Notification{
		Id:        n.ID.Bytes(),
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		CreatedAt: n.CreatedAt,
		Priority:  servers.NotificationPriority(n.Priority),
		Category:  n.Category,
		Target:    n.Target.String(),
		Payload: servers.NotificationPayload{
			OrderId:     n.Payload.OrderID.Bytes(),
			OrderNumber: n.Payload.OrderNumber,
			OldStatus:   n.Payload.OldStatus.String(),
			NewStatus:   n.Payload.NewStatus.String(),
			Reason:      n.Payload.Reason,
			ActorName:   n.Payload.ActorName,
		},
		ReadAt: r.ReadAt,
	}
}

func extraOf(extra order.Extra) *map[string]interface{} {
	if len(extra) == 0 {
		return nil
	}
	m := make(map[string]interface{}, len(extra))
	for k, v := range extra {
		m[k] = v
	}
	return &m
}

func statusStrings(statuses []order.Status) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = s.String()
	}
	return out
}

func roleStrings(roles []role.Role) []string {
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = r.String()
	}
	return out
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

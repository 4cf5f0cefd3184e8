// Package servers holds the HTTP API surface described by openapi.yaml: the
// request and response types, the ServerInterface and its echo wiring.
package servers

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Defines values for NotificationPriority.
const (
	High   NotificationPriority = "high"
	Low    NotificationPriority = "low"
	Medium NotificationPriority = "medium"
)

// Action defines model for Action.
type Action struct {
	ActorId    openapi_types.UUID      `json:"actorId"`
	ActorRole  string                  `json:"actorRole"`
	Extra      *map[string]interface{} `json:"extra,omitempty"`
	Id         openapi_types.UUID      `json:"id"`
	NewStatus  string                  `json:"newStatus"`
	OccurredAt time.Time               `json:"occurredAt"`
	OldStatus  string                  `json:"oldStatus"`
	OrderId    openapi_types.UUID      `json:"orderId"`
	Reason     string                  `json:"reason"`
}

// ChangeStatusRequest defines model for ChangeStatusRequest.
type ChangeStatusRequest struct {
	Extra          *map[string]interface{} `json:"extra,omitempty"`
	NewStatus      string                  `json:"newStatus"`
	Reason         *string                 `json:"reason,omitempty"`
	TrackingNumber *string                 `json:"trackingNumber,omitempty"`
}

// Error defines model for Error.
type Error struct {
	Code    int32  `json:"code"`
	Message string `json:"message"`
}

// NewOrder defines model for NewOrder.
type NewOrder struct {
	ClientId openapi_types.UUID `json:"clientId"`
	Number   string             `json:"number"`
	Total    int64              `json:"total"`
}

// NextStatuses defines model for NextStatuses.
type NextStatuses struct {
	Current StatusInfo   `json:"current"`
	Next    []StatusInfo `json:"next"`
}

// Notification defines model for Notification.
type Notification struct {
	Category  string               `json:"category"`
	CreatedAt time.Time            `json:"createdAt"`
	Id        openapi_types.UUID   `json:"id"`
	Message   string               `json:"message"`
	Payload   NotificationPayload  `json:"payload"`
	Priority  NotificationPriority `json:"priority"`
	ReadAt    *time.Time           `json:"readAt,omitempty"`
	Target    string               `json:"target"`
	Title     string               `json:"title"`
	Type      string               `json:"type"`
}

// NotificationPriority defines model for Notification.Priority.
type NotificationPriority string

// NotificationPayload defines model for NotificationPayload.
type NotificationPayload struct {
	ActorName   string             `json:"actorName"`
	NewStatus   string             `json:"newStatus"`
	OldStatus   string             `json:"oldStatus"`
	OrderId     openapi_types.UUID `json:"orderId"`
	OrderNumber string             `json:"orderNumber"`
	Reason      string             `json:"reason"`
}

// Order defines model for Order.
type Order struct {
	ClientId       openapi_types.UUID `json:"clientId"`
	CompletedAt    *time.Time         `json:"completedAt,omitempty"`
	CreatedAt      time.Time          `json:"createdAt"`
	DeliveredAt    *time.Time         `json:"deliveredAt,omitempty"`
	Id             openapi_types.UUID `json:"id"`
	Number         string             `json:"number"`
	ShippedAt      *time.Time         `json:"shippedAt,omitempty"`
	Status         string             `json:"status"`
	Total          int64              `json:"total"`
	TrackingNumber *string            `json:"trackingNumber,omitempty"`
}

// StatusInfo defines model for StatusInfo.
type StatusInfo struct {
	AllowedRoles []string `json:"allowedRoles"`
	Description  string   `json:"description"`
	Key          string   `json:"key"`
	Label        string   `json:"label"`
	NextStatuses []string `json:"nextStatuses"`
	NotifyRoles  []string `json:"notifyRoles"`
	Terminal     bool     `json:"terminal"`
}

// TransitionResult defines model for TransitionResult.
type TransitionResult struct {
	Action Action `json:"action"`
	Order  Order  `json:"order"`
}

// QueryActionsParams defines parameters for QueryActions.
type QueryActionsParams struct {
	ActorId   *openapi_types.UUID `form:"actorId,omitempty" json:"actorId,omitempty"`
	OrderId   *openapi_types.UUID `form:"orderId,omitempty" json:"orderId,omitempty"`
	NewStatus *[]string           `form:"newStatus,omitempty" json:"newStatus,omitempty"`
	From      *time.Time          `form:"from,omitempty" json:"from,omitempty"`
	To        *time.Time          `form:"to,omitempty" json:"to,omitempty"`
	Limit     *int                `form:"limit,omitempty" json:"limit,omitempty"`
}

// GetNotificationsParams defines parameters for GetNotifications.
type GetNotificationsParams struct {
	Since      *time.Time `form:"since,omitempty" json:"since,omitempty"`
	UnreadOnly *bool      `form:"unreadOnly,omitempty" json:"unreadOnly,omitempty"`
	Limit      *int       `form:"limit,omitempty" json:"limit,omitempty"`
}

// GetOrdersParams defines parameters for GetOrders.
type GetOrdersParams struct {
	Status *[]string `form:"status,omitempty" json:"status,omitempty"`
	Limit  *int      `form:"limit,omitempty" json:"limit,omitempty"`
}

// CreateOrderJSONRequestBody defines body for CreateOrder for application/json ContentType.
type CreateOrderJSONRequestBody = NewOrder

// ChangeOrderStatusJSONRequestBody defines body for ChangeOrderStatus for application/json ContentType.
type ChangeOrderStatusJSONRequestBody = ChangeStatusRequest

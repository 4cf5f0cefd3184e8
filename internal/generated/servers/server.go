package servers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Query the audit log
	// (GET /api/v1/actions)
	QueryActions(ctx echo.Context, params QueryActionsParams) error
	// Inbox of the caller
	// (GET /api/v1/notifications)
	GetNotifications(ctx echo.Context, params GetNotificationsParams) error
	// Live notifications as server-sent events
	// (GET /api/v1/notifications/stream)
	StreamNotifications(ctx echo.Context) error
	// Mark an inbox entry of the caller as read
	// (POST /api/v1/notifications/{notificationId}/read)
	MarkNotificationRead(ctx echo.Context, notificationId openapi_types.UUID) error
	// List orders by status
	// (GET /api/v1/orders)
	GetOrders(ctx echo.Context, params GetOrdersParams) error
	// Create a pending order
	// (POST /api/v1/orders)
	CreateOrder(ctx echo.Context) error
	// Get one order
	// (GET /api/v1/orders/{orderId})
	GetOrder(ctx echo.Context, orderId openapi_types.UUID) error
	// Audit history of an order, newest first
	// (GET /api/v1/orders/{orderId}/actions)
	GetOrderActions(ctx echo.Context, orderId openapi_types.UUID) error
	// Statuses the caller's role may move the order to
	// (GET /api/v1/orders/{orderId}/next-statuses)
	GetNextStatuses(ctx echo.Context, orderId openapi_types.UUID) error
	// Move an order to a new status
	// (PATCH /api/v1/orders/{orderId}/status)
	ChangeOrderStatus(ctx echo.Context, orderId openapi_types.UUID) error
	// The status graph
	// (GET /api/v1/statuses)
	GetStatuses(ctx echo.Context) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// QueryActions converts echo context to params.
func (w *ServerInterfaceWrapper) QueryActions(ctx echo.Context) error {
	var err error

	var params QueryActionsParams

	err = runtime.BindQueryParameter("form", true, false, "actorId", ctx.QueryParams(), &params.ActorId)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter actorId: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "orderId", ctx.QueryParams(), &params.OrderId)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter orderId: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "newStatus", ctx.QueryParams(), &params.NewStatus)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter newStatus: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "from", ctx.QueryParams(), &params.From)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter from: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "to", ctx.QueryParams(), &params.To)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter to: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &params.Limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter limit: %s", err))
	}

	err = w.Handler.QueryActions(ctx, params)
	return err
}

// GetNotifications converts echo context to params.
func (w *ServerInterfaceWrapper) GetNotifications(ctx echo.Context) error {
	var err error

	var params GetNotificationsParams

	err = runtime.BindQueryParameter("form", true, false, "since", ctx.QueryParams(), &params.Since)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter since: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "unreadOnly", ctx.QueryParams(), &params.UnreadOnly)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter unreadOnly: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &params.Limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter limit: %s", err))
	}

	err = w.Handler.GetNotifications(ctx, params)
	return err
}

// StreamNotifications converts echo context to params.
func (w *ServerInterfaceWrapper) StreamNotifications(ctx echo.Context) error {
	return w.Handler.StreamNotifications(ctx)
}

// MarkNotificationRead converts echo context to params.
func (w *ServerInterfaceWrapper) MarkNotificationRead(ctx echo.Context) error {
	var err error

	var notificationId openapi_types.UUID

	err = runtime.BindStyledParameterWithOptions("simple", "notificationId", ctx.Param("notificationId"), &notificationId,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter notificationId: %s", err))
	}

	err = w.Handler.MarkNotificationRead(ctx, notificationId)
	return err
}

// GetOrders converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrders(ctx echo.Context) error {
	var err error

	var params GetOrdersParams

	err = runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &params.Status)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter status: %s", err))
	}

	err = runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &params.Limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter limit: %s", err))
	}

	err = w.Handler.GetOrders(ctx, params)
	return err
}

// CreateOrder converts echo context to params.
func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

// GetOrder converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetOrder(ctx, orderId)
}

// GetOrderActions converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrderActions(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetOrderActions(ctx, orderId)
}

// GetNextStatuses converts echo context to params.
func (w *ServerInterfaceWrapper) GetNextStatuses(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetNextStatuses(ctx, orderId)
}

// ChangeOrderStatus converts echo context to params.
func (w *ServerInterfaceWrapper) ChangeOrderStatus(ctx echo.Context) error {
	orderId, err := bindOrderID(ctx)
	if err != nil {
		return err
	}
	return w.Handler.ChangeOrderStatus(ctx, orderId)
}

// GetStatuses converts echo context to params.
func (w *ServerInterfaceWrapper) GetStatuses(ctx echo.Context) error {
	return w.Handler.GetStatuses(ctx)
}

func bindOrderID(ctx echo.Context) (openapi_types.UUID, error) {
	var orderId openapi_types.UUID

	err := runtime.BindStyledParameterWithOptions("simple", "orderId", ctx.Param("orderId"), &orderId,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return orderId, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter orderId: %s", err))
	}
	return orderId, nil
}

// EchoRouter is the subset of echo routing used by RegisterHandlers. Both
// *echo.Echo and *echo.Group satisfy it.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers the routes under baseURL.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.GET(baseURL+"/api/v1/actions", wrapper.QueryActions)
	router.GET(baseURL+"/api/v1/notifications", wrapper.GetNotifications)
	router.GET(baseURL+"/api/v1/notifications/stream", wrapper.StreamNotifications)
	router.POST(baseURL+"/api/v1/notifications/:notificationId/read", wrapper.MarkNotificationRead)
	router.GET(baseURL+"/api/v1/orders", wrapper.GetOrders)
	router.POST(baseURL+"/api/v1/orders", wrapper.CreateOrder)
	router.GET(baseURL+"/api/v1/orders/:orderId", wrapper.GetOrder)
	router.GET(baseURL+"/api/v1/orders/:orderId/actions", wrapper.GetOrderActions)
	router.GET(baseURL+"/api/v1/orders/:orderId/next-statuses", wrapper.GetNextStatuses)
	router.PATCH(baseURL+"/api/v1/orders/:orderId/status", wrapper.ChangeOrderStatus)
	router.GET(baseURL+"/api/v1/statuses", wrapper.GetStatuses)
}

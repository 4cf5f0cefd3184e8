// Package http is the caller surface of the workflow service. It binds the
// generated servers.ServerInterface to the command and query handlers.
package http

import (
	"context"
	"log/slog"
	"net/http"

	"orderflow/internal/adapters/out/realtime"
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/action"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/notification"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/generated/servers"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Use case handlers the server delegates to.
type (
	ChangeOrderStatusHandler interface {
		Handle(ctx context.Context, cmd commands.ChangeOrderStatusCommand) (commands.ChangeOrderStatusResult, error)
	}
	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
	}
	MarkNotificationReadHandler interface {
		Handle(ctx context.Context, cmd commands.MarkNotificationReadCommand) error
	}
	GetOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (queries.GetOrderQueryResponse, error)
	}
	ListOrdersHandler interface {
		Handle(ctx context.Context, query queries.ListOrdersQuery) ([]queries.GetOrderQueryResponse, error)
	}
	GetNextStatusesHandler interface {
		Handle(ctx context.Context, query queries.GetNextStatusesQuery) (queries.GetNextStatusesQueryResponse, error)
	}
	GetOrderHistoryHandler interface {
		Handle(ctx context.Context, query queries.GetOrderHistoryQuery) ([]queries.ActionResponse, error)
	}
	QueryActionsHandler interface {
		Handle(ctx context.Context, query queries.QueryActionsQuery) ([]queries.ActionResponse, error)
	}
	ListStatusesHandler interface {
		Handle(query queries.ListStatusesQuery) ([]queries.StatusInfoResponse, error)
	}
	ListNotificationsHandler interface {
		Handle(ctx context.Context, query queries.ListNotificationsQuery) ([]queries.NotificationResponse, error)
	}
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	ChangeOrderStatus    ChangeOrderStatusHandler
	CreateOrder          CreateOrderHandler
	MarkNotificationRead MarkNotificationReadHandler
	GetOrder             GetOrderHandler
	ListOrders           ListOrdersHandler
	GetNextStatuses      GetNextStatusesHandler
	GetOrderHistory      GetOrderHistoryHandler
	QueryActions         QueryActionsHandler
	ListStatuses         ListStatusesHandler
	ListNotifications    ListNotificationsHandler
}

// Server implements servers.ServerInterface.
type Server struct {
	handlers Handlers
	hub      *realtime.Hub
	logger   *slog.Logger
}

var _ servers.ServerInterface = (*Server)(nil)

func NewServer(handlers Handlers, hub *realtime.Hub, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		hub:      hub,
		logger:   logger.With("component", "HTTPServer"),
	}
}

// ChangeOrderStatus handles PATCH /api/v1/orders/{orderId}/status.
func (s *Server) ChangeOrderStatus(ctx echo.Context, orderId openapi_types.UUID) error {
	var body servers.ChangeOrderStatusJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	actor, err := actorFrom(ctx.Request())
	if err != nil {
		return s.fail(ctx, err)
	}
	id, err := idFrom("orderId", orderId)
	if err != nil {
		return s.fail(ctx, err)
	}
	status, err := order.ParseStatus(body.NewStatus)
	if err != nil {
		return s.fail(ctx, err)
	}

	extra := order.Extra{}
	if body.Extra != nil {
		for k, v := range *body.Extra {
			extra[k] = v
		}
	}
	if body.TrackingNumber != nil {
		extra[order.ExtraTrackingNumber] = *body.TrackingNumber
	}

	cmd, err := commands.NewChangeOrderStatusCommand(id, status, actor, deref(body.Reason), extra)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.handlers.ChangeOrderStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, servers.TransitionResult{
		Order:  orderFromDomain(result.Order),
		Action: actionFromDomain(result.Action),
	})
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body servers.CreateOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	clientID, err := idFrom("clientId", body.ClientId)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), body.Number, clientID, body.Total)
	if err != nil {
		return s.fail(ctx, err)
	}

	created, err := s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderFromDomain(created))
}

// GetOrders handles GET /api/v1/orders.
func (s *Server) GetOrders(ctx echo.Context, params servers.GetOrdersParams) error {
	var statuses []order.Status
	if params.Status != nil {
		for _, raw := range *params.Status {
			status, err := order.ParseStatus(raw)
			if err != nil {
				return s.fail(ctx, err)
			}
			statuses = append(statuses, status)
		}
	}

	query, err := queries.NewListOrdersQuery(statuses, deref(params.Limit))
	if err != nil {
		return s.fail(ctx, err)
	}

	orders, err := s.handlers.ListOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]servers.Order, len(orders))
	for i, o := range orders {
		response[i] = orderFromResponse(o)
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	id, err := idFrom("orderId", orderId)
	if err != nil {
		return s.fail(ctx, err)
	}
	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	found, err := s.handlers.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, orderFromResponse(found))
}

// GetNextStatuses handles GET /api/v1/orders/{orderId}/next-statuses for the
// caller's role.
func (s *Server) GetNextStatuses(ctx echo.Context, orderId openapi_types.UUID) error {
	actor, err := actorFrom(ctx.Request())
	if err != nil {
		return s.fail(ctx, err)
	}
	id, err := idFrom("orderId", orderId)
	if err != nil {
		return s.fail(ctx, err)
	}
	query, err := queries.NewGetNextStatusesQuery(id, actor.Role())
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.handlers.GetNextStatuses.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	next := make([]servers.StatusInfo, len(result.Next))
	for i, info := range result.Next {
		next[i] = statusInfoFromResponse(info)
	}
	return ctx.JSON(http.StatusOK, servers.NextStatuses{
		Current: statusInfoFromResponse(result.Current),
		Next:    next,
	})
}

// GetOrderActions handles GET /api/v1/orders/{orderId}/actions.
func (s *Server) GetOrderActions(ctx echo.Context, orderId openapi_types.UUID) error {
	id, err := idFrom("orderId", orderId)
	if err != nil {
		return s.fail(ctx, err)
	}
	query, err := queries.NewGetOrderHistoryQuery(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	history, err := s.handlers.GetOrderHistory.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, actionsFromResponse(history))
}

// QueryActions handles GET /api/v1/actions.
func (s *Server) QueryActions(ctx echo.Context, params servers.QueryActionsParams) error {
	filter := action.Filter{
		From:  params.From,
		To:    params.To,
		Limit: deref(params.Limit),
	}
	if params.ActorId != nil {
		id, err := idFrom("actorId", *params.ActorId)
		if err != nil {
			return s.fail(ctx, err)
		}
		filter.ActorID = &id
	}
	if params.OrderId != nil {
		id, err := idFrom("orderId", *params.OrderId)
		if err != nil {
			return s.fail(ctx, err)
		}
		filter.OrderID = &id
	}
	if params.NewStatus != nil {
		for _, raw := range *params.NewStatus {
			status, err := order.ParseStatus(raw)
			if err != nil {
				return s.fail(ctx, err)
			}
			filter.NewStatuses = append(filter.NewStatuses, status)
		}
	}

	query, err := queries.NewQueryActionsQuery(filter)
	if err != nil {
		return s.fail(ctx, err)
	}

	found, err := s.handlers.QueryActions.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, actionsFromResponse(found))
}

// GetStatuses handles GET /api/v1/statuses.
func (s *Server) GetStatuses(ctx echo.Context) error {
	statuses, err := s.handlers.ListStatuses.Handle(queries.NewListStatusesQuery())
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]servers.StatusInfo, len(statuses))
	for i, info := range statuses {
		response[i] = statusInfoFromResponse(info)
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetNotifications handles GET /api/v1/notifications for the caller.
func (s *Server) GetNotifications(ctx echo.Context, params servers.GetNotificationsParams) error {
	actor, err := actorFrom(ctx.Request())
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewListNotificationsQuery(actor.ID(), notification.InboxFilter{
		Since:      params.Since,
		UnreadOnly: deref(params.UnreadOnly),
		Limit:      deref(params.Limit),
	})
	if err != nil {
		return s.fail(ctx, err)
	}

	entries, err := s.handlers.ListNotifications.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]servers.Notification, len(entries))
	for i, e := range entries {
		response[i] = notificationFromResponse(e)
	}
	return ctx.JSON(http.StatusOK, response)
}

// MarkNotificationRead handles POST /api/v1/notifications/{notificationId}/read.
func (s *Server) MarkNotificationRead(ctx echo.Context, notificationId openapi_types.UUID) error {
	actor, err := actorFrom(ctx.Request())
	if err != nil {
		return s.fail(ctx, err)
	}
	id, err := idFrom("notificationId", notificationId)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewMarkNotificationReadCommand(id, actor.ID())
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.handlers.MarkNotificationRead.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

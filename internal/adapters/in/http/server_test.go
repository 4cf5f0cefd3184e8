package http_test

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpadapter "orderflow/internal/adapters/in/http"
	"orderflow/internal/adapters/out/realtime"
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/action"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/role"
	"orderflow/internal/core/domain/model/workflow"
	"orderflow/internal/generated/servers"
	"orderflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var occurredAt = time.Date(2026, 10, 2, 14, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newRouter(t *testing.T, handlers httpadapter.Handlers) (*echo.Echo, *realtime.Hub) {
	t.Helper()

	registry, err := workflow.LoadDefaultRegistry()
	require.NoError(t, err)
	if handlers.ListStatuses == nil {
		handlers.ListStatuses = queries.NewListStatusesQueryHandler(registry)
	}

	reg := prometheus.NewRegistry()
	hub := realtime.NewHub(0, reg, discardLogger())
	e, err := httpadapter.NewRouter(httpadapter.NewServer(handlers, hub, discardLogger()), reg, discardLogger())
	require.NoError(t, err)
	return e, hub
}

func request(method, target, body string, actorID kernel.UUID, actorRole string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if actorRole != "" {
		req.Header.Set(httpadapter.HeaderActorID, actorID.String())
		req.Header.Set(httpadapter.HeaderActorRole, actorRole)
		req.Header.Set(httpadapter.HeaderActorName, "Claire")
	}
	return req
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) servers.Error {
	t.Helper()
	var body servers.Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func transitionResult(t *testing.T, orderID, actorID kernel.UUID) commands.ChangeOrderStatusResult {
	t.Helper()

	shippedAt := occurredAt
	o, err := order.RestoreOrder(order.Snapshot{
		ID:             orderID,
		Number:         "ORD-2026-000777",
		Status:         order.Shipped,
		ClientID:       kernel.NewUUID(),
		Total:          48000,
		TrackingNumber: "TRK-991",
		CreatedAt:      occurredAt.Add(-48 * time.Hour),
		ShippedAt:      &shippedAt,
	})
	require.NoError(t, err)

	actor, err := action.NewActor(actorID, role.Counter, "Claire")
	require.NoError(t, err)
	a, err := action.NewAction(kernel.NewUUID(), orderID, actor, order.Ready, order.Shipped, "on the truck",
		order.Extra{order.ExtraTrackingNumber: "TRK-991"}, occurredAt)
	require.NoError(t, err)

	return commands.ChangeOrderStatusResult{Order: o, Action: a}
}

func TestChangeOrderStatus_Success(t *testing.T) {
	// Arrange
	orderID, actorID := kernel.NewUUID(), kernel.NewUUID()
	engine := &MockChangeOrderStatusHandler{}
	engine.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ChangeOrderStatusCommand) bool {
		return cmd.OrderID().IsEqual(orderID) &&
			cmd.NewStatus() == order.Shipped &&
			cmd.Actor().Role() == role.Counter &&
			cmd.Reason() == "on the truck" &&
			cmd.Extra().String(order.ExtraTrackingNumber) == "TRK-991"
	})).Return(transitionResult(t, orderID, actorID), nil).Once()
	e, _ := newRouter(t, httpadapter.Handlers{ChangeOrderStatus: engine})

	// Act
	rec := serve(e, request(http.MethodPatch, "/api/v1/orders/"+orderID.String()+"/status",
		`{"newStatus":" Shipped ","reason":"on the truck","trackingNumber":"TRK-991"}`, actorID, "comptoir"))

	// Assert
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body servers.TransitionResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "shipped", body.Order.Status)
	require.NotNil(t, body.Order.TrackingNumber)
	assert.Equal(t, "TRK-991", *body.Order.TrackingNumber)
	assert.Equal(t, "ready", body.Action.OldStatus)
	assert.Equal(t, "counter", body.Action.ActorRole)
	engine.AssertExpectations(t)
}

func TestChangeOrderStatus_MapsErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     int
		contains string
	}{
		{"permission denied", errs.NewPermissionDeniedError("client", "pending -> confirmed"), http.StatusForbidden, "permission denied"},
		{"order not found", errs.NewObjectNotFoundError("order", "x"), http.StatusNotFound, "not found"},
		{"concurrent change", errs.NewConflictError("order", "x"), http.StatusConflict, "modified"},
		{"storage failure", errs.NewStorageErrorWithCause("update order", io.ErrUnexpectedEOF), http.StatusInternalServerError, "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			engine := &MockChangeOrderStatusHandler{}
			engine.On("Handle", mock.Anything, mock.Anything).Return(commands.ChangeOrderStatusResult{}, tt.err).Once()
			e, _ := newRouter(t, httpadapter.Handlers{ChangeOrderStatus: engine})

			// Act
			rec := serve(e, request(http.MethodPatch, "/api/v1/orders/"+kernel.NewUUID().String()+"/status",
				`{"newStatus":"confirmed"}`, kernel.NewUUID(), "client"))

			// Assert
			assert.Equal(t, tt.code, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, int32(tt.code), body.Code)
			assert.Contains(t, body.Message, tt.contains)
			assert.NotContains(t, body.Message, "unexpected EOF")
		})
	}
}

func TestChangeOrderStatus_RejectsBadInputBeforeTheEngine(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		body   string
		role   string
		status int
	}{
		{"missing actor", "/api/v1/orders/" + kernel.NewUUID().String() + "/status", `{"newStatus":"confirmed"}`, "", http.StatusBadRequest},
		{"unknown role", "/api/v1/orders/" + kernel.NewUUID().String() + "/status", `{"newStatus":"confirmed"}`, "driver", http.StatusBadRequest},
		{"unknown status", "/api/v1/orders/" + kernel.NewUUID().String() + "/status", `{"newStatus":"lost"}`, "compta", http.StatusBadRequest},
		{"malformed order id", "/api/v1/orders/not-a-uuid/status", `{"newStatus":"confirmed"}`, "compta", http.StatusBadRequest},
		{"malformed body", "/api/v1/orders/" + kernel.NewUUID().String() + "/status", `{"newStatus":`, "compta", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			engine := &MockChangeOrderStatusHandler{}
			e, _ := newRouter(t, httpadapter.Handlers{ChangeOrderStatus: engine})

			// Act
			rec := serve(e, request(http.MethodPatch, tt.path, tt.body, kernel.NewUUID(), tt.role))

			// Assert
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, int32(tt.status), decodeError(t, rec).Code)
			engine.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateOrder_ReturnsCreatedOrder(t *testing.T) {
	// Arrange
	clientID := kernel.NewUUID()
	created, err := order.NewOrder(kernel.NewUUID(), "ORD-2026-000900", clientID, 125000, occurredAt)
	require.NoError(t, err)
	creator := &MockCreateOrderHandler{}
	creator.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreateOrderCommand) bool {
		return cmd.Number() == "ORD-2026-000900" && cmd.ClientID().IsEqual(clientID) && cmd.Total() == 125000
	})).Return(created, nil).Once()
	e, _ := newRouter(t, httpadapter.Handlers{CreateOrder: creator})

	// Act
	rec := serve(e, request(http.MethodPost, "/api/v1/orders",
		`{"number":"ORD-2026-000900","clientId":"`+clientID.String()+`","total":125000}`, kernel.UUID{}, ""))

	// Assert
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var body servers.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "pending", body.Status)
	assert.Nil(t, body.TrackingNumber)
	creator.AssertExpectations(t)
}

func TestGetStatuses_ListsTheGraph(t *testing.T) {
	// Arrange
	e, _ := newRouter(t, httpadapter.Handlers{})

	// Act
	rec := serve(e, request(http.MethodGet, "/api/v1/statuses", "", kernel.UUID{}, ""))

	// Assert
	require.Equal(t, http.StatusOK, rec.Code)
	var body []servers.StatusInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, len(order.KnownStatuses()))
	assert.Equal(t, "pending", body[0].Key)
	for _, info := range body {
		if info.Key == "completed" || info.Key == "cancelled" {
			assert.True(t, info.Terminal, info.Key)
			assert.Empty(t, info.NextStatuses, info.Key)
		}
	}
}

func TestGetNextStatuses_UsesCallerRole(t *testing.T) {
	// Arrange
	orderID := kernel.NewUUID()
	finder := &MockGetNextStatusesHandler{}
	finder.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetNextStatusesQuery) bool {
		return q.OrderID().IsEqual(orderID) && q.Role() == role.Compta
	})).Return(queries.GetNextStatusesQueryResponse{
		Current: queries.StatusInfoResponse{Key: order.Pending},
		Next:    []queries.StatusInfoResponse{{Key: order.Confirmed}, {Key: order.Rejected}},
	}, nil).Once()
	e, _ := newRouter(t, httpadapter.Handlers{GetNextStatuses: finder})

	// Act
	rec := serve(e, request(http.MethodGet, "/api/v1/orders/"+orderID.String()+"/next-statuses", "", kernel.NewUUID(), "Accountant"))

	// Assert
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body servers.NextStatuses
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "pending", body.Current.Key)
	require.Len(t, body.Next, 2)
	assert.Equal(t, "confirmed", body.Next[0].Key)
	finder.AssertExpectations(t)
}

func TestGetOrderActions_ReturnsHistory(t *testing.T) {
	// Arrange
	orderID := kernel.NewUUID()
	history := &MockGetOrderHistoryHandler{}
	history.On("Handle", mock.Anything, mock.Anything).Return([]queries.ActionResponse{
		{ID: kernel.NewUUID(), OrderID: orderID, ActorID: kernel.NewUUID(), ActorRole: role.Compta,
			OldStatus: order.Pending, NewStatus: order.Confirmed, OccurredAt: occurredAt},
	}, nil).Once()
	e, _ := newRouter(t, httpadapter.Handlers{GetOrderHistory: history})

	// Act
	rec := serve(e, request(http.MethodGet, "/api/v1/orders/"+orderID.String()+"/actions", "", kernel.UUID{}, ""))

	// Assert
	require.Equal(t, http.StatusOK, rec.Code)
	var body []servers.Action
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "confirmed", body[0].NewStatus)
	assert.Nil(t, body[0].Extra)
}

func TestQueryActions_BindsFilter(t *testing.T) {
	// Arrange
	actorID := kernel.NewUUID()
	finder := &MockQueryActionsHandler{}
	finder.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.QueryActionsQuery) bool {
		f := q.Filter()
		return f.ActorID != nil && f.ActorID.IsEqual(actorID) &&
			len(f.NewStatuses) == 2 && f.NewStatuses[1] == order.Cancelled &&
			f.From != nil && f.From.Equal(occurredAt) &&
			f.Limit == 20
	})).Return([]queries.ActionResponse{}, nil).Once()
	e, _ := newRouter(t, httpadapter.Handlers{QueryActions: finder})

	// Act
	rec := serve(e, request(http.MethodGet,
		"/api/v1/actions?actorId="+actorID.String()+"&newStatus=rejected&newStatus=cancelled&from=2026-10-02T14:00:00Z&limit=20",
		"", kernel.UUID{}, ""))

	// Assert
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, "[]", rec.Body.String())
	finder.AssertExpectations(t)
}

func TestQueryActions_LimitOutOfRange(t *testing.T) {
	e, _ := newRouter(t, httpadapter.Handlers{QueryActions: &MockQueryActionsHandler{}})

	rec := serve(e, request(http.MethodGet, "/api/v1/actions?limit=5000", "", kernel.UUID{}, ""))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMarkNotificationRead(t *testing.T) {
	// Arrange
	notificationID, userID := kernel.NewUUID(), kernel.NewUUID()
	marker := &MockMarkNotificationReadHandler{}
	marker.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.MarkNotificationReadCommand) bool {
		return cmd.NotificationID().IsEqual(notificationID) && cmd.UserID().IsEqual(userID)
	})).Return(nil).Once()
	e, _ := newRouter(t, httpadapter.Handlers{MarkNotificationRead: marker})

	// Act
	rec := serve(e, request(http.MethodPost, "/api/v1/notifications/"+notificationID.String()+"/read", "", userID, "client"))

	// Assert
	assert.Equal(t, http.StatusNoContent, rec.Code)
	marker.AssertExpectations(t)
}

func TestHealthAndMetrics(t *testing.T) {
	e, _ := newRouter(t, httpadapter.Handlers{})

	health := serve(e, request(http.MethodGet, "/health", "", kernel.UUID{}, ""))
	metrics := serve(e, request(http.MethodGet, "/metrics", "", kernel.UUID{}, ""))
	missing := serve(e, request(http.MethodGet, "/api/v1/unknown", "", kernel.UUID{}, ""))

	assert.Equal(t, http.StatusOK, health.Code)
	assert.Equal(t, "Healthy", health.Body.String())
	assert.Equal(t, http.StatusOK, metrics.Code)
	assert.Contains(t, metrics.Body.String(), "orderflow_realtime_sessions")
	assert.Equal(t, http.StatusNotFound, missing.Code)
	assert.Equal(t, int32(http.StatusNotFound), decodeError(t, missing).Code)
}

func TestStreamNotifications_DeliversRoomEvents(t *testing.T) {
	// Arrange
	e, hub := newRouter(t, httpadapter.Handlers{})
	srv := httptest.NewServer(e)
	defer srv.Close()

	userID := kernel.NewUUID()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/v1/notifications/stream", nil)
	require.NoError(t, err)
	req.Header.Set(httpadapter.HeaderActorID, userID.String())
	req.Header.Set(httpadapter.HeaderActorRole, "compta")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get(echo.HeaderContentType))

	require.Eventually(t, func() bool {
		return hub.RoomSize("role:compta") == 1 && hub.RoomSize("user:"+userID.String()) == 1
	}, time.Second, 10*time.Millisecond)

	// Act
	require.NoError(t, hub.Publish(context.Background(), "role:compta", "notification", map[string]string{"title": "Order confirmed"}))

	// Assert
	reader := bufio.NewReader(resp.Body)
	var lines []string
	for len(lines) < 2 {
		line, readErr := reader.ReadString('\n')
		require.NoError(t, readErr)
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	assert.Equal(t, []string{"event: notification", `data: {"title":"Order confirmed"}`}, lines)

	cancel()
	require.Eventually(t, func() bool {
		return hub.RoomSize("role:compta") == 0
	}, time.Second, 10*time.Millisecond)
}

package http_test

import (
	"context"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
)

type MockChangeOrderStatusHandler struct{ mock.Mock }

func (m *MockChangeOrderStatusHandler) Handle(
	ctx context.Context,
	cmd commands.ChangeOrderStatusCommand,
) (commands.ChangeOrderStatusResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.ChangeOrderStatusResult), args.Error(1)
}

type MockCreateOrderHandler struct{ mock.Mock }

func (m *MockCreateOrderHandler) Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockMarkNotificationReadHandler struct{ mock.Mock }

func (m *MockMarkNotificationReadHandler) Handle(ctx context.Context, cmd commands.MarkNotificationReadCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockGetNextStatusesHandler struct{ mock.Mock }

func (m *MockGetNextStatusesHandler) Handle(
	ctx context.Context,
	query queries.GetNextStatusesQuery,
) (queries.GetNextStatusesQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.GetNextStatusesQueryResponse), args.Error(1)
}

type MockGetOrderHistoryHandler struct{ mock.Mock }

func (m *MockGetOrderHistoryHandler) Handle(ctx context.Context, query queries.GetOrderHistoryQuery) ([]queries.ActionResponse, error) {
	args := m.Called(ctx, query)
	found, _ := args.Get(0).([]queries.ActionResponse)
	return found, args.Error(1)
}

type MockQueryActionsHandler struct{ mock.Mock }

func (m *MockQueryActionsHandler) Handle(ctx context.Context, query queries.QueryActionsQuery) ([]queries.ActionResponse, error) {
	args := m.Called(ctx, query)
	found, _ := args.Get(0).([]queries.ActionResponse)
	return found, args.Error(1)
}

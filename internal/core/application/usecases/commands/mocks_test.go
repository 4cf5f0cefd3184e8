package commands_test

import (
	"context"
	"io"
	"log/slog"
	"time"

	"orderflow/internal/core/application/notifications"
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/action"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/user"
	"orderflow/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) UpdateIfStatus(ctx context.Context, o *order.Order, expected order.Status) error {
	args := m.Called(ctx, o, expected)
	return args.Error(0)
}

type MockActionLog struct{ mock.Mock }

func (m *MockActionLog) Append(ctx context.Context, a *action.Action) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockActionLog) OrderHistory(ctx context.Context, orderID kernel.UUID) ([]*action.Action, error) {
	args := m.Called(ctx, orderID)
	actions, _ := args.Get(0).([]*action.Action)
	return actions, args.Error(1)
}

func (m *MockActionLog) Query(ctx context.Context, filter action.Filter) ([]*action.Action, error) {
	args := m.Called(ctx, filter)
	actions, _ := args.Get(0).([]*action.Action)
	return actions, args.Error(1)
}

func (m *MockActionLog) DeleteOlderThan(ctx context.Context, horizon time.Time) (int64, error) {
	args := m.Called(ctx, horizon)
	return args.Get(0).(int64), args.Error(1)
}

type MockTx struct{ mock.Mock }

func (m *MockTx) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockOrderUoW struct{ MockTx }

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockWorkflowUoW struct{ MockTx }

func (m *MockWorkflowUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockWorkflowUoW) ActionLog() ports.ActionLog {
	args := m.Called()
	return args.Get(0).(ports.ActionLog)
}

type MockWorkflowUoWFactory struct{ mock.Mock }

func (m *MockWorkflowUoWFactory) Create() commands.WorkflowUoW {
	args := m.Called()
	return args.Get(0).(commands.WorkflowUoW)
}

type MockNotificationQueue struct{ mock.Mock }

func (m *MockNotificationQueue) Enqueue(ctx context.Context, batch notifications.Batch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

type MockNotificationRepository struct{ mock.Mock }

func (m *MockNotificationRepository) DeleteOlderThan(ctx context.Context, horizon time.Time) (int64, error) {
	args := m.Called(ctx, horizon)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, notificationID, userID kernel.UUID, at time.Time) error {
	args := m.Called(ctx, notificationID, userID, at)
	return args.Error(0)
}

type MockUserStore struct{ mock.Mock }

func (m *MockUserStore) Add(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

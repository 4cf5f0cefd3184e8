package postgres_test

import (
	"context"
	"strings"
	"testing"
	"time"

	postgres_adapter "orderflow/internal/adapters/out/postgres"
	"orderflow/internal/adapters/out/postgres/pgtest"
	"orderflow/internal/core/domain/model/action"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/role"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

var createdAt = time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

// UnitOfWorkIntegrationTestSuite verifies that the order update and its audit
// entry share one transaction.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	database *pgtest.Database
	db       *gorm.DB
	factory  ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
	suite.db = database.DB

	suite.Require().NoError(postgres_adapter.Migrate(suite.db))
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(suite.db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE " + strings.Join(postgres_adapter.Tables, ", ")).Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")
	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.ActionLog())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Multiple begin calls should be safe")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransitionCommitsOrderAndAction() {
	ctx := context.Background()
	current := suite.addPendingOrder("ORD-UOW-1")
	next, act := suite.transition(current, order.Confirmed, role.Compta)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().UpdateIfStatus(ctx, next, current.Status()))
	suite.Require().NoError(uow.ActionLog().Append(ctx, act))
	suite.Require().NoError(uow.Commit(ctx))

	reader := suite.factory.Create()
	stored, err := reader.OrderRepository().Get(ctx, current.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Confirmed, stored.Status())

	history, err := reader.ActionLog().OrderHistory(ctx, current.ID())
	suite.Require().NoError(err)
	suite.Require().Len(history, 1)
	suite.Equal(order.Pending, history[0].OldStatus())
	suite.Equal(order.Confirmed, history[0].NewStatus())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsOrderAndAction() {
	ctx := context.Background()
	current := suite.addPendingOrder("ORD-UOW-2")
	next, act := suite.transition(current, order.Confirmed, role.Compta)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().UpdateIfStatus(ctx, next, current.Status()))
	suite.Require().NoError(uow.ActionLog().Append(ctx, act))
	suite.Require().NoError(uow.Rollback(ctx))

	reader := suite.factory.Create()
	stored, err := reader.OrderRepository().Get(ctx, current.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Pending, stored.Status())

	history, err := reader.ActionLog().OrderHistory(ctx, current.ID())
	suite.Require().NoError(err)
	suite.Empty(history)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_UncommittedChangesAreIsolated() {
	ctx := context.Background()
	current := suite.addPendingOrder("ORD-UOW-3")
	next, _ := suite.transition(current, order.Confirmed, role.Compta)

	writer := suite.factory.Create()
	suite.Require().NoError(writer.Begin(ctx))
	defer func() { _ = writer.Rollback(ctx) }()
	suite.Require().NoError(writer.OrderRepository().UpdateIfStatus(ctx, next, current.Status()))

	stored, err := suite.factory.Create().OrderRepository().Get(ctx, current.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Pending, stored.Status())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_LostUpdateIsConflict() {
	ctx := context.Background()
	current := suite.addPendingOrder("ORD-UOW-4")
	confirmed, _ := suite.transition(current, order.Confirmed, role.Compta)
	cancelled, _ := suite.transition(current, order.Cancelled, role.Client)

	first := suite.factory.Create()
	suite.Require().NoError(first.Begin(ctx))
	suite.Require().NoError(first.OrderRepository().UpdateIfStatus(ctx, confirmed, order.Pending))
	suite.Require().NoError(first.Commit(ctx))

	second := suite.factory.Create()
	suite.Require().NoError(second.Begin(ctx))
	err := second.OrderRepository().UpdateIfStatus(ctx, cancelled, order.Pending)
	suite.Require().NoError(second.Rollback(ctx))

	suite.Require().ErrorIs(err, errs.ErrConflict)
}

func (suite *UnitOfWorkIntegrationTestSuite) addPendingOrder(number string) *order.Order {
	o, err := order.NewOrder(kernel.NewUUID(), number, kernel.NewUUID(), 5000, createdAt)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.factory.Create().OrderRepository().Add(context.Background(), o))
	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) transition(current *order.Order, to order.Status, r role.Role) (*order.Order, *action.Action) {
	at := createdAt.Add(time.Hour)
	next, err := current.Transition(to, nil, at)
	suite.Require().NoError(err)

	actor, err := action.NewActor(kernel.NewUUID(), r, "Tester")
	suite.Require().NoError(err)
	act, err := action.NewAction(kernel.NewUUID(), current.ID(), actor, current.Status(), to, "", nil, at)
	suite.Require().NoError(err)
	return next, act
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}

package userrepo_test

import (
	"context"
	"testing"

	"orderflow/internal/adapters/out/postgres/pgtest"
	"orderflow/internal/adapters/out/postgres/userrepo"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/role"
	"orderflow/internal/core/domain/model/user"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type UserRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	db         *gorm.DB
	repository *userrepo.GormUserRepository
}

func (suite *UserRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
	suite.db = database.DB

	suite.Require().NoError(suite.db.AutoMigrate(&userrepo.UserDTO{}))
}

func (suite *UserRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE users").Error)
	suite.repository = userrepo.NewGormUserRepository(suite.db)
}

func (suite *UserRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *UserRepositoryIntegrationTestSuite) TestAddAndGet() {
	ctx := context.Background()
	u := suite.newUser("Alice", role.Compta)

	suite.Require().NoError(suite.repository.Add(ctx, u))

	stored, err := suite.repository.Get(ctx, u.ID())
	suite.Require().NoError(err)
	suite.Equal("Alice", stored.Name())
	suite.Equal(role.Compta, stored.Role())
	suite.True(stored.IsActive())
}

func (suite *UserRepositoryIntegrationTestSuite) TestAdd_Duplicate_ReturnsConflict() {
	ctx := context.Background()
	u := suite.newUser("Alice", role.Compta)
	suite.Require().NoError(suite.repository.Add(ctx, u))

	err := suite.repository.Add(ctx, u)

	suite.Require().ErrorIs(err, errs.ErrConflict)
}

func (suite *UserRepositoryIntegrationTestSuite) TestGet_Missing_ReturnsNotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UserRepositoryIntegrationTestSuite) TestUpdate_Missing_ReturnsNotFound() {
	err := suite.repository.Update(context.Background(), suite.newUser("Ghost", role.Admin))

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UserRepositoryIntegrationTestSuite) TestUserIDsByRole_ActiveHoldersOnly() {
	ctx := context.Background()
	alice := suite.newUser("Alice", role.Compta)
	bob := suite.newUser("Bob", role.Compta)
	carol := suite.newUser("Carol", role.Compta)
	dave := suite.newUser("Dave", role.Counter)
	for _, u := range []*user.User{alice, bob, carol, dave} {
		suite.Require().NoError(suite.repository.Add(ctx, u))
	}
	carol.Deactivate()
	suite.Require().NoError(suite.repository.Update(ctx, carol))

	ids, err := suite.repository.UserIDsByRole(ctx, role.Compta)

	suite.Require().NoError(err)
	suite.ElementsMatch([]kernel.UUID{alice.ID(), bob.ID()}, ids)
}

func (suite *UserRepositoryIntegrationTestSuite) TestUserIDsByRole_NoHolders_ReturnsEmpty() {
	ids, err := suite.repository.UserIDsByRole(context.Background(), role.Admin)

	suite.Require().NoError(err)
	suite.Empty(ids)
}

func (suite *UserRepositoryIntegrationTestSuite) TestUserIDsByRole_InvalidRole_ReturnsError() {
	_, err := suite.repository.UserIDsByRole(context.Background(), role.Role("guest"))

	suite.Require().ErrorIs(err, errs.ErrValueIsInvalid)
}

func (suite *UserRepositoryIntegrationTestSuite) newUser(name string, r role.Role) *user.User {
	u, err := user.NewUser(kernel.NewUUID(), name, r)
	suite.Require().NoError(err)
	return u
}

func TestUserRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UserRepositoryIntegrationTestSuite))
}

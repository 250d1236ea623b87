package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"shopmart/internal/models"
)

type OrderRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    OrderRepository
	context context.Context
	now     time.Time
}

func (suite *OrderRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewOrderRepo(mock)
	suite.context = context.Background()
	suite.now = time.Now()
}

func (suite *OrderRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestOrderRepoTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepoTestSuite))
}

func (suite *OrderRepoTestSuite) TestPlaceOrder_Commits() {
	user := &models.User{Username: "ada", Email: "ada@example.com", Password: "secret"}
	lines := []*models.OrderLineInput{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
	}

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("ada", "ada@example.com", "secret").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(50), suite.now))
	suite.mock.ExpectQuery(`INSERT INTO orders`).
		WithArgs(int64(50)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(70), suite.now))
	suite.mock.ExpectExec(`INSERT INTO order_products`).
		WithArgs(int64(70), int64(1), 2).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectExec(`INSERT INTO order_products`).
		WithArgs(int64(70), int64(2), 1).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectCommit()

	order, err := suite.repo.PlaceOrder(suite.context, user, lines)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(50), user.ID)
	assert.Equal(suite.T(), int64(70), order.ID)
	assert.Len(suite.T(), order.Products, 2)
}

// A failing order step must roll the user insert back too; no orphan user
// row may survive a failed placement.
func (suite *OrderRepoTestSuite) TestPlaceOrder_RollsBackUserOnOrderFailure() {
	user := &models.User{Username: "ada", Email: "ada@example.com", Password: "secret"}
	lines := []*models.OrderLineInput{{ProductID: 999, Quantity: 1}}

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("ada", "ada@example.com", "secret").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(50), suite.now))
	suite.mock.ExpectQuery(`INSERT INTO orders`).
		WithArgs(int64(50)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(70), suite.now))
	suite.mock.ExpectExec(`INSERT INTO order_products`).
		WithArgs(int64(70), int64(999), 1).
		WillReturnError(errors.New("violates foreign key constraint"))
	suite.mock.ExpectRollback()

	order, err := suite.repo.PlaceOrder(suite.context, user, lines)
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), order)
}

func (suite *OrderRepoTestSuite) TestPlaceOrder_RollsBackOnUserFailure() {
	user := &models.User{Username: "ada", Email: "ada@example.com", Password: "secret"}
	lines := []*models.OrderLineInput{{ProductID: 1, Quantity: 1}}

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("ada", "ada@example.com", "secret").
		WillReturnError(errors.New("duplicate key value"))
	suite.mock.ExpectRollback()

	order, err := suite.repo.PlaceOrder(suite.context, user, lines)
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), order)
}

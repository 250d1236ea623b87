package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"shopmart/internal/models"
)

type ProductRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    ProductRepository
	context context.Context
	now     time.Time
}

func (suite *ProductRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewProductRepo(mock)
	suite.context = context.Background()
	suite.now = time.Now()
}

func (suite *ProductRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestProductRepoTestSuite(t *testing.T) {
	suite.Run(t, new(ProductRepoTestSuite))
}

func (suite *ProductRepoTestSuite) TestCreateWithStock_Commits() {
	product := &models.Product{
		CategoryID: 4,
		Name:       "Keyboard",
		Slug:       "keyboard",
		IsActive:   true,
		Price:      79.99,
	}

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`INSERT INTO products`).
		WithArgs(int64(4), "Keyboard", "keyboard", "", false, true, 79.99).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(30), suite.now, suite.now))
	suite.mock.ExpectQuery(`INSERT INTO stock`).
		WithArgs(int64(30), 25).
		WillReturnRows(pgxmock.NewRows([]string{"id", "last_checked_at"}).
			AddRow(int64(8), suite.now))
	suite.mock.ExpectCommit()

	err := suite.repo.CreateWithStock(suite.context, product, 25)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(30), product.ID)
	assert.NotNil(suite.T(), product.Stock)
	assert.Equal(suite.T(), 25, product.Stock.Quantity)
	assert.WithinDuration(suite.T(), suite.now, product.Stock.LastCheckedAt, time.Second)
}

func (suite *ProductRepoTestSuite) TestCreateWithStock_DefaultQuantityZero() {
	product := &models.Product{CategoryID: 4, Name: "Mouse", Slug: "mouse"}

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`INSERT INTO products`).
		WithArgs(int64(4), "Mouse", "mouse", "", false, false, 0.0).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(31), suite.now, suite.now))
	suite.mock.ExpectQuery(`INSERT INTO stock`).
		WithArgs(int64(31), 0).
		WillReturnRows(pgxmock.NewRows([]string{"id", "last_checked_at"}).
			AddRow(int64(9), suite.now))
	suite.mock.ExpectCommit()

	err := suite.repo.CreateWithStock(suite.context, product, 0)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 0, product.Stock.Quantity)
}

func (suite *ProductRepoTestSuite) TestCreateWithStock_RollsBackOnStockFailure() {
	product := &models.Product{CategoryID: 4, Name: "Mouse", Slug: "mouse"}

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`INSERT INTO products`).
		WithArgs(int64(4), "Mouse", "mouse", "", false, false, 0.0).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(31), suite.now, suite.now))
	suite.mock.ExpectQuery(`INSERT INTO stock`).
		WithArgs(int64(31), 0).
		WillReturnError(errors.New("stock insert failed"))
	suite.mock.ExpectRollback()

	err := suite.repo.CreateWithStock(suite.context, product, 0)
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), product.Stock)
}

func (suite *ProductRepoTestSuite) TestGetByID_JoinsStock() {
	now := suite.now
	suite.mock.ExpectQuery(`FROM products p LEFT JOIN stock s ON s.product_id = p.id`).
		WithArgs(int64(30)).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "category_id", "name", "slug", "description", "is_digital", "is_active", "price", "created_at", "updated_at",
			"s_id", "s_product_id", "quantity", "last_checked_at",
		}).AddRow(int64(30), int64(4), "Keyboard", "keyboard", "", false, true, 79.99, suite.now, suite.now,
			int64Ptr(8), int64Ptr(30), intPtr(25), &now))

	product, err := suite.repo.GetByID(suite.context, 30)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Keyboard", product.Name)
	assert.Equal(suite.T(), 25, product.Stock.Quantity)
}

func (suite *ProductRepoTestSuite) TestGetByID_NoStockRow() {
	// Products created through the nested category path have no stock row;
	// they must still be fetchable, with Stock left nil.
	suite.mock.ExpectQuery(`FROM products p LEFT JOIN stock s ON s.product_id = p.id`).
		WithArgs(int64(40)).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "category_id", "name", "slug", "description", "is_digital", "is_active", "price", "created_at", "updated_at",
			"s_id", "s_product_id", "quantity", "last_checked_at",
		}).AddRow(int64(40), int64(4), "Guitar", "guitar", "", false, true, 199.99, suite.now, suite.now,
			nil, nil, nil, nil))

	product, err := suite.repo.GetByID(suite.context, 40)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Guitar", product.Name)
	assert.Nil(suite.T(), product.Stock)
}

func (suite *ProductRepoTestSuite) TestGetByID_NotFound() {
	suite.mock.ExpectQuery(`FROM products p`).
		WithArgs(int64(99)).
		WillReturnError(pgx.ErrNoRows)

	product, err := suite.repo.GetByID(suite.context, 99)
	assert.ErrorIs(suite.T(), err, pgx.ErrNoRows)
	assert.Nil(suite.T(), product)
}

func (suite *ProductRepoTestSuite) TestListStockBelow() {
	suite.mock.ExpectQuery(`WHERE p.is_active AND s.quantity <= \$1`).
		WithArgs(10).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "category_id", "name", "slug", "description", "is_digital", "is_active", "price", "created_at", "updated_at",
			"s_id", "s_product_id", "quantity", "last_checked_at",
		}).AddRow(int64(30), int64(4), "Keyboard", "keyboard", "", false, true, 79.99, suite.now, suite.now,
			int64(8), int64(30), 3, suite.now))

	products, err := suite.repo.ListStockBelow(suite.context, 10)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), products, 1)
	assert.Equal(suite.T(), 3, products[0].Stock.Quantity)
}
